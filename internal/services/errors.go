package services

import (
	"errors"
)

// Sentinel errors shared across services. Handlers map these onto HTTP
// status codes; everything else surfaces as a server error.
var (
	// ErrInvalidStatus rejects an order status outside the enumerated set
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidRole rejects a family member role outside member/chef/admin
	ErrInvalidRole = errors.New("invalid role")

	// ErrNotFamilyMember rejects access to a family the user does not belong to
	ErrNotFamilyMember = errors.New("not a member of this family")
)
