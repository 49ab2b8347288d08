package models

import (
	"time"
)

// Family roles
const (
	RoleMember = "member"
	RoleChef   = "chef"
	RoleAdmin  = "admin"
)

// Family represents a household group that users can belong to
type Family struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName specifies the table name for Family model
func (Family) TableName() string {
	return "families"
}

// FamilyMember links a user to a family with a role
type FamilyMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `json:"user_id" gorm:"column:user_id;uniqueIndex:idx_family_member_user_family"`
	FamilyID uint      `json:"family_id" gorm:"column:family_id;uniqueIndex:idx_family_member_user_family"`
	Role     string    `json:"role" gorm:"default:member"`
	JoinedAt time.Time `json:"joined_at" gorm:"column:joined_at;autoCreateTime"`
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Family   *Family   `json:"family,omitempty" gorm:"foreignKey:FamilyID"`
}

// TableName specifies the table name for FamilyMember model
func (FamilyMember) TableName() string {
	return "family_members"
}

// FamilyMemberRequest is used for adding users to a family
type FamilyMemberRequest struct {
	UserID   uint   `json:"user_id"`
	FamilyID uint   `json:"family_id"`
	Role     string `json:"role"`
}
