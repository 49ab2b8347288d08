package auth

// Context carries the authenticated user and the resolved set of
// families that user belongs to. Every scoped operation takes it as an
// explicit parameter; there is no ambient per-request state.
type Context struct {
	UserID    uint
	Username  string
	FamilyIDs []uint
}

// MemberOf reports whether the user belongs to the given family
func (c Context) MemberOf(familyID uint) bool {
	for _, id := range c.FamilyIDs {
		if id == familyID {
			return true
		}
	}
	return false
}
