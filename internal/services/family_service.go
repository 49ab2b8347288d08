package services

import (
	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/auth"
	"github.com/familychef/familychef/internal/models"
)

// FamilyService defines the interface for family and membership operations
type FamilyService interface {
	GetFamilies(ac auth.Context) ([]models.Family, error)
	GetFamilyByID(ac auth.Context, id uint) (models.Family, error)
	CreateFamily(ac auth.Context, family models.Family) (models.Family, error)
	UpdateFamily(ac auth.Context, id uint, family models.Family) (models.Family, error)
	DeleteFamily(ac auth.Context, id uint) error
	GetMembers(ac auth.Context) ([]models.FamilyMember, error)
	AddMember(ac auth.Context, req models.FamilyMemberRequest) (models.FamilyMember, error)
	RemoveMember(ac auth.Context, id uint) error
	FamilyIDsForUser(userID uint) ([]uint, error)
}

// familyService implements the FamilyService interface
type familyService struct {
	db *gorm.DB
}

// NewFamilyService creates a new family service
func NewFamilyService(db *gorm.DB) FamilyService {
	return &familyService{
		db: db,
	}
}

// GetFamilies returns the families the user belongs to
func (s *familyService) GetFamilies(ac auth.Context) ([]models.Family, error) {
	var families []models.Family
	result := s.db.Where("id IN ?", ac.FamilyIDs).Find(&families)
	return families, result.Error
}

// GetFamilyByID returns a single family the user belongs to
func (s *familyService) GetFamilyByID(ac auth.Context, id uint) (models.Family, error) {
	if !ac.MemberOf(id) {
		return models.Family{}, gorm.ErrRecordNotFound
	}

	var family models.Family
	result := s.db.First(&family, id)
	return family, result.Error
}

// CreateFamily creates a family and enrolls the creator as its admin
func (s *familyService) CreateFamily(ac auth.Context, family models.Family) (models.Family, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&family).Error; err != nil {
			return err
		}
		member := models.FamilyMember{
			UserID:   ac.UserID,
			FamilyID: family.ID,
			Role:     models.RoleAdmin,
		}
		return tx.Create(&member).Error
	})
	return family, err
}

// UpdateFamily updates a family's name
func (s *familyService) UpdateFamily(ac auth.Context, id uint, family models.Family) (models.Family, error) {
	existing, err := s.GetFamilyByID(ac, id)
	if err != nil {
		return models.Family{}, err
	}

	existing.Name = family.Name
	result := s.db.Save(&existing)
	return existing, result.Error
}

// DeleteFamily deletes a family the user belongs to
func (s *familyService) DeleteFamily(ac auth.Context, id uint) error {
	if _, err := s.GetFamilyByID(ac, id); err != nil {
		return err
	}
	return s.db.Delete(&models.Family{}, id).Error
}

// GetMembers returns the memberships of every family the user belongs to
func (s *familyService) GetMembers(ac auth.Context) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	result := s.db.Preload("User").Preload("Family").
		Where("family_id IN ?", ac.FamilyIDs).Find(&members)
	return members, result.Error
}

// AddMember enrolls a user into one of the caller's families
func (s *familyService) AddMember(ac auth.Context, req models.FamilyMemberRequest) (models.FamilyMember, error) {
	if !ac.MemberOf(req.FamilyID) {
		return models.FamilyMember{}, ErrNotFamilyMember
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}
	switch role {
	case models.RoleMember, models.RoleChef, models.RoleAdmin:
	default:
		return models.FamilyMember{}, ErrInvalidRole
	}

	member := models.FamilyMember{
		UserID:   req.UserID,
		FamilyID: req.FamilyID,
		Role:     role,
	}
	result := s.db.Create(&member)
	return member, result.Error
}

// RemoveMember removes a membership row from one of the caller's families
func (s *familyService) RemoveMember(ac auth.Context, id uint) error {
	var member models.FamilyMember
	if err := s.db.First(&member, id).Error; err != nil {
		return err
	}

	if !ac.MemberOf(member.FamilyID) {
		return gorm.ErrRecordNotFound
	}

	return s.db.Delete(&models.FamilyMember{}, id).Error
}

// FamilyIDsForUser returns the IDs of every family the user belongs to
func (s *familyService) FamilyIDsForUser(userID uint) ([]uint, error) {
	var ids []uint
	result := s.db.Model(&models.FamilyMember{}).
		Where("user_id = ?", userID).Pluck("family_id", &ids)
	return ids, result.Error
}
