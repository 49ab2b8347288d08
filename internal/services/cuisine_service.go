package services

import (
	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/auth"
	"github.com/familychef/familychef/internal/models"
)

// CuisineService defines the interface for cuisine and recipe operations
type CuisineService interface {
	GetCuisines(ac auth.Context) ([]models.Cuisine, error)
	GetCuisineByID(ac auth.Context, id uint) (models.Cuisine, error)
	CreateCuisine(ac auth.Context, cuisine models.Cuisine) (models.Cuisine, error)
	UpdateCuisine(ac auth.Context, id uint, cuisine models.Cuisine) (models.Cuisine, error)
	DeleteCuisine(ac auth.Context, id uint) error
	GetRecipeIngredients(ac auth.Context, cuisineID uint) ([]models.RecipeIngredient, error)
	AddRecipeIngredient(ac auth.Context, ri models.RecipeIngredient) (models.RecipeIngredient, error)
	UpdateRecipeIngredient(ac auth.Context, id uint, ri models.RecipeIngredient) (models.RecipeIngredient, error)
	DeleteRecipeIngredient(ac auth.Context, id uint) error
}

// cuisineService implements the CuisineService interface
type cuisineService struct {
	db *gorm.DB
}

// NewCuisineService creates a new cuisine service
func NewCuisineService(db *gorm.DB) CuisineService {
	return &cuisineService{
		db: db,
	}
}

// GetCuisines returns all cuisines from the caller's families
func (s *cuisineService) GetCuisines(ac auth.Context) ([]models.Cuisine, error) {
	var cuisines []models.Cuisine
	result := s.db.Preload("RecipeIngredients").Preload("RecipeIngredients.Ingredient").
		Where("family_id IN ?", ac.FamilyIDs).Find(&cuisines)
	return cuisines, result.Error
}

// GetCuisineByID returns a cuisine from one of the caller's families
func (s *cuisineService) GetCuisineByID(ac auth.Context, id uint) (models.Cuisine, error) {
	var cuisine models.Cuisine
	result := s.db.Preload("RecipeIngredients").Preload("RecipeIngredients.Ingredient").
		First(&cuisine, id)
	if result.Error != nil {
		return models.Cuisine{}, result.Error
	}

	if !ac.MemberOf(cuisine.FamilyID) {
		return models.Cuisine{}, gorm.ErrRecordNotFound
	}

	return cuisine, nil
}

// CreateCuisine creates a cuisine in one of the caller's families
func (s *cuisineService) CreateCuisine(ac auth.Context, cuisine models.Cuisine) (models.Cuisine, error) {
	if !ac.MemberOf(cuisine.FamilyID) {
		return models.Cuisine{}, ErrNotFamilyMember
	}

	cuisine.CreatedByID = ac.UserID
	result := s.db.Create(&cuisine)
	return cuisine, result.Error
}

// UpdateCuisine updates a cuisine's editable fields
func (s *cuisineService) UpdateCuisine(ac auth.Context, id uint, cuisine models.Cuisine) (models.Cuisine, error) {
	existing, err := s.GetCuisineByID(ac, id)
	if err != nil {
		return models.Cuisine{}, err
	}

	existing.Name = cuisine.Name
	existing.Description = cuisine.Description
	existing.DefaultTimeMin = cuisine.DefaultTimeMin

	result := s.db.Omit("RecipeIngredients").Save(&existing)
	return existing, result.Error
}

// DeleteCuisine deletes a cuisine from one of the caller's families
func (s *cuisineService) DeleteCuisine(ac auth.Context, id uint) error {
	if _, err := s.GetCuisineByID(ac, id); err != nil {
		return err
	}
	return s.db.Delete(&models.Cuisine{}, id).Error
}

// GetRecipeIngredients returns the recipe rows of a cuisine
func (s *cuisineService) GetRecipeIngredients(ac auth.Context, cuisineID uint) ([]models.RecipeIngredient, error) {
	if _, err := s.GetCuisineByID(ac, cuisineID); err != nil {
		return nil, err
	}

	var ingredients []models.RecipeIngredient
	result := s.db.Preload("Ingredient").Where("cuisine_id = ?", cuisineID).Find(&ingredients)
	return ingredients, result.Error
}

// AddRecipeIngredient attaches an ingredient to a cuisine
func (s *cuisineService) AddRecipeIngredient(ac auth.Context, ri models.RecipeIngredient) (models.RecipeIngredient, error) {
	if _, err := s.GetCuisineByID(ac, ri.CuisineID); err != nil {
		return models.RecipeIngredient{}, err
	}

	result := s.db.Create(&ri)
	return ri, result.Error
}

// UpdateRecipeIngredient updates quantity, unit and flags of a recipe row
func (s *cuisineService) UpdateRecipeIngredient(ac auth.Context, id uint, ri models.RecipeIngredient) (models.RecipeIngredient, error) {
	var existing models.RecipeIngredient
	if err := s.db.First(&existing, id).Error; err != nil {
		return models.RecipeIngredient{}, err
	}

	if _, err := s.GetCuisineByID(ac, existing.CuisineID); err != nil {
		return models.RecipeIngredient{}, err
	}

	existing.Quantity = ri.Quantity
	existing.Unit = ri.Unit
	existing.IsOptional = ri.IsOptional
	existing.IsSubstitutable = ri.IsSubstitutable

	result := s.db.Save(&existing)
	return existing, result.Error
}

// DeleteRecipeIngredient detaches an ingredient from a cuisine
func (s *cuisineService) DeleteRecipeIngredient(ac auth.Context, id uint) error {
	var existing models.RecipeIngredient
	if err := s.db.First(&existing, id).Error; err != nil {
		return err
	}

	if _, err := s.GetCuisineByID(ac, existing.CuisineID); err != nil {
		return err
	}

	return s.db.Delete(&models.RecipeIngredient{}, id).Error
}
