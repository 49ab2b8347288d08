package services

import (
	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/models"
)

// IngredientService defines the interface for ingredient operations.
// Ingredients are shared globally by name; no family scoping applies.
type IngredientService interface {
	GetIngredients() ([]models.Ingredient, error)
	GetIngredientByID(id uint) (models.Ingredient, error)
	CreateIngredient(ingredient models.Ingredient) (models.Ingredient, error)
	UpdateIngredient(id uint, ingredient models.Ingredient) (models.Ingredient, error)
	DeleteIngredient(id uint) error
}

// ingredientService implements the IngredientService interface
type ingredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new ingredient service
func NewIngredientService(db *gorm.DB) IngredientService {
	return &ingredientService{
		db: db,
	}
}

// GetIngredients returns all ingredients
func (s *ingredientService) GetIngredients() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	result := s.db.Find(&ingredients)
	return ingredients, result.Error
}

// GetIngredientByID returns an ingredient by ID
func (s *ingredientService) GetIngredientByID(id uint) (models.Ingredient, error) {
	var ingredient models.Ingredient
	result := s.db.First(&ingredient, id)
	return ingredient, result.Error
}

// CreateIngredient creates a new ingredient
func (s *ingredientService) CreateIngredient(ingredient models.Ingredient) (models.Ingredient, error) {
	result := s.db.Create(&ingredient)
	return ingredient, result.Error
}

// UpdateIngredient updates an ingredient's name and description
func (s *ingredientService) UpdateIngredient(id uint, ingredient models.Ingredient) (models.Ingredient, error) {
	var existing models.Ingredient
	if err := s.db.First(&existing, id).Error; err != nil {
		return models.Ingredient{}, err
	}

	existing.Name = ingredient.Name
	existing.Description = ingredient.Description

	result := s.db.Save(&existing)
	return existing, result.Error
}

// DeleteIngredient deletes an ingredient
func (s *ingredientService) DeleteIngredient(id uint) error {
	return s.db.Delete(&models.Ingredient{}, id).Error
}
