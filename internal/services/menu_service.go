package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/auth"
	"github.com/familychef/familychef/internal/models"
)

// MenuService evaluates which cuisines are currently makeable against
// pantry stock
type MenuService interface {
	GetMenu(ac auth.Context) ([]models.MenuCuisine, error)
	IsAvailable(cuisine models.Cuisine) (bool, error)
}

// menuService implements the MenuService interface
type menuService struct {
	db *gorm.DB
}

// NewMenuService creates a new menu service
func NewMenuService(db *gorm.DB) MenuService {
	return &menuService{
		db: db,
	}
}

// GetMenu returns the cuisines of the caller's families annotated with
// availability
func (s *menuService) GetMenu(ac auth.Context) ([]models.MenuCuisine, error) {
	var cuisines []models.Cuisine
	result := s.db.Preload("RecipeIngredients").Preload("RecipeIngredients.Ingredient").
		Where("family_id IN ?", ac.FamilyIDs).Find(&cuisines)
	if result.Error != nil {
		return nil, result.Error
	}

	menu := make([]models.MenuCuisine, 0, len(cuisines))
	for _, cuisine := range cuisines {
		available, err := s.IsAvailable(cuisine)
		if err != nil {
			return nil, err
		}
		menu = append(menu, models.MenuCuisine{Cuisine: cuisine, IsAvailable: available})
	}
	return menu, nil
}

// IsAvailable reports whether every required ingredient of the cuisine
// is covered by the family's pantry stock. Optional ingredients never
// block availability. A missing or insufficient stock row is forgiven
// when the ingredient is substitutable (the substitution search itself
// is not performed). When the stock unit differs from the recipe unit
// the quantity comparison is skipped and the ingredient counts as
// satisfied; there is no unit conversion.
func (s *menuService) IsAvailable(cuisine models.Cuisine) (bool, error) {
	ingredients := cuisine.RecipeIngredients
	if ingredients == nil {
		result := s.db.Where("cuisine_id = ?", cuisine.ID).Find(&ingredients)
		if result.Error != nil {
			return false, result.Error
		}
	}

	for _, ri := range ingredients {
		if ri.IsOptional {
			continue
		}

		var stock models.PantryStock
		err := s.db.Where("family_id = ? AND ingredient_id = ?", cuisine.FamilyID, ri.IngredientID).
			First(&stock).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if ri.IsSubstitutable {
				continue
			}
			return false, nil
		}
		if err != nil {
			return false, err
		}

		if stock.Unit != ri.Unit {
			// Units differ; comparison skipped, no conversion
			continue
		}

		if stock.QtyAvailable.Cmp(ri.Quantity) < 0 && !ri.IsSubstitutable {
			return false, nil
		}
	}

	return true, nil
}
