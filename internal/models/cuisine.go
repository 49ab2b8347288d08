package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cuisine is a recipe/dish that belongs to one family
type Cuisine struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	Name              string             `json:"name" gorm:"uniqueIndex:idx_cuisine_name_family"`
	Description       string             `json:"description"`
	DefaultTimeMin    uint               `json:"default_time_min" gorm:"column:default_time_min"`
	CreatedByID       uint               `json:"created_by_id" gorm:"column:created_by_id"`
	FamilyID          uint               `json:"family_id" gorm:"column:family_id;uniqueIndex:idx_cuisine_name_family"`
	CreatedAt         time.Time          `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time          `json:"updated_at" gorm:"column:updated_at"`
	CreatedBy         *User              `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Family            *Family            `json:"family,omitempty" gorm:"foreignKey:FamilyID"`
	RecipeIngredients []RecipeIngredient `json:"recipe_ingredients,omitempty" gorm:"foreignKey:CuisineID"`
}

// RecipeIngredient links an ingredient to a cuisine with quantities
type RecipeIngredient struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CuisineID       uint            `json:"cuisine_id" gorm:"column:cuisine_id;uniqueIndex:idx_recipe_cuisine_ingredient"`
	IngredientID    uint            `json:"ingredient_id" gorm:"column:ingredient_id;uniqueIndex:idx_recipe_cuisine_ingredient"`
	Quantity        decimal.Decimal `json:"quantity" gorm:"type:decimal(10,2)"`
	Unit            string          `json:"unit"`
	IsOptional      bool            `json:"is_optional" gorm:"column:is_optional;default:false"`
	IsSubstitutable bool            `json:"is_substitutable" gorm:"column:is_substitutable;default:false"`
	Ingredient      *Ingredient     `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
}

// MenuCuisine is the menu representation of a cuisine with its
// availability against current pantry stock
type MenuCuisine struct {
	Cuisine
	IsAvailable bool `json:"is_available"`
}
