package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/models"
)

func seedCuisine(t *testing.T, gdb *gorm.DB, familyID, createdByID uint, name string) models.Cuisine {
	t.Helper()

	cuisine := models.Cuisine{
		Name:           name,
		DefaultTimeMin: 30,
		FamilyID:       familyID,
		CreatedByID:    createdByID,
	}
	if err := gdb.Create(&cuisine).Error; err != nil {
		t.Fatalf("Failed to create cuisine: %v", err)
	}
	return cuisine
}

func seedRecipeIngredient(t *testing.T, gdb *gorm.DB, cuisineID, ingredientID uint, qty float64, unit string, optional, substitutable bool) models.RecipeIngredient {
	t.Helper()

	ri := models.RecipeIngredient{
		CuisineID:       cuisineID,
		IngredientID:    ingredientID,
		Quantity:        decimal.NewFromFloat(qty),
		Unit:            unit,
		IsOptional:      optional,
		IsSubstitutable: substitutable,
	}
	if err := gdb.Create(&ri).Error; err != nil {
		t.Fatalf("Failed to create recipe ingredient: %v", err)
	}
	return ri
}

func mustBeAvailable(t *testing.T, service MenuService, gdb *gorm.DB, cuisineID uint, want bool) {
	t.Helper()

	var cuisine models.Cuisine
	if err := gdb.Preload("RecipeIngredients").First(&cuisine, cuisineID).Error; err != nil {
		t.Fatalf("Failed to load cuisine: %v", err)
	}

	got, err := service.IsAvailable(cuisine)
	if err != nil {
		t.Fatalf("IsAvailable failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected is_available=%v, got %v", want, got)
	}
}

func TestIsAvailableEmptyRecipe(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	service := NewMenuService(gdb)

	// A recipe with no ingredients at all is always makeable
	cuisine := seedCuisine(t, gdb, family.ID, ac.UserID, "toast")
	mustBeAvailable(t, service, gdb, cuisine.ID, true)
}

func TestIsAvailableOptionalAndSubstitutableOnly(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	service := NewMenuService(gdb)

	parsley := seedIngredient(t, gdb, "parsley")
	butter := seedIngredient(t, gdb, "butter")

	// Empty pantry; one optional and one substitutable ingredient
	cuisine := seedCuisine(t, gdb, family.ID, ac.UserID, "soup")
	seedRecipeIngredient(t, gdb, cuisine.ID, parsley.ID, 1.0, "bunch", true, false)
	seedRecipeIngredient(t, gdb, cuisine.ID, butter.ID, 0.1, "kg", false, true)

	mustBeAvailable(t, service, gdb, cuisine.ID, true)
}

func TestIsAvailableMissingRequiredStock(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	service := NewMenuService(gdb)

	rice := seedIngredient(t, gdb, "rice")
	cuisine := seedCuisine(t, gdb, family.ID, ac.UserID, "fried rice")
	seedRecipeIngredient(t, gdb, cuisine.ID, rice.ID, 0.5, "kg", false, false)

	// No pantry row for rice
	mustBeAvailable(t, service, gdb, cuisine.ID, false)

	// Stock it and the recipe becomes available
	seedStock(t, gdb, family.ID, rice.ID, 2.0, "kg", nil)
	mustBeAvailable(t, service, gdb, cuisine.ID, true)
}

func TestIsAvailableInsufficientStock(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	service := NewMenuService(gdb)

	flour := seedIngredient(t, gdb, "flour")
	cuisine := seedCuisine(t, gdb, family.ID, ac.UserID, "bread")
	seedRecipeIngredient(t, gdb, cuisine.ID, flour.ID, 1.0, "kg", false, false)
	seedStock(t, gdb, family.ID, flour.ID, 0.4, "kg", nil)

	mustBeAvailable(t, service, gdb, cuisine.ID, false)
}

func TestIsAvailableInsufficientButSubstitutable(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	service := NewMenuService(gdb)

	oil := seedIngredient(t, gdb, "olive oil")
	cuisine := seedCuisine(t, gdb, family.ID, ac.UserID, "salad")
	seedRecipeIngredient(t, gdb, cuisine.ID, oil.ID, 0.2, "l", false, true)
	seedStock(t, gdb, family.ID, oil.ID, 0.05, "l", nil)

	mustBeAvailable(t, service, gdb, cuisine.ID, true)
}

func TestIsAvailableUnitMismatchSkipsComparison(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	service := NewMenuService(gdb)

	// Known limitation: no unit conversion exists, so a stock row in a
	// different unit is treated as satisfied even when the amount would
	// obviously be short after conversion
	sugar := seedIngredient(t, gdb, "sugar")
	cuisine := seedCuisine(t, gdb, family.ID, ac.UserID, "cake")
	seedRecipeIngredient(t, gdb, cuisine.ID, sugar.ID, 500.0, "g", false, false)
	seedStock(t, gdb, family.ID, sugar.ID, 0.1, "kg", nil)

	mustBeAvailable(t, service, gdb, cuisine.ID, true)
}

func TestGetMenuAnnotatesAvailability(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	service := NewMenuService(gdb)

	egg := seedIngredient(t, gdb, "egg")
	omelette := seedCuisine(t, gdb, family.ID, ac.UserID, "omelette")
	seedRecipeIngredient(t, gdb, omelette.ID, egg.ID, 3.0, "pieces", false, false)
	seedCuisine(t, gdb, family.ID, ac.UserID, "water")

	menu, err := service.GetMenu(ac)
	if err != nil {
		t.Fatalf("GetMenu failed: %v", err)
	}
	if len(menu) != 2 {
		t.Fatalf("Expected 2 menu entries, got %d", len(menu))
	}

	byName := map[string]bool{}
	for _, entry := range menu {
		byName[entry.Name] = entry.IsAvailable
	}
	if byName["omelette"] {
		t.Errorf("Expected omelette to be unavailable without eggs in stock")
	}
	if !byName["water"] {
		t.Errorf("Expected ingredient-less cuisine to be available")
	}
}
