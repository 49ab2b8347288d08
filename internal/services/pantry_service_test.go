package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/auth"
	"github.com/familychef/familychef/internal/models"
)

func TestUpdateStockClampsNegativeToZero(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	service := NewPantryService(gdb)

	rice := seedIngredient(t, gdb, "rice")
	stock := seedStock(t, gdb, family.ID, rice.ID, 5.0, "kg", nil)

	updated, err := service.UpdateStock(ac, stock.ID, models.PantryStock{
		QtyAvailable: decimal.NewFromFloat(-2.0),
		Unit:         "kg",
	})
	if err != nil {
		t.Fatalf("UpdateStock failed: %v", err)
	}
	if updated.QtyAvailable.Cmp(decimal.Zero) != 0 {
		t.Errorf("Expected quantity clamped to 0, got %s", updated.QtyAvailable.String())
	}
}

func TestDeductClampsAtZero(t *testing.T) {
	gdb := setupTestDB(t)
	_, family := seedFamily(t, gdb, "smith")
	service := NewPantryService(gdb)

	rice := seedIngredient(t, gdb, "rice")
	seedStock(t, gdb, family.ID, rice.ID, 1.5, "kg", nil)

	if err := service.Deduct(gdb, family.ID, rice.ID, decimal.NewFromInt(4)); err != nil {
		t.Fatalf("Deduct failed: %v", err)
	}
	assertStockQty(t, gdb, family.ID, rice.ID, "0")
}

func TestDeductIgnoresMissingRow(t *testing.T) {
	gdb := setupTestDB(t)
	_, family := seedFamily(t, gdb, "smith")
	service := NewPantryService(gdb)

	truffle := seedIngredient(t, gdb, "truffle")

	if err := service.Deduct(gdb, family.ID, truffle.ID, decimal.NewFromInt(1)); err != nil {
		t.Fatalf("Deduct of unstocked ingredient failed: %v", err)
	}
}

func TestStockScopedToFamilies(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	_, otherFamily := seedFamily(t, gdb, "jones")
	service := NewPantryService(gdb)

	rice := seedIngredient(t, gdb, "rice")
	mine := seedStock(t, gdb, family.ID, rice.ID, 5.0, "kg", nil)
	theirs := seedStock(t, gdb, otherFamily.ID, rice.ID, 2.0, "kg", nil)

	stock, err := service.GetStock(ac)
	if err != nil {
		t.Fatalf("GetStock failed: %v", err)
	}
	if len(stock) != 1 || stock[0].ID != mine.ID {
		t.Errorf("Expected only own family stock, got %d rows", len(stock))
	}

	if _, err := service.GetStockByID(ac, theirs.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected record-not-found for foreign stock, got %v", err)
	}
}

func TestCreateStockRequiresMembership(t *testing.T) {
	gdb := setupTestDB(t)
	_, family := seedFamily(t, gdb, "smith")
	service := NewPantryService(gdb)

	rice := seedIngredient(t, gdb, "rice")
	stranger := auth.Context{UserID: 999, Username: "stranger"}

	_, err := service.CreateStock(stranger, models.PantryStock{
		FamilyID:     family.ID,
		IngredientID: rice.ID,
		QtyAvailable: decimal.NewFromInt(1),
		Unit:         "kg",
	})
	if !errors.Is(err, ErrNotFamilyMember) {
		t.Errorf("Expected ErrNotFamilyMember, got %v", err)
	}
}
