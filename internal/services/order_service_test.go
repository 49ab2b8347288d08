package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/models"
	"github.com/familychef/familychef/internal/notify"
)

func newOrderService(gdb *gorm.DB, publisher notify.Publisher) OrderService {
	return NewOrderService(gdb, NewPantryService(gdb), publisher)
}

func TestCreateOrderSnapshotsRecipe(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	publisher := &recordingPublisher{}
	service := newOrderService(gdb, publisher)

	rice := seedIngredient(t, gdb, "rice")
	cuisine := seedCuisine(t, gdb, family.ID, ac.UserID, "fried rice")
	ri := seedRecipeIngredient(t, gdb, cuisine.ID, rice.ID, 0.5, "kg", false, false)

	order, err := service.CreateOrder(ac, models.CreateOrderRequest{
		FamilyID:  family.ID,
		CuisineID: cuisine.ID,
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if order.Status != models.OrderStatusNew {
		t.Errorf("Expected status NEW, got %s", order.Status)
	}
	if len(order.OrderIngredients) != 1 {
		t.Fatalf("Expected 1 snapshot row, got %d", len(order.OrderIngredients))
	}
	if order.OrderIngredients[0].Quantity.Cmp(decimal.NewFromFloat(0.5)) != 0 {
		t.Errorf("Expected snapshot quantity 0.5, got %s", order.OrderIngredients[0].Quantity.String())
	}

	// Editing the recipe afterwards must not touch the snapshot
	ri.Quantity = decimal.NewFromInt(10)
	if err := gdb.Save(&ri).Error; err != nil {
		t.Fatalf("Failed to update recipe ingredient: %v", err)
	}

	reloaded, err := service.GetOrderByID(ac, order.ID)
	if err != nil {
		t.Fatalf("GetOrderByID failed: %v", err)
	}
	if reloaded.OrderIngredients[0].Quantity.Cmp(decimal.NewFromFloat(0.5)) != 0 {
		t.Errorf("Snapshot changed after recipe edit: %s", reloaded.OrderIngredients[0].Quantity.String())
	}

	if len(publisher.topics) != 1 || publisher.topics[0] != notify.OrdersTopic(family.ID) {
		t.Errorf("Expected one publish on the family orders topic, got %v", publisher.topics)
	}
}

func TestCreateOrderRejectsForeignFamily(t *testing.T) {
	gdb := setupTestDB(t)
	ac, _ := seedFamily(t, gdb, "smith")
	otherAC, otherFamily := seedFamily(t, gdb, "jones")
	service := newOrderService(gdb, &recordingPublisher{})

	cuisine := seedCuisine(t, gdb, otherFamily.ID, otherAC.UserID, "stew")

	_, err := service.CreateOrder(ac, models.CreateOrderRequest{
		FamilyID:  otherFamily.ID,
		CuisineID: cuisine.ID,
	})
	if !errors.Is(err, ErrNotFamilyMember) {
		t.Errorf("Expected ErrNotFamilyMember, got %v", err)
	}
}

func TestUpdateStatusDeductsOnceOnDone(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	service := newOrderService(gdb, &recordingPublisher{})

	rice := seedIngredient(t, gdb, "rice")
	seedStock(t, gdb, family.ID, rice.ID, 10.0, "kg", nil)
	cuisine := seedCuisine(t, gdb, family.ID, ac.UserID, "fried rice")
	seedRecipeIngredient(t, gdb, cuisine.ID, rice.ID, 3.0, "kg", false, false)

	order, err := service.CreateOrder(ac, models.CreateOrderRequest{
		FamilyID:  family.ID,
		CuisineID: cuisine.ID,
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// NEW and COOKING never touch the pantry
	if _, err := service.UpdateStatus(ac, order.ID, models.OrderStatusCooking); err != nil {
		t.Fatalf("UpdateStatus to COOKING failed: %v", err)
	}
	assertStockQty(t, gdb, family.ID, rice.ID, "10")

	if _, err := service.UpdateStatus(ac, order.ID, models.OrderStatusDone); err != nil {
		t.Fatalf("UpdateStatus to DONE failed: %v", err)
	}
	assertStockQty(t, gdb, family.ID, rice.ID, "7")

	// Writing DONE again must not deduct a second time
	if _, err := service.UpdateStatus(ac, order.ID, models.OrderStatusDone); err != nil {
		t.Fatalf("Repeated DONE failed: %v", err)
	}
	assertStockQty(t, gdb, family.ID, rice.ID, "7")
}

func TestUpdateStatusClampsStockAtZero(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	service := newOrderService(gdb, &recordingPublisher{})

	rice := seedIngredient(t, gdb, "rice")
	seedStock(t, gdb, family.ID, rice.ID, 1.0, "kg", nil)
	cuisine := seedCuisine(t, gdb, family.ID, ac.UserID, "feast")
	seedRecipeIngredient(t, gdb, cuisine.ID, rice.ID, 4.0, "kg", false, false)

	order, err := service.CreateOrder(ac, models.CreateOrderRequest{
		FamilyID:  family.ID,
		CuisineID: cuisine.ID,
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if _, err := service.UpdateStatus(ac, order.ID, models.OrderStatusDone); err != nil {
		t.Fatalf("UpdateStatus to DONE failed: %v", err)
	}
	assertStockQty(t, gdb, family.ID, rice.ID, "0")
}

func TestUpdateStatusSkipsMissingPantryRow(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	service := newOrderService(gdb, &recordingPublisher{})

	saffron := seedIngredient(t, gdb, "saffron")
	cuisine := seedCuisine(t, gdb, family.ID, ac.UserID, "paella")
	seedRecipeIngredient(t, gdb, cuisine.ID, saffron.ID, 0.01, "kg", false, false)

	order, err := service.CreateOrder(ac, models.CreateOrderRequest{
		FamilyID:  family.ID,
		CuisineID: cuisine.ID,
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// No pantry row for saffron exists; completing the order must not
	// fail or create one
	if _, err := service.UpdateStatus(ac, order.ID, models.OrderStatusDone); err != nil {
		t.Fatalf("UpdateStatus to DONE failed: %v", err)
	}

	var count int64
	gdb.Model(&models.PantryStock{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no pantry rows, got %d", count)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	service := newOrderService(gdb, &recordingPublisher{})

	cuisine := seedCuisine(t, gdb, family.ID, ac.UserID, "toast")
	order, err := service.CreateOrder(ac, models.CreateOrderRequest{
		FamilyID:  family.ID,
		CuisineID: cuisine.ID,
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if _, err := service.UpdateStatus(ac, order.ID, "BURNED"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}

	// The stored order must be untouched by the rejected write
	stored, err := service.GetOrderByID(ac, order.ID)
	if err != nil {
		t.Fatalf("GetOrderByID failed: %v", err)
	}
	if stored.Status != models.OrderStatusNew {
		t.Errorf("Expected status NEW after rejected update, got %s", stored.Status)
	}
}

func assertStockQty(t *testing.T, gdb *gorm.DB, familyID, ingredientID uint, want string) {
	t.Helper()

	var stock models.PantryStock
	err := gdb.Where("family_id = ? AND ingredient_id = ?", familyID, ingredientID).
		First(&stock).Error
	if err != nil {
		t.Fatalf("Failed to load stock: %v", err)
	}
	if stock.QtyAvailable.Cmp(decimal.RequireFromString(want)) != 0 {
		t.Errorf("Expected stock %s, got %s", want, stock.QtyAvailable.String())
	}
}
