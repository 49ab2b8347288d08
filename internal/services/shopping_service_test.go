package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/models"
	"github.com/familychef/familychef/internal/notify"
)

func createAlert(t *testing.T, gdb *gorm.DB, familyID, ingredientID uint, alertType string) models.Alert {
	t.Helper()

	alert := models.Alert{
		FamilyID:     familyID,
		IngredientID: ingredientID,
		AlertType:    alertType,
		Message:      "test alert",
	}
	if err := gdb.Create(&alert).Error; err != nil {
		t.Fatalf("Failed to create alert: %v", err)
	}
	return alert
}

func TestGenerateFromLowStockAlert(t *testing.T) {
	gdb := setupTestDB(t)
	_, family := seedFamily(t, gdb, "smith")
	publisher := &recordingPublisher{}
	service := NewShoppingService(gdb, publisher)

	rice := seedIngredient(t, gdb, "rice")
	seedStock(t, gdb, family.ID, rice.ID, 2.0, "kg", nil)
	seedThreshold(t, gdb, family.ID, rice.ID, 5.0, "kg")
	createAlert(t, gdb, family.ID, rice.ID, models.AlertTypeLowStock)

	created, err := service.GenerateFromAlerts()
	if err != nil {
		t.Fatalf("GenerateFromAlerts failed: %v", err)
	}
	if created != 1 {
		t.Fatalf("Expected 1 item created, got %d", created)
	}

	var item models.ShoppingListItem
	if err := gdb.First(&item).Error; err != nil {
		t.Fatalf("Failed to load item: %v", err)
	}

	// Restock target is 150% of threshold minus remaining stock:
	// 5.0 * 1.5 - 2.0 = 5.5
	want := decimal.NewFromFloat(5.5)
	if item.QtyNeeded.Cmp(want) != 0 {
		t.Errorf("Expected qty_needed 5.5, got %s", item.QtyNeeded.String())
	}
	if item.Unit != "kg" {
		t.Errorf("Expected unit kg, got %s", item.Unit)
	}
	if item.IsResolved() {
		t.Errorf("Expected a freshly generated item to be open")
	}

	if len(publisher.topics) != 1 || publisher.topics[0] != notify.ShoppingTopic(family.ID) {
		t.Errorf("Expected one publish on the family shopping topic, got %v", publisher.topics)
	}
}

func TestGenerateFromExpiredAlert(t *testing.T) {
	gdb := setupTestDB(t)
	_, family := seedFamily(t, gdb, "smith")
	service := NewShoppingService(gdb, &recordingPublisher{})

	yesterday := time.Now().Add(-24 * time.Hour)
	eggs := seedIngredient(t, gdb, "eggs")
	seedStock(t, gdb, family.ID, eggs.ID, 3.0, "pieces", &yesterday)
	createAlert(t, gdb, family.ID, eggs.ID, models.AlertTypeExpired)

	created, err := service.GenerateFromAlerts()
	if err != nil {
		t.Fatalf("GenerateFromAlerts failed: %v", err)
	}
	if created != 1 {
		t.Fatalf("Expected 1 item created, got %d", created)
	}

	var item models.ShoppingListItem
	if err := gdb.First(&item).Error; err != nil {
		t.Fatalf("Failed to load item: %v", err)
	}
	if item.QtyNeeded.Cmp(decimal.NewFromInt(3)) != 0 || item.Unit != "pieces" {
		t.Errorf("Expected replacement of 3 pieces, got %s %s", item.QtyNeeded.String(), item.Unit)
	}
}

func TestGenerateSkipsOpenItem(t *testing.T) {
	gdb := setupTestDB(t)
	_, family := seedFamily(t, gdb, "smith")
	service := NewShoppingService(gdb, &recordingPublisher{})

	rice := seedIngredient(t, gdb, "rice")
	seedStock(t, gdb, family.ID, rice.ID, 2.0, "kg", nil)
	seedThreshold(t, gdb, family.ID, rice.ID, 5.0, "kg")
	createAlert(t, gdb, family.ID, rice.ID, models.AlertTypeLowStock)

	if _, err := service.GenerateFromAlerts(); err != nil {
		t.Fatalf("First generation failed: %v", err)
	}

	// The alert is still active and the entry still open, so a second
	// run must not create or merge anything
	created, err := service.GenerateFromAlerts()
	if err != nil {
		t.Fatalf("Second generation failed: %v", err)
	}
	if created != 0 {
		t.Errorf("Expected 0 items while an open entry exists, got %d", created)
	}

	var count int64
	gdb.Model(&models.ShoppingListItem{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected a single entry, got %d", count)
	}
}

func TestGenerateSkipsNonPositiveQuantity(t *testing.T) {
	gdb := setupTestDB(t)
	_, family := seedFamily(t, gdb, "smith")
	service := NewShoppingService(gdb, &recordingPublisher{})

	// Stock already exceeds the restock target, so the derived
	// quantity is negative and no entry may be created
	rice := seedIngredient(t, gdb, "rice")
	seedStock(t, gdb, family.ID, rice.ID, 9.0, "kg", nil)
	seedThreshold(t, gdb, family.ID, rice.ID, 5.0, "kg")
	createAlert(t, gdb, family.ID, rice.ID, models.AlertTypeLowStock)

	created, err := service.GenerateFromAlerts()
	if err != nil {
		t.Fatalf("GenerateFromAlerts failed: %v", err)
	}
	if created != 0 {
		t.Errorf("Expected 0 items for a non-positive quantity, got %d", created)
	}
}

func TestGenerateFallsBackToUnitQuantity(t *testing.T) {
	gdb := setupTestDB(t)
	_, family := seedFamily(t, gdb, "smith")
	service := NewShoppingService(gdb, &recordingPublisher{})

	// Alert without any threshold or stock row to anchor a quantity
	basil := seedIngredient(t, gdb, "basil")
	createAlert(t, gdb, family.ID, basil.ID, models.AlertTypeLowStock)

	created, err := service.GenerateFromAlerts()
	if err != nil {
		t.Fatalf("GenerateFromAlerts failed: %v", err)
	}
	if created != 1 {
		t.Fatalf("Expected 1 item created, got %d", created)
	}

	var item models.ShoppingListItem
	if err := gdb.First(&item).Error; err != nil {
		t.Fatalf("Failed to load item: %v", err)
	}
	if item.QtyNeeded.Cmp(decimal.NewFromInt(1)) != 0 || item.Unit != "unit" {
		t.Errorf("Expected fallback of 1 unit, got %s %s", item.QtyNeeded.String(), item.Unit)
	}
}

func TestResolveItem(t *testing.T) {
	gdb := setupTestDB(t)
	ac, family := seedFamily(t, gdb, "smith")
	publisher := &recordingPublisher{}
	service := NewShoppingService(gdb, publisher)

	rice := seedIngredient(t, gdb, "rice")
	item := models.ShoppingListItem{
		FamilyID:     family.ID,
		IngredientID: rice.ID,
		QtyNeeded:    decimal.NewFromInt(2),
		Unit:         "kg",
	}
	if err := gdb.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create item: %v", err)
	}

	resolved, err := service.ResolveItem(ac, item.ID)
	if err != nil {
		t.Fatalf("ResolveItem failed: %v", err)
	}
	if !resolved.IsResolved() || resolved.ResolvedAt == nil {
		t.Errorf("Expected a resolved item with a timestamp, got %+v", resolved)
	}
	if len(publisher.topics) != 1 {
		t.Errorf("Expected one publish on resolve, got %d", len(publisher.topics))
	}
}
