package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/auth"
	"github.com/familychef/familychef/internal/models"
	"github.com/familychef/familychef/internal/notify"
)

// restockFactor restocks low-stock ingredients to 150% of their threshold
var restockFactor = decimal.NewFromFloat(1.5)

// defaultQtyNeeded is the fallback when no threshold or stock row can
// anchor a real quantity
var defaultQtyNeeded = decimal.NewFromInt(1)

const defaultUnit = "unit"

// ShoppingService defines the interface for shopping list derivation
// and resolution
type ShoppingService interface {
	GetItems(ac auth.Context) ([]models.ShoppingListItem, error)
	ResolveItem(ac auth.Context, id uint) (models.ShoppingListItem, error)
	GenerateFromAlerts() (int, error)
}

// shoppingService implements the ShoppingService interface
type shoppingService struct {
	db        *gorm.DB
	publisher notify.Publisher
}

// NewShoppingService creates a new shopping list service
func NewShoppingService(db *gorm.DB, publisher notify.Publisher) ShoppingService {
	return &shoppingService{
		db:        db,
		publisher: publisher,
	}
}

// GetItems returns the shopping list entries of the caller's families
func (s *shoppingService) GetItems(ac auth.Context) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	result := s.db.Preload("Ingredient").Where("family_id IN ?", ac.FamilyIDs).Find(&items)
	return items, result.Error
}

// ResolveItem marks a shopping list entry bought, stamping the
// resolution time, and notifies family subscribers
func (s *shoppingService) ResolveItem(ac auth.Context, id uint) (models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	if err := s.db.Preload("Ingredient").First(&item, id).Error; err != nil {
		return models.ShoppingListItem{}, err
	}

	if !ac.MemberOf(item.FamilyID) {
		return models.ShoppingListItem{}, gorm.ErrRecordNotFound
	}

	now := time.Now()
	item.ResolvedAt = &now
	if err := s.db.Save(&item).Error; err != nil {
		return models.ShoppingListItem{}, err
	}

	s.publisher.Publish(notify.ShoppingTopic(item.FamilyID), notify.ShoppingListUpdated(item))
	return item, nil
}

// GenerateFromAlerts derives shopping list entries from every active
// alert. An open entry for the same (family, ingredient) suppresses a
// new one; quantities are never merged. LOW_STOCK entries restock to
// 150% of the threshold minus what is left; EXPIRED entries replace
// the full expiring amount. When neither lookup can anchor a quantity
// the entry falls back to 1 "unit". Entries are only created for
// strictly positive quantities.
func (s *shoppingService) GenerateFromAlerts() (int, error) {
	var alerts []models.Alert
	if err := s.db.Where("is_resolved = ?", false).Find(&alerts).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, alert := range alerts {
		open, err := s.hasOpenItem(alert.FamilyID, alert.IngredientID)
		if err != nil {
			return created, err
		}
		if open {
			continue
		}

		qty, unit, err := s.deriveQuantity(alert)
		if err != nil {
			return created, err
		}
		if qty.Cmp(decimal.Zero) <= 0 {
			continue
		}

		item := models.ShoppingListItem{
			FamilyID:     alert.FamilyID,
			IngredientID: alert.IngredientID,
			QtyNeeded:    qty,
			Unit:         unit,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return created, err
		}
		created++

		s.publisher.Publish(notify.ShoppingTopic(item.FamilyID), notify.ShoppingListUpdated(item))
	}

	return created, nil
}

// deriveQuantity computes how much of the alerted ingredient to buy
func (s *shoppingService) deriveQuantity(alert models.Alert) (decimal.Decimal, string, error) {
	switch alert.AlertType {
	case models.AlertTypeLowStock:
		var threshold models.LowStockThreshold
		err := s.db.Where("family_id = ? AND ingredient_id = ?", alert.FamilyID, alert.IngredientID).
			First(&threshold).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultQtyNeeded, defaultUnit, nil
		}
		if err != nil {
			return decimal.Zero, "", err
		}

		var stock models.PantryStock
		err = s.db.Where("family_id = ? AND ingredient_id = ?", alert.FamilyID, alert.IngredientID).
			First(&stock).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultQtyNeeded, defaultUnit, nil
		}
		if err != nil {
			return decimal.Zero, "", err
		}

		qty := threshold.ThresholdQty.Mul(restockFactor).Sub(stock.QtyAvailable)
		return qty, threshold.Unit, nil

	case models.AlertTypeExpired:
		var stock models.PantryStock
		err := s.db.Where("family_id = ? AND ingredient_id = ?", alert.FamilyID, alert.IngredientID).
			First(&stock).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultQtyNeeded, defaultUnit, nil
		}
		if err != nil {
			return decimal.Zero, "", err
		}

		return stock.QtyAvailable, stock.Unit, nil
	}

	return defaultQtyNeeded, defaultUnit, nil
}

// hasOpenItem reports whether an unresolved entry already exists for
// (family, ingredient)
func (s *shoppingService) hasOpenItem(familyID, ingredientID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.ShoppingListItem{}).
		Where("family_id = ? AND ingredient_id = ? AND resolved_at IS NULL", familyID, ingredientID).
		Count(&count).Error
	return count > 0, err
}
