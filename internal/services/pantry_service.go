package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/familychef/familychef/internal/auth"
	"github.com/familychef/familychef/internal/models"
)

// PantryService defines the interface for pantry stock and low-stock
// threshold operations
type PantryService interface {
	GetStock(ac auth.Context) ([]models.PantryStock, error)
	GetStockByID(ac auth.Context, id uint) (models.PantryStock, error)
	CreateStock(ac auth.Context, stock models.PantryStock) (models.PantryStock, error)
	UpdateStock(ac auth.Context, id uint, stock models.PantryStock) (models.PantryStock, error)
	DeleteStock(ac auth.Context, id uint) error
	GetThresholds(ac auth.Context) ([]models.LowStockThreshold, error)
	CreateThreshold(ac auth.Context, threshold models.LowStockThreshold) (models.LowStockThreshold, error)
	UpdateThreshold(ac auth.Context, id uint, threshold models.LowStockThreshold) (models.LowStockThreshold, error)
	DeleteThreshold(ac auth.Context, id uint) error
	Deduct(tx *gorm.DB, familyID, ingredientID uint, qty decimal.Decimal) error
}

// pantryService implements the PantryService interface
type pantryService struct {
	db *gorm.DB
}

// NewPantryService creates a new pantry service
func NewPantryService(db *gorm.DB) PantryService {
	return &pantryService{
		db: db,
	}
}

// GetStock returns pantry stock for the caller's families
func (s *pantryService) GetStock(ac auth.Context) ([]models.PantryStock, error) {
	var stock []models.PantryStock
	result := s.db.Preload("Ingredient").Where("family_id IN ?", ac.FamilyIDs).Find(&stock)
	return stock, result.Error
}

// GetStockByID returns a single pantry stock row
func (s *pantryService) GetStockByID(ac auth.Context, id uint) (models.PantryStock, error) {
	var stock models.PantryStock
	result := s.db.Preload("Ingredient").First(&stock, id)
	if result.Error != nil {
		return models.PantryStock{}, result.Error
	}

	if !ac.MemberOf(stock.FamilyID) {
		return models.PantryStock{}, gorm.ErrRecordNotFound
	}

	return stock, nil
}

// CreateStock creates a pantry stock row for one of the caller's families
func (s *pantryService) CreateStock(ac auth.Context, stock models.PantryStock) (models.PantryStock, error) {
	if !ac.MemberOf(stock.FamilyID) {
		return models.PantryStock{}, ErrNotFamilyMember
	}

	result := s.db.Create(&stock)
	return stock, result.Error
}

// UpdateStock replaces the editable fields of a stock row. The row is
// locked for the duration of the write so concurrent edits and order
// deductions never lose updates.
func (s *pantryService) UpdateStock(ac auth.Context, id uint, stock models.PantryStock) (models.PantryStock, error) {
	var updated models.PantryStock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.PantryStock
		if err := lockForUpdate(tx).First(&existing, id).Error; err != nil {
			return err
		}

		if !ac.MemberOf(existing.FamilyID) {
			return gorm.ErrRecordNotFound
		}

		existing.QtyAvailable = stock.QtyAvailable
		if existing.QtyAvailable.IsNegative() {
			existing.QtyAvailable = decimal.Zero
		}
		existing.Unit = stock.Unit
		existing.BestBefore = stock.BestBefore

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		updated = existing
		return nil
	})
	return updated, err
}

// DeleteStock deletes a stock row from one of the caller's families
func (s *pantryService) DeleteStock(ac auth.Context, id uint) error {
	if _, err := s.GetStockByID(ac, id); err != nil {
		return err
	}
	return s.db.Delete(&models.PantryStock{}, id).Error
}

// GetThresholds returns low-stock thresholds for the caller's families
func (s *pantryService) GetThresholds(ac auth.Context) ([]models.LowStockThreshold, error) {
	var thresholds []models.LowStockThreshold
	result := s.db.Preload("Ingredient").Where("family_id IN ?", ac.FamilyIDs).Find(&thresholds)
	return thresholds, result.Error
}

// CreateThreshold creates a low-stock threshold
func (s *pantryService) CreateThreshold(ac auth.Context, threshold models.LowStockThreshold) (models.LowStockThreshold, error) {
	if !ac.MemberOf(threshold.FamilyID) {
		return models.LowStockThreshold{}, ErrNotFamilyMember
	}

	result := s.db.Create(&threshold)
	return threshold, result.Error
}

// UpdateThreshold updates a threshold's quantity and unit
func (s *pantryService) UpdateThreshold(ac auth.Context, id uint, threshold models.LowStockThreshold) (models.LowStockThreshold, error) {
	var existing models.LowStockThreshold
	if err := s.db.First(&existing, id).Error; err != nil {
		return models.LowStockThreshold{}, err
	}

	if !ac.MemberOf(existing.FamilyID) {
		return models.LowStockThreshold{}, gorm.ErrRecordNotFound
	}

	existing.ThresholdQty = threshold.ThresholdQty
	existing.Unit = threshold.Unit

	result := s.db.Save(&existing)
	return existing, result.Error
}

// DeleteThreshold deletes a threshold
func (s *pantryService) DeleteThreshold(ac auth.Context, id uint) error {
	var existing models.LowStockThreshold
	if err := s.db.First(&existing, id).Error; err != nil {
		return err
	}

	if !ac.MemberOf(existing.FamilyID) {
		return gorm.ErrRecordNotFound
	}

	return s.db.Delete(&models.LowStockThreshold{}, id).Error
}

// Deduct subtracts qty from the (family, ingredient) stock row inside
// the caller's transaction, clamping at zero. A missing row is skipped,
// not an error: the family simply never stocked that ingredient.
func (s *pantryService) Deduct(tx *gorm.DB, familyID, ingredientID uint, qty decimal.Decimal) error {
	var stock models.PantryStock
	err := lockForUpdate(tx).
		Where("family_id = ? AND ingredient_id = ?", familyID, ingredientID).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	stock.QtyAvailable = stock.QtyAvailable.Sub(qty)
	if stock.QtyAvailable.IsNegative() {
		stock.QtyAvailable = decimal.Zero
	}

	return tx.Save(&stock).Error
}

// lockForUpdate applies a row-level lock on dialects that support it.
// SQLite rejects FOR UPDATE syntax and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
