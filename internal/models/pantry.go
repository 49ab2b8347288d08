package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PantryStock tracks the on-hand quantity of an ingredient for a family.
// QtyAvailable is never persisted negative; deduction clamps at zero.
type PantryStock struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	FamilyID     uint            `json:"family_id" gorm:"column:family_id;uniqueIndex:idx_pantry_family_ingredient"`
	IngredientID uint            `json:"ingredient_id" gorm:"column:ingredient_id;uniqueIndex:idx_pantry_family_ingredient"`
	QtyAvailable decimal.Decimal `json:"qty_available" gorm:"column:qty_available;type:decimal(10,2)"`
	Unit         string          `json:"unit"`
	BestBefore   *time.Time      `json:"best_before" gorm:"column:best_before"`
	CreatedAt    time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"column:updated_at"`
	Ingredient   *Ingredient     `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
}

// TableName specifies the table name for PantryStock model
func (PantryStock) TableName() string {
	return "pantry_stock"
}

// LowStockThreshold is the trigger point below which a LOW_STOCK
// alert is raised for (family, ingredient)
type LowStockThreshold struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	FamilyID     uint            `json:"family_id" gorm:"column:family_id;uniqueIndex:idx_threshold_family_ingredient"`
	IngredientID uint            `json:"ingredient_id" gorm:"column:ingredient_id;uniqueIndex:idx_threshold_family_ingredient"`
	ThresholdQty decimal.Decimal `json:"threshold_qty" gorm:"column:threshold_qty;type:decimal(10,2)"`
	Unit         string          `json:"unit"`
	CreatedAt    time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"column:updated_at"`
	Ingredient   *Ingredient     `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
}
