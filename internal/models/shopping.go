package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ShoppingListItem is a purchase suggestion derived from active alerts.
// An item is open while ResolvedAt is nil; is_resolved is derived from
// that, never stored.
type ShoppingListItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	FamilyID     uint            `json:"family_id" gorm:"column:family_id"`
	IngredientID uint            `json:"ingredient_id" gorm:"column:ingredient_id"`
	QtyNeeded    decimal.Decimal `json:"qty_needed" gorm:"column:qty_needed;type:decimal(10,2)"`
	Unit         string          `json:"unit"`
	CreatedAt    time.Time       `json:"created_at" gorm:"column:created_at"`
	ResolvedAt   *time.Time      `json:"resolved_at" gorm:"column:resolved_at"`
	Ingredient   *Ingredient     `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
}

// TableName specifies the table name for ShoppingListItem model
func (ShoppingListItem) TableName() string {
	return "shopping_list_items"
}

// IsResolved reports whether the item has been marked resolved
func (s ShoppingListItem) IsResolved() bool {
	return s.ResolvedAt != nil
}

// MarshalJSON includes the derived is_resolved flag in API responses
func (s ShoppingListItem) MarshalJSON() ([]byte, error) {
	type alias ShoppingListItem
	return json.Marshal(struct {
		alias
		IsResolved bool `json:"is_resolved"`
	}{alias(s), s.IsResolved()})
}
