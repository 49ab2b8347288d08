package models

import (
	"time"
)

// Alert types
const (
	AlertTypeLowStock = "LOW_STOCK"
	AlertTypeExpired  = "EXPIRED"
)

// Alert flags a pantry condition for a family. At most one active
// (unresolved) alert may exist per (family, ingredient, alert_type);
// the detector enforces this before insert rather than the schema.
type Alert struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	FamilyID     uint        `json:"family_id" gorm:"column:family_id"`
	IngredientID uint        `json:"ingredient_id" gorm:"column:ingredient_id"`
	AlertType    string      `json:"alert_type" gorm:"column:alert_type"`
	Message      string      `json:"message"`
	IsResolved   bool        `json:"is_resolved" gorm:"column:is_resolved;default:false"`
	CreatedAt    time.Time   `json:"created_at" gorm:"column:created_at"`
	ResolvedAt   *time.Time  `json:"resolved_at" gorm:"column:resolved_at"`
	Ingredient   *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
}
