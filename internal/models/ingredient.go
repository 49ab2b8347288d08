package models

import (
	"time"
)

// Ingredient is shared across families and referenced by recipes,
// pantry stock, alerts and shopping lists
type Ingredient struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"unique" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}
