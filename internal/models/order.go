package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses form a closed set; any other value is rejected
const (
	OrderStatusNew     = "NEW"
	OrderStatusCooking = "COOKING"
	OrderStatusDone    = "DONE"
)

// ValidOrderStatus reports whether s is one of the enumerated order statuses
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusNew, OrderStatusCooking, OrderStatusDone:
		return true
	}
	return false
}

// Order is a request to cook a cuisine for a family
type Order struct {
	ID               uint                  `gorm:"primaryKey" json:"id"`
	FamilyID         uint                  `json:"family_id" gorm:"column:family_id"`
	CuisineID        uint                  `json:"cuisine_id" gorm:"column:cuisine_id"`
	CreatedByID      uint                  `json:"created_by_id" gorm:"column:created_by_id"`
	Status           string                `json:"status" gorm:"default:NEW"`
	ScheduledFor     *time.Time            `json:"scheduled_for" gorm:"column:scheduled_for"`
	CreatedAt        time.Time             `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time             `json:"updated_at" gorm:"column:updated_at"`
	Family           *Family               `json:"family,omitempty" gorm:"foreignKey:FamilyID"`
	Cuisine          *Cuisine              `json:"cuisine,omitempty" gorm:"foreignKey:CuisineID"`
	CreatedBy        *User                 `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	OrderIngredients []OrderItemIngredient `json:"order_ingredients,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItemIngredient is a frozen copy of a recipe ingredient taken at
// order-creation time, so later recipe edits never change what an old
// order deducted
type OrderItemIngredient struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `json:"order_id" gorm:"column:order_id"`
	IngredientID uint            `json:"ingredient_id" gorm:"column:ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity" gorm:"type:decimal(10,2)"`
	Unit         string          `json:"unit"`
	Ingredient   *Ingredient     `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
}

// CreateOrderRequest is the request body for placing an order
type CreateOrderRequest struct {
	FamilyID     uint       `json:"family_id"`
	CuisineID    uint       `json:"cuisine_id"`
	ScheduledFor *time.Time `json:"scheduled_for"`
}

// UpdateOrderStatusRequest is the request body for an order status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
