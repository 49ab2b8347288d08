package services

import (
	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/auth"
	"github.com/familychef/familychef/internal/models"
	"github.com/familychef/familychef/internal/notify"
)

// OrderService defines the interface for the order lifecycle: creation
// with ingredient snapshots, status transitions and pantry deduction
type OrderService interface {
	GetOrders(ac auth.Context) ([]models.Order, error)
	GetOrderByID(ac auth.Context, id uint) (models.Order, error)
	CreateOrder(ac auth.Context, req models.CreateOrderRequest) (models.Order, error)
	UpdateStatus(ac auth.Context, id uint, status string) (models.Order, error)
}

// orderService implements the OrderService interface
type orderService struct {
	db        *gorm.DB
	pantry    PantryService
	publisher notify.Publisher
}

// NewOrderService creates a new order service
func NewOrderService(db *gorm.DB, pantry PantryService, publisher notify.Publisher) OrderService {
	return &orderService{
		db:        db,
		pantry:    pantry,
		publisher: publisher,
	}
}

// GetOrders returns the orders of the caller's families
func (s *orderService) GetOrders(ac auth.Context) ([]models.Order, error) {
	var orders []models.Order
	result := s.db.Preload("Cuisine").Preload("OrderIngredients").
		Preload("OrderIngredients.Ingredient").
		Where("family_id IN ?", ac.FamilyIDs).Find(&orders)
	return orders, result.Error
}

// GetOrderByID returns an order from one of the caller's families
func (s *orderService) GetOrderByID(ac auth.Context, id uint) (models.Order, error) {
	order, err := s.loadOrder(id)
	if err != nil {
		return models.Order{}, err
	}

	if !ac.MemberOf(order.FamilyID) {
		return models.Order{}, gorm.ErrRecordNotFound
	}

	return order, nil
}

// CreateOrder persists a new order and snapshots the cuisine's recipe
// ingredients into it. The snapshot happens exactly once, inside the
// same transaction, so later recipe edits never change what this order
// will deduct. Family subscribers are notified with the full order.
func (s *orderService) CreateOrder(ac auth.Context, req models.CreateOrderRequest) (models.Order, error) {
	if !ac.MemberOf(req.FamilyID) {
		return models.Order{}, ErrNotFamilyMember
	}

	var cuisine models.Cuisine
	err := s.db.Preload("RecipeIngredients").
		Where("id = ? AND family_id = ?", req.CuisineID, req.FamilyID).
		First(&cuisine).Error
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		FamilyID:     req.FamilyID,
		CuisineID:    req.CuisineID,
		CreatedByID:  ac.UserID,
		Status:       models.OrderStatusNew,
		ScheduledFor: req.ScheduledFor,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, ri := range cuisine.RecipeIngredients {
			snapshot := models.OrderItemIngredient{
				OrderID:      order.ID,
				IngredientID: ri.IngredientID,
				Quantity:     ri.Quantity,
				Unit:         ri.Unit,
			}
			if err := tx.Create(&snapshot).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	created, err := s.loadOrder(order.ID)
	if err != nil {
		return models.Order{}, err
	}

	s.publisher.Publish(notify.OrdersTopic(created.FamilyID), notify.OrderUpdated(created))
	return created, nil
}

// UpdateStatus validates and persists a status change. Pantry stock is
// deducted only on an actual transition into DONE; writing DONE over an
// order that is already DONE must not deduct a second time. The new
// status and the deduction are committed before subscribers hear about
// either.
func (s *orderService) UpdateStatus(ac auth.Context, id uint, status string) (models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return models.Order{}, ErrInvalidStatus
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := lockForUpdate(tx).First(&order, id).Error; err != nil {
			return err
		}

		if !ac.MemberOf(order.FamilyID) {
			return gorm.ErrRecordNotFound
		}

		wasDone := order.Status == models.OrderStatusDone
		order.Status = status
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if status == models.OrderStatusDone && !wasDone {
			return s.deductIngredients(tx, order)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	updated, err := s.loadOrder(id)
	if err != nil {
		return models.Order{}, err
	}

	s.publisher.Publish(notify.OrdersTopic(updated.FamilyID), notify.OrderUpdated(updated))
	return updated, nil
}

// deductIngredients subtracts each snapshot quantity from the family's
// pantry. Ingredients the family never stocked are skipped.
func (s *orderService) deductIngredients(tx *gorm.DB, order models.Order) error {
	var snapshots []models.OrderItemIngredient
	if err := tx.Where("order_id = ?", order.ID).Find(&snapshots).Error; err != nil {
		return err
	}

	for _, item := range snapshots {
		if err := s.pantry.Deduct(tx, order.FamilyID, item.IngredientID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// loadOrder fetches the full order representation used in responses
// and notifications
func (s *orderService) loadOrder(id uint) (models.Order, error) {
	var order models.Order
	result := s.db.Preload("Cuisine").Preload("CreatedBy").
		Preload("OrderIngredients").Preload("OrderIngredients.Ingredient").
		First(&order, id)
	return order, result.Error
}
