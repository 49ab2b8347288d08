package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/auth"
	"github.com/familychef/familychef/internal/models"
)

// expiryWindow is how far ahead the expiry sweep looks
const expiryWindow = 3 * 24 * time.Hour

// SweepResult reports how many alerts a combined sweep created
type SweepResult struct {
	LowStockAlerts int
	ExpiryAlerts   int
}

// Summary renders the result as a human-readable job log line
func (r SweepResult) Summary() string {
	return fmt.Sprintf("Daily alert check completed. Created %d low stock alerts. Created %d expiry alerts.",
		r.LowStockAlerts, r.ExpiryAlerts)
}

// AlertService defines the interface for alert detection and resolution
type AlertService interface {
	GetAlerts(ac auth.Context) ([]models.Alert, error)
	ResolveAlert(ac auth.Context, id uint) (models.Alert, error)
	CheckLowStockAlerts() (int, error)
	CheckExpiredItems() (int, error)
	RunDailySweep() (SweepResult, error)
}

// alertService implements the AlertService interface
type alertService struct {
	db *gorm.DB
}

// NewAlertService creates a new alert service
func NewAlertService(db *gorm.DB) AlertService {
	return &alertService{
		db: db,
	}
}

// GetAlerts returns the alerts of the caller's families
func (s *alertService) GetAlerts(ac auth.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	result := s.db.Preload("Ingredient").Where("family_id IN ?", ac.FamilyIDs).Find(&alerts)
	return alerts, result.Error
}

// ResolveAlert marks an alert resolved with a timestamp. Resolving an
// already-resolved alert just refreshes the timestamp.
func (s *alertService) ResolveAlert(ac auth.Context, id uint) (models.Alert, error) {
	var alert models.Alert
	if err := s.db.Preload("Ingredient").First(&alert, id).Error; err != nil {
		return models.Alert{}, err
	}

	if !ac.MemberOf(alert.FamilyID) {
		return models.Alert{}, gorm.ErrRecordNotFound
	}

	now := time.Now()
	alert.IsResolved = true
	alert.ResolvedAt = &now

	result := s.db.Save(&alert)
	return alert, result.Error
}

// CheckLowStockAlerts scans every pantry row against its family's
// configured threshold and creates LOW_STOCK alerts. No threshold
// means never alert. Units must match textually; no conversion is
// attempted. At most one active alert per (family, ingredient) is
// kept; the sweep checks before insert, so re-running it against
// unchanged stock creates nothing.
func (s *alertService) CheckLowStockAlerts() (int, error) {
	var stock []models.PantryStock
	if err := s.db.Preload("Ingredient").Find(&stock).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, item := range stock {
		var threshold models.LowStockThreshold
		err := s.db.Where("family_id = ? AND ingredient_id = ?", item.FamilyID, item.IngredientID).
			First(&threshold).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No threshold configured for this ingredient, skip
			continue
		}
		if err != nil {
			return created, err
		}

		if item.Unit != threshold.Unit || item.QtyAvailable.Cmp(threshold.ThresholdQty) > 0 {
			continue
		}

		active, err := s.hasActiveAlert(item.FamilyID, item.IngredientID, models.AlertTypeLowStock)
		if err != nil {
			return created, err
		}
		if active {
			continue
		}

		alert := models.Alert{
			FamilyID:     item.FamilyID,
			IngredientID: item.IngredientID,
			AlertType:    models.AlertTypeLowStock,
			Message: fmt.Sprintf("Low stock: %s has %s %s remaining (threshold: %s %s)",
				item.Ingredient.Name, item.QtyAvailable.String(), item.Unit,
				threshold.ThresholdQty.String(), threshold.Unit),
		}
		if err := s.db.Create(&alert).Error; err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

// CheckExpiredItems scans pantry rows whose best-before date falls
// within the next three days (or has passed) and creates EXPIRED
// alerts. Already-expired and expiring-soon items share the alert
// type and differ only in message text, so the active-alert dedup
// holds no matter how often the sweep reclassifies the remaining days.
func (s *alertService) CheckExpiredItems() (int, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := today.Add(expiryWindow)

	var expiring []models.PantryStock
	err := s.db.Preload("Ingredient").
		Where("best_before IS NOT NULL AND best_before <= ?", cutoff).
		Find(&expiring).Error
	if err != nil {
		return 0, err
	}

	created := 0
	for _, item := range expiring {
		var message string
		if !item.BestBefore.After(today) {
			message = fmt.Sprintf("Expired: %s expired on %s",
				item.Ingredient.Name, item.BestBefore.Format("2006-01-02"))
		} else {
			days := int(item.BestBefore.Sub(today).Hours() / 24)
			message = fmt.Sprintf("Expiring soon: %s expires in %d day(s) on %s",
				item.Ingredient.Name, days, item.BestBefore.Format("2006-01-02"))
		}

		active, err := s.hasActiveAlert(item.FamilyID, item.IngredientID, models.AlertTypeExpired)
		if err != nil {
			return created, err
		}
		if active {
			continue
		}

		alert := models.Alert{
			FamilyID:     item.FamilyID,
			IngredientID: item.IngredientID,
			AlertType:    models.AlertTypeExpired,
			Message:      message,
		}
		if err := s.db.Create(&alert).Error; err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

// RunDailySweep runs both sweeps and returns their structured counts
func (s *alertService) RunDailySweep() (SweepResult, error) {
	var result SweepResult

	lowStock, err := s.CheckLowStockAlerts()
	result.LowStockAlerts = lowStock
	if err != nil {
		return result, err
	}

	expiry, err := s.CheckExpiredItems()
	result.ExpiryAlerts = expiry
	return result, err
}

// hasActiveAlert reports whether an unresolved alert of the given type
// exists for (family, ingredient)
func (s *alertService) hasActiveAlert(familyID, ingredientID uint, alertType string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Alert{}).
		Where("family_id = ? AND ingredient_id = ? AND alert_type = ? AND is_resolved = ?",
			familyID, ingredientID, alertType, false).
		Count(&count).Error
	return count > 0, err
}
