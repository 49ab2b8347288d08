package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/auth"
	"github.com/familychef/familychef/internal/db"
	"github.com/familychef/familychef/internal/models"
	"github.com/familychef/familychef/internal/notify"
)

// setupTestDB opens an in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	return gdb
}

// seedFamily creates a user, a family and the membership linking them,
// returning an auth context for that user
func seedFamily(t *testing.T, gdb *gorm.DB, familyName string) (auth.Context, models.Family) {
	t.Helper()

	user := models.User{Username: familyName + "-cook", Role: "member"}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	family := models.Family{Name: familyName}
	if err := gdb.Create(&family).Error; err != nil {
		t.Fatalf("Failed to create family: %v", err)
	}

	member := models.FamilyMember{UserID: user.ID, FamilyID: family.ID, Role: models.RoleChef}
	if err := gdb.Create(&member).Error; err != nil {
		t.Fatalf("Failed to create family member: %v", err)
	}

	return auth.Context{
		UserID:    user.ID,
		Username:  user.Username,
		FamilyIDs: []uint{family.ID},
	}, family
}

// seedIngredient creates a globally shared ingredient
func seedIngredient(t *testing.T, gdb *gorm.DB, name string) models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{Name: name}
	if err := gdb.Create(&ingredient).Error; err != nil {
		t.Fatalf("Failed to create ingredient: %v", err)
	}
	return ingredient
}

// seedStock creates a pantry stock row
func seedStock(t *testing.T, gdb *gorm.DB, familyID, ingredientID uint, qty float64, unit string, bestBefore *time.Time) models.PantryStock {
	t.Helper()

	stock := models.PantryStock{
		FamilyID:     familyID,
		IngredientID: ingredientID,
		QtyAvailable: decimal.NewFromFloat(qty),
		Unit:         unit,
		BestBefore:   bestBefore,
	}
	if err := gdb.Create(&stock).Error; err != nil {
		t.Fatalf("Failed to create pantry stock: %v", err)
	}
	return stock
}

// seedThreshold creates a low-stock threshold
func seedThreshold(t *testing.T, gdb *gorm.DB, familyID, ingredientID uint, qty float64, unit string) models.LowStockThreshold {
	t.Helper()

	threshold := models.LowStockThreshold{
		FamilyID:     familyID,
		IngredientID: ingredientID,
		ThresholdQty: decimal.NewFromFloat(qty),
		Unit:         unit,
	}
	if err := gdb.Create(&threshold).Error; err != nil {
		t.Fatalf("Failed to create threshold: %v", err)
	}
	return threshold
}

// recordingPublisher captures published events for assertions
type recordingPublisher struct {
	topics   []string
	payloads []interface{}
}

func (p *recordingPublisher) Publish(topic string, payload interface{}) {
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
}

var _ notify.Publisher = (*recordingPublisher)(nil)
