package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"herdbook/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("farmer%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAnimal registers an active cow for the user.
func CreateTestAnimal(t *testing.T, db *gorm.DB, userID string) *models.Animal {
	t.Helper()

	n := nextID()
	animal := &models.Animal{
		UserID:    userID,
		TagNumber: fmt.Sprintf("TAG-%04d", n),
		Name:      fmt.Sprintf("Cow %d", n),
		Breed:     "Friesian",
		Sex:       models.AnimalSexFemale,
		Status:    models.AnimalStatusActive,
	}
	if err := db.Create(animal).Error; err != nil {
		t.Fatalf("failed to create test animal: %v", err)
	}
	return animal
}

// CreateTestFeedingRecord inserts a feeding record directly, bypassing the ledger sync.
func CreateTestFeedingRecord(t *testing.T, db *gorm.DB, userID, animalID string, cost string) *models.FeedingRecord {
	t.Helper()

	rec := &models.FeedingRecord{
		UserID:     userID,
		AnimalID:   animalID,
		RecordDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		FeedType:   "Dairy meal",
		QuantityKg: decimal.NewFromInt(20),
	}
	if cost != "" {
		rec.Cost = decimal.NewNullDecimal(decimal.RequireFromString(cost))
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to create test feeding record: %v", err)
	}
	return rec
}

// CreateTestProductionRecord inserts a sold milk yield directly, bypassing the ledger sync.
func CreateTestProductionRecord(t *testing.T, db *gorm.DB, userID, animalID string, litres, price string) *models.ProductionRecord {
	t.Helper()

	rec := &models.ProductionRecord{
		UserID:       userID,
		AnimalID:     animalID,
		RecordDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Quantity:     decimal.RequireFromString(litres),
		UseType:      models.UseTypeSold,
		PricePerUnit: decimal.NewNullDecimal(decimal.RequireFromString(price)),
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to create test production record: %v", err)
	}
	return rec
}

// CreateTestBreedingRecord inserts a breeding record directly, bypassing the ledger sync.
func CreateTestBreedingRecord(t *testing.T, db *gorm.DB, userID, animalID string, cost string) *models.BreedingRecord {
	t.Helper()

	bred := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	calving := models.ExpectedCalving(bred)
	rec := &models.BreedingRecord{
		UserID:              userID,
		AnimalID:            animalID,
		BreedingDate:        bred,
		Method:              models.BreedingMethodArtificialInsemination,
		Status:              models.BreedingStatusPending,
		ExpectedCalvingDate: &calving,
	}
	if cost != "" {
		rec.Cost = decimal.NewNullDecimal(decimal.RequireFromString(cost))
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to create test breeding record: %v", err)
	}
	return rec
}

// CreateTestLedgerEntry creates a manual (unlinked) ledger entry.
func CreateTestLedgerEntry(t *testing.T, db *gorm.DB, userID string, txType models.LedgerType, category string, amount int64) *models.LedgerEntry {
	t.Helper()

	entry := &models.LedgerEntry{
		UserID:          userID,
		TransactionType: txType,
		Category:        category,
		Amount:          amount,
		TransactionDate: time.Now().UTC().Truncate(time.Second),
		Description:     fmt.Sprintf("manual entry %d", nextID()),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test ledger entry: %v", err)
	}
	return entry
}
