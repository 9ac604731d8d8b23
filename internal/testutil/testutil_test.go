package testutil_test

import (
	"testing"

	"herdbook/internal/errors"
	"herdbook/internal/models"
	"herdbook/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"users", "animals", "production_records", "feeding_records", "breeding_records", "ledger_entries", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestUser(t, first)

	var count int64
	second.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected isolated databases, found %d users in the second one", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	animal := testutil.CreateTestAnimal(t, db, user.ID)
	if animal.UserID != user.ID {
		t.Errorf("expected animal owned by %s, got %s", user.ID, animal.UserID)
	}

	feeding := testutil.CreateTestFeedingRecord(t, db, user.ID, animal.ID, "1500")
	if feeding.LedgerAmount() != 1500 {
		t.Errorf("expected feeding amount 1500, got %d", feeding.LedgerAmount())
	}

	production := testutil.CreateTestProductionRecord(t, db, user.ID, animal.ID, "10", "45")
	if production.LedgerAmount() != 450 {
		t.Errorf("expected production amount 450, got %d", production.LedgerAmount())
	}

	breeding := testutil.CreateTestBreedingRecord(t, db, user.ID, animal.ID, "")
	if breeding.LedgerAmount() != 0 {
		t.Errorf("expected breeding amount 0, got %d", breeding.LedgerAmount())
	}

	entry := testutil.CreateTestLedgerEntry(t, db, user.ID, models.LedgerTypeExpense, "Vet", 800)
	if entry.IsLinked() {
		t.Error("manual entry should not be linked")
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrLedgerEntryNotFound, "custom message")
	testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
