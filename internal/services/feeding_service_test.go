package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/locking"
	"herdbook/internal/models"
	"herdbook/internal/pagination"
	"herdbook/internal/testutil"

	"gorm.io/gorm"
)

func newFeedingService(db *gorm.DB) (FeedingServicer, LedgerServicer) {
	ledger := NewLedgerService(db)
	syncer := NewLedgerSyncer(ledger, locking.NewLocalLocker())
	return NewFeedingService(db, NewAnimalService(db), syncer), ledger
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateFeedingRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("with_cost_books_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, ledger := newFeedingService(db)
		user := testutil.CreateTestUser(t, db)
		animal := testutil.CreateTestAnimal(t, db, user.ID)

		rec, out, err := svc.CreateFeedingRecord(ctx, user.ID, FeedingInput{
			AnimalID:   animal.ID,
			RecordDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			FeedType:   "Dairy meal",
			QuantityKg: decimal.NewFromInt(70),
			Cost:       dec("1500"),
		})
		testutil.AssertNoError(t, err)

		if out.Status != SyncCreated {
			t.Fatalf("expected sync status created, got %s (%s)", out.Status, out.Error)
		}
		entry, err := ledger.FindBySource(ctx, user.ID, models.SourceFeedingRecord, rec.ID)
		testutil.AssertNoError(t, err)
		if entry.Amount != 1500 || entry.Category != "Feed" {
			t.Errorf("expected Feed expense of 1500, got %s %d", entry.Category, entry.Amount)
		}
		if entry.ID != out.LedgerEntryID {
			t.Errorf("expected outcome to carry entry id %s, got %s", entry.ID, out.LedgerEntryID)
		}
	})

	t.Run("without_cost_skips_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newFeedingService(db)
		user := testutil.CreateTestUser(t, db)
		animal := testutil.CreateTestAnimal(t, db, user.ID)

		_, out, err := svc.CreateFeedingRecord(ctx, user.ID, FeedingInput{
			AnimalID: animal.ID, FeedType: "Napier grass", QuantityKg: decimal.NewFromInt(30),
		})
		testutil.AssertNoError(t, err)

		if out.Status != SyncSkipped {
			t.Errorf("expected sync status skipped, got %s", out.Status)
		}
		var count int64
		db.Model(&models.LedgerEntry{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no ledger entries, got %d", count)
		}
	})

	t.Run("animal_of_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newFeedingService(db)
		user := testutil.CreateTestUser(t, db)
		foreign := testutil.CreateTestAnimal(t, db, testutil.CreateTestUser(t, db).ID)

		_, _, err := svc.CreateFeedingRecord(ctx, user.ID, FeedingInput{
			AnimalID: foreign.ID, FeedType: "Hay", QuantityKg: decimal.NewFromInt(10), Cost: dec("100"),
		})
		testutil.AssertAppError(t, err, "ANIMAL_NOT_FOUND")

		var count int64
		db.Model(&models.FeedingRecord{}).Count(&count)
		if count != 0 {
			t.Errorf("expected nothing persisted, got %d records", count)
		}
	})

	t.Run("validation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newFeedingService(db)
		user := testutil.CreateTestUser(t, db)
		animal := testutil.CreateTestAnimal(t, db, user.ID)

		cases := map[string]FeedingInput{
			"missing_feed_type": {AnimalID: animal.ID, QuantityKg: decimal.NewFromInt(10)},
			"zero_quantity":     {AnimalID: animal.ID, FeedType: "Hay"},
			"negative_cost":     {AnimalID: animal.ID, FeedType: "Hay", QuantityKg: decimal.NewFromInt(10), Cost: dec("-1")},
			"sub_unit_cost":     {AnimalID: animal.ID, FeedType: "Hay", QuantityKg: decimal.NewFromInt(10), Cost: dec("0.4")},
			"missing_animal":    {FeedType: "Hay", QuantityKg: decimal.NewFromInt(10)},
		}
		for name, in := range cases {
			t.Run(name, func(t *testing.T) {
				_, _, err := svc.CreateFeedingRecord(ctx, user.ID, in)
				testutil.AssertAppError(t, err, "INVALID_INPUT")
			})
		}
	})

	t.Run("half_unit_cost_is_booked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newFeedingService(db)
		user := testutil.CreateTestUser(t, db)
		animal := testutil.CreateTestAnimal(t, db, user.ID)

		_, out, err := svc.CreateFeedingRecord(ctx, user.ID, FeedingInput{
			AnimalID: animal.ID, FeedType: "Salt lick", QuantityKg: decimal.NewFromInt(1), Cost: dec("0.5"),
		})
		testutil.AssertNoError(t, err)
		if out.Status != SyncCreated {
			t.Errorf("expected created, got %s", out.Status)
		}
	})

	t.Run("sync_failure_keeps_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		syncer := failingSyncer{err: apperrors.Wrap(apperrors.ErrBackendUnavailable, errors.New("ledger down"))}
		svc := NewFeedingService(db, NewAnimalService(db), syncer)
		user := testutil.CreateTestUser(t, db)
		animal := testutil.CreateTestAnimal(t, db, user.ID)

		rec, out, err := svc.CreateFeedingRecord(ctx, user.ID, FeedingInput{
			AnimalID: animal.ID, FeedType: "Hay", QuantityKg: decimal.NewFromInt(10), Cost: dec("400"),
		})
		testutil.AssertNoError(t, err)

		if out.Status != SyncFailed {
			t.Errorf("expected sync status failed, got %s", out.Status)
		}
		if _, err := svc.GetFeedingRecord(ctx, user.ID, rec.ID); err != nil {
			t.Errorf("record should persist despite sync failure: %v", err)
		}
	})
}

func TestUpdateFeedingRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("cost_change_updates_same_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, ledger := newFeedingService(db)
		user := testutil.CreateTestUser(t, db)
		animal := testutil.CreateTestAnimal(t, db, user.ID)

		rec, created, err := svc.CreateFeedingRecord(ctx, user.ID, FeedingInput{
			AnimalID: animal.ID, FeedType: "Hay", QuantityKg: decimal.NewFromInt(10), Cost: dec("1500"),
		})
		testutil.AssertNoError(t, err)

		_, out, err := svc.UpdateFeedingRecord(ctx, user.ID, rec.ID, FeedingUpdate{Cost: dec("2000")})
		testutil.AssertNoError(t, err)

		if out.Status != SyncUpdated || out.LedgerEntryID != created.LedgerEntryID {
			t.Errorf("expected update of entry %s, got %s on %s", created.LedgerEntryID, out.Status, out.LedgerEntryID)
		}
		entry, err := ledger.GetEntryByID(ctx, user.ID, created.LedgerEntryID)
		testutil.AssertNoError(t, err)
		if entry.Amount != 2000 {
			t.Errorf("expected amount 2000, got %d", entry.Amount)
		}
	})

	t.Run("zero_cost_retracts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, ledger := newFeedingService(db)
		user := testutil.CreateTestUser(t, db)
		animal := testutil.CreateTestAnimal(t, db, user.ID)

		rec, _, err := svc.CreateFeedingRecord(ctx, user.ID, FeedingInput{
			AnimalID: animal.ID, FeedType: "Hay", QuantityKg: decimal.NewFromInt(10), Cost: dec("1500"),
		})
		testutil.AssertNoError(t, err)

		_, out, err := svc.UpdateFeedingRecord(ctx, user.ID, rec.ID, FeedingUpdate{Cost: dec("0")})
		testutil.AssertNoError(t, err)

		if out.Status != SyncRetracted {
			t.Errorf("expected retracted, got %s", out.Status)
		}
		_, err = ledger.FindBySource(ctx, user.ID, models.SourceFeedingRecord, rec.ID)
		testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newFeedingService(db)
		user := testutil.CreateTestUser(t, db)

		_, _, err := svc.UpdateFeedingRecord(ctx, user.ID, "missing", FeedingUpdate{Cost: dec("1")})
		testutil.AssertAppError(t, err, "FEEDING_RECORD_NOT_FOUND")
	})
}

func TestDeleteFeedingRecord(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := newFeedingService(db)
	user := testutil.CreateTestUser(t, db)
	animal := testutil.CreateTestAnimal(t, db, user.ID)

	rec, _, err := svc.CreateFeedingRecord(ctx, user.ID, FeedingInput{
		AnimalID: animal.ID, FeedType: "Hay", QuantityKg: decimal.NewFromInt(10), Cost: dec("1500"),
	})
	testutil.AssertNoError(t, err)

	out, err := svc.DeleteFeedingRecord(ctx, user.ID, rec.ID)
	testutil.AssertNoError(t, err)
	if out.Status != SyncRetracted {
		t.Errorf("expected retracted, got %s", out.Status)
	}

	_, err = svc.GetFeedingRecord(ctx, user.ID, rec.ID)
	testutil.AssertAppError(t, err, "FEEDING_RECORD_NOT_FOUND")

	var count int64
	db.Model(&models.LedgerEntry{}).Count(&count)
	if count != 0 {
		t.Errorf("expected ledger entry removed, got %d", count)
	}
}

func TestListFeedingRecords(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := newFeedingService(db)
	user := testutil.CreateTestUser(t, db)
	a := testutil.CreateTestAnimal(t, db, user.ID)
	b := testutil.CreateTestAnimal(t, db, user.ID)

	testutil.CreateTestFeedingRecord(t, db, user.ID, a.ID, "100")
	testutil.CreateTestFeedingRecord(t, db, user.ID, a.ID, "")
	testutil.CreateTestFeedingRecord(t, db, user.ID, b.ID, "300")

	page, err := svc.ListFeedingRecords(ctx, user.ID, pagination.PageRequest{}, RecordFilter{AnimalID: &a.ID})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 2 {
		t.Errorf("expected 2 records for animal, got %d", page.TotalItems)
	}
}
