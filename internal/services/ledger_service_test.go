package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/models"
	"herdbook/internal/pagination"
	"herdbook/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestLedgerService_CreateEntry(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid manual entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		user := testutil.CreateTestUser(t, db)

		entry, err := svc.CreateEntry(ctx, user.ID, LedgerDraft{
			TransactionType: models.LedgerTypeExpense,
			Category:        " Vet ",
			Amount:          2500,
			TransactionDate: date,
			Description:     "deworming",
			SupplierName:    "Agrovet",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "Vet", entry.Category)
		assert.False(t, entry.IsLinked())
		assert.Nil(t, entry.AnimalID)
	})

	t.Run("validation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		user := testutil.CreateTestUser(t, db)

		valid := LedgerDraft{TransactionType: models.LedgerTypeIncome, Category: "Milk Sales", Amount: 100}
		cases := []struct {
			name   string
			userID string
			mutate func(d *LedgerDraft)
			code   string
		}{
			{name: "missing user", userID: "", mutate: func(d *LedgerDraft) {}, code: "UNAUTHORIZED"},
			{name: "zero amount", userID: user.ID, mutate: func(d *LedgerDraft) { d.Amount = 0 }, code: "INVALID_INPUT"},
			{name: "negative amount", userID: user.ID, mutate: func(d *LedgerDraft) { d.Amount = -5 }, code: "INVALID_INPUT"},
			{name: "unknown type", userID: user.ID, mutate: func(d *LedgerDraft) { d.TransactionType = "Transfer" }, code: "INVALID_INPUT"},
			{name: "blank category", userID: user.ID, mutate: func(d *LedgerDraft) { d.Category = "  " }, code: "INVALID_INPUT"},
			{name: "half source pair", userID: user.ID, mutate: func(d *LedgerDraft) { d.SourceRecordID = ptr("f1") }, code: "INVALID_INPUT"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				d := valid
				tc.mutate(&d)
				_, err := svc.CreateEntry(ctx, tc.userID, d)
				testutil.AssertAppError(t, err, tc.code)
			})
		}

		var count int64
		db.Model(&models.LedgerEntry{}).Count(&count)
		assert.Zero(t, count, "rejected drafts must not be persisted")
	})

	t.Run("duplicate source pair", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		user := testutil.CreateTestUser(t, db)

		draft := LedgerDraft{
			TransactionType:  models.LedgerTypeExpense,
			Category:         "Feed",
			Amount:           1500,
			Description:      "FeedingRecord:f1",
			SourceRecordType: ptr(models.SourceFeedingRecord),
			SourceRecordID:   ptr("f1"),
		}
		_, err := svc.CreateEntry(ctx, user.ID, draft)
		require.NoError(t, err)

		_, err = svc.CreateEntry(ctx, user.ID, draft)
		testutil.AssertAppError(t, err, "DUPLICATE_LEDGER_LINK")
	})

	t.Run("manual entries may repeat", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		user := testutil.CreateTestUser(t, db)

		draft := LedgerDraft{TransactionType: models.LedgerTypeExpense, Category: "Labour", Amount: 700}
		_, err := svc.CreateEntry(ctx, user.ID, draft)
		require.NoError(t, err)
		_, err = svc.CreateEntry(ctx, user.ID, draft)
		require.NoError(t, err)
	})
}

func TestLedgerService_FindByDescription(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.FindByDescription(ctx, user.ID, "FeedingRecord:missing")
		testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")
	})

	t.Run("scoped to user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		_, err := svc.CreateEntry(ctx, owner.ID, LedgerDraft{
			TransactionType: models.LedgerTypeExpense, Category: "Feed", Amount: 10, Description: "FeedingRecord:f1",
		})
		require.NoError(t, err)

		_, err = svc.FindByDescription(ctx, other.ID, "FeedingRecord:f1")
		testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")
	})

	t.Run("duplicates resolve to most recently updated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		user := testutil.CreateTestUser(t, db)

		draft := LedgerDraft{TransactionType: models.LedgerTypeExpense, Category: "Feed", Amount: 10, Description: "FeedingRecord:f1"}
		older, err := svc.CreateEntry(ctx, user.ID, draft)
		require.NoError(t, err)
		newer, err := svc.CreateEntry(ctx, user.ID, draft)
		require.NoError(t, err)

		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, db.Model(&models.LedgerEntry{}).Where("id = ?", older.ID).UpdateColumn("updated_at", base.Add(time.Hour)).Error)
		require.NoError(t, db.Model(&models.LedgerEntry{}).Where("id = ?", newer.ID).UpdateColumn("updated_at", base).Error)

		got, err := svc.FindByDescription(ctx, user.ID, "FeedingRecord:f1")
		require.NoError(t, err)
		assert.Equal(t, older.ID, got.ID)

		again, err := svc.FindByDescription(ctx, user.ID, "FeedingRecord:f1")
		require.NoError(t, err)
		assert.Equal(t, got.ID, again.ID, "choice must be deterministic")
	})
}

func TestLedgerService_FindBySource(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewLedgerService(db)
	user := testutil.CreateTestUser(t, db)

	created, err := svc.CreateEntry(ctx, user.ID, LedgerDraft{
		TransactionType:  models.LedgerTypeExpense,
		Category:         "Breeding",
		Amount:           3000,
		Description:      "BreedingRecord:b1",
		SourceRecordType: ptr(models.SourceBreedingRecord),
		SourceRecordID:   ptr("b1"),
	})
	require.NoError(t, err)

	got, err := svc.FindBySource(ctx, user.ID, models.SourceBreedingRecord, "b1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.FindBySource(ctx, user.ID, models.SourceFeedingRecord, "b1")
	assert.ErrorIs(t, err, apperrors.ErrLedgerEntryNotFound)
}

func TestLedgerService_UpdateEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("applies provided fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		user := testutil.CreateTestUser(t, db)
		entry := testutil.CreateTestLedgerEntry(t, db, user.ID, models.LedgerTypeExpense, "Vet", 800)

		updated, err := svc.UpdateEntry(ctx, user.ID, entry.ID, LedgerUpdate{Amount: ptr(int64(950)), Category: ptr("Veterinary")})
		require.NoError(t, err)
		assert.Equal(t, int64(950), updated.Amount)
		assert.Equal(t, "Veterinary", updated.Category)
		assert.Equal(t, entry.Description, updated.Description)
	})

	t.Run("unknown id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateEntry(ctx, user.ID, "missing", LedgerUpdate{Amount: ptr(int64(1))})
		testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")
	})

	t.Run("other user's entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		entry := testutil.CreateTestLedgerEntry(t, db, owner.ID, models.LedgerTypeIncome, "Milk Sales", 100)

		_, err := svc.UpdateEntry(ctx, other.ID, entry.ID, LedgerUpdate{Amount: ptr(int64(1))})
		testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")
	})

	t.Run("rejects non positive amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		user := testutil.CreateTestUser(t, db)
		entry := testutil.CreateTestLedgerEntry(t, db, user.ID, models.LedgerTypeExpense, "Vet", 800)

		_, err := svc.UpdateEntry(ctx, user.ID, entry.ID, LedgerUpdate{Amount: ptr(int64(0))})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestLedgerService_DeleteEntry(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewLedgerService(db)
	user := testutil.CreateTestUser(t, db)
	entry := testutil.CreateTestLedgerEntry(t, db, user.ID, models.LedgerTypeExpense, "Vet", 800)

	require.NoError(t, svc.DeleteEntry(ctx, user.ID, entry.ID))

	var count int64
	db.Unscoped().Model(&models.LedgerEntry{}).Count(&count)
	assert.Zero(t, count, "ledger entries are removed physically")

	err := svc.DeleteEntry(ctx, user.ID, entry.ID)
	testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")
}

func TestLedgerService_ListEntries(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewLedgerService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestLedgerEntry(t, db, user.ID, models.LedgerTypeExpense, "Vet", 800)
	testutil.CreateTestLedgerEntry(t, db, user.ID, models.LedgerTypeExpense, "Feed", 1200)
	testutil.CreateTestLedgerEntry(t, db, user.ID, models.LedgerTypeIncome, "Milk Sales", 4000)
	testutil.CreateTestLedgerEntry(t, db, testutil.CreateTestUser(t, db).ID, models.LedgerTypeIncome, "Milk Sales", 1)

	all, err := svc.ListEntries(ctx, user.ID, pagination.PageRequest{}, LedgerFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.TotalItems)
	assert.Equal(t, 20, all.PageSize)

	expenses, err := svc.ListEntries(ctx, user.ID, pagination.PageRequest{}, LedgerFilter{Type: ptr(models.LedgerTypeExpense)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), expenses.TotalItems)

	feed, err := svc.ListEntries(ctx, user.ID, pagination.PageRequest{}, LedgerFilter{Category: ptr("Feed")})
	require.NoError(t, err)
	require.Len(t, feed.Data, 1)
	assert.Equal(t, int64(1200), feed.Data[0].Amount)
}

func TestLedgerService_Summary(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewLedgerService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestLedgerEntry(t, db, user.ID, models.LedgerTypeIncome, "Milk Sales", 4000)
	testutil.CreateTestLedgerEntry(t, db, user.ID, models.LedgerTypeIncome, "Milk Sales", 1000)
	testutil.CreateTestLedgerEntry(t, db, user.ID, models.LedgerTypeExpense, "Feed", 1500)
	testutil.CreateTestLedgerEntry(t, db, user.ID, models.LedgerTypeExpense, "Breeding", 3000)

	summary, err := svc.Summary(ctx, user.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), summary.TotalIncome)
	assert.Equal(t, int64(4500), summary.TotalExpense)
	assert.Equal(t, int64(500), summary.Net)
	require.Len(t, summary.ByCategory, 3)

	byCategory := map[string]CategoryTotal{}
	for _, row := range summary.ByCategory {
		byCategory[row.Category] = row
	}
	assert.Equal(t, int64(5000), byCategory["Milk Sales"].Total)
	assert.Equal(t, int64(2), byCategory["Milk Sales"].Count)

	future := time.Now().UTC().Add(48 * time.Hour)
	empty, err := svc.Summary(ctx, user.ID, &future, nil)
	require.NoError(t, err)
	assert.Zero(t, empty.Net)
	assert.Empty(t, empty.ByCategory)
}
