package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdbook/internal/locking"
	"herdbook/internal/models"
	"herdbook/internal/testutil"
)

func TestReconcileUser(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	ledger := NewLedgerService(db)
	syncer := NewLedgerSyncer(ledger, locking.NewLocalLocker())
	svc := NewReconcileService(db, NewUserService(db), ledger, syncer)

	user := testutil.CreateTestUser(t, db)
	animal := testutil.CreateTestAnimal(t, db, user.ID)

	// Records written while the ledger was unreachable: no entries yet.
	feeding := testutil.CreateTestFeedingRecord(t, db, user.ID, animal.ID, "1500")
	testutil.CreateTestFeedingRecord(t, db, user.ID, animal.ID, "")
	production := testutil.CreateTestProductionRecord(t, db, user.ID, animal.ID, "10", "45")

	// A deleted record whose retraction failed.
	deleted := testutil.CreateTestBreedingRecord(t, db, user.ID, animal.ID, "3000")
	_, err := syncer.Sync(ctx, deleted)
	require.NoError(t, err)
	require.NoError(t, db.Delete(deleted).Error)

	// An entry pointing at a record that no longer exists at all.
	_, err = ledger.CreateEntry(ctx, user.ID, LedgerDraft{
		TransactionType:  models.LedgerTypeExpense,
		Category:         "Feed",
		Amount:           99,
		Description:      "FeedingRecord:gone",
		SourceRecordType: ptr(models.SourceFeedingRecord),
		SourceRecordID:   ptr("gone"),
	})
	require.NoError(t, err)

	// Manual entries are never touched.
	manual := testutil.CreateTestLedgerEntry(t, db, user.ID, models.LedgerTypeExpense, "Vet", 800)

	report, err := svc.ReconcileUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Scanned)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Retracted)
	assert.Equal(t, 1, report.Orphans)
	assert.Zero(t, report.Failed)

	_, err = ledger.FindBySource(ctx, user.ID, models.SourceFeedingRecord, feeding.ID)
	require.NoError(t, err)
	_, err = ledger.FindBySource(ctx, user.ID, models.SourceProductionRecord, production.ID)
	require.NoError(t, err)
	_, err = ledger.FindBySource(ctx, user.ID, models.SourceBreedingRecord, deleted.ID)
	testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")
	_, err = ledger.GetEntryByID(ctx, user.ID, manual.ID)
	require.NoError(t, err)

	again, err := svc.ReconcileUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, again.Created, "second pass must not create")
	assert.Equal(t, 2, again.Updated)
	assert.Zero(t, again.Orphans)

	var count int64
	db.Model(&models.LedgerEntry{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

// ledgerWithListHook runs beforeList ahead of listing linked entries, so a
// test can write records after the scan has passed them.
type ledgerWithListHook struct {
	LedgerServicer
	beforeList func()
}

func (l *ledgerWithListHook) ListLinkedEntries(ctx context.Context, userID string) ([]models.LedgerEntry, error) {
	if l.beforeList != nil {
		l.beforeList()
		l.beforeList = nil
	}
	return l.LedgerServicer.ListLinkedEntries(ctx, userID)
}

func TestReconcileUser_KeepsEntryOfRecordWrittenDuringRun(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	ledger := NewLedgerService(db)
	syncer := NewLedgerSyncer(ledger, locking.NewLocalLocker())
	feeding := NewFeedingService(db, NewAnimalService(db), syncer)

	user := testutil.CreateTestUser(t, db)
	animal := testutil.CreateTestAnimal(t, db, user.ID)

	var written *models.FeedingRecord
	hooked := &ledgerWithListHook{LedgerServicer: ledger, beforeList: func() {
		cost := decimal.NewFromInt(1500)
		rec, out, err := feeding.CreateFeedingRecord(ctx, user.ID, FeedingInput{
			AnimalID:   animal.ID,
			FeedType:   "Hay",
			QuantityKg: decimal.NewFromInt(20),
			Cost:       &cost,
		})
		require.NoError(t, err)
		require.Equal(t, SyncCreated, out.Status)
		written = rec
	}}
	svc := NewReconcileService(db, NewUserService(db), hooked, syncer)

	report, err := svc.ReconcileUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, report.Orphans)
	assert.Zero(t, report.Failed)

	require.NotNil(t, written)
	entry, err := ledger.FindBySource(ctx, user.ID, models.SourceFeedingRecord, written.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), entry.Amount)
}

func TestReconcileAll(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	ledger := NewLedgerService(db)
	syncer := NewLedgerSyncer(ledger, nil)
	svc := NewReconcileService(db, NewUserService(db), ledger, syncer)

	for i := 0; i < 2; i++ {
		user := testutil.CreateTestUser(t, db)
		animal := testutil.CreateTestAnimal(t, db, user.ID)
		testutil.CreateTestFeedingRecord(t, db, user.ID, animal.ID, "250")
	}

	report, err := svc.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Users)
	assert.Equal(t, 2, report.Created)
}
