package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"herdbook/internal/models"
	"herdbook/internal/pagination"
)

// mockLedger is a testify mock of the ledger store.
type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) FindByDescription(ctx context.Context, userID, description string) (*models.LedgerEntry, error) {
	args := m.Called(ctx, userID, description)
	entry, _ := args.Get(0).(*models.LedgerEntry)
	return entry, args.Error(1)
}

func (m *mockLedger) FindBySource(ctx context.Context, userID string, recordType models.SourceRecordType, recordID string) (*models.LedgerEntry, error) {
	args := m.Called(ctx, userID, recordType, recordID)
	entry, _ := args.Get(0).(*models.LedgerEntry)
	return entry, args.Error(1)
}

func (m *mockLedger) CreateEntry(ctx context.Context, userID string, draft LedgerDraft) (*models.LedgerEntry, error) {
	args := m.Called(ctx, userID, draft)
	entry, _ := args.Get(0).(*models.LedgerEntry)
	return entry, args.Error(1)
}

func (m *mockLedger) UpdateEntry(ctx context.Context, userID, entryID string, fields LedgerUpdate) (*models.LedgerEntry, error) {
	args := m.Called(ctx, userID, entryID, fields)
	entry, _ := args.Get(0).(*models.LedgerEntry)
	return entry, args.Error(1)
}

func (m *mockLedger) DeleteEntry(ctx context.Context, userID, entryID string) error {
	return m.Called(ctx, userID, entryID).Error(0)
}

func (m *mockLedger) GetEntryByID(ctx context.Context, userID, entryID string) (*models.LedgerEntry, error) {
	args := m.Called(ctx, userID, entryID)
	entry, _ := args.Get(0).(*models.LedgerEntry)
	return entry, args.Error(1)
}

func (m *mockLedger) ListEntries(ctx context.Context, userID string, page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.LedgerEntry], error) {
	args := m.Called(ctx, userID, page, filter)
	resp, _ := args.Get(0).(*pagination.PageResponse[models.LedgerEntry])
	return resp, args.Error(1)
}

func (m *mockLedger) ExportEntries(ctx context.Context, userID string, filter LedgerFilter) ([]models.LedgerEntry, error) {
	args := m.Called(ctx, userID, filter)
	entries, _ := args.Get(0).([]models.LedgerEntry)
	return entries, args.Error(1)
}

func (m *mockLedger) ListLinkedEntries(ctx context.Context, userID string) ([]models.LedgerEntry, error) {
	args := m.Called(ctx, userID)
	entries, _ := args.Get(0).([]models.LedgerEntry)
	return entries, args.Error(1)
}

func (m *mockLedger) Summary(ctx context.Context, userID string, from, to *time.Time) (*LedgerSummary, error) {
	args := m.Called(ctx, userID, from, to)
	summary, _ := args.Get(0).(*LedgerSummary)
	return summary, args.Error(1)
}

// failingSyncer reports every sync as failed with the given error.
type failingSyncer struct {
	err error
}

func (s failingSyncer) Sync(_ context.Context, rec models.CostBearingRecord) (SyncOutcome, error) {
	key := models.DescriptionKey(rec.SourceType(), rec.SourceID())
	return SyncOutcome{Status: SyncFailed, DescriptionKey: key, Error: s.err.Error()}, s.err
}

func (s failingSyncer) Retract(ctx context.Context, rec models.CostBearingRecord) (SyncOutcome, error) {
	return s.Sync(ctx, rec)
}
