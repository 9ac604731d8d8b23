package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/locking"
	"herdbook/internal/logger"
	"herdbook/internal/models"
)

const (
	syncLockTTL  = 10 * time.Second
	syncLockWait = 2 * time.Second
)

// syncRule fixes the ledger type and category of entries derived from a record type.
type syncRule struct {
	Type     models.LedgerType
	Category string
}

var syncRules = map[models.SourceRecordType]syncRule{
	models.SourceProductionRecord: {Type: models.LedgerTypeIncome, Category: "Milk Sales"},
	models.SourceFeedingRecord:    {Type: models.LedgerTypeExpense, Category: "Feed"},
	models.SourceBreedingRecord:   {Type: models.LedgerTypeExpense, Category: "Breeding"},
}

// ledgerSyncer derives ledger entries from cost-bearing domain records.
type ledgerSyncer struct {
	ledger LedgerServicer
	locker locking.Locker
	log    *zap.SugaredLogger
}

// NewLedgerSyncer creates a new LedgerSyncer. A nil locker disables locking.
func NewLedgerSyncer(ledger LedgerServicer, locker locking.Locker) LedgerSyncer {
	return &ledgerSyncer{
		ledger: ledger,
		locker: locker,
		log:    logger.Named("ledger-sync"),
	}
}

// Sync creates, updates or retracts the ledger entry linked to rec so that
// the ledger reflects the record's current amount.
func (s *ledgerSyncer) Sync(ctx context.Context, rec models.CostBearingRecord) (SyncOutcome, error) {
	key := models.DescriptionKey(rec.SourceType(), rec.SourceID())
	out := SyncOutcome{DescriptionKey: key}

	rule, ok := syncRules[rec.SourceType()]
	if !ok {
		return s.fail(out, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported record type"))
	}
	if rec.OwnerID() == "" {
		return s.fail(out, apperrors.ErrUnauthorized)
	}

	release := s.acquire(ctx, key)
	defer release()

	existing, err := s.find(ctx, rec, key)
	if err != nil {
		return s.fail(out, err)
	}

	amount := rec.LedgerAmount()
	if amount <= 0 {
		if existing == nil {
			out.Status = SyncSkipped
			return out, nil
		}
		return s.retract(ctx, rec, existing, out)
	}

	if existing != nil {
		return s.update(ctx, rec, existing, out)
	}

	draft := LedgerDraft{
		TransactionType:  rule.Type,
		Category:         rule.Category,
		Amount:           amount,
		TransactionDate:  rec.LedgerDate(),
		AnimalID:         linkedAnimal(rec),
		Description:      key,
		SourceRecordType: sourceType(rec),
		SourceRecordID:   sourceID(rec),
	}
	if cp, ok := rec.(models.Counterparty); ok {
		draft.BuyerName, draft.SupplierName = cp.LedgerCounterparty()
	}

	entry, err := s.ledger.CreateEntry(ctx, rec.OwnerID(), draft)
	if errors.Is(err, apperrors.ErrDuplicateLedgerLink) {
		// Another writer created the entry between our lookup and insert.
		s.log.Infow("ledger entry created concurrently, updating instead", "key", key)
		existing, err = s.find(ctx, rec, key)
		if err != nil {
			return s.fail(out, err)
		}
		if existing == nil {
			return s.fail(out, apperrors.ErrDuplicateLedgerLink)
		}
		return s.update(ctx, rec, existing, out)
	}
	if err != nil {
		return s.fail(out, err)
	}

	out.Status = SyncCreated
	out.LedgerEntryID = entry.ID
	return out, nil
}

// Retract removes the ledger entry linked to rec, if there is one.
func (s *ledgerSyncer) Retract(ctx context.Context, rec models.CostBearingRecord) (SyncOutcome, error) {
	key := models.DescriptionKey(rec.SourceType(), rec.SourceID())
	out := SyncOutcome{DescriptionKey: key}
	if rec.OwnerID() == "" {
		return s.fail(out, apperrors.ErrUnauthorized)
	}

	release := s.acquire(ctx, key)
	defer release()

	existing, err := s.find(ctx, rec, key)
	if err != nil {
		return s.fail(out, err)
	}
	if existing == nil {
		out.Status = SyncSkipped
		return out, nil
	}
	return s.retract(ctx, rec, existing, out)
}

// find looks the linked entry up by source pair, then by description key for
// entries written before the source columns existed. It returns nil, nil when
// there is no entry.
func (s *ledgerSyncer) find(ctx context.Context, rec models.CostBearingRecord, key string) (*models.LedgerEntry, error) {
	entry, err := s.ledger.FindBySource(ctx, rec.OwnerID(), rec.SourceType(), rec.SourceID())
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, apperrors.ErrLedgerEntryNotFound) {
		return nil, err
	}

	entry, err = s.ledger.FindByDescription(ctx, rec.OwnerID(), key)
	if errors.Is(err, apperrors.ErrLedgerEntryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if entry.IsLinked() && (*entry.SourceRecordType != rec.SourceType() || *entry.SourceRecordID != rec.SourceID()) {
		s.log.Warnw("description key matches an entry linked to another record",
			"key", key,
			"entry_id", entry.ID,
		)
		return nil, nil
	}
	return entry, nil
}

func (s *ledgerSyncer) update(ctx context.Context, rec models.CostBearingRecord, existing *models.LedgerEntry, out SyncOutcome) (SyncOutcome, error) {
	amount := rec.LedgerAmount()
	date := rec.LedgerDate()
	fields := LedgerUpdate{
		Amount:           &amount,
		TransactionDate:  &date,
		Description:      &out.DescriptionKey,
		AnimalID:         linkedAnimal(rec),
		SourceRecordType: sourceType(rec),
		SourceRecordID:   sourceID(rec),
	}
	if cp, ok := rec.(models.Counterparty); ok {
		buyer, supplier := cp.LedgerCounterparty()
		fields.BuyerName = &buyer
		fields.SupplierName = &supplier
	}

	entry, err := s.ledger.UpdateEntry(ctx, rec.OwnerID(), existing.ID, fields)
	if err != nil {
		return s.fail(out, err)
	}
	out.Status = SyncUpdated
	out.LedgerEntryID = entry.ID
	return out, nil
}

func (s *ledgerSyncer) retract(ctx context.Context, rec models.CostBearingRecord, existing *models.LedgerEntry, out SyncOutcome) (SyncOutcome, error) {
	err := s.ledger.DeleteEntry(ctx, rec.OwnerID(), existing.ID)
	if errors.Is(err, apperrors.ErrLedgerEntryNotFound) {
		out.Status = SyncSkipped
		return out, nil
	}
	if err != nil {
		return s.fail(out, err)
	}
	out.Status = SyncRetracted
	out.LedgerEntryID = existing.ID
	return out, nil
}

func (s *ledgerSyncer) fail(out SyncOutcome, err error) (SyncOutcome, error) {
	out.Status = SyncFailed
	out.Error = err.Error()
	return out, err
}

// acquire takes the per-key lock when it can and returns its release func.
// Failing to lock is logged and the sync proceeds unlocked.
func (s *ledgerSyncer) acquire(ctx context.Context, key string) func() {
	if s.locker == nil {
		return func() {}
	}

	waitCtx, cancel := context.WithTimeout(ctx, syncLockWait)
	defer cancel()

	lock, err := s.locker.Obtain(waitCtx, "ledger-sync:"+key, syncLockTTL)
	if err != nil {
		s.log.Warnw("could not obtain sync lock, proceeding without it", "key", key, "error", err)
		return func() {}
	}
	return func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			s.log.Warnw("failed to release sync lock", "key", key, "error", err)
		}
	}
}

func linkedAnimal(rec models.CostBearingRecord) *string {
	id := rec.LinkedAnimalID()
	return &id
}

func sourceType(rec models.CostBearingRecord) *models.SourceRecordType {
	t := rec.SourceType()
	return &t
}

func sourceID(rec models.CostBearingRecord) *string {
	id := rec.SourceID()
	return &id
}
