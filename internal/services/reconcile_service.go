package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"herdbook/internal/logger"
	"herdbook/internal/models"
)

const reconcileBatchSize = 200

// reconcileService re-runs the ledger sync over stored records to repair
// entries left behind by failed syncs.
type reconcileService struct {
	db     *gorm.DB
	users  UserServicer
	ledger LedgerServicer
	syncer LedgerSyncer
	log    *zap.SugaredLogger
}

// NewReconcileService creates a new ReconcileServicer.
func NewReconcileService(db *gorm.DB, users UserServicer, ledger LedgerServicer, syncer LedgerSyncer) ReconcileServicer {
	return &reconcileService{
		db:     db,
		users:  users,
		ledger: ledger,
		syncer: syncer,
		log:    logger.Named("reconcile"),
	}
}

// reconcilable is a record the reconciler can walk, soft-deleted ones included.
type reconcilable[T any] interface {
	*T
	models.CostBearingRecord
	IsDeleted() bool
}

// ReconcileUser syncs every live record of the user, retracts entries of
// deleted records and removes linked entries whose record no longer exists.
func (s *reconcileService) ReconcileUser(ctx context.Context, userID string) (*ReconcileReport, error) {
	report := &ReconcileReport{Users: 1}
	seen := make(map[string]struct{})

	if err := reconcileRecords[models.ProductionRecord](ctx, s, userID, report, seen); err != nil {
		return report, err
	}
	if err := reconcileRecords[models.FeedingRecord](ctx, s, userID, report, seen); err != nil {
		return report, err
	}
	if err := reconcileRecords[models.BreedingRecord](ctx, s, userID, report, seen); err != nil {
		return report, err
	}

	linked, err := s.ledger.ListLinkedEntries(ctx, userID)
	if err != nil {
		return report, err
	}
	for _, entry := range linked {
		key := models.DescriptionKey(*entry.SourceRecordType, *entry.SourceRecordID)
		if _, ok := seen[key]; ok {
			continue
		}
		// The record may have been written after its type was scanned.
		exists, err := s.sourceExists(ctx, *entry.SourceRecordType, *entry.SourceRecordID)
		if err != nil {
			s.log.Warnw("failed to check source of linked ledger entry", "user_id", userID, "entry_id", entry.ID, "error", err)
			report.Failed++
			continue
		}
		if exists {
			continue
		}
		if err := s.ledger.DeleteEntry(ctx, userID, entry.ID); err != nil {
			s.log.Warnw("failed to delete orphaned ledger entry", "user_id", userID, "entry_id", entry.ID, "error", err)
			report.Failed++
			continue
		}
		report.Orphans++
	}

	s.log.Infow("reconciled ledger",
		"user_id", userID,
		"scanned", report.Scanned,
		"created", report.Created,
		"updated", report.Updated,
		"retracted", report.Retracted,
		"failed", report.Failed,
		"orphans", report.Orphans,
	)
	return report, nil
}

// ReconcileAll runs ReconcileUser for every active user. A failing user is
// logged and counted; the run continues with the next one.
func (s *reconcileService) ReconcileAll(ctx context.Context) (*ReconcileReport, error) {
	users, err := s.users.ListActiveUsers(ctx)
	if err != nil {
		return nil, err
	}

	total := &ReconcileReport{}
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		report, err := s.ReconcileUser(ctx, user.ID)
		if report != nil {
			total.add(report)
		}
		if err != nil {
			s.log.Errorw("reconciliation failed for user", "user_id", user.ID, "error", err)
			total.Failed++
		}
	}
	return total, nil
}

// sourceExists reports whether any row, soft-deleted included, still backs a
// linked entry.
func (s *reconcileService) sourceExists(ctx context.Context, t models.SourceRecordType, id string) (bool, error) {
	var model interface{}
	switch t {
	case models.SourceProductionRecord:
		model = &models.ProductionRecord{}
	case models.SourceFeedingRecord:
		model = &models.FeedingRecord{}
	case models.SourceBreedingRecord:
		model = &models.BreedingRecord{}
	default:
		return false, nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Unscoped().Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, storeError(err)
	}
	return count > 0, nil
}

func reconcileRecords[T any, PT reconcilable[T]](ctx context.Context, s *reconcileService, userID string, report *ReconcileReport, seen map[string]struct{}) error {
	var batch []T
	return s.db.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		FindInBatches(&batch, reconcileBatchSize, func(_ *gorm.DB, _ int) error {
			for i := range batch {
				rec := PT(&batch[i])
				report.Scanned++

				var out SyncOutcome
				var err error
				if rec.IsDeleted() {
					out, err = s.syncer.Retract(ctx, rec)
				} else {
					seen[models.DescriptionKey(rec.SourceType(), rec.SourceID())] = struct{}{}
					out, err = s.syncer.Sync(ctx, rec)
				}
				if err != nil {
					s.log.Warnw("record sync failed during reconciliation",
						"user_id", userID,
						"key", out.DescriptionKey,
						"error", err,
					)
				}
				report.count(out.Status)
			}
			return ctx.Err()
		}).Error
}

func (r *ReconcileReport) count(status SyncStatus) {
	switch status {
	case SyncCreated:
		r.Created++
	case SyncUpdated:
		r.Updated++
	case SyncRetracted:
		r.Retracted++
	case SyncSkipped:
		r.Skipped++
	default:
		r.Failed++
	}
}

func (r *ReconcileReport) add(o *ReconcileReport) {
	r.Users += o.Users
	r.Scanned += o.Scanned
	r.Created += o.Created
	r.Updated += o.Updated
	r.Retracted += o.Retracted
	r.Skipped += o.Skipped
	r.Failed += o.Failed
	r.Orphans += o.Orphans
}
