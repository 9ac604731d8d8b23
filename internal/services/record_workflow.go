package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/logger"
	"herdbook/internal/models"
	"herdbook/internal/pagination"
)

// recordWorkflow holds what the production, feeding and breeding workflows
// share: animal scoping, persistence and the post-save ledger sync.
type recordWorkflow struct {
	db      *gorm.DB
	animals AnimalServicer
	syncer  LedgerSyncer
	log     *zap.SugaredLogger
}

func newRecordWorkflow(db *gorm.DB, animals AnimalServicer, syncer LedgerSyncer, name string) recordWorkflow {
	return recordWorkflow{db: db, animals: animals, syncer: syncer, log: logger.Named(name)}
}

// ensureAnimal checks that the animal exists and belongs to the user.
func (w *recordWorkflow) ensureAnimal(ctx context.Context, userID, animalID string) error {
	if strings.TrimSpace(animalID) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "animal_id is required")
	}
	_, err := w.animals.GetAnimal(ctx, userID, animalID)
	return err
}

// sync runs the ledger sync after the record was saved. A failure is logged
// and reported in the outcome; the saved record stands.
func (w *recordWorkflow) sync(ctx context.Context, rec models.CostBearingRecord) SyncOutcome {
	out, err := w.syncer.Sync(ctx, rec)
	if err != nil {
		w.log.Errorw("ledger sync failed, record kept",
			"user_id", rec.OwnerID(),
			"key", out.DescriptionKey,
			"error", err,
		)
	}
	return out
}

// retract removes the ledger entry of a deleted record.
func (w *recordWorkflow) retract(ctx context.Context, rec models.CostBearingRecord) SyncOutcome {
	out, err := w.syncer.Retract(ctx, rec)
	if err != nil {
		w.log.Errorw("ledger retraction failed, record deleted",
			"user_id", rec.OwnerID(),
			"key", out.DescriptionKey,
			"error", err,
		)
	}
	return out
}

// getRecord loads one record of type T owned by the user.
func getRecord[T any](ctx context.Context, db *gorm.DB, userID, recordID string, notFound *apperrors.AppError) (*T, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var rec T
	if err := db.WithContext(ctx).Where("id = ? AND user_id = ?", recordID, userID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, storeError(err)
	}
	return &rec, nil
}

// listRecords pages through a user's records of type T, newest first by dateColumn.
func listRecords[T any](ctx context.Context, db *gorm.DB, userID string, page pagination.PageRequest, filter RecordFilter, dateColumn string) (*pagination.PageResponse[T], error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	page.Defaults()

	base := db.WithContext(ctx).Model(new(T)).Where("user_id = ?", userID)
	if filter.AnimalID != nil {
		base = base.Where("animal_id = ?", *filter.AnimalID)
	}
	if filter.FromDate != nil {
		base = base.Where(dateColumn+" >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where(dateColumn+" <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, storeError(err)
	}

	var rows []T
	if err := base.Scopes(pagination.Paginate(page)).
		Order(dateColumn + " DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, storeError(err)
	}

	result := pagination.NewPageResponse(rows, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// recordDateOrToday defaults a missing record date to today (UTC midnight).
func recordDateOrToday(d time.Time) time.Time {
	if d.IsZero() {
		return time.Now().UTC().Truncate(24 * time.Hour)
	}
	return d
}

func requirePositive(d decimal.Decimal, field string) error {
	if !d.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must be greater than zero")
	}
	return nil
}

func requireNonNegative(d *decimal.Decimal, field string) error {
	if d != nil && d.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must not be negative")
	}
	return nil
}

// requireCost accepts no cost, zero (which clears it) or an amount that rounds
// to at least one whole ledger unit.
func requireCost(d *decimal.Decimal, field string) error {
	if err := requireNonNegative(d, field); err != nil {
		return err
	}
	if d != nil && d.IsPositive() && d.Round(0).IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must be 0 or at least 0.5")
	}
	return nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
