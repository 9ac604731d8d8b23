package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/models"
	"herdbook/internal/pagination"
)

// feedingService handles feeding records; their cost is booked as Feed expense.
type feedingService struct {
	recordWorkflow
}

// NewFeedingService creates a new FeedingServicer.
func NewFeedingService(db *gorm.DB, animals AnimalServicer, syncer LedgerSyncer) FeedingServicer {
	return &feedingService{recordWorkflow: newRecordWorkflow(db, animals, syncer, "feeding")}
}

// CreateFeedingRecord saves a feeding and syncs its cost to the ledger.
func (s *feedingService) CreateFeedingRecord(ctx context.Context, userID string, in FeedingInput) (*models.FeedingRecord, SyncOutcome, error) {
	if userID == "" {
		return nil, SyncOutcome{}, apperrors.ErrUnauthorized
	}
	if err := requireCost(in.Cost, "cost"); err != nil {
		return nil, SyncOutcome{}, err
	}
	rec := &models.FeedingRecord{
		UserID:       userID,
		AnimalID:     in.AnimalID,
		RecordDate:   recordDateOrToday(in.RecordDate),
		FeedType:     strings.TrimSpace(in.FeedType),
		QuantityKg:   in.QuantityKg,
		Cost:         nullDecimal(in.Cost),
		SupplierName: strings.TrimSpace(in.SupplierName),
		Notes:        in.Notes,
	}
	if err := validateFeeding(rec); err != nil {
		return nil, SyncOutcome{}, err
	}
	if err := s.ensureAnimal(ctx, userID, rec.AnimalID); err != nil {
		return nil, SyncOutcome{}, err
	}

	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, SyncOutcome{}, storeError(err)
	}
	return rec, s.sync(ctx, rec), nil
}

// UpdateFeedingRecord applies the provided fields and re-syncs the ledger.
// Setting the cost to zero retracts the linked expense.
func (s *feedingService) UpdateFeedingRecord(ctx context.Context, userID, recordID string, in FeedingUpdate) (*models.FeedingRecord, SyncOutcome, error) {
	rec, err := s.GetFeedingRecord(ctx, userID, recordID)
	if err != nil {
		return nil, SyncOutcome{}, err
	}
	if err := requireCost(in.Cost, "cost"); err != nil {
		return nil, SyncOutcome{}, err
	}

	if in.AnimalID != nil && *in.AnimalID != rec.AnimalID {
		if err := s.ensureAnimal(ctx, userID, *in.AnimalID); err != nil {
			return nil, SyncOutcome{}, err
		}
		rec.AnimalID = *in.AnimalID
	}
	if in.RecordDate != nil && !in.RecordDate.IsZero() {
		rec.RecordDate = *in.RecordDate
	}
	if in.FeedType != nil {
		rec.FeedType = strings.TrimSpace(*in.FeedType)
	}
	if in.QuantityKg != nil {
		rec.QuantityKg = *in.QuantityKg
	}
	if in.Cost != nil {
		rec.Cost = nullDecimal(in.Cost)
	}
	if in.SupplierName != nil {
		rec.SupplierName = strings.TrimSpace(*in.SupplierName)
	}
	if in.Notes != nil {
		rec.Notes = *in.Notes
	}
	if err := validateFeeding(rec); err != nil {
		return nil, SyncOutcome{}, err
	}

	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, SyncOutcome{}, storeError(err)
	}
	return rec, s.sync(ctx, rec), nil
}

// DeleteFeedingRecord soft-deletes the record and retracts its ledger entry.
func (s *feedingService) DeleteFeedingRecord(ctx context.Context, userID, recordID string) (SyncOutcome, error) {
	rec, err := s.GetFeedingRecord(ctx, userID, recordID)
	if err != nil {
		return SyncOutcome{}, err
	}
	if err := s.db.WithContext(ctx).Delete(rec).Error; err != nil {
		return SyncOutcome{}, storeError(err)
	}
	return s.retract(ctx, rec), nil
}

// GetFeedingRecord retrieves a feeding record by ID for a specific user.
func (s *feedingService) GetFeedingRecord(ctx context.Context, userID, recordID string) (*models.FeedingRecord, error) {
	return getRecord[models.FeedingRecord](ctx, s.db, userID, recordID, apperrors.ErrFeedingRecordNotFound)
}

// ListFeedingRecords retrieves a paginated, filtered list of feeding records.
func (s *feedingService) ListFeedingRecords(ctx context.Context, userID string, page pagination.PageRequest, filter RecordFilter) (*pagination.PageResponse[models.FeedingRecord], error) {
	return listRecords[models.FeedingRecord](ctx, s.db, userID, page, filter, "record_date")
}

func validateFeeding(rec *models.FeedingRecord) error {
	if rec.FeedType == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "feed_type is required")
	}
	return requirePositive(rec.QuantityKg, "quantity_kg")
}
