package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/models"
	"herdbook/internal/pagination"
)

// breedingService handles breeding records; service fees are booked as Breeding expense.
type breedingService struct {
	recordWorkflow
}

// NewBreedingService creates a new BreedingServicer.
func NewBreedingService(db *gorm.DB, animals AnimalServicer, syncer LedgerSyncer) BreedingServicer {
	return &breedingService{recordWorkflow: newRecordWorkflow(db, animals, syncer, "breeding")}
}

// CreateBreedingRecord saves a breeding and syncs its cost to the ledger. The
// expected calving date defaults to the breeding date plus gestation.
func (s *breedingService) CreateBreedingRecord(ctx context.Context, userID string, in BreedingInput) (*models.BreedingRecord, SyncOutcome, error) {
	if userID == "" {
		return nil, SyncOutcome{}, apperrors.ErrUnauthorized
	}
	if err := requireCost(in.Cost, "cost"); err != nil {
		return nil, SyncOutcome{}, err
	}
	status := in.Status
	if status == "" {
		status = models.BreedingStatusPending
	}
	rec := &models.BreedingRecord{
		UserID:              userID,
		AnimalID:            in.AnimalID,
		BreedingDate:        recordDateOrToday(in.BreedingDate),
		Method:              in.Method,
		SireName:            strings.TrimSpace(in.SireName),
		Status:              status,
		ExpectedCalvingDate: in.ExpectedCalvingDate,
		Cost:                nullDecimal(in.Cost),
		Notes:               in.Notes,
	}
	if rec.ExpectedCalvingDate == nil {
		calving := models.ExpectedCalving(rec.BreedingDate)
		rec.ExpectedCalvingDate = &calving
	}
	if err := validateBreeding(rec); err != nil {
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

// UpdateBreedingRecord applies the provided fields and re-syncs the ledger.
// Moving the breeding date moves a defaulted calving date with it.
func (s *breedingService) UpdateBreedingRecord(ctx context.Context, userID, recordID string, in BreedingUpdate) (*models.BreedingRecord, SyncOutcome, error) {
	rec, err := s.GetBreedingRecord(ctx, userID, recordID)
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
	if in.BreedingDate != nil && !in.BreedingDate.IsZero() {
		defaulted := rec.ExpectedCalvingDate == nil ||
			rec.ExpectedCalvingDate.Equal(models.ExpectedCalving(rec.BreedingDate))
		rec.BreedingDate = *in.BreedingDate
		if defaulted && in.ExpectedCalvingDate == nil {
			calving := models.ExpectedCalving(rec.BreedingDate)
			rec.ExpectedCalvingDate = &calving
		}
	}
	if in.ExpectedCalvingDate != nil {
		rec.ExpectedCalvingDate = in.ExpectedCalvingDate
	}
	if in.Method != nil {
		rec.Method = *in.Method
	}
	if in.SireName != nil {
		rec.SireName = strings.TrimSpace(*in.SireName)
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	if in.Cost != nil {
		rec.Cost = nullDecimal(in.Cost)
	}
	if in.Notes != nil {
		rec.Notes = *in.Notes
	}
	if err := validateBreeding(rec); err != nil {
		return nil, SyncOutcome{}, err
	}

	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, SyncOutcome{}, storeError(err)
	}
	return rec, s.sync(ctx, rec), nil
}

// DeleteBreedingRecord soft-deletes the record and retracts its ledger entry.
func (s *breedingService) DeleteBreedingRecord(ctx context.Context, userID, recordID string) (SyncOutcome, error) {
	rec, err := s.GetBreedingRecord(ctx, userID, recordID)
	if err != nil {
		return SyncOutcome{}, err
	}
	if err := s.db.WithContext(ctx).Delete(rec).Error; err != nil {
		return SyncOutcome{}, storeError(err)
	}
	return s.retract(ctx, rec), nil
}

// GetBreedingRecord retrieves a breeding record by ID for a specific user.
func (s *breedingService) GetBreedingRecord(ctx context.Context, userID, recordID string) (*models.BreedingRecord, error) {
	return getRecord[models.BreedingRecord](ctx, s.db, userID, recordID, apperrors.ErrBreedingRecordNotFound)
}

// ListBreedingRecords retrieves a paginated, filtered list of breeding records.
func (s *breedingService) ListBreedingRecords(ctx context.Context, userID string, page pagination.PageRequest, filter RecordFilter) (*pagination.PageResponse[models.BreedingRecord], error) {
	return listRecords[models.BreedingRecord](ctx, s.db, userID, page, filter, "breeding_date")
}

func validateBreeding(rec *models.BreedingRecord) error {
	switch rec.Method {
	case models.BreedingMethodNatural, models.BreedingMethodArtificialInsemination:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "method must be natural or artificial_insemination")
	}
	switch rec.Status {
	case models.BreedingStatusPending, models.BreedingStatusConfirmed, models.BreedingStatusFailed, models.BreedingStatusCalved:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be pending, confirmed, failed or calved")
	}
	if rec.ExpectedCalvingDate != nil && rec.ExpectedCalvingDate.Before(rec.BreedingDate) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "expected_calving_date must not precede breeding_date")
	}
	return nil
}
