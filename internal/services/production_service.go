package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/models"
	"herdbook/internal/pagination"
)

// productionService handles milk production records. Sold yields are
// mirrored in the ledger as Milk Sales income.
type productionService struct {
	recordWorkflow
}

// NewProductionService creates a new ProductionServicer.
func NewProductionService(db *gorm.DB, animals AnimalServicer, syncer LedgerSyncer) ProductionServicer {
	return &productionService{recordWorkflow: newRecordWorkflow(db, animals, syncer, "production")}
}

// CreateProductionRecord saves a milk yield and syncs its sale value to the ledger.
func (s *productionService) CreateProductionRecord(ctx context.Context, userID string, in ProductionInput) (*models.ProductionRecord, SyncOutcome, error) {
	if userID == "" {
		return nil, SyncOutcome{}, apperrors.ErrUnauthorized
	}
	rec := &models.ProductionRecord{
		UserID:       userID,
		AnimalID:     in.AnimalID,
		RecordDate:   recordDateOrToday(in.RecordDate),
		Quantity:     in.Quantity,
		UseType:      in.UseType,
		PricePerUnit: nullDecimal(in.PricePerUnit),
		BuyerName:    strings.TrimSpace(in.BuyerName),
		Notes:        in.Notes,
	}
	if err := validateProduction(rec); err != nil {
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

// UpdateProductionRecord applies the provided fields and re-syncs the ledger.
func (s *productionService) UpdateProductionRecord(ctx context.Context, userID, recordID string, in ProductionUpdate) (*models.ProductionRecord, SyncOutcome, error) {
	rec, err := s.GetProductionRecord(ctx, userID, recordID)
	if err != nil {
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
	if in.Quantity != nil {
		rec.Quantity = *in.Quantity
	}
	if in.UseType != nil {
		rec.UseType = *in.UseType
	}
	if in.PricePerUnit != nil {
		rec.PricePerUnit = nullDecimal(in.PricePerUnit)
	}
	if in.BuyerName != nil {
		rec.BuyerName = strings.TrimSpace(*in.BuyerName)
	}
	if in.Notes != nil {
		rec.Notes = *in.Notes
	}
	if err := validateProduction(rec); err != nil {
		return nil, SyncOutcome{}, err
	}

	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, SyncOutcome{}, storeError(err)
	}
	return rec, s.sync(ctx, rec), nil
}

// DeleteProductionRecord soft-deletes the record and retracts its ledger entry.
func (s *productionService) DeleteProductionRecord(ctx context.Context, userID, recordID string) (SyncOutcome, error) {
	rec, err := s.GetProductionRecord(ctx, userID, recordID)
	if err != nil {
		return SyncOutcome{}, err
	}
	if err := s.db.WithContext(ctx).Delete(rec).Error; err != nil {
		return SyncOutcome{}, storeError(err)
	}
	return s.retract(ctx, rec), nil
}

// GetProductionRecord retrieves a production record by ID for a specific user.
func (s *productionService) GetProductionRecord(ctx context.Context, userID, recordID string) (*models.ProductionRecord, error) {
	return getRecord[models.ProductionRecord](ctx, s.db, userID, recordID, apperrors.ErrProductionRecordNotFound)
}

// ListProductionRecords retrieves a paginated, filtered list of production records.
func (s *productionService) ListProductionRecords(ctx context.Context, userID string, page pagination.PageRequest, filter RecordFilter) (*pagination.PageResponse[models.ProductionRecord], error) {
	return listRecords[models.ProductionRecord](ctx, s.db, userID, page, filter, "record_date")
}

func validateProduction(rec *models.ProductionRecord) error {
	if err := requirePositive(rec.Quantity, "quantity"); err != nil {
		return err
	}
	switch rec.UseType {
	case models.UseTypeSold, models.UseTypeHomeUse, models.UseTypeCalfFeeding, models.UseTypeDiscarded:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "use_type must be one of Sold, Home Use, Calf Feeding, Discarded")
	}
	if rec.PricePerUnit.Valid && rec.PricePerUnit.Decimal.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "price_per_unit must not be negative")
	}
	if rec.UseType == models.UseTypeSold && rec.PricePerUnit.Valid &&
		rec.PricePerUnit.Decimal.IsPositive() && rec.LedgerAmount() == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "sale value (quantity x price_per_unit) must be 0 or at least 0.5")
	}
	return nil
}
