package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/logger"
	"herdbook/internal/models"
	"herdbook/internal/pagination"
)

// maxExportRows bounds a single spreadsheet export.
const maxExportRows = 10000

// ledgerService is the gorm-backed ledger store.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// FindByDescription returns the entry whose description equals the given key.
// When several entries share the key the most recently updated one wins, ties
// broken by id, and a warning is logged.
func (s *ledgerService) FindByDescription(ctx context.Context, userID, description string) (*models.LedgerEntry, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var entries []models.LedgerEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND description = ?", userID, description).
		Order("updated_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, storeError(err)
	}

	if len(entries) == 0 {
		return nil, apperrors.ErrLedgerEntryNotFound
	}
	if len(entries) > 1 {
		ids := make([]string, len(entries))
		for i := range entries {
			ids[i] = entries[i].ID
		}
		logger.Get().Warnw("multiple ledger entries share a description key",
			"user_id", userID,
			"description", description,
			"entry_ids", ids,
			"chosen", entries[0].ID,
		)
	}
	return &entries[0], nil
}

// FindBySource returns the entry linked to the given domain record.
func (s *ledgerService) FindBySource(ctx context.Context, userID string, recordType models.SourceRecordType, recordID string) (*models.LedgerEntry, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var entry models.LedgerEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND source_record_type = ? AND source_record_id = ?", userID, recordType, recordID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLedgerEntryNotFound
		}
		return nil, storeError(err)
	}
	return &entry, nil
}

// CreateEntry validates and persists a new ledger entry.
func (s *ledgerService) CreateEntry(ctx context.Context, userID string, draft LedgerDraft) (*models.LedgerEntry, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if draft.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !draft.TransactionType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction type must be Income or Expense")
	}
	category := strings.TrimSpace(draft.Category)
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if err := validateSourcePair(draft.SourceRecordType, draft.SourceRecordID); err != nil {
		return nil, err
	}

	date := draft.TransactionDate
	if date.IsZero() {
		date = time.Now().UTC()
	}

	entry := &models.LedgerEntry{
		UserID:           userID,
		TransactionType:  draft.TransactionType,
		Category:         category,
		Amount:           draft.Amount,
		TransactionDate:  date,
		AnimalID:         nonEmpty(draft.AnimalID),
		Description:      draft.Description,
		BuyerName:        draft.BuyerName,
		SupplierName:     draft.SupplierName,
		ReceiptPhotoURL:  draft.ReceiptPhotoURL,
		SourceRecordType: draft.SourceRecordType,
		SourceRecordID:   draft.SourceRecordID,
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateLedgerLink, err)
		}
		return nil, storeError(err)
	}
	return entry, nil
}

// UpdateEntry applies the provided fields to an existing entry.
func (s *ledgerService) UpdateEntry(ctx context.Context, userID, entryID string, fields LedgerUpdate) (*models.LedgerEntry, error) {
	entry, err := s.GetEntryByID(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	if fields.Amount != nil {
		if *fields.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		entry.Amount = *fields.Amount
	}
	if fields.TransactionType != nil {
		if !fields.TransactionType.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction type must be Income or Expense")
		}
		entry.TransactionType = *fields.TransactionType
	}
	if fields.Category != nil {
		category := strings.TrimSpace(*fields.Category)
		if category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
		}
		entry.Category = category
	}
	if fields.TransactionDate != nil && !fields.TransactionDate.IsZero() {
		entry.TransactionDate = *fields.TransactionDate
	}
	if fields.AnimalID != nil {
		entry.AnimalID = nonEmpty(fields.AnimalID)
	}
	if fields.Description != nil {
		entry.Description = *fields.Description
	}
	if fields.BuyerName != nil {
		entry.BuyerName = *fields.BuyerName
	}
	if fields.SupplierName != nil {
		entry.SupplierName = *fields.SupplierName
	}
	if fields.ReceiptPhotoURL != nil {
		entry.ReceiptPhotoURL = *fields.ReceiptPhotoURL
	}
	if fields.SourceRecordType != nil || fields.SourceRecordID != nil {
		if err := validateSourcePair(fields.SourceRecordType, fields.SourceRecordID); err != nil {
			return nil, err
		}
		entry.SourceRecordType = fields.SourceRecordType
		entry.SourceRecordID = fields.SourceRecordID
	}

	if err := s.db.WithContext(ctx).Save(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateLedgerLink, err)
		}
		return nil, storeError(err)
	}
	return entry, nil
}

// DeleteEntry removes an entry permanently.
func (s *ledgerService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	if userID == "" {
		return apperrors.ErrUnauthorized
	}

	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.LedgerEntry{})
	if result.Error != nil {
		return storeError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrLedgerEntryNotFound
	}
	return nil
}

// GetEntryByID retrieves an entry by ID for a specific user.
func (s *ledgerService) GetEntryByID(ctx context.Context, userID, entryID string) (*models.LedgerEntry, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var entry models.LedgerEntry
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLedgerEntryNotFound
		}
		return nil, storeError(err)
	}
	return &entry, nil
}

// ListEntries retrieves a paginated, filtered list of a user's ledger entries.
func (s *ledgerService) ListEntries(ctx context.Context, userID string, page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.LedgerEntry], error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.LedgerEntry{}).Where("user_id = ?", userID)
	base = applyLedgerFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, storeError(err)
	}

	var entries []models.LedgerEntry
	if err := base.Scopes(pagination.Paginate(page)).
		Order("transaction_date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, storeError(err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ExportEntries returns the filtered entries in date order for a spreadsheet export.
func (s *ledgerService) ExportEntries(ctx context.Context, userID string, filter LedgerFilter) ([]models.LedgerEntry, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var entries []models.LedgerEntry
	q := applyLedgerFilters(s.db.WithContext(ctx).Where("user_id = ?", userID), filter)
	if err := q.Order("transaction_date ASC, id ASC").Limit(maxExportRows).Find(&entries).Error; err != nil {
		return nil, storeError(err)
	}
	return entries, nil
}

// ListLinkedEntries returns every entry of the user that was derived from a domain record.
func (s *ledgerService) ListLinkedEntries(ctx context.Context, userID string) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND source_record_type IS NOT NULL AND source_record_id IS NOT NULL", userID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, storeError(err)
	}
	return entries, nil
}

// Summary totals income and expense, overall and per category, for the window.
func (s *ledgerService) Summary(ctx context.Context, userID string, from, to *time.Time) (*LedgerSummary, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var rows []CategoryTotal
	q := applyLedgerFilters(s.db.WithContext(ctx).Model(&models.LedgerEntry{}).Where("user_id = ?", userID),
		LedgerFilter{FromDate: from, ToDate: to})
	if err := q.Select("transaction_type, category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("transaction_type, category").
		Order("transaction_type ASC, total DESC").
		Scan(&rows).Error; err != nil {
		return nil, storeError(err)
	}

	summary := &LedgerSummary{From: from, To: to, ByCategory: rows}
	if summary.ByCategory == nil {
		summary.ByCategory = []CategoryTotal{}
	}
	for _, row := range rows {
		switch row.TransactionType {
		case models.LedgerTypeIncome:
			summary.TotalIncome += row.Total
		case models.LedgerTypeExpense:
			summary.TotalExpense += row.Total
		}
	}
	summary.Net = summary.TotalIncome - summary.TotalExpense
	return summary, nil
}

func applyLedgerFilters(q *gorm.DB, f LedgerFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("transaction_date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("transaction_date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("transaction_type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.AnimalID != nil {
		q = q.Where("animal_id = ?", *f.AnimalID)
	}
	if f.SourceType != nil {
		q = q.Where("source_record_type = ?", *f.SourceType)
	}
	return q
}

// validateSourcePair requires the source columns to be set together.
func validateSourcePair(t *models.SourceRecordType, id *string) error {
	if (t == nil) != (id == nil) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "source record type and id must be set together")
	}
	if t != nil && (!t.Valid() || *id == "") {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid source record reference")
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
