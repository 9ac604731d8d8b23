package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/export"
	"herdbook/internal/models"
	"herdbook/internal/pagination"
	"herdbook/internal/services"
)

// LedgerHandler handles the farm ledger: manual entries, summaries, exports
// and on-demand reconciliation.
type LedgerHandler struct {
	ledgerService    services.LedgerServicer
	reconcileService services.ReconcileServicer
	auditService     services.AuditServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer, reconcileService services.ReconcileServicer, auditService services.AuditServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, reconcileService: reconcileService, auditService: auditService}
}

// CreateLedgerEntryRequest represents a manually recorded income or expense.
type CreateLedgerEntryRequest struct {
	TransactionType models.LedgerType `json:"transaction_type" binding:"required,ledger_type"`
	Category        string            `json:"category" binding:"required,max=100"`
	Amount          int64             `json:"amount" binding:"required,gt=0"`
	TransactionDate *string           `json:"transaction_date"`
	AnimalID        *string           `json:"animal_id"`
	Description     string            `json:"description" binding:"max=500"`
	BuyerName       string            `json:"buyer_name" binding:"max=150"`
	SupplierName    string            `json:"supplier_name" binding:"max=150"`
	ReceiptPhotoURL string            `json:"receipt_photo_url" binding:"omitempty,url,max=500"`
}

// UpdateLedgerEntryRequest represents the fields to change on a manual entry.
type UpdateLedgerEntryRequest struct {
	TransactionType *models.LedgerType `json:"transaction_type" binding:"omitempty,ledger_type"`
	Category        *string            `json:"category" binding:"omitempty,min=1,max=100"`
	Amount          *int64             `json:"amount" binding:"omitempty,gt=0"`
	TransactionDate *string            `json:"transaction_date"`
	AnimalID        *string            `json:"animal_id"`
	Description     *string            `json:"description" binding:"omitempty,max=500"`
	BuyerName       *string            `json:"buyer_name" binding:"omitempty,max=150"`
	SupplierName    *string            `json:"supplier_name" binding:"omitempty,max=150"`
	ReceiptPhotoURL *string            `json:"receipt_photo_url" binding:"omitempty,url,max=500"`
}

// CreateLedgerEntry records a manual income or expense
// @Summary     Create a ledger entry
// @Description Record a manual income or expense. Entries derived from production, feeding and breeding records are created by those records.
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateLedgerEntryRequest true "Entry details"
// @Success     201 {object} models.LedgerEntry "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Backend unavailable"
// @Router      /ledger [post]
func (h *LedgerHandler) CreateLedgerEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date := time.Now().UTC()
	if parsed, err := parseOptionalDate(req.TransactionDate, "transaction_date"); err != nil {
		respondWithError(c, err)
		return
	} else if parsed != nil {
		date = *parsed
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), userID, services.LedgerDraft{
		TransactionType: req.TransactionType,
		Category:        req.Category,
		Amount:          req.Amount,
		TransactionDate: date,
		AnimalID:        req.AnimalID,
		Description:     req.Description,
		BuyerName:       req.BuyerName,
		SupplierName:    req.SupplierName,
		ReceiptPhotoURL: req.ReceiptPhotoURL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_LEDGER_ENTRY", "ledger_entry", entry.ID, c.ClientIP(),
		map[string]interface{}{"type": entry.TransactionType, "category": entry.Category, "amount": entry.Amount})

	c.JSON(http.StatusCreated, gin.H{"ledger_entry": entry})
}

// ListLedgerEntries lists ledger entries
// @Summary     List ledger entries
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Param       from_date   query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date     query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Param       type        query string false "Filter by type (Income, Expense)"
// @Param       category    query string false "Filter by category"
// @Param       animal_id   query string false "Filter by animal"
// @Param       source_type query string false "Filter by source record type (ProductionRecord, FeedingRecord, BreedingRecord)"
// @Success     200 {object} pagination.PageResponse[models.LedgerEntry] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /ledger [get]
func (h *LedgerHandler) ListLedgerEntries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseLedgerFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.ledgerService.ListEntries(c.Request.Context(), userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ledgerQuery holds the enumerated ledger filters validated by the binding engine.
type ledgerQuery struct {
	Type       string `form:"type" binding:"omitempty,ledger_type"`
	Category   string `form:"category" binding:"omitempty,max=100"`
	AnimalID   string `form:"animal_id"`
	SourceType string `form:"source_type" binding:"omitempty,record_type"`
}

func parseLedgerFilter(c *gin.Context) (services.LedgerFilter, error) {
	var filter services.LedgerFilter

	var q ledgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"invalid filter: type must be Income or Expense, source_type must be ProductionRecord, FeedingRecord, or BreedingRecord")
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return filter, err
	}
	filter.FromDate, filter.ToDate = from, to

	if q.Type != "" {
		t := models.LedgerType(q.Type)
		filter.Type = &t
	}
	if q.Category != "" {
		filter.Category = &q.Category
	}
	if q.AnimalID != "" {
		filter.AnimalID = &q.AnimalID
	}
	if q.SourceType != "" {
		st := models.SourceRecordType(q.SourceType)
		filter.SourceType = &st
	}

	return filter, nil
}

// GetLedgerEntry returns one ledger entry
// @Summary     Get ledger entry
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} models.LedgerEntry "Entry"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /ledger/{id} [get]
func (h *LedgerHandler) GetLedgerEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), userID, entryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ledger_entry": entry})
}

// editableEntry loads an entry and rejects entries linked to a domain record;
// those change only through their source record.
func (h *LedgerHandler) editableEntry(c *gin.Context, userID, entryID string) (*models.LedgerEntry, error) {
	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), userID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsLinked() {
		return nil, apperrors.ErrLedgerEntryNotEditable
	}
	return entry, nil
}

// UpdateLedgerEntry updates a manual ledger entry
// @Summary     Update ledger entry
// @Description Update a manual entry. Entries linked to a production, feeding or breeding record cannot be edited here.
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Entry ID"
// @Param       request body UpdateLedgerEntryRequest true "Fields to update"
// @Success     200 {object} models.LedgerEntry "Updated entry"
// @Failure     400 {object} ErrorResponse "Invalid input or linked entry"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /ledger/{id} [put]
func (h *LedgerHandler) UpdateLedgerEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalDate(req.TransactionDate, "transaction_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.editableEntry(c, userID, entryID); err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.ledgerService.UpdateEntry(c.Request.Context(), userID, entryID, services.LedgerUpdate{
		TransactionType: req.TransactionType,
		Category:        req.Category,
		Amount:          req.Amount,
		TransactionDate: date,
		AnimalID:        req.AnimalID,
		Description:     req.Description,
		BuyerName:       req.BuyerName,
		SupplierName:    req.SupplierName,
		ReceiptPhotoURL: req.ReceiptPhotoURL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_LEDGER_ENTRY", "ledger_entry", entryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"ledger_entry": entry})
}

// DeleteLedgerEntry deletes a manual ledger entry
// @Summary     Delete ledger entry
// @Description Delete a manual entry. Linked entries are removed by deleting or zeroing their source record.
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} MessageResponse "Entry deleted"
// @Failure     400 {object} ErrorResponse "Linked entry"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /ledger/{id} [delete]
func (h *LedgerHandler) DeleteLedgerEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.editableEntry(c, userID, entryID); err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_LEDGER_ENTRY", "ledger_entry", entryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Ledger entry deleted successfully"})
}

// GetLedgerSummary returns income, expense and per-category totals
// @Summary     Ledger summary
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       from_date query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string false "End date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.LedgerSummary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /ledger/summary [get]
func (h *LedgerHandler) GetLedgerSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.ledgerService.Summary(c.Request.Context(), userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// ExportLedger streams the filtered ledger as an Excel workbook
// @Summary     Export ledger
// @Tags        ledger
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       from_date   query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date     query string false "End date (RFC3339 or YYYY-MM-DD)"
// @Param       type        query string false "Filter by type (Income, Expense)"
// @Param       category    query string false "Filter by category"
// @Param       animal_id   query string false "Filter by animal"
// @Param       source_type query string false "Filter by source record type"
// @Success     200 {file} file "Ledger workbook"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /ledger/export [get]
func (h *LedgerHandler) ExportLedger(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseLedgerFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.ledgerService.ExportEntries(c.Request.Context(), userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workbook, err := export.LedgerWorkbook(entries)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("ledger-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	if err := workbook.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// ReconcileLedger re-syncs every domain record of the user against the ledger
// @Summary     Reconcile ledger
// @Description Repair drift between production, feeding and breeding records and their ledger entries.
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.ReconcileReport "What the pass changed"
// @Failure     503 {object} ErrorResponse "Backend unavailable"
// @Router      /ledger/reconcile [post]
func (h *LedgerHandler) ReconcileLedger(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reconcileService.ReconcileUser(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECONCILE_LEDGER", "ledger", userID, c.ClientIP(),
		map[string]interface{}{
			"scanned":   report.Scanned,
			"created":   report.Created,
			"updated":   report.Updated,
			"retracted": report.Retracted,
			"orphans":   report.Orphans,
			"failed":    report.Failed,
		})

	c.JSON(http.StatusOK, gin.H{"report": report})
}
