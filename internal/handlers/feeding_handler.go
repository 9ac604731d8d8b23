package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/models"
	"herdbook/internal/pagination"
	"herdbook/internal/services"
)

// FeedingHandler handles feeding records.
type FeedingHandler struct {
	feedingService services.FeedingServicer
	auditService   services.AuditServicer
}

// NewFeedingHandler creates a new FeedingHandler.
func NewFeedingHandler(feedingService services.FeedingServicer, auditService services.AuditServicer) *FeedingHandler {
	return &FeedingHandler{feedingService: feedingService, auditService: auditService}
}

// CreateFeedingRequest represents the request payload for a feeding record.
// Ledger amounts are whole units, so a cost below 0.5 is rejected.
type CreateFeedingRequest struct {
	AnimalID     string           `json:"animal_id" binding:"required"`
	RecordDate   *string          `json:"record_date"`
	FeedType     string           `json:"feed_type" binding:"required,max=100"`
	QuantityKg   *decimal.Decimal `json:"quantity_kg" binding:"required"`
	Cost         *decimal.Decimal `json:"cost"`
	SupplierName string           `json:"supplier_name" binding:"max=150"`
	Notes        string           `json:"notes" binding:"max=1000"`
}

// UpdateFeedingRequest represents the fields to change on a feeding record.
// A cost of 0 clears the cost and retracts its ledger entry.
type UpdateFeedingRequest struct {
	AnimalID     *string          `json:"animal_id" binding:"omitempty,min=1"`
	RecordDate   *string          `json:"record_date"`
	FeedType     *string          `json:"feed_type" binding:"omitempty,min=1,max=100"`
	QuantityKg   *decimal.Decimal `json:"quantity_kg"`
	Cost         *decimal.Decimal `json:"cost"`
	SupplierName *string          `json:"supplier_name" binding:"omitempty,max=150"`
	Notes        *string          `json:"notes" binding:"omitempty,max=1000"`
}

// FeedingRecordResponse is a saved feeding record with its ledger outcome.
type FeedingRecordResponse struct {
	FeedingRecord *models.FeedingRecord `json:"feeding_record"`
	LedgerSync    services.SyncOutcome  `json:"ledger_sync"`
}

// CreateFeedingRecord handles recording a feeding
// @Summary     Record feeding
// @Description Save a feeding. A positive cost is posted to the ledger as a Feed expense.
// @Tags        feeding
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateFeedingRequest true "Feeding details"
// @Success     201 {object} FeedingRecordResponse "Record saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Animal not found"
// @Router      /feeding-records [post]
func (h *FeedingHandler) CreateFeedingRecord(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateFeedingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recordDate, err := parseOptionalDate(req.RecordDate, "record_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	in := services.FeedingInput{
		AnimalID:     req.AnimalID,
		FeedType:     req.FeedType,
		QuantityKg:   *req.QuantityKg,
		Cost:         req.Cost,
		SupplierName: req.SupplierName,
		Notes:        req.Notes,
	}
	if recordDate != nil {
		in.RecordDate = *recordDate
	}

	rec, outcome, err := h.feedingService.CreateFeedingRecord(c.Request.Context(), userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_FEEDING_RECORD", "feeding_record", rec.ID, c.ClientIP(),
		map[string]interface{}{"feed_type": rec.FeedType, "ledger_sync": outcome.Status})
	auditSync(h.auditService, c, userID, "feeding_record", rec.ID, outcome)

	c.JSON(http.StatusCreated, FeedingRecordResponse{FeedingRecord: rec, LedgerSync: outcome})
}

// ListFeedingRecords lists feeding records
// @Summary     List feeding records
// @Tags        feeding
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       animal_id query string false "Filter by animal"
// @Param       from_date query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.FeedingRecord] "Paginated records"
// @Router      /feeding-records [get]
func (h *FeedingHandler) ListFeedingRecords(c *gin.Context) {
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

	filter, err := parseRecordFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.feedingService.ListFeedingRecords(c.Request.Context(), userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFeedingRecord returns one feeding record
// @Summary     Get feeding record
// @Tags        feeding
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Record ID"
// @Success     200 {object} models.FeedingRecord "Record"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /feeding-records/{id} [get]
func (h *FeedingHandler) GetFeedingRecord(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, err := h.feedingService.GetFeedingRecord(c.Request.Context(), userID, recordID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feeding_record": rec})
}

// UpdateFeedingRecord handles partial updates to a feeding record
// @Summary     Update feeding record
// @Description Change a feeding record and re-sync its ledger entry. Sending cost 0 retracts the expense.
// @Tags        feeding
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Record ID"
// @Param       request body UpdateFeedingRequest true "Fields to update"
// @Success     200 {object} FeedingRecordResponse "Record saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /feeding-records/{id} [put]
func (h *FeedingHandler) UpdateFeedingRecord(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFeedingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recordDate, err := parseOptionalDate(req.RecordDate, "record_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, outcome, err := h.feedingService.UpdateFeedingRecord(c.Request.Context(), userID, recordID, services.FeedingUpdate{
		AnimalID:     req.AnimalID,
		RecordDate:   recordDate,
		FeedType:     req.FeedType,
		QuantityKg:   req.QuantityKg,
		Cost:         req.Cost,
		SupplierName: req.SupplierName,
		Notes:        req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_FEEDING_RECORD", "feeding_record", recordID, c.ClientIP(),
		map[string]interface{}{"ledger_sync": outcome.Status})
	auditSync(h.auditService, c, userID, "feeding_record", recordID, outcome)

	c.JSON(http.StatusOK, FeedingRecordResponse{FeedingRecord: rec, LedgerSync: outcome})
}

// DeleteFeedingRecord deletes a feeding record and its ledger entry
// @Summary     Delete feeding record
// @Tags        feeding
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Record ID"
// @Success     200 {object} MessageResponse "Record deleted"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /feeding-records/{id} [delete]
func (h *FeedingHandler) DeleteFeedingRecord(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	outcome, err := h.feedingService.DeleteFeedingRecord(c.Request.Context(), userID, recordID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_FEEDING_RECORD", "feeding_record", recordID, c.ClientIP(), nil)
	auditSync(h.auditService, c, userID, "feeding_record", recordID, outcome)

	c.JSON(http.StatusOK, gin.H{"message": "Feeding record deleted successfully", "ledger_sync": outcome})
}
