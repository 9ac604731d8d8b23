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

// BreedingHandler handles breeding records.
type BreedingHandler struct {
	breedingService services.BreedingServicer
	auditService    services.AuditServicer
}

// NewBreedingHandler creates a new BreedingHandler.
func NewBreedingHandler(breedingService services.BreedingServicer, auditService services.AuditServicer) *BreedingHandler {
	return &BreedingHandler{breedingService: breedingService, auditService: auditService}
}

// CreateBreedingRequest represents the request payload for a breeding record.
// Ledger amounts are whole units, so a cost below 0.5 is rejected.
type CreateBreedingRequest struct {
	AnimalID            string                `json:"animal_id" binding:"required"`
	BreedingDate        *string               `json:"breeding_date"`
	Method              models.BreedingMethod `json:"method" binding:"required,breeding_method"`
	SireName            string                `json:"sire_name" binding:"max=150"`
	Status              models.BreedingStatus `json:"status" binding:"omitempty,breeding_status"`
	ExpectedCalvingDate *string               `json:"expected_calving_date"`
	Cost                *decimal.Decimal      `json:"cost"`
	Notes               string                `json:"notes" binding:"max=1000"`
}

// UpdateBreedingRequest represents the fields to change on a breeding record.
type UpdateBreedingRequest struct {
	AnimalID            *string                `json:"animal_id" binding:"omitempty,min=1"`
	BreedingDate        *string                `json:"breeding_date"`
	Method              *models.BreedingMethod `json:"method" binding:"omitempty,breeding_method"`
	SireName            *string                `json:"sire_name" binding:"omitempty,max=150"`
	Status              *models.BreedingStatus `json:"status" binding:"omitempty,breeding_status"`
	ExpectedCalvingDate *string                `json:"expected_calving_date"`
	Cost                *decimal.Decimal       `json:"cost"`
	Notes               *string                `json:"notes" binding:"omitempty,max=1000"`
}

// BreedingRecordResponse is a saved breeding record with its ledger outcome.
type BreedingRecordResponse struct {
	BreedingRecord *models.BreedingRecord `json:"breeding_record"`
	LedgerSync     services.SyncOutcome   `json:"ledger_sync"`
}

// CreateBreedingRecord handles recording a breeding
// @Summary     Record breeding
// @Description Save a breeding. The expected calving date defaults to 283 days after breeding; a positive cost is posted as a Breeding expense.
// @Tags        breeding
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBreedingRequest true "Breeding details"
// @Success     201 {object} BreedingRecordResponse "Record saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Animal not found"
// @Router      /breeding-records [post]
func (h *BreedingHandler) CreateBreedingRecord(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBreedingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	breedingDate, err := parseOptionalDate(req.BreedingDate, "breeding_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	calvingDate, err := parseOptionalDate(req.ExpectedCalvingDate, "expected_calving_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	in := services.BreedingInput{
		AnimalID:            req.AnimalID,
		Method:              req.Method,
		SireName:            req.SireName,
		Status:              req.Status,
		ExpectedCalvingDate: calvingDate,
		Cost:                req.Cost,
		Notes:               req.Notes,
	}
	if breedingDate != nil {
		in.BreedingDate = *breedingDate
	}

	rec, outcome, err := h.breedingService.CreateBreedingRecord(c.Request.Context(), userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BREEDING_RECORD", "breeding_record", rec.ID, c.ClientIP(),
		map[string]interface{}{"method": rec.Method, "ledger_sync": outcome.Status})
	auditSync(h.auditService, c, userID, "breeding_record", rec.ID, outcome)

	c.JSON(http.StatusCreated, BreedingRecordResponse{BreedingRecord: rec, LedgerSync: outcome})
}

// ListBreedingRecords lists breeding records
// @Summary     List breeding records
// @Tags        breeding
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       animal_id query string false "Filter by animal"
// @Param       from_date query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.BreedingRecord] "Paginated records"
// @Router      /breeding-records [get]
func (h *BreedingHandler) ListBreedingRecords(c *gin.Context) {
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

	result, err := h.breedingService.ListBreedingRecords(c.Request.Context(), userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBreedingRecord returns one breeding record
// @Summary     Get breeding record
// @Tags        breeding
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Record ID"
// @Success     200 {object} models.BreedingRecord "Record"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /breeding-records/{id} [get]
func (h *BreedingHandler) GetBreedingRecord(c *gin.Context) {
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

	rec, err := h.breedingService.GetBreedingRecord(c.Request.Context(), userID, recordID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breeding_record": rec})
}

// UpdateBreedingRecord handles partial updates to a breeding record
// @Summary     Update breeding record
// @Description Change a breeding record and re-sync its ledger entry. Sending cost 0 retracts the expense.
// @Tags        breeding
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Record ID"
// @Param       request body UpdateBreedingRequest true "Fields to update"
// @Success     200 {object} BreedingRecordResponse "Record saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /breeding-records/{id} [put]
func (h *BreedingHandler) UpdateBreedingRecord(c *gin.Context) {
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

	var req UpdateBreedingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	breedingDate, err := parseOptionalDate(req.BreedingDate, "breeding_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	calvingDate, err := parseOptionalDate(req.ExpectedCalvingDate, "expected_calving_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, outcome, err := h.breedingService.UpdateBreedingRecord(c.Request.Context(), userID, recordID, services.BreedingUpdate{
		AnimalID:            req.AnimalID,
		BreedingDate:        breedingDate,
		Method:              req.Method,
		SireName:            req.SireName,
		Status:              req.Status,
		ExpectedCalvingDate: calvingDate,
		Cost:                req.Cost,
		Notes:               req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BREEDING_RECORD", "breeding_record", recordID, c.ClientIP(),
		map[string]interface{}{"ledger_sync": outcome.Status})
	auditSync(h.auditService, c, userID, "breeding_record", recordID, outcome)

	c.JSON(http.StatusOK, BreedingRecordResponse{BreedingRecord: rec, LedgerSync: outcome})
}

// DeleteBreedingRecord deletes a breeding record and its ledger entry
// @Summary     Delete breeding record
// @Tags        breeding
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Record ID"
// @Success     200 {object} MessageResponse "Record deleted"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /breeding-records/{id} [delete]
func (h *BreedingHandler) DeleteBreedingRecord(c *gin.Context) {
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

	outcome, err := h.breedingService.DeleteBreedingRecord(c.Request.Context(), userID, recordID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BREEDING_RECORD", "breeding_record", recordID, c.ClientIP(), nil)
	auditSync(h.auditService, c, userID, "breeding_record", recordID, outcome)

	c.JSON(http.StatusOK, gin.H{"message": "Breeding record deleted successfully", "ledger_sync": outcome})
}
