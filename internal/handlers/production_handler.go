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

// ProductionHandler handles milk production records.
type ProductionHandler struct {
	productionService services.ProductionServicer
	auditService      services.AuditServicer
}

// NewProductionHandler creates a new ProductionHandler.
func NewProductionHandler(productionService services.ProductionServicer, auditService services.AuditServicer) *ProductionHandler {
	return &ProductionHandler{productionService: productionService, auditService: auditService}
}

// CreateProductionRequest represents the request payload for a milk yield.
// Quantity and price accept JSON numbers or numeric strings.
type CreateProductionRequest struct {
	AnimalID     string           `json:"animal_id" binding:"required"`
	RecordDate   *string          `json:"record_date"`
	Quantity     *decimal.Decimal `json:"quantity" binding:"required"`
	UseType      models.UseType   `json:"use_type" binding:"required,use_type"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	BuyerName    string           `json:"buyer_name" binding:"max=150"`
	Notes        string           `json:"notes" binding:"max=1000"`
}

// UpdateProductionRequest represents the fields to change on a production record.
type UpdateProductionRequest struct {
	AnimalID     *string          `json:"animal_id" binding:"omitempty,min=1"`
	RecordDate   *string          `json:"record_date"`
	Quantity     *decimal.Decimal `json:"quantity"`
	UseType      *models.UseType  `json:"use_type" binding:"omitempty,use_type"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	BuyerName    *string          `json:"buyer_name" binding:"omitempty,max=150"`
	Notes        *string          `json:"notes" binding:"omitempty,max=1000"`
}

// ProductionRecordResponse is a saved production record with its ledger outcome.
type ProductionRecordResponse struct {
	ProductionRecord *models.ProductionRecord `json:"production_record"`
	LedgerSync       services.SyncOutcome     `json:"ledger_sync"`
}

// CreateProductionRecord handles recording a milk yield
// @Summary     Record milk production
// @Description Save a milk yield. Sold milk with a price is posted to the ledger as Milk Sales income.
// @Tags        production
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProductionRequest true "Production details"
// @Success     201 {object} ProductionRecordResponse "Record saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Animal not found"
// @Router      /production-records [post]
func (h *ProductionHandler) CreateProductionRecord(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in := services.ProductionInput{
		AnimalID:     req.AnimalID,
		Quantity:     *req.Quantity,
		UseType:      req.UseType,
		PricePerUnit: req.PricePerUnit,
		BuyerName:    req.BuyerName,
		Notes:        req.Notes,
	}
	recordDate, err := parseOptionalDate(req.RecordDate, "record_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if recordDate != nil {
		in.RecordDate = *recordDate
	}

	rec, outcome, err := h.productionService.CreateProductionRecord(c.Request.Context(), userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PRODUCTION_RECORD", "production_record", rec.ID, c.ClientIP(),
		map[string]interface{}{"use_type": rec.UseType, "ledger_sync": outcome.Status})
	auditSync(h.auditService, c, userID, "production_record", rec.ID, outcome)

	c.JSON(http.StatusCreated, ProductionRecordResponse{ProductionRecord: rec, LedgerSync: outcome})
}

// ListProductionRecords lists milk production records
// @Summary     List production records
// @Tags        production
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       animal_id query string false "Filter by animal"
// @Param       from_date query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.ProductionRecord] "Paginated records"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /production-records [get]
func (h *ProductionHandler) ListProductionRecords(c *gin.Context) {
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

	result, err := h.productionService.ListProductionRecords(c.Request.Context(), userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProductionRecord returns one production record
// @Summary     Get production record
// @Tags        production
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Record ID"
// @Success     200 {object} models.ProductionRecord "Record"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /production-records/{id} [get]
func (h *ProductionHandler) GetProductionRecord(c *gin.Context) {
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

	rec, err := h.productionService.GetProductionRecord(c.Request.Context(), userID, recordID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"production_record": rec})
}

// UpdateProductionRecord handles partial updates to a production record
// @Summary     Update production record
// @Description Change a production record and re-sync its ledger entry. Changing use_type away from Sold retracts the income.
// @Tags        production
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Record ID"
// @Param       request body UpdateProductionRequest true "Fields to update"
// @Success     200 {object} ProductionRecordResponse "Record saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /production-records/{id} [put]
func (h *ProductionHandler) UpdateProductionRecord(c *gin.Context) {
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

	var req UpdateProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recordDate, err := parseOptionalDate(req.RecordDate, "record_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, outcome, err := h.productionService.UpdateProductionRecord(c.Request.Context(), userID, recordID, services.ProductionUpdate{
		AnimalID:     req.AnimalID,
		RecordDate:   recordDate,
		Quantity:     req.Quantity,
		UseType:      req.UseType,
		PricePerUnit: req.PricePerUnit,
		BuyerName:    req.BuyerName,
		Notes:        req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PRODUCTION_RECORD", "production_record", recordID, c.ClientIP(),
		map[string]interface{}{"ledger_sync": outcome.Status})
	auditSync(h.auditService, c, userID, "production_record", recordID, outcome)

	c.JSON(http.StatusOK, ProductionRecordResponse{ProductionRecord: rec, LedgerSync: outcome})
}

// DeleteProductionRecord deletes a production record and its ledger entry
// @Summary     Delete production record
// @Tags        production
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Record ID"
// @Success     200 {object} MessageResponse "Record deleted"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /production-records/{id} [delete]
func (h *ProductionHandler) DeleteProductionRecord(c *gin.Context) {
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

	outcome, err := h.productionService.DeleteProductionRecord(c.Request.Context(), userID, recordID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PRODUCTION_RECORD", "production_record", recordID, c.ClientIP(), nil)
	auditSync(h.auditService, c, userID, "production_record", recordID, outcome)

	c.JSON(http.StatusOK, gin.H{"message": "Production record deleted successfully", "ledger_sync": outcome})
}
