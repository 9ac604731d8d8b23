package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/models"
	"herdbook/internal/pagination"
	"herdbook/internal/services"
)

// --- mock production service ---

type mockProductionService struct {
	createFn func(userID string, in services.ProductionInput) (*models.ProductionRecord, services.SyncOutcome, error)
	updateFn func(userID, recordID string, in services.ProductionUpdate) (*models.ProductionRecord, services.SyncOutcome, error)
	deleteFn func(userID, recordID string) (services.SyncOutcome, error)
	getFn    func(userID, recordID string) (*models.ProductionRecord, error)
	listFn   func(userID string, page pagination.PageRequest, filter services.RecordFilter) (*pagination.PageResponse[models.ProductionRecord], error)
}

func (m *mockProductionService) CreateProductionRecord(_ context.Context, userID string, in services.ProductionInput) (*models.ProductionRecord, services.SyncOutcome, error) {
	if m.createFn != nil {
		return m.createFn(userID, in)
	}
	return &models.ProductionRecord{}, services.SyncOutcome{Status: services.SyncSkipped}, nil
}

func (m *mockProductionService) UpdateProductionRecord(_ context.Context, userID, recordID string, in services.ProductionUpdate) (*models.ProductionRecord, services.SyncOutcome, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, recordID, in)
	}
	return &models.ProductionRecord{}, services.SyncOutcome{Status: services.SyncSkipped}, nil
}

func (m *mockProductionService) DeleteProductionRecord(_ context.Context, userID, recordID string) (services.SyncOutcome, error) {
	if m.deleteFn != nil {
		return m.deleteFn(userID, recordID)
	}
	return services.SyncOutcome{Status: services.SyncSkipped}, nil
}

func (m *mockProductionService) GetProductionRecord(_ context.Context, userID, recordID string) (*models.ProductionRecord, error) {
	if m.getFn != nil {
		return m.getFn(userID, recordID)
	}
	return &models.ProductionRecord{}, nil
}

func (m *mockProductionService) ListProductionRecords(_ context.Context, userID string, page pagination.PageRequest, filter services.RecordFilter) (*pagination.PageResponse[models.ProductionRecord], error) {
	if m.listFn != nil {
		return m.listFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.ProductionRecord{}, 1, 20, 0)
	return &resp, nil
}

var _ services.ProductionServicer = (*mockProductionService)(nil)

func setupProductionRouter(handler *ProductionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/production-records", handler.CreateProductionRecord)
	auth.GET("/production-records", handler.ListProductionRecords)
	auth.GET("/production-records/:id", handler.GetProductionRecord)
	auth.PUT("/production-records/:id", handler.UpdateProductionRecord)
	auth.DELETE("/production-records/:id", handler.DeleteProductionRecord)
	return r
}

func TestProductionHandler_Create(t *testing.T) {
	t.Run("returns 201 with ledger outcome", func(t *testing.T) {
		var got services.ProductionInput
		svc := &mockProductionService{
			createFn: func(userID string, in services.ProductionInput) (*models.ProductionRecord, services.SyncOutcome, error) {
				got = in
				rec := &models.ProductionRecord{Base: models.Base{ID: "p1"}, UserID: userID, AnimalID: in.AnimalID, Quantity: in.Quantity, UseType: in.UseType}
				return rec, services.SyncOutcome{Status: services.SyncCreated, LedgerEntryID: "l1", DescriptionKey: "ProductionRecord:p1"}, nil
			},
		}
		r := setupProductionRouter(NewProductionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/production-records",
			`{"animal_id":"a1","record_date":"2026-03-01","quantity":"12.5","use_type":"Sold","price_per_unit":60}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.Quantity.Equal(decimal.RequireFromString("12.5")) {
			t.Errorf("expected quantity 12.5, got %s", got.Quantity)
		}
		if got.PricePerUnit == nil || !got.PricePerUnit.Equal(decimal.NewFromInt(60)) {
			t.Errorf("expected price 60 from a JSON number, got %v", got.PricePerUnit)
		}
		if got.RecordDate.Format("2006-01-02") != "2026-03-01" {
			t.Errorf("expected record date 2026-03-01, got %v", got.RecordDate)
		}
		sync := parseJSON(t, rec)["ledger_sync"].(map[string]interface{})
		if sync["status"] != "created" || sync["ledger_entry_id"] != "l1" {
			t.Errorf("unexpected ledger_sync: %v", sync)
		}
	})

	t.Run("returns 400 on unknown use type", func(t *testing.T) {
		r := setupProductionRouter(NewProductionHandler(&mockProductionService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/production-records",
			`{"animal_id":"a1","quantity":10,"use_type":"Gifted"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on missing quantity", func(t *testing.T) {
		r := setupProductionRouter(NewProductionHandler(&mockProductionService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/production-records", `{"animal_id":"a1","use_type":"Sold"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		r := setupProductionRouter(NewProductionHandler(&mockProductionService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/production-records",
			`{"animal_id":"a1","quantity":10,"use_type":"Sold","record_date":"01/03/2026"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for another farm's animal", func(t *testing.T) {
		svc := &mockProductionService{
			createFn: func(_ string, _ services.ProductionInput) (*models.ProductionRecord, services.SyncOutcome, error) {
				return nil, services.SyncOutcome{}, apperrors.ErrAnimalNotFound
			},
		}
		r := setupProductionRouter(NewProductionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/production-records", `{"animal_id":"a9","quantity":10,"use_type":"Home Use"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ANIMAL_NOT_FOUND")
	})
}

func TestProductionHandler_Update(t *testing.T) {
	t.Run("switching use type away from Sold reports retraction", func(t *testing.T) {
		var got services.ProductionUpdate
		svc := &mockProductionService{
			updateFn: func(_, recordID string, in services.ProductionUpdate) (*models.ProductionRecord, services.SyncOutcome, error) {
				got = in
				return &models.ProductionRecord{Base: models.Base{ID: recordID}, UseType: *in.UseType},
					services.SyncOutcome{Status: services.SyncRetracted, DescriptionKey: "ProductionRecord:" + recordID}, nil
			},
		}
		r := setupProductionRouter(NewProductionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/production-records/p1", `{"use_type":"Home Use"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Quantity != nil || got.PricePerUnit != nil {
			t.Error("expected untouched fields to stay nil")
		}
		sync := parseJSON(t, rec)["ledger_sync"].(map[string]interface{})
		if sync["status"] != "retracted" {
			t.Errorf("expected retracted, got %v", sync["status"])
		}
	})
}

func TestProductionHandler_Delete(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockProductionService{
			deleteFn: func(_, _ string) (services.SyncOutcome, error) {
				return services.SyncOutcome{}, apperrors.ErrProductionRecordNotFound
			},
		}
		r := setupProductionRouter(NewProductionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/production-records/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestProductionHandler_List(t *testing.T) {
	t.Run("passes animal and date filters", func(t *testing.T) {
		var got services.RecordFilter
		svc := &mockProductionService{
			listFn: func(_ string, _ pagination.PageRequest, filter services.RecordFilter) (*pagination.PageResponse[models.ProductionRecord], error) {
				got = filter
				resp := pagination.NewPageResponse([]models.ProductionRecord{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupProductionRouter(NewProductionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/production-records?animal_id=a1&from_date=2026-01-01&to_date=2026-01-31", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.AnimalID == nil || *got.AnimalID != "a1" {
			t.Errorf("expected animal filter a1, got %v", got.AnimalID)
		}
		if got.FromDate == nil || got.ToDate == nil {
			t.Error("expected both date bounds")
		}
	})

	t.Run("returns 400 on oversized page", func(t *testing.T) {
		r := setupProductionRouter(NewProductionHandler(&mockProductionService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/production-records?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
