package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAPIKeyRouter(apiKey string) *gin.Engine {
	r := gin.New()
	r.Use(APIKeyMiddleware(apiKey))
	r.POST("/internal/reconcile", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func doKeyedRequest(r *gin.Engine, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/internal/reconcile", http.NoBody)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := parseBody(t, rec)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		configuredKey string
		requestKey    string
		wantStatus    int
		wantErrorCode string
	}{
		{name: "valid_api_key", configuredKey: "reconcile-key", requestKey: "reconcile-key", wantStatus: http.StatusOK},
		{name: "invalid_api_key", configuredKey: "reconcile-key", requestKey: "wrong-key", wantStatus: http.StatusUnauthorized, wantErrorCode: "INVALID_API_KEY"},
		{name: "missing_api_key", configuredKey: "reconcile-key", requestKey: "", wantStatus: http.StatusUnauthorized, wantErrorCode: "INVALID_API_KEY"},
		{name: "prefix_rejected", configuredKey: "reconcile-key", requestKey: "reconcile", wantStatus: http.StatusUnauthorized, wantErrorCode: "INVALID_API_KEY"},
		{name: "not_configured", configuredKey: "", requestKey: "any-key", wantStatus: http.StatusServiceUnavailable, wantErrorCode: "INTERNAL_API_DISABLED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doKeyedRequest(setupAPIKeyRouter(tt.configuredKey), tt.requestKey)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantErrorCode != "" {
				if code := errorCode(t, rec); code != tt.wantErrorCode {
					t.Errorf("error code = %q, want %q", code, tt.wantErrorCode)
				}
			}
		})
	}
}
