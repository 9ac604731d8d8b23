package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdbook/internal/config"
	"herdbook/internal/services"
)

func TestWebhookClient_SendWeeklySummary(t *testing.T) {
	t.Run("posts the summary with the bearer token", func(t *testing.T) {
		var got WeeklySummary
		var auth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		client := NewWebhookClient(config.NotifierConfig{WebhookURL: srv.URL, Token: "hook-token", Timeout: time.Second})
		to := time.Date(2026, 3, 6, 20, 0, 0, 0, time.UTC)
		err := client.SendWeeklySummary(context.Background(), WeeklySummary{
			UserID:   "u1",
			Email:    "farmer@example.com",
			FarmName: "Green Acres",
			From:     to.AddDate(0, 0, -7),
			To:       to,
			Summary:  &services.LedgerSummary{TotalIncome: 12000, TotalExpense: 4500, Net: 7500},
		})

		require.NoError(t, err)
		assert.Equal(t, "Bearer hook-token", auth)
		assert.Equal(t, "u1", got.UserID)
		require.NotNil(t, got.Summary)
		assert.Equal(t, int64(7500), got.Summary.Net)
	})

	t.Run("surfaces error responses", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message":"upstream down"}`))
		}))
		defer srv.Close()

		client := NewWebhookClient(config.NotifierConfig{WebhookURL: srv.URL})
		err := client.SendWeeklySummary(context.Background(), WeeklySummary{UserID: "u1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status=502")
		assert.Contains(t, err.Error(), "upstream down")
	})
}
