package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"rewards/domain"
	"rewards/infrastructure/logger"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	result *domain.StatisticResult
	err    error
}

func (s stubSource) Statistic(ctx context.Context) (*domain.StatisticResult, error) {
	return s.result, s.err
}

func TestStateEndpoint(t *testing.T) {
	now := time.Unix(1_700_000_030, 0)
	source := stubSource{result: &domain.StatisticResult{
		State: domain.GlobalState{
			TaxRateBasisPoints:        500,
			RewardIntervalSeconds:     60,
			LastDistributionTimestamp: 1_700_000_000,
		},
		RewardVaultBalance: 40,
		Supply:             440,
		Now:                now,
	}}

	rec := httptest.NewRecorder()
	NewRouter(logger.Discard(), source).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(30), body["seconds_until_distribution"])
	assert.Equal(t, float64(40), body["reward_vault_balance"])
	state := body["state"].(map[string]any)
	assert.Equal(t, float64(500), state["tax_rate_bps"])
}

func TestStateEndpointNotInitialized(t *testing.T) {
	rec := httptest.NewRecorder()
	router := NewRouter(logger.Discard(), stubSource{err: domain.ErrorNotInitialized})
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router = NewRouter(logger.Discard(), stubSource{err: errors.New("db down")})
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	router := NewRouter(logger.Discard(), stubSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServeStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, logger.Discard(), "127.0.0.1:0", http.NotFoundHandler())
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
