package oracle

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"rewards/domain"
	"rewards/infrastructure/logger"
	"rewards/infrastructure/retry"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestFixedRateOracle(t *testing.T) {
	oracle, err := NewFixedRateOracle(3, 2)
	require.NoError(t, err)

	out, err := oracle.Quote(context.Background(), domain.NativeMint, solana.NewWallet().PublicKey(), 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), out)

	_, err = oracle.Quote(context.Background(), domain.NativeMint, solana.NewWallet().PublicKey(), math.MaxUint64)
	assert.ErrorIs(t, err, domain.ErrorArithmeticOverflow)

	_, err = NewFixedRateOracle(1, 0)
	assert.Error(t, err)
}

func newTestJupiter(t *testing.T, url string) *JupiterOracle {
	t.Helper()
	oracle, err := NewJupiterOracle(JupiterConfig{
		Logger:      logger.Discard(),
		QuoteURL:    url,
		Limiter:     rate.NewLimiter(rate.Inf, 1),
		Retry:       retry.Config{MaxAttempts: 3, BaseBackoff: time.Millisecond, MaxBackoff: time.Millisecond},
		SlippageBps: 50,
	})
	require.NoError(t, err)
	return oracle
}

func TestJupiterOracleQuote(t *testing.T) {
	asset := solana.NewWallet().PublicKey()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, domain.NativeMint.String(), q.Get("inputMint"))
		assert.Equal(t, asset.String(), q.Get("outputMint"))
		assert.Equal(t, "1000000000", q.Get("amount"))
		assert.Equal(t, "50", q.Get("slippageBps"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"inAmount":"1000000000","outAmount":"150000000","otherAmountThreshold":"149250000","slippageBps":50,"priceImpactPct":"0"}`))
	}))
	defer srv.Close()

	out, err := newTestJupiter(t, srv.URL).Quote(context.Background(), domain.NativeMint, asset, 1_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(149_250_000), out)
}

func TestJupiterOracleFallsBackToOutAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"outAmount":"77"}`))
	}))
	defer srv.Close()

	out, err := newTestJupiter(t, srv.URL).Quote(context.Background(), domain.NativeMint, solana.NewWallet().PublicKey(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(77), out)
}

func TestJupiterOracleRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"outAmount":"5","otherAmountThreshold":"4"}`))
	}))
	defer srv.Close()

	out, err := newTestJupiter(t, srv.URL).Quote(context.Background(), domain.NativeMint, solana.NewWallet().PublicKey(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), out)
	assert.Equal(t, int32(2), calls.Load())
}

func TestJupiterOracleRejectsBadRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "no route", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestJupiter(t, srv.URL).Quote(context.Background(), domain.NativeMint, solana.NewWallet().PublicKey(), 1)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestJupiterOracleRejectsOversizedAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"outAmount":"18446744073709551616"}`))
	}))
	defer srv.Close()

	_, err := newTestJupiter(t, srv.URL).Quote(context.Background(), domain.NativeMint, solana.NewWallet().PublicKey(), 1)
	assert.ErrorIs(t, err, domain.ErrorArithmeticOverflow)
}

func TestJupiterConfigValidate(t *testing.T) {
	_, err := NewJupiterOracle(JupiterConfig{QuoteURL: "http://x"})
	assert.Error(t, err)
	_, err = NewJupiterOracle(JupiterConfig{Logger: logger.Discard()})
	assert.Error(t, err)
	_, err = NewJupiterOracle(JupiterConfig{Logger: logger.Discard(), QuoteURL: "http://x", SlippageBps: 10001})
	assert.Error(t, err)
}
