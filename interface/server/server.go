package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"rewards/domain"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatisticSource provides the snapshot served at /state.
type StatisticSource interface {
	Statistic(ctx context.Context) (*domain.StatisticResult, error)
}

type stateResponse struct {
	*domain.StatisticResult
	SecondsUntilDistribution int64 `json:"seconds_until_distribution"`
}

// NewRouter serves read-only endpoints: metrics, liveness and the state snapshot.
func NewRouter(log *slog.Logger, source StatisticSource) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/state", func(w http.ResponseWriter, req *http.Request) {
		stat, err := source.Statistic(req.Context())
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, domain.ErrorNotInitialized) {
				status = http.StatusNotFound
			} else {
				log.Error("🔴 loading state", "error", err)
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, stateResponse{
			StatisticResult:          stat,
			SecondsUntilDistribution: stat.SecondsUntilDistribution(),
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Serve runs an HTTP server on address until ctx is done.
func Serve(ctx context.Context, log *slog.Logger, address string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "address", address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
