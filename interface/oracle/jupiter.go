package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"rewards/domain"
	"rewards/infrastructure/retry"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/time/rate"
)

type JupiterConfig struct {
	Logger      *slog.Logger
	QuoteURL    string
	HTTPClient  *http.Client
	Limiter     *rate.Limiter
	Retry       retry.Config
	SlippageBps uint16
}

func (cfg *JupiterConfig) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.QuoteURL == "" {
		return errors.New("quote url is required")
	}
	if cfg.SlippageBps > domain.MaxBasisPoints {
		return errors.New("slippage must not exceed 10000 basis points")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.Limiter == nil {
		cfg.Limiter = rate.NewLimiter(rate.Limit(1), 1)
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = retry.DefaultConfig()
	}
	return nil
}

// JupiterOracle prices swaps with the Jupiter aggregator's quote API. The
// quoted output is the route's worst case after slippage.
type JupiterOracle struct {
	log *slog.Logger
	cfg JupiterConfig
}

func NewJupiterOracle(cfg JupiterConfig) (*JupiterOracle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &JupiterOracle{log: cfg.Logger, cfg: cfg}, nil
}

type quoteResponse struct {
	InputMint            string `json:"inputMint"`
	InAmount             string `json:"inAmount"`
	OutputMint           string `json:"outputMint"`
	OutAmount            string `json:"outAmount"`
	OtherAmountThreshold string `json:"otherAmountThreshold"`
	SlippageBps          uint16 `json:"slippageBps"`
	PriceImpactPct       string `json:"priceImpactPct"`
}

func (o *JupiterOracle) Quote(ctx context.Context, inputMint, outputMint solana.PublicKey, amount uint64) (uint64, error) {
	query := url.Values{}
	query.Set("inputMint", inputMint.String())
	query.Set("outputMint", outputMint.String())
	query.Set("amount", strconv.FormatUint(amount, 10))
	query.Set("slippageBps", strconv.FormatUint(uint64(o.cfg.SlippageBps), 10))
	endpoint := o.cfg.QuoteURL + "?" + query.Encode()

	var quote quoteResponse
	err := retry.Do(ctx, o.cfg.Retry, func() error {
		if err := o.cfg.Limiter.Wait(ctx); err != nil {
			return err
		}
		return o.fetch(ctx, endpoint, &quote)
	})
	if err != nil {
		return 0, fmt.Errorf("jupiter quote: %w", err)
	}

	threshold := quote.OtherAmountThreshold
	if threshold == "" {
		threshold = quote.OutAmount
	}
	output, err := domain.ParseAmount(threshold)
	if err != nil {
		return 0, fmt.Errorf("jupiter quote: invalid output amount %q: %w", threshold, err)
	}

	o.log.Debug("jupiter quote",
		"input_mint", inputMint,
		"output_mint", outputMint,
		"amount", amount,
		"out_amount", quote.OutAmount,
		"threshold", output,
		"price_impact_pct", quote.PriceImpactPct)
	return output, nil
}

func (o *JupiterOracle) fetch(ctx context.Context, endpoint string, quote *quoteResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.cfg.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &retry.StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(quote); err != nil {
		return fmt.Errorf("failed to decode quote: %w", err)
	}
	return nil
}
