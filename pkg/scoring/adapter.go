// Package scoring defines the adapter that assigns a verifiability score
// and a provisional credit quantity to a practice event at logging time.
// The real analysis (satellite imagery, historical patterns) lives behind
// a remote endpoint; the mock is a deterministic stand-in.
package scoring

import (
	"context"
	"time"

	"go.uber.org/zap"

	"carbonledger/pkg/apperr"
)

type Input struct {
	PracticeType string   `json:"practice_type"`
	Quantity     float64  `json:"quantity"`
	MediaURI     string   `json:"media_uri,omitempty"`
	GPSLat       *float64 `json:"gps_lat,omitempty"`
	GPSLng       *float64 `json:"gps_lng,omitempty"`
}

type Result struct {
	VerifiabilityScore int     `json:"verifiability_score"` // 0..100
	ProvisionalCredits float64 `json:"provisional_credits"` // tCO2e, >= 0
}

type Adapter interface {
	Score(ctx context.Context, in Input) (Result, error)
}

const maxAttempts = 3

// WithRetry wraps an adapter with bounded retries. Context cancellation is
// not retried; exhausted attempts surface as UPSTREAM.
func WithRetry(a Adapter, logger *zap.SugaredLogger) Adapter {
	return &retrying{next: a, log: logger}
}

type retrying struct {
	next Adapter
	log  *zap.SugaredLogger
}

func (r *retrying) Score(ctx context.Context, in Input) (Result, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res, err := r.next.Score(ctx, in)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		lastErr = err
		r.log.Warnw("scoring attempt failed", "attempt", attempt, "err", err)
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
		}
	}
	return Result{}, apperr.Wrap(apperr.KindUpstream, lastErr, "scoring failed after %d attempts", maxAttempts)
}
