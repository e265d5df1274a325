// Package disburse is the mobile-money transport behind farmer payouts.
// The ledger only needs a confirmed payment reference; everything about
// the rails (M-Pesa B2C in production) stays behind this interface.
package disburse

import (
	"context"
	"time"

	"go.uber.org/zap"

	"carbonledger/pkg/apperr"
)

type Request struct {
	FarmerID  uint    `json:"farmer_id"`
	Phone     string  `json:"phone"`
	AmountKES float64 `json:"amount_kes"`
	LotID     uint    `json:"lot_id"`
}

type Adapter interface {
	// Disburse sends the amount and returns the external payment
	// reference once the transfer is confirmed.
	Disburse(ctx context.Context, req Request) (ref string, err error)
}

const maxAttempts = 3

func WithRetry(a Adapter, logger *zap.SugaredLogger) Adapter {
	return &retrying{next: a, log: logger}
}

type retrying struct {
	next Adapter
	log  *zap.SugaredLogger
}

func (r *retrying) Disburse(ctx context.Context, req Request) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ref, err := r.next.Disburse(ctx, req)
		if err == nil {
			return ref, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = err
		r.log.Warnw("disbursement attempt failed",
			"farmer_id", req.FarmerID, "attempt", attempt, "err", err)
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
		}
	}
	return "", apperr.Wrap(apperr.KindUpstream, lastErr, "disbursement failed after %d attempts", maxAttempts)
}
