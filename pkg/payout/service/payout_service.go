package service

import (
	"context"

	"carbonledger/entities"
)

type PayoutService interface {
	// Run apportions a sold lot's farmer pool across its contributing
	// farmers and disburses each share. Safe to re-run: completed rows are
	// skipped, failed ones stay pending and are retried. A single farmer's
	// disbursement failure never blocks the others.
	Run(ctx context.Context, lotID uint) ([]entities.Payout, error)
}
