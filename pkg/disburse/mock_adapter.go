package disburse

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type mockAdapter struct{}

// NewMock confirms every transfer immediately with a synthetic M-Pesa-style
// reference. Used when no DISBURSE_ENDPOINT is configured and in tests.
func NewMock() Adapter { return &mockAdapter{} }

func (m *mockAdapter) Disburse(_ context.Context, _ Request) (string, error) {
	return "MPESA-" + strings.ToUpper(uuid.NewString()[:8]), nil
}
