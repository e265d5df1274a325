package disburse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type remote struct {
	endpoint string
	key      string
	httpc    *http.Client
}

// NewRemote returns an adapter backed by an external payment gateway
// exposing POST /v1/transfers -> {payment_ref}.
func NewRemote(endpoint, key string) Adapter {
	return &remote{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		httpc:    &http.Client{Timeout: 25 * time.Second},
	}
}

func (c *remote) Disburse(ctx context.Context, in Request) (string, error) {
	b, _ := json.Marshal(in)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/transfers", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("disbursement gateway status %d", resp.StatusCode)
	}

	var out struct {
		PaymentRef string `json:"payment_ref"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode transfer response: %w", err)
	}
	if out.PaymentRef == "" {
		return "", fmt.Errorf("transfer confirmed without payment_ref")
	}
	return out.PaymentRef, nil
}
