package scoring

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

// NewRemote returns an adapter that POSTs the event input to an external
// scoring service and expects {verifiability_score, provisional_credits}.
func NewRemote(endpoint, key string) Adapter {
	return &remote{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		httpc:    &http.Client{Timeout: 25 * time.Second},
	}
}

func (c *remote) Score(ctx context.Context, in Input) (Result, error) {
	b, _ := json.Marshal(in)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/score", bytes.NewReader(b))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("scoring service status %d", resp.StatusCode)
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("decode scoring response: %w", err)
	}
	if out.VerifiabilityScore < 0 || out.VerifiabilityScore > 100 || out.ProvisionalCredits < 0 {
		return Result{}, fmt.Errorf("scoring response out of range: %+v", out)
	}
	return out, nil
}
