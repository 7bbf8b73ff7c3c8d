package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	StakePath      = "/api/chain/stake"
	StatusStaked   = "staked"
	StatusError    = "error"
	maxBodyBytes   = 1 << 20
	DefaultTimeout = 30 * time.Second
)

// StakeRequest is the body of POST /api/chain/stake.
type StakeRequest struct {
	WalletID string  `json:"wallet_id"`
	Amount   float64 `json:"amount"`
}

// StakeResponse keeps the decoded status next to the raw payload so the
// whole body can be shown to the user on a soft failure.
type StakeResponse struct {
	Status string
	Raw    json.RawMessage
}

func (r StakeResponse) Staked() bool {
	return r.Status == StatusStaked
}

// Payload returns the compact JSON form of the response body.
func (r StakeResponse) Payload() string {
	if len(r.Raw) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, r.Raw); err != nil {
		return string(r.Raw)
	}
	return buf.String()
}

// HTTPError is returned for any non-2xx answer.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Stake(ctx context.Context, req StakeRequest) (StakeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return StakeResponse{}, fmt.Errorf("encode stake request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+StakePath, bytes.NewReader(body))
	if err != nil {
		return StakeResponse{}, fmt.Errorf("build stake request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return StakeResponse{}, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return StakeResponse{}, fmt.Errorf("read stake response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return StakeResponse{}, &HTTPError{StatusCode: res.StatusCode, Body: string(raw)}
	}

	return decodeStakeResponse(raw)
}

func decodeStakeResponse(raw []byte) (StakeResponse, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return StakeResponse{Raw: json.RawMessage("null")}, nil
	}

	var probe struct {
		Status any `json:"status"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		// Bodies like "ok" or [1,2] are still well-formed answers without a status.
		var anyValue any
		if json.Unmarshal(raw, &anyValue) == nil {
			return StakeResponse{Raw: json.RawMessage(raw)}, nil
		}
		return StakeResponse{}, fmt.Errorf("decode stake response: %w", err)
	}

	status, _ := probe.Status.(string)
	return StakeResponse{Status: status, Raw: json.RawMessage(raw)}, nil
}
