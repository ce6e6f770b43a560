package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DrGermanius/Reconciler/internal/retry"
)

const maxErrorBody = 1024

type jsonClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func newJSONClient(baseURL, apiKey string, timeout time.Duration) jsonClient {
	return jsonClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// do sends in as JSON and decodes a 2xx response into out when out is not nil.
// Other statuses come back as *retry.StatusError.
func (c jsonClient) do(ctx context.Context, method, path, idempotencyKey string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return retry.Permanent(fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return retry.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return &retry.StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err = json.NewDecoder(res.Body).Decode(out); err != nil {
		return retry.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return nil
}
