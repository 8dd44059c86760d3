// internal/qrbill/client.go
package qrbill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"mail-sender/internal/config"
)

// Client talks to the external QR bill generator. The generator accepts
// billing parameters as JSON and answers with SVG bytes. The call is
// bounded: a slow or dead generator must not hold a request forever.
type Client struct {
	url   string
	httpc *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		url: cfg.QRBillURL,
		httpc: &http.Client{
			Timeout: cfg.QRBillTimeout,
		},
	}
}

// Fetch POSTs params verbatim to the generator and returns the response
// body. Transport failures, non-2xx answers and unreadable bodies are all
// reported as the generator being unavailable.
func (c *Client) Fetch(ctx context.Context, params json.RawMessage) ([]byte, error) {
	log.Printf("🧾 [QRBILL] Requesting QR bill from %s (%d bytes of params)", c.url, len(params))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(params))
	if err != nil {
		return nil, fmt.Errorf("build qrbill request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("❌ [QRBILL] Generator call failed after %v: %v", time.Since(start), err)
		return nil, fmt.Errorf("call qrbill generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("❌ [QRBILL] Generator returned %d: %s", resp.StatusCode, body)
		return nil, fmt.Errorf("qrbill generator returned status %d", resp.StatusCode)
	}

	svg, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read qrbill response: %w", err)
	}

	log.Printf("✅ [QRBILL] Got %d bytes of SVG in %v", len(svg), time.Since(start))
	return svg, nil
}
