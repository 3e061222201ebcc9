// Package fetch talks to the remote history service. Two transports
// are supported: a dedicated history-tree service keyed by line
// identifier, and a plain per-line "/history" endpoint. A deployment
// configures exactly one of them.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/scripta-tools/linehistory/internal/core/model"
)

// ErrEmptyLineID is returned when a fetch is attempted without a
// stable line identifier to key the request on.
var ErrEmptyLineID = errors.New("fetch: empty line identifier")

// Fetcher retrieves the raw version records of a line. The returned
// collection may be in any order; chronological ordering is the
// caller's job.
type Fetcher interface {
	FetchHistory(ctx context.Context, lineID string) ([]model.RawRecord, error)
}

// newHTTPClient builds the shared retrying HTTP client.
func newHTTPClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = 15 * time.Second
	client.Logger = nil
	return client
}

// getRecords performs a GET and decodes the body as a JSON array of
// version records.
func getRecords(ctx context.Context, client *retryablehttp.Client, url string) ([]model.RawRecord, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: %s: unexpected status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}

	var raws []json.RawMessage
	if err := sonic.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("fetch: decode history: %w", err)
	}

	records := make([]model.RawRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, model.RawRecord(raw))
	}
	return records, nil
}
