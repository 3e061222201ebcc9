package fetch

import (
	"context"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/scripta-tools/linehistory/internal/core/model"
	"github.com/scripta-tools/linehistory/internal/util"
)

// PlainClient is the fallback transport for deployments without a
// history-tree service: the line identifier itself is a URL, and its
// versions are a JSON array at GET <identifier>/history.
type PlainClient struct {
	client *retryablehttp.Client
}

// NewPlainClient creates a plain-endpoint client.
func NewPlainClient() *PlainClient {
	return &PlainClient{client: newHTTPClient()}
}

// FetchHistory returns every known version of the line.
func (c *PlainClient) FetchHistory(ctx context.Context, lineID string) ([]model.RawRecord, error) {
	if lineID == "" {
		return nil, ErrEmptyLineID
	}

	url := strings.TrimRight(lineID, "/") + "/history"
	util.LogDebugf("Fetching history endpoint: %s", url)
	return getRecords(ctx, c.client, url)
}
