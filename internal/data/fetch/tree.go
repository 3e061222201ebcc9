package fetch

import (
	"context"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/scripta-tools/linehistory/internal/core/model"
	"github.com/scripta-tools/linehistory/internal/util"
)

// TreeClient fetches history from a dedicated history-tree service
// that exposes GET <base>/history/<slug>, where slug is the last path
// segment of the line's URI-shaped identifier.
type TreeClient struct {
	base   string
	client *retryablehttp.Client
}

// NewTreeClient creates a tree-service client for the given base URL.
func NewTreeClient(base string) *TreeClient {
	return &TreeClient{
		base:   strings.TrimRight(base, "/"),
		client: newHTTPClient(),
	}
}

// FetchHistory returns every known version of the line, in service
// order.
func (c *TreeClient) FetchHistory(ctx context.Context, lineID string) ([]model.RawRecord, error) {
	if lineID == "" {
		return nil, ErrEmptyLineID
	}

	url := c.base + "/history/" + slug(lineID)
	util.LogDebugf("Fetching history tree: %s", url)
	return getRecords(ctx, c.client, url)
}

// slug extracts the identifier's last path segment; bare identifiers
// pass through unchanged.
func slug(lineID string) string {
	trimmed := strings.TrimRight(lineID, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
