package workspace

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/dbxapps/ucapp/internal/constants"
)

// RestDownloader fetches volume objects through the raw Files REST API.
// It is the fallback mechanism for when the SDK path fails, and needs an
// explicit host and token since it bypasses the SDK's credential chain.
type RestDownloader struct {
	httpClient *nethttp.Client
	host       string
	token      string
}

// NewRestDownloader creates a fallback downloader for the given workspace.
func NewRestDownloader(host, token string) (*RestDownloader, error) {
	if host == "" || token == "" {
		return nil, fmt.Errorf("REST fallback requires an explicit workspace host and token")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil // transport-level retries stay quiet
	retryClient.HTTPClient.Timeout = constants.DownloadTimeout

	return &RestDownloader{
		httpClient: retryClient.StandardClient(),
		host:       strings.TrimSuffix(host, "/"),
		token:      token,
	}, nil
}

// DownloadVolumeFile streams a volume object from
// GET {host}/api/2.0/fs/files{volumePath}. The returned size is -1 when the
// response carries no content length.
func (d *RestDownloader) DownloadVolumeFile(ctx context.Context, volumePath string) (io.ReadCloser, int64, error) {
	url := d.host + constants.FilesAPIPrefix + volumePath

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build Files API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.token)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("Files API request for %s failed: %w", volumePath, err)
	}

	if resp.StatusCode != nethttp.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		return nil, 0, fmt.Errorf("Files API returned %s for %s: %s",
			resp.Status, volumePath, strings.TrimSpace(string(body)))
	}

	return resp.Body, resp.ContentLength, nil
}
