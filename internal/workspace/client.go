// Package workspace wraps the Databricks workspace APIs the apps rely on:
// Files downloads from Unity Catalog volumes and service-credential vending.
package workspace

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/databricks/databricks-sdk-go"
	"github.com/databricks/databricks-sdk-go/service/catalog"
	"github.com/databricks/databricks-sdk-go/service/files"

	"github.com/dbxapps/ucapp/internal/config"
)

// TemporaryAWSCredential is a short-lived access/secret/session triple vended
// for a Unity Catalog service credential. It is held in memory for one cloud
// API call and never persisted.
type TemporaryAWSCredential struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiry          time.Time
}

// Client wraps a Databricks workspace client.
type Client struct {
	w *databricks.WorkspaceClient
}

// New creates a workspace client. When host and token are configured they
// are used directly (local development); otherwise the SDK's default
// credential chain applies, which inside an app container resolves to the
// app's service principal.
func New(cfg *config.WorkspaceConfig) (*Client, error) {
	var w *databricks.WorkspaceClient
	var err error

	switch {
	case cfg.Host != "" && cfg.Token != "":
		w, err = databricks.NewWorkspaceClient(&databricks.Config{
			Host:  cfg.Host,
			Token: cfg.Token,
		})
	case cfg.Host != "":
		// Host pinned, auth from the default chain.
		w, err = databricks.NewWorkspaceClient(&databricks.Config{
			Host: cfg.Host,
		})
	default:
		w, err = databricks.NewWorkspaceClient()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize workspace client: %w", err)
	}

	return &Client{w: w}, nil
}

// DownloadVolumeFile opens a streaming read of a volume object via the Files
// API. The returned size is -1 when the API reports no content length.
func (c *Client) DownloadVolumeFile(ctx context.Context, volumePath string) (io.ReadCloser, int64, error) {
	resp, err := c.w.Files.Download(ctx, files.DownloadRequest{
		FilePath: volumePath,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("files download of %s failed: %w", volumePath, err)
	}
	if resp.Contents == nil {
		return nil, 0, fmt.Errorf("files download of %s returned no contents", volumePath)
	}

	size := resp.ContentLength
	if size == 0 {
		size = -1
	}
	return resp.Contents, size, nil
}

// VendServiceCredential exchanges a named Unity Catalog service credential
// for temporary AWS credentials. Every call re-vends; nothing is cached.
func (c *Client) VendServiceCredential(ctx context.Context, credentialName string) (*TemporaryAWSCredential, error) {
	if credentialName == "" {
		return nil, fmt.Errorf("credential name must not be empty")
	}

	resp, err := c.w.Credentials.GenerateTemporaryServiceCredential(ctx, catalog.GenerateTemporaryServiceCredentialRequest{
		CredentialName: credentialName,
	})
	if err != nil {
		return nil, fmt.Errorf("temporary credential request for %q failed: %w", credentialName, err)
	}
	if resp.AwsTempCredentials == nil {
		return nil, fmt.Errorf("credential %q did not yield AWS credentials", credentialName)
	}

	return &TemporaryAWSCredential{
		AccessKeyID:     resp.AwsTempCredentials.AccessKeyId,
		SecretAccessKey: resp.AwsTempCredentials.SecretAccessKey,
		SessionToken:    resp.AwsTempCredentials.SessionToken,
		Expiry:          time.UnixMilli(resp.ExpirationTime),
	}, nil
}
