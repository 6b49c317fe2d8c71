// Package credentials adapts Unity Catalog service-credential vending to the
// AWS SDK's CredentialsProvider interface.
package credentials

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/dbxapps/ucapp/internal/workspace"
)

// Vendor exchanges a named service credential for a temporary AWS credential.
// The workspace client implements it.
type Vendor interface {
	VendServiceCredential(ctx context.Context, credentialName string) (*workspace.TemporaryAWSCredential, error)
}

// Provider implements aws.CredentialsProvider on top of a Vendor.
//
// Every Retrieve re-vends. The credential viewer builds one client per UI
// request and issues a single call with it, so there is nothing to cache;
// expiry is still propagated so the SDK would refresh correctly if a client
// outlived one call.
type Provider struct {
	vendor         Vendor
	credentialName string
}

// NewProvider creates a provider for the given service credential name.
func NewProvider(vendor Vendor, credentialName string) *Provider {
	return &Provider{
		vendor:         vendor,
		credentialName: credentialName,
	}
}

// Retrieve vends a fresh temporary credential.
// Called by the AWS SDK when credentials are needed or expired.
func (p *Provider) Retrieve(ctx context.Context) (aws.Credentials, error) {
	cred, err := p.vendor.VendServiceCredential(ctx, p.credentialName)
	if err != nil {
		return aws.Credentials{}, fmt.Errorf("failed to vend credential %q: %w", p.credentialName, err)
	}

	return aws.Credentials{
		AccessKeyID:     cred.AccessKeyID,
		SecretAccessKey: cred.SecretAccessKey,
		SessionToken:    cred.SessionToken,
		Source:          "UnityCatalogServiceCredential",
		CanExpire:       !cred.Expiry.IsZero(),
		Expires:         cred.Expiry,
	}, nil
}
