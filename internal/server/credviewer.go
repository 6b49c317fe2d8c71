package server

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/dbxapps/ucapp/internal/cloud/compute"
	"github.com/dbxapps/ucapp/internal/cloud/credentials"
	"github.com/dbxapps/ucapp/internal/config"
	"github.com/dbxapps/ucapp/internal/logging"
)

// Regions offered by the credential viewer's form.
var Regions = []string{"us-east-1", "us-west-2", "eu-west-1", "ap-southeast-1"}

// CredViewer serves the credential-exchange UI: exchange a service
// credential name for temporary AWS credentials and list EC2 instances.
// Every submit re-vends credentials; nothing is cached between requests.
type CredViewer struct {
	vendor   credentials.Vendor
	defaults config.CredViewConfig
	logger   *logging.Logger

	// listInstances is swappable for tests. The default builds a fresh EC2
	// client per request from vended credentials.
	listInstances func(ctx context.Context, credentialName, region string) ([]compute.Instance, error)
}

// NewCredViewer creates the credential-exchange viewer.
func NewCredViewer(vendor credentials.Vendor, defaults config.CredViewConfig, logger *logging.Logger) *CredViewer {
	v := &CredViewer{
		vendor:   vendor,
		defaults: defaults,
		logger:   logger,
	}
	v.listInstances = v.listViaAWS
	return v
}

func (v *CredViewer) listViaAWS(ctx context.Context, credentialName, region string) ([]compute.Instance, error) {
	client, err := compute.NewClient(ctx, v.vendor, credentialName, region)
	if err != nil {
		return nil, err
	}
	return compute.ListInstances(ctx, client, region)
}

// credViewData is the credview.html template payload.
type credViewData struct {
	CredentialName string
	Region         string
	Regions        []string
	Submitted      bool
	Error          string
	Instances      []compute.Instance
}

// Handler returns the viewer's routes.
func (v *CredViewer) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", v.handleIndex)
	return mux
}

func (v *CredViewer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := credViewData{
		CredentialName: v.defaults.CredentialName,
		Region:         v.defaults.Region,
		Regions:        Regions,
	}

	if r.Method == http.MethodPost {
		data.Submitted = true
		data.CredentialName = r.FormValue("credential_name")
		data.Region = r.FormValue("region")
		v.fetch(r.Context(), &data)
	}

	if err := templates.ExecuteTemplate(w, "credview.html", &data); err != nil {
		v.logger.Error().Err(err).Msg("Template render failed")
	}
}

// fetch vends credentials and lists instances, turning any failure into an
// inline page message.
func (v *CredViewer) fetch(ctx context.Context, data *credViewData) {
	if data.CredentialName == "" {
		data.Error = "Service credential name must not be empty."
		return
	}
	if !slices.Contains(Regions, data.Region) {
		data.Error = fmt.Sprintf("Unsupported region %q.", data.Region)
		return
	}

	v.logger.Info().
		Str("credential", data.CredentialName).
		Str("region", data.Region).
		Msg("Fetching EC2 instances with vended credentials")

	instances, err := v.listInstances(ctx, data.CredentialName, data.Region)
	if err != nil {
		v.logger.Error().Err(err).Msg("Instance listing failed")
		data.Error = fmt.Sprintf("Failed to list instances: %v", err)
		return
	}
	data.Instances = instances
}

// ListenAndServe runs the viewer on addr until ctx is cancelled.
func (v *CredViewer) ListenAndServe(ctx context.Context, addr string) error {
	return Serve(ctx, v.logger, newHTTPServer(addr, v.logger, v.Handler()))
}
