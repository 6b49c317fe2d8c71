package cli

import (
	"github.com/spf13/cobra"

	"github.com/dbxapps/ucapp/internal/server"
	"github.com/dbxapps/ucapp/internal/workspace"
)

// newCredViewCmd creates the 'credview' command.
func newCredViewCmd() *cobra.Command {
	var listenAddr string
	var credentialName string
	var region string

	cmd := &cobra.Command{
		Use:   "credview",
		Short: "Serve the credential-exchange EC2 viewer UI",
		Long: `Serve a web page that exchanges a Unity Catalog service credential name
for temporary AWS credentials and lists the EC2 instances of a region.
Credentials are re-vended on every request and never cached.

Examples:
  # Serve with form defaults from config / environment
  ucapp credview

  # Prefill the form
  ucapp credview --credential my-service-credential --region us-west-2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			maybePromptToken(&cfg.Workspace)

			if credentialName != "" {
				cfg.CredView.CredentialName = credentialName
			}
			if region != "" {
				cfg.CredView.Region = region
			}
			if listenAddr == "" {
				listenAddr = cfg.Viewer.ListenAddr
			}

			ws, err := workspace.New(&cfg.Workspace)
			if err != nil {
				return err
			}

			viewer := server.NewCredViewer(ws, cfg.CredView, logger)
			return viewer.ListenAndServe(rootContext, listenAddr)
		},
	}

	cmd.Flags().StringVar(&credentialName, "credential", "", "Default service credential name for the form")
	cmd.Flags().StringVar(&region, "region", "", "Default AWS region for the form")
	cmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default: configured listen_addr)")

	return cmd
}
