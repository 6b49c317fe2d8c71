package cli

import (
	"github.com/spf13/cobra"

	"github.com/dbxapps/ucapp/internal/server"
)

// newFileViewCmd creates the 'fileview' command.
func newFileViewCmd() *cobra.Command {
	var listenAddr string
	var filePath string

	cmd := &cobra.Command{
		Use:   "fileview",
		Short: "Serve the downloaded-file viewer UI",
		Long: `Serve a web page that shows whether the downloaded file exists and, when
it does, its byte size, parsed structure, and a bounded sample of records.
The file is re-read on every page load.

Examples:
  # Serve the default file on the default port
  ucapp fileview

  # Point at a different file and port
  ucapp fileview --file /data/orders.json --listen :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if filePath == "" {
				filePath = cfg.Volume.LocalPath
			}
			if listenAddr == "" {
				listenAddr = cfg.Viewer.ListenAddr
			}

			viewer := server.NewFileViewer(filePath, logger)
			return viewer.ListenAndServe(rootContext, listenAddr)
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Local file to display (default: configured local_path)")
	cmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default: configured listen_addr)")

	return cmd
}
