// Package cli: the boot command downloads the volume object and hands off
// to the UI process.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dbxapps/ucapp/internal/config"
	"github.com/dbxapps/ucapp/internal/launch"
	"github.com/dbxapps/ucapp/internal/logging"
	"github.com/dbxapps/ucapp/internal/progress"
	"github.com/dbxapps/ucapp/internal/volume"
	"github.com/dbxapps/ucapp/internal/workspace"
)

// newBootCmd creates the 'boot' command.
func newBootCmd() *cobra.Command {
	var continueOnError bool
	var noProgress bool
	var noLaunch bool

	cmd := &cobra.Command{
		Use:   "boot [-- command args...]",
		Short: "Download the volume object, then launch the file viewer",
		Long: `Download the configured object from a Unity Catalog volume to local disk,
then hand off to the UI process. The Files API via the SDK is tried first;
on failure the raw REST endpoint gets one fallback attempt.

By default the viewer is this binary's own 'fileview' command. Anything
after -- replaces it.

Examples:
  # Download and start the file viewer
  ucapp boot

  # Override the volume coordinates
  UCAPP_VOLUME_CATALOG=sales UCAPP_VOLUME_FILE=orders.json ucapp boot

  # Launch a different UI process after the download
  ucapp boot -- streamlit run app.py

  # Keep going and let the viewer show the not-found state on failure
  ucapp boot --continue-on-error

  # Download only
  ucapp boot --no-launch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateVolume(); err != nil {
				return err
			}
			if err := volume.ValidatePath(cfg.Volume); err != nil {
				return err
			}
			maybePromptToken(&cfg.Workspace)

			printBanner(cfg)

			volumePath := volume.Path(cfg.Volume)
			downloadErr := runDownload(rootContext, logger, cfg, volumePath, noProgress)
			if downloadErr != nil {
				if !continueOnError {
					return downloadErr
				}
				logger.Warn().Err(downloadErr).Msg("Download failed, continuing with UI startup")
			}

			if noLaunch {
				return downloadErr
			}

			argv := args
			if len(argv) == 0 {
				argv, err = launch.SelfArgs("fileview",
					"--file", cfg.Volume.LocalPath,
					"--listen", cfg.Viewer.ListenAddr)
				if err != nil {
					return err
				}
			}

			// From here the child owns the terminal and signal handling;
			// boot only forwards signals and mirrors the exit code.
			code, err := launch.Run(context.Background(), logger, argv)
			if err != nil {
				return err
			}
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Launch the UI even if the download fails")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the download progress bar")
	cmd.Flags().BoolVar(&noLaunch, "no-launch", false, "Download only, do not launch the UI process")

	return cmd
}

// runDownload wires the SDK primary and REST fallback into a Downloader and
// fetches the object.
func runDownload(ctx context.Context, logger *logging.Logger, cfg *config.Config, volumePath string, noProgress bool) error {
	ws, err := workspace.New(&cfg.Workspace)
	if err != nil {
		return err
	}

	// The REST fallback needs explicit host/token; without them the SDK
	// path is the only mechanism.
	var fallback volume.Source
	if rest, restErr := workspace.NewRestDownloader(cfg.Workspace.Host, cfg.Workspace.Token); restErr == nil {
		fallback = rest
	} else {
		logger.Debug().Err(restErr).Msg("REST fallback unavailable")
	}

	var reporter progress.Reporter = progress.NewNoop()
	if !noProgress && term.IsTerminal(int(os.Stderr.Fd())) {
		reporter = progress.NewCLIProgress()
	}

	d := volume.NewDownloader(ws, fallback, logger, reporter)
	_, err = d.Fetch(ctx, volumePath, cfg.Volume.LocalPath)
	return err
}

// printBanner mirrors the startup banner of the original sample.
func printBanner(cfg *config.Config) {
	fmt.Println("ucapp startup")
	fmt.Println("==================================================")
	fmt.Println("Configuration:")
	fmt.Printf("  Volume: /Volumes/%s/%s/%s\n", cfg.Volume.Catalog, cfg.Volume.Schema, cfg.Volume.Volume)
	fmt.Printf("  File: %s\n", cfg.Volume.File)
	fmt.Printf("  Local path: %s\n", cfg.Volume.LocalPath)
	fmt.Println("==================================================")
}
