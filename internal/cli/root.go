// Package cli provides the command-line interface for ucapp.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dbxapps/ucapp/internal/config"
	"github.com/dbxapps/ucapp/internal/logging"
	"github.com/dbxapps/ucapp/internal/version"
)

var (
	// Global flags
	cfgFile string
	host    string
	token   string
	verbose bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ucapp",
		Short: "Unity Catalog app samples: volume downloads and credential exchange",
		Long: `ucapp ` + version.Version + ` - Built: ` + version.BuildTime + `
Sample integrations for apps hosted next to a Databricks workspace.

boot:
  Download an object from a Unity Catalog volume to local disk, then
  hand off to the file viewer process.

fileview:
  Web UI showing the downloaded file's size, structure, and a sample.

credview:
  Web UI that exchanges a Unity Catalog service credential for temporary
  AWS credentials and lists EC2 instances.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewDefaultLogger()
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "Databricks workspace URL (overrides config and DATABRICKS_HOST)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Databricks access token (overrides config and DATABRICKS_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"

	return rootCmd
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return logger
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if host != "" {
		cfg.Workspace.Host = host
	}
	if token != "" {
		cfg.Workspace.Token = token
	}
	return cfg, nil
}

// Execute runs the CLI.
func Execute() error {
	// Create a context that can be cancelled by signals
	rootContext, cancelFunc = context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			if sig != nil {
				fmt.Fprintf(os.Stderr, "\nReceived signal %v, shutting down...\n", sig)
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newBootCmd())
	rootCmd.AddCommand(newFileViewCmd())
	rootCmd.AddCommand(newCredViewCmd())
}
