// Package launch hands process execution off to the UI child process once
// the startup download has finished.
package launch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/dbxapps/ucapp/internal/logging"
)

// SelfArgs builds an argv that re-invokes the current binary with a
// subcommand, the default way boot starts the viewer.
func SelfArgs(subcommand string, extra ...string) ([]string, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve own executable path: %w", err)
	}
	return append([]string{self, subcommand}, extra...), nil
}

// Run starts argv as a child process with inherited stdio, forwards
// SIGINT/SIGTERM to it, waits, and returns the child's exit code. This is a
// plain sequential handoff: the child is not monitored or restarted.
func Run(ctx context.Context, logger *logging.Logger, argv []string) (int, error) {
	if len(argv) == 0 {
		return 0, fmt.Errorf("no command to launch")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Info().Strs("argv", argv).Msg("Launching UI process")

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", argv[0], err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	for {
		select {
		case sig := <-sigCh:
			logger.Info().Str("signal", sig.String()).Msg("Forwarding signal to UI process")
			_ = cmd.Process.Signal(sig)
		case err := <-done:
			if err == nil {
				return 0, nil
			}
			if exitErr, ok := err.(*exec.ExitError); ok {
				return exitErr.ExitCode(), nil
			}
			return 0, fmt.Errorf("UI process failed: %w", err)
		}
	}
}
