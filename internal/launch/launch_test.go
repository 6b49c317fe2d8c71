package launch

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dbxapps/ucapp/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(io.Discard)
}

// TestRunPropagatesExitCode runs real child processes and checks their exit
// codes come back unchanged.
func TestRunPropagatesExitCode(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want int
	}{
		{"clean exit", []string{"sh", "-c", "exit 0"}, 0},
		{"nonzero exit", []string{"sh", "-c", "exit 3"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := Run(context.Background(), testLogger(), tt.argv)
			if err != nil {
				t.Fatalf("Run(%v) error = %v, want nil", tt.argv, err)
			}
			if code != tt.want {
				t.Errorf("Run(%v) exit code = %d, want %d", tt.argv, code, tt.want)
			}
		})
	}
}

// TestRunMissingBinary reports a start failure as an error.
func TestRunMissingBinary(t *testing.T) {
	_, err := Run(context.Background(), testLogger(), []string{"/nonexistent/ucapp-child"})
	if err == nil {
		t.Fatal("Run() should fail for a missing binary")
	}
}

// TestRunEmptyArgv rejects an empty command.
func TestRunEmptyArgv(t *testing.T) {
	_, err := Run(context.Background(), testLogger(), nil)
	if err == nil {
		t.Fatal("Run(nil) should return error")
	}
}

// TestSelfArgs re-invokes the test binary with the given subcommand.
func TestSelfArgs(t *testing.T) {
	argv, err := SelfArgs("fileview", "--listen", ":9000")
	if err != nil {
		t.Fatalf("SelfArgs() error = %v", err)
	}
	if len(argv) != 4 {
		t.Fatalf("SelfArgs() returned %d args, want 4", len(argv))
	}
	if argv[1] != "fileview" {
		t.Errorf("argv[1] = %q, want fileview", argv[1])
	}
	if !strings.Contains(argv[0], "launch") {
		// The test binary path contains the package name.
		t.Logf("argv[0] = %q (executable path)", argv[0])
	}
}
