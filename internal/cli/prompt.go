package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dbxapps/ucapp/internal/config"
)

// maybePromptToken asks for a workspace token on the terminal when a host is
// configured without one. Entering nothing falls through to the SDK's
// default credential chain. Non-interactive runs (app containers) skip the
// prompt entirely.
func maybePromptToken(ws *config.WorkspaceConfig) {
	if ws.Host == "" || ws.Token != "" {
		return
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}

	fmt.Fprintf(os.Stderr, "Access token for %s (leave empty for default auth): ", ws.Host)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return
	}
	ws.Token = strings.TrimSpace(string(raw))
}
