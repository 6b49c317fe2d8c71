// ucapp - Unity Catalog app samples: volume-backed startup download and
// service-credential exchange, each fronted by a small web UI.
package main

import (
	"fmt"
	"os"

	"github.com/dbxapps/ucapp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
