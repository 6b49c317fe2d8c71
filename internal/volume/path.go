// Package volume downloads objects from Unity Catalog volumes to local disk.
package volume

import (
	"fmt"
	"strings"

	"github.com/dbxapps/ucapp/internal/config"
	"github.com/dbxapps/ucapp/internal/constants"
)

// Path builds the full volume path for the configured object, following the
// /Volumes/<catalog>/<schema>/<volume>/<file> convention.
func Path(v config.VolumeConfig) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s",
		constants.VolumeRoot, v.Catalog, v.Schema, v.Volume, v.File)
}

// ValidatePath rejects volume coordinates that would escape or malform the
// path. Coordinates are forwarded verbatim to the Files API, so slashes and
// traversal segments in a single coordinate are configuration mistakes.
func ValidatePath(v config.VolumeConfig) error {
	for name, part := range map[string]string{
		"catalog": v.Catalog,
		"schema":  v.Schema,
		"volume":  v.Volume,
	} {
		if part == "" {
			return fmt.Errorf("volume %s must not be empty", name)
		}
		if strings.ContainsAny(part, "/\\") || part == "." || part == ".." {
			return fmt.Errorf("volume %s %q must be a single path segment", name, part)
		}
	}
	if v.File == "" {
		return fmt.Errorf("volume file name must not be empty")
	}
	if strings.Contains(v.File, "..") || strings.HasPrefix(v.File, "/") {
		return fmt.Errorf("volume file name %q must be relative and traversal-free", v.File)
	}
	return nil
}
