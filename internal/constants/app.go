// Package constants holds shared application constants.
package constants

import "time"

// Volume and download settings
const (
	// VolumeRoot is the mount prefix for Unity Catalog volume paths.
	VolumeRoot = "/Volumes"

	// FilesAPIPrefix is the REST endpoint prefix of the Files API,
	// used by the fallback download mechanism.
	FilesAPIPrefix = "/api/2.0/fs/files"

	// DownloadTimeout bounds a single download attempt (either mechanism).
	// Sized for the tens-of-MB objects these apps are meant for.
	DownloadTimeout = 10 * time.Minute

	// MaxViewerFileSize is the largest file the viewer will load whole.
	// The viewer reads the entire file into memory on each render pass,
	// so anything bigger is refused with an inline message.
	MaxViewerFileSize = 512 * 1024 * 1024
)

// Viewer rendering limits
const (
	// SampleRecordLimit is the number of records shown from a JSON array.
	SampleRecordLimit = 5

	// SampleKeyLimit is the number of keys shown from a JSON object.
	SampleKeyLimit = 10

	// RawPreviewSize is how much of an unparseable file is shown verbatim.
	RawPreviewSize = 10 * 1024
)

// HTTP server settings
const (
	ReadHeaderTimeout = 10 * time.Second
	WriteTimeout      = 60 * time.Second
	IdleTimeout       = 120 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

// Defaults for configuration values
const (
	DefaultViewerAddr = ":8000"
	DefaultLocalPath  = "big.json"
	DefaultRegion     = "us-east-1"
)
