// Package filestats summarizes the downloaded local file for the viewer:
// byte size, parsed JSON structure, and a bounded sample of records.
package filestats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/dbxapps/ucapp/internal/constants"
)

// Kind classifies what the viewer found at the local path.
type Kind string

const (
	KindMissing  Kind = "missing"   // file does not exist
	KindArray    Kind = "array"     // JSON array of records
	KindObject   Kind = "object"    // single JSON object
	KindScalar   Kind = "scalar"    // valid JSON, neither array nor object
	KindRaw      Kind = "raw"       // unparseable, raw preview only
	KindTooLarge Kind = "too-large" // above the in-memory load cap
)

// Summary is everything the file viewer renders about the local file.
// The whole file is loaded for parsing; acceptable for the tens-of-MB
// objects these apps handle, and capped by MaxViewerFileSize.
type Summary struct {
	Path      string
	Exists    bool
	SizeBytes int64
	Kind      Kind

	// Array files
	RecordCount int
	Sample      []string // pretty-printed leading records

	// Object files
	KeyCount int
	Keys     []string // leading keys, sorted

	// Scalar files
	Value string

	// Unparseable files
	RawPreview string
	ParseError string
}

// SizeMB returns the file size in megabytes for display.
func (s *Summary) SizeMB() float64 {
	return float64(s.SizeBytes) / (1024 * 1024)
}

// Summarize inspects the file at path. A missing file is a valid summary
// (Exists=false), not an error; errors are reserved for files that exist
// but cannot be read.
func Summarize(path string) (*Summary, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &Summary{Path: path, Kind: KindMissing}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	s := &Summary{
		Path:      path,
		Exists:    true,
		SizeBytes: info.Size(),
	}

	if info.Size() > constants.MaxViewerFileSize {
		s.Kind = KindTooLarge
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	classify(s, data)
	return s, nil
}

func classify(s *Summary, data []byte) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err == nil {
		s.Kind = KindArray
		s.RecordCount = len(records)
		limit := constants.SampleRecordLimit
		if len(records) < limit {
			limit = len(records)
		}
		for _, rec := range records[:limit] {
			s.Sample = append(s.Sample, indent(rec))
		}
		return
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		s.Kind = KindObject
		s.KeyCount = len(obj)
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) > constants.SampleKeyLimit {
			keys = keys[:constants.SampleKeyLimit]
		}
		s.Keys = keys
		return
	}

	if json.Valid(data) {
		s.Kind = KindScalar
		s.Value = string(bytes.TrimSpace(data))
		return
	}

	// Not JSON at all: show the leading bytes verbatim, like the original
	// sample's 10 KiB head preview.
	s.Kind = KindRaw
	s.ParseError = "content is not valid JSON"
	preview := data
	if len(preview) > constants.RawPreviewSize {
		preview = preview[:constants.RawPreviewSize]
	}
	s.RawPreview = string(preview)
}

func indent(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
