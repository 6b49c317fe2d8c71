package volume

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dbxapps/ucapp/internal/logging"
	"github.com/dbxapps/ucapp/internal/progress"
)

// Source is a mechanism that can open a streaming read of a volume object.
// Both the SDK client and the REST fallback implement it.
type Source interface {
	DownloadVolumeFile(ctx context.Context, volumePath string) (io.ReadCloser, int64, error)
}

// Downloader fetches one volume object with a primary mechanism and at most
// one fallback. Each mechanism gets a single attempt per Fetch call.
type Downloader struct {
	primary  Source
	fallback Source // nil when no fallback is available
	logger   *logging.Logger
	reporter progress.Reporter
}

// NewDownloader creates a Downloader. fallback may be nil.
func NewDownloader(primary, fallback Source, logger *logging.Logger, reporter progress.Reporter) *Downloader {
	if reporter == nil {
		reporter = progress.NewNoop()
	}
	return &Downloader{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		reporter: reporter,
	}
}

// Fetch downloads volumePath to localPath and returns the number of bytes
// written. The primary mechanism is tried first; on failure the fallback
// gets one attempt. When both fail, the returned error names both failures.
func (d *Downloader) Fetch(ctx context.Context, volumePath, localPath string) (int64, error) {
	d.logger.Info().
		Str("volume_path", volumePath).
		Str("local_path", localPath).
		Msg("Starting volume download")

	body, size, primaryErr := d.primary.DownloadVolumeFile(ctx, volumePath)
	if primaryErr == nil {
		return d.writeLocal(body, size, localPath)
	}

	if d.fallback == nil {
		return 0, fmt.Errorf("download of %s failed: %w (no fallback available)", volumePath, primaryErr)
	}

	d.logger.Warn().
		Err(primaryErr).
		Msg("SDK download failed, trying Files REST API fallback")

	body, size, fallbackErr := d.fallback.DownloadVolumeFile(ctx, volumePath)
	if fallbackErr != nil {
		return 0, fmt.Errorf("download of %s failed: sdk: %v; rest fallback: %v",
			volumePath, primaryErr, fallbackErr)
	}
	return d.writeLocal(body, size, localPath)
}

// writeLocal streams body to localPath, reporting progress as it goes.
func (d *Downloader) writeLocal(body io.ReadCloser, size int64, localPath string) (int64, error) {
	defer body.Close()

	if dir := filepath.Dir(localPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create destination directory: %w", err)
		}
	}

	f, err := os.Create(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", localPath, err)
	}

	d.reporter.Start(size, "Downloading "+filepath.Base(localPath))
	written, err := io.Copy(io.MultiWriter(f, &progressWriter{reporter: d.reporter}), body)
	if err != nil {
		f.Close()
		d.reporter.Error(err)
		return written, fmt.Errorf("failed writing %s: %w", localPath, err)
	}
	d.reporter.Finish()

	if err := f.Close(); err != nil {
		return written, fmt.Errorf("failed to close %s: %w", localPath, err)
	}

	d.logger.Info().
		Int64("bytes", written).
		Str("local_path", localPath).
		Msgf("Downloaded %.2f MB", float64(written)/(1024*1024))

	return written, nil
}

// progressWriter feeds byte counts to a Reporter as a write sink.
type progressWriter struct {
	reporter progress.Reporter
	current  int64
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.current += int64(len(p))
	w.reporter.Update(w.current)
	return len(p), nil
}
