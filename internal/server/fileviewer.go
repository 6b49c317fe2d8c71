package server

import (
	"context"
	"net/http"

	"github.com/dbxapps/ucapp/internal/filestats"
	"github.com/dbxapps/ucapp/internal/logging"
)

// FileViewer serves the downloaded-file display UI. Every render pass
// re-reads the local file, so the page always reflects current disk state.
type FileViewer struct {
	localPath string
	logger    *logging.Logger
}

// NewFileViewer creates a viewer for the file at localPath.
func NewFileViewer(localPath string, logger *logging.Logger) *FileViewer {
	return &FileViewer{
		localPath: localPath,
		logger:    logger,
	}
}

// Handler returns the viewer's routes.
func (v *FileViewer) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", v.handleIndex)
	return mux
}

func (v *FileViewer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	summary, err := filestats.Summarize(v.localPath)
	if err != nil {
		v.logger.Error().Err(err).Str("path", v.localPath).Msg("Failed to summarize file")
		summary = &filestats.Summary{
			Path:       v.localPath,
			Exists:     true,
			Kind:       filestats.KindRaw,
			ParseError: err.Error(),
		}
	}

	if err := templates.ExecuteTemplate(w, "fileview.html", summary); err != nil {
		v.logger.Error().Err(err).Msg("Template render failed")
	}
}

// ListenAndServe runs the viewer on addr until ctx is cancelled.
func (v *FileViewer) ListenAndServe(ctx context.Context, addr string) error {
	return Serve(ctx, v.logger, newHTTPServer(addr, v.logger, v.Handler()))
}
