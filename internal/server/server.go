// Package server implements the web UIs: the downloaded-file viewer and the
// credential-exchange instance viewer.
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/dbxapps/ucapp/internal/constants"
	"github.com/dbxapps/ucapp/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// securityHeadersMiddleware adds security-related headers.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		next.ServeHTTP(w, r)
	})
}

// requestLogMiddleware logs one line per request.
func requestLogMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// healthzHandler answers the platform's port probe.
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// newHTTPServer wraps a handler with the shared middleware and timeouts.
func newHTTPServer(addr string, logger *logging.Logger, mux *http.ServeMux) *http.Server {
	mux.HandleFunc("/healthz", healthzHandler)
	return &http.Server{
		Addr:              addr,
		Handler:           securityHeadersMiddleware(requestLogMiddleware(logger, mux)),
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
		WriteTimeout:      constants.WriteTimeout,
		IdleTimeout:       constants.IdleTimeout,
	}
}

// Serve runs srv until it fails or ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, logger *logging.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
