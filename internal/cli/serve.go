package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgtrust/pkg/buildinfo"
	pkgerrors "github.com/matzehuels/pkgtrust/pkg/errors"
	"github.com/matzehuels/pkgtrust/pkg/integrations"
	"github.com/matzehuels/pkgtrust/pkg/pipeline"
)

const (
	defaultServeAddr = ":8080"
	shutdownTimeout  = 10 * time.Second
	scoreTimeout     = 5 * time.Minute
)

// evaluator scores one reference.
type evaluator interface {
	Evaluate(ctx context.Context, reference string) (pipeline.Record, error)
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Score single references over HTTP",
		Long: `Start an HTTP server exposing:

  GET /score?url=<reference>  one evaluation record as JSON
  GET /healthz                liveness probe
  GET /version                build information`,
		Args: usageArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			eng, err := c.newEngine(ctx, nil)
			if err != nil {
				return err
			}
			defer eng.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(eng.runner, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return listenAndServe(ctx, srv, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	return cmd
}

// listenAndServe runs srv until ctx is cancelled, then shuts it down.
func listenAndServe(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func newRouter(ev evaluator, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": buildinfo.Version,
			"commit":  buildinfo.Commit,
			"date":    buildinfo.Date,
		})
	})
	r.Get("/score", func(w http.ResponseWriter, req *http.Request) {
		ref := req.URL.Query().Get("url")
		if err := pkgerrors.ValidateURL(ref); err != nil {
			writeError(w, err)
			return
		}
		ctx, cancel := context.WithTimeout(req.Context(), scoreTimeout)
		defer cancel()

		rec, err := ev.Evaluate(ctx, ref)
		if err != nil {
			logger.Warn("evaluation failed", "url", ref, "err", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	})
	return r
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).Round(time.Millisecond),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}

type errorResponse struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// statusFor maps an evaluation error to an HTTP status.
func statusFor(err error) int {
	switch pkgerrors.GetCode(err) {
	case pkgerrors.ErrCodeInvalidInput, pkgerrors.ErrCodeInvalidReferenceKind, pkgerrors.ErrCodeMalformedURL:
		return http.StatusBadRequest
	case pkgerrors.ErrCodeRepositoryURLNotFound:
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{
		Code:  string(pkgerrors.GetCode(err)),
		Error: pkgerrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
