package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

type HTTPServer struct {
	httpServer *http.Server
}

func NewHTTPServer(addr string, handler http.Handler) HTTPServer {
	handler = http.TimeoutHandler(handler, 5*time.Second, "unavailable")
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Second,
	}
	return HTTPServer{s}
}

func (s HTTPServer) Run(stopFn context.CancelFunc) {
	const op = "HTTPServer.Run"
	log := slog.With("op", op)

	defer stopFn()
	err := s.httpServer.ListenAndServe()
	if err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		log.Error("unexpected servers shutdown", "err", err)
	}
}

func (s HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := slog.With("op", op)

	log.Info("closing http server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		log.Error("failed to shutdown gracefully", "err", err)
	}
	log.Info("http server is closed")
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeDomainErr maps domain sentinels to client answers. Everything
// unrecognized becomes a generic 503: raw backend text never reaches
// the client.
func writeDomainErr(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid input"})
	case errors.Is(err, domain.ErrEmptyCart):
		writeJSON(w, log, http.StatusBadRequest, errorBody{"cart is empty"})
	case errors.Is(err, domain.ErrVariantNotFound):
		writeJSON(w, log, http.StatusBadRequest, errorBody{"variant not found"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, log, http.StatusNotFound, errorBody{"not found"})
	default:
		log.Error("internal failure", "err", err)
		writeJSON(w, log, http.StatusServiceUnavailable,
			errorBody{"service unavailable"})
	}
}
