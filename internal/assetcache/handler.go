package assetcache

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"futurtask/internal/errors"
	"futurtask/internal/logging"
)

// MessagePath receives control messages as JSON POST bodies
const MessagePath = "/__futurtask/message"

// Handler serves requests through a worker
type Handler struct {
	worker *Worker
}

// NewHandler creates an HTTP proxy in front of worker
func NewHandler(worker *Worker) *Handler {
	return &Handler{worker: worker}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == MessagePath {
		h.handleMessage(w, r)
		return
	}

	resp, err := h.worker.Fetch(r.Context(), r)
	if err != nil {
		if errors.ShouldLogError(err) {
			logging.Warn("no response", "method", r.Method, "url", r.URL.String(), "err", err)
		}
		http.Error(w, http.StatusText(http.StatusGatewayTimeout), http.StatusGatewayTimeout)
		return
	}

	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	// Content-Length from the origin no longer holds once bodies are buffered
	w.Header().Del("Content-Length")
	w.WriteHeader(resp.Status)
	if r.Method != http.MethodHead {
		w.Write(resp.Body)
	}
}

func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "invalid message", http.StatusBadRequest)
		return
	}

	reply := h.worker.Message(msg)
	if reply == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reply)
}

// Server runs a Handler on a local address
type Server struct {
	handler *Handler
	srv     *http.Server
}

// NewServer creates a server for worker listening on addr
func NewServer(worker *Worker, addr string) *Server {
	handler := NewHandler(worker)
	return &Server{
		handler: handler,
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
	}
}

// ListenAndServe starts the HTTP server. It returns http.ErrServerClosed
// after Shutdown.
func (s *Server) ListenAndServe() error {
	logging.Info("serving offline cache", "addr", s.srv.Addr, "version", s.handler.worker.Version())
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
