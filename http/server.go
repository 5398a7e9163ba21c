package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pressclip"
)

// ShutdownTimeout bounds how long Close waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// ExportFilename is the attachment name of the exported digest.
const ExportFilename = "press_clippings.pdf"

// maxRequestBody caps JSON request bodies.
const maxRequestBody = 1 << 20

// Server is the JSON API over the extraction pipeline and the clipping store.
// Services are assigned after NewServer and before Open.
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	// Addr is the bind address, e.g. ":8080".
	Addr string

	ExtractionService pressclip.ExtractionService
	ClippingService   pressclip.ClippingService
	DigestRenderer    pressclip.DigestRenderer

	Logger *slog.Logger

	// Now returns the digest date. Defaults to time.Now.
	Now func() time.Time
}

// NewServer creates a Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    time.Now,
	}
	s.server = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mux.HandleFunc("POST /api/scrape", s.handleScrape)
	s.mux.HandleFunc("GET /api/clippings", s.handleClippingIndex)
	s.mux.HandleFunc("POST /api/clippings", s.handleClippingCreate)
	s.mux.HandleFunc("PUT /api/clippings/{id}", s.handleClippingUpdate)
	s.mux.HandleFunc("DELETE /api/clippings/{id}", s.handleClippingDelete)
	s.mux.HandleFunc("POST /api/clippings/reorder", s.handleClippingReorder)
	s.mux.HandleFunc("DELETE /api/clippings/delete-all", s.handleClippingDeleteAll)
	s.mux.HandleFunc("GET /api/export/pdf", s.handleExport)
	return s
}

// Open binds Addr and starts serving in the background.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("server stopped", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP logs the request and dispatches it to the matching route.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	defer func(begin time.Time) {
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(begin),
		)
	}(time.Now())

	s.mux.ServeHTTP(rec, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL any `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	rawURL, ok := req.URL.(string)
	if !ok {
		s.Error(w, r, pressclip.Errorf(pressclip.EINVALID, "url must be a string"))
		return
	}

	res, err := s.ExtractionService.Extract(r.Context(), rawURL)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleClippingIndex(w http.ResponseWriter, r *http.Request) {
	var filter pressclip.ClippingFilter
	if category := r.URL.Query().Get("category"); category != "" {
		filter.Category = &category
	}

	clippings, err := s.ClippingService.FindClippings(r.Context(), filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, clippings)
}

func (s *Server) handleClippingCreate(w http.ResponseWriter, r *http.Request) {
	var c pressclip.Clipping
	if err := decodeJSON(r, &c); err != nil {
		s.Error(w, r, err)
		return
	}
	// Identity, order and date are assigned by the store.
	c.ID, c.Position, c.CreatedAt = "", 0, time.Time{}

	if err := s.ClippingService.CreateClipping(r.Context(), &c); err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, &c)
}

func (s *Server) handleClippingUpdate(w http.ResponseWriter, r *http.Request) {
	var upd pressclip.ClippingUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.Error(w, r, err)
		return
	}

	c, err := s.ClippingService.UpdateClipping(r.Context(), r.PathValue("id"), upd)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleClippingDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.ClippingService.DeleteClipping(r.Context(), r.PathValue("id")); err != nil {
		s.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClippingReorder(w http.ResponseWriter, r *http.Request) {
	var positions []pressclip.ClippingPosition
	if err := decodeJSON(r, &positions); err != nil {
		s.Error(w, r, err)
		return
	}

	if err := s.ClippingService.ReorderClippings(r.Context(), positions); err != nil {
		s.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClippingDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := s.ClippingService.DeleteAllClippings(r.Context()); err != nil {
		s.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	clippings, err := s.ClippingService.FindClippings(r.Context(), pressclip.ClippingFilter{})
	if err != nil {
		s.Error(w, r, err)
		return
	}

	// Render fully before writing so a failure can still become a 500.
	var buf bytes.Buffer
	if err := s.DigestRenderer.Render(&buf, pressclip.NewDigest(clippings, s.Now())); err != nil {
		s.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", s.DigestRenderer.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Error writes err as a JSON error body with the status matching its code.
// Internal errors are logged and their details hidden from the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := pressclip.ErrorCode(err), pressclip.ErrorMessage(err)
	if code == pressclip.EINTERNAL {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, ErrorStatusCode(code), &ErrorResponse{Error: message})
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

var codes = map[string]int{
	pressclip.EINVALID:  http.StatusBadRequest,
	pressclip.ENOTFOUND: http.StatusNotFound,
	pressclip.ECONFLICT: http.StatusConflict,
	pressclip.EINTERNAL: http.StatusInternalServerError,
}

// ErrorStatusCode maps an error code to an HTTP status.
func ErrorStatusCode(code string) int {
	if status, ok := codes[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(v); err != nil {
		return pressclip.Errorf(pressclip.EINVALID, "invalid JSON body")
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encoding response", "err", err)
	}
}
