// Package serve runs the HTTP front end: the beacon ingest endpoint, the
// optimize endpoint for upstream render servers, and the beacon asset.
package serve

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/speedkit/lcpboost/models"
	"github.com/speedkit/lcpboost/pkg/caching"
	"github.com/speedkit/lcpboost/pkg/injector"
)

// RowSink receives beacon submissions.
type RowSink interface {
	UpsertRow(row *models.PerformanceRow) error
}

// Server handles beacon ingest and page optimization over HTTP.
type Server struct {
	Logger *slog.Logger
	Opt    *injector.Optimizer
	Sink   RowSink
	Cache  *caching.Cache

	// MaxBodyBytes caps request bodies; 0 means the default of 10 MiB.
	MaxBodyBytes int64
}

const defaultMaxBody = 10 << 20

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /beacon", s.handleBeacon)
	mux.HandleFunc("POST /optimize", s.handleOptimize)
	mux.HandleFunc("GET /assets/lcp-beacon.js", s.handleAsset)
	return s.withLogging(mux)
}

// handleBeacon ingests one measurement row posted by the in-page beacon.
func (s *Server) handleBeacon(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody())
	defer body.Close()

	var row models.PerformanceRow
	if err := json.NewDecoder(body).Decode(&row); err != nil {
		http.Error(w, "invalid beacon payload", http.StatusBadRequest)
		return
	}
	if row.URL == "" {
		http.Error(w, "beacon payload missing url", http.StatusBadRequest)
		return
	}

	if err := s.Sink.UpsertRow(&row); err != nil {
		s.Logger.Error("failed to store beacon row", "url", row.URL, "error", err)
		http.Error(w, "failed to store measurement", http.StatusInternalServerError)
		return
	}
	s.Logger.Info("beacon row stored", "url", row.URL, "is_mobile", row.IsMobile)
	w.WriteHeader(http.StatusNoContent)
}

// handleOptimize post-processes the rendered HTML in the request body for
// the page identified by the path and mobile query parameters. Results are
// cached by page identity plus content digest.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody())
	defer body.Close()

	doc, err := io.ReadAll(body)
	if err != nil {
		http.Error(w, "failed to read document", http.StatusBadRequest)
		return
	}
	if len(doc) == 0 {
		http.Error(w, "empty document", http.StatusBadRequest)
		return
	}

	req := injector.Request{
		Path:     r.URL.Query().Get("path"),
		IsMobile: isMobileParam(r.URL.Query().Get("mobile")),
	}

	var key string
	if s.Cache != nil {
		key = caching.PageKey(s.Opt.PageURL(req.Path), s.Opt.MobileKey(req), doc)
		if cached, ok := s.Cache.Get(key); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("X-Lcpboost-Cache", "hit")
			w.Write(cached)
			return
		}
	}

	out := s.Opt.Optimize(string(doc), req)
	if s.Cache != nil {
		if err := s.Cache.Set(key, []byte(out)); err != nil {
			s.Logger.Warn("failed to cache optimized page", "path", req.Path, "error", err)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, out)
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, s.Opt.BeaconScriptPath)
}

func (s *Server) maxBody() int64 {
	if s.MaxBodyBytes > 0 {
		return s.MaxBodyBytes
	}
	return defaultMaxBody
}

func isMobileParam(v string) bool {
	return v == "1" || v == "true"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
