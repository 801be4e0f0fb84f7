// Package server exposes icon dispatch over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"icon-registry/internal/common/logger"
	"icon-registry/internal/common/observability"
	"icon-registry/internal/icons/dispatch"
	"icon-registry/pkg/registry"
	"icon-registry/pkg/render"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTier      = "X-Icon-Tier"
	HeaderMatched   = "X-Icon-Matched"
)

// Server serves dispatch results. All fields are read-only after New.
type Server struct {
	dispatcher *dispatch.Dispatcher
	registry   *registry.Registry
	origin     string
	obs        *observability.Observability
	logger     logger.Logger
}

// New builds a Server. origin describes where reg came from and is reported
// by the health endpoint.
func New(d *dispatch.Dispatcher, reg *registry.Registry, origin string, obs *observability.Observability, log logger.Logger) *Server {
	return &Server{
		dispatcher: d,
		registry:   reg,
		origin:     origin,
		obs:        obs,
		logger:     logger.OrNoOp(log),
	}
}

// Handler returns the routed handler with request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /icons/{name}", s.handleIcon)
	mux.HandleFunc("GET /icons/{name}/content", s.handleContent)
	mux.HandleFunc("GET /registry", s.handleRegistry)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return s.withRequestLogging(mux)
}

func (s *Server) dispatch(r *http.Request, name string) dispatch.Result {
	start := time.Now()
	res := s.dispatcher.Dispatch(r.Context(), name)
	s.obs.RecordDispatch(r.Context(), res.Tier.String(), res.Matched)
	s.obs.RecordDispatchDuration(r.Context(), time.Since(start), res.Tier.String())
	return res
}

func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptions(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res := s.dispatch(r, r.PathValue("name"))

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set(HeaderTier, res.Tier.String())
	w.Header().Set(HeaderMatched, strconv.FormatBool(res.Matched))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(render.SVG(res.Name, res.Content, opts...)))
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	res := s.dispatch(r, r.PathValue("name"))
	w.Header().Set(HeaderTier, res.Tier.String())
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	names := s.registry.Names()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":  s.registry.Count(),
		"origin": s.origin,
		"names":  names,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"time":    time.Now().Format(time.RFC3339),
		"entries": s.registry.Count(),
		"origin":  s.origin,
	})
}

func renderOptions(r *http.Request) ([]render.Option, error) {
	q := r.URL.Query()
	var opts []render.Option

	if v := q.Get("class"); v != "" {
		opts = append(opts, render.WithClass(v))
	}
	if v := q.Get("style"); v != "" {
		opts = append(opts, render.WithStyle(v))
	}
	if v := q.Get("stroke"); v != "" {
		opts = append(opts, render.WithStroke(v))
	}
	if v := q.Get("fill"); v != "" {
		opts = append(opts, render.WithFill(v))
	}
	if v := q.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 || size > 4096 {
			return nil, errInvalidParam("size")
		}
		opts = append(opts, render.WithSize(size))
	}
	if v := q.Get("stroke_width"); v != "" {
		width, err := strconv.ParseFloat(v, 64)
		if err != nil || width <= 0 || width > 100 {
			return nil, errInvalidParam("stroke_width")
		}
		opts = append(opts, render.WithStrokeWidth(width))
	}
	if v := q.Get("wrapper"); v != "" {
		opts = append(opts, render.WithWrapper(v))
	}
	return opts, nil
}

type errInvalidParam string

func (e errInvalidParam) Error() string {
	return "invalid query parameter: " + string(e)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.logger.Info("request handled", map[string]interface{}{
			"requestId":  requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}
