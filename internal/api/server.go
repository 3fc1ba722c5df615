// Package api exposes the page rendering pipeline over HTTP: full document
// pages, JSON fragment renders validated against an embedded OpenAPI
// description, and the static asset bundle.
package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"go.uber.org/zap"

	"github.com/harbormail/pagekit/pkg/config"
	"github.com/harbormail/pagekit/pkg/model"
	"github.com/harbormail/pagekit/pkg/orchestrator"
	"github.com/harbormail/pagekit/pkg/renderers/chrome"
)

// homeCommand is the command rendered for the root path.
const homeCommand = "page"

// Server serves the page rendering endpoints.
type Server struct {
	cfg    config.Config
	orch   *orchestrator.Orchestrator
	log    *zap.Logger
	router routers.Router
}

// NewServer wires the orchestrator behind HTTP handlers. The embedded
// OpenAPI description is parsed once at startup.
func NewServer(ctx context.Context, cfg config.Config, orch *orchestrator.Orchestrator, log *zap.Logger) (*Server, error) {
	if orch == nil {
		return nil, fmt.Errorf("api: orchestrator is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	router, err := loadSpec(ctx)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:    cfg,
		orch:   orch,
		log:    log,
		router: router,
	}, nil
}

// Routes returns the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServerFS(chrome.AssetsFS())))
	mux.HandleFunc("POST /api/v0/page", s.handleFragment)
	mux.HandleFunc("/", s.handlePage)
	return s.accessLog(mux)
}

// handlePage renders a full document (or a bare fragment when the
// html_in_json query flag is set) for the command encoded in the URL path.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := s.pageFromRequest(r)
	output, err := s.orch.Render(r.Context(), orchestrator.Request{
		Page:   page,
		Locale: r.URL.Query().Get("locale"),
	})
	if err != nil {
		s.log.Error("render page", zap.String("command", page.Command), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(output)
}

// handleFragment validates the posted render context against the API spec
// and answers with a JSON envelope holding the rendered HTML.
func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	route, pathParams, err := s.router.FindRoute(r)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err := openapi3filter.ValidateRequest(r.Context(), &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
	}); err != nil {
		s.log.Warn("reject render request", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var page model.RenderContext
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	output, err := s.orch.Render(r.Context(), orchestrator.Request{
		Page:   page,
		Locale: r.URL.Query().Get("locale"),
	})
	if err != nil {
		s.log.Error("render fragment", zap.String("command", page.Command), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "success",
		"html":   string(output),
	})
}

// pageFromRequest builds the render context for a browser page load.
func (s *Server) pageFromRequest(r *http.Request) model.RenderContext {
	command := strings.Trim(r.URL.Path, "/")
	if command == "" {
		command = homeCommand
	}

	query := r.URL.Query()
	page := model.RenderContext{
		Command:      command,
		Name:         s.cfg.AppName,
		CSRF:         newCSRFToken(),
		HTTPHost:     r.Host,
		HTTPHostname: s.cfg.HTTPHost,
		HTTPMethod:   r.Method,
		URLProtocol:  s.cfg.URLProtocol,
		HTMLInJSON:   isTruthy(query.Get("html_in_json")),
	}
	if q := strings.TrimSpace(query.Get("q")); q != "" {
		page.Result.SearchTerms = strings.Fields(q)
	}
	return page
}

// isTruthy applies the configuration boolean spellings to a query flag,
// treating unparseable values as false.
func isTruthy(value string) bool {
	parsed, err := config.CheckBool(value)
	return err == nil && parsed
}

func newCSRFToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to a time-derived token; weaker, but the page still works.
		return fmt.Sprintf("t-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

// accessLog wraps the handler tree with structured request logging.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
