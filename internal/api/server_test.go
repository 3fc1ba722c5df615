package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/harbormail/pagekit/internal/api"
	"github.com/harbormail/pagekit/pkg/config"
	"github.com/harbormail/pagekit/pkg/model"
	"github.com/harbormail/pagekit/pkg/orchestrator"
	"github.com/harbormail/pagekit/pkg/tags"
	"github.com/harbormail/pagekit/pkg/testsupport"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	orch := orchestrator.New(
		orchestrator.WithTagSource(tags.NewStaticSource(
			[]model.Tag{{Slug: "inbox", Name: "Inbox", URL: "/in/inbox/", Stats: model.TagStats{New: 12}}},
			nil,
		)),
	)

	server, err := api.NewServer(testsupport.Context(), config.Default(), orch, zap.NewNop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return server.Routes()
}

func TestServer_FullPage(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/tag/list?q=foo", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("content type = %q", rec.Header().Get("Content-Type"))
	}

	body := rec.Body.String()
	if !strings.Contains(body, `data-command="tag/list"`) {
		t.Error("expected command in document attributes")
	}
	if !strings.Contains(body, `value="foo "`) {
		t.Error("expected search term echoed in search box")
	}
	if !navLineHighlighted(body, "nav-tags") {
		t.Error("expected tags navigation item highlighted")
	}
	if !strings.Contains(body, "Inbox") {
		t.Error("expected sidebar tag from the tag source")
	}
}

func TestServer_RootRendersHomePage(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `data-command="page"`) {
		t.Fatal("expected root path to render the home command")
	}
}

func TestServer_FragmentQueryFlag(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/search?html_in_json=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatal("fragment response must not include the document shell")
	}
	if !strings.Contains(body, `<pre class="results">`) {
		t.Fatalf("expected default content fragment, got: %s", body)
	}
}

func TestServer_FragmentEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	payload := `{"command": "message", "html_in_json": true, "result": {"search_terms": ["foo"]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v0/page", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Status string `json:"status"`
		HTML   string `json:"html"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Status != "success" {
		t.Fatalf("status = %q", envelope.Status)
	}
	if strings.Contains(envelope.HTML, "<html") {
		t.Fatal("fragment html must not include document shell")
	}
	if !strings.Contains(envelope.HTML, "foo") {
		t.Fatalf("expected result payload in fragment, got: %s", envelope.HTML)
	}
}

func TestServer_FragmentEndpointValidation(t *testing.T) {
	handler := newTestHandler(t)

	cases := []struct {
		name    string
		payload string
	}{
		{"missing command", `{"html_in_json": true}`},
		{"empty command", `{"command": ""}`},
		{"bad protocol", `{"command": "page", "url_protocol": "gopher"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v0/page", strings.NewReader(tc.payload))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestServer_ServesAssets(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/assets/pagekit-chrome.css", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "--pk-") {
		t.Fatal("expected bundled stylesheet content")
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/tag/list", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func navLineHighlighted(body, item string) bool {
	idx := strings.Index(body, item)
	if idx < 0 {
		return false
	}
	line := body[idx:]
	if end := strings.Index(line, "\n"); end >= 0 {
		line = line[:end]
	}
	return strings.Contains(line, "navigation-on")
}
