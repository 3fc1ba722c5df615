package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/harbormail/pagekit/pkg/model"
)

// LoadPage reads a fixture and builds a RenderContext. Testing helpers fail
// the test on error to keep contract tests concise.
func LoadPage(t *testing.T, path string) pkgmodel.RenderContext {
	t.Helper()

	page, err := LoadPageFromPath(path)
	if err != nil {
		t.Fatalf("load page: %v", err)
	}
	return page
}

// LoadPageFromPath returns a RenderContext without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadPageFromPath(path string) (pkgmodel.RenderContext, error) {
	if path == "" {
		return pkgmodel.RenderContext{}, errors.New("testsupport: page path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgmodel.RenderContext{}, fmt.Errorf("testsupport: read page: %w", err)
	}
	var page pkgmodel.RenderContext
	if err := json.Unmarshal(data, &page); err != nil {
		return pkgmodel.RenderContext{}, fmt.Errorf("testsupport: unmarshal page: %w", err)
	}
	return page, nil
}

// MustLoadTags loads a JSON fixture into a tag slice.
func MustLoadTags(t *testing.T, path string) []pkgmodel.Tag {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load tags: %v", err)
	}
	var out []pkgmodel.Tag
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal tags: %v", err)
	}
	return out
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}
