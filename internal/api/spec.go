package api

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var specDocument []byte

// loadSpec parses and validates the embedded API description, returning a
// router used to validate incoming render requests against it.
func loadSpec(ctx context.Context) (routers.Router, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(specDocument)
	if err != nil {
		return nil, fmt.Errorf("api: parse spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("api: validate spec: %w", err)
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("api: build router: %w", err)
	}
	return router, nil
}
