package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brizzai/target-wizard/internal/openapi"
	"github.com/brizzai/target-wizard/internal/target"
	"github.com/brizzai/target-wizard/internal/urlcodec"
)

// ErrMissingSchema is returned when an OpenAPI target has no schema file
var ErrMissingSchema = errors.New("openapi target requires a schema file")

// OpenAPIForm edits an OpenAPI target: the API's base URL and the schema file
// the gateway reads. Only host and port of the URL are kept.
type OpenAPIForm struct {
	base

	url        string
	schemaFile string
	loader     openapi.Loader
}

func NewOpenAPIForm(name string, onSubmit SubmitFunc, loader openapi.Loader, opts ...Option) *OpenAPIForm {
	f := &OpenAPIForm{loader: loader}
	f.init(target.TypeOpenAPI, name, onSubmit, opts)
	return f
}

func (f *OpenAPIForm) SetURL(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.url = url
}

func (f *OpenAPIForm) URL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url
}

func (f *OpenAPIForm) SetSchemaFile(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schemaFile = path
}

func (f *OpenAPIForm) SchemaFile() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.schemaFile
}

// Inspect loads the current schema file
func (f *OpenAPIForm) Inspect() (*openapi.Document, error) {
	path := strings.TrimSpace(f.SchemaFile())
	if path == "" {
		return nil, ErrMissingSchema
	}
	return f.loader.LoadFile(path)
}

func (f *OpenAPIForm) Load(existing *target.Descriptor) {
	if existing == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seed(existing)
	if existing.OpenAPI == nil {
		return
	}
	f.url = urlcodec.Encode(urlcodec.Endpoint{
		Host: existing.OpenAPI.Host,
		Port: existing.OpenAPI.Port,
	}, false)
	f.schemaFile = existing.OpenAPI.Schema.FilePath
}

func (f *OpenAPIForm) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(f.schemaFile) == "" {
		return false
	}
	return f.canSubmit(f.url)
}

func (f *OpenAPIForm) PressSubmit(ctx context.Context) error {
	if !f.CanSubmit() {
		return ErrSubmitDisabled
	}
	return f.SubmitForm(ctx)
}

func (f *OpenAPIForm) SubmitForm(ctx context.Context) error {
	return f.submit(ctx, f.build)
}

func (f *OpenAPIForm) build() (target.Target, error) {
	endpoint, err := urlcodec.Decode(f.url)
	if err != nil {
		return target.Target{}, err
	}

	path := strings.TrimSpace(f.schemaFile)
	if path == "" {
		return target.Target{}, ErrMissingSchema
	}
	if _, err := f.loader.LoadFile(path); err != nil {
		return target.Target{}, fmt.Errorf("invalid schema %s: %w", path, err)
	}

	return target.Target{
		Name:      f.name,
		Listeners: append([]string{}, f.listeners...),
		Spec: target.OpenAPITarget{
			Host:   endpoint.Host,
			Port:   endpoint.Port,
			Schema: target.LocalDataSource{FilePath: path},
		},
	}, nil
}
