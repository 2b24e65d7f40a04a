// Package openapi loads the schema document behind an OpenAPI target and
// previews the MCP tools the gateway derives from it.
package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/brizzai/target-wizard/internal/logger"
	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingVersion     = errors.New("document is missing 'swagger' or 'openapi' version field")
	ErrUnsupportedVersion = errors.New("unsupported OpenAPI version")
)

// Loader reads and validates OpenAPI/Swagger documents
type Loader interface {
	// LoadFile parses the document at path
	LoadFile(path string) (*Document, error)
	// Load parses a JSON or YAML document
	Load(data []byte) (*Document, error)
}

// SchemaLoader is the kin-openapi backed Loader
type SchemaLoader struct{}

// NewSchemaLoader creates a new SchemaLoader
func NewSchemaLoader() *SchemaLoader {
	return &SchemaLoader{}
}

// LoadFile parses the document at path
func (l *SchemaLoader) LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return l.Load(data)
}

// Load detects the document version and parses it, converting Swagger 2.0 to
// OpenAPI 3
func (l *SchemaLoader) Load(data []byte) (*Document, error) {
	// YAML is a superset of JSON, so one decoder covers both
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	swaggerVersion, hasSwagger := raw["swagger"]
	openapiVersion, hasOpenAPI := raw["openapi"]

	switch {
	case hasSwagger:
		doc, err := convertSwagger(raw, swaggerVersion)
		if err != nil {
			return nil, err
		}
		return &Document{Spec: doc}, nil
	case hasOpenAPI:
		if !strings.HasPrefix(fmt.Sprint(openapiVersion), "3.") {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedVersion, openapiVersion)
		}
	default:
		return nil, ErrMissingVersion
	}

	doc, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		logger.Error("Failed to parse OpenAPI 3 document", zap.Error(err))
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	logger.Debug("Parsed OpenAPI 3 document", zap.String("version", doc.OpenAPI))
	return &Document{Spec: doc}, nil
}

// convertSwagger re-encodes raw as JSON for openapi2 and converts it to v3
func convertSwagger(raw map[string]interface{}, version interface{}) (*openapi3.T, error) {
	// An unquoted 2.0 in YAML decodes as a float
	if v := fmt.Sprint(version); v != "2.0" && v != "2" {
		return nil, fmt.Errorf("%w: swagger %v", ErrUnsupportedVersion, version)
	}
	raw["swagger"] = "2.0"

	data, err := json.Marshal(stringifyKeys(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode Swagger 2.0 document: %w", err)
	}

	var doc2 openapi2.T
	if err := json.Unmarshal(data, &doc2); err != nil {
		return nil, fmt.Errorf("failed to parse Swagger 2.0 document: %w", err)
	}

	logger.Info("Detected Swagger 2.0 document, converting to OpenAPI 3")
	doc, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		logger.Error("Failed to convert Swagger 2.0 to OpenAPI 3", zap.Error(err))
		return nil, fmt.Errorf("failed to convert Swagger 2.0 to OpenAPI 3: %w", err)
	}
	return doc, nil
}

// stringifyKeys rewrites YAML maps with non-string keys (such as unquoted
// response codes) so the tree can be encoded as JSON
func stringifyKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = stringifyKeys(val)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringifyKeys(val)
		}
		return out
	case []interface{}:
		for i, val := range t {
			t[i] = stringifyKeys(val)
		}
		return t
	}
	return v
}
