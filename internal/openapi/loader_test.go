package openapi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreV3 = `{
  "openapi": "3.0.3",
  "info": {"title": "Petstore", "version": "1.0.0"},
  "paths": {
    "/pets": {
      "get": {
        "operationId": "listPets",
        "summary": "List pets",
        "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer"}}],
        "responses": {"200": {"description": "ok"}}
      },
      "post": {
        "summary": "Create pet",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"type": "object"}}}
        },
        "responses": {"201": {"description": "created"}}
      }
    },
    "/pets/{petId}": {
      "get": {
        "summary": "Get pet",
        "parameters": [{"name": "petId", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`

const petstoreSwaggerYAML = `swagger: 2.0
info:
  title: Petstore
  version: 1.0.0
host: petstore.example.com
basePath: /v1
paths:
  /pets:
    get:
      operationId: listPets
      summary: List pets
      responses:
        200:
          description: ok
`

func TestSchemaLoader_Load(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantTitle string
		wantTools []string
		wantErr   error
	}{
		{
			name:      "OpenAPI 3 JSON",
			data:      petstoreV3,
			wantTitle: "Petstore",
			wantTools: []string{"get_pets_petid", "listPets", "post_pets"},
		},
		{
			name:      "Swagger 2 YAML is converted",
			data:      petstoreSwaggerYAML,
			wantTitle: "Petstore",
			wantTools: []string{"listPets"},
		},
		{
			name:    "missing version",
			data:    `{"info": {"title": "x"}}`,
			wantErr: ErrMissingVersion,
		},
		{
			name:    "OpenAPI 4 is rejected",
			data:    `{"openapi": "4.0.0", "info": {"title": "x", "version": "1"}, "paths": {}}`,
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "Swagger 1.2 is rejected",
			data:    `{"swagger": "1.2"}`,
			wantErr: ErrUnsupportedVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewSchemaLoader().Load([]byte(tt.data))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, doc.Title())

			var names []string
			for _, tool := range doc.Tools() {
				names = append(names, tool.Name)
			}
			assert.Equal(t, tt.wantTools, names)
		})
	}
}

func TestSchemaLoader_Load_InvalidDocument(t *testing.T) {
	_, err := NewSchemaLoader().Load([]byte("{not yaml: ["))
	assert.Error(t, err)
}

func TestSchemaLoader_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petstore.json")
	require.NoError(t, os.WriteFile(path, []byte(petstoreV3), 0o644))

	doc, err := NewSchemaLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Tools(), 3)

	_, err = NewSchemaLoader().LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestGenerateTool_Parameters(t *testing.T) {
	doc, err := NewSchemaLoader().Load([]byte(petstoreV3))
	require.NoError(t, err)

	byName := map[string][]string{}
	for _, tool := range doc.Tools() {
		byName[tool.Name] = tool.InputSchema.Required
	}

	assert.Equal(t, []string{"petId"}, byName["get_pets_petid"])
	assert.Equal(t, []string{"body"}, byName["post_pets"])
	assert.Empty(t, byName["listPets"])
}

func TestExtractPathParams(t *testing.T) {
	tests := []struct {
		path     string
		expected []string
	}{
		{path: "", expected: nil},
		{path: "/api/users", expected: nil},
		{path: "/api/users/{id}", expected: []string{"id"}},
		{path: "/api/users/{id}/posts/{postId}", expected: []string{"id", "postId"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractPathParams(tt.path))
		})
	}
}
