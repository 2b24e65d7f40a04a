package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/fx"
)

// Document is a parsed OpenAPI 3 document
type Document struct {
	Spec *openapi3.T
}

// Title returns the API title, or an empty string
func (d *Document) Title() string {
	if d.Spec == nil || d.Spec.Info == nil {
		return ""
	}
	return d.Spec.Info.Title
}

// Tools previews the MCP tools the gateway exposes for the document, one per
// operation, sorted by name
func (d *Document) Tools() []mcp.Tool {
	if d.Spec == nil || d.Spec.Paths == nil {
		return nil
	}

	var tools []mcp.Tool
	for path, item := range d.Spec.Paths.Map() {
		for method, op := range item.Operations() {
			tools = append(tools, generateTool(path, method, op))
		}
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools
}

// generateTool derives a tool from a single operation
func generateTool(path, method string, op *openapi3.Operation) mcp.Tool {
	desc := op.Description
	if desc == "" {
		desc = op.Summary
	}

	opts := []mcp.ToolOption{
		mcp.WithDescription(fmt.Sprintf("%s %s \n %s", method, path, desc)),
	}

	for _, param := range extractPathParams(path) {
		opts = append(opts, mcp.WithString(param,
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Path parameter: %s", param)),
		))
	}

	for _, p := range op.Parameters {
		if p.Value != nil && p.Value.In == openapi3.ParameterInQuery {
			paramOpts := []mcp.PropertyOption{mcp.Description(fmt.Sprintf("Query parameter: %s", p.Value.Name))}
			if p.Value.Required {
				paramOpts = append(paramOpts, mcp.Required())
			}
			opts = append(opts, mcp.WithString(p.Value.Name, paramOpts...))
		}
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil && len(op.RequestBody.Value.Content) > 0 {
		bodyOpts := []mcp.PropertyOption{mcp.Description("Request body")}
		if op.RequestBody.Value.Required {
			bodyOpts = append(bodyOpts, mcp.Required())
		}
		opts = append(opts, mcp.WithObject("body", bodyOpts...))
	}

	return mcp.NewTool(toolName(path, method, op), opts...)
}

// toolName prefers the operation id and falls back to method_path
func toolName(path, method string, op *openapi3.Operation) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	name := strings.TrimPrefix(path, "/")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "{", "")
	name = strings.ReplaceAll(name, "}", "")
	return strings.ToLower(fmt.Sprintf("%s_%s", method, name))
}

// extractPathParams extracts path parameters from a URL path
func extractPathParams(path string) []string {
	var params []string
	for _, part := range strings.Split(path, "/") {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			params = append(params, strings.TrimSuffix(strings.TrimPrefix(part, "{"), "}"))
		}
	}
	return params
}

// Module provides the schema loader
var Module = fx.Module("openapi",
	fx.Provide(
		fx.Annotate(
			NewSchemaLoader,
			fx.As(new(Loader)),
		),
	),
)
