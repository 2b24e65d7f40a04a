// Package target defines the gateway target model: the four transport
// payloads, the Target sum type and its wire form.
package target

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Type identifies which transport payload a target carries
type Type string

const (
	TypeSSE            Type = "sse"
	TypeStdio          Type = "stdio"
	TypeOpenAPI        Type = "openapi"
	TypeStreamableHTTP Type = "streamable_http"
)

// Types lists every transport type in tab order
var Types = []Type{TypeSSE, TypeStdio, TypeOpenAPI, TypeStreamableHTTP}

var (
	// ErrNoPayload indicates a descriptor carries none of the payload fields
	ErrNoPayload = errors.New("target has no transport payload")
	// ErrUnknownType indicates a type tag outside of Types
	ErrUnknownType = errors.New("unknown target type")
)

// ParseType validates a type tag
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// DisplayName returns the tab label for the type
func (t Type) DisplayName() string {
	switch t {
	case TypeSSE:
		return "SSE"
	case TypeStdio:
		return "stdio"
	case TypeOpenAPI:
		return "OpenAPI"
	case TypeStreamableHTTP:
		return "Streamable HTTP"
	}
	return string(t)
}

// HeaderValue wraps the header value the way the gateway expects it
type HeaderValue struct {
	StringValue string `json:"string_value" yaml:"string_value"`
}

// Header is a single upstream header. Keys are not deduplicated.
type Header struct {
	Key   string      `json:"key" yaml:"key"`
	Value HeaderValue `json:"value" yaml:"value"`
}

// NewHeader builds a header from a plain key/value pair
func NewHeader(key, value string) Header {
	return Header{Key: key, Value: HeaderValue{StringValue: value}}
}

// BackendAuth configures how the gateway authenticates to the target
type BackendAuth struct {
	Passthrough bool `json:"passthrough" yaml:"passthrough"`
}

// BackendTLS configures the gateway's TLS client for the target
type BackendTLS struct {
	InsecureSkipVerify bool `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// RemoteTarget is the field set shared by the HTTP based transports.
// Auth and TLS are nil rather than false-valued when disabled.
type RemoteTarget struct {
	Host    string       `json:"host" yaml:"host"`
	Port    int          `json:"port" yaml:"port"`
	Path    string       `json:"path" yaml:"path"`
	Headers []Header     `json:"headers,omitempty" yaml:"headers,omitempty"`
	Auth    *BackendAuth `json:"auth,omitempty" yaml:"auth,omitempty"`
	TLS     *BackendTLS  `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// InsecureSkipVerify reports whether TLS verification is disabled
func (r RemoteTarget) InsecureSkipVerify() bool {
	return r.TLS != nil && r.TLS.InsecureSkipVerify
}

// PassthroughAuth reports whether inbound credentials are forwarded
func (r RemoteTarget) PassthroughAuth() bool {
	return r.Auth != nil && r.Auth.Passthrough
}

// SSETarget is an MCP server reached over Server-Sent Events
type SSETarget struct {
	RemoteTarget `yaml:",inline"`
}

// StreamableHTTPTarget is an MCP server reached over Streamable HTTP
type StreamableHTTPTarget struct {
	RemoteTarget `yaml:",inline"`
}

// StdioTarget is a local MCP server process
type StdioTarget struct {
	Cmd  string            `json:"cmd" yaml:"cmd"`
	Args []string          `json:"args,omitempty" yaml:"args,omitempty"`
	Env  map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// LocalDataSource points at a document the gateway reads at startup
type LocalDataSource struct {
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	Inline   []byte `json:"inline,omitempty" yaml:"inline,omitempty"`
}

// OpenAPITarget is a plain HTTP API exposed as MCP tools through its schema
type OpenAPITarget struct {
	Host   string          `json:"host" yaml:"host"`
	Port   int             `json:"port" yaml:"port"`
	Schema LocalDataSource `json:"schema" yaml:"schema"`
}

// Spec is implemented by exactly the four transport payloads
type Spec interface {
	TargetType() Type
	isSpec()
}

func (SSETarget) TargetType() Type            { return TypeSSE }
func (StdioTarget) TargetType() Type          { return TypeStdio }
func (OpenAPITarget) TargetType() Type        { return TypeOpenAPI }
func (StreamableHTTPTarget) TargetType() Type { return TypeStreamableHTTP }

func (SSETarget) isSpec()            {}
func (StdioTarget) isSpec()          {}
func (OpenAPITarget) isSpec()        {}
func (StreamableHTTPTarget) isSpec() {}

// Target is the unit handed to the submit collaborator. The payload lives in
// Spec so a target can never carry more than one.
type Target struct {
	Name      string
	Listeners []string
	Spec      Spec
}

// Type returns the tag matching Spec
func (t Target) Type() Type {
	if t.Spec == nil {
		return ""
	}
	return t.Spec.TargetType()
}

// Descriptor converts the target to its wire form
func (t Target) Descriptor() Descriptor {
	d := Descriptor{
		Name:      t.Name,
		Type:      t.Type(),
		Listeners: append([]string{}, t.Listeners...),
	}
	switch s := t.Spec.(type) {
	case SSETarget:
		d.SSE = &s
	case StdioTarget:
		d.Stdio = &s
	case OpenAPITarget:
		d.OpenAPI = &s
	case StreamableHTTPTarget:
		d.StreamableHTTP = &s
	}
	return d
}

// MarshalJSON writes the wire shape with a single payload key
func (t Target) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Descriptor())
}

// MarshalYAML writes the same shape as MarshalJSON
func (t Target) MarshalYAML() (interface{}, error) {
	return t.Descriptor(), nil
}

// UnmarshalJSON accepts the wire shape and resolves the payload by priority
func (t *Target) UnmarshalJSON(data []byte) error {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	resolved, err := d.Target()
	if err != nil {
		return err
	}
	*t = resolved
	return nil
}

// Descriptor is the wire shape of a target. It is deliberately permissive so
// that existing configurations can be read even when malformed; use Target to
// get a value with exactly one payload.
type Descriptor struct {
	Name           string                `json:"name" yaml:"name"`
	Type           Type                  `json:"type" yaml:"type"`
	Listeners      []string              `json:"listeners" yaml:"listeners"`
	SSE            *SSETarget            `json:"sse,omitempty" yaml:"sse,omitempty"`
	Stdio          *StdioTarget          `json:"stdio,omitempty" yaml:"stdio,omitempty"`
	OpenAPI        *OpenAPITarget        `json:"openapi,omitempty" yaml:"openapi,omitempty"`
	StreamableHTTP *StreamableHTTPTarget `json:"streamable_http,omitempty" yaml:"streamable_http,omitempty"`
}

// Target resolves the payload using InferType's priority order
func (d *Descriptor) Target() (Target, error) {
	t := Target{Name: d.Name, Listeners: append([]string{}, d.Listeners...)}
	switch {
	case d.Stdio != nil:
		t.Spec = *d.Stdio
	case d.OpenAPI != nil:
		t.Spec = *d.OpenAPI
	case d.SSE != nil:
		t.Spec = *d.SSE
	case d.StreamableHTTP != nil:
		t.Spec = *d.StreamableHTTP
	default:
		return Target{}, fmt.Errorf("%w: %s", ErrNoPayload, d.Name)
	}
	return t, nil
}

// PayloadCount returns how many payload fields are set
func (d *Descriptor) PayloadCount() int {
	n := 0
	if d.SSE != nil {
		n++
	}
	if d.Stdio != nil {
		n++
	}
	if d.OpenAPI != nil {
		n++
	}
	if d.StreamableHTTP != nil {
		n++
	}
	return n
}

// InferType picks the variant an existing descriptor uses. The order stdio,
// openapi, sse, streamable_http is a tie-break policy for descriptors that
// carry more than one payload. A nil or empty descriptor yields TypeSSE.
func InferType(d *Descriptor) Type {
	if d == nil {
		return TypeSSE
	}
	switch {
	case d.Stdio != nil:
		return TypeStdio
	case d.OpenAPI != nil:
		return TypeOpenAPI
	case d.SSE != nil:
		return TypeSSE
	case d.StreamableHTTP != nil:
		return TypeStreamableHTTP
	}
	return TypeSSE
}
