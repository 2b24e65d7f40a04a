package target

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTarget_MarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   string
	}{
		{
			name: "nil listeners become an empty array",
			target: Target{
				Name: "test-target",
				Spec: StreamableHTTPTarget{RemoteTarget: RemoteTarget{
					Host: "secure.example.com",
					Port: 8443,
					Path: "/mcp_endpoint",
				}},
			},
			want: `{
				"name": "test-target",
				"type": "streamable_http",
				"listeners": [],
				"streamable_http": {"host": "secure.example.com", "port": 8443, "path": "/mcp_endpoint"}
			}`,
		},
		{
			name: "stdio",
			target: Target{
				Name:      "fs",
				Listeners: []string{"default"},
				Spec:      StdioTarget{Cmd: "npx", Args: []string{"-y", "server"}},
			},
			want: `{
				"name": "fs",
				"type": "stdio",
				"listeners": ["default"],
				"stdio": {"cmd": "npx", "args": ["-y", "server"]}
			}`,
		},
		{
			name: "openapi",
			target: Target{
				Name: "pets",
				Spec: OpenAPITarget{Host: "pets", Port: 80, Schema: LocalDataSource{FilePath: "/etc/pets.yaml"}},
			},
			want: `{
				"name": "pets",
				"type": "openapi",
				"listeners": [],
				"openapi": {"host": "pets", "port": 80, "schema": {"file_path": "/etc/pets.yaml"}}
			}`,
		},
		{
			name: "sse with every optional field",
			target: Target{
				Name: "events",
				Spec: SSETarget{RemoteTarget: RemoteTarget{
					Host:    "h",
					Port:    443,
					Path:    "/sse",
					Headers: []Header{NewHeader("A", "1"), NewHeader("A", "2")},
					Auth:    &BackendAuth{Passthrough: true},
					TLS:     &BackendTLS{InsecureSkipVerify: true},
				}},
			},
			want: `{
				"name": "events",
				"type": "sse",
				"listeners": [],
				"sse": {
					"host": "h", "port": 443, "path": "/sse",
					"headers": [
						{"key": "A", "value": {"string_value": "1"}},
						{"key": "A", "value": {"string_value": "2"}}
					],
					"auth": {"passthrough": true},
					"tls": {"insecure_skip_verify": true}
				}
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.target)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			var back Target
			require.NoError(t, json.Unmarshal(data, &back))
			if tt.target.Listeners == nil {
				tt.target.Listeners = []string{}
			}
			if diff := cmp.Diff(tt.target, back); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTarget_MarshalYAML(t *testing.T) {
	tgt := Target{
		Name:      "local",
		Listeners: []string{"default"},
		Spec: StreamableHTTPTarget{RemoteTarget: RemoteTarget{
			Host: "localhost",
			Port: 8080,
			Path: "/mcp",
		}},
	}

	data, err := yaml.Marshal(tgt)
	require.NoError(t, err)

	var d Descriptor
	require.NoError(t, yaml.Unmarshal(data, &d))
	assert.Equal(t, TypeStreamableHTTP, d.Type)
	assert.Equal(t, 1, d.PayloadCount())
	require.NotNil(t, d.StreamableHTTP)
	assert.Equal(t, "localhost", d.StreamableHTTP.Host)
	assert.NotContains(t, string(data), "auth")
	assert.NotContains(t, string(data), "tls")
}

func TestDescriptor_Target(t *testing.T) {
	d := &Descriptor{
		Name:  "both",
		Stdio: &StdioTarget{Cmd: "npx"},
		SSE:   &SSETarget{RemoteTarget: RemoteTarget{Host: "h", Port: 80, Path: "/"}},
	}
	assert.Equal(t, 2, d.PayloadCount())

	tgt, err := d.Target()
	require.NoError(t, err)
	assert.Equal(t, TypeStdio, tgt.Type())
	assert.Equal(t, []string{}, tgt.Listeners)

	wire := tgt.Descriptor()
	assert.Equal(t, 1, wire.PayloadCount())
	assert.Nil(t, wire.SSE)

	_, err = (&Descriptor{Name: "empty"}).Target()
	assert.ErrorIs(t, err, ErrNoPayload)

	var back Target
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"name": "x", "type": "sse", "listeners": []}`), &back), ErrNoPayload)
}

func TestInferType(t *testing.T) {
	remote := RemoteTarget{Host: "h", Port: 80, Path: "/"}
	tests := []struct {
		name string
		d    *Descriptor
		want Type
	}{
		{name: "nil", d: nil, want: TypeSSE},
		{name: "empty", d: &Descriptor{}, want: TypeSSE},
		{name: "type tag alone is ignored", d: &Descriptor{Type: TypeStdio}, want: TypeSSE},
		{name: "streamable", d: &Descriptor{StreamableHTTP: &StreamableHTTPTarget{RemoteTarget: remote}}, want: TypeStreamableHTTP},
		{name: "sse", d: &Descriptor{SSE: &SSETarget{RemoteTarget: remote}}, want: TypeSSE},
		{name: "openapi", d: &Descriptor{OpenAPI: &OpenAPITarget{}}, want: TypeOpenAPI},
		{name: "stdio and sse", d: &Descriptor{Stdio: &StdioTarget{}, SSE: &SSETarget{}}, want: TypeStdio},
		{name: "openapi and streamable", d: &Descriptor{OpenAPI: &OpenAPITarget{}, StreamableHTTP: &StreamableHTTPTarget{}}, want: TypeOpenAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferType(tt.d))
		})
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types {
		got, err := ParseType(string(typ))
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	_, err := ParseType("websocket")
	assert.ErrorIs(t, err, ErrUnknownType)
}
