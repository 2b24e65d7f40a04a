package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brizzai/target-wizard/internal/form"
	"github.com/brizzai/target-wizard/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPair(t *testing.T) {
	tests := []struct {
		in      string
		key     string
		value   string
		wantErr bool
	}{
		{in: "X-Env=prod", key: "X-Env", value: "prod"},
		{in: "TOKEN=a=b", key: "TOKEN", value: "a=b"},
		{in: "novalue=", wantErr: true},
		{in: "=nokey", wantErr: true},
		{in: "plain", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, v, err := splitPair(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, k)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestDescriptorSchema(t *testing.T) {
	s := descriptorSchema()
	for _, prop := range []string{"name", "type", "listeners", "sse", "stdio", "openapi", "streamable_http"} {
		_, ok := s.Properties.Get(prop)
		assert.True(t, ok, prop)
	}
}

func TestApplySubmitFlags_OnlyChangedFlags(t *testing.T) {
	f := form.NewStreamableHTTPForm("t", func(context.Context, target.Target) error { return nil })
	f.Load(&target.Descriptor{
		StreamableHTTP: &target.StreamableHTTPTarget{RemoteTarget: target.RemoteTarget{
			Host: "old", Port: 80, Path: "/mcp",
			Auth: &target.BackendAuth{Passthrough: true},
		}},
	})

	require.NoError(t, submitCmd.Flags().Set("insecure-skip-verify", "true"))
	t.Cleanup(func() { submitOpts.insecureSkipVerify = false })

	require.NoError(t, applySubmitFlags(submitCmd, f))
	assert.Equal(t, "http://old:80/mcp", f.URL())
	assert.True(t, f.PassthroughAuth())
	assert.True(t, f.InsecureSkipVerify())
}

func TestSubmitCommand(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/targets/mcp", r.URL.Path)
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(data)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	rootCmd.SetArgs([]string{
		"submit",
		"--gateway-url", server.URL,
		"--name", "docs",
		"--listener", "default",
		"--type", "streamable_http",
		"--url", "http://localhost:8080/mcp",
		"--header", "X-Team=docs",
	})
	require.NoError(t, rootCmd.Execute())

	assert.JSONEq(t, `{
		"name": "docs",
		"type": "streamable_http",
		"listeners": ["default"],
		"streamable_http": {
			"host": "localhost",
			"port": 8080,
			"path": "/mcp",
			"headers": [{"key": "X-Team", "value": {"string_value": "docs"}}]
		}
	}`, body)
}
