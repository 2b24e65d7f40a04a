package form

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/brizzai/target-wizard/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEForm_Submit(t *testing.T) {
	rec := &recorder{}
	f := NewSSEForm("events", rec.submit)
	f.SetURL("https://events.example.com/sse?stream=all")
	f.SetListeners([]string{"default"})
	f.SetPassthroughAuth(true)
	f.SetPendingHeader("X-Team", "infra")
	require.True(t, f.AddHeader())

	require.NoError(t, f.PressSubmit(context.Background()))

	data, err := json.Marshal(rec.last(t))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "events",
		"type": "sse",
		"listeners": ["default"],
		"sse": {
			"host": "events.example.com",
			"port": 443,
			"path": "/sse?stream=all",
			"headers": [{"key": "X-Team", "value": {"string_value": "infra"}}],
			"auth": {"passthrough": true}
		}
	}`, string(data))
}

func TestSSEForm_LoadOnlyReadsSSEPayload(t *testing.T) {
	d := &target.Descriptor{
		Listeners: []string{"default"},
		SSE: &target.SSETarget{RemoteTarget: target.RemoteTarget{
			Host: "sse.local", Port: 80, Path: "/sse",
		}},
		StreamableHTTP: &target.StreamableHTTPTarget{RemoteTarget: target.RemoteTarget{
			Host: "mcp.local", Port: 8080, Path: "/mcp",
		}},
	}

	sse := NewSSEForm("t", (&recorder{}).submit)
	sse.Load(d)
	assert.Equal(t, "http://sse.local:80/sse", sse.URL())

	streamable := NewStreamableHTTPForm("t", (&recorder{}).submit)
	streamable.Load(d)
	assert.Equal(t, "http://mcp.local:8080/mcp", streamable.URL())
}
