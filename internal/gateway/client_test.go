package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brizzai/target-wizard/internal/config"
	"github.com/brizzai/target-wizard/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockAuthManager implements the AuthManager interface for testing
type MockAuthManager struct {
	calls int
}

func (m *MockAuthManager) ApplyAuth(req *http.Request) error {
	m.calls++
	req.Header.Set("Authorization", "Bearer test")
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *MockAuthManager) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	authMgr := &MockAuthManager{}
	client := NewClient(ClientParams{
		GatewayConfig: &config.GatewayConfig{
			BaseURL: server.URL + "/",
			Headers: map[string]string{"X-Tenant": "acme"},
			Timeout: 5 * time.Second,
		},
		AuthManager: authMgr,
	})
	return client, authMgr
}

func TestClient_CreateTarget(t *testing.T) {
	tgt := target.Target{
		Name:      "my-target",
		Listeners: []string{"default"},
		Spec: target.StreamableHTTPTarget{RemoteTarget: target.RemoteTarget{
			Host: "localhost",
			Port: 8080,
			Path: "/mcp",
		}},
	}

	client, authMgr := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/targets/mcp", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "acme", r.Header.Get("X-Tenant"))
		assert.Equal(t, "Bearer test", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"name": "my-target",
			"type": "streamable_http",
			"listeners": ["default"],
			"streamable_http": {"host": "localhost", "port": 8080, "path": "/mcp"}
		}`, string(body))

		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, client.CreateTarget(context.Background(), tgt))
	assert.Equal(t, 1, authMgr.calls)
}

func TestClient_CreateTarget_ErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "name already taken", http.StatusConflict)
	})

	err := client.CreateTarget(context.Background(), target.Target{
		Name: "dup",
		Spec: target.StdioTarget{Cmd: "npx"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "name already taken")
}

func TestClient_CreateTarget_ContextCanceled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := client.CreateTarget(ctx, target.Target{Name: "x", Spec: target.StdioTarget{Cmd: "a"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_GetTarget(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/targets/mcp/weather", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "weather",
			"type": "sse",
			"listeners": ["public"],
			"sse": {"host": "weather.internal", "port": 443, "path": "/sse", "tls": {"insecure_skip_verify": true}}
		}`))
	})

	d, err := client.GetTarget(context.Background(), "weather")
	require.NoError(t, err)
	assert.Equal(t, "weather", d.Name)
	assert.Equal(t, []string{"public"}, d.Listeners)
	require.NotNil(t, d.SSE)
	assert.True(t, d.SSE.InsecureSkipVerify())
	assert.Equal(t, target.TypeSSE, target.InferType(d))
}

func TestClient_GetTarget_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetTarget(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestClient_ListListeners(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listeners", r.URL.Path)
		require.NoError(t, json.NewEncoder(w).Encode([]Listener{
			{Name: "default", Protocol: "HTTP"},
			{Name: "internal"},
		}))
	})

	listeners, err := client.ListListeners(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Listener{{Name: "default", Protocol: "HTTP"}, {Name: "internal"}}, listeners)
}

func TestClient_ListListeners_BadBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.ListListeners(context.Background())
	assert.Error(t, err)
}
