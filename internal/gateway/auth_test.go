package gateway

import (
	"net/http"
	"testing"

	"github.com/brizzai/target-wizard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPAuthManager_ApplyAuth(t *testing.T) {
	tests := []struct {
		name       string
		authType   config.AuthType
		authConfig map[string]string
		wantErr    bool
		checkAuth  func(t *testing.T, req *http.Request)
	}{
		{
			name:       "No Auth",
			authType:   config.AuthTypeNone,
			authConfig: map[string]string{},
			checkAuth: func(t *testing.T, req *http.Request) {
				assert.Empty(t, req.Header.Get("Authorization"))
			},
		},
		{
			name:     "Basic Auth",
			authType: config.AuthTypeBasic,
			authConfig: map[string]string{
				"username": "admin",
				"password": "secret",
			},
			checkAuth: func(t *testing.T, req *http.Request) {
				username, password, ok := req.BasicAuth()
				assert.True(t, ok)
				assert.Equal(t, "admin", username)
				assert.Equal(t, "secret", password)
			},
		},
		{
			name:       "Bearer Token",
			authType:   config.AuthTypeBearer,
			authConfig: map[string]string{"token": "abc123"},
			checkAuth: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "Bearer abc123", req.Header.Get("Authorization"))
			},
		},
		{
			name:       "API Key default header",
			authType:   config.AuthTypeAPIKey,
			authConfig: map[string]string{"key": "k1"},
			checkAuth: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "k1", req.Header.Get("X-API-Key"))
			},
		},
		{
			name:       "API Key custom header",
			authType:   config.AuthTypeAPIKey,
			authConfig: map[string]string{"key": "k2", "header": "X-Admin-Key"},
			checkAuth: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "k2", req.Header.Get("X-Admin-Key"))
				assert.Empty(t, req.Header.Get("X-API-Key"))
			},
		},
		{
			name:     "Unsupported",
			authType: config.AuthType("oauth"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMgr := NewHTTPAuthManager(&config.GatewayConfig{
				AuthType:   tt.authType,
				AuthConfig: tt.authConfig,
			})
			req := &http.Request{Header: make(http.Header)}

			err := authMgr.ApplyAuth(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.checkAuth(t, req)
		})
	}
}
