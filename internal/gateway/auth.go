package gateway

import (
	"fmt"
	"net/http"

	"github.com/brizzai/target-wizard/internal/config"
)

// AuthManager handles request authentication
type AuthManager interface {
	ApplyAuth(req *http.Request) error
}

// HTTPAuthManager implements the AuthManager interface from static credentials
type HTTPAuthManager struct {
	authType   config.AuthType
	authConfig map[string]string
}

// NewHTTPAuthManager creates a new HTTPAuthManager
func NewHTTPAuthManager(gatewayCfg *config.GatewayConfig) *HTTPAuthManager {
	return &HTTPAuthManager{
		authType:   gatewayCfg.AuthType,
		authConfig: gatewayCfg.AuthConfig,
	}
}

// ApplyAuth adds authentication to the request
func (a *HTTPAuthManager) ApplyAuth(req *http.Request) error {
	switch a.authType {
	case config.AuthTypeNone, "":
		return nil
	case config.AuthTypeBasic:
		req.SetBasicAuth(a.authConfig["username"], a.authConfig["password"])
	case config.AuthTypeBearer:
		req.Header.Set("Authorization", "Bearer "+a.authConfig["token"])
	case config.AuthTypeAPIKey:
		header := a.authConfig["header"]
		if header == "" {
			header = "X-API-Key"
		}
		req.Header.Set(header, a.authConfig["key"])
	default:
		return fmt.Errorf("unsupported auth type: %s", a.authType)
	}
	return nil
}
