package gateway

import (
	"go.uber.org/fx"
)

// Module provides the gateway admin API client
var Module = fx.Module("gateway",
	fx.Provide(
		NewClient,
		fx.Annotate(
			NewHTTPAuthManager,
			fx.As(new(AuthManager)),
		),
	),
)
