package bootstrap

import (
	"fieldserve/internal/pkg/config"
	"fieldserve/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewVerifier,
	),
)

func NewVerifier(cfg config.Config) *jwt.Verifier {
	return jwt.NewVerifier(cfg.JWT.Secret)
}
