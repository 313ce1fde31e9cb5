package auth

import (
	"github.com/indpack-sist/spi-backend/internal/auth/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(repository.NewRepository),
)
