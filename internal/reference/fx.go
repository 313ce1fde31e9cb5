package reference

import (
	"github.com/indpack-sist/spi-backend/internal/reference/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("reference",
	fx.Provide(repository.NewRepository),
)
