package inventory

import (
	"github.com/indpack-sist/spi-backend/internal/inventory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory",
	fx.Provide(service.NewService),
)
