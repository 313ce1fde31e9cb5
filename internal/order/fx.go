package order

import (
	"github.com/indpack-sist/spi-backend/internal/order/repository"
	"github.com/indpack-sist/spi-backend/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
