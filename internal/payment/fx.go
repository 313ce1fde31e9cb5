package payment

import (
	"github.com/indpack-sist/spi-backend/internal/payment/repository"
	"github.com/indpack-sist/spi-backend/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
