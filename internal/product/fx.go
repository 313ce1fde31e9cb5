package product

import (
	"github.com/indpack-sist/spi-backend/internal/product/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("product",
	fx.Provide(repository.Provide),
)
