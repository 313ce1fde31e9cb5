package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/indpack-sist/spi-backend/internal/auth"
	"github.com/indpack-sist/spi-backend/internal/config"
	"github.com/indpack-sist/spi-backend/internal/inventory"
	"github.com/indpack-sist/spi-backend/internal/migration"
	"github.com/indpack-sist/spi-backend/internal/numbering"
	"github.com/indpack-sist/spi-backend/internal/observability"
	"github.com/indpack-sist/spi-backend/internal/order"
	"github.com/indpack-sist/spi-backend/internal/payment"
	"github.com/indpack-sist/spi-backend/internal/product"
	"github.com/indpack-sist/spi-backend/internal/providers"
	"github.com/indpack-sist/spi-backend/internal/reference"
	"github.com/indpack-sist/spi-backend/internal/server"
	"github.com/indpack-sist/spi-backend/internal/tax"
	"github.com/indpack-sist/spi-backend/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		tax.Module,
		numbering.Module,
		reference.Module,
		product.Module,
		auth.Module,
		inventory.Module,
		order.Module,
		payment.Module,
		providers.Module,

		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
