package providers

import (
	"github.com/indpack-sist/spi-backend/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	pdf.Module,
)
