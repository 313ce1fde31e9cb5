package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/indpack-sist/spi-backend/internal/auth"
	authdomain "github.com/indpack-sist/spi-backend/internal/auth/domain"
	"github.com/indpack-sist/spi-backend/internal/config"
	obslogger "github.com/indpack-sist/spi-backend/internal/observability/logger"
	obsmetrics "github.com/indpack-sist/spi-backend/internal/observability/metrics"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	paymentdomain "github.com/indpack-sist/spi-backend/internal/payment/domain"
	productdomain "github.com/indpack-sist/spi-backend/internal/product/domain"
	"github.com/indpack-sist/spi-backend/internal/providers/pdf"
	referencedomain "github.com/indpack-sist/spi-backend/internal/reference/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, m *obsmetrics.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug: !cfg.IsProduction(),
	}))
	r.Use(m.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", m.Handler())

	return r
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	db         *gorm.DB
	genID      *snowflake.Node
	orderSvc   orderdomain.Service
	paymentSvc paymentdomain.Service
	refrepo    referencedomain.Repository
	products   productdomain.Repository
	pdf        pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	DB         *gorm.DB
	GenID      *snowflake.Node
	OrderSvc   orderdomain.Service
	PaymentSvc paymentdomain.Service
	AuthRepo   authdomain.Repository
	Refrepo    referencedomain.Repository
	Products   productdomain.Repository
	PDF        pdf.Provider
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        p.Log.Named("server"),
		db:         p.DB,
		genID:      p.GenID,
		orderSvc:   p.OrderSvc,
		paymentSvc: p.PaymentSvc,
		refrepo:    p.Refrepo,
		products:   p.Products,
		pdf:        p.PDF,
	}

	authed := s.engine.Group("/", auth.GinMiddleware(p.AuthRepo, AbortWithError))

	orders := authed.Group("/orders")
	orders.GET("", s.listOrders)
	orders.POST("", s.createOrder)
	orders.GET("/:id", s.getOrder)
	orders.PUT("/:id", s.updateOrder)
	orders.PATCH("/:id/status", s.setOrderStatus)
	orders.PATCH("/:id/priority", s.setOrderPriority)
	orders.GET("/:id/pdf", s.exportOrderPDF)

	orders.POST("/:id/payments", s.registerPayment)
	orders.GET("/:id/payments", s.listPayments)
	orders.GET("/:id/payments/summary", s.paymentSummary)
	orders.DELETE("/:id/payments/:paymentId", s.voidPayment)

	return s
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

func parseID(c *gin.Context, param string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(c.Param(param))
	if err != nil {
		return 0, ErrInvalidRequest
	}
	return id, nil
}

func actingEmployee(c *gin.Context) (*authdomain.Employee, error) {
	employee, ok := auth.EmployeeFromContext(c)
	if !ok {
		return nil, authdomain.ErrUnauthenticated
	}
	return employee, nil
}
