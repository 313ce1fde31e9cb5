package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/indpack-sist/spi-backend/internal/config"
	"github.com/indpack-sist/spi-backend/internal/numbering"
	"github.com/indpack-sist/spi-backend/internal/observability/metrics"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	paymentdomain "github.com/indpack-sist/spi-backend/internal/payment/domain"
	pkgdb "github.com/indpack-sist/spi-backend/pkg/db"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg     config.Config
	Log     *zap.Logger
	DB      *gorm.DB
	GenID   *snowflake.Node
	Repo    paymentdomain.Repository
	Orders  orderdomain.Repository
	Seq     *numbering.Sequence
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log         *zap.Logger
	db          *gorm.DB
	genID       *snowflake.Node
	repo        paymentdomain.Repository
	orders      orderdomain.Repository
	seq         *numbering.Sequence
	metrics     *metrics.Metrics
	lockTimeout time.Duration
}

func NewService(p Params) paymentdomain.Service {
	return &Service{
		log:         p.Log.Named("payment.service"),
		db:          p.DB,
		genID:       p.GenID,
		repo:        p.Repo,
		orders:      p.Orders,
		seq:         p.Seq,
		metrics:     p.Metrics,
		lockTimeout: p.Cfg.LockTimeout,
	}
}

// Register appends an installment to an order's ledger. The order row
// is locked for the whole transaction so the over-payment check, the
// payment number and the balance recompute act on one consistent view.
func (s *Service) Register(ctx context.Context, orderID snowflake.ID, req paymentdomain.RegisterRequest) (*paymentdomain.RegisterResult, error) {
	if req.Amount.Sign() <= 0 {
		return nil, paymentdomain.ErrInvalidAmount
	}
	if !req.Method.Valid() {
		return nil, paymentdomain.ErrInvalidMethod
	}
	if req.RegisteredBy == 0 {
		return nil, paymentdomain.ErrEmployeeRequired
	}
	if req.PaidAt.IsZero() {
		req.PaidAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	var result paymentdomain.RegisterResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}

		// A fully paid order accepts nothing further; the epsilon only
		// tolerates rounding residue when paying the exact remainder.
		newPaid := order.PaidAmount.Add(req.Amount)
		fullyPaid := order.PaidAmount.GreaterThanOrEqual(order.Total.Sub(orderdomain.PaymentEpsilon))
		if fullyPaid || newPaid.GreaterThan(order.Total.Add(orderdomain.PaymentEpsilon)) {
			remaining := order.Total.Sub(order.PaidAmount)
			if remaining.Sign() < 0 {
				remaining = decimal.Zero
			}
			return &paymentdomain.OverPaymentError{Remaining: remaining}
		}

		seq, err := s.seq.Next(ctx, tx, numbering.PaymentScope(orderID))
		if err != nil {
			return err
		}

		payment := paymentdomain.Payment{
			ID:             s.genID.Generate(),
			PaymentNumber:  numbering.FormatPaymentNumber(order.OrderNumber, seq),
			OrderID:        orderID,
			PaidAt:         req.PaidAt,
			Amount:         req.Amount,
			Method:         req.Method,
			OperationRef:   req.OperationRef,
			BankAccountID:  req.BankAccountID,
			Notes:          req.Notes,
			RegisteredByID: req.RegisteredBy,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.repo.Insert(ctx, tx, &payment); err != nil {
			return err
		}

		status := orderdomain.DerivePaymentStatus(newPaid, order.Total)
		if err := s.repo.UpdateOrderBalance(ctx, tx, orderID, newPaid, status); err != nil {
			return err
		}

		result = paymentdomain.RegisterResult{
			Payment: payment,
			Balance: paymentdomain.Balance{
				OrderID:       orderID,
				PaidAmount:    newPaid,
				Pending:       order.Total.Sub(newPaid),
				PaymentStatus: status,
			},
		}
		return nil
	})
	if err != nil {
		return nil, s.mapTxErr(err)
	}

	s.metrics.RecordPaymentRegistered()
	s.log.Info("payment registered",
		zap.String("payment_number", result.Payment.PaymentNumber),
		zap.String("amount", result.Payment.Amount.String()),
		zap.String("payment_status", string(result.Balance.PaymentStatus)),
	)

	return &result, nil
}

// Void hard-deletes a payment and rolls its amount back out of the
// order. A balance that would go negative is clamped to zero; that can
// only happen if the ledger and the order row already disagree, so it
// is logged loudly.
func (s *Service) Void(ctx context.Context, orderID, paymentID snowflake.ID) (*paymentdomain.Balance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	var (
		balance paymentdomain.Balance
		voided  paymentdomain.Payment
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}

		payment, err := s.repo.FindByOrder(ctx, tx, orderID, paymentID)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, payment.ID); err != nil {
			return err
		}

		newPaid := order.PaidAmount.Sub(payment.Amount)
		if newPaid.Sign() < 0 {
			s.log.Warn("paid amount went negative after void, clamping to zero",
				zap.String("order_number", order.OrderNumber),
				zap.String("paid_amount", order.PaidAmount.String()),
				zap.String("voided_amount", payment.Amount.String()),
			)
			newPaid = decimal.Zero
		}

		status := orderdomain.DerivePaymentStatus(newPaid, order.Total)
		if err := s.repo.UpdateOrderBalance(ctx, tx, orderID, newPaid, status); err != nil {
			return err
		}

		voided = *payment
		balance = paymentdomain.Balance{
			OrderID:       orderID,
			PaidAmount:    newPaid,
			Pending:       order.Total.Sub(newPaid),
			PaymentStatus: status,
		}
		return nil
	})
	if err != nil {
		return nil, s.mapTxErr(err)
	}

	s.metrics.RecordPaymentVoided()
	s.log.Info("payment voided",
		zap.String("payment_number", voided.PaymentNumber),
		zap.String("amount", voided.Amount.String()),
		zap.String("payment_status", string(balance.PaymentStatus)),
	)

	return &balance, nil
}

func (s *Service) List(ctx context.Context, orderID snowflake.ID) ([]paymentdomain.Payment, error) {
	if _, err := s.orders.FindByID(ctx, s.db, orderID); err != nil {
		return nil, err
	}
	return s.repo.ListByOrder(ctx, s.db, orderID)
}

func (s *Service) Summary(ctx context.Context, orderID snowflake.ID) (*paymentdomain.Summary, error) {
	order, err := s.orders.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	paid, count, err := s.repo.SumByOrder(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}

	percent := decimal.Zero
	if order.Total.Sign() > 0 {
		percent = paid.Div(order.Total).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &paymentdomain.Summary{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Total:         order.Total,
		PaidAmount:    paid,
		Pending:       order.Total.Sub(paid),
		PercentPaid:   percent,
		PaymentStatus: order.PaymentStatus,
		PaymentCount:  count,
	}, nil
}

func (s *Service) mapTxErr(err error) error {
	if pkgdb.IsLockTimeoutErr(err) {
		return orderdomain.ErrConflict
	}
	return err
}
