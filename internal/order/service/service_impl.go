package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/indpack-sist/spi-backend/internal/config"
	inventorydomain "github.com/indpack-sist/spi-backend/internal/inventory/domain"
	"github.com/indpack-sist/spi-backend/internal/numbering"
	"github.com/indpack-sist/spi-backend/internal/observability/metrics"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	productdomain "github.com/indpack-sist/spi-backend/internal/product/domain"
	referencedomain "github.com/indpack-sist/spi-backend/internal/reference/domain"
	"github.com/indpack-sist/spi-backend/internal/tax"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg        config.Config
	Log        *zap.Logger
	DB         *gorm.DB
	GenID      *snowflake.Node
	Repo       orderdomain.Repository
	Seq        *numbering.Sequence
	Calc       *tax.Calculator
	References referencedomain.Repository
	Products   productdomain.Repository
	Receipts   inventorydomain.Generator
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	log         *zap.Logger
	db          *gorm.DB
	genID       *snowflake.Node
	repo        orderdomain.Repository
	seq         *numbering.Sequence
	calc        *tax.Calculator
	references  referencedomain.Repository
	products    productdomain.Repository
	receipts    inventorydomain.Generator
	metrics     *metrics.Metrics
	lockTimeout time.Duration
}

func NewService(p Params) orderdomain.Service {
	return &Service{
		log:         p.Log.Named("order.service"),
		db:          p.DB,
		genID:       p.GenID,
		repo:        p.Repo,
		seq:         p.Seq,
		calc:        p.Calc,
		references:  p.References,
		products:    p.Products,
		receipts:    p.Receipts,
		metrics:     p.Metrics,
		lockTimeout: p.Cfg.LockTimeout,
	}
}

const defaultCurrency = "PEN"

// validated is the outcome of checking one create/update payload:
// resolved defaults plus the recomputed monetary breakdown.
type validated struct {
	currency     string
	exchangeRate decimal.Decimal
	creditDays   int
	dueDate      time.Time
	breakdown    tax.Breakdown
	taxLines     []tax.Line
}

func (s *Service) validate(ctx context.Context, req orderdomain.UpdateRequest) (*validated, error) {
	if req.SupplierID == 0 {
		return nil, orderdomain.ErrSupplierRequired
	}
	if !req.Priority.Valid() {
		return nil, orderdomain.ErrInvalidPriority
	}
	if !req.PurchaseType.Valid() {
		return nil, orderdomain.ErrInvalidType
	}
	if len(req.Lines) == 0 {
		return nil, orderdomain.ErrNoLines
	}

	v := &validated{
		currency:     req.Currency,
		exchangeRate: decimal.NewFromInt(1),
		creditDays:   req.CreditDays,
	}

	if v.currency == "" {
		v.currency = defaultCurrency
	}
	if len(v.currency) != 3 {
		return nil, orderdomain.ErrInvalidCurrency
	}
	if req.ExchangeRate != nil {
		if req.ExchangeRate.Sign() <= 0 {
			return nil, orderdomain.ErrInvalidCurrency
		}
		v.exchangeRate = *req.ExchangeRate
	}

	switch req.PurchaseType {
	case orderdomain.PurchaseTypeCredit:
		if v.creditDays <= 0 {
			return nil, orderdomain.ErrInvalidCredit
		}
	case orderdomain.PurchaseTypeCash:
		if v.creditDays != 0 {
			return nil, orderdomain.ErrInvalidCredit
		}
	}

	if _, err := s.references.FindSupplier(ctx, req.SupplierID); err != nil {
		return nil, err
	}
	if req.BankAccountID != nil {
		if _, err := s.references.FindBankAccount(ctx, *req.BankAccountID); err != nil {
			return nil, err
		}
	}

	ids := make([]snowflake.ID, 0, len(req.Lines))
	for _, line := range req.Lines {
		ids = append(ids, line.ProductID)
	}
	known, err := s.products.FindByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		if _, ok := known[line.ProductID]; !ok {
			return nil, productdomain.ErrNotFound
		}
	}

	v.taxLines = make([]tax.Line, len(req.Lines))
	for i, line := range req.Lines {
		v.taxLines[i] = tax.Line{
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
		}
	}
	v.breakdown, err = s.calc.Compute(v.taxLines, req.TaxRegime, req.TaxRatePercent)
	if err != nil {
		return nil, err
	}

	if req.DueDate != nil {
		v.dueDate = *req.DueDate
	} else if req.PurchaseType == orderdomain.PurchaseTypeCredit {
		v.dueDate = req.IssueDate.AddDate(0, 0, v.creditDays)
	} else {
		v.dueDate = req.IssueDate
	}

	return v, nil
}

func (s *Service) Create(ctx context.Context, req orderdomain.CreateRequest) (*orderdomain.OrderWithLines, error) {
	if req.CreatedBy == 0 {
		return nil, orderdomain.ErrEmployeeRequired
	}
	if req.IssueDate.IsZero() {
		req.IssueDate = time.Now().UTC()
	}
	if req.Priority == "" {
		req.Priority = orderdomain.PriorityMedium
	}

	v, err := s.validate(ctx, orderdomain.UpdateRequest{
		SupplierID:            req.SupplierID,
		BankAccountID:         req.BankAccountID,
		IssueDate:             req.IssueDate,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
		DueDate:               req.DueDate,
		PurchaseType:          req.PurchaseType,
		CreditDays:            req.CreditDays,
		Priority:              req.Priority,
		Currency:              req.Currency,
		ExchangeRate:          req.ExchangeRate,
		TaxRegime:             req.TaxRegime,
		TaxRatePercent:        req.TaxRatePercent,
		Notes:                 req.Notes,
		Lines:                 req.Lines,
	})
	if err != nil {
		return nil, err
	}

	responsible := req.CreatedBy
	if req.ResponsibleID != nil && *req.ResponsibleID != 0 {
		responsible = *req.ResponsibleID
	}

	now := time.Now().UTC()
	order := &orderdomain.PurchaseOrder{
		ID:                    s.genID.Generate(),
		SupplierID:            req.SupplierID,
		BankAccountID:         req.BankAccountID,
		IssueDate:             req.IssueDate,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
		DueDate:               v.dueDate,
		PurchaseType:          req.PurchaseType,
		CreditDays:            v.creditDays,
		Priority:              req.Priority,
		Currency:              v.currency,
		ExchangeRate:          v.exchangeRate,
		TaxRegime:             req.TaxRegime,
		TaxRatePercent:        v.breakdown.RatePercent,
		Subtotal:              v.breakdown.Subtotal,
		TaxAmount:             v.breakdown.TaxAmount,
		Total:                 v.breakdown.Total,
		PaidAmount:            decimal.Zero,
		PaymentStatus:         orderdomain.PaymentStatusPending,
		Status:                orderdomain.StatusWaiting,
		ResponsibleID:         responsible,
		CreatedByID:           req.CreatedBy,
		Notes:                 req.Notes,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	lines := s.buildLines(order.ID, req.Lines, v.taxLines, now)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		seq, err := s.seq.Next(ctx, tx, numbering.OrderScope(req.IssueDate.Year()))
		if err != nil {
			return err
		}
		order.OrderNumber = numbering.FormatOrderNumber(req.IssueDate.Year(), seq)

		if err := s.repo.Insert(ctx, tx, order); err != nil {
			return err
		}
		return s.repo.InsertLines(ctx, tx, lines)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOrderCreated()
	s.log.Info("purchase order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.Total.String()),
		zap.Int("lines", len(lines)),
	)

	return &orderdomain.OrderWithLines{PurchaseOrder: *order, Lines: lines}, nil
}

func (s *Service) buildLines(orderID snowflake.ID, reqs []orderdomain.LineRequest, taxLines []tax.Line, now time.Time) []orderdomain.PurchaseOrderLine {
	lines := make([]orderdomain.PurchaseOrderLine, len(reqs))
	for i, req := range reqs {
		lines[i] = orderdomain.PurchaseOrderLine{
			ID:              s.genID.Generate(),
			OrderID:         orderID,
			ProductID:       req.ProductID,
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice,
			DiscountPercent: req.DiscountPercent,
			Subtotal:        taxLines[i].Subtotal(),
			CreatedAt:       now,
		}
	}
	return lines
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*orderdomain.OrderWithLines, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.FindLines(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return &orderdomain.OrderWithLines{PurchaseOrder: *order, Lines: lines}, nil
}

func (s *Service) List(ctx context.Context, req orderdomain.ListRequest) ([]orderdomain.PurchaseOrder, int64, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, 0, orderdomain.ErrInvalidStatus
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return nil, 0, orderdomain.ErrInvalidPriority
	}
	return s.repo.List(ctx, s.db, req)
}

// Update replaces the editable fields and all lines of a waiting order
// and recomputes its totals. Orders past waiting are frozen.
func (s *Service) Update(ctx context.Context, id snowflake.ID, req orderdomain.UpdateRequest) (*orderdomain.OrderWithLines, error) {
	if req.IssueDate.IsZero() {
		req.IssueDate = time.Now().UTC()
	}

	v, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		updated *orderdomain.PurchaseOrder
		lines   []orderdomain.PurchaseOrderLine
	)

	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order.Status != orderdomain.StatusWaiting {
			return orderdomain.ErrNotEditable
		}
		// The recorded ledger bounds how far the total can shrink.
		if order.PaidAmount.GreaterThan(v.breakdown.Total.Add(orderdomain.PaymentEpsilon)) {
			return orderdomain.ErrPaidExceedsTotal
		}

		now := time.Now().UTC()
		order.SupplierID = req.SupplierID
		order.BankAccountID = req.BankAccountID
		order.IssueDate = req.IssueDate
		order.EstimatedDeliveryDate = req.EstimatedDeliveryDate
		order.DueDate = v.dueDate
		order.PurchaseType = req.PurchaseType
		order.CreditDays = v.creditDays
		order.Priority = req.Priority
		order.Currency = v.currency
		order.ExchangeRate = v.exchangeRate
		order.TaxRegime = req.TaxRegime
		order.TaxRatePercent = v.breakdown.RatePercent
		order.Subtotal = v.breakdown.Subtotal
		order.TaxAmount = v.breakdown.TaxAmount
		order.Total = v.breakdown.Total
		order.PaymentStatus = orderdomain.DerivePaymentStatus(order.PaidAmount, order.Total)
		order.Notes = req.Notes
		order.UpdatedAt = now

		lines = s.buildLines(order.ID, req.Lines, v.taxLines, now)

		if err := s.repo.DeleteLines(ctx, tx, order.ID); err != nil {
			return err
		}
		if err := s.repo.InsertLines(ctx, tx, lines); err != nil {
			return err
		}
		if err := s.repo.UpdateEditable(ctx, tx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, s.mapTxErr(err)
	}

	s.log.Info("purchase order updated",
		zap.String("order_number", updated.OrderNumber),
		zap.String("total", updated.Total.String()),
	)

	return &orderdomain.OrderWithLines{PurchaseOrder: *updated, Lines: lines}, nil
}

func (s *Service) SetPriority(ctx context.Context, id snowflake.ID, priority orderdomain.Priority) (*orderdomain.PurchaseOrder, error) {
	if !priority.Valid() {
		return nil, orderdomain.ErrInvalidPriority
	}
	if err := s.repo.UpdatePriority(ctx, s.db, id, priority); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, s.db, id)
}
