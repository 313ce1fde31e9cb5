package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/indpack-sist/spi-backend/internal/config"
	"github.com/indpack-sist/spi-backend/internal/numbering"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	orderrepository "github.com/indpack-sist/spi-backend/internal/order/repository"
	paymentdomain "github.com/indpack-sist/spi-backend/internal/payment/domain"
	paymentrepository "github.com/indpack-sist/spi-backend/internal/payment/repository"
	"github.com/indpack-sist/spi-backend/internal/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	svc      paymentdomain.Service
	order    orderdomain.PurchaseOrder
	employee snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&orderdomain.PurchaseOrder{},
		&paymentdomain.Payment{},
		&numbering.NumberSequence{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	f := &fixture{db: db, node: node, employee: node.Generate()}

	// Order mirroring a taxed 90.00 subtotal at 18%.
	f.order = orderdomain.PurchaseOrder{
		ID:             node.Generate(),
		OrderNumber:    "OC-2026-0001",
		SupplierID:     node.Generate(),
		IssueDate:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		DueDate:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		PurchaseType:   orderdomain.PurchaseTypeCash,
		Priority:       orderdomain.PriorityMedium,
		Currency:       "PEN",
		ExchangeRate:   decimal.NewFromInt(1),
		TaxRegime:      tax.RegimeTaxed,
		TaxRatePercent: decimal.NewFromInt(18),
		Subtotal:       decimal.NewFromInt(90),
		TaxAmount:      decimal.NewFromFloat(16.20),
		Total:          decimal.NewFromFloat(106.20),
		PaidAmount:     decimal.Zero,
		PaymentStatus:  orderdomain.PaymentStatusPending,
		Status:         orderdomain.StatusWaiting,
		ResponsibleID:  f.employee,
		CreatedByID:    f.employee,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	require.NoError(t, db.Create(&f.order).Error)

	f.svc = NewService(Params{
		Cfg:    config.Config{LockTimeout: 2 * time.Second},
		Log:    log,
		DB:     db,
		GenID:  node,
		Repo:   paymentrepository.Provide(),
		Orders: orderrepository.Provide(),
		Seq:    numbering.NewSequence(log),
	})

	return f
}

func (f *fixture) register(amount float64) paymentdomain.RegisterRequest {
	return paymentdomain.RegisterRequest{
		Amount:       decimal.NewFromFloat(amount),
		Method:       paymentdomain.MethodTransfer,
		RegisteredBy: f.employee,
	}
}

func (f *fixture) reloadOrder(t *testing.T) orderdomain.PurchaseOrder {
	t.Helper()
	var order orderdomain.PurchaseOrder
	require.NoError(t, f.db.First(&order, "id = ?", f.order.ID).Error)
	return order
}

func (f *fixture) activeSum(t *testing.T) decimal.Decimal {
	t.Helper()
	var sum decimal.NullDecimal
	require.NoError(t, f.db.Raw(
		`SELECT SUM(amount) FROM order_payments WHERE order_id = ?`, f.order.ID,
	).Scan(&sum).Error)
	if !sum.Valid {
		return decimal.Zero
	}
	return sum.Decimal
}

func TestRegister_PartialThenPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Register(ctx, f.order.ID, f.register(50.00))
	require.NoError(t, err)
	assert.Equal(t, "OC-2026-0001-P 01", first.Payment.PaymentNumber)
	assert.True(t, first.Balance.PaidAmount.Equal(decimal.NewFromInt(50)))
	assert.True(t, first.Balance.Pending.Equal(decimal.NewFromFloat(56.20)), "pending = %s", first.Balance.Pending)
	assert.Equal(t, orderdomain.PaymentStatusPartial, first.Balance.PaymentStatus)

	second, err := f.svc.Register(ctx, f.order.ID, f.register(56.20))
	require.NoError(t, err)
	assert.Equal(t, "OC-2026-0001-P 02", second.Payment.PaymentNumber)
	assert.True(t, second.Balance.PaidAmount.Equal(decimal.NewFromFloat(106.20)))
	assert.Equal(t, orderdomain.PaymentStatusPaid, second.Balance.PaymentStatus)

	order := f.reloadOrder(t)
	assert.True(t, order.PaidAmount.Equal(f.activeSum(t)), "order %s vs ledger %s", order.PaidAmount, f.activeSum(t))
	assert.Equal(t, orderdomain.PaymentStatusPaid, order.PaymentStatus)
}

func TestRegister_RejectsOverPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, f.order.ID, f.register(106.20))
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, f.order.ID, f.register(0.11))
	var over *paymentdomain.OverPaymentError
	require.ErrorAs(t, err, &over)
	assert.True(t, over.Remaining.Equal(decimal.Zero), "remaining = %s", over.Remaining)

	// Ledger untouched by the rejected attempt.
	order := f.reloadOrder(t)
	assert.True(t, order.PaidAmount.Equal(decimal.NewFromFloat(106.20)))
	assert.True(t, f.activeSum(t).Equal(decimal.NewFromFloat(106.20)))
}

func TestRegister_RejectsAnyAmountOnceFullyPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, f.order.ID, f.register(106.20))
	require.NoError(t, err)

	// Even a cent within the rounding tolerance is refused once the
	// order is settled.
	_, err = f.svc.Register(ctx, f.order.ID, f.register(0.01))
	var over *paymentdomain.OverPaymentError
	require.ErrorAs(t, err, &over)
	assert.True(t, over.Remaining.Equal(decimal.Zero), "remaining = %s", over.Remaining)

	order := f.reloadOrder(t)
	assert.True(t, order.PaidAmount.Equal(decimal.NewFromFloat(106.20)), "paid = %s", order.PaidAmount)
	assert.Equal(t, orderdomain.PaymentStatusPaid, order.PaymentStatus)
	assert.True(t, f.activeSum(t).Equal(decimal.NewFromFloat(106.20)))
}

func TestRegister_ToleratesRoundingWithinEpsilon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, f.order.ID, f.register(106.25))
	require.NoError(t, err)

	order := f.reloadOrder(t)
	assert.Equal(t, orderdomain.PaymentStatusPaid, order.PaymentStatus)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.register(50)
	req.Amount = decimal.Zero
	_, err := f.svc.Register(ctx, f.order.ID, req)
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidAmount)

	req = f.register(-10)
	_, err = f.svc.Register(ctx, f.order.ID, req)
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidAmount)

	req = f.register(50)
	req.Method = "barter"
	_, err = f.svc.Register(ctx, f.order.ID, req)
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidMethod)

	req = f.register(50)
	req.RegisteredBy = 0
	_, err = f.svc.Register(ctx, f.order.ID, req)
	assert.ErrorIs(t, err, paymentdomain.ErrEmployeeRequired)

	_, err = f.svc.Register(ctx, f.node.Generate(), f.register(50))
	assert.ErrorIs(t, err, orderdomain.ErrNotFound)
}

func TestVoid_RestoresBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Register(ctx, f.order.ID, f.register(50.00))
	require.NoError(t, err)
	_, err = f.svc.Register(ctx, f.order.ID, f.register(56.20))
	require.NoError(t, err)

	balance, err := f.svc.Void(ctx, f.order.ID, first.Payment.ID)
	require.NoError(t, err)
	assert.True(t, balance.PaidAmount.Equal(decimal.NewFromFloat(56.20)), "paid = %s", balance.PaidAmount)
	assert.Equal(t, orderdomain.PaymentStatusPartial, balance.PaymentStatus)

	order := f.reloadOrder(t)
	assert.True(t, order.PaidAmount.Equal(f.activeSum(t)))

	payments, err := f.svc.List(ctx, f.order.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "OC-2026-0001-P 02", payments[0].PaymentNumber)

	// Voiding the remaining payment empties the ledger.
	balance, err = f.svc.Void(ctx, f.order.ID, payments[0].ID)
	require.NoError(t, err)
	assert.True(t, balance.PaidAmount.IsZero())
	assert.Equal(t, orderdomain.PaymentStatusPending, balance.PaymentStatus)
}

func TestVoid_RequiresMatchingOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payment, err := f.svc.Register(ctx, f.order.ID, f.register(50.00))
	require.NoError(t, err)

	other := f.order
	other.ID = f.node.Generate()
	other.OrderNumber = "OC-2026-0002"
	require.NoError(t, f.db.Create(&other).Error)

	_, err = f.svc.Void(ctx, other.ID, payment.Payment.ID)
	assert.ErrorIs(t, err, paymentdomain.ErrNotFound)

	_, err = f.svc.Void(ctx, f.order.ID, f.node.Generate())
	assert.ErrorIs(t, err, paymentdomain.ErrNotFound)

	order := f.reloadOrder(t)
	assert.True(t, order.PaidAmount.Equal(decimal.NewFromInt(50)))
}

func TestVoid_ClampsNegativeBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payment, err := f.svc.Register(ctx, f.order.ID, f.register(50.00))
	require.NoError(t, err)

	// Corrupt the order row so the recorded balance lags the ledger.
	require.NoError(t, f.db.Exec(
		`UPDATE purchase_orders SET paid_amount = ? WHERE id = ?`,
		decimal.NewFromInt(10), f.order.ID,
	).Error)

	balance, err := f.svc.Void(ctx, f.order.ID, payment.Payment.ID)
	require.NoError(t, err)
	assert.True(t, balance.PaidAmount.IsZero(), "paid = %s", balance.PaidAmount)
	assert.Equal(t, orderdomain.PaymentStatusPending, balance.PaymentStatus)
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, f.order.ID, f.register(53.10))
	require.NoError(t, err)

	summary, err := f.svc.Summary(ctx, f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, "OC-2026-0001", summary.OrderNumber)
	assert.True(t, summary.PaidAmount.Equal(decimal.NewFromFloat(53.10)))
	assert.True(t, summary.Pending.Equal(decimal.NewFromFloat(53.10)))
	assert.True(t, summary.PercentPaid.Equal(decimal.NewFromInt(50)), "percent = %s", summary.PercentPaid)
	assert.Equal(t, orderdomain.PaymentStatusPartial, summary.PaymentStatus)
	assert.EqualValues(t, 1, summary.PaymentCount)

	_, err = f.svc.Summary(ctx, f.node.Generate())
	assert.ErrorIs(t, err, orderdomain.ErrNotFound)
}
