package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	authdomain "github.com/indpack-sist/spi-backend/internal/auth/domain"
	authrepository "github.com/indpack-sist/spi-backend/internal/auth/repository"
	"github.com/indpack-sist/spi-backend/internal/config"
	inventorydomain "github.com/indpack-sist/spi-backend/internal/inventory/domain"
	inventoryservice "github.com/indpack-sist/spi-backend/internal/inventory/service"
	"github.com/indpack-sist/spi-backend/internal/numbering"
	obsmetrics "github.com/indpack-sist/spi-backend/internal/observability/metrics"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	orderrepository "github.com/indpack-sist/spi-backend/internal/order/repository"
	orderservice "github.com/indpack-sist/spi-backend/internal/order/service"
	paymentdomain "github.com/indpack-sist/spi-backend/internal/payment/domain"
	paymentrepository "github.com/indpack-sist/spi-backend/internal/payment/repository"
	paymentservice "github.com/indpack-sist/spi-backend/internal/payment/service"
	productdomain "github.com/indpack-sist/spi-backend/internal/product/domain"
	productrepository "github.com/indpack-sist/spi-backend/internal/product/repository"
	"github.com/indpack-sist/spi-backend/internal/providers/pdf"
	referencedomain "github.com/indpack-sist/spi-backend/internal/reference/domain"
	referencerepository "github.com/indpack-sist/spi-backend/internal/reference/repository"
	"github.com/indpack-sist/spi-backend/internal/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testToken = "test-session-token"

type testEnv struct {
	engine   *gin.Engine
	db       *gorm.DB
	node     *snowflake.Node
	supplier referencedomain.Supplier
	products []productdomain.Product
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&orderdomain.PurchaseOrder{},
		&orderdomain.PurchaseOrderLine{},
		&paymentdomain.Payment{},
		&numbering.NumberSequence{},
		&productdomain.Product{},
		&referencedomain.Supplier{},
		&referencedomain.BankAccount{},
		&inventorydomain.InventoryReceipt{},
		&inventorydomain.InventoryReceiptLine{},
		&authdomain.Employee{},
		&authdomain.Session{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()
	cfg := config.Config{HTTPPort: "0", LockTimeout: 2 * time.Second}

	env := &testEnv{db: db, node: node}

	employee := authdomain.Employee{ID: node.Generate(), Name: "Rosa Quispe", Email: "rosa@example.com", IsActive: true}
	require.NoError(t, db.Create(&employee).Error)
	require.NoError(t, db.Create(&authdomain.Session{
		Token:      testToken,
		EmployeeID: employee.ID,
		ExpiresAt:  time.Now().Add(time.Hour),
	}).Error)

	env.supplier = referencedomain.Supplier{ID: node.Generate(), Name: "Aceros del Sur SAC", TaxID: "20100123456", IsActive: true}
	require.NoError(t, db.Create(&env.supplier).Error)

	for _, p := range []productdomain.Product{
		{ID: node.Generate(), Code: "PL-001", Name: "Plancha acero 3mm", Unit: "unidad", IsActive: true},
		{ID: node.Generate(), Code: "TB-004", Name: "Tubo cuadrado 2in", Unit: "unidad", IsActive: true},
	} {
		require.NoError(t, db.Create(&p).Error)
		env.products = append(env.products, p)
	}

	productRepo := productrepository.Provide()
	orderRepo := orderrepository.Provide()
	seq := numbering.NewSequence(log)
	refRepo := referencerepository.NewRepository(db)

	generator := inventoryservice.NewService(inventoryservice.Params{
		Log:         log,
		GenID:       node,
		Seq:         seq,
		ProductRepo: productRepo,
	})
	orderSvc := orderservice.NewService(orderservice.Params{
		Cfg:        cfg,
		Log:        log,
		DB:         db,
		GenID:      node,
		Repo:       orderRepo,
		Seq:        seq,
		Calc:       tax.NewCalculator(),
		References: refRepo,
		Products:   productRepo,
		Receipts:   generator,
	})
	paymentSvc := paymentservice.NewService(paymentservice.Params{
		Cfg:    cfg,
		Log:    log,
		DB:     db,
		GenID:  node,
		Repo:   paymentrepository.Provide(),
		Orders: orderRepo,
		Seq:    seq,
	})

	engine := NewEngine(cfg, obsmetrics.New())
	NewServer(ServerParams{
		Gin:        engine,
		Cfg:        cfg,
		Log:        log,
		DB:         db,
		GenID:      node,
		OrderSvc:   orderSvc,
		PaymentSvc: paymentSvc,
		AuthRepo:   authrepository.NewRepository(db),
		Refrepo:    refRepo,
		Products:   productRepo,
		PDF:        pdf.New(),
	})

	env.engine = engine
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createOrderBody() gin.H {
	return gin.H{
		"supplier_id":   e.supplier.ID.String(),
		"issue_date":    "2026-03-10",
		"purchase_type": "cash",
		"priority":      "medium",
		"currency":      "PEN",
		"tax_regime":    "taxed",
		"lines": []gin.H{
			{"product_id": e.products[0].ID.String(), "quantity": "3", "unit_price": "20"},
			{"product_id": e.products[1].ID.String(), "quantity": "2", "unit_price": "15"},
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAuthRequired(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/orders", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "unauthenticated", env.Error)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	rec = httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/orders", e.createOrderBody(), true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var created orderdomain.OrderWithLines
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "OC-2026-0001", created.OrderNumber)
	assert.True(t, created.Total.Equal(decimal.NewFromFloat(106.20)), "total = %s", created.Total)

	rec = e.do(t, http.MethodGet, "/orders/"+created.ID.String(), nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPatch, "/orders/"+created.ID.String()+"/status",
		gin.H{"status": "received", "actual_delivery_date": "2026-03-15"}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env = decodeEnvelope(t, rec)
	var received orderdomain.PurchaseOrder
	require.NoError(t, json.Unmarshal(env.Data, &received))
	assert.Equal(t, orderdomain.StatusReceived, received.Status)
	assert.NotNil(t, received.InventoryReceiptID)

	rec = e.do(t, http.MethodPatch, "/orders/"+created.ID.String()+"/status", gin.H{"status": "waiting"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_status_transition", decodeEnvelope(t, rec).Error)

	rec = e.do(t, http.MethodPatch, "/orders/"+created.ID.String()+"/priority", gin.H{"priority": "urgent"}, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/orders?status=received", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/orders/"+e.node.Generate().String(), nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodGet, "/orders/not-a-number", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentEndpoints(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/orders", e.createOrderBody(), true)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created orderdomain.OrderWithLines
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))

	paymentsPath := fmt.Sprintf("/orders/%s/payments", created.ID)

	rec = e.do(t, http.MethodPost, paymentsPath, gin.H{"amount": "50.00", "method": "transfer"}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result paymentdomain.RegisterResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
	assert.Equal(t, "OC-2026-0001-P 01", result.Payment.PaymentNumber)
	assert.Equal(t, orderdomain.PaymentStatusPartial, result.Balance.PaymentStatus)

	rec = e.do(t, http.MethodPost, paymentsPath, gin.H{"amount": "100.00", "method": "transfer"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error, "over_payment")

	rec = e.do(t, http.MethodGet, paymentsPath, nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, paymentsPath+"/summary", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary paymentdomain.Summary
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &summary))
	assert.True(t, summary.PaidAmount.Equal(decimal.NewFromInt(50)))
	assert.EqualValues(t, 1, summary.PaymentCount)

	rec = e.do(t, http.MethodDelete, paymentsPath+"/"+result.Payment.ID.String(), nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var balance paymentdomain.Balance
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &balance))
	assert.True(t, balance.PaidAmount.IsZero())
	assert.Equal(t, orderdomain.PaymentStatusPending, balance.PaymentStatus)

	rec = e.do(t, http.MethodDelete, paymentsPath+"/"+result.Payment.ID.String(), nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderPDFDownload(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/orders", e.createOrderBody(), true)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created orderdomain.OrderWithLines
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))

	rec = e.do(t, http.MethodGet, "/orders/"+created.ID.String()+"/pdf", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")), "body is not a pdf")
}
