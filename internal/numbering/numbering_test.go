package numbering_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/indpack-sist/spi-backend/internal/numbering"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&numbering.NumberSequence{}))
	return db
}

func TestNextStartsAtOneAndIncrements(t *testing.T) {
	db := setupDB(t)
	seq := numbering.NewSequence(zap.NewNop())
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := seq.Next(ctx, db, "purchase_order:2026")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestNextScopesAreIndependent(t *testing.T) {
	db := setupDB(t)
	seq := numbering.NewSequence(zap.NewNop())
	ctx := context.Background()

	first, err := seq.Next(ctx, db, "purchase_order:2026")
	require.NoError(t, err)
	require.Equal(t, int64(1), first)

	_, err = seq.Next(ctx, db, "purchase_order:2026")
	require.NoError(t, err)

	other, err := seq.Next(ctx, db, "purchase_order:2027")
	require.NoError(t, err)
	require.Equal(t, int64(1), other)
}

func TestNextRejectsEmptyScope(t *testing.T) {
	db := setupDB(t)
	seq := numbering.NewSequence(zap.NewNop())

	_, err := seq.Next(context.Background(), db, "")
	require.Error(t, err)
}

func TestFormats(t *testing.T) {
	require.Equal(t, "OC-2026-0042", numbering.FormatOrderNumber(2026, 42))
	require.Equal(t, "OC-2026-1042", numbering.FormatOrderNumber(2026, 1042))
	require.Equal(t, "RI-2026-0007", numbering.FormatReceiptNumber(2026, 7))
	require.Equal(t, "OC-2026-0042-P 03", numbering.FormatPaymentNumber("OC-2026-0042", 3))
}

func TestPaymentScopePerOrder(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	a := node.Generate()
	b := node.Generate()
	require.NotEqual(t, numbering.PaymentScope(a), numbering.PaymentScope(b))
}
