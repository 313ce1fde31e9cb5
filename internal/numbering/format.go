package numbering

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Human-readable identifier formats. These are DOCUMENT-CONSTANTS:
// issued numbers are printed on purchase orders, receipts and payment
// vouchers — do not change the shape of an already-issued series.
const (
	orderPrefix   = "OC"
	receiptPrefix = "RI"
)

// FormatOrderNumber formats a purchase order number, e.g. OC-2026-0042.
func FormatOrderNumber(year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", orderPrefix, year, seq)
}

// FormatReceiptNumber formats an inventory receipt number, e.g. RI-2026-0042.
func FormatReceiptNumber(year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", receiptPrefix, year, seq)
}

// FormatPaymentNumber formats a per-order payment number,
// e.g. OC-2026-0042-P 01.
func FormatPaymentNumber(orderNumber string, seq int64) string {
	return fmt.Sprintf("%s-P %02d", orderNumber, seq)
}

// OrderScope returns the sequence scope for order numbers; the series
// restarts every year.
func OrderScope(year int) string {
	return fmt.Sprintf("purchase_order:%d", year)
}

// ReceiptScope returns the sequence scope for inventory receipt numbers.
func ReceiptScope(year int) string {
	return fmt.Sprintf("inventory_receipt:%d", year)
}

// PaymentScope returns the sequence scope for payments of one order.
func PaymentScope(orderID snowflake.ID) string {
	return fmt.Sprintf("payment:%s", orderID)
}
