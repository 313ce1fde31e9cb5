package domain

import "errors"

var (
	ErrNotFound          = errors.New("purchase_order_not_found")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrNotEditable       = errors.New("order_not_editable")
	ErrInvalidPriority   = errors.New("invalid_priority")
	ErrInvalidType       = errors.New("invalid_purchase_type")
	ErrSupplierRequired  = errors.New("supplier_required")
	ErrEmployeeRequired  = errors.New("employee_required")
	ErrNoLines           = errors.New("order_without_lines")
	ErrInvalidCurrency   = errors.New("invalid_currency")
	ErrInvalidCredit     = errors.New("invalid_credit_days")
	ErrPaidExceedsTotal  = errors.New("paid_amount_exceeds_total")

	// ErrConflict surfaces a contended order row lock; the request can
	// be retried.
	ErrConflict = errors.New("order_conflict")
)
