package tax

import "errors"

var (
	ErrInvalidRegime     = errors.New("invalid_tax_regime")
	ErrInvalidRate       = errors.New("invalid_tax_rate")
	ErrNonPositiveQty    = errors.New("non_positive_quantity")
	ErrNegativeUnitPrice = errors.New("negative_unit_price")
	ErrInvalidDiscount   = errors.New("invalid_discount_percent")
	ErrNoLines           = errors.New("no_lines")
)
