package domain

import "errors"

var (
	ErrNoLines         = errors.New("receipt_without_lines")
	ErrInvalidEmployee = errors.New("receipt_employee_required")
)
