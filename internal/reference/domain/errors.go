package domain

import "errors"

var (
	ErrSupplierNotFound    = errors.New("supplier_not_found")
	ErrBankAccountNotFound = errors.New("bank_account_not_found")
)
