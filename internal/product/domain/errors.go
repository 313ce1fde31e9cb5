package domain

import "errors"

var ErrNotFound = errors.New("product_not_found")
