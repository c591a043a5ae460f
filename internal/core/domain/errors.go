package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrValidation      = errors.New("invalid input")
	ErrEmptyCart       = errors.New("cart is empty")
)
