package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidProduct       = errors.New("invalid product")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidOption        = errors.New("selected option not offered by product")
	ErrOutOfStock           = errors.New("product out of stock")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidTransition    = errors.New("order status transition not allowed")
	ErrPaymentFailed        = errors.New("payment failed")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrUserInactive         = errors.New("user is inactive")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrInvalidRole          = errors.New("unknown role")
	ErrAlreadyExists        = errors.New("already exists")
)

func invalidProduct(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidProduct, msg)
}
