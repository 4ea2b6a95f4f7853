package domain

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden access")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidID          = errors.New("invalid id")
	ErrCartItemNotFound   = errors.New("cart item not found")

	ErrInvalidPrice      = errors.New("price must be greater than zero")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrPriceMismatch     = errors.New("price does not match cart total")
	ErrPaymentProcessor  = errors.New("payment processor error")
	ErrDuplicateCheckout = errors.New("checkout already submitted")
)
