package service

import "errors"

// Error kinds surfaced by the engine. All are recoverable at the caller;
// handlers map them to HTTP statuses.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrAlreadyProcessed  = errors.New("record already processed")
	ErrOverReturn        = errors.New("return quantity exceeds sold quantity")
	ErrCustomerRequired  = errors.New("credit or backorder sales require a customer")
)
