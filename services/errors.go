package services

import "fmt"

// NotFoundError covers a missing order or menu item.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

// UnavailableError names a menu item that is out of stock at order time.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s is out of stock", e.Name)
}

// ValidationError covers missing or malformed request fields, including
// illegal status transitions in strict mode.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError is returned when an order id collides even after a retry.
type ConflictError struct {
	OrderID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("order id %s already exists", e.OrderID)
}
