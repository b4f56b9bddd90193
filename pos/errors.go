/*
errors.go - Centralized error types for the POS engine

All outcomes here are ordinary, expected results of user actions - a wrong
password, an empty cart, a stale id. Nothing in this package is process-fatal.

ERROR CATEGORIES:
  1. Order errors    - invalid order operations (empty cart, stale held id)
  2. Catalog errors  - invalid product input
  3. Password errors - password-change validation outcomes

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, pos.ErrEmptyOrder) { ... }

SEE ALSO:
  - order.go, ledger.go, access.go: producers of these errors
  - api: maps these onto HTTP statuses via IsClientError/IsNotFound
*/
package pos

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmptyOrder is returned when holding or paying an order with no lines.
	ErrEmptyOrder = errors.New("order has no lines")

	// ErrNonPositiveTotal is returned when paying an order whose total is <= 0.
	ErrNonPositiveTotal = errors.New("order total is not positive")

	// ErrOrderNotFound is returned when recalling a held order id that does
	// not exist in the held set.
	ErrOrderNotFound = errors.New("held order not found")

	// ErrDuplicateHold is returned when an order id is already in the held set.
	ErrDuplicateHold = errors.New("order already held")

	// ErrProductNotFound is returned when an order operation references a
	// product id absent from the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidCategory is returned for a category outside the fixed set.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidPaymentMethod is returned for a method other than cash/card.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrUnknownRole is returned for a role other than staff/admin.
	ErrUnknownRole = errors.New("unknown role")

	// Password-change validation outcomes.
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ErrValidation is the root of all input validation failures.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a rejected input field. No state changes when one
// of these is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether err indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrProductNotFound)
}

// IsClientError reports whether err is caused by invalid caller input rather
// than an engine fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrEmptyOrder) ||
		errors.Is(err, ErrNonPositiveTotal) ||
		errors.Is(err, ErrDuplicateHold) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidPaymentMethod) ||
		errors.Is(err, ErrUnknownRole) ||
		errors.Is(err, ErrWrongPassword) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrPasswordTooShort)
}
