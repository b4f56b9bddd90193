/*
order.go - Line-item mutation and the held-order set

PURPOSE:
  The current order is the cart being assembled at the counter. Lines are
  added, adjusted, and removed here; the order total is recomputed from the
  lines on every mutation so it can never drift.

CRITICAL INVARIANTS:
  1. Total == sum(line.Product.Price * line.Quantity), always, in decimal
  2. Quantity <= 0 removes the line - a zero-quantity line is never stored
  3. Removing an absent line is a no-op (idempotent removal)
  4. The held set preserves insertion order and rejects duplicate ids

STATE MACHINE (per order):
  current -> held      (Hold; a fresh empty current order replaces it)
  held    -> current   (recall from the held set)
  current -> completed (payment; see ledger.go)

SEE ALSO:
  - session.go: orchestrates hold/recall/pay around the current order
  - ledger.go: where completed orders land as Transactions
*/
package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// ORDER CONSTRUCTION
// =============================================================================

// NewOrder returns a fresh empty order with status current.
func NewOrder() *Order {
	return &Order{
		ID:        uuid.NewString(),
		Lines:     nil,
		Total:     decimal.Zero,
		CreatedAt: time.Now(),
		Status:    StatusCurrent,
	}
}

// Clone returns a deep copy of the order. Line snapshots stored in the ledger
// must not alias the live cart.
func (o *Order) Clone() *Order {
	dup := *o
	dup.Lines = cloneLines(o.Lines)
	return &dup
}

func cloneLines(lines []LineItem) []LineItem {
	if lines == nil {
		return nil
	}
	dup := make([]LineItem, len(lines))
	copy(dup, lines)
	return dup
}

// =============================================================================
// LINE MUTATION
// =============================================================================

// AddLine adds one unit of product to the order. If a line for the same
// product id already exists its quantity is incremented; otherwise a new line
// with quantity 1 is appended. The total is recomputed.
func (o *Order) AddLine(product Product) {
	for i := range o.Lines {
		if o.Lines[i].Product.ID == product.ID {
			o.Lines[i].Quantity++
			o.recompute()
			return
		}
	}
	o.Lines = append(o.Lines, LineItem{
		ID:       uuid.NewString(),
		Product:  product,
		Quantity: 1,
	})
	o.recompute()
}

// SetLineQuantity sets a line's quantity. A quantity <= 0 removes the line.
// Unknown line ids are a no-op.
func (o *Order) SetLineQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		o.RemoveLine(lineID)
		return
	}
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			o.Lines[i].Quantity = quantity
			o.recompute()
			return
		}
	}
}

// RemoveLine removes a line if present and recomputes the total. Removing an
// absent line is a no-op, so a double removal is safe.
func (o *Order) RemoveLine(lineID string) {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
			o.recompute()
			return
		}
	}
}

// Empty reports whether the order has no lines.
func (o *Order) Empty() bool { return len(o.Lines) == 0 }

// recompute rebuilds Total from the lines. This is the only writer of Total.
func (o *Order) recompute() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Total())
	}
	o.Total = total
}

// =============================================================================
// HELD ORDER SET
// =============================================================================

// HeldOrderSet holds orders set aside before payment, in insertion order.
type HeldOrderSet struct {
	orders []*Order
}

// NewHeldOrderSet builds a set from previously persisted orders.
func NewHeldOrderSet(orders []*Order) *HeldOrderSet {
	return &HeldOrderSet{orders: orders}
}

// Append adds an order to the back of the set. Duplicate ids are rejected.
func (s *HeldOrderSet) Append(o *Order) error {
	for _, held := range s.orders {
		if held.ID == o.ID {
			return ErrDuplicateHold
		}
	}
	s.orders = append(s.orders, o)
	return nil
}

// Take removes and returns the held order with the given id.
func (s *HeldOrderSet) Take(id string) (*Order, error) {
	for i, held := range s.orders {
		if held.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return held, nil
		}
	}
	return nil, ErrOrderNotFound
}

// List returns the held orders in insertion order. The slice is a copy; the
// orders themselves are shared.
func (s *HeldOrderSet) List() []*Order {
	dup := make([]*Order, len(s.orders))
	copy(dup, s.orders)
	return dup
}

// Len returns the number of held orders.
func (s *HeldOrderSet) Len() int { return len(s.orders) }
