/*
Package pos implements the order and session state engine for a single-register
counter EPOS: product catalog, current and held orders, the sales ledger with
X/Z reporting, password-gated role access, and the staff roster.

KEY CONCEPTS IN THIS FILE (types.go):
  - Product/Category: the catalog entities, bucketed by a fixed category set
  - LineItem/Order: the cart model; totals are always derived, never stored drift
  - Transaction: an immutable ledger entry created by a successful payment
  - Role/AuthState: the access-control session state

DESIGN PRINCIPLES:
  1. Precision: all money uses decimal.Decimal - no float accumulation drift
  2. Derived totals: Order.Total is recomputed from lines on every mutation
  3. Immutability: Transactions are never modified or deleted once recorded
  4. Collision-free ids: uuids for orders/lines/transactions, monotonic
     counters for products and staff (never wall-clock derived)

SEE ALSO:
  - order.go: line mutation and the current/held/completed state machine
  - ledger.go: sales accumulation and the X/Z report protocol
  - session.go: the controller composing everything behind one API
*/
package pos

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATEGORIES
// =============================================================================

// Category is one of the fixed menu categories.
type Category string

const (
	CategoryPizzas      Category = "pizzas"
	CategoryTraditional Category = "traditional"
	CategoryChippy      Category = "chippy"
	CategorySpecials    Category = "specials"
	CategoryGlutenFree  Category = "gluten-free"
	CategoryKids        Category = "kids"
	CategorySides       Category = "sides"
	CategoryDrinks      Category = "drinks"
)

// Categories lists every valid category in menu order.
var Categories = []Category{
	CategoryPizzas,
	CategoryTraditional,
	CategoryChippy,
	CategorySpecials,
	CategoryGlutenFree,
	CategoryKids,
	CategorySides,
	CategoryDrinks,
}

// Valid reports whether c is a member of the fixed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// =============================================================================
// CATALOG ENTITIES
// =============================================================================

// Product is a catalog entry. ID is immutable once assigned by the catalog.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    Category        `json:"category"`
}

// =============================================================================
// ORDER ENTITIES
// =============================================================================

// OrderStatus is the order lifecycle state.
// Transitions: current -> held -> current -> completed.
type OrderStatus string

const (
	StatusCurrent   OrderStatus = "current"
	StatusHeld      OrderStatus = "held"
	StatusCompleted OrderStatus = "completed"
)

// LineItem is one product entry within an order. Quantity is always >= 1
// while the line exists; a quantity collapsing to zero removes the line.
type LineItem struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Total returns price x quantity for this line.
func (li LineItem) Total() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is one customer interaction's cart. Total is derived from Lines and
// recomputed on every mutation; it is never independently settable.
type Order struct {
	ID        string          `json:"id"`
	Lines     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"timestamp"`
	Status    OrderStatus     `json:"status"`
	Method    PaymentMethod   `json:"paymentMethod,omitempty"`
}

// =============================================================================
// PAYMENT ENTITIES
// =============================================================================

// PaymentMethod is how a completed order was settled.
type PaymentMethod string

const (
	PayCash PaymentMethod = "cash"
	PayCard PaymentMethod = "card"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	return m == PayCash || m == PayCard
}

// Transaction is an immutable record of one successful payment. Amount equals
// the paid order's total exactly; Lines is a deep snapshot taken at pay time.
type Transaction struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"paymentMethod"`
	Timestamp time.Time       `json:"timestamp"`
	Lines     []LineItem      `json:"items"`
}

// =============================================================================
// REPORTS
// =============================================================================

// XReport is the non-destructive sales snapshot.
type XReport struct {
	DailySales       decimal.Decimal `json:"dailySales"`
	TransactionCount int             `json:"transactionCount"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

// ZReport is the destructive end-of-day snapshot. The values reflect the
// totals as they stood immediately before the reset.
type ZReport struct {
	CumulativeSales  decimal.Decimal `json:"cumulativeSales"`
	TransactionCount int             `json:"transactionCount"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

// MethodBreakdown is a derived read-only view of the transaction sequence
// split by payment method. Nothing here is separately stored.
type MethodBreakdown struct {
	CashTotal decimal.Decimal `json:"cashTotal"`
	CardTotal decimal.Decimal `json:"cardTotal"`
	CashCount int             `json:"cashCount"`
	CardCount int             `json:"cardCount"`
}

// =============================================================================
// STAFF AND ACCESS
// =============================================================================

// Staff is a roster entry. Role is free text; it carries no access semantics.
type Staff struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Role is the access level granted after password verification.
type Role string

const (
	RoleNone  Role = ""
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// Valid reports whether r names a real access level.
func (r Role) Valid() bool {
	return r == RoleStaff || r == RoleAdmin
}

// AuthState is the session authentication state.
// INVARIANT: Role is RoleNone iff Authenticated is false.
type AuthState struct {
	Authenticated bool `json:"isAuthenticated"`
	Role          Role `json:"role"`
}
