/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON shapes for the browser UI. Money crosses this boundary as a string
  with exactly two decimals; inside the engine it stays decimal. DTOs are
  pure data carriers - validation happens in handlers.

NAMING CONVENTION:
  - *DTO: response types returned to the UI
  - *Request: request body types from the UI

SEE ALSO:
  - handlers.go: the only producer/consumer of these types
*/
package api

import (
	"github.com/fusioneats/pos-engine/pos"
)

// =============================================================================
// CATALOG
// =============================================================================

// ProductDTO represents a catalog product in API responses.
type ProductDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

// ProductRequest is the create/update body for a product.
type ProductRequest struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

// =============================================================================
// ORDERS
// =============================================================================

// LineDTO is one line of an order.
type LineDTO struct {
	ID        string     `json:"id"`
	Product   ProductDTO `json:"product"`
	Quantity  int        `json:"quantity"`
	LineTotal string     `json:"lineTotal"`
}

// OrderDTO is the current or a held order.
type OrderDTO struct {
	ID        string    `json:"id"`
	Lines     []LineDTO `json:"items"`
	Total     string    `json:"total"`
	Status    string    `json:"status"`
	CreatedAt string    `json:"timestamp"`
}

// AddLineRequest adds one unit of a product to the current order.
type AddLineRequest struct {
	ProductID int64 `json:"product_id"`
}

// SetQuantityRequest sets a line's quantity; <= 0 removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// =============================================================================
// PAYMENTS AND REPORTS
// =============================================================================

// PaymentRequest settles the current order.
type PaymentRequest struct {
	Method string `json:"method"`
}

// TransactionDTO is a recorded payment.
type TransactionDTO struct {
	ID        string    `json:"id"`
	Amount    string    `json:"amount"`
	Method    string    `json:"paymentMethod"`
	Timestamp string    `json:"timestamp"`
	Lines     []LineDTO `json:"items"`
}

// XReportDTO is the non-destructive sales snapshot.
type XReportDTO struct {
	DailySales       string `json:"dailySales"`
	TransactionCount int    `json:"transactionCount"`
	GeneratedAt      string `json:"generatedAt"`
}

// ZReportDTO is the destructive end-of-day snapshot (pre-reset values).
type ZReportDTO struct {
	CumulativeSales  string `json:"cumulativeSales"`
	TransactionCount int    `json:"transactionCount"`
	GeneratedAt      string `json:"generatedAt"`
}

// BreakdownDTO is the per-payment-method view.
type BreakdownDTO struct {
	CashTotal string `json:"cashTotal"`
	CardTotal string `json:"cardTotal"`
	CashCount int    `json:"cashCount"`
	CardCount int    `json:"cardCount"`
}

// =============================================================================
// STAFF AND ACCESS
// =============================================================================

// StaffDTO is a roster member.
type StaffDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// StaffRequest adds a roster member.
type StaffRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// LoginRequest carries the role password.
type LoginRequest struct {
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResponse returns the bearer token on success.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// ChangePasswordRequest rotates one role's password.
type ChangePasswordRequest struct {
	Role            string `json:"role"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// CategoryRequest moves the active category cursor.
type CategoryRequest struct {
	Category string `json:"category"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toProductDTO(p pos.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Description: p.Description,
		Image:       p.Image,
		Category:    string(p.Category),
	}
}

func toLineDTOs(lines []pos.LineItem) []LineDTO {
	out := make([]LineDTO, len(lines))
	for i, line := range lines {
		out[i] = LineDTO{
			ID:        line.ID,
			Product:   toProductDTO(line.Product),
			Quantity:  line.Quantity,
			LineTotal: line.Total().StringFixed(2),
		}
	}
	return out
}

func toOrderDTO(o pos.Order) OrderDTO {
	return OrderDTO{
		ID:        o.ID,
		Lines:     toLineDTOs(o.Lines),
		Total:     o.Total.StringFixed(2),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt.Format(timeFormat),
	}
}

func toTransactionDTO(tx pos.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:        tx.ID,
		Amount:    tx.Amount.StringFixed(2),
		Method:    string(tx.Method),
		Timestamp: tx.Timestamp.Format(timeFormat),
		Lines:     toLineDTOs(tx.Lines),
	}
}
