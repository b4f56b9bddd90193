/*
handlers.go - HTTP handlers for the counter POS

PURPOSE:
  Re-expresses the register's screens as JSON endpoints consumed by the
  browser UI. Handlers parse and validate input, delegate to the pos.Session,
  and serialize the result. All invariants live in the pos package.

ERROR HANDLING:
  Engine outcomes map onto HTTP statuses:
  - validation / bad input           400
  - missing entity (held order, ...) 404
  - empty order, non-positive total  409
  - auth failures                    401/403
  A wrong login password is a 401 with no error body drama - it is an
  expected outcome, not a fault.

CONCURRENCY:
  The session is single-threaded by design (one register, one operator). A
  session-wide mutex serializes every operation so the HTTP transport cannot
  interleave mutations.

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: router and middleware wiring
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fusioneats/pos-engine/pos"
)

const timeFormat = time.RFC3339

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	mu      sync.Mutex
	session *pos.Session

	secret   []byte
	tokenTTL time.Duration
	log      logrus.FieldLogger
}

// Config carries handler settings.
type Config struct {
	Secret   []byte
	TokenTTL time.Duration
	Logger   logrus.FieldLogger
}

// NewHandler creates a handler around an already-initialized session.
func NewHandler(session *pos.Session, cfg Config) *Handler {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &Handler{
		session:  session,
		secret:   cfg.Secret,
		tokenTTL: cfg.TokenTTL,
		log:      cfg.Logger,
	}
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login verifies the role password and issues a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	role := pos.Role(req.Role)
	if !role.Valid() {
		writeError(w, http.StatusBadRequest, "role must be staff or admin", nil)
		return
	}

	h.mu.Lock()
	ok := h.session.Login(req.Password, role)
	h.mu.Unlock()
	if !ok {
		writeError(w, http.StatusUnauthorized, "wrong password", nil)
		return
	}

	token, err := h.issueToken(role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Role: string(role)})
}

// Logout clears the auth state and discards the current order.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.session.Logout(r.Context())
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

// GetCatalog returns the full category-to-products mapping.
func (h *Handler) GetCatalog(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	buckets := h.session.Products()
	h.mu.Unlock()

	out := make(map[string][]ProductDTO, len(buckets))
	for category, products := range buckets {
		dtos := make([]ProductDTO, len(products))
		for i, p := range products {
			dtos[i] = toProductDTO(p)
		}
		out[string(category)] = dtos
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateProduct adds a catalog product.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.parseProduct(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	added, err := h.session.AddProduct(r.Context(), product)
	h.mu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductDTO(added))
}

// UpdateProduct replaces a product's fields; category moves are supported.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	product, ok := h.parseProduct(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	err := h.session.UpdateProduct(r.Context(), id, product)
	h.mu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct removes a product. Unknown ids are a no-op.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.mu.Lock()
	h.session.RemoveProduct(r.Context(), id)
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseProduct(w http.ResponseWriter, r *http.Request) (pos.Product, bool) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return pos.Product{}, false
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed price", err)
		return pos.Product{}, false
	}
	return pos.Product{
		Name:        req.Name,
		Price:       price,
		Description: req.Description,
		Image:       req.Image,
		Category:    pos.Category(req.Category),
	}, true
}

// =============================================================================
// ORDER HANDLERS
// =============================================================================

// GetOrder returns the current order.
func (h *Handler) GetOrder(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	order := h.session.CurrentOrder()
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// AddLine adds one unit of a product to the current order.
func (h *Handler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	h.mu.Lock()
	order, err := h.session.AddToOrder(r.Context(), req.ProductID)
	h.mu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// SetLineQuantity adjusts a line's quantity; <= 0 removes the line.
func (h *Handler) SetLineQuantity(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineID")
	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	h.mu.Lock()
	order := h.session.SetLineQuantity(r.Context(), lineID, req.Quantity)
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// RemoveLine removes a line from the current order. Idempotent.
func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineID")

	h.mu.Lock()
	order := h.session.RemoveLine(r.Context(), lineID)
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// ClearOrder abandons the current order.
func (h *Handler) ClearOrder(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	order := h.session.ClearOrder(r.Context())
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// HoldOrder sets the current order aside.
func (h *Handler) HoldOrder(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	err := h.session.Hold(r.Context())
	order := h.session.CurrentOrder()
	h.mu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// ListHeldOrders returns the held set in insertion order.
func (h *Handler) ListHeldOrders(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	held := h.session.HeldOrders()
	h.mu.Unlock()

	dtos := make([]OrderDTO, len(held))
	for i, o := range held {
		dtos[i] = toOrderDTO(o)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RecallOrder brings a held order back as the current order.
func (h *Handler) RecallOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.mu.Lock()
	err := h.session.Recall(r.Context(), id)
	order := h.session.CurrentOrder()
	h.mu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// =============================================================================
// PAYMENT HANDLERS
// =============================================================================

// Pay settles the current order and returns the recorded transaction.
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	h.mu.Lock()
	tx, err := h.session.Pay(r.Context(), pos.PaymentMethod(req.Method))
	h.mu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// XReport returns the non-destructive sales snapshot.
func (h *Handler) XReport(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	report := h.session.XReport()
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, XReportDTO{
		DailySales:       report.DailySales.StringFixed(2),
		TransactionCount: report.TransactionCount,
		GeneratedAt:      report.GeneratedAt.Format(timeFormat),
	})
}

// ZReport returns the pre-reset totals and resets the ledger.
func (h *Handler) ZReport(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	report := h.session.ZReport(r.Context())
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, ZReportDTO{
		CumulativeSales:  report.CumulativeSales.StringFixed(2),
		TransactionCount: report.TransactionCount,
		GeneratedAt:      report.GeneratedAt.Format(timeFormat),
	})
}

// Breakdown returns the cash/card split of the transaction sequence.
func (h *Handler) Breakdown(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	b := h.session.Breakdown()
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, BreakdownDTO{
		CashTotal: b.CashTotal.StringFixed(2),
		CardTotal: b.CardTotal.StringFixed(2),
		CashCount: b.CashCount,
		CardCount: b.CardCount,
	})
}

// =============================================================================
// STAFF HANDLERS
// =============================================================================

// ListStaff returns the roster.
func (h *Handler) ListStaff(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	members := h.session.StaffList()
	h.mu.Unlock()

	dtos := make([]StaffDTO, len(members))
	for i, m := range members {
		dtos[i] = StaffDTO(m)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateStaff adds a roster member.
func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req StaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	h.mu.Lock()
	member, err := h.session.AddStaff(r.Context(), req.Name, req.Role)
	h.mu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, StaffDTO(member))
}

// DeleteStaff removes a roster member. Unknown ids are a no-op.
func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.mu.Lock()
	h.session.RemoveStaff(r.Context(), id)
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// ChangePassword rotates one role's password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	h.mu.Lock()
	err := h.session.ChangePassword(r.Context(), pos.Role(req.Role),
		req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	h.mu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCategory returns the active category cursor.
func (h *Handler) GetCategory(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	category := h.session.ActiveCategory()
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, CategoryRequest{Category: string(category)})
}

// SetCategory moves the active category cursor.
func (h *Handler) SetCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	h.mu.Lock()
	err := h.session.SetActiveCategory(pos.Category(req.Category))
	h.mu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}

// writeEngineError maps engine outcomes onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case pos.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not found", err)
	case pos.IsClientError(err):
		status := http.StatusBadRequest
		if errors.Is(err, pos.ErrEmptyOrder) || errors.Is(err, pos.ErrNonPositiveTotal) {
			status = http.StatusConflict
		}
		writeError(w, status, "rejected", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
