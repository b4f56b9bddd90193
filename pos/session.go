/*
session.go - The session controller

PURPOSE:
  Composes the catalog, order engine, sales ledger, access gate, and roster
  into one coherent API surface. The session owns all mutable state for one
  register session; every mutating operation updates in-memory state first,
  then persists the affected snapshot(s) to the Store.

PERSISTENCE DISCIPLINE:
  In-memory state is the source of truth for the session. A failed save is
  logged and NOT rolled back - the worst case is a session that did not make
  it to storage, never a corrupted one.

SEQUENCING RULES (the part that must never go wrong):
  - Holding replaces the current order with a fresh empty one
  - Recalling removes the order from the held set; the fate of a non-empty
    current order is governed by the DiscardPolicy
  - Paying appends exactly one transaction, moves both sales counters by the
    order total, and resets the current order - one operation, no partials
  - Logout discards the current order; held orders and the ledger survive

CONCURRENCY:
  The session is deliberately single-threaded: one register, one operator,
  strictly request/response. Callers that expose it to concurrent transports
  serialize access themselves (see api.Handler).
*/
package pos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// OPTIONS
// =============================================================================

// DiscardPolicy decides what happens to a non-empty current order when a held
// order is recalled over it.
type DiscardPolicy string

const (
	// DiscardDrop drops the current order, matching the original register
	// behavior. This is documented, intentional data loss - the UI is
	// expected to warn before recalling over a non-empty cart.
	DiscardDrop DiscardPolicy = "drop"

	// DiscardAutoHold holds the current order before the recall replaces it.
	DiscardAutoHold DiscardPolicy = "auto-hold"
)

// Options configures a Session.
type Options struct {
	// Discard selects the recall discard policy. Zero value means DiscardDrop.
	Discard DiscardPolicy

	// Logger receives persistence warnings. Defaults to the standard logger.
	Logger logrus.FieldLogger
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the single coherent API surface over all POS state.
type Session struct {
	store   Store
	log     logrus.FieldLogger
	discard DiscardPolicy

	catalog        *Catalog
	current        *Order
	held           *HeldOrderSet
	ledger         *Ledger
	roster         *Roster
	creds          Credentials
	auth           AuthState
	activeCategory Category
}

// NewSession builds a session from persisted snapshots, seeding built-in
// defaults for any key that is missing or unreadable. Load failures are
// logged and treated as missing; construction itself never fails.
func NewSession(ctx context.Context, store Store, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Discard == "" {
		opts.Discard = DiscardDrop
	}

	s := &Session{
		store:          store,
		log:            opts.Logger,
		discard:        opts.Discard,
		activeCategory: CategoryPizzas,
	}

	s.loadCatalog(ctx)
	s.loadHeldOrders(ctx)
	s.loadRoster(ctx)
	s.loadLedger(ctx)
	s.loadCredentials(ctx)
	s.loadCurrentOrder(ctx)

	return s
}

func (s *Session) loadCatalog(ctx context.Context) {
	var buckets map[Category][]Product
	if s.loadKey(ctx, KeyProducts, &buckets) {
		s.catalog = NewCatalogFromBuckets(buckets)
		return
	}
	s.catalog = DefaultCatalog()
	s.persist(ctx, KeyProducts, s.catalog.List())
}

func (s *Session) loadHeldOrders(ctx context.Context) {
	var held []*Order
	if s.loadKey(ctx, KeyHeldOrders, &held) {
		s.held = NewHeldOrderSet(held)
		return
	}
	s.held = NewHeldOrderSet(nil)
}

func (s *Session) loadRoster(ctx context.Context) {
	var members []Staff
	s.loadKey(ctx, KeyStaff, &members)
	s.roster = NewRoster(members)
}

func (s *Session) loadLedger(ctx context.Context) {
	ledger := NewLedger()
	if s.loadKey(ctx, KeySales, ledger) {
		s.ledger = ledger
		return
	}
	s.ledger = NewLedger()
	s.persist(ctx, KeySales, s.ledger)
}

func (s *Session) loadCredentials(ctx context.Context) {
	var creds Credentials
	if s.loadKey(ctx, KeySettings, &creds) && creds.Staff != "" && creds.Admin != "" {
		s.creds = creds
		return
	}
	s.creds = DefaultCredentials()
	s.persist(ctx, KeySettings, s.creds)
}

func (s *Session) loadCurrentOrder(ctx context.Context) {
	var saved Order
	if s.loadKey(ctx, KeyCurrentOrder, &saved) && saved.ID != "" {
		saved.Status = StatusCurrent
		s.current = &saved
		return
	}
	s.resetCurrent(ctx)
}

// loadKey wraps Store.Load, downgrading store failures to a logged warning so
// a broken store degrades to defaults instead of refusing to start.
func (s *Session) loadKey(ctx context.Context, key string, out any) bool {
	ok, err := s.store.Load(ctx, key, out)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("snapshot load failed, using defaults")
		return false
	}
	return ok
}

// persist saves a snapshot. Failures are logged; in-memory state stays
// authoritative for the session.
func (s *Session) persist(ctx context.Context, key string, value any) {
	if err := s.store.Save(ctx, key, value); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("snapshot save failed, in-memory state remains authoritative")
	}
}

// resetCurrent replaces the current order with a fresh empty one and persists it.
func (s *Session) resetCurrent(ctx context.Context) {
	s.current = NewOrder()
	s.persist(ctx, KeyCurrentOrder, s.current)
}

// =============================================================================
// CATEGORY CURSOR
// =============================================================================

// ActiveCategory returns the current catalog browsing cursor.
func (s *Session) ActiveCategory() Category { return s.activeCategory }

// SetActiveCategory moves the browsing cursor. Session-local; not persisted.
func (s *Session) SetActiveCategory(c Category) error {
	if !c.Valid() {
		return ErrInvalidCategory
	}
	s.activeCategory = c
	return nil
}

// =============================================================================
// CATALOG OPERATIONS
// =============================================================================

// Products returns the catalog grouped by category.
func (s *Session) Products() map[Category][]Product { return s.catalog.List() }

// AddProduct adds a product to the catalog and persists it.
func (s *Session) AddProduct(ctx context.Context, p Product) (Product, error) {
	added, err := s.catalog.Add(p)
	if err != nil {
		return Product{}, err
	}
	s.persist(ctx, KeyProducts, s.catalog.List())
	return added, nil
}

// UpdateProduct replaces a product's fields, moving it between category
// buckets when the category changed. Unknown ids are a no-op.
func (s *Session) UpdateProduct(ctx context.Context, id int64, p Product) error {
	if err := s.catalog.Update(id, p); err != nil {
		return err
	}
	s.persist(ctx, KeyProducts, s.catalog.List())
	return nil
}

// RemoveProduct deletes a product. Unknown ids are a no-op.
func (s *Session) RemoveProduct(ctx context.Context, id int64) {
	s.catalog.Remove(id)
	s.persist(ctx, KeyProducts, s.catalog.List())
}

// =============================================================================
// ORDER OPERATIONS
// =============================================================================

// CurrentOrder returns a copy of the order being assembled.
func (s *Session) CurrentOrder() Order { return *s.current.Clone() }

// HeldOrders returns copies of the held orders in insertion order.
func (s *Session) HeldOrders() []Order {
	held := s.held.List()
	out := make([]Order, len(held))
	for i, o := range held {
		out[i] = *o.Clone()
	}
	return out
}

// AddToOrder adds one unit of the catalog product to the current order.
func (s *Session) AddToOrder(ctx context.Context, productID int64) (Order, error) {
	product, ok := s.catalog.Find(productID)
	if !ok {
		return Order{}, ErrProductNotFound
	}
	s.current.AddLine(product)
	s.persist(ctx, KeyCurrentOrder, s.current)
	return s.CurrentOrder(), nil
}

// SetLineQuantity adjusts a line's quantity; <= 0 removes the line.
func (s *Session) SetLineQuantity(ctx context.Context, lineID string, quantity int) Order {
	s.current.SetLineQuantity(lineID, quantity)
	s.persist(ctx, KeyCurrentOrder, s.current)
	return s.CurrentOrder()
}

// RemoveLine removes a line from the current order. Idempotent.
func (s *Session) RemoveLine(ctx context.Context, lineID string) Order {
	s.current.RemoveLine(lineID)
	s.persist(ctx, KeyCurrentOrder, s.current)
	return s.CurrentOrder()
}

// ClearOrder abandons the current order, replacing it with a fresh empty one.
func (s *Session) ClearOrder(ctx context.Context) Order {
	s.resetCurrent(ctx)
	return s.CurrentOrder()
}

// Hold sets the current order aside and starts a fresh one. Fails with
// ErrEmptyOrder when the cart has no lines.
func (s *Session) Hold(ctx context.Context) error {
	if s.current.Empty() {
		return ErrEmptyOrder
	}
	s.current.Status = StatusHeld
	if err := s.held.Append(s.current); err != nil {
		s.current.Status = StatusCurrent
		return err
	}
	s.persist(ctx, KeyHeldOrders, s.held.List())
	s.resetCurrent(ctx)
	return nil
}

// Recall brings a held order back as the current order. Fails with
// ErrOrderNotFound when the id is not held. A non-empty current order is
// dropped or auto-held per the session's DiscardPolicy.
func (s *Session) Recall(ctx context.Context, heldOrderID string) error {
	recalled, err := s.held.Take(heldOrderID)
	if err != nil {
		return err
	}

	if s.discard == DiscardAutoHold && !s.current.Empty() {
		s.current.Status = StatusHeld
		if err := s.held.Append(s.current); err != nil {
			// Id collision cannot happen with uuid order ids; restore and
			// surface it rather than losing the recalled order.
			s.current.Status = StatusCurrent
			_ = s.held.Append(recalled)
			return err
		}
	}

	recalled.Status = StatusCurrent
	s.current = recalled
	s.persist(ctx, KeyHeldOrders, s.held.List())
	s.persist(ctx, KeyCurrentOrder, s.current)
	return nil
}

// Pay settles the current order. It records exactly one transaction, advances
// dailySales and cumulativeSales by the order total, and resets the current
// order to a fresh empty one. Fails with ErrEmptyOrder or ErrNonPositiveTotal
// before any state changes.
func (s *Session) Pay(ctx context.Context, method PaymentMethod) (Transaction, error) {
	if !method.Valid() {
		return Transaction{}, ErrInvalidPaymentMethod
	}
	if s.current.Empty() {
		return Transaction{}, ErrEmptyOrder
	}
	if !s.current.Total.IsPositive() {
		return Transaction{}, ErrNonPositiveTotal
	}

	tx := Transaction{
		ID:        uuid.NewString(),
		Amount:    s.current.Total,
		Method:    method,
		Timestamp: time.Now(),
		Lines:     cloneLines(s.current.Lines),
	}
	s.ledger.Record(tx)
	s.current.Status = StatusCompleted
	s.current.Method = method

	s.persist(ctx, KeySales, s.ledger)
	s.resetCurrent(ctx)
	return tx, nil
}

// =============================================================================
// REPORTS
// =============================================================================

// Sales returns a copy of the ledger state.
func (s *Session) Sales() Ledger {
	dup := *s.ledger
	dup.Transactions = make([]Transaction, len(s.ledger.Transactions))
	copy(dup.Transactions, s.ledger.Transactions)
	return dup
}

// XReport returns the non-destructive sales snapshot.
func (s *Session) XReport() XReport { return s.ledger.XReport() }

// ZReport returns the pre-reset totals and resets the ledger. The cleared
// ledger is persisted immediately.
func (s *Session) ZReport(ctx context.Context) ZReport {
	report := s.ledger.ZReport()
	s.persist(ctx, KeySales, s.ledger)
	return report
}

// Breakdown returns the per-payment-method view of the transaction sequence.
func (s *Session) Breakdown() MethodBreakdown { return s.ledger.Breakdown() }

// =============================================================================
// STAFF OPERATIONS
// =============================================================================

// StaffList returns the roster.
func (s *Session) StaffList() []Staff { return s.roster.List() }

// AddStaff appends a roster member.
func (s *Session) AddStaff(ctx context.Context, name, role string) (Staff, error) {
	member, err := s.roster.Add(name, role)
	if err != nil {
		return Staff{}, err
	}
	s.persist(ctx, KeyStaff, s.roster.List())
	return member, nil
}

// RemoveStaff deletes a roster member. Unknown ids are a no-op.
func (s *Session) RemoveStaff(ctx context.Context, id int64) {
	s.roster.Remove(id)
	s.persist(ctx, KeyStaff, s.roster.List())
}

// =============================================================================
// ACCESS
// =============================================================================

// Auth returns the current authentication state.
func (s *Session) Auth() AuthState { return s.auth }

// Login verifies the password for role. A wrong password is an expected
// outcome: it returns false and leaves the auth state untouched, never an
// error.
func (s *Session) Login(password string, role Role) bool {
	if !s.creds.Verify(password, role) {
		return false
	}
	s.auth = AuthState{Authenticated: true, Role: role}
	return true
}

// Logout clears the auth state and discards the current order's unsaved
// state. Held orders and the sales ledger persist across logout.
func (s *Session) Logout(ctx context.Context) {
	s.auth = AuthState{}
	s.resetCurrent(ctx)
}

// ChangePassword replaces one role's password after re-verifying the current
// one. See Credentials.Change for the outcome taxonomy.
func (s *Session) ChangePassword(ctx context.Context, role Role, current, newPassword, confirm string) error {
	if err := s.creds.Change(role, current, newPassword, confirm); err != nil {
		return err
	}
	s.persist(ctx, KeySettings, s.creds)
	return nil
}
