package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusioneats/pos-engine/api"
	"github.com/fusioneats/pos-engine/pos"
	"github.com/fusioneats/pos-engine/pos/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	session := pos.NewSession(context.Background(), store.NewMemory(), pos.Options{Logger: log})
	handler := api.NewHandler(session, api.Config{
		Secret: []byte("test-secret"),
		Logger: log,
	})
	server := httptest.NewServer(api.NewRouter(handler, []string{"*"}))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, server *httptest.Server, password, role string) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "",
		api.LoginRequest{Password: password, Role: role})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[api.LoginResponse](t, resp).Token
}

// =============================================================================
// AUTH
// =============================================================================

func TestLogin_WrongPassword(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "",
		api.LoginRequest{Password: "wrong", Role: "staff"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_IssuesUsableToken(t *testing.T) {
	server := newTestServer(t)

	token := login(t, server, "staff123", "staff")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/order", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutes_RejectMissingToken(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/order", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutes_RejectStaffToken(t *testing.T) {
	// Z-report is destructive; staff must not reach it.

	server := newTestServer(t)
	staff := login(t, server, "staff123", "staff")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/reports/z", staff, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := login(t, server, "admin123", "admin")
	resp = doJSON(t, http.MethodPost, server.URL+"/api/reports/z", admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// =============================================================================
// ORDER FLOW
// =============================================================================

func TestOrderFlow_AddPayAndReport(t *testing.T) {
	// GIVEN: a logged-in operator
	// WHEN: two Colas are ordered and paid cash
	// THEN: payment returns a 3.00 transaction and the X-report reflects it

	server := newTestServer(t)
	token := login(t, server, "staff123", "staff")

	for i := 0; i < 2; i++ {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/order/lines", token,
			api.AddLineRequest{ProductID: 15})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/api/order", token, nil)
	order := decode[api.OrderDTO](t, resp)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, 2, order.Lines[0].Quantity)
	assert.Equal(t, "3.00", order.Total)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/payments", token,
		api.PaymentRequest{Method: "cash"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tx := decode[api.TransactionDTO](t, resp)
	assert.Equal(t, "3.00", tx.Amount)
	assert.Equal(t, "cash", tx.Method)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/reports/x", token, nil)
	report := decode[api.XReportDTO](t, resp)
	assert.Equal(t, "3.00", report.DailySales)
	assert.Equal(t, 1, report.TransactionCount)
}

func TestOrderFlow_PayEmptyOrderConflicts(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server, "staff123", "staff")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/payments", token,
		api.PaymentRequest{Method: "cash"})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestOrderFlow_HoldAndRecall(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server, "staff123", "staff")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/order/lines", token,
		api.AddLineRequest{ProductID: 15})
	heldID := decode[api.OrderDTO](t, resp).ID

	resp = doJSON(t, http.MethodPost, server.URL+"/api/order/hold", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[api.OrderDTO](t, resp).Lines)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/orders/held", token, nil)
	held := decode[[]api.OrderDTO](t, resp)
	require.Len(t, held, 1)
	assert.Equal(t, heldID, held[0].ID)

	url := fmt.Sprintf("%s/api/orders/held/%s/recall", server.URL, heldID)
	resp = doJSON(t, http.MethodPost, url, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	recalled := decode[api.OrderDTO](t, resp)
	assert.Equal(t, heldID, recalled.ID)
	assert.Equal(t, "current", recalled.Status)

	resp = doJSON(t, http.MethodPost, url, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "second recall must 404")
}

// =============================================================================
// ADMIN SURFACE
// =============================================================================

func TestAdmin_ProductLifecycle(t *testing.T) {
	server := newTestServer(t)
	admin := login(t, server, "admin123", "admin")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/products", admin,
		api.ProductRequest{Name: "Lemonade", Price: "1.75", Category: "drinks"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.ProductDTO](t, resp)
	assert.Equal(t, "1.75", created.Price)

	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/products/%d", server.URL, created.ID), admin,
		api.ProductRequest{Name: "Lemonade", Price: "1.95", Category: "sides"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/catalog", "", nil)
	catalog := decode[map[string][]api.ProductDTO](t, resp)
	found := false
	for _, p := range catalog["sides"] {
		if p.ID == created.ID {
			found = true
			assert.Equal(t, "1.95", p.Price)
		}
	}
	assert.True(t, found, "updated product must have moved to sides")

	resp = doJSON(t, http.MethodPost, server.URL+"/api/products", admin,
		api.ProductRequest{Name: "Bad", Price: "not-a-price", Category: "drinks"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdmin_ChangePasswordOutcomes(t *testing.T) {
	server := newTestServer(t)
	admin := login(t, server, "admin123", "admin")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/passwords", admin,
		api.ChangePasswordRequest{Role: "staff", CurrentPassword: "wrong", NewPassword: "newpass1", ConfirmPassword: "newpass1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/passwords", admin,
		api.ChangePasswordRequest{Role: "staff", CurrentPassword: "staff123", NewPassword: "newpass1", ConfirmPassword: "newpass1"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Old staff password no longer logs in; new one does.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "",
		api.LoginRequest{Password: "staff123", Role: "staff"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	login(t, server, "newpass1", "staff")
}
