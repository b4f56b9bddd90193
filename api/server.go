/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Wires URLs to handlers for the single-register browser UI.

MIDDLEWARE STACK:
  1. RequestID:  unique id per request for tracing
  2. Recoverer:  panic recovery (500 instead of crash)
  3. requestLogger: structured request logging via logrus
  4. CORS:       the UI origin only

ROUTE GROUPS:
  /api/auth/*     login/logout (open)
  /api/catalog    menu read (open - the UI shows the menu pre-login)
  /api/order/*    current-order mutation (staff or admin)
  /api/orders/*   held orders (staff or admin)
  /api/payments   settlement (staff or admin)
  /api/reports/x  X-report (staff or admin)
  /api/reports/*  Z-report, breakdown (admin)
  /api/products/* catalog CRUD (admin)
  /api/staff/*    roster (admin)
  /api/passwords  password change (admin)

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/fusioneats/pos-engine/pos"
)

// NewRouter creates a router with all routes configured. allowedOrigins is
// the browser UI origin list for CORS.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)
		r.Get("/catalog", h.GetCatalog)

		// Register operations: any authenticated role.
		r.Group(func(r chi.Router) {
			r.Use(h.requireRole(pos.RoleStaff))

			r.Route("/order", func(r chi.Router) {
				r.Get("/", h.GetOrder)
				r.Post("/lines", h.AddLine)
				r.Put("/lines/{lineID}", h.SetLineQuantity)
				r.Delete("/lines/{lineID}", h.RemoveLine)
				r.Post("/clear", h.ClearOrder)
				r.Post("/hold", h.HoldOrder)
			})
			r.Route("/orders/held", func(r chi.Router) {
				r.Get("/", h.ListHeldOrders)
				r.Post("/{id}/recall", h.RecallOrder)
			})
			r.Post("/payments", h.Pay)
			r.Get("/reports/x", h.XReport)
			r.Get("/category", h.GetCategory)
			r.Put("/category", h.SetCategory)
		})

		// Back-office operations: admin only.
		r.Group(func(r chi.Router) {
			r.Use(h.requireRole(pos.RoleAdmin))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", h.CreateProduct)
				r.Put("/{id}", h.UpdateProduct)
				r.Delete("/{id}", h.DeleteProduct)
			})
			r.Route("/staff", func(r chi.Router) {
				r.Get("/", h.ListStaff)
				r.Post("/", h.CreateStaff)
				r.Delete("/{id}", h.DeleteStaff)
			})
			r.Post("/reports/z", h.ZReport)
			r.Get("/reports/breakdown", h.Breakdown)
			r.Post("/passwords", h.ChangePassword)
		})
	})

	return r
}

// requestLogger logs one structured line per request.
func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"duration": time.Since(start).String(),
				"reqID":    middleware.GetReqID(r.Context()),
			}).Info("request")
		})
	}
}
