/*
auth.go - Bearer tokens and role middleware

PURPOSE:
  The browser UI logs in once and carries a signed token on every call. The
  token only transports the verified role between requests; the password
  check itself, and the core AuthState, live in the pos package.

TOKENS:
  HS256-signed JWT carrying the role claim, issued on successful login with
  a configurable TTL.

MIDDLEWARE:
  requireRole(RoleStaff) admits staff OR admin (admin outranks staff);
  requireRole(RoleAdmin) admits admin only. Tokens arrive as
  "Authorization: Bearer <token>".
*/
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fusioneats/pos-engine/pos"
)

type roleContextKey struct{}

// Claims is the token payload: just the verified role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// issueToken signs a token for the given role.
func (h *Handler) issueToken(role pos.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "pos-engine",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}

// parseToken validates the signature and returns the claims.
func (h *Handler) parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return h.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

// requireRole gates a route subtree on a minimum role.
func (h *Handler) requireRole(min pos.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}
			claims, err := h.parseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token", err)
				return
			}
			role := pos.Role(claims.Role)
			if !role.Valid() {
				writeError(w, http.StatusUnauthorized, "invalid token role", nil)
				return
			}
			if min == pos.RoleAdmin && role != pos.RoleAdmin {
				writeError(w, http.StatusForbidden, "admin access required", nil)
				return
			}
			ctx := context.WithValue(r.Context(), roleContextKey{}, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
