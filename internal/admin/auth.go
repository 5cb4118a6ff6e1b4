// internal/admin/auth.go
//
// Bearer-token guard for the provisioning API.
//
// Context
// -------
// Token issuance lives in the platform's auth service; this middleware
// only verifies.  Accepted tokens are HS256-signed, carry a `role`
// claim, and must name the ADMIN role to touch tenant records.

package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the role claim required by every mutation endpoint.
const RoleAdmin = "ADMIN"

var errInvalidToken = errors.New("invalid access token")

// Claims is the subset of the platform access token the admin surface
// cares about.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// parseToken verifies signature and expiry, returning the claims.
func parseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, errInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

// RequireAdmin rejects requests without a valid ADMIN bearer token:
// 401 when the token is missing or unverifiable, 403 when the role is
// insufficient.
func RequireAdmin(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			claims, err := parseToken(strings.TrimPrefix(authHeader, "Bearer "), secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if claims.Role != RoleAdmin {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
