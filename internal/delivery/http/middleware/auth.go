package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	h "github.com/erwannT/callForPapers/internal/delivery/http/helpers"
	"github.com/erwannT/callForPapers/internal/domain"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	claimsKey contextKey = "tokenClaims"
)

// SetUserID returns a context with the user ID set. Used by auth middleware.
func SetUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// SetClaims returns a context carrying the verified token claims.
func SetClaims(ctx context.Context, claims *domain.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the token claims stored by RequireVerified.
func ClaimsFromContext(ctx context.Context) (*domain.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*domain.TokenClaims)
	return claims, ok
}

// authenticate extracts and validates the Bearer token, returning the claim
// set or nil when the request is unauthenticated.
func authenticate(r *http.Request, verifier domain.TokenVerifier) *domain.TokenClaims {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return nil
	}
	token := strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return nil
	}
	claims, err := verifier.Verify(token)
	if err != nil {
		return nil
	}
	return claims
}

// RequireVerified returns a wrapper enforcing the single authorization rule
// every restricted endpoint shares: the request carries a valid token whose
// verified claim is true. On success the subject user id and the claim set
// are stored in the request context, so wrappers further down the chain do
// not verify the token again; any failure responds 401 without invoking next.
func RequireVerified(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims := authenticate(r, verifier)
			if claims == nil || !claims.Verified {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, domain.ErrNotVerified.Error())
				return
			}
			userID, err := strconv.Atoi(claims.Subject)
			if err != nil {
				logger.Warn("token subject is not numeric", "subject", claims.Subject)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, domain.ErrNotVerified.Error())
				return
			}
			ctx := SetClaims(SetUserID(r.Context(), userID), claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin is RequireVerified plus the admin claim, for committee and
// configuration endpoints. It reads the claims RequireVerified stored in the
// context rather than verifying the token a second time.
func RequireAdmin(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	verified := RequireVerified(verifier, logger)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return verified(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || !claims.Admin {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "admin access required")
				return
			}
			next(w, r)
		})
	}
}
