package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	dErrors "solestore/pkg/domain-errors"
	"solestore/pkg/platform/httputil"
	"solestore/pkg/requestcontext"
)

// TokenValidator verifies a bearer token and extracts the user-id claim.
type TokenValidator interface {
	UserID(tokenString string) (uuid.UUID, error)
}

// UserLookup re-fetches the authenticated user so the store row, not the
// token claims, decides existence and admin status.
type UserLookup interface {
	Lookup(ctx context.Context, id uuid.UUID) (isAdmin bool, err error)
}

// RequireAuth rejects requests without a valid bearer token. On success the
// user id and admin flag are injected into the request context.
func RequireAuth(validator TokenValidator, users UserLookup, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token", "request_id", requestID)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			userID, err := validator.UserID(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"request_id", requestID,
					"error", err,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			isAdmin, err := users.Lookup(ctx, userID)
			if err != nil {
				if dErrors.Is(err, dErrors.CodeNotFound) {
					httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "User not found"))
					return
				}
				logger.ErrorContext(ctx, "user lookup failed during auth",
					"request_id", requestID,
					"user_id", userID,
					"error", err,
				)
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "auth lookup failed"))
				return
			}

			ctx = requestcontext.WithUserID(ctx, userID)
			ctx = requestcontext.WithIsAdmin(ctx, isAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated requests whose user lacks the admin
// flag. It must be mounted inside RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !requestcontext.IsAdmin(r.Context()) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
