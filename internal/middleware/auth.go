package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

// tokenVerifier is satisfied by *auth.Client.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// ErrorWriter renders a rejected request.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

type Middleware struct {
	AuthClient tokenVerifier
	OnError    ErrorWriter
}

func NewMiddleware(client tokenVerifier, onError ErrorWriter) *Middleware {
	return &Middleware{AuthClient: client, OnError: onError}
}

// context key
type contextKey string

const (
	UIDKey  contextKey = "uid"
	RoleKey contextKey = "role"
)

// FirebaseAuth verifies the bearer ID token and stores the uid and role
// claim in the request context.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			m.OnError(w, r, errs.NewUnauthorizedError("missing Authorization header"))
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.OnError(w, r, errs.NewUnauthorizedError("invalid Authorization header"))
			return
		}

		token, err := m.AuthClient.VerifyIDToken(r.Context(), parts[1])
		if err != nil {
			logger.FromContext(r.Context()).Warn("token verification failed", "error", err)
			m.OnError(w, r, errs.NewUnauthorizedError("invalid or expired token"))
			return
		}

		role, _ := token.Claims["role"].(string)
		ctx := context.WithValue(r.Context(), UIDKey, token.UID)
		ctx = context.WithValue(ctx, RoleKey, role)
		log := logger.FromContext(ctx).With("uid", token.UID)
		ctx = logger.ToContext(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects authenticated callers whose role claim is not listed.
// It must run after FirebaseAuth.
func (m *Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(roles, Role(r.Context())) {
				m.OnError(w, r, errs.NewForbiddenError("insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Helper to extract UID
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

func Role(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}

// WithIdentity returns ctx as FirebaseAuth would leave it.
func WithIdentity(ctx context.Context, uid, role string) context.Context {
	ctx = context.WithValue(ctx, UIDKey, uid)
	return context.WithValue(ctx, RoleKey, role)
}
