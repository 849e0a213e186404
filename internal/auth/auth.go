package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

type Authenticator interface {
	GenerateToken(claims jwt.Claims) (string, error)
	ValidateToken(token string) (*jwt.Token, error)
}

// Caller is the authenticated user a request acts on behalf of.
type Caller struct {
	ID       int64
	Username string
	Role     string
}

type callerCtxKey struct{}

func WithCaller(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, callerCtxKey{}, caller)
}

// CallerFromContext returns nil when the request was not authenticated.
func CallerFromContext(ctx context.Context) *Caller {
	caller, _ := ctx.Value(callerCtxKey{}).(*Caller)
	return caller
}
