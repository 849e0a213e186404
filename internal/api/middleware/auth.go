package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"com.martdev.newsroom/internal/auth"
	"com.martdev.newsroom/internal/util"
	"go.uber.org/zap"
)

type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (*auth.Caller, error)
}

// Authenticate resolves the bearer token into a caller and stores it on the
// request context. Requests without a resolvable caller stop here with 401.
func Authenticate(resolver CallerResolver, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				util.UnauthorizedErrorResponse(w, r, errors.New("missing bearer token"), logger)
				return
			}

			caller, err := resolver.ResolveCaller(r.Context(), token)
			if err != nil {
				if errors.Is(err, util.ErrorUnauthenticated) {
					util.UnauthorizedErrorResponse(w, r, err, logger)
					return
				}
				util.InternalServerErrorResponse(w, r, err, logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithCaller(r.Context(), caller)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
