package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	dbuser "com.martdev.newsroom/internal/database/user"
	"com.martdev.newsroom/internal/util"
)

type UserGetter interface {
	GetUserByID(ctx context.Context, userID int64) (*dbuser.User, error)
}

// TokenIdentityProvider resolves bearer tokens whose subject is a user id.
type TokenIdentityProvider struct {
	authenticator Authenticator
	users         UserGetter
}

func NewTokenIdentityProvider(authenticator Authenticator, users UserGetter) *TokenIdentityProvider {
	return &TokenIdentityProvider{authenticator: authenticator, users: users}
}

func (p *TokenIdentityProvider) ResolveCaller(ctx context.Context, token string) (*Caller, error) {
	if token == "" {
		return nil, util.ErrorUnauthenticated
	}

	jwtToken, err := p.authenticator.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrorUnauthenticated, err)
	}

	sub, err := jwtToken.Claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrorUnauthenticated, err)
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject %q", util.ErrorUnauthenticated, sub)
	}

	user, err := p.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, util.ErrorNotFound) {
			return nil, fmt.Errorf("%w: user %d no longer exists", util.ErrorUnauthenticated, userID)
		}
		return nil, err
	}

	return &Caller{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}
