package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTAuthenticator struct {
	secret string
	aud    string
	iss    string
}

func NewJWTAuthenticator(secret, aud, iss string) (*JWTAuthenticator, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret must not be empty")
	}
	if aud == "" {
		return nil, fmt.Errorf("jwt: audience must not be empty")
	}
	if iss == "" {
		return nil, fmt.Errorf("jwt: issuer must not be empty")
	}
	return &JWTAuthenticator{
		secret: secret,
		aud:    aud,
		iss:    iss,
	}, nil
}

// AccessClaims builds the claims of an access token for userID, valid for ttl.
func (j *JWTAuthenticator) AccessClaims(userID int64, ttl time.Duration) jwt.Claims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatInt(userID, 10),
		Audience:  jwt.ClaimStrings{j.aud},
		Issuer:    j.iss,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (j *JWTAuthenticator) GenerateToken(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}

	return tokenString, nil
}

func (j *JWTAuthenticator) ValidateToken(token string) (*jwt.Token, error) {
	return jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(j.secret), nil
	}, jwt.WithExpirationRequired(),
		jwt.WithAudience(j.aud),
		jwt.WithIssuer(j.iss),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
}
