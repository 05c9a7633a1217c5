package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jobmatcher/domain"
)

// TokenIssuer signs HS256 access tokens carrying the user id as subject.
type TokenIssuer struct {
	key     string
	issuer  string
	expire  time.Duration
	nowFunc func() time.Time
}

func NewTokenIssuer(issuer, key string, expire time.Duration) *TokenIssuer {
	return &TokenIssuer{
		issuer:  issuer,
		key:     key,
		expire:  expire,
		nowFunc: time.Now,
	}
}

func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := t.nowFunc()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.expire)),
		Subject:   userID,
	})
	return token.SignedString([]byte(t.key))
}

// TokenVerifier checks signature and expiry and returns the embedded user
// id. Any failure maps to ErrInvalidToken so the caller leaks no detail
// about which check failed.
type TokenVerifier struct {
	key     string
	nowFunc func() time.Time
}

func NewTokenVerifier(key string) *TokenVerifier {
	return &TokenVerifier{
		key:     key,
		nowFunc: time.Now,
	}
}

func (v *TokenVerifier) Verify(token string) (string, error) {
	t, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(v.key), nil
		},
		jwt.WithTimeFunc(func() time.Time {
			return v.nowFunc()
		}),
	)
	if err != nil || !t.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}

	return claims.Subject, nil
}
