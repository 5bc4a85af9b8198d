// Package token issues and validates signed session tokens.
package token

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	internal_errors "github.com/yogeshrakate/skill-matrix-backend/internal/errors"
	"github.com/yogeshrakate/skill-matrix-backend/internal/logger"
)

var (
	ErrExpired = &internal_errors.ErrorWithStatusCode{
		Message:    "Token has expired",
		StatusCode: http.StatusUnauthorized,
		Code:       internal_errors.CodeTokenExpired,
	}
	ErrInvalid = &internal_errors.ErrorWithStatusCode{
		Message:    "Invalid token",
		StatusCode: http.StatusUnauthorized,
		Code:       internal_errors.CodeTokenInvalid,
	}
)

// Issuer produces HS256-signed tokens with a fixed lifetime. Stateless: there
// is no refresh, rotation or revocation.
type Issuer struct {
	secret string
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue stamps exp = now + ttl over the given claims and signs the set.
func (i *Issuer) Issue(claims map[string]any) (string, error) {
	mapClaims := jwt.MapClaims{}
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["exp"] = time.Now().Add(i.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString([]byte(i.secret))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", errors.New("can't create token")
	}

	return signed, nil
}

// Validate returns the claim set of a well-formed, unexpired token.
// Expiry is reported as ErrExpired; every other failure (bad signature,
// malformed structure, wrong algorithm family) as ErrInvalid.
func (i *Issuer) Validate(tokenStr string) (map[string]any, error) {
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return []byte(i.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}

	return claims, nil
}
