package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultIssuer = "signalist"

var ErrInvalidToken = errors.New("invalid form token")

type FormClaims struct {
	Form string `json:"form"`
	jwt.RegisteredClaims
}

func NewRandomSecretB64(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeSecret accepts a base64url secret or a raw string and pads it to at least 16 bytes.
func DecodeSecret(text string) []byte {
	raw, err := base64.RawURLEncoding.DecodeString(text)
	if err != nil {
		raw = []byte(text)
	}
	if len(raw) < 16 {
		pad := make([]byte, 16)
		copy(pad, raw)
		raw = pad
	}
	return raw
}

// SignFormToken issues a token for form instance id of the given kind.
func SignFormToken(secret []byte, id, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := FormClaims{
		Form: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    DefaultIssuer,
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

// ParseFormToken verifies the token and that it was issued for kind. It returns the instance ID.
func ParseFormToken(secret []byte, tokenString, kind string) (string, error) {
	id, got, err := FormKind(secret, tokenString)
	if err != nil {
		return "", err
	}
	if kind != "" && got != kind {
		return "", ErrInvalidToken
	}
	return id, nil
}

// FormKind verifies the token and returns its instance ID and form kind.
func FormKind(secret []byte, tokenString string) (id, kind string, err error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &FormClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithLeeway(30*time.Second), jwt.WithIssuer(DefaultIssuer))
	if err != nil {
		return "", "", errors.Join(ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*FormClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.Form, nil
}
