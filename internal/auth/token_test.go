package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormTokenRoundTrip(t *testing.T) {
	secret := DecodeSecret("a-test-secret-that-is-long-enough")

	tok, err := SignFormToken(secret, "form-123", "sign-in", time.Minute)
	require.NoError(t, err)

	id, err := ParseFormToken(secret, tok, "sign-in")
	require.NoError(t, err)
	assert.Equal(t, "form-123", id)

	id, kind, err := FormKind(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "form-123", id)
	assert.Equal(t, "sign-in", kind)
}

func TestFormTokenRejectsOtherKind(t *testing.T) {
	secret := DecodeSecret("a-test-secret-that-is-long-enough")
	tok, err := SignFormToken(secret, "form-123", "sign-in", time.Minute)
	require.NoError(t, err)

	_, err = ParseFormToken(secret, tok, "sign-up")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFormTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	secret := DecodeSecret("a-test-secret-that-is-long-enough")
	tok, err := SignFormToken(secret, "form-123", "sign-up", time.Minute)
	require.NoError(t, err)

	_, err = ParseFormToken(DecodeSecret("another-secret-entirely-different"), tok, "sign-up")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := SignFormToken(secret, "form-123", "sign-up", -time.Hour)
	require.NoError(t, err)
	_, err = ParseFormToken(secret, expired, "sign-up")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseFormToken(secret, "not.a.token", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeSecretPadsShortValues(t *testing.T) {
	assert.Len(t, DecodeSecret("abc"), 16)

	s, err := NewRandomSecretB64(32)
	require.NoError(t, err)
	assert.Len(t, DecodeSecret(s), 32)
}
