package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := []byte("fixed-salt-16byt")

	k1 := DeriveKey([]byte("passphrase"), salt)
	k2 := DeriveKey([]byte("passphrase"), salt)
	require.Len(t, k1, 32)
	require.True(t, bytes.Equal(k1, k2))

	k3 := DeriveKey([]byte("other"), salt)
	require.False(t, bytes.Equal(k1, k3))
}

func TestNewSalt_Size(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	require.Len(t, salt, SaltSize)
}

func newSealer(t *testing.T) *Sealer {
	t.Helper()
	s, err := NewSealer(DeriveKey([]byte("pw"), []byte("0123456789abcdef")))
	require.NoError(t, err)
	return s
}

func TestSealer_RoundTrip(t *testing.T) {
	s := newSealer(t)

	sealed, err := s.Seal("access_token", []byte("eyJhbGciOi"))
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "eyJhbGciOi")

	plain, err := s.Open("access_token", sealed)
	require.NoError(t, err)
	require.Equal(t, "eyJhbGciOi", string(plain))
}

func TestSealer_NonceIsFresh(t *testing.T) {
	s := newSealer(t)
	a, err := s.Seal("k", []byte("same"))
	require.NoError(t, err)
	b, err := s.Seal("k", []byte("same"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestSealer_OpenRejectsWrongSlot(t *testing.T) {
	s := newSealer(t)
	sealed, err := s.Seal("access_token", []byte("tok"))
	require.NoError(t, err)

	_, err = s.Open("refresh_token", sealed)
	require.Error(t, err)
}

func TestSealer_OpenRejectsShortInput(t *testing.T) {
	s := newSealer(t)
	_, err := s.Open("k", []byte{1, 2, 3})
	require.ErrorIs(t, err, ErrMalformedCiphertext)
}

func TestNewSealer_BadKey(t *testing.T) {
	_, err := NewSealer([]byte("short"))
	require.Error(t, err)
}
