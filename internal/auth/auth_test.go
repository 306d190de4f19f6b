package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known SHA-256 digest of "abc".
const sha256ABC = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

func TestNewSessionToken(t *testing.T) {
	token, err := NewSessionToken()
	require.NoError(t, err)

	assert.Len(t, token, TokenBytes*2, "token must be %d hex characters", TokenBytes*2)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err, "token must be valid hex")

	other, err := NewSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other, "tokens must not repeat")
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		scheme   string
		want     string
		wantErr  bool
	}{
		{
			name:     "sha256 known digest",
			password: "abc",
			scheme:   SchemeSHA256,
			want:     sha256ABC,
		},
		{
			name:     "sha256 of empty string is still a digest",
			password: "",
			scheme:   SchemeSHA256,
			want:     "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "unsupported scheme",
			password: "abc",
			scheme:   "md5",
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HashPassword(tt.password, tt.scheme)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHashPassword_Bcrypt(t *testing.T) {
	hash, err := HashPassword("secret1", SchemeBcrypt)
	require.NoError(t, err)

	require.True(t, len(hash) > 2)
	assert.Equal(t, "$2", hash[:2], "bcrypt hashes carry the $2 prefix")
	assert.True(t, VerifyPassword("secret1", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestVerifyPassword(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		storedHash string
		want       bool
	}{
		{
			name:       "matching sha256 digest",
			password:   "abc",
			storedHash: sha256ABC,
			want:       true,
		},
		{
			name:       "wrong password",
			password:   "abd",
			storedHash: sha256ABC,
			want:       false,
		},
		{
			name:       "garbage stored hash",
			password:   "abc",
			storedHash: "not-a-digest",
			want:       false,
		},
		{
			name:       "empty stored hash",
			password:   "abc",
			storedHash: "",
			want:       false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.password, tt.storedHash))
		})
	}
}
