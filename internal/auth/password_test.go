package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	digest, err := HashPassword("Senha123@", 4)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(digest, "Senha123@"))
	assert.Error(t, ComparePassword(digest, "Senha123!"))
	assert.Error(t, ComparePassword(digest, ""))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Senha123@", false},
		{"valid symbol only punctuation", "abcdef1.", false},
		{"too short", "S1@a", true},
		{"no digit", "Senhaaa@", true},
		{"no symbol", "Senha1234", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	for _, email := range []string{"camis.linda@example.com", "a@b.co", "user+tag@sub.domain.org"} {
		assert.NoError(t, ValidateEmail(email), email)
	}
	for _, email := range []string{"", "no-at-sign", "@example.com", "user@", "user@nodot", "user@domain.", "two words@example.com"} {
		assert.Error(t, ValidateEmail(email), email)
	}
}
