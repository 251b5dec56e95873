package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDerivePGID(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"john.doe@example.com", "JOHN.DOE"},
		{"asha_rao@pg.example.in", "ASHA_RAO"},
		{"UPPER@example.com", "UPPER"},
		{"noatsign", "NOATSIGN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, derivePGID(tt.email), "email %q", tt.email)
	}
}

func TestDeriveInitialPassword(t *testing.T) {
	tests := []struct {
		phone    string
		expected string
	}{
		{"+91 98765 43210", "PG@3210"},
		{"9876543210", "PG@3210"},
		{"123", "PG@123"},
		{"(022) 555-0147", "PG@0147"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, deriveInitialPassword(tt.phone), "phone %q", tt.phone)
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := hashPassword("PG@3210")
	require.NoError(t, err)
	assert.NotEqual(t, "PG@3210", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("PG@3210")))
}
