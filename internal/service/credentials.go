package service

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// initialPasswordPrefix is the fixed scheme prefix for one-time passwords
// generated at approval. The plaintext is mailed once and never persisted.
const initialPasswordPrefix = "PG@"

// derivePGID builds the human-readable login id from the email local-part,
// upper-cased. Uniqueness is enforced by the caller.
func derivePGID(email string) string {
	localPart := email
	if at := strings.Index(email, "@"); at >= 0 {
		localPart = email[:at]
	}
	return strings.ToUpper(localPart)
}

// deriveInitialPassword builds the one-time plaintext password from the
// last 4 digits of the phone number. Non-digit characters are ignored.
// Deterministic by design of the legacy scheme; a random token with forced
// reset should replace this once behavior compatibility is no longer needed.
func deriveInitialPassword(phone string) string {
	var digits []rune
	for _, ch := range phone {
		if ch >= '0' && ch <= '9' {
			digits = append(digits, ch)
		}
	}

	last4 := string(digits)
	if len(digits) > 4 {
		last4 = string(digits[len(digits)-4:])
	}

	return initialPasswordPrefix + last4
}

// hashPassword returns the bcrypt hash of a plaintext password
func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
