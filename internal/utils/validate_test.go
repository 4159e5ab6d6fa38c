package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	for _, email := range []string{"a@b.co", "first.last@sub.domain.tech", " padded@csrippers.tech "} {
		assert.True(t, ValidEmail(email), email)
	}
	for _, email := range []string{"", "no-at.example.com", "trailing@", "@no-local.tech", "a@b"} {
		assert.False(t, ValidEmail(email), email)
	}
}

func TestValidOTP(t *testing.T) {
	for _, code := range []string{"000000", "123456", " 654321 "} {
		assert.True(t, ValidOTP(code), code)
	}
	for _, code := range []string{"", "12345", "1234567", "12345a", "12 456"} {
		assert.False(t, ValidOTP(code), code)
	}
}
