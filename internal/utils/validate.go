package utils

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,}$`)
	otpRe   = regexp.MustCompile(`^[0-9]{6}$`)
)

func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// ValidOTP reports whether a claimed code has the shape of an issued one:
// exactly six decimal digits.
func ValidOTP(otp string) bool {
	return otpRe.MatchString(strings.TrimSpace(otp))
}
