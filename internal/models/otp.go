package models

import (
	"time"
)

// OTPRecord binds a one-time code to a subject. For the admin flow it lives
// in transient process memory; for login/registration it is embedded as the
// otp field on the user document. At most one live record exists per subject,
// a new issue overwrites the prior one.
type OTPRecord struct {
	Subject  string    `json:"subject" bson:"-"`
	Code     string    `json:"code" bson:"code"`
	IssuedAt time.Time `json:"issued_at" bson:"issued_at"`
	Attempts int       `json:"attempts" bson:"attempts"`
}

type AdminLoginRequest struct {
	Action   string `json:"action" binding:"required,oneof=login verify-otp"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	OTPCode  string `json:"otp_code"`
}
