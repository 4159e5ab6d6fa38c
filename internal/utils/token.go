package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// AdminTokenTTL is how long an admin token stays valid. There is no
// revocation; a leaked token remains usable for its full lifetime.
const AdminTokenTTL = 24 * time.Hour

var (
	ErrTokenMalformed = errors.New("malformed admin token")
	ErrTokenIdentity  = errors.New("admin token identity mismatch")
	ErrTokenExpired   = errors.New("admin token expired")
)

// AdminTokenPayload is the decoded form of an admin bearer token. The
// encoding is reversible, not signed: validity comes from an exact match of
// email and secret against the configured admin identity plus the 24h
// window, which means anyone holding the secret can forge a token. Kept
// as-is pending a security-posture decision.
type AdminTokenPayload struct {
	Email    string `json:"email"`
	IssuedAt int64  `json:"issued_at"`
	Secret   string `json:"secret"`
}

// EncodeAdminToken serializes a payload into the opaque bearer string.
func EncodeAdminToken(p AdminTokenPayload) string {
	data, _ := json.Marshal(p)
	return base64.RawURLEncoding.EncodeToString(data)
}

// GenerateAdminToken issues a token for the configured admin identity.
func GenerateAdminToken(email, secret string) string {
	return EncodeAdminToken(AdminTokenPayload{
		Email:    email,
		IssuedAt: time.Now().Unix(),
		Secret:   secret,
	})
}

// ValidateAdminToken decodes a bearer token and checks it against the
// configured identity and the 24h window.
func ValidateAdminToken(token, email, secret string) (*AdminTokenPayload, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	var p AdminTokenPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, ErrTokenMalformed
	}

	if p.Email != email || p.Secret != secret {
		return nil, ErrTokenIdentity
	}

	if time.Since(time.Unix(p.IssuedAt, 0)) > AdminTokenTTL {
		return nil, ErrTokenExpired
	}

	return &p, nil
}

// Claims are the JWT claims carried by student/member session tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT issues a session token after successful OTP verification.
func GenerateJWT(userID, email, role string) (string, error) {
	cfg := config.GetConfig()

	expiry, err := time.ParseDuration(cfg.JWT.Expiry)
	if err != nil {
		log.Printf("Invalid jwt.expiry %q, falling back to 24h: %v", cfg.JWT.Expiry, err)
		expiry = 24 * time.Hour
	}

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateJWT parses and verifies a session token.
func ValidateJWT(tokenString string) (*Claims, error) {
	cfg := config.GetConfig()

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
