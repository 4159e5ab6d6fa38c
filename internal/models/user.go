package models

import (
	"time"
)

// UserAccount is a student or member document. The two roles live in
// disjoint collections; there is no role field on the document itself.
type UserAccount struct {
	ID           string     `json:"id" bson:"_id"`
	Email        string     `json:"email" bson:"email"`
	Mobile       string     `json:"mobile,omitempty" bson:"mobile,omitempty"`
	Password     string     `json:"-" bson:"password"`
	FullName     string     `json:"full_name" bson:"full_name"`
	College      string     `json:"college,omitempty" bson:"college,omitempty"`
	Year         string     `json:"year,omitempty" bson:"year,omitempty"`
	Skills       []string   `json:"skills,omitempty" bson:"skills,omitempty"`
	AvatarURL    string     `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Score        int        `json:"score" bson:"score"`
	Achievements []string   `json:"achievements,omitempty" bson:"achievements,omitempty"`
	Status       string     `json:"status" bson:"status"`
	OTP          *OTPRecord `json:"-" bson:"otp,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=student member"`
	Mobile   string `json:"mobile"`
	College  string `json:"college"`
	Year     string `json:"year"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=student member"`
}

type VerifyOTPRequest struct {
	Email   string `json:"email" binding:"required,email"`
	OTPCode string `json:"otp_code" binding:"required,len=6"`
	Role    string `json:"role" binding:"required,oneof=student member"`
}

type UserUpdateRequest struct {
	FullName  string   `json:"full_name"`
	Mobile    string   `json:"mobile"`
	College   string   `json:"college"`
	Year      string   `json:"year"`
	Skills    []string `json:"skills"`
	AvatarURL string   `json:"avatar_url"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile,omitempty"`
	FullName  string    `json:"full_name"`
	College   string    `json:"college,omitempty"`
	Year      string    `json:"year,omitempty"`
	Skills    []string  `json:"skills,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *UserAccount) ToResponse(role string) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Mobile:    u.Mobile,
		FullName:  u.FullName,
		College:   u.College,
		Year:      u.Year,
		Skills:    u.Skills,
		AvatarURL: u.AvatarURL,
		Role:      role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
