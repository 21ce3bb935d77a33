package auth

import "time"

type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"user_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Goal         float64   `json:"goal"`
	Email        string    `json:"email,omitempty"`
	ContactNum   string    `json:"contact_num,omitempty"`
	Address      string    `json:"address,omitempty"`
	Progress     float64   `json:"progress"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	UserName   string `json:"user_name"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Email      string `json:"email"`
	ContactNum string `json:"contact_num"`
	Address    string `json:"address"`
}

type LoginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
