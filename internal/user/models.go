package user

import "time"

type User struct {
	ID         string    `json:"id"`
	UserName   string    `json:"user_name"`
	Role       string    `json:"role"`
	Goal       float64   `json:"goal"`
	Email      string    `json:"email,omitempty"`
	ContactNum string    `json:"contact_num,omitempty"`
	Address    string    `json:"address,omitempty"`
	GroupName  string    `json:"group_name,omitempty"`
	Progress   float64   `json:"progress"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProfilePatch is a self-service profile update. Zero values mean
// "leave unchanged"; Goal is a pointer so it can be set to zero.
type ProfilePatch struct {
	UserName   string   `json:"user_name"`
	Email      string   `json:"email"`
	ContactNum string   `json:"contact_num"`
	Address    string   `json:"address"`
	Goal       *float64 `json:"goal"`
	Password   string   `json:"password"`
}

// AdminPatch is an administrative update of another user's account.
type AdminPatch struct {
	Role       string `json:"role"`
	Email      string `json:"email"`
	ContactNum string `json:"contact_num"`
	Address    string `json:"address"`
	GroupName  string `json:"group_name"`
	IsApproved *bool  `json:"is_approved"`
}
