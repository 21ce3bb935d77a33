package group

import "time"

type Group struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CoachID      string    `json:"coach_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Member struct {
	ID       string  `json:"id"`
	UserName string  `json:"user_name"`
	Role     string  `json:"role"`
	Goal     float64 `json:"goal"`
	Progress float64 `json:"progress"`
}
