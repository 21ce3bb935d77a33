package run

import (
	"time"

	"backend-runhub/internal/shared/geo"
)

type Run struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	DistanceM   float64     `json:"distance_m"`
	DurationMin float64     `json:"duration_min"`
	PaceKmh     *float64    `json:"pace_kmh,omitempty"`
	Date        time.Time   `json:"date"`
	Location    string      `json:"location,omitempty"`
	Path        []geo.Point `json:"path,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// SubmitInput carries the raw fields of a candidate run. Distance and
// Duration are pointers so that absent and zero values can be told apart
// at the validation boundary.
type SubmitInput struct {
	Distance *float64    `json:"distance"`
	Duration *float64    `json:"duration"`
	Pace     *float64    `json:"pace"`
	Date     time.Time   `json:"date"`
	Location string      `json:"location"`
	Path     []geo.Point `json:"path"`
}
