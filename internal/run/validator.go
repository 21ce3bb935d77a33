package run

import (
	"errors"
	"log"
	"math"
	"time"
	"unicode/utf8"

	"backend-runhub/internal/shared/geo"
)

// Plausibility bounds for a logged run. Distances are meters, durations
// minutes, speeds km/h.
const (
	MinDistanceM = 10
	MaxSpeedKmh  = 15
	MinSpeedKmh  = 0.5
	MinPaceKmh   = 0.5
	MaxPaceKmh   = 15

	maxLocationLen = 500

	// pathTolerance is the relative disagreement between the reported
	// distance and the haversine length of the GPS path above which a
	// discrepancy is logged. GPS noise legitimately causes disagreement,
	// so a mismatch never rejects the run.
	pathTolerance = 0.15
)

var (
	ErrInvalidDistance  = errors.New("distance must be at least 10 meters")
	ErrInvalidDuration  = errors.New("duration must be greater than 0 minutes")
	ErrInvalidPace      = errors.New("pace must be between 0.5 and 15 km/h")
	ErrLocationTooLong  = errors.New("location cannot exceed 500 characters")
	ErrDurationTooShort = errors.New("duration too short for distance: implies a pace above 15 km/h")
	ErrDurationTooLong  = errors.New("duration too long for distance: implies a pace below 0.5 km/h")
)

var warnf = log.Printf

// IsValidationError reports whether err is one of the run validation
// failures, all of which map to a client-input defect.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDistance) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrInvalidPace) ||
		errors.Is(err, ErrLocationTooLong) ||
		errors.Is(err, ErrDurationTooShort) ||
		errors.Is(err, ErrDurationTooLong)
}

// Validate checks a candidate run for physical plausibility and returns
// the normalized record. The GPS path cross-check is advisory: a path
// that disagrees with the reported distance is logged, never rejected.
func Validate(userID string, input SubmitInput) (Run, error) {
	if input.Distance == nil || *input.Distance < MinDistanceM {
		return Run{}, ErrInvalidDistance
	}
	if input.Duration == nil || *input.Duration <= 0 {
		return Run{}, ErrInvalidDuration
	}
	if input.Pace != nil && (*input.Pace < MinPaceKmh || *input.Pace > MaxPaceKmh) {
		return Run{}, ErrInvalidPace
	}
	if utf8.RuneCountInString(input.Location) > maxLocationLen {
		return Run{}, ErrLocationTooLong
	}

	distance := *input.Distance
	duration := *input.Duration

	minDuration := distance / 1000 / MaxSpeedKmh * 60
	if duration < minDuration {
		return Run{}, ErrDurationTooShort
	}
	maxDuration := distance / 1000 / MinSpeedKmh * 60
	if duration > maxDuration {
		return Run{}, ErrDurationTooLong
	}

	if len(input.Path) >= 2 {
		computed := geo.PathDistanceM(input.Path)
		if discrepancy := math.Abs(computed-distance) / distance; discrepancy > pathTolerance {
			warnf("run path mismatch for user %s: reported %.0fm, path %.0fm (%.0f%% off)",
				userID, distance, computed, discrepancy*100)
		}
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	return Run{
		UserID:      userID,
		DistanceM:   distance,
		DurationMin: duration,
		PaceKmh:     input.Pace,
		Date:        date,
		Location:    input.Location,
		Path:        input.Path,
	}, nil
}
