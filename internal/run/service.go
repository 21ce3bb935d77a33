package run

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"backend-runhub/internal/db"
	"backend-runhub/internal/progress"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrRunNotFound = errors.New("run not found")
	ErrNotOwner    = errors.New("not allowed to modify this run")
)

type Service struct {
	db  db.Querier
	agg *progress.Aggregator
}

func NewService(querier db.Querier, agg *progress.Aggregator) *Service {
	return &Service{db: querier, agg: agg}
}

// Submit validates the candidate run, persists it, and refreshes the
// owner's cached progress. The recompute runs after the insert has
// committed; its failure leaves progress stale but never fails the
// submission.
func (s *Service) Submit(ctx context.Context, userID string, input SubmitInput) (Run, error) {
	record, err := Validate(userID, input)
	if err != nil {
		return Run{}, err
	}
	record.ID = uuid.NewString()

	var pathJSON []byte
	if len(record.Path) > 0 {
		pathJSON, _ = json.Marshal(record.Path)
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO runs (id, user_id, distance_m, duration_min, pace_kmh, date, location, path)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at
	`, record.ID, record.UserID, record.DistanceM, record.DurationMin, record.PaceKmh, record.Date, record.Location, pathJSON)
	if err := row.Scan(&record.CreatedAt, &record.UpdatedAt); err != nil {
		return Run{}, err
	}

	s.refreshProgress(ctx, userID)
	return record, nil
}

// Delete removes a single run. Only the owner or an admin may delete.
func (s *Service) Delete(ctx context.Context, runID, requesterID, role string) error {
	var ownerID string
	err := s.db.QueryRow(ctx, `SELECT user_id FROM runs WHERE id=$1`, runID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRunNotFound
		}
		return err
	}

	if ownerID != requesterID && role != "admin" {
		return ErrNotOwner
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM runs WHERE id=$1`, runID); err != nil {
		return err
	}

	s.refreshProgress(ctx, ownerID)
	return nil
}

// DeleteAllForUser removes every run owned by userID and resets their
// progress through the usual recompute.
func (s *Service) DeleteAllForUser(ctx context.Context, userID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM runs WHERE user_id=$1`, userID); err != nil {
		return err
	}
	s.refreshProgress(ctx, userID)
	return nil
}

func (s *Service) UserRuns(ctx context.Context, userID string) ([]Run, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, distance_m, duration_min, pace_kmh, date, COALESCE(location,''), path, created_at, updated_at
		FROM runs WHERE user_id=$1
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

// GroupRuns returns the runs of every current member of the group,
// resolved through users.group_name.
func (s *Service) GroupRuns(ctx context.Context, groupID string) ([]Run, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.user_id, r.distance_m, r.duration_min, r.pace_kmh, r.date, COALESCE(r.location,''), r.path, r.created_at, r.updated_at
		FROM runs r
		JOIN users u ON u.id = r.user_id
		JOIN groups g ON g.name = u.group_name
		WHERE g.id=$1
		ORDER BY r.date DESC
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (s *Service) AllRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, distance_m, duration_min, pace_kmh, date, COALESCE(location,''), path, created_at, updated_at
		FROM runs
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows pgx.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var pathJSON []byte
		if err := rows.Scan(&r.ID, &r.UserID, &r.DistanceM, &r.DurationMin, &r.PaceKmh, &r.Date, &r.Location, &pathJSON, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		if len(pathJSON) > 0 {
			_ = json.Unmarshal(pathJSON, &r.Path)
		}
		runs = append(runs, r)
	}
	return runs, nil
}

func (s *Service) refreshProgress(ctx context.Context, userID string) {
	if s.agg == nil {
		return
	}
	if _, err := s.agg.Recompute(ctx, userID); err != nil {
		// stale progress self-corrects on the next recompute trigger
		log.Printf("progress recompute for user %s failed: %v", userID, err)
	}
}
