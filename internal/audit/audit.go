package audit

import (
	"context"
	"log"
	"time"

	"backend-runhub/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Record struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

// Log writes an audit record. Auditing is best effort; a failed insert
// is logged and never fails the operation being audited.
func (s *Service) Log(ctx context.Context, actorID, action, detail string) {
	if s == nil || s.db == nil {
		return
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO audit_records (id, actor_id, action, detail)
		VALUES ($1,$2,$3,$4)
	`, uuid.NewString(), actorID, action, detail)
	if err != nil {
		log.Printf("audit write failed for %s %s: %v", actorID, action, err)
	}
}

// List returns the most recent records first, capped at limit.
func (s *Service) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, actor_id, action, COALESCE(detail,''), created_at
		FROM audit_records
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.ActorID, &r.Action, &r.Detail, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}
