package journal

import (
	"context"
	"errors"
	"strings"
	"time"

	"backend-runhub/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrEntryNotFound = errors.New("journal entry not found")
	ErrNotOwner      = errors.New("not allowed to modify this entry")
	ErrEmptyEntry    = errors.New("title and content are required")
	ErrEmptyFeedback = errors.New("feedback text is required")
	ErrCoachOnly     = errors.New("only coaches can leave feedback")
)

const entryColumns = `id, user_id, title, content, date, COALESCE(coach_feedback,''), COALESCE(coach_id,''), coach_feedback_date, created_at, updated_at`

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

func (s *Service) Create(ctx context.Context, userID string, input EntryInput) (Entry, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return Entry{}, ErrEmptyEntry
	}

	e := Entry{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   input.Title,
		Content: input.Content,
		Date:    time.Now().UTC(),
	}
	if input.Date != nil {
		e.Date = *input.Date
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO journal_entries (id, user_id, title, content, date)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at
	`, e.ID, e.UserID, e.Title, e.Content, e.Date)
	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ForUser(ctx context.Context, userID string) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+entryColumns+`
		FROM journal_entries WHERE user_id=$1
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *Service) Update(ctx context.Context, entryID, userID string, input EntryInput) (Entry, error) {
	e, err := s.byID(ctx, entryID)
	if err != nil {
		return Entry{}, err
	}
	if e.UserID != userID {
		return Entry{}, ErrNotOwner
	}

	if input.Title != "" {
		e.Title = input.Title
	}
	if input.Content != "" {
		e.Content = input.Content
	}
	if input.Date != nil {
		e.Date = *input.Date
	}

	if _, err := s.db.Exec(ctx, `
		UPDATE journal_entries SET title=$2, content=$3, date=$4, updated_at=now() WHERE id=$1
	`, e.ID, e.Title, e.Content, e.Date); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, entryID, userID, role string) error {
	e, err := s.byID(ctx, entryID)
	if err != nil {
		return err
	}
	if e.UserID != userID && role != "admin" {
		return ErrNotOwner
	}

	_, err = s.db.Exec(ctx, `DELETE FROM journal_entries WHERE id=$1`, entryID)
	return err
}

// Feedback attaches a coach's comment to a runner's entry. Leaving
// feedback again overwrites the previous comment and stamps a new date.
func (s *Service) Feedback(ctx context.Context, entryID, coachID, role string, input FeedbackInput) (Entry, error) {
	if role != "coach" && role != "admin" {
		return Entry{}, ErrCoachOnly
	}
	if strings.TrimSpace(input.Feedback) == "" {
		return Entry{}, ErrEmptyFeedback
	}

	e, err := s.byID(ctx, entryID)
	if err != nil {
		return Entry{}, err
	}

	now := time.Now().UTC()
	if _, err := s.db.Exec(ctx, `
		UPDATE journal_entries
		SET coach_feedback=$2, coach_id=$3, coach_feedback_date=$4, updated_at=now()
		WHERE id=$1
	`, e.ID, input.Feedback, coachID, now); err != nil {
		return Entry{}, err
	}

	e.CoachFeedback = input.Feedback
	e.CoachID = coachID
	e.CoachFeedbackDate = &now
	return e, nil
}

func (s *Service) byID(ctx context.Context, entryID string) (Entry, error) {
	row := s.db.QueryRow(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE id=$1`, entryID)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, err
	}
	return e, nil
}

func scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.Date,
		&e.CoachFeedback, &e.CoachID, &e.CoachFeedbackDate, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func scanEntries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
