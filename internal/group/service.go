package group

import (
	"context"
	"errors"

	"backend-runhub/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrGroupExists    = errors.New("group name already taken")
	ErrCoachOnly      = errors.New("only coaches can manage groups")
	ErrNotGroupOwner  = errors.New("group belongs to another coach")
	ErrBadCredentials = errors.New("invalid group name or password")
	ErrNotInGroup     = errors.New("user is not in a group")
)

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

type CreateInput struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type UpdateInput struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type JoinInput struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Create opens a new group owned by the calling coach. The join password
// is stored hashed; members later join with the plain name+password pair.
func (s *Service) Create(ctx context.Context, coachID, role string, input CreateInput) (Group, error) {
	if role != "coach" {
		return Group{}, ErrCoachOnly
	}
	if input.Name == "" || input.Password == "" {
		return Group{}, ErrBadCredentials
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM groups WHERE name=$1)`, input.Name).Scan(&exists); err != nil {
		return Group{}, err
	}
	if exists {
		return Group{}, ErrGroupExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return Group{}, err
	}

	g := Group{ID: uuid.NewString(), Name: input.Name, CoachID: coachID}
	row := s.db.QueryRow(ctx, `
		INSERT INTO groups (id, name, password_hash, coach_id)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at, updated_at
	`, g.ID, g.Name, string(hash), g.CoachID)
	if err := row.Scan(&g.CreatedAt, &g.UpdatedAt); err != nil {
		return Group{}, err
	}
	return g, nil
}

// Update renames a group and/or rotates its join password. Only the
// owning coach may update; a rename also moves members to the new name.
func (s *Service) Update(ctx context.Context, groupID, coachID string, input UpdateInput) (Group, error) {
	g, err := s.byID(ctx, groupID)
	if err != nil {
		return Group{}, err
	}
	if g.CoachID != coachID {
		return Group{}, ErrNotGroupOwner
	}

	oldName := g.Name
	if input.Name != "" {
		g.Name = input.Name
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return Group{}, err
		}
		g.PasswordHash = string(hash)
	}

	if _, err := s.db.Exec(ctx, `
		UPDATE groups SET name=$2, password_hash=$3, updated_at=now() WHERE id=$1
	`, g.ID, g.Name, g.PasswordHash); err != nil {
		return Group{}, err
	}

	if g.Name != oldName {
		if _, err := s.db.Exec(ctx, `UPDATE users SET group_name=$2 WHERE group_name=$1`, oldName, g.Name); err != nil {
			return Group{}, err
		}
	}
	return g, nil
}

// Delete disbands a group. Members are detached first so nobody is left
// pointing at a group row that no longer exists.
func (s *Service) Delete(ctx context.Context, groupID, coachID, role string) error {
	g, err := s.byID(ctx, groupID)
	if err != nil {
		return err
	}
	if g.CoachID != coachID && role != "admin" {
		return ErrNotGroupOwner
	}

	if _, err := s.db.Exec(ctx, `UPDATE users SET group_name=NULL WHERE group_name=$1`, g.Name); err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM groups WHERE id=$1`, g.ID); err != nil {
		return err
	}
	return nil
}

// Join attaches the user to the group named in the input if the join
// password matches. A user can only be in one group at a time; joining
// replaces any previous membership.
func (s *Service) Join(ctx context.Context, userID string, input JoinInput) (Group, error) {
	var g Group
	row := s.db.QueryRow(ctx, `
		SELECT id, name, password_hash, coach_id, created_at, updated_at
		FROM groups WHERE name=$1
	`, input.Name)
	if err := row.Scan(&g.ID, &g.Name, &g.PasswordHash, &g.CoachID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Group{}, ErrBadCredentials
		}
		return Group{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(g.PasswordHash), []byte(input.Password)) != nil {
		return Group{}, ErrBadCredentials
	}

	if _, err := s.db.Exec(ctx, `UPDATE users SET group_name=$2, updated_at=now() WHERE id=$1`, userID, g.Name); err != nil {
		return Group{}, err
	}
	return g, nil
}

// Leave detaches the user from whatever group they are in.
func (s *Service) Leave(ctx context.Context, userID string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users SET group_name=NULL, updated_at=now()
		WHERE id=$1 AND group_name IS NOT NULL
	`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotInGroup
	}
	return nil
}

// RemoveMember detaches a member from the group on the owning coach's
// behalf. Fails with ErrNotInGroup when the user is not currently a
// member of this group.
func (s *Service) RemoveMember(ctx context.Context, groupID, coachID, role, memberID string) error {
	g, err := s.byID(ctx, groupID)
	if err != nil {
		return err
	}
	if g.CoachID != coachID && role != "admin" {
		return ErrNotGroupOwner
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE users SET group_name=NULL, updated_at=now()
		WHERE id=$2 AND group_name=$1
	`, g.Name, memberID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotInGroup
	}
	return nil
}

// List returns every group. Password hashes never leave the service.
func (s *Service) List(ctx context.Context) ([]Group, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, coach_id, created_at, updated_at
		FROM groups ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CoachID, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// Members lists the approved users attached to the group.
func (s *Service) Members(ctx context.Context, groupID string) ([]Member, error) {
	g, err := s.byID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_name, role, goal, progress
		FROM users WHERE group_name=$1 AND is_approved=true
		ORDER BY user_name
	`, g.Name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.UserName, &m.Role, &m.Goal, &m.Progress); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func (s *Service) byID(ctx context.Context, groupID string) (Group, error) {
	var g Group
	row := s.db.QueryRow(ctx, `
		SELECT id, name, password_hash, coach_id, created_at, updated_at
		FROM groups WHERE id=$1
	`, groupID)
	if err := row.Scan(&g.ID, &g.Name, &g.PasswordHash, &g.CoachID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Group{}, ErrGroupNotFound
		}
		return Group{}, err
	}
	return g, nil
}
