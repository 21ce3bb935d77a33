package user

import (
	"context"
	"errors"

	"backend-runhub/internal/db"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyApproved = errors.New("user is already approved")
	ErrSelfDelete      = errors.New("cannot delete your own account")
)

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

const userColumns = `id, user_name, role, goal, COALESCE(email,''), COALESCE(contact_num,''), COALESCE(address,''), COALESCE(group_name,''), progress, is_approved, created_at, updated_at`

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (s *Service) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (User, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if patch.UserName != "" {
		current.UserName = patch.UserName
	}
	if patch.Email != "" {
		current.Email = patch.Email
	}
	if patch.ContactNum != "" {
		current.ContactNum = patch.ContactNum
	}
	if patch.Address != "" {
		current.Address = patch.Address
	}
	if patch.Goal != nil {
		current.Goal = *patch.Goal
	}

	if patch.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		if _, err := s.db.Exec(ctx, `UPDATE users SET password_hash=$2, updated_at=now() WHERE id=$1`, id, string(hash)); err != nil {
			return User{}, err
		}
	}

	_, err = s.db.Exec(ctx, `
		UPDATE users
		SET user_name=$2, email=$3, contact_num=$4, address=$5, goal=$6, updated_at=now()
		WHERE id=$1
	`, id, current.UserName, current.Email, current.ContactNum, current.Address, current.Goal)
	if err != nil {
		return User{}, err
	}
	return current, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (s *Service) Pending(ctx context.Context) ([]User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE is_approved=false ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (s *Service) Approve(ctx context.Context, id string) (User, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if current.IsApproved {
		return User{}, ErrAlreadyApproved
	}

	if _, err := s.db.Exec(ctx, `UPDATE users SET is_approved=true, updated_at=now() WHERE id=$1`, id); err != nil {
		return User{}, err
	}
	current.IsApproved = true
	return current, nil
}

func (s *Service) AdminUpdate(ctx context.Context, id string, patch AdminPatch) (User, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if patch.Role != "" {
		current.Role = patch.Role
	}
	if patch.Email != "" {
		current.Email = patch.Email
	}
	if patch.ContactNum != "" {
		current.ContactNum = patch.ContactNum
	}
	if patch.Address != "" {
		current.Address = patch.Address
	}
	if patch.GroupName != "" {
		current.GroupName = patch.GroupName
	}
	if patch.IsApproved != nil {
		current.IsApproved = *patch.IsApproved
	}

	_, err = s.db.Exec(ctx, `
		UPDATE users
		SET role=$2, email=$3, contact_num=$4, address=$5, group_name=$6, is_approved=$7, updated_at=now()
		WHERE id=$1
	`, id, current.Role, current.Email, current.ContactNum, current.Address, current.GroupName, current.IsApproved)
	if err != nil {
		return User{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	if id == requesterID {
		return ErrSelfDelete
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Reset wipes a user's run history and zeroes their goal and progress.
// The progress write needs no recompute: with no runs left the
// authoritative sum is zero by definition.
func (s *Service) Reset(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM runs WHERE user_id=$1`, id); err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `UPDATE users SET progress=0, goal=0, updated_at=now() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.UserName, &u.Role, &u.Goal, &u.Email, &u.ContactNum, &u.Address,
		&u.GroupName, &u.Progress, &u.IsApproved, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

func scanUsers(rows pgx.Rows) ([]User, error) {
	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
