package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/yogeshrakate/skill-matrix-backend/internal/domain"
	internal_errors "github.com/yogeshrakate/skill-matrix-backend/internal/errors"
)

// uniqueViolation is the postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// =========================================================================
// Public methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser inserts a new user inside its own transaction. A unique violation
// on the email column comes back as a stable DuplicateEmail error, never the
// driver's message.
func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return s.saveUser(ctx, tx, user)
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// UserByEmail is a read-only lookup on the connection pool.
func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.user(ctx, s.db, email)
}

// ActivateUser flips the activation flag. Updating an already active user is
// a valid no-op, so only a missing row is an error.
func (s *Storage) ActivateUser(ctx context.Context, email domain.Email) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.activateUser(ctx, tx, email)
	})
}

// UpdatePassword replaces the stored credential hash.
func (s *Storage) UpdatePassword(ctx context.Context, email domain.Email, passHash string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updatePassword(ctx, tx, email, passHash)
	})
}

// =========================================================================
// Private helpers. These accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveUser(ctx context.Context, q Querier, user domain.User) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO users (id, full_name, email_address, password, is_active) VALUES ($1, $2, $3, $4, $5)`,
		user.Id, user.FullName, user.Email, user.PassHash, user.Active,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return &internal_errors.ErrorWithStatusCode{
				Message:    "Email address already registered",
				StatusCode: http.StatusBadRequest,
				Code:       internal_errors.CodeDuplicateEmail,
			}
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Storage) user(ctx context.Context, q Querier, email domain.Email) (domain.User, error) {
	var user domain.User
	err := q.QueryRowContext(ctx,
		`SELECT id, full_name, email_address, password, is_active, created_at FROM users WHERE email_address = $1`,
		email,
	).Scan(&user.Id, &user.FullName, &user.Email, &user.PassHash, &user.Active, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) activateUser(ctx context.Context, q Querier, email domain.Email) error {
	result, err := q.ExecContext(ctx, `UPDATE users SET is_active = TRUE WHERE email_address = $1`, email)
	if err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	return requireRowAffected(result, "User not found")
}

func (s *Storage) updatePassword(ctx context.Context, q Querier, email domain.Email, passHash string) error {
	result, err := q.ExecContext(ctx, `UPDATE users SET password = $1 WHERE email_address = $2`, passHash, email)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireRowAffected(result, "User not found")
}

func requireRowAffected(result sql.Result, notFoundMsg string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: notFoundMsg, StatusCode: http.StatusNotFound}
	}
	return nil
}
