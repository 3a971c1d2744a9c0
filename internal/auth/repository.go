// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/angelamos/contentai/internal/core"
)

type ResetTokenRepository interface {
	Create(ctx context.Context, token *PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*PasswordResetToken, error)
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type resetTokenRepository struct {
	db core.DBTX
}

func NewResetTokenRepository(db core.DBTX) ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

func (r *resetTokenRepository) Create(
	ctx context.Context,
	token *PasswordResetToken,
) error {
	query := `
		INSERT INTO password_reset_tokens (id, user_id, token, expires_at, created_at)
		VALUES (:id, :user_id, :token, :expires_at, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, token); err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}

	return nil
}

func (r *resetTokenRepository) FindByToken(
	ctx context.Context,
	token string,
) (*PasswordResetToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM password_reset_tokens
		WHERE token = $1`

	var row PasswordResetToken
	if err := r.db.GetContext(ctx, &row, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find reset token: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("find reset token: %w", err)
	}

	return &row, nil
}

func (r *resetTokenRepository) DeleteForUser(
	ctx context.Context,
	userID uuid.UUID,
) error {
	query := `DELETE FROM password_reset_tokens WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete reset tokens for user: %w", err)
	}

	return nil
}

func (r *resetTokenRepository) DeleteByID(
	ctx context.Context,
	id uuid.UUID,
) error {
	query := `DELETE FROM password_reset_tokens WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete reset token: %w", err)
	}

	return nil
}

func (r *resetTokenRepository) DeleteExpired(
	ctx context.Context,
	before time.Time,
) (int64, error) {
	query := `DELETE FROM password_reset_tokens WHERE expires_at < $1`

	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired reset tokens: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired reset tokens: %w", err)
	}

	return deleted, nil
}
