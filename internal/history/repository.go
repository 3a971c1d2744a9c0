// AngelaMos | 2026
// repository.go

package history

import (
	"context"
	"fmt"

	"github.com/angelamos/contentai/internal/core"
)

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO generation_history (id, user_id, prompt, generated_content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &entry.CreatedAt, query,
		entry.ID, entry.UserID, entry.Prompt, entry.GeneratedContent,
	)
	if err != nil {
		return fmt.Errorf("create history entry: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Entry, error) {
	query := `
		SELECT id, user_id, prompt, generated_content, created_at
		FROM generation_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	entries := []Entry{}
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return entries, nil
}
