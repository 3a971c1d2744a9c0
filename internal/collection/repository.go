// AngelaMos | 2026
// repository.go

package collection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/angelamos/contentai/internal/core"
)

// Repository scopes every collection lookup by owner and every
// content lookup by parent collection. Rows outside the caller's
// scope surface as core.ErrNotFound, never as a permission error.
type Repository interface {
	Create(ctx context.Context, c *Collection) error
	GetByID(ctx context.Context, id, ownerID string) (*Collection, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Collection, error)
	UpdateName(ctx context.Context, id, ownerID, name string) error
	Delete(ctx context.Context, id, ownerID string) error

	CreateContent(ctx context.Context, c *Content) error
	GetContent(ctx context.Context, id, collectionID string) (*Content, error)
	ListContents(ctx context.Context, collectionID string) ([]Content, error)
	UpdateContent(ctx context.Context, id, collectionID, title, body string) error
	DeleteContent(ctx context.Context, id, collectionID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Collection) error {
	query := `
		INSERT INTO collections (id, name, owner_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &c.CreatedAt, query, c.ID, c.Name, c.OwnerID)
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id, ownerID string,
) (*Collection, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM collections
		WHERE id = $1 AND owner_id = $2`

	var c Collection
	if err := r.db.GetContext(ctx, &c, query, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get collection: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}

	return &c, nil
}

func (r *repository) ListByOwner(
	ctx context.Context,
	ownerID string,
) ([]Collection, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM collections
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`

	collections := []Collection{}
	if err := r.db.SelectContext(ctx, &collections, query, ownerID); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	return collections, nil
}

func (r *repository) UpdateName(
	ctx context.Context,
	id, ownerID, name string,
) error {
	query := `
		UPDATE collections
		SET name = $3
		WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID, name)
	if err != nil {
		return fmt.Errorf("update collection: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update collection: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update collection: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM collections WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete collection: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CreateContent(ctx context.Context, c *Content) error {
	query := `
		INSERT INTO contents (id, title, body, collection_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &c.CreatedAt, query,
		c.ID, c.Title, c.Body, c.CollectionID,
	)
	if err != nil {
		return fmt.Errorf("create content: %w", err)
	}

	return nil
}

func (r *repository) GetContent(
	ctx context.Context,
	id, collectionID string,
) (*Content, error) {
	query := `
		SELECT id, title, body, collection_id, created_at
		FROM contents
		WHERE id = $1 AND collection_id = $2`

	var c Content
	if err := r.db.GetContext(ctx, &c, query, id, collectionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get content: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get content: %w", err)
	}

	return &c, nil
}

func (r *repository) ListContents(
	ctx context.Context,
	collectionID string,
) ([]Content, error) {
	query := `
		SELECT id, title, body, collection_id, created_at
		FROM contents
		WHERE collection_id = $1
		ORDER BY created_at DESC, id DESC`

	contents := []Content{}
	if err := r.db.SelectContext(ctx, &contents, query, collectionID); err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}

	return contents, nil
}

func (r *repository) UpdateContent(
	ctx context.Context,
	id, collectionID, title, body string,
) error {
	query := `
		UPDATE contents
		SET title = $3, body = $4
		WHERE id = $1 AND collection_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, collectionID, title, body)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update content: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteContent(
	ctx context.Context,
	id, collectionID string,
) error {
	query := `DELETE FROM contents WHERE id = $1 AND collection_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, collectionID)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete content: %w", core.ErrNotFound)
	}

	return nil
}
