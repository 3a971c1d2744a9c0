// AngelaMos | 2026
// service.go

package collection

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/contentai/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// validID rejects malformed path ids before they reach the database.
// A garbage id is indistinguishable from a missing row to the caller.
func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("parse id: %w", core.ErrNotFound)
	}
	return nil
}

func (s *Service) Create(
	ctx context.Context,
	ownerID string,
	req CreateCollectionRequest,
) (*Collection, error) {
	c := &Collection{
		ID:      uuid.New().String(),
		Name:    req.Name,
		OwnerID: ownerID,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return c, nil
}

func (s *Service) List(
	ctx context.Context,
	ownerID string,
) ([]Collection, error) {
	collections, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return collections, nil
}

// Get returns the collection together with its contents, newest-first.
func (s *Service) Get(
	ctx context.Context,
	id, ownerID string,
) (*Collection, []Content, error) {
	if err := validID(id); err != nil {
		return nil, nil, err
	}

	c, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, nil, fmt.Errorf("get collection: %w", err)
	}

	contents, err := s.repo.ListContents(ctx, c.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("get collection: %w", err)
	}

	return c, contents, nil
}

func (s *Service) Update(
	ctx context.Context,
	id, ownerID string,
	req UpdateCollectionRequest,
) (*Collection, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateName(ctx, id, ownerID, req.Name); err != nil {
		return nil, fmt.Errorf("update collection: %w", err)
	}

	c, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("update collection: %w", err)
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	if err := validID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	return nil
}

// Content operations resolve the parent collection under the caller's
// ownership first, so a foreign or missing collection reads the same
// as a missing content item.

func (s *Service) CreateContent(
	ctx context.Context,
	collectionID, ownerID string,
	req CreateContentRequest,
) (*Content, error) {
	if err := validID(collectionID); err != nil {
		return nil, err
	}

	parent, err := s.repo.GetByID(ctx, collectionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}

	c := &Content{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Body:         req.Body,
		CollectionID: parent.ID,
	}

	if err := s.repo.CreateContent(ctx, c); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}

	return c, nil
}

func (s *Service) UpdateContent(
	ctx context.Context,
	collectionID, contentID, ownerID string,
	req UpdateContentRequest,
) (*Content, error) {
	if err := validID(collectionID); err != nil {
		return nil, err
	}
	if err := validID(contentID); err != nil {
		return nil, err
	}

	parent, err := s.repo.GetByID(ctx, collectionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}

	err = s.repo.UpdateContent(ctx, contentID, parent.ID, req.Title, req.Body)
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}

	c, err := s.repo.GetContent(ctx, contentID, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}

	return c, nil
}

func (s *Service) DeleteContent(
	ctx context.Context,
	collectionID, contentID, ownerID string,
) error {
	if err := validID(collectionID); err != nil {
		return err
	}
	if err := validID(contentID); err != nil {
		return err
	}

	parent, err := s.repo.GetByID(ctx, collectionID, ownerID)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}

	if err := s.repo.DeleteContent(ctx, contentID, parent.ID); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}

	return nil
}
