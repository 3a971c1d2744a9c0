// AngelaMos | 2026
// service_test.go

package collection

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/contentai/internal/core"
)

type fakeRepository struct {
	collections map[string]*Collection
	contents    map[string]*Content
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		collections: make(map[string]*Collection),
		contents:    make(map[string]*Content),
	}
}

func (r *fakeRepository) Create(_ context.Context, c *Collection) error {
	c.CreatedAt = time.Now()
	copied := *c
	r.collections[c.ID] = &copied
	return nil
}

func (r *fakeRepository) GetByID(
	_ context.Context,
	id, ownerID string,
) (*Collection, error) {
	c, ok := r.collections[id]
	if !ok || c.OwnerID != ownerID {
		return nil, fmt.Errorf("get collection: %w", core.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeRepository) ListByOwner(
	_ context.Context,
	ownerID string,
) ([]Collection, error) {
	out := []Collection{}
	for _, c := range r.collections {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeRepository) UpdateName(
	_ context.Context,
	id, ownerID, name string,
) error {
	c, ok := r.collections[id]
	if !ok || c.OwnerID != ownerID {
		return fmt.Errorf("update collection: %w", core.ErrNotFound)
	}
	c.Name = name
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id, ownerID string) error {
	c, ok := r.collections[id]
	if !ok || c.OwnerID != ownerID {
		return fmt.Errorf("delete collection: %w", core.ErrNotFound)
	}
	delete(r.collections, id)
	for cid, content := range r.contents {
		if content.CollectionID == id {
			delete(r.contents, cid)
		}
	}
	return nil
}

func (r *fakeRepository) CreateContent(_ context.Context, c *Content) error {
	c.CreatedAt = time.Now()
	copied := *c
	r.contents[c.ID] = &copied
	return nil
}

func (r *fakeRepository) GetContent(
	_ context.Context,
	id, collectionID string,
) (*Content, error) {
	c, ok := r.contents[id]
	if !ok || c.CollectionID != collectionID {
		return nil, fmt.Errorf("get content: %w", core.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeRepository) ListContents(
	_ context.Context,
	collectionID string,
) ([]Content, error) {
	out := []Content{}
	for _, c := range r.contents {
		if c.CollectionID == collectionID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeRepository) UpdateContent(
	_ context.Context,
	id, collectionID, title, body string,
) error {
	c, ok := r.contents[id]
	if !ok || c.CollectionID != collectionID {
		return fmt.Errorf("update content: %w", core.ErrNotFound)
	}
	c.Title = title
	c.Body = body
	return nil
}

func (r *fakeRepository) DeleteContent(
	_ context.Context,
	id, collectionID string,
) error {
	c, ok := r.contents[id]
	if !ok || c.CollectionID != collectionID {
		return fmt.Errorf("delete content: %w", core.ErrNotFound)
	}
	delete(r.contents, id)
	return nil
}

var (
	ownerA = uuid.New().String()
	ownerB = uuid.New().String()
)

func TestCreateAndListCollections(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, ownerA, CreateCollectionRequest{Name: "N"})
	require.NoError(t, err)
	assert.Equal(t, "N", created.Name)
	assert.Equal(t, ownerA, created.OwnerID)

	listed, err := svc.List(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestOwnershipIsolation(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, ownerA, CreateCollectionRequest{Name: "N"})
	require.NoError(t, err)

	// Another user's collection reads as missing, never as forbidden.
	_, _, err = svc.Get(ctx, created.ID, ownerB)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.Update(ctx, created.ID, ownerB, UpdateCollectionRequest{Name: "X"})
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = svc.Delete(ctx, created.ID, ownerB)
	assert.ErrorIs(t, err, core.ErrNotFound)

	listed, err := svc.List(ctx, ownerB)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestGetIncludesContents(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, ownerA, CreateCollectionRequest{Name: "N"})
	require.NoError(t, err)

	content, err := svc.CreateContent(ctx, created.ID, ownerA, CreateContentRequest{
		Title: "T",
		Body:  "B",
	})
	require.NoError(t, err)

	_, contents, err := svc.Get(ctx, created.ID, ownerA)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, content.ID, contents[0].ID)
}

func TestContentScopedThroughParentCollection(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, ownerA, CreateCollectionRequest{Name: "N"})
	require.NoError(t, err)

	content, err := svc.CreateContent(ctx, created.ID, ownerA, CreateContentRequest{
		Title: "T",
		Body:  "B",
	})
	require.NoError(t, err)

	// The owner of another account cannot reach the content through
	// the same collection id.
	_, err = svc.UpdateContent(ctx, created.ID, content.ID, ownerB, UpdateContentRequest{
		Title: "X",
		Body:  "Y",
	})
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = svc.DeleteContent(ctx, created.ID, content.ID, ownerB)
	assert.ErrorIs(t, err, core.ErrNotFound)

	// Creating content under a foreign collection fails the same way.
	_, err = svc.CreateContent(ctx, created.ID, ownerB, CreateContentRequest{
		Title: "T2",
		Body:  "B2",
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateContent(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, ownerA, CreateCollectionRequest{Name: "N"})
	require.NoError(t, err)

	content, err := svc.CreateContent(ctx, created.ID, ownerA, CreateContentRequest{
		Title: "T",
		Body:  "B",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateContent(ctx, created.ID, content.ID, ownerA, UpdateContentRequest{
		Title: "T2",
		Body:  "B2",
	})
	require.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, "B2", updated.Body)
}

func TestMalformedIDReadsAsMissing(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	_, _, err := svc.Get(ctx, "not-a-uuid", ownerA)
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = svc.Delete(ctx, "42", ownerA)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
