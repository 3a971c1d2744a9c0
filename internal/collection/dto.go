// AngelaMos | 2026
// dto.go

package collection

import "time"

type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateCollectionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateContentRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Body  string `json:"body"  validate:"required"`
}

type UpdateContentRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Body  string `json:"body"  validate:"required"`
}

type CollectionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CollectionDetailResponse carries the collection together with its
// content items, newest-first.
type CollectionDetailResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CreatedAt time.Time         `json:"created_at"`
	Contents  []ContentResponse `json:"contents"`
}

type ContentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCollectionResponse(c *Collection) CollectionResponse {
	return CollectionResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

func ToCollectionResponseList(collections []Collection) []CollectionResponse {
	responses := make([]CollectionResponse, 0, len(collections))
	for _, c := range collections {
		responses = append(responses, ToCollectionResponse(&c))
	}
	return responses
}

func ToCollectionDetailResponse(
	c *Collection,
	contents []Content,
) CollectionDetailResponse {
	return CollectionDetailResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		Contents:  ToContentResponseList(contents),
	}
}

func ToContentResponse(c *Content) ContentResponse {
	return ContentResponse{
		ID:        c.ID,
		Title:     c.Title,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func ToContentResponseList(contents []Content) []ContentResponse {
	responses := make([]ContentResponse, 0, len(contents))
	for _, c := range contents {
		responses = append(responses, ToContentResponse(&c))
	}
	return responses
}
