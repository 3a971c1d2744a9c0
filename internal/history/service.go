// AngelaMos | 2026
// service.go

package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends a completed generation transcript to the user's
// history.
func (s *Service) Record(
	ctx context.Context,
	userID, prompt, generatedContent string,
) (*Entry, error) {
	entry := &Entry{
		ID:               uuid.New().String(),
		UserID:           userID,
		Prompt:           prompt,
		GeneratedContent: generatedContent,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("record history: %w", err)
	}

	return entry, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}
