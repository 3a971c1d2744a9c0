// AngelaMos | 2026
// service.go

package generate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/angelamos/contentai/internal/core"
	"github.com/angelamos/contentai/internal/history"
	"github.com/angelamos/contentai/internal/push"
)

type Service struct {
	cache   *ClientCache
	history *history.Service
	hub     *push.Hub
	logger  *slog.Logger
}

func NewService(
	cache *ClientCache,
	historyService *history.Service,
	hub *push.Hub,
	logger *slog.Logger,
) *Service {
	return &Service{
		cache:   cache,
		history: historyService,
		hub:     hub,
		logger:  logger,
	}
}

// Generate forwards the prompt to the provider, relays each chunk to
// the user's push channel as it arrives, and persists the full
// transcript on success. There is no retry: a mid-stream failure
// emits an error event and reports failure to the caller.
func (s *Service) Generate(
	ctx context.Context,
	userID, prompt string,
) (*history.Entry, error) {
	provider, err := s.cache.Get()
	if err != nil {
		s.hub.PublishError(userID, "generation failed", "provider not configured")
		return nil, core.NewAppError(
			err,
			"generation provider is not configured",
			http.StatusInternalServerError,
			"provider_unconfigured",
		)
	}

	fullContent, err := provider.Stream(ctx, prompt, func(chunk string) error {
		s.hub.PublishChunk(userID, chunk)
		return nil
	})
	if err != nil {
		s.logger.Error("generation stream failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		s.hub.PublishError(userID, "generation failed", err.Error())
		return nil, core.UpstreamError("generation failed", err)
	}

	entry, err := s.history.Record(ctx, userID, prompt, fullContent)
	if err != nil {
		s.hub.PublishError(userID, "generation failed", "failed to save transcript")
		return nil, fmt.Errorf("generate: %w", err)
	}

	s.hub.PublishComplete(userID, fullContent)

	return entry, nil
}
