// AngelaMos | 2026
// service_test.go

package generate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/contentai/internal/core"
	"github.com/angelamos/contentai/internal/history"
	"github.com/angelamos/contentai/internal/push"
)

type scriptedProvider struct {
	chunks []string
	err    error
}

func (p *scriptedProvider) Stream(
	_ context.Context,
	_ string,
	onChunk func(string) error,
) (string, error) {
	var full string
	for _, chunk := range p.chunks {
		full += chunk
		if err := onChunk(chunk); err != nil {
			return full, err
		}
	}
	if p.err != nil {
		return full, p.err
	}
	return full, nil
}

type fakeHistoryRepo struct {
	entries []history.Entry
	err     error
}

func (r *fakeHistoryRepo) Create(_ context.Context, entry *history.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) ListByUser(
	_ context.Context,
	userID string,
) ([]history.Entry, error) {
	out := []history.Entry{}
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type generateFixture struct {
	service *Service
	repo    *fakeHistoryRepo
	hub     *push.Hub
}

func newGenerateFixture(provider Provider) *generateFixture {
	logger := discardLogger()
	repo := &fakeHistoryRepo{}
	hub := push.NewHub(logger)

	cache := NewClientCache(func() (Provider, error) {
		if provider == nil {
			return nil, errors.New("missing api key")
		}
		return provider, nil
	}, logger)

	return &generateFixture{
		service: NewService(cache, history.NewService(repo), hub, logger),
		repo:    repo,
		hub:     hub,
	}
}

func drainEvents(events <-chan push.Event) []push.Event {
	out := []push.Event{}
	for {
		select {
		case event := <-events:
			out = append(out, event)
		default:
			return out
		}
	}
}

func TestGenerateRelaysChunksAndPersistsTranscript(t *testing.T) {
	f := newGenerateFixture(&scriptedProvider{
		chunks: []string{"Hello", ", ", "world"},
	})

	events, unsubscribe := f.hub.Subscribe("user-1")
	defer unsubscribe()

	entry, err := f.service.Generate(context.Background(), "user-1", "greet")
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", entry.GeneratedContent)
	assert.Equal(t, "greet", entry.Prompt)

	received := drainEvents(events)
	require.Len(t, received, 4)

	for i, chunk := range []string{"Hello", ", ", "world"} {
		assert.Equal(t, push.EventGeneratedChunk, received[i].Type)
		assert.Equal(t, chunk, received[i].Data["chunk"])
	}

	final := received[3]
	assert.Equal(t, push.EventGeneratedComplete, final.Type)
	assert.Equal(t, "Hello, world", final.Data["full_content"])

	require.Len(t, f.repo.entries, 1)
	assert.Equal(t, "Hello, world", f.repo.entries[0].GeneratedContent)
}

func TestGenerateProviderFailureEmitsErrorEvent(t *testing.T) {
	f := newGenerateFixture(&scriptedProvider{
		chunks: []string{"partial"},
		err:    fmt.Errorf("stream cut: %w", core.ErrUpstream),
	})

	events, unsubscribe := f.hub.Subscribe("user-1")
	defer unsubscribe()

	_, err := f.service.Generate(context.Background(), "user-1", "greet")
	require.Error(t, err)

	received := drainEvents(events)
	require.Len(t, received, 2)
	assert.Equal(t, push.EventGeneratedChunk, received[0].Type)
	assert.Equal(t, push.EventGeneratedError, received[1].Type)
	assert.Equal(t, "generation failed", received[1].Data["error"])

	// Failed streams never reach history.
	assert.Empty(t, f.repo.entries)
}

func TestGenerateUnconfiguredProvider(t *testing.T) {
	f := newGenerateFixture(nil)

	events, unsubscribe := f.hub.Subscribe("user-1")
	defer unsubscribe()

	_, err := f.service.Generate(context.Background(), "user-1", "greet")
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.Status)

	received := drainEvents(events)
	require.Len(t, received, 1)
	assert.Equal(t, push.EventGeneratedError, received[0].Type)
}

func TestGeneratePersistFailure(t *testing.T) {
	f := newGenerateFixture(&scriptedProvider{chunks: []string{"ok"}})
	f.repo.err = errors.New("db down")

	_, err := f.service.Generate(context.Background(), "user-1", "greet")
	require.Error(t, err)
	assert.Empty(t, f.repo.entries)
}
