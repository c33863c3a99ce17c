package topics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
	pgrepo "github.com/PavelMaximov/NoDramaClub-bot/internal/repo/postgres"
)

var ErrUnknownKey = errors.New("unknown topic key")

type Store interface {
	Upsert(ctx context.Context, topic model.Topic) error
	Get(ctx context.Context, key enums.TopicKey) (model.Topic, error)
	List(ctx context.Context) ([]model.Topic, error)
}

// Service maintains the key-to-thread bindings approved profiles publish into.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Bind maps a topic key to a forum thread. Re-binding an existing key moves
// future publications; already published posts are not touched.
func (s *Service) Bind(ctx context.Context, rawKey string, threadID int, title string) (model.Topic, error) {
	if s.store == nil {
		return model.Topic{}, fmt.Errorf("topic store is nil")
	}

	key, ok := enums.ParseTopicKey(strings.ToLower(strings.TrimSpace(rawKey)))
	if !ok {
		return model.Topic{}, fmt.Errorf("%w: %q", ErrUnknownKey, rawKey)
	}
	if threadID <= 0 {
		return model.Topic{}, fmt.Errorf("thread id must be positive")
	}

	topic := model.Topic{Key: key, ThreadID: threadID, Title: strings.TrimSpace(title)}
	if err := s.store.Upsert(ctx, topic); err != nil {
		return model.Topic{}, fmt.Errorf("bind topic: %w", err)
	}
	return topic, nil
}

// Resolve reports the bound thread for a key. A missing binding is not an
// error here; the caller decides whether that blocks its operation.
func (s *Service) Resolve(ctx context.Context, key enums.TopicKey) (model.Topic, bool, error) {
	if s.store == nil {
		return model.Topic{}, false, fmt.Errorf("topic store is nil")
	}

	topic, err := s.store.Get(ctx, key)
	if errors.Is(err, pgrepo.ErrTopicNotBound) {
		return model.Topic{}, false, nil
	}
	if err != nil {
		return model.Topic{}, false, fmt.Errorf("resolve topic: %w", err)
	}
	return topic, true, nil
}

func (s *Service) List(ctx context.Context) ([]model.Topic, error) {
	if s.store == nil {
		return nil, fmt.Errorf("topic store is nil")
	}

	topics, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}
