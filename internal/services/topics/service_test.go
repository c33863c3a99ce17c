package topics

import (
	"context"
	"errors"
	"testing"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
	pgrepo "github.com/PavelMaximov/NoDramaClub-bot/internal/repo/postgres"
)

type fakeStore struct {
	topics map[enums.TopicKey]model.Topic
}

func newFakeStore() *fakeStore {
	return &fakeStore{topics: map[enums.TopicKey]model.Topic{}}
}

func (f *fakeStore) Upsert(_ context.Context, topic model.Topic) error {
	f.topics[topic.Key] = topic
	return nil
}

func (f *fakeStore) Get(_ context.Context, key enums.TopicKey) (model.Topic, error) {
	topic, ok := f.topics[key]
	if !ok {
		return model.Topic{}, pgrepo.ErrTopicNotBound
	}
	return topic, nil
}

func (f *fakeStore) List(_ context.Context) ([]model.Topic, error) {
	out := make([]model.Topic, 0, len(f.topics))
	for _, topic := range f.topics {
		out = append(out, topic)
	}
	return out, nil
}

func TestBindNormalizesKeyAndUpserts(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	topic, err := svc.Bind(context.Background(), " Herren ", 42, "Männer")
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if topic.Key != enums.TopicKeyHerren || topic.ThreadID != 42 {
		t.Fatalf("unexpected topic: %+v", topic)
	}
	if _, ok := store.topics[enums.TopicKeyHerren]; !ok {
		t.Fatalf("topic not stored")
	}
}

func TestBindRejectsUnknownKeyAndBadThread(t *testing.T) {
	svc := NewService(newFakeStore())

	if _, err := svc.Bind(context.Background(), "kinder", 42, ""); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if _, err := svc.Bind(context.Background(), "herren", 0, ""); err == nil {
		t.Fatalf("expected error for zero thread id")
	}
}

func TestResolveReportsBindingPresence(t *testing.T) {
	store := newFakeStore()
	store.topics[enums.TopicKeyFrauen] = model.Topic{Key: enums.TopicKeyFrauen, ThreadID: 7}
	svc := NewService(store)

	topic, bound, err := svc.Resolve(context.Background(), enums.TopicKeyFrauen)
	if err != nil || !bound || topic.ThreadID != 7 {
		t.Fatalf("resolve bound: topic=%+v bound=%v err=%v", topic, bound, err)
	}

	_, bound, err = svc.Resolve(context.Background(), enums.TopicKeyHerren)
	if err != nil {
		t.Fatalf("missing binding must not error: %v", err)
	}
	if bound {
		t.Fatalf("herren must be unbound")
	}
}
