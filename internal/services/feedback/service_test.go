package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redisrepo "github.com/PavelMaximov/NoDramaClub-bot/internal/repo/redis"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/services/rate"
)

type fakeStore struct {
	messages []string
}

func (f *fakeStore) Create(_ context.Context, _ int64, message string) (int64, error) {
	f.messages = append(f.messages, message)
	return int64(len(f.messages)), nil
}

func newTestService(t *testing.T) (*Service, *fakeStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := &fakeStore{}
	limiter := rate.NewLimiter(redisrepo.NewRateRepo(client), "feedback", 2*time.Hour, 1)
	return NewService(store, limiter), store, mr
}

func TestSubmitStoresTrimmedMessage(t *testing.T) {
	svc, store, _ := newTestService(t)

	id, _, err := svc.Submit(context.Background(), 42, "  Die Termine könnten früher sein.  ")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id != 1 || store.messages[0] != "Die Termine könnten früher sein." {
		t.Fatalf("unexpected stored message: %v", store.messages)
	}
}

func TestSubmitCooldown(t *testing.T) {
	svc, store, mr := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Submit(ctx, 42, "Erste Rückmeldung hier."); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, retryAfter, err := svc.Submit(ctx, 42, "Zweite Rückmeldung hier.")
	if !errors.Is(err, ErrCooldown) {
		t.Fatalf("expected ErrCooldown, got %v", err)
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retryAfter)
	}
	if len(store.messages) != 1 {
		t.Fatalf("cooldown submit must not be stored")
	}

	mr.FastForward(2*time.Hour + time.Minute)

	if _, _, err := svc.Submit(ctx, 42, "Dritte Rückmeldung hier."); err != nil {
		t.Fatalf("submit after cooldown: %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, store, _ := newTestService(t)

	if _, _, err := svc.Submit(context.Background(), 42, "kurz"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(store.messages) != 0 {
		t.Fatalf("invalid message must not be stored")
	}
}
