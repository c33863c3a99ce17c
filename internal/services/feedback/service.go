package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/services/rate"
)

var (
	ErrValidation = errors.New("validation error")
	ErrCooldown   = errors.New("feedback cooldown active")
)

const (
	minMessageLen = 5
	maxMessageLen = 800
)

type Store interface {
	Create(ctx context.Context, userID int64, message string) (int64, error)
}

type Service struct {
	store   Store
	limiter *rate.Limiter
}

func NewService(store Store, limiter *rate.Limiter) *Service {
	return &Service{store: store, limiter: limiter}
}

// Submit stores one feedback message per cooldown window. The returned
// duration is how long the sender has to wait when the window is still open.
func (s *Service) Submit(ctx context.Context, userID int64, message string) (int64, time.Duration, error) {
	if s.store == nil {
		return 0, 0, fmt.Errorf("feedback store is nil")
	}
	if userID <= 0 {
		return 0, 0, fmt.Errorf("invalid user id: %w", ErrValidation)
	}

	message = strings.TrimSpace(message)
	if n := utf8.RuneCountInString(message); n < minMessageLen || n > maxMessageLen {
		return 0, 0, fmt.Errorf("message length out of bounds: %w", ErrValidation)
	}

	decision, err := s.limiter.Allow(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("check feedback cooldown: %w", err)
	}
	if !decision.Allowed {
		return 0, decision.RetryAfter, ErrCooldown
	}

	id, err := s.store.Create(ctx, userID, message)
	if err != nil {
		return 0, 0, fmt.Errorf("create feedback: %w", err)
	}
	return id, 0, nil
}
