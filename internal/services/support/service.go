package support

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/services/rate"
)

var (
	ErrValidation = errors.New("validation error")
	ErrCooldown   = errors.New("support cooldown active")
)

// AdminRelay forwards a support message to every configured admin.
type AdminRelay interface {
	RelaySupport(ctx context.Context, fromUserID int64, fromLabel, text string) error
}

type Service struct {
	relay   AdminRelay
	limiter *rate.Limiter
}

func NewService(relay AdminRelay, limiter *rate.Limiter) *Service {
	return &Service{relay: relay, limiter: limiter}
}

// Forward relays one support message per cooldown window to the admins.
func (s *Service) Forward(ctx context.Context, fromUserID int64, fromLabel, text string) (time.Duration, error) {
	if s.relay == nil {
		return 0, fmt.Errorf("admin relay is nil")
	}
	if fromUserID <= 0 {
		return 0, fmt.Errorf("invalid user id: %w", ErrValidation)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("empty support message: %w", ErrValidation)
	}

	decision, err := s.limiter.Allow(ctx, fromUserID)
	if err != nil {
		return 0, fmt.Errorf("check support cooldown: %w", err)
	}
	if !decision.Allowed {
		return decision.RetryAfter, ErrCooldown
	}

	if err := s.relay.RelaySupport(ctx, fromUserID, fromLabel, text); err != nil {
		return 0, fmt.Errorf("relay support message: %w", err)
	}
	return 0, nil
}
