package contacts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrSelfContact     = errors.New("cannot contact own profile")
	ErrDailyLimit      = errors.New("daily contact limit reached")
	ErrAlreadyAnswered = errors.New("contact request already answered")
)

const (
	minMessageLen = 3
	maxMessageLen = 400
	limitWindow   = 24 * time.Hour
)

type Store interface {
	Create(ctx context.Context, fromUserID, toUserID int64, message string) (int64, error)
	Get(ctx context.Context, id int64) (model.ContactRequest, error)
	SetStatus(ctx context.Context, id int64, status enums.ContactStatus) error
	CountSentSince(ctx context.Context, fromUserID int64, since time.Time) (int, error)
}

// Service mediates anonymous contact requests between profile owners. The
// sender's identity is revealed only after the target accepts.
type Service struct {
	store    Store
	dailyMax int
	now      func() time.Time
}

func NewService(store Store, dailyMax int) *Service {
	return &Service{
		store:    store,
		dailyMax: dailyMax,
		now:      time.Now,
	}
}

// Send records a new pending request after the sender's daily quota check.
func (s *Service) Send(ctx context.Context, fromUserID, toUserID int64, message string) (int64, error) {
	if s.store == nil {
		return 0, fmt.Errorf("contact store is nil")
	}
	if fromUserID <= 0 || toUserID <= 0 {
		return 0, fmt.Errorf("invalid user ids: %w", ErrValidation)
	}
	if fromUserID == toUserID {
		return 0, ErrSelfContact
	}

	message = strings.TrimSpace(message)
	if len([]rune(message)) < minMessageLen || len([]rune(message)) > maxMessageLen {
		return 0, fmt.Errorf("message length out of bounds: %w", ErrValidation)
	}

	sent, err := s.store.CountSentSince(ctx, fromUserID, s.now().Add(-limitWindow))
	if err != nil {
		return 0, fmt.Errorf("count sent requests: %w", err)
	}
	if sent >= s.dailyMax {
		return 0, ErrDailyLimit
	}

	id, err := s.store.Create(ctx, fromUserID, toUserID, message)
	if err != nil {
		return 0, fmt.Errorf("create contact request: %w", err)
	}
	return id, nil
}

// Accept marks the request accepted and returns it so the caller can reveal
// the sender to the target and vice versa. Only the target may answer, and
// only once.
func (s *Service) Accept(ctx context.Context, id, actingUserID int64) (model.ContactRequest, error) {
	return s.answer(ctx, id, actingUserID, enums.ContactStatusAccepted)
}

// Decline marks the request declined without revealing anyone.
func (s *Service) Decline(ctx context.Context, id, actingUserID int64) (model.ContactRequest, error) {
	return s.answer(ctx, id, actingUserID, enums.ContactStatusDeclined)
}

func (s *Service) answer(ctx context.Context, id, actingUserID int64, status enums.ContactStatus) (model.ContactRequest, error) {
	if s.store == nil {
		return model.ContactRequest{}, fmt.Errorf("contact store is nil")
	}

	req, err := s.store.Get(ctx, id)
	if err != nil {
		return model.ContactRequest{}, fmt.Errorf("load contact request: %w", err)
	}
	if req.ToUserID != actingUserID {
		return model.ContactRequest{}, fmt.Errorf("request %d does not address user %d: %w", id, actingUserID, ErrValidation)
	}
	if req.Status != enums.ContactStatusPending {
		return model.ContactRequest{}, ErrAlreadyAnswered
	}

	if err := s.store.SetStatus(ctx, id, status); err != nil {
		return model.ContactRequest{}, fmt.Errorf("set contact status: %w", err)
	}
	req.Status = status
	return req, nil
}
