package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrValidation = errors.New("validation error")
	ErrSelfReport = errors.New("cannot report own profile")
)

const (
	minReasonLen = 3
	maxReasonLen = 400
	recentWindow = 7 * 24 * time.Hour
)

type Store interface {
	Create(ctx context.Context, reporterUserID, targetUserID int64, reason string) (int64, error)
	CountForTargetSince(ctx context.Context, targetUserID int64, since time.Time) (int, error)
}

// Service records reports against published profiles and tells the caller
// how often the target was reported recently, so repeat offenders stand out
// in the admin notice.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

func (s *Service) Report(ctx context.Context, reporterUserID, targetUserID int64, reason string) (int64, int, error) {
	if s.store == nil {
		return 0, 0, fmt.Errorf("report store is nil")
	}
	if reporterUserID <= 0 || targetUserID <= 0 {
		return 0, 0, fmt.Errorf("invalid user ids: %w", ErrValidation)
	}
	if reporterUserID == targetUserID {
		return 0, 0, ErrSelfReport
	}

	reason = strings.TrimSpace(reason)
	if n := utf8.RuneCountInString(reason); n < minReasonLen || n > maxReasonLen {
		return 0, 0, fmt.Errorf("reason length out of bounds: %w", ErrValidation)
	}

	id, err := s.store.Create(ctx, reporterUserID, targetUserID, reason)
	if err != nil {
		return 0, 0, fmt.Errorf("create report: %w", err)
	}

	recent, err := s.store.CountForTargetSince(ctx, targetUserID, s.now().Add(-recentWindow))
	if err != nil {
		return 0, 0, fmt.Errorf("count recent reports: %w", err)
	}
	return id, recent, nil
}
