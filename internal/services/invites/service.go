package invites

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LinkCreator is the transport operation behind invite issuing. The created
// link admits a single member and expires at the given time.
type LinkCreator interface {
	CreateInviteLink(chatID int64, name string, expireAt time.Time) (string, error)
}

// Service issues single-use, time-limited invite links into the group chat.
type Service struct {
	creator LinkCreator
	chatID  int64
	ttl     time.Duration
	now     func() time.Time
}

func NewService(creator LinkCreator, chatID int64, ttl time.Duration) *Service {
	return &Service{
		creator: creator,
		chatID:  chatID,
		ttl:     ttl,
		now:     time.Now,
	}
}

// CreateOneTimeLink issues a fresh invite. Each link gets a unique name so
// admins can tell issued links apart in the chat's invite list.
func (s *Service) CreateOneTimeLink(ctx context.Context) (string, error) {
	if s.creator == nil {
		return "", fmt.Errorf("link creator is nil")
	}
	if s.chatID == 0 {
		return "", fmt.Errorf("group chat id is not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := "invite-" + uuid.NewString()[:8]
	url, err := s.creator.CreateInviteLink(s.chatID, name, s.now().Add(s.ttl))
	if err != nil {
		return "", fmt.Errorf("create invite link: %w", err)
	}
	return url, nil
}
