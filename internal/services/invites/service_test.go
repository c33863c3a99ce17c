package invites

import (
	"context"
	"testing"
	"time"
)

type fakeCreator struct {
	chatID   int64
	names    []string
	expireAt time.Time
}

func (f *fakeCreator) CreateInviteLink(chatID int64, name string, expireAt time.Time) (string, error) {
	f.chatID = chatID
	f.names = append(f.names, name)
	f.expireAt = expireAt
	return "https://t.me/+" + name, nil
}

func TestCreateOneTimeLink(t *testing.T) {
	creator := &fakeCreator{}
	svc := NewService(creator, -100123, 24*time.Hour)
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	url, err := svc.CreateOneTimeLink(context.Background())
	if err != nil {
		t.Fatalf("create link: %v", err)
	}
	if url == "" {
		t.Fatalf("empty url")
	}
	if creator.chatID != -100123 {
		t.Fatalf("wrong chat id: %d", creator.chatID)
	}
	if !creator.expireAt.Equal(fixed.Add(24 * time.Hour)) {
		t.Fatalf("wrong expiry: %v", creator.expireAt)
	}
}

func TestLinkNamesAreUnique(t *testing.T) {
	creator := &fakeCreator{}
	svc := NewService(creator, -100123, time.Hour)

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateOneTimeLink(context.Background()); err != nil {
			t.Fatalf("create link %d: %v", i, err)
		}
	}

	seen := map[string]bool{}
	for _, name := range creator.names {
		if seen[name] {
			t.Fatalf("duplicate link name %q", name)
		}
		seen[name] = true
	}
}

func TestCreateRequiresConfiguredChat(t *testing.T) {
	svc := NewService(&fakeCreator{}, 0, time.Hour)

	if _, err := svc.CreateOneTimeLink(context.Background()); err == nil {
		t.Fatalf("expected error without chat id")
	}
}
