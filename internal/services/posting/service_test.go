package posting

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/infra/telegram"
)

type sentCard struct {
	chatID   int64
	threadID int
	text     string
}

type fakeSender struct {
	texts       map[int64][]string
	cards       []sentCard
	mediaGroups []sentCard
	deleted     []int
	failChats   map[int64]bool
	nextMsgID   int
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		texts:     map[int64][]string{},
		failChats: map[int64]bool{},
		nextMsgID: 100,
	}
}

func (f *fakeSender) SendText(chatID int64, text string) error {
	if f.failChats[chatID] {
		return errors.New("chat unreachable")
	}
	f.texts[chatID] = append(f.texts[chatID], text)
	return nil
}

func (f *fakeSender) SendToThread(chatID int64, threadID int, text string, _ *tgbotapi.InlineKeyboardMarkup) (int, error) {
	if f.failChats[chatID] {
		return 0, errors.New("chat unreachable")
	}
	f.cards = append(f.cards, sentCard{chatID: chatID, threadID: threadID, text: text})
	f.nextMsgID++
	return f.nextMsgID, nil
}

func (f *fakeSender) SendMediaGroup(chatID int64, threadID int, fileIDs []string) ([]int64, error) {
	if f.failChats[chatID] {
		return nil, errors.New("chat unreachable")
	}
	f.mediaGroups = append(f.mediaGroups, sentCard{chatID: chatID, threadID: threadID, text: strings.Join(fileIDs, ",")})
	ids := make([]int64, 0, len(fileIDs))
	for range fileIDs {
		f.nextMsgID++
		ids = append(ids, int64(f.nextMsgID))
	}
	return ids, nil
}

func (f *fakeSender) DeleteMessage(_ int64, messageID int) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeSender) ChatIdentity(_ context.Context, userID int64) (telegram.Identity, error) {
	return telegram.Identity{UserID: userID, Username: "max"}, nil
}

func testProfile() model.Profile {
	return model.Profile{
		UserID:             42,
		Gender:             enums.GenderMale,
		RelationshipStatus: enums.RelationshipSingle,
		DisplayName:        "Max",
		CityMain:           "Berlin",
		Age:                28,
		About:              "Про себя длинно и содержательно.",
		State:              enums.ProfileStatePending,
	}
}

func testPhotos() []model.Photo {
	return []model.Photo{
		{FileID: "p1", OrderIndex: 0},
		{FileID: "p2", OrderIndex: 1},
	}
}

func TestNotifyAdminsDeliversCardToEveryAdmin(t *testing.T) {
	sender := newFakeSender()
	poster := NewPoster(sender, zap.NewNop(), []int64{7, 8}, -100)

	if err := poster.NotifyAdmins(context.Background(), testProfile(), testPhotos()); err != nil {
		t.Fatalf("notify admins: %v", err)
	}
	if len(sender.cards) != 2 || len(sender.mediaGroups) != 2 {
		t.Fatalf("expected card and album per admin: cards=%d media=%d", len(sender.cards), len(sender.mediaGroups))
	}
	if !strings.Contains(sender.cards[0].text, "@max") {
		t.Fatalf("card misses sender identity:\n%s", sender.cards[0].text)
	}
}

func TestNotifyAdminsSurvivesOneUnreachableAdmin(t *testing.T) {
	sender := newFakeSender()
	sender.failChats[7] = true
	poster := NewPoster(sender, zap.NewNop(), []int64{7, 8}, -100)

	if err := poster.NotifyAdmins(context.Background(), testProfile(), testPhotos()); err != nil {
		t.Fatalf("one reachable admin must be enough: %v", err)
	}
}

func TestNotifyAdminsFailsWhenNobodyReachable(t *testing.T) {
	sender := newFakeSender()
	sender.failChats[7] = true
	poster := NewPoster(sender, zap.NewNop(), []int64{7}, -100)

	if err := poster.NotifyAdmins(context.Background(), testProfile(), testPhotos()); err == nil {
		t.Fatalf("expected error when no admin was reached")
	}
}

func TestPublishBuildsPostRef(t *testing.T) {
	sender := newFakeSender()
	poster := NewPoster(sender, zap.NewNop(), []int64{7}, -100)
	topic := model.Topic{Key: enums.TopicKeyHerren, ThreadID: 33}

	ref, err := poster.Publish(context.Background(), testProfile(), testPhotos(), topic)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if ref.ChatID != -100 || ref.ThreadID != 33 {
		t.Fatalf("wrong ref target: %+v", ref)
	}
	if ref.MessageID == 0 || len(ref.MediaMessageIDs) != 2 {
		t.Fatalf("ref misses message ids: %+v", ref)
	}
	if len(sender.mediaGroups) != 1 || sender.mediaGroups[0].threadID != 33 {
		t.Fatalf("album not sent into thread: %+v", sender.mediaGroups)
	}
}

func TestUnpublishDeletesCardAndAlbum(t *testing.T) {
	sender := newFakeSender()
	poster := NewPoster(sender, zap.NewNop(), []int64{7}, -100)

	ref := model.PostRef{ChatID: -100, MessageID: 55, MediaMessageIDs: []int64{53, 54}}
	if err := poster.Unpublish(context.Background(), ref); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if len(sender.deleted) != 3 {
		t.Fatalf("expected 3 deletes, got %v", sender.deleted)
	}
}

func TestRelaySupportCarriesSenderAndReachesAdmins(t *testing.T) {
	sender := newFakeSender()
	sender.failChats[7] = true
	poster := NewPoster(sender, zap.NewNop(), []int64{7, 8}, -100)

	if err := poster.RelaySupport(context.Background(), 42, "@max", "не работает кнопка"); err != nil {
		t.Fatalf("relay support: %v", err)
	}
	if len(sender.cards) != 1 {
		t.Fatalf("expected one delivered relay, got %d", len(sender.cards))
	}
	if sender.cards[0].chatID != 8 {
		t.Fatalf("relay went to the wrong admin: %d", sender.cards[0].chatID)
	}
	if !strings.Contains(sender.cards[0].text, "@max") || !strings.Contains(sender.cards[0].text, "не работает кнопка") {
		t.Fatalf("relay card misses sender or text:\n%s", sender.cards[0].text)
	}
}

func TestBroadcastToAdminsNeedsOneDelivery(t *testing.T) {
	sender := newFakeSender()
	sender.failChats[7] = true
	poster := NewPoster(sender, zap.NewNop(), []int64{7, 8}, -100)

	if err := poster.BroadcastToAdmins("жалоба"); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if len(sender.texts[8]) != 1 {
		t.Fatalf("reachable admin did not get the notice")
	}
}
