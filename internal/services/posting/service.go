package posting

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/infra/telegram"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/ui"
)

// Sender is the slice of the Telegram client the poster needs.
type Sender interface {
	SendText(chatID int64, text string) error
	SendToThread(chatID int64, threadID int, text string, markup *tgbotapi.InlineKeyboardMarkup) (int, error)
	SendMediaGroup(chatID int64, threadID int, fileIDs []string) ([]int64, error)
	DeleteMessage(chatID int64, messageID int) error
	ChatIdentity(ctx context.Context, userID int64) (telegram.Identity, error)
}

// Poster renders profiles into Telegram messages: admin moderation cards,
// group listings and user notices.
type Poster struct {
	sender      Sender
	logger      *zap.Logger
	adminIDs    []int64
	groupChatID int64
}

func NewPoster(sender Sender, logger *zap.Logger, adminIDs []int64, groupChatID int64) *Poster {
	return &Poster{
		sender:      sender,
		logger:      logger,
		adminIDs:    adminIDs,
		groupChatID: groupChatID,
	}
}

// NotifyAdmins sends the moderation card with photos to every admin. It fails
// only when no admin could be reached at all: one working admin is enough to
// keep the queue moving.
func (p *Poster) NotifyAdmins(ctx context.Context, profile model.Profile, photos []model.Photo) error {
	if p.sender == nil {
		return fmt.Errorf("sender is nil")
	}
	if len(p.adminIDs) == 0 {
		return fmt.Errorf("no admins configured")
	}

	label := fmt.Sprintf("id:%d", profile.UserID)
	if identity, err := p.sender.ChatIdentity(ctx, profile.UserID); err == nil {
		label = identity.Label()
	}

	card := ui.AdminCard(profile, label)
	markup := telegram.BuildInlineKeyboard(ui.AdminModerationButtons(profile.UserID))

	delivered := 0
	for _, adminID := range p.adminIDs {
		if _, err := p.sender.SendMediaGroup(adminID, 0, fileIDs(photos)); err != nil {
			p.logger.Warn("admin media group failed",
				zap.Int64("admin_id", adminID),
				zap.Error(err))
		}
		if _, err := p.sender.SendToThread(adminID, 0, card, &markup); err != nil {
			p.logger.Warn("admin card failed",
				zap.Int64("admin_id", adminID),
				zap.Error(err))
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return fmt.Errorf("moderation card reached no admin")
	}
	return nil
}

// Publish posts the listing into the topic thread: the media album first,
// then the text card with the contact and report buttons.
func (p *Poster) Publish(ctx context.Context, profile model.Profile, photos []model.Photo, topic model.Topic) (model.PostRef, error) {
	if p.sender == nil {
		return model.PostRef{}, fmt.Errorf("sender is nil")
	}
	if p.groupChatID == 0 {
		return model.PostRef{}, fmt.Errorf("group chat id is not configured")
	}
	if err := ctx.Err(); err != nil {
		return model.PostRef{}, err
	}

	mediaIDs, err := p.sender.SendMediaGroup(p.groupChatID, topic.ThreadID, fileIDs(photos))
	if err != nil {
		return model.PostRef{}, fmt.Errorf("publish media group: %w", err)
	}

	markup := telegram.BuildInlineKeyboard(ui.GroupCardButtons(profile.UserID))
	messageID, err := p.sender.SendToThread(p.groupChatID, topic.ThreadID, ui.GroupCard(profile), &markup)
	if err != nil {
		return model.PostRef{}, fmt.Errorf("publish card: %w", err)
	}

	return model.PostRef{
		ChatID:          p.groupChatID,
		ThreadID:        topic.ThreadID,
		MessageID:       messageID,
		MediaMessageIDs: mediaIDs,
	}, nil
}

// Unpublish removes the card and its album. Individual deletes may fail for
// messages that are already gone; the first error is reported after all
// deletes were attempted.
func (p *Poster) Unpublish(ctx context.Context, ref model.PostRef) error {
	if p.sender == nil {
		return fmt.Errorf("sender is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var firstErr error
	if err := p.sender.DeleteMessage(ref.ChatID, ref.MessageID); err != nil {
		firstErr = err
	}
	for _, mediaID := range ref.MediaMessageIDs {
		if err := p.sender.DeleteMessage(ref.ChatID, int(mediaID)); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return fmt.Errorf("delete published post: %w", firstErr)
	}
	return nil
}

func (p *Poster) ProfileApproved(_ context.Context, userID int64, inviteURL string) error {
	return p.sender.SendText(userID, ui.ProfileApprovedNotice(inviteURL))
}

func (p *Poster) ProfileRejected(_ context.Context, userID int64) error {
	return p.sender.SendText(userID, ui.ProfileRejectedNotice())
}

func (p *Poster) ProfileEditRequested(_ context.Context, userID int64, feedback string) error {
	return p.sender.SendText(userID, ui.EditRequestedNotice(feedback))
}

func (p *Poster) ProfileFieldFixRequested(_ context.Context, userID int64, field enums.EditField) error {
	markup := telegram.BuildInlineKeyboard(ui.FieldEntryButton(field))
	_, err := p.sender.SendToThread(userID, 0, ui.FieldFixNotice(field), &markup)
	return err
}

// RelaySupport fans a support message out to the admins with a reply button
// wired back to the sender.
func (p *Poster) RelaySupport(_ context.Context, fromUserID int64, fromLabel, text string) error {
	markup := telegram.BuildInlineKeyboard(ui.SupportReplyButton(fromUserID))
	return p.broadcast(ui.SupportRelayCard(fromLabel, fromUserID, text), &markup)
}

// BroadcastToAdmins sends a plain text notice to every admin, succeeding when
// at least one delivery worked.
func (p *Poster) BroadcastToAdmins(text string) error {
	return p.broadcast(text, nil)
}

func (p *Poster) broadcast(text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	if p.sender == nil {
		return fmt.Errorf("sender is nil")
	}
	if len(p.adminIDs) == 0 {
		return fmt.Errorf("no admins configured")
	}

	delivered := 0
	for _, adminID := range p.adminIDs {
		var err error
		if markup != nil {
			_, err = p.sender.SendToThread(adminID, 0, text, markup)
		} else {
			err = p.sender.SendText(adminID, text)
		}
		if err != nil {
			p.logger.Warn("admin broadcast failed",
				zap.Int64("admin_id", adminID),
				zap.Error(err))
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return fmt.Errorf("notice reached no admin")
	}
	return nil
}

func fileIDs(photos []model.Photo) []string {
	ids := make([]string, 0, len(photos))
	for _, photo := range photos {
		ids = append(ids, photo.FileID)
	}
	return ids
}
