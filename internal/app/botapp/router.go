package botapp

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/infra/telegram"
	contactssvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/contacts"
	feedbacksvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/feedback"
	lifecyclesvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/lifecycle"
	reportssvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/reports"
	supportsvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/support"
	topicssvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/topics"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/services/wizard"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/ui"
)

func (a *App) routeUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil {
		a.routeMessage(ctx, update.Message)
	}
	if update.CallbackQuery != nil {
		a.handleCallback(ctx, update.CallbackQuery)
	}
}

func (a *App) routeMessage(ctx context.Context, message *tgbotapi.Message) {
	if message == nil || message.Chat == nil {
		return
	}

	if message.Chat.ID == a.cfg.Bot.GroupChatID {
		a.handleGroupMessage(message)
		return
	}
	if message.From == nil || !message.Chat.IsPrivate() {
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			a.handleStart(ctx, message)
		case "menu":
			a.sendMenu(ctx, chatID, userID)
		case "cancel":
			a.handleCancel(chatID)
		case "bind_topic":
			a.handleBindTopic(ctx, message)
		case "topics":
			a.handleTopics(ctx, message)
		default:
			a.sendText(chatID, ui.UnknownCommand())
		}
		return
	}

	if p, ok := a.pending(chatID); ok && message.Text != "" {
		a.handlePendingText(ctx, message, p)
		return
	}

	if sess, ok := a.session(chatID); ok {
		a.handleWizardMessage(ctx, message, sess)
		return
	}

	switch message.Text {
	case "Создать анкету":
		a.handleCreateProfile(ctx, chatID, userID)
	case "Изменить анкету":
		a.startWizard(ctx, chatID, userID, wizard.ModeEdit, "")
	case "Моя анкета":
		a.showMyProfile(ctx, chatID, userID)
	case "Удалить анкету":
		a.sendInline(chatID, ui.DeleteConfirm(), ui.DeleteConfirmButtons())
	case "Обратная связь":
		a.setPending(chatID, pendingInput{Kind: pendingFeedback})
		a.sendText(chatID, ui.FeedbackPrompt())
	case "Поддержка":
		a.setPending(chatID, pendingInput{Kind: pendingSupport})
		a.sendText(chatID, ui.SupportPrompt())
	default:
		a.sendText(chatID, ui.UnknownCommand())
	}
}

// handleGroupMessage keeps the group tidy: join, leave and pin service
// messages are deleted right away.
func (a *App) handleGroupMessage(message *tgbotapi.Message) {
	if len(message.NewChatMembers) == 0 && message.LeftChatMember == nil && message.PinnedMessage == nil {
		return
	}
	if err := a.tg.DeleteMessage(message.Chat.ID, message.MessageID); err != nil {
		a.logger.Debug("delete service message", zap.Error(err))
	}
}

func (a *App) handleStart(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID

	if err := a.userRepo.Ensure(ctx, userID); err != nil {
		a.logger.Warn("ensure user", zap.Int64("user_id", userID), zap.Error(err))
	}

	if message.CommandArguments() == "feedback" {
		a.setPending(chatID, pendingInput{Kind: pendingFeedback})
		a.sendText(chatID, ui.FeedbackPrompt())
		return
	}

	a.sendText(chatID, ui.StartMessage())
	a.sendMenu(ctx, chatID, userID)
}

func (a *App) sendMenu(ctx context.Context, chatID, userID int64) {
	hasProfile := false
	if profile, err := a.profileRepo.Get(ctx, userID); err == nil {
		hasProfile = profile.State != enums.ProfileStateInactive && profile.DisplayName != ""
	}

	msg := tgbotapi.NewMessage(chatID, ui.MenuMessage())
	msg.ReplyMarkup = telegram.BuildReplyKeyboard(ui.MenuRows(hasProfile))
	if err := a.tg.Send(msg); err != nil {
		a.logger.Warn("send menu", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *App) handleCancel(chatID int64) {
	hadSession := a.dropSession(chatID)
	a.dropPending(chatID)

	if hadSession {
		a.sendText(chatID, ui.WizardCancelled())
		return
	}
	a.sendText(chatID, ui.NothingToCancel())
}

func (a *App) handleBindTopic(ctx context.Context, message *tgbotapi.Message) {
	if !a.cfg.IsAdmin(message.From.ID) {
		a.sendText(message.Chat.ID, ui.AdminOnly())
		return
	}

	args := strings.Fields(message.CommandArguments())
	if len(args) < 2 {
		a.sendText(message.Chat.ID, ui.BindTopicUsage())
		return
	}
	threadID, err := strconv.Atoi(args[1])
	if err != nil {
		a.sendText(message.Chat.ID, ui.BindTopicUsage())
		return
	}
	title := strings.Join(args[2:], " ")

	topic, err := a.topicsService.Bind(ctx, args[0], threadID, title)
	if err != nil {
		if errors.Is(err, topicssvc.ErrUnknownKey) {
			a.sendText(message.Chat.ID, ui.BindTopicUsage())
			return
		}
		a.logger.Error("bind topic", zap.Error(err))
		a.sendText(message.Chat.ID, ui.TryAgain())
		return
	}
	a.sendText(message.Chat.ID, ui.TopicBound(string(topic.Key), topic.Title, topic.ThreadID))
}

func (a *App) handleTopics(ctx context.Context, message *tgbotapi.Message) {
	if !a.cfg.IsAdmin(message.From.ID) {
		a.sendText(message.Chat.ID, ui.AdminOnly())
		return
	}

	topics, err := a.topicsService.List(ctx)
	if err != nil {
		a.logger.Error("list topics", zap.Error(err))
		a.sendText(message.Chat.ID, ui.TryAgain())
		return
	}
	if len(topics) == 0 {
		a.sendText(message.Chat.ID, ui.NoTopicsBound())
		return
	}

	var b strings.Builder
	for _, topic := range topics {
		b.WriteString(ui.TopicBound(string(topic.Key), topic.Title, topic.ThreadID))
		b.WriteString("\n")
	}
	a.sendText(message.Chat.ID, b.String())
}

// handleCreateProfile starts a fresh wizard run, or offers the edit/restart
// choice when a filled profile already exists.
func (a *App) handleCreateProfile(ctx context.Context, chatID, userID int64) {
	profile, err := a.profileRepo.Get(ctx, userID)
	if err == nil && profile.DisplayName != "" && profile.State != enums.ProfileStateInactive {
		a.sendInline(chatID, ui.ExistingProfileNotice(), ui.ExistingProfileButtons())
		return
	}
	a.startWizard(ctx, chatID, userID, wizard.ModeNew, "")
}

func (a *App) showMyProfile(ctx context.Context, chatID, userID int64) {
	profile, err := a.profileRepo.Get(ctx, userID)
	if err != nil || profile.DisplayName == "" || profile.State == enums.ProfileStateInactive {
		a.sendText(chatID, ui.NoProfileYet())
		return
	}

	photos, err := a.photoRepo.List(ctx, userID)
	if err != nil {
		a.logger.Warn("list photos", zap.Int64("user_id", userID), zap.Error(err))
	}
	fileIDs := make([]string, 0, len(photos))
	for _, photo := range photos {
		fileIDs = append(fileIDs, photo.FileID)
	}
	if _, err := a.tg.SendMediaGroup(chatID, 0, fileIDs); err != nil {
		a.logger.Warn("send profile photos", zap.Int64("user_id", userID), zap.Error(err))
	}

	a.sendInline(chatID, ui.MyProfileCard(profile, len(photos)), ui.MyProfileButtons())
}

func (a *App) startWizard(ctx context.Context, chatID, userID int64, mode wizard.Mode, field enums.EditField) {
	a.dropPending(chatID)

	sess, err := a.wizardService.Begin(ctx, userID, mode, field)
	if err != nil {
		a.logger.Error("begin wizard", zap.Int64("user_id", userID), zap.Error(err))
		a.sendText(chatID, ui.TryAgain())
		return
	}

	a.setSession(chatID, sess)
	a.showStep(ctx, chatID, userID, sess.Step)
}

func (a *App) handleWizardMessage(ctx context.Context, message *tgbotapi.Message, sess wizard.Session) {
	var in wizard.Input
	if len(message.Photo) > 0 {
		// The last size is the largest one.
		in = wizard.Input{Kind: wizard.KindPhoto, PhotoID: message.Photo[len(message.Photo)-1].FileID}
	} else {
		in = wizard.Input{Kind: wizard.KindText, Text: message.Text}
	}

	a.advanceWizard(ctx, message.Chat.ID, message.From.ID, sess, in)
}

func (a *App) advanceWizard(ctx context.Context, chatID, userID int64, sess wizard.Session, in wizard.Input) {
	res, err := a.wizardService.Advance(ctx, userID, sess, in)
	if err != nil {
		a.logger.Error("advance wizard",
			zap.Int64("user_id", userID),
			zap.String("step", string(sess.Step)),
			zap.Error(err))
		a.sendText(chatID, ui.TryAgain())
		return
	}

	if res.Ended() {
		a.dropSession(chatID)
		if res.Event == wizard.EventSubmitted {
			msg := tgbotapi.NewMessage(chatID, ui.ProfileSubmitted())
			msg.ReplyMarkup = telegram.RemoveKeyboard()
			if err := a.tg.Send(msg); err != nil {
				a.logger.Warn("send submit notice", zap.Error(err))
			}
			a.sendMenu(ctx, chatID, userID)
		}
		return
	}

	a.setSession(chatID, res.Session)

	switch res.Event {
	case wizard.EventPrompt:
		a.showStep(ctx, chatID, userID, res.Step)
	case wizard.EventReject:
		a.sendText(chatID, rejectionText(res.Step))
	case wizard.EventPhotoStored:
		a.sendText(chatID, ui.PhotoStored(res.PhotoCount))
	case wizard.EventPhotosCleared:
		a.sendText(chatID, ui.PhotosCleared())
	case wizard.EventPhotosNeedMore:
		a.sendText(chatID, ui.PhotosNeedMore(res.PhotoCount))
	case wizard.EventPhotoLimit:
		a.sendText(chatID, ui.PhotoLimit())
	}
}

func (a *App) showStep(ctx context.Context, chatID, userID int64, step wizard.Step) {
	switch step {
	case wizard.StepGender:
		a.sendInline(chatID, ui.PromptGender(), ui.GenderButtons())
	case wizard.StepRelationship:
		a.sendInline(chatID, ui.PromptRelationship(), ui.RelationshipButtons())
	case wizard.StepName:
		a.sendText(chatID, ui.PromptName())
	case wizard.StepCity:
		msg := tgbotapi.NewMessage(chatID, ui.PromptCity())
		msg.ReplyMarkup = telegram.BuildReplyKeyboard(ui.CityRows(a.cfg.Cities))
		if err := a.tg.Send(msg); err != nil {
			a.logger.Warn("send city prompt", zap.Error(err))
		}
	case wizard.StepLocation:
		a.sendInline(chatID, ui.PromptLocation(), ui.LocationButtons())
	case wizard.StepAge:
		a.sendText(chatID, ui.PromptAge())
	case wizard.StepAbout:
		a.sendText(chatID, ui.PromptAbout())
	case wizard.StepTags:
		a.sendText(chatID, ui.PromptTags())
	case wizard.StepPhotos:
		a.sendInline(chatID, ui.PromptPhotos(), ui.PhotoButtons())
	case wizard.StepPreview:
		a.showPreview(ctx, chatID, userID)
	}
}

func (a *App) showPreview(ctx context.Context, chatID, userID int64) {
	profile, err := a.profileRepo.Get(ctx, userID)
	if err != nil {
		a.logger.Error("load profile for preview", zap.Int64("user_id", userID), zap.Error(err))
		a.sendText(chatID, ui.TryAgain())
		return
	}
	count, err := a.photoRepo.Count(ctx, userID)
	if err != nil {
		a.logger.Warn("count photos for preview", zap.Int64("user_id", userID), zap.Error(err))
	}

	a.sendInline(chatID, ui.PreviewCard(profile, count), ui.PreviewButtons())
}

func rejectionText(step wizard.Step) string {
	switch step {
	case wizard.StepGender:
		return ui.InvalidGender()
	case wizard.StepRelationship:
		return ui.InvalidRelationship()
	case wizard.StepName:
		return ui.InvalidName()
	case wizard.StepCity:
		return ui.InvalidCity()
	case wizard.StepLocation:
		return ui.InvalidLocation()
	case wizard.StepAge:
		return ui.InvalidAge()
	case wizard.StepAbout:
		return ui.InvalidAbout()
	case wizard.StepPhotos:
		return ui.InvalidPhotoInput()
	default:
		return ui.TryAgain()
	}
}

func (a *App) handlePendingText(ctx context.Context, message *tgbotapi.Message, p pendingInput) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := message.Text

	switch p.Kind {
	case pendingAdminEdit:
		a.handleAdminEditText(ctx, chatID, p.TargetUserID, text)

	case pendingContact:
		a.handleContactText(ctx, chatID, userID, p.TargetUserID, text)

	case pendingReport:
		a.handleReportText(ctx, chatID, userID, p.TargetUserID, text)

	case pendingFeedback:
		id, retryAfter, err := a.feedbackService.Submit(ctx, userID, text)
		switch {
		case errors.Is(err, feedbacksvc.ErrValidation):
			a.sendText(chatID, ui.FeedbackPrompt())
		case errors.Is(err, feedbacksvc.ErrCooldown):
			a.dropPending(chatID)
			a.sendText(chatID, ui.FeedbackCooldown(retryAfter))
		case err != nil:
			a.logger.Error("submit feedback", zap.Error(err))
			a.sendText(chatID, ui.TryAgain())
		default:
			a.dropPending(chatID)
			label := identityFromMessage(message).Label()
			if err := a.poster.BroadcastToAdmins(ui.FeedbackCard(label, userID, text)); err != nil {
				a.logger.Warn("relay feedback", zap.Int64("feedback_id", id), zap.Error(err))
			}
			a.sendText(chatID, ui.FeedbackThanks())
		}

	case pendingSupReply:
		a.dropPending(chatID)
		if err := a.tg.SendText(p.TargetUserID, ui.SupportReplyFromAdmin(text)); err != nil {
			a.logger.Warn("deliver support reply",
				zap.Int64("target_user_id", p.TargetUserID),
				zap.Error(err))
			a.sendText(chatID, ui.SupportReplyFailed())
			return
		}
		a.sendText(chatID, ui.SupportReplySent())

	case pendingSupport:
		label := identityFromMessage(message).Label()
		retryAfter, err := a.supportService.Forward(ctx, userID, label, text)
		switch {
		case errors.Is(err, supportsvc.ErrValidation):
			a.sendText(chatID, ui.SupportPrompt())
		case errors.Is(err, supportsvc.ErrCooldown):
			a.dropPending(chatID)
			a.sendText(chatID, ui.SupportCooldown(retryAfter))
		case err != nil:
			a.logger.Error("forward support message", zap.Error(err))
			a.sendText(chatID, ui.TryAgain())
		default:
			a.dropPending(chatID)
			a.sendText(chatID, ui.SupportForwarded())
		}
	}
}

func (a *App) handleAdminEditText(ctx context.Context, chatID, targetUserID int64, text string) {
	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n < 2 || n > 800 {
		a.sendText(chatID, ui.AdminEditPrompt())
		return
	}
	a.dropPending(chatID)

	notified, err := a.lifecycleService.RequestEdit(ctx, targetUserID, text)
	if err != nil {
		if errors.Is(err, lifecyclesvc.ErrInvalidTransition) {
			a.sendText(chatID, ui.AdminAlreadyModerated())
			return
		}
		a.logger.Error("request edit", zap.Int64("target_user_id", targetUserID), zap.Error(err))
		a.sendText(chatID, ui.TryAgain())
		return
	}
	a.sendText(chatID, decisionStatus(ui.AdminEditSent(), notified))
}

func (a *App) handleContactText(ctx context.Context, chatID, userID, targetUserID int64, text string) {
	id, err := a.contactsService.Send(ctx, userID, targetUserID, text)
	switch {
	case errors.Is(err, contactssvc.ErrValidation):
		a.sendText(chatID, ui.ContactPrompt())
		return
	case errors.Is(err, contactssvc.ErrDailyLimit):
		a.dropPending(chatID)
		a.sendText(chatID, ui.ContactDailyLimit())
		return
	case err != nil:
		a.logger.Error("send contact request", zap.Error(err))
		a.sendText(chatID, ui.TryAgain())
		return
	}
	a.dropPending(chatID)

	markup := telegram.BuildInlineKeyboard(ui.ContactDecisionButtons(id))
	if _, err := a.tg.SendToThread(targetUserID, 0, ui.ContactIncoming(text), &markup); err != nil {
		a.logger.Warn("deliver contact request",
			zap.Int64("request_id", id),
			zap.Int64("target_user_id", targetUserID),
			zap.Error(err))
		a.sendText(chatID, ui.ContactDeliveryFailed())
		return
	}
	a.sendText(chatID, ui.ContactSent())
}

func (a *App) handleReportText(ctx context.Context, chatID, userID, targetUserID int64, text string) {
	_, recent, err := a.reportsService.Report(ctx, userID, targetUserID, text)
	switch {
	case errors.Is(err, reportssvc.ErrValidation):
		a.sendText(chatID, ui.ReportPrompt())
		return
	case err != nil:
		a.logger.Error("create report", zap.Error(err))
		a.sendText(chatID, ui.TryAgain())
		return
	}
	a.dropPending(chatID)

	if err := a.poster.BroadcastToAdmins(ui.ReportCard(targetUserID, text, recent)); err != nil {
		a.logger.Warn("relay report", zap.Error(err))
	}
	a.sendText(chatID, ui.ReportThanks())
}

func (a *App) sendText(chatID int64, text string) {
	if err := a.tg.SendText(chatID, text); err != nil {
		a.logger.Warn("send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *App) sendInline(chatID int64, text string, rows [][]telegram.InlineButton) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = telegram.BuildInlineKeyboard(rows)
	if err := a.tg.Send(msg); err != nil {
		a.logger.Warn("send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func identityFromMessage(message *tgbotapi.Message) telegram.Identity {
	return telegram.Identity{
		UserID:    message.From.ID,
		Username:  message.From.UserName,
		FirstName: message.From.FirstName,
		LastName:  message.From.LastName,
	}
}
