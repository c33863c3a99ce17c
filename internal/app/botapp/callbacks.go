package botapp

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/infra/telegram"
	contactssvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/contacts"
	lifecyclesvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/lifecycle"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/services/wizard"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/ui"
)

func (a *App) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb == nil || cb.From == nil {
		return
	}

	parts := strings.Split(cb.Data, ":")
	if len(parts) < 2 {
		a.answerCallback(cb.ID, "", false)
		return
	}

	switch parts[0] {
	case ui.CallbackPrefixWizard:
		a.handleWizardCallback(ctx, cb, parts[1:])
	case ui.CallbackPrefixAdmin:
		a.handleAdminCallback(ctx, cb, parts[1:])
	case ui.CallbackPrefixProfile:
		a.handleProfileCallback(ctx, cb, parts[1:])
	case ui.CallbackPrefixContact:
		a.handleContactCallback(ctx, cb, parts[1:])
	case ui.CallbackPrefixReport:
		a.handleReportCallback(ctx, cb, parts[1:])
	case ui.CallbackPrefixSupport:
		a.handleSupportCallback(cb, parts[1:])
	default:
		a.answerCallback(cb.ID, "", false)
	}
}

func (a *App) handleWizardCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, parts []string) {
	chatID := callbackChatID(cb)
	userID := cb.From.ID

	sess, ok := a.session(chatID)
	if !ok {
		a.answerCallback(cb.ID, ui.NothingToCancel(), false)
		return
	}

	var in wizard.Input
	switch parts[0] {
	case "select":
		if len(parts) < 2 {
			a.answerCallback(cb.ID, "", false)
			return
		}
		in = wizard.Input{Kind: wizard.KindSelect, Text: parts[1]}
	case "skip":
		in = wizard.Input{Kind: wizard.KindAction, Action: wizard.ActionSkip}
	case "done":
		in = wizard.Input{Kind: wizard.KindAction, Action: wizard.ActionDone}
	case "clear":
		in = wizard.Input{Kind: wizard.KindAction, Action: wizard.ActionClear}
	case "submit":
		in = wizard.Input{Kind: wizard.KindAction, Action: wizard.ActionSubmit}
	case "restart":
		in = wizard.Input{Kind: wizard.KindAction, Action: wizard.ActionRestart}
	default:
		a.answerCallback(cb.ID, "", false)
		return
	}

	a.answerCallback(cb.ID, "", false)
	a.advanceWizard(ctx, chatID, userID, sess, in)
}

func (a *App) handleAdminCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, parts []string) {
	if !a.cfg.IsAdmin(cb.From.ID) {
		a.answerCallback(cb.ID, ui.AdminOnly(), true)
		return
	}
	if len(parts) < 2 {
		a.answerCallback(cb.ID, "", false)
		return
	}

	targetUserID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		a.answerCallback(cb.ID, "", false)
		return
	}
	chatID := callbackChatID(cb)

	switch parts[0] {
	case "approve":
		res, err := a.lifecycleService.Approve(ctx, targetUserID)
		switch {
		case errors.Is(err, lifecyclesvc.ErrTopicNotBound):
			a.answerCallback(cb.ID, ui.AdminTopicNotBound(), true)
		case errors.Is(err, lifecyclesvc.ErrInvalidTransition):
			a.answerCallback(cb.ID, ui.AdminAlreadyModerated(), true)
		case err != nil:
			a.logger.Error("approve profile", zap.Int64("target_user_id", targetUserID), zap.Error(err))
			a.answerCallback(cb.ID, ui.TryAgain(), true)
		default:
			a.answerCallback(cb.ID, ui.AdminApproved(), false)
			a.markModerationCard(cb, approveStatus(res))
		}

	case "reject":
		notified, err := a.lifecycleService.Reject(ctx, targetUserID)
		switch {
		case errors.Is(err, lifecyclesvc.ErrInvalidTransition):
			a.answerCallback(cb.ID, ui.AdminAlreadyModerated(), true)
		case err != nil:
			a.logger.Error("reject profile", zap.Int64("target_user_id", targetUserID), zap.Error(err))
			a.answerCallback(cb.ID, ui.TryAgain(), true)
		default:
			a.answerCallback(cb.ID, ui.AdminRejected(), false)
			a.markModerationCard(cb, decisionStatus(ui.AdminRejected(), notified))
		}

	case "edit":
		a.setPending(chatID, pendingInput{Kind: pendingAdminEdit, TargetUserID: targetUserID})
		a.answerCallback(cb.ID, "", false)
		a.sendText(chatID, ui.AdminEditPrompt())

	case "fix":
		a.answerCallback(cb.ID, "", false)
		a.sendInline(chatID, ui.AdminFixPrompt(), ui.FieldFixButtons(targetUserID))

	case "fixfield":
		if len(parts) < 3 {
			a.answerCallback(cb.ID, "", false)
			return
		}
		field, ok := enums.ParseEditField(parts[2])
		if !ok {
			a.answerCallback(cb.ID, "", false)
			return
		}
		notified, err := a.lifecycleService.RequestFieldFix(ctx, targetUserID, field)
		if err != nil {
			if errors.Is(err, lifecyclesvc.ErrInvalidTransition) {
				a.answerCallback(cb.ID, ui.AdminAlreadyModerated(), true)
				return
			}
			a.logger.Error("request field fix", zap.Int64("target_user_id", targetUserID), zap.Error(err))
			a.answerCallback(cb.ID, ui.TryAgain(), true)
			return
		}
		a.answerCallback(cb.ID, "", false)
		a.sendText(chatID, decisionStatus(ui.AdminFixSent(field), notified))

	default:
		a.answerCallback(cb.ID, "", false)
	}
}

func (a *App) handleProfileCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, parts []string) {
	chatID := callbackChatID(cb)
	userID := cb.From.ID

	switch parts[0] {
	case "fixone":
		if len(parts) < 2 {
			a.answerCallback(cb.ID, "", false)
			return
		}
		field, ok := enums.ParseEditField(parts[1])
		if !ok {
			a.answerCallback(cb.ID, "", false)
			return
		}
		a.answerCallback(cb.ID, "", false)
		a.startWizard(ctx, chatID, userID, wizard.ModeEditOne, field)

	case "edit":
		a.answerCallback(cb.ID, "", false)
		a.startWizard(ctx, chatID, userID, wizard.ModeEdit, "")

	case "new":
		a.answerCallback(cb.ID, "", false)
		a.startWizard(ctx, chatID, userID, wizard.ModeNew, "")

	case "cancel":
		a.answerCallback(cb.ID, "", false)
		a.sendMenu(ctx, chatID, userID)

	case "fields":
		a.answerCallback(cb.ID, "", false)
		a.sendInline(chatID, ui.ChooseFieldPrompt(), ui.ProfileFieldButtons())

	case "delete":
		if len(parts) < 2 || parts[1] == "ask" {
			a.answerCallback(cb.ID, "", false)
			a.sendInline(chatID, ui.DeleteConfirm(), ui.DeleteConfirmButtons())
			return
		}
		if parts[1] != "yes" {
			a.answerCallback(cb.ID, "", false)
			a.sendMenu(ctx, chatID, userID)
			return
		}
		a.dropSession(chatID)
		if err := a.lifecycleService.Delete(ctx, userID); err != nil {
			a.logger.Error("delete profile", zap.Int64("user_id", userID), zap.Error(err))
			a.answerCallback(cb.ID, ui.TryAgain(), true)
			return
		}
		a.answerCallback(cb.ID, "", false)
		a.sendText(chatID, ui.ProfileDeleted())
		a.sendMenu(ctx, chatID, userID)

	default:
		a.answerCallback(cb.ID, "", false)
	}
}

// handleContactCallback covers both sides of a contact request: "new" fires
// from the button under a group listing, "acc"/"dec" from the DM the target
// received.
func (a *App) handleContactCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, parts []string) {
	if len(parts) < 2 {
		a.answerCallback(cb.ID, "", false)
		return
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		a.answerCallback(cb.ID, "", false)
		return
	}
	userID := cb.From.ID

	switch parts[0] {
	case "new":
		if id == userID {
			a.answerCallback(cb.ID, ui.OwnProfile(), true)
			return
		}
		if !a.hasApprovedProfile(ctx, userID) {
			a.answerCallback(cb.ID, ui.NeedApprovedProfile(), true)
			return
		}
		if err := a.tg.SendText(userID, ui.ContactPrompt()); err != nil {
			a.answerCallback(cb.ID, ui.StartBotFirst(), true)
			return
		}
		a.setPending(userID, pendingInput{Kind: pendingContact, TargetUserID: id})
		a.answerCallback(cb.ID, ui.CheckYourDM(), false)

	case "acc":
		req, err := a.contactsService.Accept(ctx, id, userID)
		if err != nil {
			a.answerContactError(cb.ID, err)
			return
		}
		a.answerCallback(cb.ID, "", false)

		fromLabel := a.identityLabel(ctx, req.FromUserID)
		toLabel := a.identityLabel(ctx, req.ToUserID)
		a.sendText(req.ToUserID, ui.ContactAcceptedNotice(fromLabel))
		a.sendText(req.FromUserID, ui.ContactAcceptedForSender(toLabel))

	case "dec":
		req, err := a.contactsService.Decline(ctx, id, userID)
		if err != nil {
			a.answerContactError(cb.ID, err)
			return
		}
		a.answerCallback(cb.ID, "", false)
		a.sendText(req.FromUserID, ui.ContactDeclinedNotice())

	default:
		a.answerCallback(cb.ID, "", false)
	}
}

func (a *App) handleReportCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, parts []string) {
	if len(parts) < 2 || parts[0] != "new" {
		a.answerCallback(cb.ID, "", false)
		return
	}
	targetUserID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		a.answerCallback(cb.ID, "", false)
		return
	}
	userID := cb.From.ID

	if targetUserID == userID {
		a.answerCallback(cb.ID, ui.OwnProfile(), true)
		return
	}
	if !a.hasApprovedProfile(ctx, userID) {
		a.answerCallback(cb.ID, ui.NeedApprovedProfile(), true)
		return
	}
	if err := a.tg.SendText(userID, ui.ReportPrompt()); err != nil {
		a.answerCallback(cb.ID, ui.StartBotFirst(), true)
		return
	}
	a.setPending(userID, pendingInput{Kind: pendingReport, TargetUserID: targetUserID})
	a.answerCallback(cb.ID, ui.CheckYourDM(), false)
}

func (a *App) handleSupportCallback(cb *tgbotapi.CallbackQuery, parts []string) {
	if !a.cfg.IsAdmin(cb.From.ID) {
		a.answerCallback(cb.ID, ui.AdminOnly(), true)
		return
	}
	if len(parts) < 2 || parts[0] != "reply" {
		a.answerCallback(cb.ID, "", false)
		return
	}
	targetUserID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		a.answerCallback(cb.ID, "", false)
		return
	}

	chatID := callbackChatID(cb)
	a.setPending(chatID, pendingInput{Kind: pendingSupReply, TargetUserID: targetUserID})
	a.answerCallback(cb.ID, "", false)
	a.sendText(chatID, ui.SupportReplyPrompt())
}

func (a *App) answerContactError(callbackID string, err error) {
	switch {
	case errors.Is(err, contactssvc.ErrAlreadyAnswered):
		a.answerCallback(callbackID, ui.ContactAlreadyAnswered(), false)
	case errors.Is(err, contactssvc.ErrValidation):
		a.answerCallback(callbackID, "", false)
	default:
		a.answerCallback(callbackID, ui.TryAgain(), true)
	}
}

// hasApprovedProfile gates group-card actions on the presser having a live
// listing themselves.
func (a *App) hasApprovedProfile(ctx context.Context, userID int64) bool {
	profile, err := a.profileRepo.Get(ctx, userID)
	if err != nil {
		return false
	}
	// pending_edit cards are still published, their owners keep access.
	return profile.State == enums.ProfileStateApproved || profile.State == enums.ProfileStatePendingEdit
}

func (a *App) identityLabel(ctx context.Context, userID int64) string {
	identity, err := a.tg.ChatIdentity(ctx, userID)
	if err != nil {
		return telegram.Identity{UserID: userID}.Label()
	}
	return identity.Label()
}

// approveStatus annotates an approval with the best-effort deliveries that
// failed, so the admin knows the user may need a manual follow-up.
func approveStatus(res lifecyclesvc.ApproveResult) string {
	status := ui.AdminApproved()
	if !res.InviteIssued {
		status += "\n" + ui.AdminInviteNotIssued()
	}
	if !res.UserNotified {
		status += "\n" + ui.AdminUserUnreachable()
	}
	return status
}

// decisionStatus appends the unreachable-user note to a moderation outcome
// when the owner's DM could not be delivered.
func decisionStatus(base string, notified bool) string {
	if notified {
		return base
	}
	return base + "\n" + ui.AdminUserUnreachable()
}

// markModerationCard appends the decision to the admin's card so a second
// admin sees at a glance that the queue item is done.
func (a *App) markModerationCard(cb *tgbotapi.CallbackQuery, status string) {
	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}
	text := cb.Message.Text + "\n\n" + status
	if err := a.tg.EditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text); err != nil {
		a.logger.Debug("mark moderation card", zap.Error(err))
	}
}

func (a *App) answerCallback(callbackID, text string, alert bool) {
	if err := a.tg.AnswerCallback(callbackID, text, alert); err != nil {
		a.logger.Debug("answer callback", zap.Error(err))
	}
}

func callbackChatID(cb *tgbotapi.CallbackQuery) int64 {
	if cb.Message != nil && cb.Message.Chat != nil {
		return cb.Message.Chat.ID
	}
	return cb.From.ID
}
