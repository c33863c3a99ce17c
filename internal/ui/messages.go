package ui

import (
	"fmt"
	"time"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
)

func StartMessage() string {
	return "Привет! Это бот знакомств NoDramaClub.\nСоздай анкету, и после модерации она появится в группе."
}

func MenuMessage() string {
	return "Главное меню. Выбери действие:"
}

func UnknownCommand() string {
	return "Неизвестная команда. Используйте /menu"
}

func PromptGender() string {
	return "Шаг 1/9. Кто ты?"
}

func PromptRelationship() string {
	return "Шаг 2/9. Статус отношений?"
}

func PromptName() string {
	return "Шаг 3/9. Как тебя называть? (2–20 символов)"
}

func PromptCity() string {
	return "Шаг 4/9. Выбери свой город из списка:"
}

func PromptLocation() string {
	return "Шаг 5/9. Район или уточнение места (минимум 2 символа) — или нажми «Пропустить»."
}

func PromptAge() string {
	return "Шаг 6/9. Сколько тебе лет? (18–99)"
}

func PromptAbout() string {
	return "Шаг 7/9. Расскажи о себе (минимум 20 символов)."
}

func PromptTags() string {
	return "Шаг 8/9. Интересы через запятую (до 5), например: музыка, походы, кино"
}

func PromptPhotos() string {
	return "Шаг 9/9. Пришли 2–3 фото. Когда закончишь — нажми «Готово»."
}

func InvalidGender() string {
	return "Пожалуйста, выбери вариант кнопкой ниже."
}

func InvalidRelationship() string {
	return "Пожалуйста, выбери статус кнопкой ниже."
}

func InvalidName() string {
	return "Имя должно быть от 2 до 20 символов. Попробуй ещё раз."
}

func InvalidCity() string {
	return "Такого города нет в списке. Выбери город кнопкой."
}

func InvalidLocation() string {
	return "Слишком коротко. Минимум 2 символа — или нажми «Пропустить»."
}

func InvalidAge() string {
	return "Возраст должен быть целым числом от 18 до 99."
}

func InvalidAbout() string {
	return "Слишком коротко. Расскажи о себе подробнее (минимум 20 символов)."
}

func InvalidPhotoInput() string {
	return "Пришли фото или используй кнопки под сообщением."
}

func PhotoStored(count int) string {
	return fmt.Sprintf("Фото сохранено (%d/3). Можешь прислать ещё или нажать «Готово».", count)
}

func PhotosCleared() string {
	return "Все фото удалены. Пришли новые (2–3)."
}

func PhotosNeedMore(count int) string {
	return fmt.Sprintf("Нужно минимум 2 фото, сейчас %d. Пришли ещё.", count)
}

func PhotoLimit() string {
	return "Больше 3 фото нельзя. Нажми «Готово» или «Удалить все» и загрузи заново."
}

func WizardCancelled() string {
	return "Анкета отложена. Заполненные поля сохранены, продолжить можно через /menu."
}

func NothingToCancel() string {
	return "Сейчас нечего отменять."
}

func ProfileSubmitted() string {
	return "Анкета отправлена на модерацию. Мы напишем, как только её проверят."
}

func ProfileApprovedNotice(inviteURL string) string {
	if inviteURL == "" {
		return "Твоя анкета одобрена и опубликована в группе! 🎉"
	}
	return fmt.Sprintf("Твоя анкета одобрена и опубликована в группе! 🎉\nВот одноразовая ссылка для вступления: %s", inviteURL)
}

func ProfileRejectedNotice() string {
	return "К сожалению, анкета отклонена модератором. Ты можешь заполнить её заново через /menu."
}

func EditRequestedNotice(feedback string) string {
	return fmt.Sprintf("Модератор просит доработать анкету:\n\n%s\n\nОткрой /menu и отредактируй анкету.", feedback)
}

func FieldFixNotice(field enums.EditField) string {
	return fmt.Sprintf("Модератор просит исправить поле «%s». Нажми кнопку ниже, чтобы сразу перейти к нему.", FieldLabel(field))
}

func DeleteConfirm() string {
	return "Удалить анкету? Она исчезнет из группы, фото будут удалены. Это действие нельзя отменить."
}

func ProfileDeleted() string {
	return "Анкета удалена. Если передумаешь — создай новую через /menu."
}

func NoProfileYet() string {
	return "У тебя пока нет анкеты. Создай её через /menu."
}

func NeedApprovedProfile() string {
	return "Эта функция доступна после одобрения твоей анкеты."
}

func ExistingProfileNotice() string {
	return "У тебя уже есть анкета. Изменить её или заполнить заново? При заполнении заново фото будут удалены."
}

func ChooseFieldPrompt() string {
	return "Какое поле исправить?"
}

func ContactPrompt() string {
	return "Напиши короткое сообщение для этого человека (3–400 символов). Мы передадим его анонимно."
}

func ContactSent() string {
	return "Сообщение отправлено. Если человек согласится на контакт, мы пришлём вам контакты друг друга."
}

func ContactDailyLimit() string {
	return "Лимит запросов на сегодня исчерпан (15 в сутки). Попробуй завтра."
}

func ContactIncoming(message string) string {
	return fmt.Sprintf("Кому-то понравилась твоя анкета! Сообщение:\n\n%s\n\nПоделиться контактами?", message)
}

func ContactAcceptedNotice(label string) string {
	return fmt.Sprintf("Контакт подтверждён! Пиши: %s", label)
}

func ContactAcceptedForSender(label string) string {
	return fmt.Sprintf("Твой запрос приняли! Пиши: %s", label)
}

func ContactAlreadyAnswered() string {
	return "Этот запрос уже обработан."
}

func ContactDeclinedNotice() string {
	return "Запрос отклонён. Ничего страшного — в группе много других анкет."
}

func ReportPrompt() string {
	return "Опиши, что не так с этой анкетой (3–400 символов). Жалоба уйдёт модераторам."
}

func ReportThanks() string {
	return "Спасибо, жалоба передана модераторам."
}

func FeedbackPrompt() string {
	return "Напиши свой отзыв или предложение (5–800 символов)."
}

func FeedbackThanks() string {
	return "Спасибо за отзыв!"
}

func FeedbackCooldown(retryAfter time.Duration) string {
	return fmt.Sprintf("Отзыв можно отправлять раз в 2 часа. Попробуй через %s.", humanDuration(retryAfter))
}

func SupportPrompt() string {
	return "Опиши свою проблему одним сообщением, мы передадим её администраторам."
}

func SupportForwarded() string {
	return "Сообщение передано администраторам. Они свяжутся с тобой в личке."
}

func SupportCooldown(retryAfter time.Duration) string {
	return fmt.Sprintf("Писать в поддержку можно раз в 5 минут. Попробуй через %s.", humanDuration(retryAfter))
}

func SupportReplyPrompt() string {
	return "Напиши ответ пользователю одним сообщением."
}

func SupportReplyFromAdmin(text string) string {
	return "Ответ поддержки:\n\n" + text
}

func SupportReplySent() string {
	return "Ответ отправлен пользователю."
}

func SupportReplyFailed() string {
	return "Не удалось доставить ответ. Возможно, пользователь заблокировал бота."
}

func TryAgain() string {
	return "Что-то пошло не так. Попробуй ещё раз."
}

func CheckYourDM() string {
	return "Проверь личные сообщения от бота."
}

func StartBotFirst() string {
	return "Сначала напиши боту в личку и нажми Start."
}

func OwnProfile() string {
	return "Это твоя собственная анкета."
}

func ContactDeliveryFailed() string {
	return "Не удалось доставить сообщение: человек ещё не открыл личку с ботом."
}

func AdminEditPrompt() string {
	return "Напиши комментарий для пользователя: что нужно доработать в анкете."
}

func AdminFixPrompt() string {
	return "Какое поле нужно исправить?"
}

func AdminApproved() string {
	return "Анкета одобрена и опубликована."
}

func AdminRejected() string {
	return "Анкета отклонена."
}

func AdminEditSent() string {
	return "Комментарий отправлен пользователю."
}

func AdminFixSent(field enums.EditField) string {
	return fmt.Sprintf("Пользователя попросили исправить поле «%s».", FieldLabel(field))
}

func AdminUserUnreachable() string {
	return "⚠️ Уведомление пользователю не доставлено. Возможно, бот заблокирован."
}

func AdminInviteNotIssued() string {
	return "⚠️ Инвайт-ссылка не создана, отправь приглашение вручную."
}

func AdminAlreadyModerated() string {
	return "Эта анкета уже обработана."
}

func AdminTopicNotBound() string {
	return "Не привязан топик для этого пола. Используй /bind_topic herren|frauen <thread_id>."
}

func AdminOnly() string {
	return "Команда доступна только администраторам."
}

func TopicBound(key, title string, threadID int) string {
	if title == "" {
		return fmt.Sprintf("Топик %s привязан к треду %d.", key, threadID)
	}
	return fmt.Sprintf("Топик %s (%s) привязан к треду %d.", key, title, threadID)
}

func BindTopicUsage() string {
	return "Использование: /bind_topic herren|frauen <thread_id> [название]"
}

func NoTopicsBound() string {
	return "Топики ещё не привязаны."
}

func FieldLabel(field enums.EditField) string {
	switch field {
	case enums.EditFieldGender:
		return "пол"
	case enums.EditFieldStatus:
		return "статус отношений"
	case enums.EditFieldName:
		return "имя"
	case enums.EditFieldCity:
		return "город"
	case enums.EditFieldLocation:
		return "район"
	case enums.EditFieldAge:
		return "возраст"
	case enums.EditFieldAbout:
		return "о себе"
	case enums.EditFieldTags:
		return "интересы"
	case enums.EditFieldPhotos:
		return "фото"
	default:
		return string(field)
	}
}

func humanDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	if d < time.Minute {
		return "минуту"
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	if h > 0 && m > 0 {
		return fmt.Sprintf("%d ч %d мин", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%d ч", h)
	}
	return fmt.Sprintf("%d мин", m)
}
