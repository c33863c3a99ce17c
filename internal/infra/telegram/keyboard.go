package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// InlineButton describes one inline key. Data and URL are mutually
// exclusive; URL wins when both are set.
type InlineButton struct {
	Text string
	Data string
	URL  string
}

func (b InlineButton) api() tgbotapi.InlineKeyboardButton {
	if b.URL != "" {
		return tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL)
	}
	return tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data)
}

// BuildReplyKeyboard turns rows of labels into a persistent reply
// keyboard sized to its content.
func BuildReplyKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	out := make([][]tgbotapi.KeyboardButton, len(rows))
	for i, labels := range rows {
		out[i] = make([]tgbotapi.KeyboardButton, len(labels))
		for j, label := range labels {
			out[i][j] = tgbotapi.NewKeyboardButton(label)
		}
	}
	kb := tgbotapi.NewReplyKeyboard(out...)
	kb.ResizeKeyboard = true
	return kb
}

func RemoveKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(true)
}

func BuildInlineKeyboard(rows [][]InlineButton) tgbotapi.InlineKeyboardMarkup {
	out := make([][]tgbotapi.InlineKeyboardButton, len(rows))
	for i, row := range rows {
		out[i] = make([]tgbotapi.InlineKeyboardButton, len(row))
		for j, b := range row {
			out[i][j] = b.api()
		}
	}
	return tgbotapi.NewInlineKeyboardMarkup(out...)
}
