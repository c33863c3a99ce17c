package ui

import (
	"fmt"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/infra/telegram"
)

// Callback data prefixes. The router parses these back in handleCallback.
const (
	CallbackPrefixWizard  = "wiz"
	CallbackPrefixAdmin   = "adm"
	CallbackPrefixProfile = "prof"
	CallbackPrefixContact = "con"
	CallbackPrefixReport  = "rep"
	CallbackPrefixSupport = "sup"
)

func GenderButtons() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: "Мужчина", Data: "wiz:select:male"},
		{Text: "Женщина", Data: "wiz:select:female"},
	}}
}

func RelationshipButtons() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: "В отношениях", Data: "wiz:select:in_relation"},
		{Text: "Свободен/на", Data: "wiz:select:single"},
	}}
}

// CityRows lays the city list out as a reply keyboard, two per row.
func CityRows(cities []string) [][]string {
	rows := make([][]string, 0, (len(cities)+1)/2)
	for i := 0; i < len(cities); i += 2 {
		row := []string{cities[i]}
		if i+1 < len(cities) {
			row = append(row, cities[i+1])
		}
		rows = append(rows, row)
	}
	return rows
}

func LocationButtons() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: "Пропустить", Data: "wiz:skip"},
	}}
}

func PhotoButtons() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: "Готово", Data: "wiz:done"},
		{Text: "Удалить все", Data: "wiz:clear"},
	}}
}

func PreviewButtons() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{
		{{Text: "Отправить на модерацию", Data: "wiz:submit"}},
		{{Text: "Начать заново", Data: "wiz:restart"}},
	}
}

func MenuRows(hasProfile bool) [][]string {
	if hasProfile {
		return [][]string{
			{"Моя анкета"},
			{"Изменить анкету", "Удалить анкету"},
			{"Обратная связь", "Поддержка"},
		}
	}
	return [][]string{
		{"Создать анкету"},
		{"Обратная связь", "Поддержка"},
	}
}

func AdminModerationButtons(userID int64) [][]telegram.InlineButton {
	return [][]telegram.InlineButton{
		{
			{Text: "✅ Одобрить", Data: fmt.Sprintf("adm:approve:%d", userID)},
			{Text: "❌ Отклонить", Data: fmt.Sprintf("adm:reject:%d", userID)},
		},
		{
			{Text: "✏️ Запросить правки", Data: fmt.Sprintf("adm:edit:%d", userID)},
			{Text: "🎯 Исправить поле", Data: fmt.Sprintf("adm:fix:%d", userID)},
		},
	}
}

// FieldFixButtons lists every editable field for the admin's pick.
func FieldFixButtons(userID int64) [][]telegram.InlineButton {
	fields := []enums.EditField{
		enums.EditFieldGender, enums.EditFieldStatus, enums.EditFieldName,
		enums.EditFieldCity, enums.EditFieldLocation, enums.EditFieldAge,
		enums.EditFieldAbout, enums.EditFieldTags, enums.EditFieldPhotos,
	}

	rows := make([][]telegram.InlineButton, 0, (len(fields)+2)/3)
	var row []telegram.InlineButton
	for _, field := range fields {
		row = append(row, telegram.InlineButton{
			Text: FieldLabel(field),
			Data: fmt.Sprintf("adm:fixfield:%d:%s", userID, field),
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// FieldEntryButton is the user's direct entry into the edit-one sub-flow.
func FieldEntryButton(field enums.EditField) [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: "Исправить", Data: fmt.Sprintf("prof:fixone:%s", field)},
	}}
}

// MyProfileButtons hangs under the owner's own card.
func MyProfileButtons() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{
		{{Text: "✏️ Исправить поле", Data: "prof:fields"}},
		{{Text: "🗑 Удалить анкету", Data: "prof:delete:ask"}},
	}
}

// ProfileFieldButtons lists every field for the owner's single-field edit.
func ProfileFieldButtons() [][]telegram.InlineButton {
	fields := []enums.EditField{
		enums.EditFieldGender, enums.EditFieldStatus, enums.EditFieldName,
		enums.EditFieldCity, enums.EditFieldLocation, enums.EditFieldAge,
		enums.EditFieldAbout, enums.EditFieldTags, enums.EditFieldPhotos,
	}

	rows := make([][]telegram.InlineButton, 0, (len(fields)+2)/3)
	var row []telegram.InlineButton
	for _, field := range fields {
		row = append(row, telegram.InlineButton{
			Text: FieldLabel(field),
			Data: fmt.Sprintf("prof:fixone:%s", field),
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// ExistingProfileButtons offers the choice shown when "create" is pressed
// while a profile already exists.
func ExistingProfileButtons() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{
		{{Text: "Изменить текущую", Data: "prof:edit"}},
		{{Text: "Начать заново", Data: "prof:new"}},
		{{Text: "Отмена", Data: "prof:cancel"}},
	}
}

func DeleteConfirmButtons() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: "Да, удалить", Data: "prof:delete:yes"},
		{Text: "Отмена", Data: "prof:delete:no"},
	}}
}

// GroupCardButtons hangs under every published listing.
func GroupCardButtons(userID int64) [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: "💌 Написать", Data: fmt.Sprintf("con:new:%d", userID)},
		{Text: "⚠️ Пожаловаться", Data: fmt.Sprintf("rep:new:%d", userID)},
	}}
}

// SupportReplyButton lets an admin answer a relayed support message.
func SupportReplyButton(userID int64) [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: "Ответить", Data: fmt.Sprintf("sup:reply:%d", userID)},
	}}
}

func ContactDecisionButtons(requestID int64) [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: "Поделиться контактом", Data: fmt.Sprintf("con:acc:%d", requestID)},
		{Text: "Отклонить", Data: fmt.Sprintf("con:dec:%d", requestID)},
	}}
}
