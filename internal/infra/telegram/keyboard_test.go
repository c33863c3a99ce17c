package telegram

import "testing"

func TestBuildInlineKeyboardPrefersURL(t *testing.T) {
	kb := BuildInlineKeyboard([][]InlineButton{
		{{Text: "open", Data: "x", URL: "https://t.me/c/1/2"}},
		{{Text: "ok", Data: "con:acc:5"}, {Text: "no", Data: "con:dec:5"}},
	})

	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(kb.InlineKeyboard))
	}
	link := kb.InlineKeyboard[0][0]
	if link.URL == nil || *link.URL != "https://t.me/c/1/2" {
		t.Fatalf("url button not built from URL field: %+v", link)
	}
	if link.CallbackData != nil {
		t.Fatalf("url button must not carry callback data")
	}
	ok := kb.InlineKeyboard[1][0]
	if ok.CallbackData == nil || *ok.CallbackData != "con:acc:5" {
		t.Fatalf("data button lost its callback data: %+v", ok)
	}
}

func TestBuildReplyKeyboardKeepsRowShape(t *testing.T) {
	kb := BuildReplyKeyboard([][]string{{"Анкета"}, {"Köln", "Berlin"}})
	if len(kb.Keyboard) != 2 || len(kb.Keyboard[1]) != 2 {
		t.Fatalf("row shape lost: %+v", kb.Keyboard)
	}
	if !kb.ResizeKeyboard {
		t.Fatalf("reply keyboard must resize to content")
	}
	if kb.Keyboard[1][1].Text != "Berlin" {
		t.Fatalf("label mismatch: %q", kb.Keyboard[1][1].Text)
	}
}
