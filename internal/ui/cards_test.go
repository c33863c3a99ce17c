package ui

import (
	"strings"
	"testing"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
)

func TestCityHashtag(t *testing.T) {
	cases := map[string]string{
		"Berlin":                "Berlin",
		"Köln":                  "Koeln",
		"Düsseldorf":            "Duesseldorf",
		"Fürth":                 "Fuerth",
		"Frankfurt am Main":     "FrankfurtAmMain",
		"Halle (Saale)":         "HalleSaale",
		"Ludwigshafen am Rhein": "LudwigshafenAmRhein",
		"Gießen":                "Giessen",
	}

	for city, want := range cases {
		if got := CityHashtag(city); got != want {
			t.Fatalf("CityHashtag(%q) = %q, want %q", city, got, want)
		}
	}
}

func TestGroupCardHidesIdentityAndCarriesHashtag(t *testing.T) {
	detail := "Kreuzberg"
	profile := model.Profile{
		UserID:             42,
		Gender:             enums.GenderFemale,
		RelationshipStatus: enums.RelationshipSingle,
		DisplayName:        "Anna",
		CityMain:           "Köln",
		LocationDetail:     &detail,
		Age:                27,
		About:              "Люблю музыку и долгие прогулки.",
		Tags:               []string{"музыка", "кино"},
	}

	card := GroupCard(profile)
	if strings.Contains(card, "42") {
		t.Fatalf("group card must not leak the user id:\n%s", card)
	}
	if !strings.Contains(card, "#Koeln") {
		t.Fatalf("expected city hashtag in card:\n%s", card)
	}
	if !strings.Contains(card, "Anna, 27") || !strings.Contains(card, "Kreuzberg") {
		t.Fatalf("card misses profile fields:\n%s", card)
	}
}

func TestAdminCardNamesTheSender(t *testing.T) {
	profile := model.Profile{
		UserID:             42,
		Gender:             enums.GenderMale,
		RelationshipStatus: enums.RelationshipInRelation,
		DisplayName:        "Max",
		CityMain:           "Berlin",
		Age:                33,
		About:              "Про себя длинно и содержательно.",
	}

	card := AdminCard(profile, "@max")
	if !strings.Contains(card, "@max") || !strings.Contains(card, "id 42") {
		t.Fatalf("admin card must name the sender:\n%s", card)
	}
}

func TestCityRowsPairsCities(t *testing.T) {
	rows := CityRows([]string{"Berlin", "Hamburg", "Köln"})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != 2 || len(rows[1]) != 1 {
		t.Fatalf("unexpected row shape: %v", rows)
	}
}

func TestFieldFixButtonsCoverAllFields(t *testing.T) {
	rows := FieldFixButtons(42)
	total := 0
	for _, row := range rows {
		total += len(row)
	}
	if total != 9 {
		t.Fatalf("expected 9 field buttons, got %d", total)
	}
}
