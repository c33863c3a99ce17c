package test

import (
	"context"
	"strings"
	"testing"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/services/wizard"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/ui"
)

type stubProfileStore struct {
	saved map[string]int
}

func (s *stubProfileStore) touch(field string) error {
	if s.saved == nil {
		s.saved = map[string]int{}
	}
	s.saved[field]++
	return nil
}

func (s *stubProfileStore) Ensure(_ context.Context, _ int64) error { return s.touch("ensure") }
func (s *stubProfileStore) SaveGender(_ context.Context, _ int64, _ enums.Gender) error {
	return s.touch("gender")
}
func (s *stubProfileStore) SaveRelationship(_ context.Context, _ int64, _ enums.RelationshipStatus) error {
	return s.touch("relationship")
}
func (s *stubProfileStore) SaveDisplayName(_ context.Context, _ int64, _ string) error {
	return s.touch("name")
}
func (s *stubProfileStore) SaveCity(_ context.Context, _ int64, _ string) error {
	return s.touch("city")
}
func (s *stubProfileStore) SaveLocationDetail(_ context.Context, _ int64, _ *string) error {
	return s.touch("location")
}
func (s *stubProfileStore) SaveAge(_ context.Context, _ int64, _ int) error { return s.touch("age") }
func (s *stubProfileStore) SaveAbout(_ context.Context, _ int64, _ string) error {
	return s.touch("about")
}
func (s *stubProfileStore) SaveTags(_ context.Context, _ int64, _ []string) error {
	return s.touch("tags")
}

type stubPhotoStore struct {
	count int
}

func (s *stubPhotoStore) Add(_ context.Context, _ int64, _ string) error {
	s.count++
	return nil
}

func (s *stubPhotoStore) Clear(_ context.Context, _ int64) error {
	s.count = 0
	return nil
}

func (s *stubPhotoStore) Count(_ context.Context, _ int64) (int, error) {
	return s.count, nil
}

type stubSubmitter struct {
	called int
}

func (s *stubSubmitter) Submit(_ context.Context, _ int64) error {
	s.called++
	return nil
}

func TestWizardFullRunReachesModeration(t *testing.T) {
	profiles := &stubProfileStore{}
	photos := &stubPhotoStore{}
	submitter := &stubSubmitter{}
	svc := wizard.NewService(profiles, photos, submitter, []string{"Berlin"})

	ctx := context.Background()
	sess, err := svc.Begin(ctx, 42, wizard.ModeNew, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Step != wizard.StepGender {
		t.Fatalf("expected gender step first, got %s", sess.Step)
	}

	inputs := []wizard.Input{
		{Kind: wizard.KindSelect, Text: "male"},
		{Kind: wizard.KindSelect, Text: "single"},
		{Kind: wizard.KindText, Text: "Павел"},
		{Kind: wizard.KindText, Text: "Berlin"},
		{Kind: wizard.KindAction, Action: wizard.ActionSkip},
		{Kind: wizard.KindText, Text: "29"},
		{Kind: wizard.KindText, Text: "Люблю настольные игры и долгие прогулки."},
		{Kind: wizard.KindText, Text: "игры, прогулки"},
		{Kind: wizard.KindPhoto, PhotoID: "file-1"},
		{Kind: wizard.KindPhoto, PhotoID: "file-2"},
		{Kind: wizard.KindAction, Action: wizard.ActionDone},
		{Kind: wizard.KindAction, Action: wizard.ActionSubmit},
	}
	for i, in := range inputs {
		res, err := svc.Advance(ctx, 42, sess, in)
		if err != nil {
			t.Fatalf("input %d: unexpected error: %v", i, err)
		}
		if res.Event == wizard.EventReject {
			t.Fatalf("input %d: rejected on step %s", i, res.Step)
		}
		sess = res.Session
	}

	if submitter.called != 1 {
		t.Fatalf("expected one submit, got %d", submitter.called)
	}
	for _, field := range []string{"gender", "relationship", "name", "city", "location", "age", "about", "tags"} {
		if profiles.saved[field] == 0 {
			t.Fatalf("field %s was never saved", field)
		}
	}
}

func TestMenuRenderingForProfileStates(t *testing.T) {
	testCases := []struct {
		name        string
		hasProfile  bool
		mustHave    []string
		mustNotHave []string
	}{
		{
			name:        "no profile",
			hasProfile:  false,
			mustHave:    []string{"Создать анкету", "Обратная связь", "Поддержка"},
			mustNotHave: []string{"Моя анкета", "Изменить анкету", "Удалить анкету"},
		},
		{
			name:        "with profile",
			hasProfile:  true,
			mustHave:    []string{"Моя анкета", "Изменить анкету", "Удалить анкету", "Поддержка"},
			mustNotHave: []string{"Создать анкету"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			menu := ui.MenuRows(tc.hasProfile)
			if len(menu) == 0 {
				t.Fatal("empty menu")
			}
			for _, expected := range tc.mustHave {
				if !menuContains(menu, expected) {
					t.Fatalf("missing menu item %q", expected)
				}
			}
			for _, denied := range tc.mustNotHave {
				if menuContains(menu, denied) {
					t.Fatalf("unexpected menu item %q", denied)
				}
			}
		})
	}
}

func TestGroupCardStaysAnonymous(t *testing.T) {
	about := "Ищу компанию для выставок и кофеен."
	profile := model.Profile{
		UserID:             42,
		Gender:             enums.GenderFemale,
		RelationshipStatus: enums.RelationshipSingle,
		DisplayName:        "Анна",
		CityMain:           "Köln",
		Age:                27,
		About:              about,
		Tags:               []string{"кофе", "выставки"},
		State:              enums.ProfileStateApproved,
	}

	card := ui.GroupCard(profile)
	if strings.Contains(card, "42") {
		t.Fatal("group card leaks the user id")
	}
	if !strings.Contains(card, "#Koeln") {
		t.Fatalf("expected city hashtag in card:\n%s", card)
	}
	if !strings.Contains(card, about) {
		t.Fatal("expected about text in card")
	}
}

func menuContains(menu [][]string, expected string) bool {
	for _, row := range menu {
		for _, item := range row {
			if item == expected {
				return true
			}
		}
	}
	return false
}
