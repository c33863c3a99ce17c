package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
)

func genderLabel(gender enums.Gender) string {
	if gender == enums.GenderMale {
		return "Мужчина"
	}
	return "Женщина"
}

func statusLabel(status enums.RelationshipStatus) string {
	if status == enums.RelationshipInRelation {
		return "В отношениях"
	}
	return "Свободен/на"
}

func placeLine(profile model.Profile) string {
	if profile.LocationDetail != nil && *profile.LocationDetail != "" {
		return fmt.Sprintf("%s, %s", profile.CityMain, *profile.LocationDetail)
	}
	return profile.CityMain
}

// PreviewCard is what the user reviews before submitting.
func PreviewCard(profile model.Profile, photoCount int) string {
	var b strings.Builder
	b.WriteString("Проверь анкету:\n\n")
	fmt.Fprintf(&b, "%s, %d\n", profile.DisplayName, profile.Age)
	fmt.Fprintf(&b, "%s · %s\n", genderLabel(profile.Gender), statusLabel(profile.RelationshipStatus))
	fmt.Fprintf(&b, "📍 %s\n\n", placeLine(profile))
	b.WriteString(profile.About)
	if len(profile.Tags) > 0 {
		fmt.Fprintf(&b, "\n\nИнтересы: %s", strings.Join(profile.Tags, ", "))
	}
	fmt.Fprintf(&b, "\n\nФото: %d", photoCount)
	return b.String()
}

// AdminCard is the moderation view: the profile plus who sent it.
func AdminCard(profile model.Profile, identityLabel string) string {
	var b strings.Builder
	b.WriteString("Новая анкета на модерацию\n\n")
	fmt.Fprintf(&b, "От: %s (id %d)\n\n", identityLabel, profile.UserID)
	fmt.Fprintf(&b, "%s, %d\n", profile.DisplayName, profile.Age)
	fmt.Fprintf(&b, "%s · %s\n", genderLabel(profile.Gender), statusLabel(profile.RelationshipStatus))
	fmt.Fprintf(&b, "📍 %s\n\n", placeLine(profile))
	b.WriteString(profile.About)
	if len(profile.Tags) > 0 {
		fmt.Fprintf(&b, "\n\nИнтересы: %s", strings.Join(profile.Tags, ", "))
	}
	return b.String()
}

// GroupCard is the published listing. It carries no identity: contact goes
// through the bot's buttons under the post.
func GroupCard(profile model.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %d\n", profile.DisplayName, profile.Age)
	fmt.Fprintf(&b, "%s\n", statusLabel(profile.RelationshipStatus))
	fmt.Fprintf(&b, "📍 %s\n\n", placeLine(profile))
	b.WriteString(profile.About)
	if len(profile.Tags) > 0 {
		fmt.Fprintf(&b, "\n\nИнтересы: %s", strings.Join(profile.Tags, ", "))
	}
	fmt.Fprintf(&b, "\n\n#%s", CityHashtag(profile.CityMain))
	return b.String()
}

func stateLabel(state enums.ProfileState) string {
	switch state {
	case enums.ProfileStateDraft:
		return "черновик"
	case enums.ProfileStatePending:
		return "на модерации"
	case enums.ProfileStateApproved:
		return "опубликована"
	case enums.ProfileStateRejected:
		return "отклонена"
	case enums.ProfileStatePendingEdit:
		return "ждёт правок"
	case enums.ProfileStateInactive:
		return "удалена"
	default:
		return string(state)
	}
}

// MyProfileCard is the owner's view with the moderation status attached.
func MyProfileCard(profile model.Profile, photoCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Твоя анкета (статус: %s)\n\n", stateLabel(profile.State))
	fmt.Fprintf(&b, "%s, %d\n", profile.DisplayName, profile.Age)
	fmt.Fprintf(&b, "%s · %s\n", genderLabel(profile.Gender), statusLabel(profile.RelationshipStatus))
	fmt.Fprintf(&b, "📍 %s\n\n", placeLine(profile))
	b.WriteString(profile.About)
	if len(profile.Tags) > 0 {
		fmt.Fprintf(&b, "\n\nИнтересы: %s", strings.Join(profile.Tags, ", "))
	}
	fmt.Fprintf(&b, "\n\nФото: %d", photoCount)
	return b.String()
}

// SupportRelayCard wraps a forwarded support message for the admins.
func SupportRelayCard(fromLabel string, fromUserID int64, text string) string {
	return fmt.Sprintf("Сообщение в поддержку от %s (id %d):\n\n%s", fromLabel, fromUserID, text)
}

// ReportCard wraps a report for the admins.
func ReportCard(targetUserID int64, reason string, recentCount int) string {
	return fmt.Sprintf("Жалоба на анкету пользователя id %d (за неделю: %d):\n\n%s", targetUserID, recentCount, reason)
}

// FeedbackCard wraps a feedback message for the admins.
func FeedbackCard(fromLabel string, fromUserID int64, text string) string {
	return fmt.Sprintf("Отзыв от %s (id %d):\n\n%s", fromLabel, fromUserID, text)
}

var umlauts = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
)

// CityHashtag turns a city name into a hashtag-safe CamelCase token.
// Umlauts are transliterated, spaces and hyphens join words.
func CityHashtag(city string) string {
	city = umlauts.Replace(city)

	var b strings.Builder
	upperNext := true
	for _, r := range city {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if upperNext {
				b.WriteRune(unicode.ToUpper(r))
				upperNext = false
			} else {
				b.WriteRune(r)
			}
		default:
			upperNext = true
		}
	}
	return b.String()
}
