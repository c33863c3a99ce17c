package wizard

import "github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"

// Mode discriminates the three wizard variants.
type Mode string

const (
	// ModeNew walks the full step sequence for a first-time profile.
	ModeNew Mode = "new"
	// ModeEdit walks the full sequence but trusts existing photos.
	ModeEdit Mode = "edit"
	// ModeEditOne collects exactly one field and returns to preview.
	ModeEditOne Mode = "edit_one"
)

// Session is the ephemeral per-chat wizard state. Field is set only when
// Mode is ModeEditOne.
type Session struct {
	Mode  Mode
	Field enums.EditField
	Step  Step
}
