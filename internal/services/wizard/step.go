package wizard

import "github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"

// Step names one state of the profile wizard. The zero value means "not in
// the wizard".
type Step string

const (
	StepGender       Step = "gender"
	StepRelationship Step = "relationship"
	StepName         Step = "name"
	StepCity         Step = "city"
	StepLocation     Step = "location"
	StepAge          Step = "age"
	StepAbout        Step = "about"
	StepTags         Step = "tags"
	StepPhotos       Step = "photos"
	StepPreview      Step = "preview"
)

// stepOrder is the sequential transition table of the full wizard run.
// StepPreview has no successor: leaving it happens through submit or restart.
var stepOrder = map[Step]Step{
	StepGender:       StepRelationship,
	StepRelationship: StepName,
	StepName:         StepCity,
	StepCity:         StepLocation,
	StepLocation:     StepAge,
	StepAge:          StepAbout,
	StepAbout:        StepTags,
	StepTags:         StepPhotos,
	StepPhotos:       StepPreview,
}

// fieldSteps routes a single-field correction to the step that collects it.
var fieldSteps = map[enums.EditField]Step{
	enums.EditFieldGender:   StepGender,
	enums.EditFieldStatus:   StepRelationship,
	enums.EditFieldName:     StepName,
	enums.EditFieldCity:     StepCity,
	enums.EditFieldLocation: StepLocation,
	enums.EditFieldAge:      StepAge,
	enums.EditFieldAbout:    StepAbout,
	enums.EditFieldTags:     StepTags,
	enums.EditFieldPhotos:   StepPhotos,
}

// StepForField resolves the wizard step that collects the given field.
func StepForField(field enums.EditField) (Step, bool) {
	step, ok := fieldSteps[field]
	return step, ok
}
