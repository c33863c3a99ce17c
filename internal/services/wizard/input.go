package wizard

// InputKind tells a step handler what arrived from the chat.
type InputKind string

const (
	KindText   InputKind = "text"
	KindSelect InputKind = "select"
	KindPhoto  InputKind = "photo"
	KindAction InputKind = "action"
)

// Action is an explicit button press inside the wizard.
type Action string

const (
	ActionSkip    Action = "skip"
	ActionDone    Action = "done"
	ActionClear   Action = "clear"
	ActionSubmit  Action = "submit"
	ActionRestart Action = "restart"
)

// Input is one user interaction fed into the wizard.
type Input struct {
	Kind    InputKind
	Text    string
	PhotoID string
	Action  Action
}

// Event tells the transport layer what to show after an advance attempt.
type Event string

const (
	// EventPrompt: the cursor moved, show the prompt for Result.Step.
	EventPrompt Event = "prompt"
	// EventReject: input was invalid, re-prompt Result.Step.
	EventReject Event = "reject"
	// EventPhotoStored: a photo was saved, the cursor stays on the photos step.
	EventPhotoStored Event = "photo_stored"
	// EventPhotosCleared: stored photos were wiped on user request.
	EventPhotosCleared Event = "photos_cleared"
	// EventPhotoLimit: the photo set is full, the upload was not stored.
	EventPhotoLimit Event = "photo_limit"
	// EventPhotosNeedMore: "done" pressed with too few photos.
	EventPhotosNeedMore Event = "photos_need_more"
	// EventSubmitted: the profile went to moderation, the session is over.
	EventSubmitted Event = "submitted"
	// EventLeft: a fatal precondition failed, the session is over silently.
	EventLeft Event = "left"
)

// Result is the outcome of one advance attempt.
type Result struct {
	Event      Event
	Step       Step
	Session    Session
	PhotoCount int
}

func (r Result) Ended() bool {
	return r.Event == EventSubmitted || r.Event == EventLeft
}
