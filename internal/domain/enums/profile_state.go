package enums

type ProfileState string

const (
	ProfileStateDraft       ProfileState = "draft"
	ProfileStatePending     ProfileState = "pending"
	ProfileStateApproved    ProfileState = "approved"
	ProfileStateRejected    ProfileState = "rejected"
	ProfileStatePendingEdit ProfileState = "pending_edit"
	ProfileStateInactive    ProfileState = "inactive"
)
