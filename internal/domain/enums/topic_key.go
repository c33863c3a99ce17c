package enums

type TopicKey string

const (
	TopicKeyHerren TopicKey = "herren"
	TopicKeyFrauen TopicKey = "frauen"
)

func ParseTopicKey(raw string) (TopicKey, bool) {
	switch TopicKey(raw) {
	case TopicKeyHerren:
		return TopicKeyHerren, true
	case TopicKeyFrauen:
		return TopicKeyFrauen, true
	default:
		return "", false
	}
}

// TopicKeyForGender maps the profile gender to the group thread its card is
// published into.
func TopicKeyForGender(gender Gender) TopicKey {
	if gender == GenderMale {
		return TopicKeyHerren
	}
	return TopicKeyFrauen
}
