package enums

type EditField string

const (
	EditFieldGender   EditField = "gender"
	EditFieldName     EditField = "name"
	EditFieldStatus   EditField = "status"
	EditFieldCity     EditField = "city"
	EditFieldLocation EditField = "location"
	EditFieldAge      EditField = "age"
	EditFieldAbout    EditField = "about"
	EditFieldTags     EditField = "tags"
	EditFieldPhotos   EditField = "photos"
)

func ParseEditField(raw string) (EditField, bool) {
	switch EditField(raw) {
	case EditFieldGender, EditFieldName, EditFieldStatus, EditFieldCity, EditFieldLocation,
		EditFieldAge, EditFieldAbout, EditFieldTags, EditFieldPhotos:
		return EditField(raw), true
	default:
		return "", false
	}
}
