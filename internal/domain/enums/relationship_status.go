package enums

type RelationshipStatus string

const (
	RelationshipInRelation RelationshipStatus = "in_relation"
	RelationshipSingle     RelationshipStatus = "single"
)

func ParseRelationshipStatus(raw string) (RelationshipStatus, bool) {
	switch RelationshipStatus(raw) {
	case RelationshipInRelation:
		return RelationshipInRelation, true
	case RelationshipSingle:
		return RelationshipSingle, true
	default:
		return "", false
	}
}
