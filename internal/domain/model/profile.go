package model

import (
	"time"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
)

type Profile struct {
	UserID             int64                    `json:"user_id"`
	Gender             enums.Gender             `json:"gender"`
	RelationshipStatus enums.RelationshipStatus `json:"relationship_status"`
	DisplayName        string                   `json:"display_name"`
	CityMain           string                   `json:"city_main"`
	LocationDetail     *string                  `json:"location_detail"`
	Age                int                      `json:"age"`
	About              string                   `json:"about"`
	Tags               []string                 `json:"tags"`
	State              enums.ProfileState       `json:"state"`
	Posted             *PostRef                 `json:"posted"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

// PostRef locates a profile's published listing: the text card plus the media
// group sent before it. Stored and cleared as a unit.
type PostRef struct {
	ChatID          int64   `json:"chat_id"`
	ThreadID        int     `json:"thread_id"`
	MessageID       int     `json:"message_id"`
	MediaMessageIDs []int64 `json:"media_message_ids"`
}
