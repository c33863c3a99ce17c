package model

import "github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"

type Topic struct {
	Key      enums.TopicKey `json:"key"`
	ThreadID int            `json:"thread_id"`
	Title    string         `json:"title"`
}
