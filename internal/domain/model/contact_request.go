package model

import (
	"time"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
)

type ContactRequest struct {
	ID         int64               `json:"id"`
	FromUserID int64               `json:"from_user_id"`
	ToUserID   int64               `json:"to_user_id"`
	Message    string              `json:"message"`
	Status     enums.ContactStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}
