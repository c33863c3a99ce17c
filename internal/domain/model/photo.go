package model

import "time"

// Photo is one entry of a user's ordered photo set. FileID is an opaque
// Telegram media reference.
type Photo struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	FileID     string    `json:"file_id"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}
