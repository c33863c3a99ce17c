package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepo(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

func (r *FeedbackRepo) Create(ctx context.Context, userID int64, message string) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO feedbacks (user_id, message, created_at)
VALUES ($1, $2, NOW())
RETURNING id
`, userID, message).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create feedback: %w", err)
	}
	return id, nil
}
