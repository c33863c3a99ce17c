package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
)

var ErrTopicNotBound = errors.New("topic not bound")

type TopicRepo struct {
	pool *pgxpool.Pool
}

func NewTopicRepo(pool *pgxpool.Pool) *TopicRepo {
	return &TopicRepo{pool: pool}
}

func (r *TopicRepo) Upsert(ctx context.Context, topic model.Topic) error {
	if r.pool == nil {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO topics (key, thread_id, title)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET
	thread_id = EXCLUDED.thread_id,
	title = EXCLUDED.title
`, string(topic.Key), topic.ThreadID, topic.Title); err != nil {
		return fmt.Errorf("upsert topic: %w", err)
	}
	return nil
}

func (r *TopicRepo) Get(ctx context.Context, key enums.TopicKey) (model.Topic, error) {
	if r.pool == nil {
		return model.Topic{}, fmt.Errorf("postgres pool is nil")
	}

	var topic model.Topic
	err := r.pool.QueryRow(ctx, `
SELECT key, thread_id, title FROM topics WHERE key = $1
`, string(key)).Scan(&topic.Key, &topic.ThreadID, &topic.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Topic{}, ErrTopicNotBound
	}
	if err != nil {
		return model.Topic{}, fmt.Errorf("get topic: %w", err)
	}

	return topic, nil
}

func (r *TopicRepo) List(ctx context.Context) ([]model.Topic, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `SELECT key, thread_id, title FROM topics ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := make([]model.Topic, 0, 2)
	for rows.Next() {
		var topic model.Topic
		if err := rows.Scan(&topic.Key, &topic.ThreadID, &topic.Title); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, topic)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate topics: %w", rows.Err())
	}

	return topics, nil
}
