package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
)

var ErrContactRequestNotFound = errors.New("contact request not found")

type ContactRequestRepo struct {
	pool *pgxpool.Pool
}

func NewContactRequestRepo(pool *pgxpool.Pool) *ContactRequestRepo {
	return &ContactRequestRepo{pool: pool}
}

func (r *ContactRequestRepo) Create(ctx context.Context, fromUserID, toUserID int64, message string) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO contact_requests (from_user_id, to_user_id, message, status, created_at)
VALUES ($1, $2, $3, 'pending', NOW())
RETURNING id
`, fromUserID, toUserID, message).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create contact request: %w", err)
	}
	return id, nil
}

func (r *ContactRequestRepo) Get(ctx context.Context, id int64) (model.ContactRequest, error) {
	if r.pool == nil {
		return model.ContactRequest{}, fmt.Errorf("postgres pool is nil")
	}

	var (
		request model.ContactRequest
		status  string
	)
	err := r.pool.QueryRow(ctx, `
SELECT id, from_user_id, to_user_id, message, status, created_at
FROM contact_requests
WHERE id = $1
`, id).Scan(&request.ID, &request.FromUserID, &request.ToUserID, &request.Message, &status, &request.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ContactRequest{}, ErrContactRequestNotFound
	}
	if err != nil {
		return model.ContactRequest{}, fmt.Errorf("get contact request: %w", err)
	}

	request.Status = enums.ContactStatus(status)
	return request, nil
}

func (r *ContactRequestRepo) SetStatus(ctx context.Context, id int64, status enums.ContactStatus) error {
	if r.pool == nil {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE contact_requests SET status = $2 WHERE id = $1
`, id, string(status)); err != nil {
		return fmt.Errorf("set contact request status: %w", err)
	}
	return nil
}

func (r *ContactRequestRepo) CountSentSince(ctx context.Context, fromUserID int64, since time.Time) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM contact_requests WHERE from_user_id = $1 AND created_at >= $2
`, fromUserID, since.UTC()).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sent contact requests: %w", err)
	}
	return count, nil
}
