package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
)

const maxPhotosPerUser = 3

var ErrPhotoLimitReached = errors.New("photo limit reached")

type PhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

func (r *PhotoRepo) List(ctx context.Context, userID int64) ([]model.Photo, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, file_id, order_index, created_at
FROM profile_photos
WHERE user_id = $1
ORDER BY order_index ASC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	photos := make([]model.Photo, 0, maxPhotosPerUser)
	for rows.Next() {
		var photo model.Photo
		if err := rows.Scan(&photo.ID, &photo.UserID, &photo.FileID, &photo.OrderIndex, &photo.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate photos: %w", rows.Err())
	}

	return photos, nil
}

// Add appends a photo at the next dense order index. Writes for one user are
// serialized by the per-chat processing model, the row lock guards against an
// out-of-process writer.
func (r *PhotoRepo) Add(ctx context.Context, userID int64, fileID string) error {
	if r.pool == nil {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	rows, err := tx.Query(ctx, `
SELECT order_index FROM profile_photos WHERE user_id = $1 ORDER BY order_index FOR UPDATE
`, userID)
	if err != nil {
		return fmt.Errorf("query photo order: %w", err)
	}

	count := 0
	for rows.Next() {
		var orderIndex int
		if err := rows.Scan(&orderIndex); err != nil {
			rows.Close()
			return fmt.Errorf("scan photo order: %w", err)
		}
		count++
	}
	rows.Close()

	if count >= maxPhotosPerUser {
		return ErrPhotoLimitReached
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO profile_photos (user_id, file_id, order_index, created_at)
VALUES ($1, $2, $3, NOW())
`, userID, fileID, count); err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *PhotoRepo) Clear(ctx context.Context, userID int64) error {
	if r.pool == nil {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM profile_photos WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear photos: %w", err)
	}
	return nil
}

func (r *PhotoRepo) Count(ctx context.Context, userID int64) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM profile_photos WHERE user_id = $1
`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return count, nil
}
