package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) Create(ctx context.Context, reporterUserID, targetUserID int64, reason string) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO reports (reporter_user_id, target_user_id, reason, created_at)
VALUES ($1, $2, $3, NOW())
RETURNING id
`, reporterUserID, targetUserID, reason).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create report: %w", err)
	}
	return id, nil
}

func (r *ReportRepo) CountForTargetSince(ctx context.Context, targetUserID int64, since time.Time) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM reports WHERE target_user_id = $1 AND created_at >= $2
`, targetUserID, since.UTC()).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reports for target: %w", err)
	}
	return count, nil
}
