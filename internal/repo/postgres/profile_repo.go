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

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Ensure(ctx context.Context, userID int64) error {
	if r.pool == nil {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO profiles (user_id, state, updated_at)
VALUES ($1, 'draft', NOW())
ON CONFLICT (user_id) DO NOTHING
`, userID); err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) Get(ctx context.Context, userID int64) (model.Profile, error) {
	if r.pool == nil {
		return model.Profile{}, fmt.Errorf("postgres pool is nil")
	}

	var (
		profile            model.Profile
		gender             *string
		relationshipStatus *string
		displayName        *string
		cityMain           *string
		age                *int
		about              *string
		tags               []string
		state              string
		postedChatID       *int64
		postedThreadID     *int
		postedMessageID    *int
		postedMediaIDs     []int64
	)

	err := r.pool.QueryRow(ctx, `
SELECT
	user_id,
	gender,
	relationship_status,
	display_name,
	city_main,
	location_detail,
	age,
	about,
	tags,
	state,
	posted_chat_id,
	posted_thread_id,
	posted_message_id,
	posted_media_message_ids,
	updated_at
FROM profiles
WHERE user_id = $1
`, userID).Scan(
		&profile.UserID,
		&gender,
		&relationshipStatus,
		&displayName,
		&cityMain,
		&profile.LocationDetail,
		&age,
		&about,
		&tags,
		&state,
		&postedChatID,
		&postedThreadID,
		&postedMessageID,
		&postedMediaIDs,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	if gender != nil {
		profile.Gender = enums.Gender(*gender)
	}
	if relationshipStatus != nil {
		profile.RelationshipStatus = enums.RelationshipStatus(*relationshipStatus)
	}
	if displayName != nil {
		profile.DisplayName = *displayName
	}
	if cityMain != nil {
		profile.CityMain = *cityMain
	}
	if age != nil {
		profile.Age = *age
	}
	if about != nil {
		profile.About = *about
	}
	profile.Tags = tags
	profile.State = enums.ProfileState(state)

	if postedChatID != nil && postedMessageID != nil {
		posted := &model.PostRef{
			ChatID:          *postedChatID,
			MessageID:       *postedMessageID,
			MediaMessageIDs: postedMediaIDs,
		}
		if postedThreadID != nil {
			posted.ThreadID = *postedThreadID
		}
		profile.Posted = posted
	}

	return profile, nil
}

func (r *ProfileRepo) SaveGender(ctx context.Context, userID int64, gender enums.Gender) error {
	return r.saveField(ctx, userID, "gender", string(gender))
}

func (r *ProfileRepo) SaveRelationship(ctx context.Context, userID int64, status enums.RelationshipStatus) error {
	return r.saveField(ctx, userID, "relationship_status", string(status))
}

func (r *ProfileRepo) SaveDisplayName(ctx context.Context, userID int64, name string) error {
	return r.saveField(ctx, userID, "display_name", name)
}

func (r *ProfileRepo) SaveCity(ctx context.Context, userID int64, city string) error {
	return r.saveField(ctx, userID, "city_main", city)
}

// SaveLocationDetail persists the optional residence detail; nil clears it.
func (r *ProfileRepo) SaveLocationDetail(ctx context.Context, userID int64, detail *string) error {
	if r.pool == nil {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE profiles SET location_detail = $2, updated_at = NOW() WHERE user_id = $1
`, userID, detail); err != nil {
		return fmt.Errorf("save location_detail: %w", err)
	}
	return nil
}

func (r *ProfileRepo) SaveAge(ctx context.Context, userID int64, age int) error {
	if r.pool == nil {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE profiles SET age = $2, updated_at = NOW() WHERE user_id = $1
`, userID, age); err != nil {
		return fmt.Errorf("save age: %w", err)
	}
	return nil
}

func (r *ProfileRepo) SaveAbout(ctx context.Context, userID int64, about string) error {
	return r.saveField(ctx, userID, "about", about)
}

func (r *ProfileRepo) SaveTags(ctx context.Context, userID int64, tags []string) error {
	if r.pool == nil {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE profiles SET tags = $2, updated_at = NOW() WHERE user_id = $1
`, userID, tags); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}

func (r *ProfileRepo) SetState(ctx context.Context, userID int64, state enums.ProfileState) error {
	return r.saveField(ctx, userID, "state", string(state))
}

func (r *ProfileRepo) SavePostedRef(ctx context.Context, userID int64, ref model.PostRef) error {
	if r.pool == nil {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE profiles SET
	posted_chat_id = $2,
	posted_thread_id = $3,
	posted_message_id = $4,
	posted_media_message_ids = $5,
	updated_at = NOW()
WHERE user_id = $1
`, userID, ref.ChatID, ref.ThreadID, ref.MessageID, ref.MediaMessageIDs); err != nil {
		return fmt.Errorf("save posted ref: %w", err)
	}
	return nil
}

func (r *ProfileRepo) ClearPostedRef(ctx context.Context, userID int64) error {
	if r.pool == nil {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE profiles SET
	posted_chat_id = NULL,
	posted_thread_id = NULL,
	posted_message_id = NULL,
	posted_media_message_ids = NULL,
	updated_at = NOW()
WHERE user_id = $1
`, userID); err != nil {
		return fmt.Errorf("clear posted ref: %w", err)
	}
	return nil
}

// ClearProfile wipes every collected field and marks the row inactive. The
// row itself stays so re-entry starts from a known state.
func (r *ProfileRepo) ClearProfile(ctx context.Context, userID int64) error {
	if r.pool == nil {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE profiles SET
	gender = NULL,
	relationship_status = NULL,
	display_name = NULL,
	city_main = NULL,
	location_detail = NULL,
	age = NULL,
	about = NULL,
	tags = NULL,
	state = 'inactive',
	posted_chat_id = NULL,
	posted_thread_id = NULL,
	posted_message_id = NULL,
	posted_media_message_ids = NULL,
	updated_at = NOW()
WHERE user_id = $1
`, userID); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) saveField(ctx context.Context, userID int64, column, value string) error {
	if r.pool == nil {
		return nil
	}

	query := fmt.Sprintf(`UPDATE profiles SET %s = $2, updated_at = NOW() WHERE user_id = $1`, column)
	if _, err := r.pool.Exec(ctx, query, userID, value); err != nil {
		return fmt.Errorf("save %s: %w", column, err)
	}
	return nil
}
