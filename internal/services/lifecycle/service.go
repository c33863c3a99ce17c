package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
)

var (
	// ErrInvalidTransition means the profile is not in a state the requested
	// action applies to. Side effects are never re-run for such requests.
	ErrInvalidTransition = errors.New("invalid profile state transition")
	// ErrProfileIncomplete blocks submission of a partially filled draft.
	ErrProfileIncomplete = errors.New("profile is incomplete")
	// ErrTopicNotBound blocks approval while the gender's thread is unbound.
	ErrTopicNotBound = errors.New("no topic bound for profile gender")
)

const minPhotosForSubmit = 2

type ProfileStore interface {
	Get(ctx context.Context, userID int64) (model.Profile, error)
	SetState(ctx context.Context, userID int64, state enums.ProfileState) error
	SavePostedRef(ctx context.Context, userID int64, ref model.PostRef) error
	ClearPostedRef(ctx context.Context, userID int64) error
	ClearProfile(ctx context.Context, userID int64) error
}

type PhotoStore interface {
	List(ctx context.Context, userID int64) ([]model.Photo, error)
	Clear(ctx context.Context, userID int64) error
}

// TopicDirectory resolves the publication thread for a topic key. The second
// return value reports whether a thread is bound at all.
type TopicDirectory interface {
	Resolve(ctx context.Context, key enums.TopicKey) (model.Topic, bool, error)
}

// ModerationGateway is the transport side of moderation: admin cards, group
// publication and takedown of published posts.
type ModerationGateway interface {
	NotifyAdmins(ctx context.Context, profile model.Profile, photos []model.Photo) error
	Publish(ctx context.Context, profile model.Profile, photos []model.Photo, topic model.Topic) (model.PostRef, error)
	Unpublish(ctx context.Context, ref model.PostRef) error
}

// UserNotifier delivers moderation outcomes to the profile owner. Delivery
// failures are best-effort for every transition: the state change stands even
// when the user blocked the bot.
type UserNotifier interface {
	ProfileApproved(ctx context.Context, userID int64, inviteURL string) error
	ProfileRejected(ctx context.Context, userID int64) error
	ProfileEditRequested(ctx context.Context, userID int64, feedback string) error
	ProfileFieldFixRequested(ctx context.Context, userID int64, field enums.EditField) error
}

type InviteIssuer interface {
	CreateOneTimeLink(ctx context.Context) (string, error)
}

type Service struct {
	profiles ProfileStore
	photos   PhotoStore
	topics   TopicDirectory
	gateway  ModerationGateway
	notifier UserNotifier
	invites  InviteIssuer
}

func NewService(
	profiles ProfileStore,
	photos PhotoStore,
	topics TopicDirectory,
	gateway ModerationGateway,
	notifier UserNotifier,
	invites InviteIssuer,
) *Service {
	return &Service{
		profiles: profiles,
		photos:   photos,
		topics:   topics,
		gateway:  gateway,
		notifier: notifier,
		invites:  invites,
	}
}

// Submit moves a finished profile to moderation. A previously published post
// is taken down first so the user never has two listings at once. The state
// flips to pending only after the admins were actually notified.
func (s *Service) Submit(ctx context.Context, userID int64) error {
	if err := s.ready(); err != nil {
		return err
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	photos, err := s.photos.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("load photos: %w", err)
	}
	if err := checkComplete(profile, len(photos)); err != nil {
		return err
	}

	if profile.Posted != nil {
		// Takedown is best-effort: the messages may already be gone.
		_ = s.gateway.Unpublish(ctx, *profile.Posted)
		if err := s.profiles.ClearPostedRef(ctx, userID); err != nil {
			return fmt.Errorf("clear posted ref: %w", err)
		}
		profile.Posted = nil
	}

	if err := s.gateway.NotifyAdmins(ctx, profile, photos); err != nil {
		return fmt.Errorf("notify admins: %w", err)
	}

	if err := s.profiles.SetState(ctx, userID, enums.ProfileStatePending); err != nil {
		return fmt.Errorf("set pending state: %w", err)
	}
	return nil
}

// ApproveResult reports which best-effort approval side effects happened.
type ApproveResult struct {
	InviteURL    string
	InviteIssued bool
	UserNotified bool
}

// Approve publishes a pending profile into its gender's topic thread.
// Publication and the posted-ref write are required: the state moves to
// approved only after both succeeded. The invite link and the user DM are
// best-effort and reported in the result.
func (s *Service) Approve(ctx context.Context, userID int64) (ApproveResult, error) {
	if err := s.ready(); err != nil {
		return ApproveResult{}, err
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return ApproveResult{}, fmt.Errorf("load profile: %w", err)
	}
	if profile.State != enums.ProfileStatePending {
		return ApproveResult{}, ErrInvalidTransition
	}

	topic, bound, err := s.topics.Resolve(ctx, enums.TopicKeyForGender(profile.Gender))
	if err != nil {
		return ApproveResult{}, fmt.Errorf("resolve topic: %w", err)
	}
	if !bound {
		return ApproveResult{}, ErrTopicNotBound
	}

	photos, err := s.photos.List(ctx, userID)
	if err != nil {
		return ApproveResult{}, fmt.Errorf("load photos: %w", err)
	}

	if profile.Posted != nil {
		_ = s.gateway.Unpublish(ctx, *profile.Posted)
		if err := s.profiles.ClearPostedRef(ctx, userID); err != nil {
			return ApproveResult{}, fmt.Errorf("clear posted ref: %w", err)
		}
	}

	ref, err := s.gateway.Publish(ctx, profile, photos, topic)
	if err != nil {
		return ApproveResult{}, fmt.Errorf("publish profile: %w", err)
	}
	if err := s.profiles.SavePostedRef(ctx, userID, ref); err != nil {
		return ApproveResult{}, fmt.Errorf("save posted ref: %w", err)
	}
	if err := s.profiles.SetState(ctx, userID, enums.ProfileStateApproved); err != nil {
		return ApproveResult{}, fmt.Errorf("set approved state: %w", err)
	}

	result := ApproveResult{}
	if url, err := s.invites.CreateOneTimeLink(ctx); err == nil {
		result.InviteURL = url
		result.InviteIssued = true
	}
	if err := s.notifier.ProfileApproved(ctx, userID, result.InviteURL); err == nil {
		result.UserNotified = true
	}
	return result, nil
}

// Reject turns down a pending profile. The DM is best-effort; the returned
// flag tells the caller whether the user actually heard about it.
func (s *Service) Reject(ctx context.Context, userID int64) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load profile: %w", err)
	}
	if profile.State != enums.ProfileStatePending {
		return false, ErrInvalidTransition
	}

	if err := s.profiles.SetState(ctx, userID, enums.ProfileStateRejected); err != nil {
		return false, fmt.Errorf("set rejected state: %w", err)
	}

	return s.notifier.ProfileRejected(ctx, userID) == nil, nil
}

// RequestEdit returns a pending profile to its owner with free-text feedback.
func (s *Service) RequestEdit(ctx context.Context, userID int64, feedback string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load profile: %w", err)
	}
	if profile.State != enums.ProfileStatePending {
		return false, ErrInvalidTransition
	}

	if err := s.profiles.SetState(ctx, userID, enums.ProfileStatePendingEdit); err != nil {
		return false, fmt.Errorf("set pending_edit state: %w", err)
	}

	return s.notifier.ProfileEditRequested(ctx, userID, feedback) == nil, nil
}

// RequestFieldFix asks the owner to redo exactly one field. Unlike the
// free-text variant it also applies to profiles that are already live: an
// admin may spot a problem after approval.
func (s *Service) RequestFieldFix(ctx context.Context, userID int64, field enums.EditField) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	if _, ok := enums.ParseEditField(string(field)); !ok {
		return false, fmt.Errorf("unknown edit field %q", field)
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load profile: %w", err)
	}
	switch profile.State {
	case enums.ProfileStatePending, enums.ProfileStateApproved, enums.ProfileStatePendingEdit:
	default:
		return false, ErrInvalidTransition
	}

	if err := s.profiles.SetState(ctx, userID, enums.ProfileStatePendingEdit); err != nil {
		return false, fmt.Errorf("set pending_edit state: %w", err)
	}

	return s.notifier.ProfileFieldFixRequested(ctx, userID, field) == nil, nil
}

// Delete wipes the profile, its photos and any published post. The row stays
// behind as inactive so a later wizard run starts from a clean draft.
func (s *Service) Delete(ctx context.Context, userID int64) error {
	if err := s.ready(); err != nil {
		return err
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	if profile.Posted != nil {
		_ = s.gateway.Unpublish(ctx, *profile.Posted)
	}
	if err := s.photos.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear photos: %w", err)
	}
	if err := s.profiles.ClearProfile(ctx, userID); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}

func (s *Service) ready() error {
	if s.profiles == nil || s.photos == nil || s.topics == nil ||
		s.gateway == nil || s.notifier == nil || s.invites == nil {
		return fmt.Errorf("lifecycle collaborators are not configured")
	}
	return nil
}

func checkComplete(profile model.Profile, photoCount int) error {
	switch {
	case profile.Gender == "",
		profile.RelationshipStatus == "",
		profile.DisplayName == "",
		profile.CityMain == "",
		profile.Age == 0,
		profile.About == "",
		photoCount < minPhotosForSubmit:
		return ErrProfileIncomplete
	default:
		return nil
	}
}
