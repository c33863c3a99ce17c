package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
)

const (
	minNameLen     = 2
	maxNameLen     = 20
	minLocationLen = 2
	minAge         = 18
	maxAge         = 99
	minAboutLen    = 20
	maxTags        = 5
	minPhotos      = 2
	maxPhotos      = 3
)

var ErrNoSubmitter = errors.New("submitter is not configured")

// ProfileStore persists validated wizard fields one at a time.
type ProfileStore interface {
	Ensure(ctx context.Context, userID int64) error
	SaveGender(ctx context.Context, userID int64, gender enums.Gender) error
	SaveRelationship(ctx context.Context, userID int64, status enums.RelationshipStatus) error
	SaveDisplayName(ctx context.Context, userID int64, name string) error
	SaveCity(ctx context.Context, userID int64, city string) error
	SaveLocationDetail(ctx context.Context, userID int64, detail *string) error
	SaveAge(ctx context.Context, userID int64, age int) error
	SaveAbout(ctx context.Context, userID int64, about string) error
	SaveTags(ctx context.Context, userID int64, tags []string) error
}

// PhotoStore keeps the user's ordered photo set.
type PhotoStore interface {
	Add(ctx context.Context, userID int64, fileID string) error
	Clear(ctx context.Context, userID int64) error
	Count(ctx context.Context, userID int64) (int, error)
}

// Submitter hands a finished profile over to moderation.
type Submitter interface {
	Submit(ctx context.Context, userID int64) error
}

type Service struct {
	profiles  ProfileStore
	photos    PhotoStore
	submitter Submitter
	cities    map[string]struct{}
}

func NewService(profiles ProfileStore, photos PhotoStore, submitter Submitter, cities []string) *Service {
	citySet := make(map[string]struct{}, len(cities))
	for _, city := range cities {
		citySet[city] = struct{}{}
	}
	return &Service{
		profiles:  profiles,
		photos:    photos,
		submitter: submitter,
		cities:    citySet,
	}
}

// Begin opens a wizard session and reports the first step to prompt.
//
// ModeEditOne with an unroutable field falls back to a full edit run.
// ModeEditOne targeting photos wipes the stored set first: a single-photo
// replace is not supported, the user re-uploads the whole set. ModeNew also
// starts photo-free so a restarted profile never inherits old uploads.
func (s *Service) Begin(ctx context.Context, userID int64, mode Mode, field enums.EditField) (Session, error) {
	if userID <= 0 {
		return Session{}, fmt.Errorf("invalid user id")
	}
	if s.profiles == nil || s.photos == nil {
		return Session{}, fmt.Errorf("wizard stores are nil")
	}

	if err := s.profiles.Ensure(ctx, userID); err != nil {
		return Session{}, fmt.Errorf("ensure profile draft: %w", err)
	}

	if mode == ModeEditOne {
		step, ok := StepForField(field)
		if !ok {
			return Session{Mode: ModeEdit, Step: StepGender}, nil
		}
		if step == StepPhotos {
			if err := s.photos.Clear(ctx, userID); err != nil {
				return Session{}, fmt.Errorf("clear photos for re-upload: %w", err)
			}
		}
		return Session{Mode: ModeEditOne, Field: field, Step: step}, nil
	}

	if mode == ModeNew {
		if err := s.photos.Clear(ctx, userID); err != nil {
			return Session{}, fmt.Errorf("clear photos for new profile: %w", err)
		}
	}
	return Session{Mode: mode, Step: StepGender}, nil
}

// Advance feeds one interaction into the session's current step. Validation
// failures never return an error: they come back as reject results so the
// caller re-prompts. Errors mean a collaborator call failed and the session
// should be kept for a retry.
func (s *Service) Advance(ctx context.Context, userID int64, sess Session, in Input) (Result, error) {
	if userID <= 0 {
		return Result{Event: EventLeft}, nil
	}
	if s.profiles == nil || s.photos == nil {
		return Result{}, fmt.Errorf("wizard stores are nil")
	}

	switch sess.Step {
	case StepGender:
		return s.handleGender(ctx, userID, sess, in)
	case StepRelationship:
		return s.handleRelationship(ctx, userID, sess, in)
	case StepName:
		return s.handleName(ctx, userID, sess, in)
	case StepCity:
		return s.handleCity(ctx, userID, sess, in)
	case StepLocation:
		return s.handleLocation(ctx, userID, sess, in)
	case StepAge:
		return s.handleAge(ctx, userID, sess, in)
	case StepAbout:
		return s.handleAbout(ctx, userID, sess, in)
	case StepTags:
		return s.handleTags(ctx, userID, sess, in)
	case StepPhotos:
		return s.handlePhotos(ctx, userID, sess, in)
	case StepPreview:
		return s.handlePreview(ctx, userID, sess, in)
	default:
		return Result{Event: EventLeft}, nil
	}
}

func (s *Service) handleGender(ctx context.Context, userID int64, sess Session, in Input) (Result, error) {
	gender, ok := enums.ParseGender(selectionValue(in))
	if !ok {
		return reject(sess), nil
	}
	if err := s.profiles.SaveGender(ctx, userID, gender); err != nil {
		return Result{}, fmt.Errorf("save gender: %w", err)
	}
	return s.advanceFrom(ctx, userID, sess)
}

func (s *Service) handleRelationship(ctx context.Context, userID int64, sess Session, in Input) (Result, error) {
	status, ok := enums.ParseRelationshipStatus(selectionValue(in))
	if !ok {
		return reject(sess), nil
	}
	if err := s.profiles.SaveRelationship(ctx, userID, status); err != nil {
		return Result{}, fmt.Errorf("save relationship status: %w", err)
	}
	return s.advanceFrom(ctx, userID, sess)
}

func (s *Service) handleName(ctx context.Context, userID int64, sess Session, in Input) (Result, error) {
	if in.Kind != KindText {
		return reject(sess), nil
	}
	name := strings.TrimSpace(in.Text)
	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return reject(sess), nil
	}
	if err := s.profiles.SaveDisplayName(ctx, userID, name); err != nil {
		return Result{}, fmt.Errorf("save display name: %w", err)
	}
	return s.advanceFrom(ctx, userID, sess)
}

func (s *Service) handleCity(ctx context.Context, userID int64, sess Session, in Input) (Result, error) {
	city := strings.TrimSpace(selectionValue(in))
	if _, ok := s.cities[city]; !ok {
		return reject(sess), nil
	}
	if err := s.profiles.SaveCity(ctx, userID, city); err != nil {
		return Result{}, fmt.Errorf("save city: %w", err)
	}
	return s.advanceFrom(ctx, userID, sess)
}

func (s *Service) handleLocation(ctx context.Context, userID int64, sess Session, in Input) (Result, error) {
	skip := in.Kind == KindAction && in.Action == ActionSkip
	detail := strings.TrimSpace(in.Text)
	if !skip && in.Kind != KindText {
		return reject(sess), nil
	}

	// An empty message counts as a skip.
	if skip || detail == "" {
		if err := s.profiles.SaveLocationDetail(ctx, userID, nil); err != nil {
			return Result{}, fmt.Errorf("clear location detail: %w", err)
		}
		return s.advanceFrom(ctx, userID, sess)
	}

	if utf8.RuneCountInString(detail) < minLocationLen {
		return reject(sess), nil
	}
	if err := s.profiles.SaveLocationDetail(ctx, userID, &detail); err != nil {
		return Result{}, fmt.Errorf("save location detail: %w", err)
	}
	return s.advanceFrom(ctx, userID, sess)
}

func (s *Service) handleAge(ctx context.Context, userID int64, sess Session, in Input) (Result, error) {
	if in.Kind != KindText {
		return reject(sess), nil
	}
	age, err := strconv.Atoi(strings.TrimSpace(in.Text))
	if err != nil || age < minAge || age > maxAge {
		return reject(sess), nil
	}
	if err := s.profiles.SaveAge(ctx, userID, age); err != nil {
		return Result{}, fmt.Errorf("save age: %w", err)
	}
	return s.advanceFrom(ctx, userID, sess)
}

func (s *Service) handleAbout(ctx context.Context, userID int64, sess Session, in Input) (Result, error) {
	if in.Kind != KindText {
		return reject(sess), nil
	}
	about := strings.TrimSpace(in.Text)
	if utf8.RuneCountInString(about) < minAboutLen {
		return reject(sess), nil
	}
	if err := s.profiles.SaveAbout(ctx, userID, about); err != nil {
		return Result{}, fmt.Errorf("save about: %w", err)
	}
	return s.advanceFrom(ctx, userID, sess)
}

func (s *Service) handleTags(ctx context.Context, userID int64, sess Session, in Input) (Result, error) {
	if in.Kind != KindText {
		return reject(sess), nil
	}
	tags := ParseTags(in.Text)
	if err := s.profiles.SaveTags(ctx, userID, tags); err != nil {
		return Result{}, fmt.Errorf("save tags: %w", err)
	}
	return s.advanceFrom(ctx, userID, sess)
}

func (s *Service) handlePhotos(ctx context.Context, userID int64, sess Session, in Input) (Result, error) {
	switch {
	case in.Kind == KindPhoto && in.PhotoID != "":
		return s.storePhoto(ctx, userID, sess, in.PhotoID)

	case in.Kind == KindAction && in.Action == ActionClear:
		if err := s.photos.Clear(ctx, userID); err != nil {
			return Result{}, fmt.Errorf("clear photos: %w", err)
		}
		return Result{Event: EventPhotosCleared, Step: sess.Step, Session: sess}, nil

	case in.Kind == KindAction && in.Action == ActionDone:
		count, err := s.photos.Count(ctx, userID)
		if err != nil {
			return Result{}, fmt.Errorf("count photos: %w", err)
		}
		if count < minPhotos {
			return Result{Event: EventPhotosNeedMore, Step: sess.Step, Session: sess, PhotoCount: count}, nil
		}
		sess.Step = StepPreview
		return Result{Event: EventPrompt, Step: StepPreview, Session: sess, PhotoCount: count}, nil

	default:
		return reject(sess), nil
	}
}

// storePhoto checks capacity before touching the store so the user sees a
// limit notice rather than a storage error on the 4th upload.
func (s *Service) storePhoto(ctx context.Context, userID int64, sess Session, fileID string) (Result, error) {
	count, err := s.photos.Count(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("count photos: %w", err)
	}
	if count >= maxPhotos {
		return Result{Event: EventPhotoLimit, Step: sess.Step, Session: sess, PhotoCount: count}, nil
	}

	if err := s.photos.Add(ctx, userID, fileID); err != nil {
		return Result{}, fmt.Errorf("add photo: %w", err)
	}
	count++

	// The set is full: move on without waiting for an explicit "done".
	if count == maxPhotos {
		sess.Step = StepPreview
		return Result{Event: EventPrompt, Step: StepPreview, Session: sess, PhotoCount: count}, nil
	}
	return Result{Event: EventPhotoStored, Step: sess.Step, Session: sess, PhotoCount: count}, nil
}

func (s *Service) handlePreview(ctx context.Context, userID int64, sess Session, in Input) (Result, error) {
	if in.Kind != KindAction {
		return reject(sess), nil
	}

	switch in.Action {
	case ActionSubmit:
		if s.submitter == nil {
			return Result{}, ErrNoSubmitter
		}
		if err := s.submitter.Submit(ctx, userID); err != nil {
			return Result{}, fmt.Errorf("submit profile: %w", err)
		}
		return Result{Event: EventSubmitted}, nil

	case ActionRestart:
		// A restarted run is a fresh one: stored photos must not survive,
		// or the first upload of the new run hits the photo limit.
		if err := s.photos.Clear(ctx, userID); err != nil {
			return Result{}, fmt.Errorf("clear photos for restart: %w", err)
		}
		fresh := Session{Mode: ModeNew, Step: StepGender}
		return Result{Event: EventPrompt, Step: StepGender, Session: fresh}, nil

	default:
		return reject(sess), nil
	}
}

// advanceFrom moves the cursor after a successful field write. ModeEditOne
// always lands on preview; ModeEdit jumps from tags to preview when the user
// already has enough photos stored.
func (s *Service) advanceFrom(ctx context.Context, userID int64, sess Session) (Result, error) {
	if sess.Mode == ModeEditOne {
		sess.Step = StepPreview
		return Result{Event: EventPrompt, Step: StepPreview, Session: sess}, nil
	}

	if sess.Step == StepTags && sess.Mode == ModeEdit {
		count, err := s.photos.Count(ctx, userID)
		if err != nil {
			return Result{}, fmt.Errorf("count photos: %w", err)
		}
		if count >= minPhotos {
			sess.Step = StepPreview
			return Result{Event: EventPrompt, Step: StepPreview, Session: sess, PhotoCount: count}, nil
		}
	}

	next, ok := stepOrder[sess.Step]
	if !ok {
		return Result{Event: EventLeft}, nil
	}
	sess.Step = next
	return Result{Event: EventPrompt, Step: next, Session: sess}, nil
}

// ParseTags splits a comma list, trims each entry, drops blanks and keeps the
// first five. A comma-only input yields an empty list, which is accepted.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

func reject(sess Session) Result {
	return Result{Event: EventReject, Step: sess.Step, Session: sess}
}

// selectionValue lets fixed-choice steps accept either a button press or the
// same value typed as text.
func selectionValue(in Input) string {
	if in.Kind != KindSelect && in.Kind != KindText {
		return ""
	}
	return in.Text
}
