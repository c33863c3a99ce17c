package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/enums"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/domain/model"
)

type fakeProfileStore struct {
	profile model.Profile
	getErr  error

	state       enums.ProfileState
	stateSet    bool
	savedRef    *model.PostRef
	refCleared  int
	wiped       int
	saveRefErr  error
	setStateErr error
}

func (f *fakeProfileStore) Get(_ context.Context, _ int64) (model.Profile, error) {
	if f.getErr != nil {
		return model.Profile{}, f.getErr
	}
	return f.profile, nil
}

func (f *fakeProfileStore) SetState(_ context.Context, _ int64, state enums.ProfileState) error {
	if f.setStateErr != nil {
		return f.setStateErr
	}
	f.state = state
	f.stateSet = true
	return nil
}

func (f *fakeProfileStore) SavePostedRef(_ context.Context, _ int64, ref model.PostRef) error {
	if f.saveRefErr != nil {
		return f.saveRefErr
	}
	f.savedRef = &ref
	return nil
}

func (f *fakeProfileStore) ClearPostedRef(_ context.Context, _ int64) error {
	f.refCleared++
	return nil
}

func (f *fakeProfileStore) ClearProfile(_ context.Context, _ int64) error {
	f.wiped++
	return nil
}

type fakePhotoStore struct {
	photos  []model.Photo
	cleared int
}

func (f *fakePhotoStore) List(_ context.Context, _ int64) ([]model.Photo, error) {
	return f.photos, nil
}

func (f *fakePhotoStore) Clear(_ context.Context, _ int64) error {
	f.cleared++
	return nil
}

type fakeTopics struct {
	topics map[enums.TopicKey]model.Topic
	err    error
}

func (f *fakeTopics) Resolve(_ context.Context, key enums.TopicKey) (model.Topic, bool, error) {
	if f.err != nil {
		return model.Topic{}, false, f.err
	}
	topic, ok := f.topics[key]
	return topic, ok, nil
}

type fakeGateway struct {
	notified    int
	published   []model.Topic
	publishRef  model.PostRef
	publishErr  error
	notifyErr   error
	unpublished []model.PostRef
}

func (f *fakeGateway) NotifyAdmins(_ context.Context, _ model.Profile, _ []model.Photo) error {
	if f.notifyErr != nil {
		return f.notifyErr
	}
	f.notified++
	return nil
}

func (f *fakeGateway) Publish(_ context.Context, _ model.Profile, _ []model.Photo, topic model.Topic) (model.PostRef, error) {
	if f.publishErr != nil {
		return model.PostRef{}, f.publishErr
	}
	f.published = append(f.published, topic)
	return f.publishRef, nil
}

func (f *fakeGateway) Unpublish(_ context.Context, ref model.PostRef) error {
	f.unpublished = append(f.unpublished, ref)
	return errors.New("already gone")
}

type fakeNotifier struct {
	approved   []string
	rejected   int
	editAsks   []string
	fieldFixes []enums.EditField
	err        error
}

func (f *fakeNotifier) ProfileApproved(_ context.Context, _ int64, inviteURL string) error {
	if f.err != nil {
		return f.err
	}
	f.approved = append(f.approved, inviteURL)
	return nil
}

func (f *fakeNotifier) ProfileRejected(_ context.Context, _ int64) error {
	if f.err != nil {
		return f.err
	}
	f.rejected++
	return nil
}

func (f *fakeNotifier) ProfileEditRequested(_ context.Context, _ int64, feedback string) error {
	if f.err != nil {
		return f.err
	}
	f.editAsks = append(f.editAsks, feedback)
	return nil
}

func (f *fakeNotifier) ProfileFieldFixRequested(_ context.Context, _ int64, field enums.EditField) error {
	if f.err != nil {
		return f.err
	}
	f.fieldFixes = append(f.fieldFixes, field)
	return nil
}

type fakeInvites struct {
	url string
	err error
}

func (f *fakeInvites) CreateOneTimeLink(_ context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func completeProfile(state enums.ProfileState) model.Profile {
	detail := "Kreuzberg"
	return model.Profile{
		UserID:             42,
		Gender:             enums.GenderMale,
		RelationshipStatus: enums.RelationshipSingle,
		DisplayName:        "Max",
		CityMain:           "Berlin",
		LocationDetail:     &detail,
		Age:                28,
		About:              "Likes long walks and loud concerts.",
		Tags:               []string{"music"},
		State:              state,
	}
}

func twoPhotos() []model.Photo {
	return []model.Photo{
		{UserID: 42, FileID: "p1", OrderIndex: 0},
		{UserID: 42, FileID: "p2", OrderIndex: 1},
	}
}

type fixture struct {
	svc      *Service
	profiles *fakeProfileStore
	photos   *fakePhotoStore
	topics   *fakeTopics
	gateway  *fakeGateway
	notifier *fakeNotifier
	invites  *fakeInvites
}

func newFixture(profile model.Profile, photos []model.Photo) fixture {
	f := fixture{
		profiles: &fakeProfileStore{profile: profile},
		photos:   &fakePhotoStore{photos: photos},
		topics: &fakeTopics{topics: map[enums.TopicKey]model.Topic{
			enums.TopicKeyHerren: {Key: enums.TopicKeyHerren, ThreadID: 10},
			enums.TopicKeyFrauen: {Key: enums.TopicKeyFrauen, ThreadID: 20},
		}},
		gateway:  &fakeGateway{publishRef: model.PostRef{ChatID: -100, ThreadID: 10, MessageID: 555, MediaMessageIDs: []int64{553, 554}}},
		notifier: &fakeNotifier{},
		invites:  &fakeInvites{url: "https://t.me/+abc"},
	}
	f.svc = NewService(f.profiles, f.photos, f.topics, f.gateway, f.notifier, f.invites)
	return f
}

func TestSubmitMovesDraftToPendingAfterAdminNotice(t *testing.T) {
	f := newFixture(completeProfile(enums.ProfileStateDraft), twoPhotos())

	if err := f.svc.Submit(context.Background(), 42); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if f.gateway.notified != 1 {
		t.Fatalf("admins not notified")
	}
	if f.profiles.state != enums.ProfileStatePending {
		t.Fatalf("expected pending state, got %q", f.profiles.state)
	}
}

func TestSubmitRejectsIncompleteProfile(t *testing.T) {
	profile := completeProfile(enums.ProfileStateDraft)
	profile.About = ""
	f := newFixture(profile, twoPhotos())

	err := f.svc.Submit(context.Background(), 42)
	if !errors.Is(err, ErrProfileIncomplete) {
		t.Fatalf("expected ErrProfileIncomplete, got %v", err)
	}
	if f.profiles.stateSet {
		t.Fatalf("incomplete submit must not change state")
	}
	if f.gateway.notified != 0 {
		t.Fatalf("incomplete submit must not notify admins")
	}
}

func TestSubmitRejectsTooFewPhotos(t *testing.T) {
	f := newFixture(completeProfile(enums.ProfileStateDraft), twoPhotos()[:1])

	if err := f.svc.Submit(context.Background(), 42); !errors.Is(err, ErrProfileIncomplete) {
		t.Fatalf("expected ErrProfileIncomplete, got %v", err)
	}
}

func TestResubmissionSupersedesPriorPost(t *testing.T) {
	profile := completeProfile(enums.ProfileStateApproved)
	profile.Posted = &model.PostRef{ChatID: -100, ThreadID: 10, MessageID: 99, MediaMessageIDs: []int64{97, 98}}
	f := newFixture(profile, twoPhotos())

	if err := f.svc.Submit(context.Background(), 42); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if len(f.gateway.unpublished) != 1 || f.gateway.unpublished[0].MessageID != 99 {
		t.Fatalf("prior post not taken down: %v", f.gateway.unpublished)
	}
	if f.profiles.refCleared != 1 {
		t.Fatalf("posted ref not cleared")
	}
	if f.profiles.state != enums.ProfileStatePending {
		t.Fatalf("expected pending, got %q", f.profiles.state)
	}
}

func TestSubmitFailedAdminNoticeLeavesStateAlone(t *testing.T) {
	f := newFixture(completeProfile(enums.ProfileStateDraft), twoPhotos())
	f.gateway.notifyErr = errors.New("telegram down")

	if err := f.svc.Submit(context.Background(), 42); err == nil {
		t.Fatalf("expected notify error")
	}
	if f.profiles.stateSet {
		t.Fatalf("state must not change when admins were not notified")
	}
}

func TestApprovePublishesAndCommitsState(t *testing.T) {
	f := newFixture(completeProfile(enums.ProfileStatePending), twoPhotos())

	result, err := f.svc.Approve(context.Background(), 42)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if len(f.gateway.published) != 1 || f.gateway.published[0].Key != enums.TopicKeyHerren {
		t.Fatalf("expected publication into herren thread, got %v", f.gateway.published)
	}
	if f.profiles.savedRef == nil || f.profiles.savedRef.MessageID != 555 {
		t.Fatalf("posted ref not saved: %v", f.profiles.savedRef)
	}
	if f.profiles.state != enums.ProfileStateApproved {
		t.Fatalf("expected approved, got %q", f.profiles.state)
	}
	if !result.InviteIssued || result.InviteURL != "https://t.me/+abc" {
		t.Fatalf("invite not issued: %+v", result)
	}
	if !result.UserNotified || len(f.notifier.approved) != 1 {
		t.Fatalf("user not notified: %+v", result)
	}
}

func TestApproveWomanPublishesIntoFrauenThread(t *testing.T) {
	profile := completeProfile(enums.ProfileStatePending)
	profile.Gender = enums.GenderFemale
	f := newFixture(profile, twoPhotos())

	if _, err := f.svc.Approve(context.Background(), 42); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if len(f.gateway.published) != 1 || f.gateway.published[0].Key != enums.TopicKeyFrauen {
		t.Fatalf("expected frauen thread, got %v", f.gateway.published)
	}
}

func TestApproveWithoutBoundTopicLeavesStateUnchanged(t *testing.T) {
	f := newFixture(completeProfile(enums.ProfileStatePending), twoPhotos())
	delete(f.topics.topics, enums.TopicKeyHerren)

	_, err := f.svc.Approve(context.Background(), 42)
	if !errors.Is(err, ErrTopicNotBound) {
		t.Fatalf("expected ErrTopicNotBound, got %v", err)
	}
	if f.profiles.stateSet {
		t.Fatalf("state must not change when no topic is bound")
	}
	if len(f.gateway.published) != 0 {
		t.Fatalf("nothing must be published")
	}
}

func TestApprovePublishFailureLeavesStateUnchanged(t *testing.T) {
	f := newFixture(completeProfile(enums.ProfileStatePending), twoPhotos())
	f.gateway.publishErr = errors.New("send failed")

	if _, err := f.svc.Approve(context.Background(), 42); err == nil {
		t.Fatalf("expected publish error")
	}
	if f.profiles.stateSet {
		t.Fatalf("state must not change on publish failure")
	}
}

func TestApproveNonPendingIsInvalidTransition(t *testing.T) {
	for _, state := range []enums.ProfileState{
		enums.ProfileStateDraft,
		enums.ProfileStateApproved,
		enums.ProfileStateRejected,
		enums.ProfileStateInactive,
	} {
		f := newFixture(completeProfile(state), twoPhotos())

		_, err := f.svc.Approve(context.Background(), 42)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("state %q: expected ErrInvalidTransition, got %v", state, err)
		}
		if len(f.gateway.published) != 0 {
			t.Fatalf("state %q: no side effects may re-run", state)
		}
	}
}

func TestApproveBestEffortInviteAndNotice(t *testing.T) {
	f := newFixture(completeProfile(enums.ProfileStatePending), twoPhotos())
	f.invites.err = errors.New("no rights")
	f.notifier.err = errors.New("user blocked bot")

	result, err := f.svc.Approve(context.Background(), 42)
	if err != nil {
		t.Fatalf("approve must not fail on best-effort steps: %v", err)
	}
	if result.InviteIssued || result.UserNotified {
		t.Fatalf("expected both best-effort flags false, got %+v", result)
	}
	if f.profiles.state != enums.ProfileStateApproved {
		t.Fatalf("state must still commit, got %q", f.profiles.state)
	}
}

func TestRejectRequiresPending(t *testing.T) {
	f := newFixture(completeProfile(enums.ProfileStateApproved), twoPhotos())

	if _, err := f.svc.Reject(context.Background(), 42); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	f = newFixture(completeProfile(enums.ProfileStatePending), twoPhotos())
	notified, err := f.svc.Reject(context.Background(), 42)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if !notified || f.notifier.rejected != 1 {
		t.Fatalf("user not notified")
	}
	if f.profiles.state != enums.ProfileStateRejected {
		t.Fatalf("expected rejected, got %q", f.profiles.state)
	}
}

func TestRequestEditCarriesFeedback(t *testing.T) {
	f := newFixture(completeProfile(enums.ProfileStatePending), twoPhotos())

	notified, err := f.svc.RequestEdit(context.Background(), 42, "Bitte Text überarbeiten")
	if err != nil {
		t.Fatalf("request edit: %v", err)
	}
	if !notified || len(f.notifier.editAsks) != 1 || f.notifier.editAsks[0] != "Bitte Text überarbeiten" {
		t.Fatalf("feedback not delivered: %v", f.notifier.editAsks)
	}
	if f.profiles.state != enums.ProfileStatePendingEdit {
		t.Fatalf("expected pending_edit, got %q", f.profiles.state)
	}
}

func TestRequestFieldFixAppliesToLiveProfiles(t *testing.T) {
	for _, state := range []enums.ProfileState{
		enums.ProfileStatePending,
		enums.ProfileStateApproved,
		enums.ProfileStatePendingEdit,
	} {
		f := newFixture(completeProfile(state), twoPhotos())

		notified, err := f.svc.RequestFieldFix(context.Background(), 42, enums.EditFieldAge)
		if err != nil {
			t.Fatalf("state %q: field fix: %v", state, err)
		}
		if !notified || len(f.notifier.fieldFixes) != 1 || f.notifier.fieldFixes[0] != enums.EditFieldAge {
			t.Fatalf("state %q: fix notice missing", state)
		}
		if f.profiles.state != enums.ProfileStatePendingEdit {
			t.Fatalf("state %q: expected pending_edit, got %q", state, f.profiles.state)
		}
	}

	f := newFixture(completeProfile(enums.ProfileStateDraft), twoPhotos())
	if _, err := f.svc.RequestFieldFix(context.Background(), 42, enums.EditFieldAge); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("draft: expected ErrInvalidTransition, got %v", err)
	}
}

func TestRequestFieldFixRejectsUnknownField(t *testing.T) {
	f := newFixture(completeProfile(enums.ProfileStatePending), twoPhotos())

	if _, err := f.svc.RequestFieldFix(context.Background(), 42, "shoe_size"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if f.profiles.stateSet {
		t.Fatalf("unknown field must not change state")
	}
}

func TestDeleteWipesEverything(t *testing.T) {
	profile := completeProfile(enums.ProfileStateApproved)
	profile.Posted = &model.PostRef{ChatID: -100, MessageID: 77, MediaMessageIDs: []int64{75, 76}}
	f := newFixture(profile, twoPhotos())

	if err := f.svc.Delete(context.Background(), 42); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.gateway.unpublished) != 1 || f.gateway.unpublished[0].MessageID != 77 {
		t.Fatalf("published post not taken down")
	}
	if f.photos.cleared != 1 {
		t.Fatalf("photos not cleared")
	}
	if f.profiles.wiped != 1 {
		t.Fatalf("profile not wiped")
	}
}

func TestDeleteWithoutPostSkipsTakedown(t *testing.T) {
	f := newFixture(completeProfile(enums.ProfileStateDraft), nil)

	if err := f.svc.Delete(context.Background(), 42); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.gateway.unpublished) != 0 {
		t.Fatalf("nothing to take down")
	}
}
