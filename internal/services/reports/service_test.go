package reports

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	created int
	targets map[int64]int
}

func (f *fakeStore) Create(_ context.Context, _, targetUserID int64, _ string) (int64, error) {
	f.created++
	if f.targets == nil {
		f.targets = map[int64]int{}
	}
	f.targets[targetUserID]++
	return int64(f.created), nil
}

func (f *fakeStore) CountForTargetSince(_ context.Context, targetUserID int64, _ time.Time) (int, error) {
	return f.targets[targetUserID], nil
}

func TestReportRecordsAndCountsRecent(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	ctx := context.Background()

	id, recent, err := svc.Report(ctx, 1, 2, "Fake-Profil mit fremden Fotos")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if id != 1 || recent != 1 {
		t.Fatalf("unexpected result: id=%d recent=%d", id, recent)
	}

	_, recent, err = svc.Report(ctx, 3, 2, "Beleidigende Nachrichten")
	if err != nil {
		t.Fatalf("second report: %v", err)
	}
	if recent != 2 {
		t.Fatalf("expected 2 recent reports, got %d", recent)
	}
}

func TestReportValidation(t *testing.T) {
	svc := NewService(&fakeStore{})
	ctx := context.Background()

	if _, _, err := svc.Report(ctx, 1, 1, "spam profile"); !errors.Is(err, ErrSelfReport) {
		t.Fatalf("expected ErrSelfReport, got %v", err)
	}
	if _, _, err := svc.Report(ctx, 1, 2, "ab"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for short reason, got %v", err)
	}
}
