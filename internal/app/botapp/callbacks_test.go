package botapp

import (
	"strings"
	"testing"

	lifecyclesvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/lifecycle"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/ui"
)

func TestApproveStatusSurfacesFailedDeliveries(t *testing.T) {
	clean := approveStatus(lifecyclesvc.ApproveResult{InviteIssued: true, UserNotified: true})
	if clean != ui.AdminApproved() {
		t.Fatalf("clean approval must carry no warnings, got %q", clean)
	}

	noInvite := approveStatus(lifecyclesvc.ApproveResult{InviteIssued: false, UserNotified: true})
	if !strings.Contains(noInvite, ui.AdminInviteNotIssued()) {
		t.Fatalf("missing invite warning in %q", noInvite)
	}
	if strings.Contains(noInvite, ui.AdminUserUnreachable()) {
		t.Fatalf("unexpected unreachable warning in %q", noInvite)
	}

	allFailed := approveStatus(lifecyclesvc.ApproveResult{})
	if !strings.Contains(allFailed, ui.AdminInviteNotIssued()) || !strings.Contains(allFailed, ui.AdminUserUnreachable()) {
		t.Fatalf("both warnings expected in %q", allFailed)
	}
	if !strings.HasPrefix(allFailed, ui.AdminApproved()) {
		t.Fatalf("decision must come first in %q", allFailed)
	}
}

func TestDecisionStatusAppendsUnreachableNote(t *testing.T) {
	if got := decisionStatus(ui.AdminRejected(), true); got != ui.AdminRejected() {
		t.Fatalf("delivered decision must stay bare, got %q", got)
	}

	got := decisionStatus(ui.AdminRejected(), false)
	if !strings.HasPrefix(got, ui.AdminRejected()) || !strings.Contains(got, ui.AdminUserUnreachable()) {
		t.Fatalf("undelivered decision must warn the admin, got %q", got)
	}
}
