package registry

import (
	"testing"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/types"
)

func TestAddUserDefaultsToUnderReview(t *testing.T) {
	service := NewService(store.New())

	user := service.AddUser(UserRequest{Name: "Amara Banda"})
	if user.Status != types.UserStatusUnderReview {
		t.Errorf("status = %q, want %q", user.Status, types.UserStatusUnderReview)
	}

	active := service.AddUser(UserRequest{Name: "Chen Wei", Status: types.UserStatusActive})
	if active.Status != types.UserStatusActive {
		t.Errorf("explicit status overridden: %q", active.Status)
	}
}

func TestUpdateUserKeepsNestedRecords(t *testing.T) {
	service := NewService(store.New())

	user := service.AddUser(UserRequest{Name: "Amara Banda"})
	if err := service.AddVideoCall(user.ID, VideoCallRequest{
		ScheduledFor: "Mar 1, 2026", Purpose: "KYC",
	}); err != nil {
		t.Fatalf("add video call: %v", err)
	}
	if err := service.AddDocumentRequest(user.ID, DocumentRequestPayload{
		Document: "Export license",
	}); err != nil {
		t.Fatalf("add document request: %v", err)
	}

	if _, err := service.UpdateUser(user.ID, UserRequest{
		Name: "Amara K. Banda", Status: types.UserStatusActive,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := service.GetUser(user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Amara K. Banda" || got.Status != types.UserStatusActive {
		t.Errorf("update not applied: %+v", got.RegistryUser)
	}
	if len(got.VideoCalls) != 1 || len(got.DocumentRequests) != 1 {
		t.Errorf("nested records lost on update: calls=%d docs=%d",
			len(got.VideoCalls), len(got.DocumentRequests))
	}
}

func TestModerateTogglesFlags(t *testing.T) {
	service := NewService(store.New())
	user := service.AddUser(UserRequest{Name: "Amara Banda"})

	yes := true
	view := service.Moderate(user.ID, ModerationRequest{Suspended: &yes})
	if !view.Suspended {
		t.Error("user not suspended")
	}
	if view.Restricted {
		t.Error("restriction toggled by a nil field")
	}

	no := false
	view = service.Moderate(user.ID, ModerationRequest{Suspended: &no, Restricted: &yes})
	if view.Suspended || !view.Restricted {
		t.Errorf("view = suspended:%v restricted:%v", view.Suspended, view.Restricted)
	}
}

func TestVideoCallOnMissingUser(t *testing.T) {
	service := NewService(store.New())
	if err := service.AddVideoCall("USR_MISSING", VideoCallRequest{ScheduledFor: "Mar 1, 2026"}); err == nil {
		t.Fatal("expected an error for a missing user")
	}
}

func TestVerificationLogNewestFirst(t *testing.T) {
	service := NewService(store.New())

	service.RecordVerification(VerificationRequest{UserID: "USR_1", Field: "email", Outcome: "verified"})
	second := service.RecordVerification(VerificationRequest{UserID: "USR_1", Field: "phone", Outcome: "verified"})

	entries := service.VerificationLog()
	if len(entries) != 2 {
		t.Fatalf("log length = %d, want 2", len(entries))
	}
	if entries[0].ID != second.ID {
		t.Errorf("newest entry not first: %s", entries[0].ID)
	}
}
