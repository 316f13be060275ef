package support

import (
	"testing"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/types"
)

func TestAddEnquiryDefaultsToOpen(t *testing.T) {
	service := NewService(store.New())

	enquiry := service.AddEnquiry(EnquiryRequest{
		Type:    types.EnquiryTypeCallback,
		Subject: "Call me about copper pricing",
	})
	if enquiry.Status != types.EnquiryStatusOpen {
		t.Errorf("status = %q, want %q", enquiry.Status, types.EnquiryStatusOpen)
	}
}

func TestResolveEnquiry(t *testing.T) {
	service := NewService(store.New())

	enquiry := service.AddEnquiry(EnquiryRequest{
		Type: types.EnquiryTypeGeneral, Subject: "Fees",
	})

	resolved, err := service.UpdateEnquiry(enquiry.ID, EnquiryRequest{
		Type: types.EnquiryTypeGeneral, Subject: "Fees", Status: types.EnquiryStatusResolved,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resolved.Status != types.EnquiryStatusResolved {
		t.Errorf("status = %q", resolved.Status)
	}

	if _, err := service.UpdateEnquiry("ENQ_MISSING", EnquiryRequest{
		Type: types.EnquiryTypeGeneral, Subject: "x",
	}); err == nil {
		t.Error("expected an error for a missing enquiry")
	}
}

func TestDisputeLifecycle(t *testing.T) {
	service := NewService(store.New())

	dispute := service.AddDispute(DisputeRequest{
		OrderID: "ORD_1", Reason: "Grade mismatch", Status: "Open",
	})

	updated, err := service.UpdateDispute(dispute.ID, DisputeRequest{
		OrderID: "ORD_1", Reason: "Grade mismatch", Status: "Resolved",
		Resolution: "Partial refund",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != "Resolved" || updated.Resolution != "Partial refund" {
		t.Errorf("dispute = %+v", updated)
	}
}

func TestActivityLogNewestFirst(t *testing.T) {
	service := NewService(store.New())

	service.RecordActivity(ActivityRequest{Description: "first"})
	service.RecordActivity(ActivityRequest{Description: "second"})

	log := service.ListActivity()
	if len(log) != 2 {
		t.Fatalf("log length = %d, want 2", len(log))
	}
	if log[0].Description != "second" {
		t.Errorf("newest entry = %q, want second", log[0].Description)
	}
}
