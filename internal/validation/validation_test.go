package validation

import (
	"testing"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/types"
)

func TestErrorsToMap(t *testing.T) {
	validate := New()

	type payload struct {
		Name string `validate:"required"`
		Kind string `validate:"oneof=Buy Sell"`
	}
	err := validate.Struct(payload{Kind: "Swap"})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	fields := ErrorsToMap(err)
	if fields["payload.Name"] != "required" {
		t.Errorf("Name error = %q, want required", fields["payload.Name"])
	}
	if fields["payload.Kind"] != "oneof" {
		t.Errorf("Kind error = %q, want oneof", fields["payload.Kind"])
	}
}

func TestReferenceWarnings(t *testing.T) {
	s := store.NewSnapshot()
	s = store.Apply(s, store.CreateOrder{Order: types.Order{ID: "ORD_1", Type: types.OrderTypeBuy}})
	s = store.Apply(s, store.AddUser{User: types.RegistryUser{ID: "USR_1", Name: "Amara"}})

	if got := ReferenceWarnings(s, "ORD_1", "USR_1"); len(got) != 0 {
		t.Errorf("resolvable references warned: %v", got)
	}
	if got := ReferenceWarnings(s, "ORD_9", "USR_9"); len(got) != 2 {
		t.Errorf("warnings = %v, want 2", got)
	}
	// empty references are never checked
	if got := ReferenceWarnings(s, "", ""); len(got) != 0 {
		t.Errorf("empty references warned: %v", got)
	}
}
