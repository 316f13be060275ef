// Package validation runs request checks at the write boundary. The core
// store accepts whatever it is handed; everything here is the collaborator
// layer's responsibility, including the advisory referential pass over soft
// references.
package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/oredesk/ops-api/internal/store"
)

// New returns the validator used by all handlers.
func New() *validatorv10.Validate {
	return validatorv10.New()
}

// ErrorsToMap flattens validator errors into a field → message map for the
// response body.
func ErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.StructNamespace()] = fe.Tag()
		}
		return out
	}
	out["error"] = err.Error()
	return out
}

// ReferenceWarnings reports soft references that do not resolve in the
// snapshot. Dangling references are tolerated everywhere in the model, so
// these are advisory only: handlers log them and proceed.
func ReferenceWarnings(s store.Snapshot, orderID, userID string) []string {
	var warnings []string
	if orderID != "" {
		if _, ok := s.Orders[orderID]; !ok {
			warnings = append(warnings, "order "+orderID+" not found")
		}
	}
	if userID != "" {
		found := false
		for i := range s.Users {
			if s.Users[i].ID == userID {
				found = true
				break
			}
		}
		if !found {
			warnings = append(warnings, "user "+userID+" not found")
		}
	}
	return warnings
}
