package repository

import "testing"

func TestNotFoundError_Error(t *testing.T) {
	err := &NotFoundError{Resource: "qc_run", ID: "42"}
	if got := err.Error(); got != "qc_run 42 not found" {
		t.Errorf("Error() = %q, want %q", got, "qc_run 42 not found")
	}
}
