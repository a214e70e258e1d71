package aggregates

import (
	"errors"
	"fmt"
	"testing"
)

func TestIneligibleCarriesReason(t *testing.T) {
	err := Ineligible("application.apply", ReasonCGPA)
	if !IsCode(err, CodeIneligible) {
		t.Fatalf("expected ineligible code, got %q", CodeOf(err))
	}
	if got := ReasonOf(err); got != ReasonCGPA {
		t.Fatalf("reason: want=%s got=%s", ReasonCGPA, got)
	}
	wrapped := fmt.Errorf("handler: %w", err)
	if ReasonOf(wrapped) != ReasonCGPA {
		t.Fatalf("reason lost through wrapping")
	}
}

func TestErrorString(t *testing.T) {
	err := StateConflict("application.update_status", "application is not pending")
	want := "application.update_status: application is not pending (conflict)"
	if err.Error() != want {
		t.Fatalf("want=%q got=%q", want, err.Error())
	}
}

func TestUnavailableUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("graph.read", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Fatalf("plain errors carry no code")
	}
}
