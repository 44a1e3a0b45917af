package response

import (
	"errors"
	"fmt"
	"testing"
)

var errNotFound = NewError(404, "session not found")

func TestErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: redis timeout", errNotFound)

	if !errors.Is(wrapped, errNotFound) {
		t.Error("errors.Is lost the sentinel")
	}
	if errors.Is(wrapped, NewError(500, "session not found")) {
		t.Error("different status matched")
	}
	if got := StatusOf(wrapped, 500); got != 404 {
		t.Errorf("StatusOf() = %d, want 404", got)
	}
	if got := StatusOf(errors.New("boom"), 500); got != 500 {
		t.Errorf("StatusOf(plain) = %d, want 500", got)
	}
}
