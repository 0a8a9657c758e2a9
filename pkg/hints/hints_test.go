package hints_test

import (
	"errors"
	"fmt"
	"testing"

	"pixelgardenlabs.io/pgl-robocopy/pkg/hints"
)

func TestIsHint(t *testing.T) {
	plain := errors.New("plain failure")
	hint := hints.New("step skipped")

	if hints.IsHint(plain) {
		t.Error("IsHint() reported a plain error as a hint")
	}
	if !hints.IsHint(hint) {
		t.Error("IsHint() did not recognize a hint")
	}
	if hints.IsHint(nil) {
		t.Error("IsHint(nil) = true, want false")
	}
}

func TestIsHintThroughWrapping(t *testing.T) {
	hint := hints.New("nothing to do")
	wrapped := fmt.Errorf("outer context: %w", hint)

	if !hints.IsHint(wrapped) {
		t.Error("IsHint() lost the hint through fmt.Errorf wrapping")
	}
}

func TestWrap(t *testing.T) {
	if hints.Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	inner := errors.New("disabled by config")
	hint := hints.Wrap(inner)
	if !hints.IsHint(hint) {
		t.Error("Wrap() did not produce a hint")
	}
	if !errors.Is(hint, inner) {
		t.Error("Wrap() broke the errors.Is chain to the inner error")
	}
}

func TestIs(t *testing.T) {
	sentinel := hints.New("feature disabled")
	wrapped := fmt.Errorf("run: %w", sentinel)

	if !hints.Is(wrapped, sentinel) {
		t.Error("Is() did not match a wrapped hint sentinel")
	}
	if hints.Is(errors.New("feature disabled"), sentinel) {
		t.Error("Is() matched an unrelated error with the same message")
	}
}
