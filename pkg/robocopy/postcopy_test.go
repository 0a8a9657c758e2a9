package robocopy_test

import (
	"errors"
	"reflect"
	"testing"

	"pixelgardenlabs.io/pgl-robocopy/pkg/robocopy"
)

func TestPostCopyActionsTokens(t *testing.T) {
	add := robocopy.AddAttributes(robocopy.AttrReadOnly().Union(robocopy.AttrHidden()))
	remove := robocopy.RemoveAttributes(robocopy.AttrArchive())

	merged, err := add.Union(remove)
	if err != nil {
		t.Fatalf("Union() returned unexpected error: %v", err)
	}

	got := merged.Tokens()
	want := []string{"/a+:RH", "/a-:A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestPostCopyActionsUnionMergesHalves(t *testing.T) {
	a := robocopy.AddAttributes(robocopy.AttrReadOnly())
	b := robocopy.AddAttributes(robocopy.AttrSystem())

	merged, err := a.Union(b)
	if err != nil {
		t.Fatalf("Union() returned unexpected error: %v", err)
	}

	got := merged.Tokens()
	want := []string{"/a+:RS"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestPostCopyActionsUnionRejectsEmptyPair(t *testing.T) {
	add := robocopy.AddAttributes(robocopy.NoFileAttributes())
	remove := robocopy.RemoveAttributes(robocopy.NoFileAttributes())

	if _, err := add.Union(remove); !errors.Is(err, robocopy.ErrEmptyPostCopyActions) {
		t.Errorf("Union() error = %v, want ErrEmptyPostCopyActions", err)
	}

	// A single empty half is fine; it only turns into an error when both
	// halves are present and empty.
	if _, err := add.Union(robocopy.AddAttributes(robocopy.NoFileAttributes())); err != nil {
		t.Errorf("Union() of two empty add halves errored: %v", err)
	}
}

func TestPostCopyActionsSingles(t *testing.T) {
	add := robocopy.AddAttributes(robocopy.AttrReadOnly())
	remove := robocopy.RemoveAttributes(robocopy.AttrTemporary())

	merged, err := remove.Union(add)
	if err != nil {
		t.Fatalf("Union() returned unexpected error: %v", err)
	}

	singles := merged.Singles()
	if len(singles) != 2 {
		t.Fatalf("Singles() returned %d elements, want 2", len(singles))
	}
	// The add component always comes first.
	if got := singles[0].Tokens(); !reflect.DeepEqual(got, []string{"/a+:R"}) {
		t.Errorf("singles[0].Tokens() = %v, want [/a+:R]", got)
	}
	if got := singles[1].Tokens(); !reflect.DeepEqual(got, []string{"/a-:T"}) {
		t.Errorf("singles[1].Tokens() = %v, want [/a-:T]", got)
	}
}
