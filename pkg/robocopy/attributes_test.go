package robocopy_test

import (
	"testing"

	"pixelgardenlabs.io/pgl-robocopy/pkg/robocopy"
)

func allAttributeConstructors() map[string]func() robocopy.FileAttributes {
	return map[string]func() robocopy.FileAttributes{
		"R": robocopy.AttrReadOnly,
		"A": robocopy.AttrArchive,
		"S": robocopy.AttrSystem,
		"H": robocopy.AttrHidden,
		"C": robocopy.AttrCompressed,
		"N": robocopy.AttrNotContentIndexed,
		"E": robocopy.AttrEncrypted,
		"T": robocopy.AttrTemporary,
	}
}

func TestFileAttributesUnionCommutative(t *testing.T) {
	ctors := allAttributeConstructors()
	for aName, aCtor := range ctors {
		for bName, bCtor := range ctors {
			ab := aCtor().Union(bCtor()).Letters()
			ba := bCtor().Union(aCtor()).Letters()
			if ab != ba {
				t.Errorf("union of %s and %s is not commutative: %q vs %q", aName, bName, ab, ba)
			}
		}
	}
}

func TestFileAttributesUnionIdempotent(t *testing.T) {
	for name, ctor := range allAttributeConstructors() {
		a := ctor()
		if got := a.Union(a).Letters(); got != a.Letters() {
			t.Errorf("union of %s with itself changed the set: %q vs %q", name, got, a.Letters())
		}
	}
}

func TestFileAttributesLettersCanonicalOrder(t *testing.T) {
	// Union in reverse order must still serialize in canonical order.
	set := robocopy.AttrTemporary().
		Union(robocopy.AttrEncrypted()).
		Union(robocopy.AttrHidden()).
		Union(robocopy.AttrReadOnly())
	if got := set.Letters(); got != "RHET" {
		t.Errorf("Letters() = %q, want %q", got, "RHET")
	}

	if got := robocopy.AllFileAttributes().Letters(); got != "RASHCNET" {
		t.Errorf("AllFileAttributes().Letters() = %q, want %q", got, "RASHCNET")
	}
}

func TestFileAttributesSingles(t *testing.T) {
	set := robocopy.AttrSystem().Union(robocopy.AttrReadOnly()).Union(robocopy.AttrTemporary())

	singles := set.Singles()
	if len(singles) != 3 {
		t.Fatalf("Singles() returned %d elements, want 3", len(singles))
	}

	// Decomposition is lossless and ordered: recombining yields the original.
	recombined := robocopy.NoFileAttributes()
	wantOrder := []string{"R", "S", "T"}
	for i, single := range singles {
		if got := single.Letters(); got != wantOrder[i] {
			t.Errorf("singles[%d].Letters() = %q, want %q", i, got, wantOrder[i])
		}
		recombined = recombined.Union(single)
	}
	if recombined.Letters() != set.Letters() {
		t.Errorf("recombined singles = %q, want %q", recombined.Letters(), set.Letters())
	}
}

func TestFileAttributesIsZero(t *testing.T) {
	if !robocopy.NoFileAttributes().IsZero() {
		t.Error("NoFileAttributes().IsZero() = false, want true")
	}
	if robocopy.AttrArchive().IsZero() {
		t.Error("AttrArchive().IsZero() = true, want false")
	}
	if len(robocopy.NoFileAttributes().Singles()) != 0 {
		t.Error("empty set decomposed into non-empty singles")
	}
}
