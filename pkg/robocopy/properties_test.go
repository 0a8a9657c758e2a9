package robocopy_test

import (
	"testing"

	"pixelgardenlabs.io/pgl-robocopy/pkg/robocopy"
)

func TestFilePropertiesToken(t *testing.T) {
	tests := []struct {
		name  string
		props robocopy.FileProperties
		want  string
	}{
		{
			name:  "data only",
			props: robocopy.FilePropData(),
			want:  "/copy:D",
		},
		{
			name:  "DAT in canonical order regardless of union order",
			props: robocopy.FilePropTimestamps().Union(robocopy.FilePropData()).Union(robocopy.FilePropAttributes()),
			want:  "/copy:DAT",
		},
		{
			name:  "all properties",
			props: robocopy.AllFileProperties(),
			want:  "/copy:DATSOU",
		},
		{
			name:  "security subset",
			props: robocopy.FilePropACL().Union(robocopy.FilePropOwner()).Union(robocopy.FilePropAuditing()),
			want:  "/copy:SOU",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.props.Token(); got != tc.want {
				t.Errorf("Token() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFilePropertiesSingles(t *testing.T) {
	props := robocopy.FilePropData().Union(robocopy.FilePropACL())
	singles := props.Singles()
	if len(singles) != 2 {
		t.Fatalf("Singles() returned %d elements, want 2", len(singles))
	}
	if singles[0].Token() != "/copy:D" || singles[1].Token() != "/copy:S" {
		t.Errorf("singles = [%s, %s], want [/copy:D, /copy:S]", singles[0].Token(), singles[1].Token())
	}
}

func TestDirectoryPropertiesToken(t *testing.T) {
	if got := robocopy.AllDirectoryProperties().Token(); got != "/dcopy:DAT" {
		t.Errorf("AllDirectoryProperties().Token() = %q, want %q", got, "/dcopy:DAT")
	}

	props := robocopy.DirPropTimestamps().Union(robocopy.DirPropData())
	if got := props.Token(); got != "/dcopy:DT" {
		t.Errorf("Token() = %q, want %q", got, "/dcopy:DT")
	}

	singles := props.Singles()
	if len(singles) != 2 {
		t.Fatalf("Singles() returned %d elements, want 2", len(singles))
	}
	if singles[0].Token() != "/dcopy:D" || singles[1].Token() != "/dcopy:T" {
		t.Errorf("singles = [%s, %s], want [/dcopy:D, /dcopy:T]", singles[0].Token(), singles[1].Token())
	}
}
