package robocopy_test

import (
	"reflect"
	"testing"

	"pixelgardenlabs.io/pgl-robocopy/pkg/robocopy"
)

func TestFileExclusionFilterTokens(t *testing.T) {
	tests := []struct {
		name   string
		filter robocopy.FileExclusionFilter
		want   []string
	}{
		{
			name:   "boolean flags in canonical order",
			filter: robocopy.ExcludeNewer().Union(robocopy.ExcludeChanged()).Union(robocopy.ExcludeFileJunctions()),
			want:   []string{"/xc", "/xn", "/xjf"},
		},
		{
			name:   "attributes after flags",
			filter: robocopy.ExcludeAttributes(robocopy.AttrHidden().Union(robocopy.AttrSystem())).Union(robocopy.ExcludeOlder()),
			want:   []string{"/xo", "/xa:SH"},
		},
		{
			name:   "patterns last",
			filter: robocopy.ExcludeFiles("*.tmp", "~*").Union(robocopy.ExcludeChanged()),
			want:   []string{"/xc", "/xf", "*.tmp", "~*"},
		},
		{
			name:   "everything combined",
			filter: robocopy.ExcludeChanged().Union(robocopy.ExcludeAttributes(robocopy.AttrReadOnly())).Union(robocopy.ExcludeFiles("a.txt")),
			want:   []string{"/xc", "/xa:R", "/xf", "a.txt"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Tokens(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tokens() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFileExclusionFilterPatternOrder(t *testing.T) {
	// Pattern lists concatenate in operand order and keep duplicates. A
	// repeated pattern is harmless to robocopy.
	a := robocopy.ExcludeFiles("one", "two")
	b := robocopy.ExcludeFiles("three", "two")

	got := a.Union(b).Tokens()
	want := []string{"/xf", "one", "two", "three", "two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestFileExclusionFilterUnionFlagOrderIndependent(t *testing.T) {
	a := robocopy.ExcludeOlder().Union(robocopy.ExcludeAttributes(robocopy.AttrHidden()))
	b := robocopy.ExcludeAttributes(robocopy.AttrSystem()).Union(robocopy.ExcludeNewer())

	ab := a.Union(b).Tokens()
	ba := b.Union(a).Tokens()
	want := []string{"/xo", "/xn", "/xa:SH"}
	if !reflect.DeepEqual(ab, want) {
		t.Errorf("a.Union(b).Tokens() = %v, want %v", ab, want)
	}
	if !reflect.DeepEqual(ba, want) {
		t.Errorf("b.Union(a).Tokens() = %v, want %v", ba, want)
	}
}

func TestFileExclusionFilterSingles(t *testing.T) {
	filter := robocopy.ExcludeChanged().
		Union(robocopy.ExcludeAttributes(robocopy.AttrReadOnly())).
		Union(robocopy.ExcludeFiles("x", "y"))

	singles := filter.Singles()
	if len(singles) != 3 {
		t.Fatalf("Singles() returned %d elements, want 3", len(singles))
	}

	// Recombining the singles restores the filter.
	recombined := robocopy.FileExclusionFilter{}
	for _, single := range singles {
		recombined = recombined.Union(single)
	}
	if !reflect.DeepEqual(recombined.Tokens(), filter.Tokens()) {
		t.Errorf("recombined tokens = %v, want %v", recombined.Tokens(), filter.Tokens())
	}
}

func TestDirectoryExclusionFilterTokens(t *testing.T) {
	filter := robocopy.ExcludeDirs(`C:\temp`, "node_modules").Union(robocopy.ExcludeDirJunctions())

	got := filter.Tokens()
	want := []string{"/xjd", "/xd", `C:\temp`, "node_modules"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}

	singles := filter.Singles()
	if len(singles) != 2 {
		t.Fatalf("Singles() returned %d elements, want 2", len(singles))
	}
	if !reflect.DeepEqual(singles[0].Tokens(), []string{"/xjd"}) {
		t.Errorf("singles[0].Tokens() = %v, want [/xjd]", singles[0].Tokens())
	}
}

func TestFileAndDirectoryExclusionFilterTokens(t *testing.T) {
	filter := robocopy.ExcludeJunctions().Union(robocopy.ExcludeExtra()).Union(robocopy.ExcludeLonely())

	got := filter.Tokens()
	want := []string{"/xx", "/xl", "/xj"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestFileExclusionFilterExceptionTokens(t *testing.T) {
	filter := robocopy.IncludeTweaked().Union(robocopy.IncludeModified())

	got := filter.Tokens()
	want := []string{"/im", "/it"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestFilterBundleTokens(t *testing.T) {
	maxSize := uint64(1 << 20)
	include := robocopy.AttrArchive()
	fileExclusions := robocopy.ExcludeFiles("*.bak")
	dirExclusions := robocopy.ExcludeDirJunctions()
	exceptions := robocopy.IncludeSame()

	filter := &robocopy.Filter{
		HandleArchiveAndReset:     true,
		IncludeOnlyWithAttributes: &include,
		FileExclusions:            &fileExclusions,
		DirectoryExclusions:       &dirExclusions,
		ExclusionExceptions:       &exceptions,
		MaxSize:                   &maxSize,
		MaxAge:                    "20250101",
		MinLastAccessDate:         "30",
	}

	got := filter.Tokens()
	want := []string{
		"/m", "/ia:A",
		"/xf", "*.bak",
		"/xjd",
		"/is",
		"/max:1048576",
		"/maxage:20250101",
		"/minlad:30",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}
