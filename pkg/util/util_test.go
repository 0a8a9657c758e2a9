package util

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory available: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no tilde is returned unchanged",
			input: "/var/log/run.log",
			want:  "/var/log/run.log",
		},
		{
			name:  "relative path is returned unchanged",
			input: "logs/run.log",
			want:  "logs/run.log",
		},
		{
			name:  "bare tilde expands to home",
			input: "~",
			want:  home,
		},
		{
			name:  "tilde prefix expands to home",
			input: "~/backups",
			want:  filepath.Join(home, "backups"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExpandPath(tc.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) returned unexpected error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestInvertMap(t *testing.T) {
	input := map[string]int{"a": 1, "b": 2, "c": 3}
	got := InvertMap(input)
	want := map[int]string{1: "a", 2: "b", 3: "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InvertMap() = %v, want %v", got, want)
	}
}

func TestMergeAndDeduplicate(t *testing.T) {
	tests := []struct {
		name   string
		slices [][]string
		want   []string
	}{
		{
			name:   "duplicates removed, first occurrence wins",
			slices: [][]string{{"a", "b"}, {"b", "c"}, {"a", "d"}},
			want:   []string{"a", "b", "c", "d"},
		},
		{
			name:   "empty slices contribute nothing",
			slices: [][]string{{}, {"x"}, {}},
			want:   []string{"x"},
		},
		{
			name:   "no input yields nil",
			slices: nil,
			want:   nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MergeAndDeduplicate(tc.slices...)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("MergeAndDeduplicate() = %v, want %v", got, tc.want)
			}
		})
	}
}
