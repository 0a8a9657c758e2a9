// Package flagparse turns raw command-line flag values into the typed values
// the rest of the application works with.
package flagparse

import (
	"fmt"
	"strings"

	"pixelgardenlabs.io/pgl-robocopy/pkg/robocopy"
)

// attributeConstructors maps robocopy's attribute letters to their typed
// constructors, in canonical order.
var attributeConstructors = map[rune]func() robocopy.FileAttributes{
	'R': robocopy.AttrReadOnly,
	'A': robocopy.AttrArchive,
	'S': robocopy.AttrSystem,
	'H': robocopy.AttrHidden,
	'C': robocopy.AttrCompressed,
	'N': robocopy.AttrNotContentIndexed,
	'E': robocopy.AttrEncrypted,
	'T': robocopy.AttrTemporary,
}

// ParseAttributeLetters parses a concatenated attribute letter string like
// "RASH" (case-insensitive) into a FileAttributes set. An empty string yields
// the empty set.
func ParseAttributeLetters(s string) (robocopy.FileAttributes, error) {
	attribs := robocopy.NoFileAttributes()
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		ctor, ok := attributeConstructors[r]
		if !ok {
			return robocopy.FileAttributes{}, fmt.Errorf("invalid attribute letter %q. Must be a combination of 'RASHCNET'", string(r))
		}
		attribs = attribs.Union(ctor())
	}
	return attribs, nil
}

// filePropertyConstructors maps the /copy flag letters to their typed
// constructors, in canonical order.
var filePropertyConstructors = map[rune]func() robocopy.FileProperties{
	'D': robocopy.FilePropData,
	'A': robocopy.FilePropAttributes,
	'T': robocopy.FilePropTimestamps,
	'S': robocopy.FilePropACL,
	'O': robocopy.FilePropOwner,
	'U': robocopy.FilePropAuditing,
}

// directoryPropertyConstructors maps the /dcopy flag letters to their typed
// constructors, in canonical order.
var directoryPropertyConstructors = map[rune]func() robocopy.DirectoryProperties{
	'D': robocopy.DirPropData,
	'A': robocopy.DirPropAttributes,
	'T': robocopy.DirPropTimestamps,
}

// ParseFileProperties parses a concatenated property letter string like "DAT"
// (case-insensitive) into a FileProperties set. An empty string yields the
// empty set.
func ParseFileProperties(s string) (robocopy.FileProperties, error) {
	props := robocopy.FileProperties{}
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		ctor, ok := filePropertyConstructors[r]
		if !ok {
			return robocopy.FileProperties{}, fmt.Errorf("invalid copy flag letter %q. Must be a combination of 'DATSOU'", string(r))
		}
		props = props.Union(ctor())
	}
	return props, nil
}

// ParseDirectoryProperties parses a concatenated property letter string like
// "DA" (case-insensitive) into a DirectoryProperties set. An empty string
// yields the empty set.
func ParseDirectoryProperties(s string) (robocopy.DirectoryProperties, error) {
	props := robocopy.DirectoryProperties{}
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		ctor, ok := directoryPropertyConstructors[r]
		if !ok {
			return robocopy.DirectoryProperties{}, fmt.Errorf("invalid dir copy flag letter %q. Must be a combination of 'DAT'", string(r))
		}
		props = props.Union(ctor())
	}
	return props, nil
}

// ParseList parses a comma-separated list of file or directory patterns.
// Items may be single- or double-quoted to contain commas or spaces; quotes
// are removed from the output. Backslashes are literal characters for Windows
// path compatibility.
func ParseList(s string) []string {
	var list []string
	var current strings.Builder
	var quoteChar rune

	// Helper to add the current buffered item to the list after trimming whitespace.
	appendItem := func() {
		trimmed := strings.TrimSpace(current.String())
		if trimmed != "" {
			list = append(list, trimmed)
		}
		current.Reset()
	}

	for _, r := range s {
		switch {
		case quoteChar != 0:
			if r == quoteChar {
				quoteChar = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quoteChar = r
		case r == ',':
			appendItem()
		default:
			current.WriteRune(r)
		}
	}
	appendItem()
	return list
}
