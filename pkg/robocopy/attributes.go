package robocopy

import "strings"

// fileAttributeLetters holds the canonical serialization order of the file
// attribute flags. Index positions double as bitset indices.
const fileAttributeLetters = "RASHCNET"

// FileAttributes is a combinable set of Windows file attribute flags.
// The zero value is the empty set. Values built from the Attr* constructors
// contain exactly one flag; Union merges any two values.
type FileAttributes struct {
	set [8]bool
}

func fileAttribute(i int) FileAttributes {
	var a FileAttributes
	a.set[i] = true
	return a
}

// AttrReadOnly selects the read-only attribute (letter R).
func AttrReadOnly() FileAttributes { return fileAttribute(0) }

// AttrArchive selects the archive attribute (letter A).
func AttrArchive() FileAttributes { return fileAttribute(1) }

// AttrSystem selects the system attribute (letter S).
func AttrSystem() FileAttributes { return fileAttribute(2) }

// AttrHidden selects the hidden attribute (letter H).
func AttrHidden() FileAttributes { return fileAttribute(3) }

// AttrCompressed selects the compressed attribute (letter C).
func AttrCompressed() FileAttributes { return fileAttribute(4) }

// AttrNotContentIndexed selects the not-content-indexed attribute (letter N).
func AttrNotContentIndexed() FileAttributes { return fileAttribute(5) }

// AttrEncrypted selects the encrypted attribute (letter E).
func AttrEncrypted() FileAttributes { return fileAttribute(6) }

// AttrTemporary selects the temporary attribute (letter T).
func AttrTemporary() FileAttributes { return fileAttribute(7) }

// AllFileAttributes returns the set containing every file attribute flag.
func AllFileAttributes() FileAttributes {
	var a FileAttributes
	for i := range a.set {
		a.set[i] = true
	}
	return a
}

// NoFileAttributes returns the explicit empty set. It is the same as the zero
// value and exists for call sites that want to spell the intent out, such as
// RemoveAttributes(NoFileAttributes()).
func NoFileAttributes() FileAttributes { return FileAttributes{} }

// Union returns the set containing every flag present in a or b.
func (a FileAttributes) Union(b FileAttributes) FileAttributes {
	unionBits(a.set[:], b.set[:])
	return a
}

// Singles decomposes the set into its atomic single-flag values, in canonical
// order.
func (a FileAttributes) Singles() []FileAttributes {
	singles := make([]FileAttributes, 0, countBits(a.set[:]))
	for i, b := range a.set {
		if b {
			singles = append(singles, fileAttribute(i))
		}
	}
	return singles
}

// IsZero reports whether no flag is set.
func (a FileAttributes) IsZero() bool { return countBits(a.set[:]) == 0 }

// Letters serializes the set to robocopy's concatenated letter form, e.g.
// "RASH". Letters appear in canonical order regardless of how the set was
// combined.
func (a FileAttributes) Letters() string {
	var sb strings.Builder
	for i, b := range a.set {
		if b {
			sb.WriteByte(fileAttributeLetters[i])
		}
	}
	return sb.String()
}
