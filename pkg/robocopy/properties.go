package robocopy

import "strings"

// filePropertyLetters is the canonical order of the /copy flag letters:
// Data, Attributes, Time stamps, Security (NTFS ACLs), Owner info, aUditing info.
const filePropertyLetters = "DATSOU"

// FileProperties selects which file properties robocopy copies (/copy:<letters>).
// The zero value selects nothing and serializes to "/copy:"; robocopy's own
// default (data + attributes + time stamps) applies when the option is omitted
// from the Command instead.
type FileProperties struct {
	set [6]bool
}

func fileProperty(i int) FileProperties {
	var p FileProperties
	p.set[i] = true
	return p
}

// FilePropData selects file data (letter D).
func FilePropData() FileProperties { return fileProperty(0) }

// FilePropAttributes selects file attributes (letter A).
func FilePropAttributes() FileProperties { return fileProperty(1) }

// FilePropTimestamps selects file time stamps (letter T).
func FilePropTimestamps() FileProperties { return fileProperty(2) }

// FilePropACL selects the NTFS access control list (letter S).
func FilePropACL() FileProperties { return fileProperty(3) }

// FilePropOwner selects owner information (letter O).
func FilePropOwner() FileProperties { return fileProperty(4) }

// FilePropAuditing selects auditing information (letter U).
func FilePropAuditing() FileProperties { return fileProperty(5) }

// AllFileProperties returns the set containing every file property.
func AllFileProperties() FileProperties {
	var p FileProperties
	for i := range p.set {
		p.set[i] = true
	}
	return p
}

// Union returns the set containing every property present in a or b.
func (p FileProperties) Union(b FileProperties) FileProperties {
	unionBits(p.set[:], b.set[:])
	return p
}

// Singles decomposes the set into its atomic single-property values.
func (p FileProperties) Singles() []FileProperties {
	singles := make([]FileProperties, 0, countBits(p.set[:]))
	for i, b := range p.set {
		if b {
			singles = append(singles, fileProperty(i))
		}
	}
	return singles
}

// Token serializes the set to its /copy flag, e.g. "/copy:DAT".
func (p FileProperties) Token() string {
	var sb strings.Builder
	sb.WriteString("/copy:")
	for i, b := range p.set {
		if b {
			sb.WriteByte(filePropertyLetters[i])
		}
	}
	return sb.String()
}

// directoryPropertyLetters is the canonical order of the /dcopy flag letters.
const directoryPropertyLetters = "DAT"

// DirectoryProperties selects what robocopy copies for directories
// (/dcopy:<letters>).
type DirectoryProperties struct {
	set [3]bool
}

func directoryProperty(i int) DirectoryProperties {
	var p DirectoryProperties
	p.set[i] = true
	return p
}

// DirPropData selects directory data (letter D).
func DirPropData() DirectoryProperties { return directoryProperty(0) }

// DirPropAttributes selects directory attributes (letter A).
func DirPropAttributes() DirectoryProperties { return directoryProperty(1) }

// DirPropTimestamps selects directory time stamps (letter T).
func DirPropTimestamps() DirectoryProperties { return directoryProperty(2) }

// AllDirectoryProperties returns the set containing every directory property.
func AllDirectoryProperties() DirectoryProperties {
	var p DirectoryProperties
	for i := range p.set {
		p.set[i] = true
	}
	return p
}

// Union returns the set containing every property present in a or b.
func (p DirectoryProperties) Union(b DirectoryProperties) DirectoryProperties {
	unionBits(p.set[:], b.set[:])
	return p
}

// Singles decomposes the set into its atomic single-property values.
func (p DirectoryProperties) Singles() []DirectoryProperties {
	singles := make([]DirectoryProperties, 0, countBits(p.set[:]))
	for i, b := range p.set {
		if b {
			singles = append(singles, directoryProperty(i))
		}
	}
	return singles
}

// Token serializes the set to its /dcopy flag, e.g. "/dcopy:DA".
func (p DirectoryProperties) Token() string {
	var sb strings.Builder
	sb.WriteString("/dcopy:")
	for i, b := range p.set {
		if b {
			sb.WriteByte(directoryPropertyLetters[i])
		}
	}
	return sb.String()
}
