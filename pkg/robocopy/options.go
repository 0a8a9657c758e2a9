package robocopy

// CopyMode selects robocopy's copy strategy. The zero value leaves the choice
// to robocopy (no token emitted).
type CopyMode int

const (
	// CopyModeDefault emits no copy mode token.
	CopyModeDefault CopyMode = iota
	// RestartableMode copies files in restartable mode (/z): an interrupted
	// copy resumes where it left off instead of recopying the file.
	RestartableMode
	// BackupMode copies files in backup mode (/b), overriding file and folder
	// permission settings (ACLs) that might otherwise block access.
	BackupMode
	// RestartableBackupFallback copies in restartable mode and switches to
	// backup mode when file access is denied (/zb).
	RestartableBackupFallback
)

// Token returns the copy mode flag, or "" for CopyModeDefault.
func (m CopyMode) Token() string {
	switch m {
	case RestartableMode:
		return "/z"
	case BackupMode:
		return "/b"
	case RestartableBackupFallback:
		return "/zb"
	default:
		return ""
	}
}

// MoveMode turns the copy into a move, deleting sources after they are
// copied. The zero value keeps the operation a plain copy.
type MoveMode int

const (
	// MoveNone emits no move token.
	MoveNone MoveMode = iota
	// MoveFiles moves files only (/mov).
	MoveFiles
	// MoveFilesAndDirs moves files and directories (/move).
	MoveFilesAndDirs
)

// Token returns the move flag, or "" for MoveNone.
func (m MoveMode) Token() string {
	switch m {
	case MoveFiles:
		return "/mov"
	case MoveFilesAndDirs:
		return "/move"
	default:
		return ""
	}
}

// filesystemOptionTokens is the canonical token order: FAT file names, FAT
// file times, long path support off.
var filesystemOptionTokens = [3]string{"/fat", "/fft", "/256"}

// FilesystemOptions is the combinable family of filesystem compatibility
// flags.
type FilesystemOptions struct {
	set [3]bool
}

func filesystemOption(i int) FilesystemOptions {
	var o FilesystemOptions
	o.set[i] = true
	return o
}

// FATFileNames creates destination files using 8.3 FAT file names only (/fat).
func FATFileNames() FilesystemOptions { return filesystemOption(0) }

// AssumeFATFileTimes assumes FAT file times with two-second precision (/fft).
func AssumeFATFileTimes() FilesystemOptions { return filesystemOption(1) }

// DisableLongPaths turns off support for paths longer than 256 characters (/256).
func DisableLongPaths() FilesystemOptions { return filesystemOption(2) }

// Union returns the set containing every option present in a or b.
func (o FilesystemOptions) Union(b FilesystemOptions) FilesystemOptions {
	unionBits(o.set[:], b.set[:])
	return o
}

// Singles decomposes the set into its atomic single-option values.
func (o FilesystemOptions) Singles() []FilesystemOptions {
	singles := make([]FilesystemOptions, 0, countBits(o.set[:]))
	for i, b := range o.set {
		if b {
			singles = append(singles, filesystemOption(i))
		}
	}
	return singles
}

// Tokens serializes the set in canonical order.
func (o FilesystemOptions) Tokens() []string {
	var tokens []string
	for i, b := range o.set {
		if b {
			tokens = append(tokens, filesystemOptionTokens[i])
		}
	}
	return tokens
}
