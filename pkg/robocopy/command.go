package robocopy

import (
	"strconv"
	"strings"
)

// Command describes one robocopy invocation. It is plain data: construct it,
// ask for Tokens or hand it to a Runner. Assembly never rejects or mutates a
// Command; out-of-range values are clamped during serialization where
// robocopy documents bounds.
type Command struct {
	// Source is the source directory.
	Source string
	// Destination is the destination directory.
	Destination string
	// Files are the file names or wildcard patterns to copy. Robocopy
	// defaults to *.* when none are given.
	Files []string

	// CopyMode selects restartable mode, backup mode or the fallback combination.
	CopyMode CopyMode
	// Unbuffered copies using unbuffered I/O, recommended for large files (/j).
	Unbuffered bool

	// CopyEmptyDirs copies subdirectories including empty ones (/e). When
	// false, subdirectories are still copied but empty ones are skipped (/s).
	CopyEmptyDirs bool
	// RemoveExtraneous deletes destination files and directories that no
	// longer exist in the source (/purge).
	RemoveExtraneous bool
	// OverwriteMirrorSecurity requests that a mirror overwrite the destination
	// directory's security settings. Together with CopyEmptyDirs and
	// RemoveExtraneous it switches the emission to /mir; on its own it does
	// nothing.
	OverwriteMirrorSecurity bool

	// OnlyCopyTopLevels copies only the top n levels of the source tree (/lev:n).
	OnlyCopyTopLevels *int
	// StructureAndZeroFilesOnly creates the directory tree and zero-length
	// files only (/create).
	StructureAndZeroFilesOnly bool

	// CopyFileProperties selects which file properties to copy (/copy:).
	CopyFileProperties *FileProperties
	// CopyDirProperties selects what to copy for directories (/dcopy:).
	CopyDirProperties *DirectoryProperties

	Filter            *Filter
	FilesystemOptions *FilesystemOptions
	Performance       *PerformanceOptions
	Retry             *RetrySettings
	Logging           *LoggingOptions

	// Move deletes sources after copying (/mov, /move).
	Move MoveMode
	// PostCopyActions adds or removes attributes on copied files (/a+, /a-).
	PostCopyActions *PostCopyActions
}

// Tokens assembles the complete, ordered argument list for the robocopy
// process. The order is fixed: paths and file patterns, copy mode, the
// recursion/mirror block, depth limit, structure-only toggle, property
// selections, filters, filesystem options, performance, retry, logging, move
// mode, post-copy actions.
func (c *Command) Tokens() []string {
	tokens := []string{c.Source, c.Destination}
	tokens = append(tokens, c.Files...)

	if tok := c.CopyMode.Token(); tok != "" {
		tokens = append(tokens, tok)
	}
	if c.Unbuffered {
		tokens = append(tokens, "/j")
	}

	// The mirror special case: when empty-directory copying, purging and the
	// mirror security overwrite are all requested, robocopy wants /mir (plus
	// /e) instead of the individual recursion and purge flags.
	if c.CopyEmptyDirs && c.RemoveExtraneous && c.OverwriteMirrorSecurity {
		tokens = append(tokens, "/mir", "/e")
	} else {
		if c.CopyEmptyDirs {
			tokens = append(tokens, "/e")
		} else {
			tokens = append(tokens, "/s")
		}
		if c.RemoveExtraneous {
			tokens = append(tokens, "/purge")
		}
	}

	if c.OnlyCopyTopLevels != nil {
		tokens = append(tokens, "/lev:"+strconv.Itoa(*c.OnlyCopyTopLevels))
	}
	if c.StructureAndZeroFilesOnly {
		tokens = append(tokens, "/create")
	}

	if c.CopyFileProperties != nil {
		tokens = append(tokens, c.CopyFileProperties.Token())
	}
	if c.CopyDirProperties != nil {
		tokens = append(tokens, c.CopyDirProperties.Token())
	}

	if c.Filter != nil {
		tokens = append(tokens, c.Filter.Tokens()...)
	}
	if c.FilesystemOptions != nil {
		tokens = append(tokens, c.FilesystemOptions.Tokens()...)
	}
	if c.Performance != nil {
		tokens = append(tokens, c.Performance.Tokens()...)
	}
	if c.Retry != nil {
		tokens = append(tokens, c.Retry.Tokens()...)
	}

	if c.Logging != nil {
		tokens = append(tokens, c.Logging.Tokens()...)
	}

	if tok := c.Move.Token(); tok != "" {
		tokens = append(tokens, tok)
	}
	if c.PostCopyActions != nil {
		tokens = append(tokens, c.PostCopyActions.Tokens()...)
	}

	return tokens
}

// String renders the full command line for display and logging. It is not
// shell-quoted; arguments are always passed to the process individually.
func (c *Command) String() string {
	return robocopyExe + " " + strings.Join(c.Tokens(), " ")
}
