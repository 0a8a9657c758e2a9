package robocopy

import "strconv"

// fileExclusionTokens is the canonical token order of the boolean file
// exclusion flags: changed, older, newer, junction points.
var fileExclusionTokens = [4]string{"/xc", "/xo", "/xn", "/xjf"}

// FileExclusionFilter excludes files from the copy. Boolean flags, an
// attribute payload (/xa) and a name/path pattern list (/xf) are all part of
// the same combinable family: Union ORs the boolean flags, unions the
// attribute payloads and concatenates the pattern lists (first operand's
// patterns first, duplicates preserved; robocopy treats repeated patterns
// idempotently).
type FileExclusionFilter struct {
	set [4]bool

	hasAttributes bool
	attributes    FileAttributes

	patterns []string
}

func fileExclusion(i int) FileExclusionFilter {
	var f FileExclusionFilter
	f.set[i] = true
	return f
}

// ExcludeChanged excludes files with the same time stamp but a different size (/xc).
func ExcludeChanged() FileExclusionFilter { return fileExclusion(0) }

// ExcludeOlder excludes source files older than the destination copy (/xo).
func ExcludeOlder() FileExclusionFilter { return fileExclusion(1) }

// ExcludeNewer excludes source files newer than the destination copy (/xn).
func ExcludeNewer() FileExclusionFilter { return fileExclusion(2) }

// ExcludeFileJunctions excludes junction points for files (/xjf).
func ExcludeFileJunctions() FileExclusionFilter { return fileExclusion(3) }

// ExcludeAttributes excludes files that have any of the given attributes set (/xa:<letters>).
func ExcludeAttributes(a FileAttributes) FileExclusionFilter {
	return FileExclusionFilter{hasAttributes: true, attributes: a}
}

// ExcludeFiles excludes files matching the given names or paths (/xf).
// Wildcards (* and ?) are supported by robocopy.
func ExcludeFiles(patterns ...string) FileExclusionFilter {
	return FileExclusionFilter{patterns: patterns}
}

// Union merges two filters into one covering everything both exclude.
func (f FileExclusionFilter) Union(b FileExclusionFilter) FileExclusionFilter {
	unionBits(f.set[:], b.set[:])
	if b.hasAttributes {
		if f.hasAttributes {
			f.attributes = f.attributes.Union(b.attributes)
		} else {
			f.hasAttributes = true
			f.attributes = b.attributes
		}
	}
	if len(b.patterns) > 0 {
		merged := make([]string, 0, len(f.patterns)+len(b.patterns))
		merged = append(merged, f.patterns...)
		merged = append(merged, b.patterns...)
		f.patterns = merged
	}
	return f
}

// Singles decomposes the filter into its atomic components: boolean flags in
// canonical order, then the attribute payload, then the pattern list.
func (f FileExclusionFilter) Singles() []FileExclusionFilter {
	var singles []FileExclusionFilter
	for i, b := range f.set {
		if b {
			singles = append(singles, fileExclusion(i))
		}
	}
	if f.hasAttributes {
		singles = append(singles, ExcludeAttributes(f.attributes))
	}
	if len(f.patterns) > 0 {
		singles = append(singles, ExcludeFiles(f.patterns...))
	}
	return singles
}

// IsZero reports whether the filter excludes nothing.
func (f FileExclusionFilter) IsZero() bool {
	return countBits(f.set[:]) == 0 && !f.hasAttributes && len(f.patterns) == 0
}

// Tokens serializes the filter in canonical order.
func (f FileExclusionFilter) Tokens() []string {
	var tokens []string
	for i, b := range f.set {
		if b {
			tokens = append(tokens, fileExclusionTokens[i])
		}
	}
	if f.hasAttributes {
		tokens = append(tokens, "/xa:"+f.attributes.Letters())
	}
	if len(f.patterns) > 0 {
		tokens = append(tokens, "/xf")
		tokens = append(tokens, f.patterns...)
	}
	return tokens
}

// DirectoryExclusionFilter excludes directories from the copy: junction
// points (/xjd) and/or a name/path list (/xd).
type DirectoryExclusionFilter struct {
	junctions bool

	hasPaths bool
	paths    []string
}

// ExcludeDirJunctions excludes junction points for directories (/xjd).
func ExcludeDirJunctions() DirectoryExclusionFilter {
	return DirectoryExclusionFilter{junctions: true}
}

// ExcludeDirs excludes directories matching the given names or paths (/xd).
func ExcludeDirs(paths ...string) DirectoryExclusionFilter {
	return DirectoryExclusionFilter{hasPaths: true, paths: paths}
}

// Union merges two filters; path lists concatenate in operand order.
func (f DirectoryExclusionFilter) Union(b DirectoryExclusionFilter) DirectoryExclusionFilter {
	f.junctions = f.junctions || b.junctions
	if b.hasPaths {
		merged := make([]string, 0, len(f.paths)+len(b.paths))
		merged = append(merged, f.paths...)
		merged = append(merged, b.paths...)
		f.paths = merged
		f.hasPaths = true
	}
	return f
}

// Singles decomposes the filter: the junction flag first, then the path list.
func (f DirectoryExclusionFilter) Singles() []DirectoryExclusionFilter {
	var singles []DirectoryExclusionFilter
	if f.junctions {
		singles = append(singles, ExcludeDirJunctions())
	}
	if f.hasPaths {
		singles = append(singles, ExcludeDirs(f.paths...))
	}
	return singles
}

// IsZero reports whether the filter excludes nothing.
func (f DirectoryExclusionFilter) IsZero() bool {
	return !f.junctions && !f.hasPaths
}

// Tokens serializes the filter: /xjd first, then /xd with its paths.
func (f DirectoryExclusionFilter) Tokens() []string {
	var tokens []string
	if f.junctions {
		tokens = append(tokens, "/xjd")
	}
	if f.hasPaths {
		tokens = append(tokens, "/xd")
		tokens = append(tokens, f.paths...)
	}
	return tokens
}

// fileAndDirExclusionTokens is the canonical token order: extra, lonely,
// junction points.
var fileAndDirExclusionTokens = [3]string{"/xx", "/xl", "/xj"}

// FileAndDirectoryExclusionFilter excludes files and directories that match
// a structural condition rather than a name.
type FileAndDirectoryExclusionFilter struct {
	set [3]bool
}

func fileAndDirExclusion(i int) FileAndDirectoryExclusionFilter {
	var f FileAndDirectoryExclusionFilter
	f.set[i] = true
	return f
}

// ExcludeExtra excludes extra files and directories present only in the
// destination (/xx). Extras are reported but never deleted.
func ExcludeExtra() FileAndDirectoryExclusionFilter { return fileAndDirExclusion(0) }

// ExcludeLonely excludes "lonely" files and directories present only in the
// source (/xl), preventing new files from reaching the destination.
func ExcludeLonely() FileAndDirectoryExclusionFilter { return fileAndDirExclusion(1) }

// ExcludeJunctions excludes junction points of both kinds (/xj).
func ExcludeJunctions() FileAndDirectoryExclusionFilter { return fileAndDirExclusion(2) }

// Union returns the filter covering everything either operand excludes.
func (f FileAndDirectoryExclusionFilter) Union(b FileAndDirectoryExclusionFilter) FileAndDirectoryExclusionFilter {
	unionBits(f.set[:], b.set[:])
	return f
}

// Singles decomposes the filter into its atomic flags in canonical order.
func (f FileAndDirectoryExclusionFilter) Singles() []FileAndDirectoryExclusionFilter {
	singles := make([]FileAndDirectoryExclusionFilter, 0, countBits(f.set[:]))
	for i, b := range f.set {
		if b {
			singles = append(singles, fileAndDirExclusion(i))
		}
	}
	return singles
}

// Tokens serializes the filter in canonical order.
func (f FileAndDirectoryExclusionFilter) Tokens() []string {
	var tokens []string
	for i, b := range f.set {
		if b {
			tokens = append(tokens, fileAndDirExclusionTokens[i])
		}
	}
	return tokens
}

// exclusionExceptionTokens is the canonical token order: modified, same,
// tweaked.
var exclusionExceptionTokens = [3]string{"/im", "/is", "/it"}

// FileExclusionFilterException re-includes files the active filters would
// otherwise skip.
type FileExclusionFilterException struct {
	set [3]bool
}

func exclusionException(i int) FileExclusionFilterException {
	var f FileExclusionFilterException
	f.set[i] = true
	return f
}

// IncludeModified includes modified files, i.e. files with differing change
// times (/im).
func IncludeModified() FileExclusionFilterException { return exclusionException(0) }

// IncludeSame includes files identical in name, size, times and attributes (/is).
func IncludeSame() FileExclusionFilterException { return exclusionException(1) }

// IncludeTweaked includes "tweaked" files: same name, size and times but
// different attributes (/it).
func IncludeTweaked() FileExclusionFilterException { return exclusionException(2) }

// Union returns the exception set covering both operands.
func (f FileExclusionFilterException) Union(b FileExclusionFilterException) FileExclusionFilterException {
	unionBits(f.set[:], b.set[:])
	return f
}

// Singles decomposes the exception set into its atomic flags.
func (f FileExclusionFilterException) Singles() []FileExclusionFilterException {
	singles := make([]FileExclusionFilterException, 0, countBits(f.set[:]))
	for i, b := range f.set {
		if b {
			singles = append(singles, exclusionException(i))
		}
	}
	return singles
}

// Tokens serializes the exception set in canonical order.
func (f FileExclusionFilterException) Tokens() []string {
	var tokens []string
	for i, b := range f.set {
		if b {
			tokens = append(tokens, exclusionExceptionTokens[i])
		}
	}
	return tokens
}

// Filter bundles every selection option robocopy offers. Fields are
// independent; each maps to zero or more tokens. Age and last-access-date
// bounds are passed through as robocopy expects them: either a day count or a
// date in YYYYMMDD form.
type Filter struct {
	// HandleArchiveAndReset copies only files with the archive attribute set
	// and resets it afterwards (/m).
	HandleArchiveAndReset bool
	// IncludeOnlyWithAttributes restricts the copy to files that have any of
	// the given attributes set (/ia:<letters>).
	IncludeOnlyWithAttributes *FileAttributes

	FileExclusions             *FileExclusionFilter
	DirectoryExclusions        *DirectoryExclusionFilter
	FileAndDirectoryExclusions *FileAndDirectoryExclusionFilter
	ExclusionExceptions        *FileExclusionFilterException

	// MaxSize excludes files bigger than n bytes (/max:n).
	MaxSize *uint64
	// MinSize excludes files smaller than n bytes (/min:n).
	MinSize *uint64

	// MaxAge excludes files older than n days or the given date (/maxage:n).
	MaxAge string
	// MinAge excludes files newer than n days or the given date (/minage:n).
	MinAge string

	// MaxLastAccessDate excludes files unused since n (/maxlad:n).
	MaxLastAccessDate string
	// MinLastAccessDate excludes files used since n (/minlad:n).
	MinLastAccessDate string
}

// Tokens serializes the bundle. Field order is fixed: /m, /ia, file
// exclusions, directory exclusions, combined exclusions, exceptions, then the
// size, age and last-access-date bounds.
func (f *Filter) Tokens() []string {
	var tokens []string

	if f.HandleArchiveAndReset {
		tokens = append(tokens, "/m")
	}
	if f.IncludeOnlyWithAttributes != nil {
		tokens = append(tokens, "/ia:"+f.IncludeOnlyWithAttributes.Letters())
	}

	if f.FileExclusions != nil {
		tokens = append(tokens, f.FileExclusions.Tokens()...)
	}
	if f.DirectoryExclusions != nil {
		tokens = append(tokens, f.DirectoryExclusions.Tokens()...)
	}
	if f.FileAndDirectoryExclusions != nil {
		tokens = append(tokens, f.FileAndDirectoryExclusions.Tokens()...)
	}
	if f.ExclusionExceptions != nil {
		tokens = append(tokens, f.ExclusionExceptions.Tokens()...)
	}

	if f.MaxSize != nil {
		tokens = append(tokens, "/max:"+strconv.FormatUint(*f.MaxSize, 10))
	}
	if f.MinSize != nil {
		tokens = append(tokens, "/min:"+strconv.FormatUint(*f.MinSize, 10))
	}
	if f.MaxAge != "" {
		tokens = append(tokens, "/maxage:"+f.MaxAge)
	}
	if f.MinAge != "" {
		tokens = append(tokens, "/minage:"+f.MinAge)
	}
	if f.MaxLastAccessDate != "" {
		tokens = append(tokens, "/maxlad:"+f.MaxLastAccessDate)
	}
	if f.MinLastAccessDate != "" {
		tokens = append(tokens, "/minlad:"+f.MinLastAccessDate)
	}

	return tokens
}
