// Package robocopy builds and runs Windows robocopy commands from typed
// options instead of hand-assembled argument slices.
//
// The package is split into three layers:
//
//  1. Flag families (FileAttributes, FileProperties, the exclusion filters,
//     FilesystemOptions, PostCopyActions): closed sets of combinable flags.
//     Each family supports Union (commutative, idempotent set union), Singles
//     (decomposition back into atomic flags) and deterministic token
//     serialization in the family's declaration order.
//  2. Option bundles (Filter, LoggingOptions, PerformanceOptions,
//     RetrySettings): plain structs whose fields map independently to tokens.
//  3. Command and Runner: Command assembles the full, ordered argument list as
//     a pure function; Runner spawns robocopy and classifies its exit code.
//
// Nothing in this package retries, times out, or parses robocopy's textual
// output. Retry behavior is robocopy's own (/r and /w are forwarded verbatim),
// and cancellation is the caller's job via the context handed to Run or Start.
package robocopy

// unionBits ORs src into dst. Both slices view fixed-size backing arrays of
// the same family, so lengths always match.
func unionBits(dst, src []bool) {
	for i, b := range src {
		if b {
			dst[i] = true
		}
	}
}

// countBits returns the number of set entries.
func countBits(set []bool) int {
	n := 0
	for _, b := range set {
		if b {
			n++
		}
	}
	return n
}
