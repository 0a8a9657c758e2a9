package robocopy

import "strconv"

// Thread count bounds and default for /mt, as documented by robocopy.
const (
	minThreads     = 1
	maxThreads     = 128
	defaultThreads = 8
)

// PerformanceChoice selects either multi-threaded copying (/mt) or an
// inter-packet gap (/ipg); robocopy accepts only one of the two.
type PerformanceChoice struct {
	threads     bool
	threadCount *int
	gap         int
}

// Threads enables multi-threaded copying with n threads (/mt:n). Values
// outside [1,128] are clamped at serialization time, never rejected.
func Threads(n int) PerformanceChoice {
	return PerformanceChoice{threads: true, threadCount: &n}
}

// DefaultThreads enables multi-threaded copying with robocopy's documented
// default of 8 threads (/mt:8).
func DefaultThreads() PerformanceChoice {
	return PerformanceChoice{threads: true}
}

// InterPacketGap frees bandwidth on slow lines by inserting a gap of n
// milliseconds between packets (/ipg:n).
func InterPacketGap(n int) PerformanceChoice {
	return PerformanceChoice{gap: n}
}

// Token serializes the choice, clamping an explicit thread count into [1,128]
// and defaulting an unspecified one to 8.
func (c PerformanceChoice) Token() string {
	if c.threads {
		n := defaultThreads
		if c.threadCount != nil {
			n = min(max(*c.threadCount, minThreads), maxThreads)
		}
		return "/mt:" + strconv.Itoa(n)
	}
	return "/ipg:" + strconv.Itoa(c.gap)
}

// PerformanceOptions bundles robocopy's performance flags.
type PerformanceOptions struct {
	// Choice enables multithreading or an inter-packet gap.
	Choice *PerformanceChoice
	// DontOffload copies files without the Windows Copy Offload mechanism (/nooffload).
	DontOffload bool
	// RequestNetworkCompression requests SMB compression during transfer, if
	// applicable (/compress).
	RequestNetworkCompression bool
	// CopyRatherThanFollowLinks copies symbolic links themselves instead of
	// their targets (/sl).
	CopyRatherThanFollowLinks bool
}

// Tokens serializes the bundle in fixed field order.
func (o *PerformanceOptions) Tokens() []string {
	var tokens []string
	if o.Choice != nil {
		tokens = append(tokens, o.Choice.Token())
	}
	if o.DontOffload {
		tokens = append(tokens, "/nooffload")
	}
	if o.RequestNetworkCompression {
		tokens = append(tokens, "/compress")
	}
	if o.CopyRatherThanFollowLinks {
		tokens = append(tokens, "/sl")
	}
	return tokens
}

// RetryValue is the tri-state value of the /r and /w flags. The zero value
// means "flag absent" (no token at all). SpecifyRetryDefault emits the flag
// with an empty trailing value, telling robocopy to use its own default,
// which is not the same as omitting the flag. SpecifyRetry emits an explicit
// number.
type RetryValue struct {
	specified bool
	n         *uint64
}

// SpecifyRetry sets an explicit value, serializing to e.g. "/r:5".
func SpecifyRetry(n uint64) RetryValue {
	return RetryValue{specified: true, n: &n}
}

// SpecifyRetryDefault emits the flag with no number ("/r:"), deferring to
// robocopy's built-in default (1,000,000 retries, 30s wait).
func SpecifyRetryDefault() RetryValue {
	return RetryValue{specified: true}
}

func (v RetryValue) token(flag string) (string, bool) {
	if !v.specified {
		return "", false
	}
	if v.n == nil {
		return flag + ":", true
	}
	return flag + ":" + strconv.FormatUint(*v.n, 10), true
}

// RetrySettings forwards robocopy's own retry behavior. This layer never
// retries anything itself.
type RetrySettings struct {
	// RetryCount is the number of retries on failed copies (/r).
	RetryCount RetryValue
	// RetryWait is the wait time between retries in seconds (/w).
	RetryWait RetryValue
	// SaveAsDefaults saves the /r and /w values as defaults in the registry (/reg).
	SaveAsDefaults bool
	// AwaitShareNames makes robocopy wait for share names to be defined on
	// retry error 67 (/tbd).
	AwaitShareNames bool
}

// Tokens serializes the bundle in fixed field order.
func (s *RetrySettings) Tokens() []string {
	var tokens []string
	if tok, ok := s.RetryCount.token("/r"); ok {
		tokens = append(tokens, tok)
	}
	if tok, ok := s.RetryWait.token("/w"); ok {
		tokens = append(tokens, tok)
	}
	if s.SaveAsDefaults {
		tokens = append(tokens, "/reg")
	}
	if s.AwaitShareNames {
		tokens = append(tokens, "/tbd")
	}
	return tokens
}
