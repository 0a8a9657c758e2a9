package robocopy

// LogFileSettings directs robocopy's status output to a log file.
type LogFileSettings struct {
	// Path of the log file.
	Path string
	// Unicode writes the log as unicode text (/unilog instead of /log).
	Unicode bool
	// Append appends to an existing log file (the "+" forms).
	Append bool
}

// Token serializes the settings to one of /log:, /log+:, /unilog: or
// /unilog+: followed by the path.
func (s LogFileSettings) Token() string {
	tok := "/"
	if s.Unicode {
		tok += "uni"
	}
	tok += "log"
	if s.Append {
		tok += "+"
	}
	return tok + ":" + s.Path
}

// LoggingOptions bundles robocopy's output and logging flags. Every field is
// independent and contributes at most one token.
type LoggingOptions struct {
	// ListOnly lists files without copying, deleting or time stamping them (/l).
	ListOnly bool
	// ReportExtra reports all extra files, not just the selected ones (/x).
	ReportExtra bool
	// Verbose shows skipped files (/v).
	Verbose bool
	// IncludeSourceTimestamps includes source file time stamps in the output (/ts).
	IncludeSourceTimestamps bool
	// IncludeFullPaths includes full path names in the output (/fp).
	IncludeFullPaths bool
	// SizesAsBytes prints sizes as bytes (/bytes).
	SizesAsBytes bool
	// ExcludeFileSizes leaves file sizes out of the log (/ns).
	ExcludeFileSizes bool
	// ExcludeFileClasses leaves file classes out of the log (/nc).
	ExcludeFileClasses bool
	// ExcludeFileNames leaves file names out of the log (/nfl).
	ExcludeFileNames bool
	// ExcludeDirNames leaves directory names out of the log (/ndl).
	ExcludeDirNames bool
	// HideProgress suppresses the per-file copy progress display (/np).
	HideProgress bool
	// ShowETA shows the estimated time of arrival of copied files (/eta).
	ShowETA bool
	// LogFile writes the status output to a file.
	LogFile *LogFileSettings
	// TeeToConsole writes to the console window as well as the log file (/tee).
	TeeToConsole bool
	// NoJobHeader suppresses the job header (/njh).
	NoJobHeader bool
	// NoJobSummary suppresses the job summary (/njs).
	NoJobSummary bool
	// UnicodeOutput displays the status output as unicode text (/unicode).
	UnicodeOutput bool
}

// Tokens serializes the bundle in fixed field order.
func (o *LoggingOptions) Tokens() []string {
	var tokens []string
	if o.ListOnly {
		tokens = append(tokens, "/l")
	}
	if o.ReportExtra {
		tokens = append(tokens, "/x")
	}
	if o.Verbose {
		tokens = append(tokens, "/v")
	}
	if o.IncludeSourceTimestamps {
		tokens = append(tokens, "/ts")
	}
	if o.IncludeFullPaths {
		tokens = append(tokens, "/fp")
	}
	if o.SizesAsBytes {
		tokens = append(tokens, "/bytes")
	}
	if o.ExcludeFileSizes {
		tokens = append(tokens, "/ns")
	}
	if o.ExcludeFileClasses {
		tokens = append(tokens, "/nc")
	}
	if o.ExcludeFileNames {
		tokens = append(tokens, "/nfl")
	}
	if o.ExcludeDirNames {
		tokens = append(tokens, "/ndl")
	}
	if o.HideProgress {
		tokens = append(tokens, "/np")
	}
	if o.ShowETA {
		tokens = append(tokens, "/eta")
	}
	if o.LogFile != nil {
		tokens = append(tokens, o.LogFile.Token())
	}
	if o.TeeToConsole {
		tokens = append(tokens, "/tee")
	}
	if o.NoJobHeader {
		tokens = append(tokens, "/njh")
	}
	if o.NoJobSummary {
		tokens = append(tokens, "/njs")
	}
	if o.UnicodeOutput {
		tokens = append(tokens, "/unicode")
	}
	return tokens
}
