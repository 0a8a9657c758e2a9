package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pixelgardenlabs.io/pgl-robocopy/pkg/buildinfo"
	"pixelgardenlabs.io/pgl-robocopy/pkg/flagparse"
	"pixelgardenlabs.io/pgl-robocopy/pkg/logarchive"
	"pixelgardenlabs.io/pgl-robocopy/pkg/plog"
	"pixelgardenlabs.io/pgl-robocopy/pkg/robocopy"
	"pixelgardenlabs.io/pgl-robocopy/pkg/util"
)

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "pgl-robocopy.config.json"

// LogArchiveConfig configures post-run compression of a job's robocopy log.
type LogArchiveConfig struct {
	Enabled bool   `json:"enabled"`
	Format  string `json:"format"`
	Level   string `json:"level"`
	// KeepOriginal leaves the uncompressed log in place after archiving.
	KeepOriginal bool `json:"keepOriginal"`
}

// JobLoggingConfig configures robocopy's own output flags for a job.
type JobLoggingConfig struct {
	// LogFile is the path robocopy writes its status output to. Empty means
	// console output only.
	LogFile string `json:"logFile"`
	// AppendLog appends to the log file instead of overwriting it.
	AppendLog bool `json:"appendLog"`
	// UnicodeLog writes the log file as unicode text.
	UnicodeLog bool `json:"unicodeLog"`
	// Verbose shows skipped files in the output.
	Verbose bool `json:"verbose"`
	// HideProgress suppresses the per-file percentage display. Recommended
	// when logging to a file.
	HideProgress bool `json:"hideProgress"`
	// NoJobHeader suppresses robocopy's job header banner.
	NoJobHeader bool `json:"noJobHeader"`
	// NoJobSummary suppresses robocopy's job summary.
	NoJobSummary bool `json:"noJobSummary"`
	// TeeToConsole writes to the console as well as the log file.
	TeeToConsole bool `json:"teeToConsole"`
}

// JobConfig describes one robocopy invocation from source to destination.
type JobConfig struct {
	// Name identifies the job in logs. Must be unique within the config.
	Name string `json:"name"`

	Source      string `json:"source"`
	Destination string `json:"destination"`
	// Files are file names or wildcard patterns to copy. Empty means robocopy's
	// default of all files.
	Files []string `json:"files"`

	// CopyMode is one of 'default', 'restartable', 'backup' or 'restartable-backup'.
	CopyMode string `json:"copyMode"`
	// Move is one of 'none', 'files' or 'files-and-dirs'.
	Move string `json:"move"`
	// Unbuffered copies using unbuffered I/O, recommended for large files.
	Unbuffered bool `json:"unbuffered"`

	// Mirror makes the destination an exact mirror of the source: empty
	// directories are copied, extraneous destination entries are removed and
	// the destination directory's security settings are overwritten.
	Mirror bool `json:"mirror"`
	// CopyEmptyDirs copies subdirectories including empty ones. Implied by Mirror.
	CopyEmptyDirs bool `json:"copyEmptyDirs"`
	// RemoveExtraneous deletes destination entries that no longer exist in
	// the source. Implied by Mirror.
	RemoveExtraneous bool `json:"removeExtraneous"`

	// CopyFlags selects which file properties to copy, as robocopy /copy
	// letters ('DATSOU'). Empty leaves robocopy's default.
	CopyFlags string `json:"copyFlags"`
	// DirCopyFlags selects what to copy for directories, as robocopy /dcopy
	// letters ('DAT'). Empty leaves robocopy's default.
	DirCopyFlags string `json:"dirCopyFlags"`

	// Note: omitempty is intentionally not used for user-configurable slices
	// so that they appear in the generated config file for better discoverability.
	// UserExcludeFiles are file names or patterns to exclude, merged with the
	// config-wide default exclusions.
	UserExcludeFiles []string `json:"userExcludeFiles"`
	// UserExcludeDirs are directory names or paths to exclude, merged with
	// the config-wide default exclusions.
	UserExcludeDirs []string `json:"userExcludeDirs"`
	// ExcludeAttributes excludes files that have any of the given attributes
	// set, as robocopy attribute letters ('RASHCNET').
	ExcludeAttributes string `json:"excludeAttributes"`
	// ExcludeJunctions excludes junction points for files and directories.
	ExcludeJunctions bool `json:"excludeJunctions"`
	// ExcludeOlder excludes source files older than their destination copy.
	ExcludeOlder bool `json:"excludeOlder"`

	// Threads enables multi-threaded copying with the given thread count.
	// 0 leaves robocopy single-threaded default behavior.
	Threads int `json:"threads"`

	// RetryCount is the number of retries on failed copies. nil leaves
	// robocopy's default of 1 million.
	RetryCount *uint64 `json:"retryCount,omitempty"`
	// RetryWaitSeconds is the wait between retries. nil leaves robocopy's
	// default of 30 seconds.
	RetryWaitSeconds *uint64 `json:"retryWaitSeconds,omitempty"`

	Logging    JobLoggingConfig `json:"logging"`
	LogArchive LogArchiveConfig `json:"logArchive"`
}

// RuntimeConfig holds per-run settings that never come from the config file.
type RuntimeConfig struct {
	// DryRun lists what robocopy would do without copying anything.
	DryRun bool
	// ShowOnly prints the assembled command lines instead of running them.
	ShowOnly bool
}

type Config struct {
	Version  string        `json:"version"`
	LogLevel string        `json:"logLevel"`
	Runtime  RuntimeConfig `json:"-"` // Never added to config file
	// FailFast stops the run on the first failed job instead of continuing
	// with the remaining ones.
	FailFast bool `json:"failFast"`
	// JobWorkers is the number of jobs executed concurrently.
	JobWorkers int `json:"jobWorkers"`
	// DefaultExcludeFiles are file patterns excluded from every job.
	DefaultExcludeFiles []string `json:"defaultExcludeFiles,omitempty"`
	// DefaultExcludeDirs are directory patterns excluded from every job.
	DefaultExcludeDirs []string    `json:"defaultExcludeDirs,omitempty"`
	Jobs               []JobConfig `json:"jobs"`
}

// NewDefault creates and returns a Config struct with sensible default
// values and a single example job for the user to fill in.
func NewDefault() Config {
	return Config{
		Version:    buildinfo.Version,
		LogLevel:   "info", // Default log level.
		FailFast:   false,
		JobWorkers: 1, // Sequential by default. Parallel jobs compete for disk and network bandwidth.
		DefaultExcludeFiles: []string{
			// Common temporary and system files.
			"*.tmp",       // Temporary files
			"*.temp",      // Temporary files
			"~*",          // Files starting with a tilde (often temporary)
			"desktop.ini", // Windows folder customization file
			"Thumbs.db",   // Windows image thumbnail cache
			ConfigFileName,
		},
		DefaultExcludeDirs: []string{
			"$Recycle.Bin",              // Windows recycle bin
			"System Volume Information", // Windows volume metadata
		},
		Jobs: []JobConfig{
			{
				Name:        "example",
				Source:      "", // Intentionally empty to force user configuration.
				Destination: "", // Intentionally empty to force user configuration.
				CopyMode:    "restartable",
				Move:        "none",
				Mirror:      false,
				Threads:     8,
				Logging: JobLoggingConfig{
					HideProgress: true,
					NoJobHeader:  false,
					NoJobSummary: false,
				},
				LogArchive: LogArchiveConfig{
					Enabled: false,
					Format:  "gz",
					Level:   "default",
				},
				UserExcludeFiles: []string{},
				UserExcludeDirs:  []string{},
			},
		},
	}
}

// Load attempts to load a configuration file from the given path. A directory
// path is resolved to the config file inside it. If the file doesn't exist,
// the default config is returned without an error.
func Load(path string) (Config, error) {
	configPath, err := resolveConfigPath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(), nil // Config file doesn't exist, which is a normal case.
		}
		return Config{}, fmt.Errorf("error opening config file %s: %w", configPath, err)
	}
	defer file.Close()

	plog.Info("Loading configuration", "path", configPath)
	// Start with default values, then overwrite with the file's content.
	// This makes the config loading resilient to missing fields in the JSON file.
	config := NewDefault()
	// The default example job must not leak into a loaded config.
	config.Jobs = nil
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return Config{}, fmt.Errorf("error parsing config file %s: %w", configPath, err)
	}

	// At this point our config has been migrated if needed so override the version in the struct
	if config.Version != buildinfo.Version {
		config.Version = buildinfo.Version
	}
	return config, nil
}

// Generate creates or overwrites a config file at the given path. A directory
// path is resolved to the config file inside it.
func Generate(configToGenerate Config, path string) error {
	configPath, err := resolveConfigPath(path)
	if err != nil {
		return err
	}

	// Marshal the config into nicely formatted JSON.
	jsonData, err := json.MarshalIndent(configToGenerate, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON: %w", err)
	}

	// The target directory may not exist yet (see resolveConfigPath).
	if err := os.MkdirAll(filepath.Dir(configPath), util.UserWritableDirPerms); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, jsonData, util.UserWritableFilePerms); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	plog.Info("Successfully saved config file", "path", configPath)
	return nil
}

// resolveConfigPath expands and absolutizes path, appending ConfigFileName
// when path is a directory.
func resolveConfigPath(path string) (string, error) {
	if path == "" {
		path = "."
	}
	expanded, err := util.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("could not expand config path: %w", err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("could not determine absolute path for %s: %w", path, err)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return filepath.Join(abs, ConfigFileName), nil
	}
	if filepath.Base(abs) != ConfigFileName && filepath.Ext(abs) != ".json" {
		// Treat anything that doesn't look like a json file as a directory
		// that may not exist yet.
		return filepath.Join(abs, ConfigFileName), nil
	}
	return abs, nil
}

// Validate checks the configuration for logical errors and inconsistencies.
func (c *Config) Validate() error {
	if c.JobWorkers < 1 {
		return fmt.Errorf("jobWorkers must be at least 1")
	}
	if len(c.Jobs) == 0 {
		return fmt.Errorf("no jobs configured")
	}

	if err := validateGlobPatterns("defaultExcludeFiles", c.DefaultExcludeFiles); err != nil {
		return err
	}
	if err := validateGlobPatterns("defaultExcludeDirs", c.DefaultExcludeDirs); err != nil {
		return err
	}

	seenNames := make(map[string]bool, len(c.Jobs))
	for i := range c.Jobs {
		job := &c.Jobs[i]
		if job.Name == "" {
			return fmt.Errorf("jobs[%d]: name cannot be empty", i)
		}
		if seenNames[job.Name] {
			return fmt.Errorf("duplicate job name %q", job.Name)
		}
		seenNames[job.Name] = true

		if err := job.validate(); err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}
	}
	return nil
}

func (j *JobConfig) validate() error {
	if j.Source == "" {
		return fmt.Errorf("source path cannot be empty")
	}
	if j.Destination == "" {
		return fmt.Errorf("destination path cannot be empty")
	}

	// Clean and expand paths for canonical representation before use.
	var err error
	j.Source, err = util.ExpandPath(j.Source)
	if err != nil {
		return fmt.Errorf("could not expand source path: %w", err)
	}
	j.Source = filepath.Clean(j.Source)

	j.Destination, err = util.ExpandPath(j.Destination)
	if err != nil {
		return fmt.Errorf("could not expand destination path: %w", err)
	}
	j.Destination = filepath.Clean(j.Destination)

	if _, err := CopyModeFromString(j.CopyMode); err != nil {
		return err
	}
	if _, err := MoveModeFromString(j.Move); err != nil {
		return err
	}
	if _, err := flagparse.ParseAttributeLetters(j.ExcludeAttributes); err != nil {
		return err
	}
	if _, err := flagparse.ParseFileProperties(j.CopyFlags); err != nil {
		return err
	}
	if _, err := flagparse.ParseDirectoryProperties(j.DirCopyFlags); err != nil {
		return err
	}
	if j.Threads < 0 {
		return fmt.Errorf("threads cannot be negative")
	}

	if j.LogArchive.Enabled {
		if _, err := logarchive.ParseFormat(j.LogArchive.Format); err != nil {
			return err
		}
		if _, err := logarchive.ParseLevel(j.LogArchive.Level); err != nil {
			return err
		}
		if j.Logging.LogFile == "" {
			return fmt.Errorf("logArchive.enabled requires logging.logFile to be set")
		}
	}

	if err := validateGlobPatterns("userExcludeFiles", j.UserExcludeFiles); err != nil {
		return err
	}
	return validateGlobPatterns("userExcludeDirs", j.UserExcludeDirs)
}

// ExcludeFiles returns the final, combined slice of file exclusion patterns
// for a job: config-wide defaults first, then the job's own patterns, with
// duplicates removed.
func (c *Config) ExcludeFiles(j *JobConfig) []string {
	return util.MergeAndDeduplicate(c.DefaultExcludeFiles, j.UserExcludeFiles)
}

// ExcludeDirs returns the final, combined slice of directory exclusion
// patterns for a job.
func (c *Config) ExcludeDirs(j *JobConfig) []string {
	return util.MergeAndDeduplicate(c.DefaultExcludeDirs, j.UserExcludeDirs)
}

// Command translates a job into the robocopy.Command it runs, applying
// config-wide exclusions and the runtime dry-run setting.
func (c *Config) Command(j *JobConfig) (*robocopy.Command, error) {
	copyMode, err := CopyModeFromString(j.CopyMode)
	if err != nil {
		return nil, err
	}
	moveMode, err := MoveModeFromString(j.Move)
	if err != nil {
		return nil, err
	}

	command := &robocopy.Command{
		Source:      j.Source,
		Destination: j.Destination,
		Files:       j.Files,
		CopyMode:    copyMode,
		Unbuffered:  j.Unbuffered,
		Move:        moveMode,
	}

	if j.Mirror {
		command.CopyEmptyDirs = true
		command.RemoveExtraneous = true
		command.OverwriteMirrorSecurity = true
	} else {
		command.CopyEmptyDirs = j.CopyEmptyDirs
		command.RemoveExtraneous = j.RemoveExtraneous
	}

	if j.CopyFlags != "" {
		props, err := flagparse.ParseFileProperties(j.CopyFlags)
		if err != nil {
			return nil, err
		}
		command.CopyFileProperties = &props
	}
	if j.DirCopyFlags != "" {
		props, err := flagparse.ParseDirectoryProperties(j.DirCopyFlags)
		if err != nil {
			return nil, err
		}
		command.CopyDirProperties = &props
	}

	if filter, err := c.filter(j); err != nil {
		return nil, err
	} else if filter != nil {
		command.Filter = filter
	}

	if j.Threads > 0 {
		choice := robocopy.Threads(j.Threads)
		command.Performance = &robocopy.PerformanceOptions{Choice: &choice}
	}

	if j.RetryCount != nil || j.RetryWaitSeconds != nil {
		retry := &robocopy.RetrySettings{}
		if j.RetryCount != nil {
			retry.RetryCount = robocopy.SpecifyRetry(*j.RetryCount)
		}
		if j.RetryWaitSeconds != nil {
			retry.RetryWait = robocopy.SpecifyRetry(*j.RetryWaitSeconds)
		}
		command.Retry = retry
	}

	command.Logging = c.logging(j)

	return command, nil
}

// filter builds the job's exclusion filter bundle, or nil when the job
// excludes nothing.
func (c *Config) filter(j *JobConfig) (*robocopy.Filter, error) {
	excludeFiles := c.ExcludeFiles(j)
	excludeDirs := c.ExcludeDirs(j)

	excludeAttribs, err := flagparse.ParseAttributeLetters(j.ExcludeAttributes)
	if err != nil {
		return nil, err
	}

	fe := robocopy.FileExclusionFilter{}
	if j.ExcludeOlder {
		fe = fe.Union(robocopy.ExcludeOlder())
	}
	if j.ExcludeJunctions {
		fe = fe.Union(robocopy.ExcludeFileJunctions())
	}
	if !excludeAttribs.IsZero() {
		fe = fe.Union(robocopy.ExcludeAttributes(excludeAttribs))
	}
	if len(excludeFiles) > 0 {
		fe = fe.Union(robocopy.ExcludeFiles(excludeFiles...))
	}

	de := robocopy.DirectoryExclusionFilter{}
	if j.ExcludeJunctions {
		de = de.Union(robocopy.ExcludeDirJunctions())
	}
	if len(excludeDirs) > 0 {
		de = de.Union(robocopy.ExcludeDirs(excludeDirs...))
	}

	var fileExclusions *robocopy.FileExclusionFilter
	if !fe.IsZero() {
		fileExclusions = &fe
	}
	var dirExclusions *robocopy.DirectoryExclusionFilter
	if !de.IsZero() {
		dirExclusions = &de
	}

	if fileExclusions == nil && dirExclusions == nil {
		return nil, nil
	}
	return &robocopy.Filter{
		FileExclusions:      fileExclusions,
		DirectoryExclusions: dirExclusions,
	}, nil
}

// logging builds the job's logging options, or nil when everything is off.
func (c *Config) logging(j *JobConfig) *robocopy.LoggingOptions {
	opts := &robocopy.LoggingOptions{
		ListOnly:     c.Runtime.DryRun,
		Verbose:      j.Logging.Verbose,
		HideProgress: j.Logging.HideProgress,
		NoJobHeader:  j.Logging.NoJobHeader,
		NoJobSummary: j.Logging.NoJobSummary,
		TeeToConsole: j.Logging.TeeToConsole,
	}
	if j.Logging.LogFile != "" {
		opts.LogFile = &robocopy.LogFileSettings{
			Path:    j.Logging.LogFile,
			Unicode: j.Logging.UnicodeLog,
			Append:  j.Logging.AppendLog,
		}
	}
	if (*opts == robocopy.LoggingOptions{}) {
		return nil
	}
	return opts
}

// ArchivePolicy translates a job's log archive settings into a
// logarchive.Policy. Parse errors surface during Validate; here unknown
// strings fall back to the defaults.
func (j *JobConfig) ArchivePolicy() logarchive.Policy {
	format, err := logarchive.ParseFormat(j.LogArchive.Format)
	if err != nil {
		format = logarchive.Gz
	}
	level, err := logarchive.ParseLevel(j.LogArchive.Level)
	if err != nil {
		level = logarchive.Default
	}
	return logarchive.Policy{
		Enabled:      j.LogArchive.Enabled,
		Format:       format,
		Level:        level,
		KeepOriginal: j.LogArchive.KeepOriginal,
	}
}

// LogSummary prints a user-friendly summary of the configuration to the
// provided logger.
func (c *Config) LogSummary() {
	logArgs := []interface{}{
		"log_level", c.LogLevel,
		"dry_run", c.Runtime.DryRun,
		"fail_fast", c.FailFast,
		"job_workers", c.JobWorkers,
		"jobs", len(c.Jobs),
	}
	if len(c.DefaultExcludeFiles) > 0 {
		logArgs = append(logArgs, "default_exclude_files", strings.Join(c.DefaultExcludeFiles, ", "))
	}
	if len(c.DefaultExcludeDirs) > 0 {
		logArgs = append(logArgs, "default_exclude_dirs", strings.Join(c.DefaultExcludeDirs, ", "))
	}
	plog.Info("Configuration loaded", logArgs...)

	for i := range c.Jobs {
		job := &c.Jobs[i]
		jobArgs := []interface{}{
			"job", job.Name,
			"source", job.Source,
			"destination", job.Destination,
			"mode", job.CopyMode,
			"mirror", job.Mirror,
		}
		if job.Threads > 0 {
			jobArgs = append(jobArgs, "threads", job.Threads)
		}
		if job.Logging.LogFile != "" {
			jobArgs = append(jobArgs, "log_file", job.Logging.LogFile)
		}
		if job.LogArchive.Enabled {
			jobArgs = append(jobArgs, "log_archive", fmt.Sprintf("enabled (f:%s l:%s)", job.LogArchive.Format, job.LogArchive.Level))
		}
		plog.Notice("Job configured", jobArgs...)
	}
}

// validateGlobPatterns checks if a list of strings are valid glob patterns.
func validateGlobPatterns(fieldName string, patterns []string) error {
	for _, pattern := range patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid glob pattern for %s: %q - %w", fieldName, pattern, err)
		}
	}
	return nil
}

// MergeConfigWithFlags overlays the configuration values from flags on top of
// a base configuration. It iterates over the setFlags map, which contains
// only the flags explicitly provided by the user on the command line. When a
// source and destination are given on the command line, the config file's
// jobs are replaced by a single ad-hoc job built from the flags.
func MergeConfigWithFlags(base Config, setFlags map[string]interface{}) Config {
	merged := base

	flagJob := JobConfig{Name: "cli"}
	flagJobUsed := false
	job := func() *JobConfig {
		flagJobUsed = true
		return &flagJob
	}

	for name, value := range setFlags {
		switch name {
		case "log-level":
			merged.LogLevel = value.(string)
		case "dry-run":
			merged.Runtime.DryRun = value.(bool)
		case "show":
			merged.Runtime.ShowOnly = value.(bool)
		case "fail-fast":
			merged.FailFast = value.(bool)
		case "job-workers":
			merged.JobWorkers = value.(int)
		case "source":
			job().Source = value.(string)
		case "destination":
			job().Destination = value.(string)
		case "files":
			job().Files = value.([]string)
		case "copy-mode":
			job().CopyMode = value.(string)
		case "move":
			job().Move = value.(string)
		case "unbuffered":
			job().Unbuffered = value.(bool)
		case "mirror":
			job().Mirror = value.(bool)
		case "copy-empty-dirs":
			job().CopyEmptyDirs = value.(bool)
		case "purge":
			job().RemoveExtraneous = value.(bool)
		case "copy-flags":
			job().CopyFlags = value.(string)
		case "dir-copy-flags":
			job().DirCopyFlags = value.(string)
		case "exclude-files":
			job().UserExcludeFiles = value.([]string)
		case "exclude-dirs":
			job().UserExcludeDirs = value.([]string)
		case "exclude-attributes":
			job().ExcludeAttributes = value.(string)
		case "exclude-junctions":
			job().ExcludeJunctions = value.(bool)
		case "exclude-older":
			job().ExcludeOlder = value.(bool)
		case "threads":
			job().Threads = value.(int)
		case "retry-count":
			n := uint64(value.(int))
			job().RetryCount = &n
		case "retry-wait":
			n := uint64(value.(int))
			job().RetryWaitSeconds = &n
		case "log-file":
			job().Logging.LogFile = value.(string)
		case "append-log":
			job().Logging.AppendLog = value.(bool)
		case "verbose-log":
			job().Logging.Verbose = value.(bool)
		case "archive-logs":
			job().LogArchive.Enabled = value.(bool)
		case "archive-format":
			job().LogArchive.Format = value.(string)
		case "archive-level":
			job().LogArchive.Level = value.(string)
		default:
			plog.Debug("unhandled flag in MergeConfigWithFlags", "flag", name)
		}
	}

	if flagJobUsed {
		if flagJob.LogArchive.Format == "" {
			flagJob.LogArchive.Format = "gz"
		}
		if flagJob.LogArchive.Level == "" {
			flagJob.LogArchive.Level = "default"
		}
		merged.Jobs = []JobConfig{flagJob}
	}
	return merged
}
