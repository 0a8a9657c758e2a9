package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"time"

	"pixelgardenlabs.io/pgl-robocopy/pkg/buildinfo"
	"pixelgardenlabs.io/pgl-robocopy/pkg/config"
	"pixelgardenlabs.io/pgl-robocopy/pkg/engine"
	"pixelgardenlabs.io/pgl-robocopy/pkg/flagparse"
	"pixelgardenlabs.io/pgl-robocopy/pkg/plog"
	"pixelgardenlabs.io/pgl-robocopy/pkg/robocopy"
)

// action defines a special command to execute instead of running the jobs.
type action int

const (
	actionRunJobs action = iota // The default action is to run the configured jobs.
	actionShowVersion
	actionInitConfig
)

// init is called before main. We use it to set up a custom, more descriptive
// help message for the command-line flags.
func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s (version %s):\n", buildinfo.Name, buildinfo.Version)
		fmt.Fprintf(flag.CommandLine.Output(), "A typed front end for Windows robocopy with job configs, exit code handling and log archiving.\n\n")
		flag.PrintDefaults()
	}
}

// parseFlagConfig defines and parses command-line flags, and constructs a
// map containing only the values provided by those flags.
func parseFlagConfig() (action, string, map[string]interface{}, error) {
	// --- Flag Design Philosophy ---
	// Flags cover everything needed for a one-off copy from the command line
	// (source, destination, mirror, excludes). Multi-job setups and the less
	// common robocopy switches live in pgl-robocopy.config.json; run with
	// -init to generate a starting point.

	configPathFlag := flag.String("config", ".", "Path to the config file, or a directory containing "+config.ConfigFileName+".")
	logLevelFlag := flag.String("log-level", "info", "Set the logging level: 'debug', 'notice', 'info', 'warn', 'error'.")
	dryRunFlag := flag.Bool("dry-run", false, "Run robocopy in list-only mode: show what would be copied without copying.")
	showFlag := flag.Bool("show", false, "Print the assembled robocopy command lines and exit without running them.")
	failFastFlag := flag.Bool("fail-fast", false, "Stop the run on the first failed job.")
	jobWorkersFlag := flag.Int("job-workers", 0, "Number of jobs executed concurrently.")
	initFlag := flag.Bool("init", false, "Generate a default "+config.ConfigFileName+" file and exit.")
	versionFlag := flag.Bool("version", false, "Print the application version and exit.")

	sourceFlag := flag.String("source", "", "Source directory to copy from.")
	destinationFlag := flag.String("destination", "", "Destination directory to copy to.")
	filesFlag := flag.String("files", "", "Comma-separated list of file names or wildcard patterns to copy.")
	copyModeFlag := flag.String("copy-mode", "", "Copy mode: 'default', 'restartable', 'backup' or 'restartable-backup'.")
	moveFlag := flag.String("move", "", "Move instead of copy: 'none', 'files' or 'files-and-dirs'.")
	unbufferedFlag := flag.Bool("unbuffered", false, "Copy using unbuffered I/O, recommended for large files.")
	mirrorFlag := flag.Bool("mirror", false, "Mirror the source to the destination, deleting extraneous destination entries.")
	copyEmptyDirsFlag := flag.Bool("copy-empty-dirs", false, "Copy subdirectories including empty ones.")
	purgeFlag := flag.Bool("purge", false, "Delete destination files and directories that no longer exist in the source.")
	copyFlagsFlag := flag.String("copy-flags", "", "File properties to copy as robocopy /copy letters ('DATSOU').")
	dirCopyFlagsFlag := flag.String("dir-copy-flags", "", "Directory properties to copy as robocopy /dcopy letters ('DAT').")
	excludeFilesFlag := flag.String("exclude-files", "", "Comma-separated list of file names or patterns to exclude.")
	excludeDirsFlag := flag.String("exclude-dirs", "", "Comma-separated list of directory names or paths to exclude.")
	excludeAttributesFlag := flag.String("exclude-attributes", "", "Exclude files with any of the given attributes ('RASHCNET').")
	excludeJunctionsFlag := flag.Bool("exclude-junctions", false, "Exclude junction points for files and directories.")
	excludeOlderFlag := flag.Bool("exclude-older", false, "Exclude source files older than the destination copy.")
	threadsFlag := flag.Int("threads", 0, "Number of copy threads (1-128). 0 leaves robocopy's default.")
	retryCountFlag := flag.Int("retry-count", 0, "Number of retries on failed copies.")
	retryWaitFlag := flag.Int("retry-wait", 0, "Seconds to wait between retries.")
	logFileFlag := flag.String("log-file", "", "Path robocopy writes its status output to.")
	appendLogFlag := flag.Bool("append-log", false, "Append to the log file instead of overwriting it.")
	verboseLogFlag := flag.Bool("verbose-log", false, "Show skipped files in robocopy's output.")
	archiveLogsFlag := flag.Bool("archive-logs", false, "Compress the log file after a successful run.")
	archiveFormatFlag := flag.String("archive-format", "", "Log archive format: 'gz' or 'zst'.")
	archiveLevelFlag := flag.String("archive-level", "", "Log archive compression level: 'default', 'fastest', 'better', 'best'.")

	flag.Parse()

	// Create a map of the flags that were explicitly set by the user, along with their values.
	// This map is used to selectively override the base configuration.
	usedFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { usedFlags[f.Name] = true })

	flagMap := make(map[string]interface{})

	// Helper to add a value to the map only if the corresponding flag was set.
	addIfUsed := func(name string, value interface{}) {
		if usedFlags[name] {
			flagMap[name] = value
		}
	}

	// Helper for flags that need parsing. It only calls the parser if the flag was used.
	addParsedIfUsed := func(name string, rawValue string, parser func(string) []string) {
		if usedFlags[name] {
			flagMap[name] = parser(rawValue)
		}
	}

	addIfUsed("log-level", *logLevelFlag)
	addIfUsed("dry-run", *dryRunFlag)
	addIfUsed("show", *showFlag)
	addIfUsed("fail-fast", *failFastFlag)
	addIfUsed("job-workers", *jobWorkersFlag)

	addIfUsed("source", *sourceFlag)
	addIfUsed("destination", *destinationFlag)
	addIfUsed("unbuffered", *unbufferedFlag)
	addIfUsed("mirror", *mirrorFlag)
	addIfUsed("copy-empty-dirs", *copyEmptyDirsFlag)
	addIfUsed("purge", *purgeFlag)
	addIfUsed("exclude-junctions", *excludeJunctionsFlag)
	addIfUsed("exclude-older", *excludeOlderFlag)
	addIfUsed("threads", *threadsFlag)
	addIfUsed("retry-count", *retryCountFlag)
	addIfUsed("retry-wait", *retryWaitFlag)
	addIfUsed("log-file", *logFileFlag)
	addIfUsed("append-log", *appendLogFlag)
	addIfUsed("verbose-log", *verboseLogFlag)
	addIfUsed("archive-logs", *archiveLogsFlag)

	addParsedIfUsed("files", *filesFlag, flagparse.ParseList)
	addParsedIfUsed("exclude-files", *excludeFilesFlag, flagparse.ParseList)
	addParsedIfUsed("exclude-dirs", *excludeDirsFlag, flagparse.ParseList)

	// Flags whose values must parse are validated up front so a typo fails
	// before any job starts.
	if usedFlags["copy-mode"] {
		if _, err := config.CopyModeFromString(*copyModeFlag); err != nil {
			return actionRunJobs, "", nil, err
		}
		flagMap["copy-mode"] = *copyModeFlag
	}
	if usedFlags["move"] {
		if _, err := config.MoveModeFromString(*moveFlag); err != nil {
			return actionRunJobs, "", nil, err
		}
		flagMap["move"] = *moveFlag
	}
	if usedFlags["copy-flags"] {
		if _, err := flagparse.ParseFileProperties(*copyFlagsFlag); err != nil {
			return actionRunJobs, "", nil, err
		}
		flagMap["copy-flags"] = *copyFlagsFlag
	}
	if usedFlags["dir-copy-flags"] {
		if _, err := flagparse.ParseDirectoryProperties(*dirCopyFlagsFlag); err != nil {
			return actionRunJobs, "", nil, err
		}
		flagMap["dir-copy-flags"] = *dirCopyFlagsFlag
	}
	if usedFlags["exclude-attributes"] {
		if _, err := flagparse.ParseAttributeLetters(*excludeAttributesFlag); err != nil {
			return actionRunJobs, "", nil, err
		}
		flagMap["exclude-attributes"] = *excludeAttributesFlag
	}
	if usedFlags["archive-format"] {
		flagMap["archive-format"] = *archiveFormatFlag
	}
	if usedFlags["archive-level"] {
		flagMap["archive-level"] = *archiveLevelFlag
	}

	// Determine which action to take based on flags.
	if *versionFlag {
		return actionShowVersion, *configPathFlag, flagMap, nil
	}
	if *initFlag {
		return actionInitConfig, *configPathFlag, flagMap, nil
	}
	return actionRunJobs, *configPathFlag, flagMap, nil
}

// runInit handles the logic for the 'init' action.
func runInit(configPath string, flagMap map[string]interface{}) error {
	// Merge flags over the defaults so '-init -source ... -destination ...'
	// produces a ready-to-run config.
	initConfig := config.MergeConfigWithFlags(config.NewDefault(), flagMap)
	return config.Generate(initConfig, configPath)
}

// runJobs handles the default action: load, merge, validate and execute.
func runJobs(ctx context.Context, configPath string, flagMap map[string]interface{}) error {
	loadedConfig, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Merge the flag values over the loaded config to get the final run config.
	runConfig := config.MergeConfigWithFlags(loadedConfig, flagMap)

	// Set the global log level based on the final configuration.
	plog.SetLevel(plog.LevelFromString(runConfig.LogLevel))

	if err := runConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	jobEngine := engine.New(runConfig, robocopy.NewRunner(exec.CommandContext))

	if runConfig.Runtime.ShowOnly {
		return jobEngine.ShowCommands(os.Stdout)
	}

	runConfig.LogSummary()

	startTime := time.Now()
	err = jobEngine.ExecuteJobs(ctx)
	duration := time.Since(startTime).Round(time.Millisecond)
	if err != nil {
		return err // The error will be logged with full details by main()
	}
	plog.Info(buildinfo.Name+" finished successfully.", "duration", duration)
	return nil
}

// run encapsulates the main application logic and returns an error if something
// goes wrong, allowing the main function to handle exit codes.
func run(ctx context.Context) error {
	plog.Info("Starting "+buildinfo.Name, "version", buildinfo.Version, "pid", os.Getpid())

	act, configPath, flagMap, err := parseFlagConfig()
	if err != nil {
		return err
	}

	switch act {
	case actionShowVersion:
		fmt.Printf("%s version %s\n", buildinfo.Name, buildinfo.Version)
		return nil
	case actionInitConfig:
		return runInit(configPath, flagMap)
	case actionRunJobs:
		return runJobs(ctx, configPath, flagMap)
	default:
		return fmt.Errorf("internal error: unknown action %d", act)
	}
}

func main() {
	// Set up a context that is canceled when an interrupt signal is received.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Listen for interrupt signals (like Ctrl+C) in a separate goroutine.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx); err != nil {
		plog.Error(buildinfo.Name+" exited with error", "error", err)
		os.Exit(1)
	}
}
