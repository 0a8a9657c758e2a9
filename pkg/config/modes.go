package config

import (
	"fmt"

	"pixelgardenlabs.io/pgl-robocopy/pkg/robocopy"
	"pixelgardenlabs.io/pgl-robocopy/pkg/util"
)

var copyModeToString = map[robocopy.CopyMode]string{
	robocopy.CopyModeDefault:           "default",
	robocopy.RestartableMode:           "restartable",
	robocopy.BackupMode:                "backup",
	robocopy.RestartableBackupFallback: "restartable-backup",
}

var stringToCopyMode map[string]robocopy.CopyMode

var moveModeToString = map[robocopy.MoveMode]string{
	robocopy.MoveNone:         "none",
	robocopy.MoveFiles:        "files",
	robocopy.MoveFilesAndDirs: "files-and-dirs",
}

var stringToMoveMode map[string]robocopy.MoveMode

func init() {
	stringToCopyMode = util.InvertMap(copyModeToString)
	stringToMoveMode = util.InvertMap(moveModeToString)
}

// CopyModeFromString converts a config or flag string to a robocopy.CopyMode.
// An empty string maps to the default mode.
func CopyModeFromString(s string) (robocopy.CopyMode, error) {
	if s == "" {
		return robocopy.CopyModeDefault, nil
	}
	if mode, ok := stringToCopyMode[s]; ok {
		return mode, nil
	}
	return robocopy.CopyModeDefault, fmt.Errorf("invalid copy mode: %q. Must be 'default', 'restartable', 'backup', or 'restartable-backup'", s)
}

// CopyModeToString converts a robocopy.CopyMode back to its config string.
func CopyModeToString(m robocopy.CopyMode) string {
	if s, ok := copyModeToString[m]; ok {
		return s
	}
	return "default"
}

// MoveModeFromString converts a config or flag string to a robocopy.MoveMode.
// An empty string maps to no move.
func MoveModeFromString(s string) (robocopy.MoveMode, error) {
	if s == "" {
		return robocopy.MoveNone, nil
	}
	if mode, ok := stringToMoveMode[s]; ok {
		return mode, nil
	}
	return robocopy.MoveNone, fmt.Errorf("invalid move mode: %q. Must be 'none', 'files', or 'files-and-dirs'", s)
}
