// Package logarchive compresses finished robocopy log files. Robocopy's
// verbose logs grow quickly on large trees; archiving them after a run keeps
// the log directory small without losing history.
package logarchive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"

	"pixelgardenlabs.io/pgl-robocopy/pkg/hints"
	"pixelgardenlabs.io/pgl-robocopy/pkg/plog"
)

// ErrDisabled signals that log archiving is turned off for this run.
var ErrDisabled = hints.New("log archiving is disabled")

// ErrNoLogFile signals that the run produced no log file to archive.
var ErrNoLogFile = hints.New("no log file to archive")

// Policy configures post-run log archiving.
type Policy struct {
	Enabled bool   `json:"enabled"`
	Format  Format `json:"format"`
	Level   Level  `json:"level"`
	// KeepOriginal leaves the uncompressed log file in place instead of
	// removing it after a successful archive.
	KeepOriginal bool `json:"keepOriginal"`
}

// Archive compresses the log file at logPath according to the policy and
// returns the path of the archive. The archive is written next to the
// original with the format's extension appended, via a temp file and an
// atomic rename so a crash never leaves a half-written archive under the
// final name. Unless KeepOriginal is set, the original file is removed after
// a successful archive.
//
// A disabled policy or an empty logPath returns a hint error (see
// hints.IsHint), not a real failure.
func Archive(ctx context.Context, logPath string, p Policy) (string, error) {
	if !p.Enabled {
		return "", ErrDisabled
	}
	if logPath == "" {
		return "", ErrNoLogFile
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	archivePath := logPath + p.Format.Extension()

	if err := compressFile(logPath, archivePath, p.Format, p.Level); err != nil {
		return "", err
	}

	if !p.KeepOriginal {
		if err := os.Remove(logPath); err != nil {
			plog.Warn("Could not remove archived log file", "path", logPath, "error", err)
		}
	}

	plog.Info("Archived log file", "archive", archivePath)
	return archivePath, nil
}

func compressFile(srcPath, dstPath string, format Format, level Level) (retErr error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer src.Close()

	// Write to a temp file first, then rename into place.
	dst, err := os.CreateTemp(filepath.Dir(dstPath), "pgl-robocopy-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp archive: %w", err)
	}
	tempName := dst.Name()
	defer func() {
		if retErr != nil {
			dst.Close()
			os.Remove(tempName)
		}
	}()

	if err := writeCompressed(src, dst, format, level); err != nil {
		return err
	}

	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to close temp archive: %w", err)
	}
	if err := os.Rename(tempName, dstPath); err != nil {
		return fmt.Errorf("failed to rename temp archive to final path: %w", err)
	}
	return nil
}

func writeCompressed(src io.Reader, dst io.Writer, format Format, level Level) (retErr error) {
	bufWriter := bufio.NewWriter(dst)

	var compressedWriter io.WriteCloser
	if format == Zst {
		var encoderLevel zstd.EncoderLevel
		switch level {
		case Fastest:
			encoderLevel = zstd.SpeedFastest
		case Better:
			encoderLevel = zstd.SpeedBetterCompression
		case Best:
			encoderLevel = zstd.SpeedBestCompression
		default:
			encoderLevel = zstd.SpeedDefault
		}

		zstdWriter, err := zstd.NewWriter(bufWriter, zstd.WithEncoderLevel(encoderLevel))
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		compressedWriter = zstdWriter
	} else {
		var lvl int
		switch level {
		case Fastest:
			lvl = pgzip.BestSpeed
		case Better:
			lvl = 6 // Good balance
		case Best:
			lvl = pgzip.BestCompression
		default:
			lvl = pgzip.DefaultCompression
		}

		pgzipWriter, err := pgzip.NewWriterLevel(bufWriter, lvl)
		if err != nil {
			return fmt.Errorf("failed to create gzip writer: %w", err)
		}
		compressedWriter = pgzipWriter
	}

	defer func() {
		if err := compressedWriter.Close(); err != nil && retErr == nil {
			retErr = fmt.Errorf("compressed writer close failed: %w", err)
		}
		if err := bufWriter.Flush(); err != nil && retErr == nil {
			retErr = fmt.Errorf("buffer flush failed: %w", err)
		}
	}()

	if _, err := io.Copy(compressedWriter, src); err != nil {
		return fmt.Errorf("failed to compress log data: %w", err)
	}
	return nil
}
