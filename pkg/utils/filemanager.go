// =============================================================================
// Deposition Species Injector - File Manager Utility
// =============================================================================
//
// This module provides the file helpers used by the injector and the
// exporter:
//   - Atomic file replacement (write to a sibling temp file, then rename)
//   - Existence checks
//   - Parent directory creation for generated reports
//
// REPLACEMENT STRATEGY:
//   geoschem.xml is both the input and the output of a run. The new content
//   is written next to the original under a unique name and renamed over it,
//   so a failed write never leaves a truncated file behind. No backup copy
//   is kept.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// TempName returns a unique sibling path for path, used while replacing it.
//
// EXAMPLE:
//   TempName("/cases/geoschem.xml")
//   -> "/cases/.geoschem.xml.1b4e28ba-2fa1-11d2-883f-0016d3cca427.tmp"
func TempName(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String()))
}

// WriteFileAtomic replaces the file at path with data.
//
// PARAMETERS:
//   - path: The file to replace (created if missing).
//   - data: The complete new content.
//   - perm: The permission bits of the resulting file.
//
// RETURNS:
//   - An error if the temp file cannot be written or renamed. On error the
//     original file is unchanged and the temp file is removed.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath := TempName(path)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	// Remove the temp file on every failure path below.
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// OpenFile applies the umask; set the requested bits explicitly.
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	committed = true

	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// EnsureParentDir creates the directory that will contain path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
