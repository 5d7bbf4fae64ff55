// Package reconcile implements the idempotent filesystem operations behind
// skillsmith setup and sync: ensuring the skill tree exists, flattening a
// freshly cloned repository, copying skill sources into place, and keeping
// an ignore file entry present. Every operation is safe to run repeatedly;
// the first error aborts the caller's pipeline, there is no retry.
package reconcile

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"skillsmith/internal/logger"
)

// EnsureTree creates every directory in the list if absent.
func EnsureTree(ctx context.Context, dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create directory %s", dir)
		}
		logger.G(ctx).WithField("dir", dir).Debug("ensured directory")
	}
	return nil
}

// Flatten moves the children of dir's single nested subdirectory up one
// level and removes the nested directory once empty. Repositories often
// wrap their skills in one top-level folder; after cloning, this lifts the
// contents to where the rest of the pipeline expects them.
//
// Children that already exist at the top level are left in place, which
// makes a second run a no-op. Returns the number of entries moved.
func Flatten(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	var nested string
	dirCount := 0
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			nested = filepath.Join(dir, entry.Name())
			dirCount++
		}
	}

	// Only flatten the unambiguous case: exactly one visible subdirectory.
	if dirCount != 1 {
		return 0, nil
	}

	nestedEntries, err := os.ReadDir(nested)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read nested directory %s", nested)
	}

	moved := 0
	for _, entry := range nestedEntries {
		src := filepath.Join(nested, entry.Name())
		dst := filepath.Join(dir, entry.Name())

		if _, err := os.Stat(dst); err == nil {
			continue
		}

		if err := os.Rename(src, dst); err != nil {
			return moved, errors.Wrapf(err, "failed to move %s", src)
		}
		moved++
	}

	// Remove the nested directory only if now empty.
	if remaining, err := os.ReadDir(nested); err == nil && len(remaining) == 0 {
		if err := os.Remove(nested); err != nil {
			return moved, errors.Wrapf(err, "failed to remove emptied directory %s", nested)
		}
	}

	logger.G(ctx).WithField("dir", dir).WithField("moved", moved).Debug("flattened nested directory")
	return moved, nil
}

// Populated reports whether dir contains at least one subdirectory holding
// the named marker file. The setup flow skips the remote clone when the
// skill tree is already populated.
func Populated(dir, marker string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, entry.Name(), marker)); err == nil {
			return true
		}
	}
	return false
}

// SyncResult reports what SyncSources did.
type SyncResult struct {
	Copied  []string // source directories copied into the destination
	Skipped []string // sources whose destination already existed
}

// SyncSources copies each source directory into dst under its base name.
// A destination that already exists is skipped rather than overwritten, so
// running twice changes nothing. Zero sources is not an error; callers
// should surface it as a warning.
func SyncSources(ctx context.Context, sources []string, dst string) (*SyncResult, error) {
	result := &SyncResult{}

	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			return result, errors.Wrapf(err, "source %s is not readable", src)
		}
		if !info.IsDir() {
			return result, errors.Errorf("source %s is not a directory", src)
		}

		name := filepath.Base(filepath.Clean(src))
		target := filepath.Join(dst, name)

		if _, err := os.Stat(target); err == nil {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		if err := CopyTree(src, target); err != nil {
			return result, errors.Wrapf(err, "failed to copy %s", name)
		}
		result.Copied = append(result.Copied, name)
		logger.G(ctx).WithField("skill", name).Debug("copied skill source")
	}

	return result, nil
}

// CopyTree recursively copies a directory, preserving file modes.
func CopyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		destPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, info.Mode())
		}

		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// EnsureLine appends line to the text file at path unless an identical
// line is already present. The file is created when missing. Returns
// whether the line was added.
func EnsureLine(ctx context.Context, path, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, errors.New("ignore entry must not be empty")
	}

	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "failed to read %s", path)
	}

	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == line {
			return false, nil
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return false, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	entry := line + "\n"
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		entry = "\n" + entry
	}

	if _, err := f.WriteString(entry); err != nil {
		return false, errors.Wrapf(err, "failed to append to %s", path)
	}

	logger.G(ctx).WithField("file", path).WithField("entry", line).Debug("appended ignore entry")
	return true, nil
}

// HashTree computes a stable sha256 over a directory's relative paths and
// file contents, for change detection between syncs.
func HashTree(dir string) (string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to walk %s", dir)
	}
	sort.Strings(files)

	h := sha256.New()
	for _, path := range files {
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return "", err
		}
		h.Write([]byte(filepath.ToSlash(relPath)))

		content, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read %s", path)
		}
		h.Write(content)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
