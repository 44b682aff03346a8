// Package fsutil holds the idempotent filesystem primitives shared by the
// installer: existence checks, recursive copy and recursive removal.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyOptions controls CopyDir.
type CopyOptions struct {
	// Overwrite replaces files that already exist at the destination.
	Overwrite bool
}

// DefaultCopyOptions overwrites existing files.
var DefaultCopyOptions = CopyOptions{Overwrite: true}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// RemoveDir removes dir recursively. A missing dir is not an error.
func RemoveDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	return nil
}

// CopyDir recursively copies the contents of src into dst, creating dst
// if needed. Files already in dst that are not in src are left alone.
func CopyDir(src, dst string, opts CopyOptions) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("source directory does not exist: %s", src)
		}
		return fmt.Errorf("reading source %s: %w", src, err)
	}
	if !srcInfo.IsDir() {
		return fmt.Errorf("source is not a directory: %s", src)
	}
	return copyDir(src, dst, srcInfo.Mode().Perm(), opts)
}

func copyDir(src, dst string, mode os.FileMode, opts CopyOptions) error {
	if err := os.MkdirAll(dst, mode|0700); err != nil {
		return fmt.Errorf("creating directory %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", src, err)
	}

	for _, entry := range entries {
		// Skip .git directory
		if entry.Name() == ".git" {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			info, err := entry.Info()
			if err != nil {
				return err
			}
			if err := copyDir(srcPath, dstPath, info.Mode().Perm(), opts); err != nil {
				return err
			}
			continue
		}

		if !opts.Overwrite {
			if _, err := os.Lstat(dstPath); err == nil {
				continue
			}
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return fmt.Errorf("copying %s: %w", srcPath, err)
		}
	}

	return nil
}

// copyFile copies a single file, preserving its permission bits.
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

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}
