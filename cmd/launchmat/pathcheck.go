package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/launchmat/launchmat/internal/config"
	"github.com/launchmat/launchmat/internal/errors"
)

// pathCheckMode indicates whether the path check is for reading or writing.
type pathCheckMode int

const (
	pathCheckRead  pathCheckMode = iota // for import (read file)
	pathCheckWrite                      // for export (write file)
)

// validatePath checks a snapshot path before import/export:
// no ".." components, a .json extension, the file directly inside
// baseDir/exports or one of cfg.AllowedPaths, and no symlinks on the file or
// its parent. AllowUnsafePaths skips the directory restriction but not the
// symlink checks.
func validatePath(path string, mode pathCheckMode, cfg *config.Config, baseDir string) error {
	if path == "" {
		return errors.NewInvalidRequest("path is required")
	}

	if containsTraversal(path) {
		return errors.NewInvalidRequest("path must not contain directory traversal (..)")
	}

	cleaned := filepath.Clean(path)
	if filepath.Ext(cleaned) != ".json" {
		return errors.NewInvalidRequest("path must have .json extension")
	}

	absPath, err := filepath.Abs(cleaned)
	if err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid path: %v", err))
	}

	if cfg == nil || !cfg.AllowUnsafePaths {
		allowedDirs := allowedDirs(cfg, baseDir)
		parentDir := filepath.Dir(absPath)
		if !isDirectlyInAllowedDir(parentDir, allowedDirs) {
			return errors.NewInvalidRequest(
				fmt.Sprintf("file must be directly in an allowed directory (no subdirectories); allowed: %v",
					allowedDirs))
		}
		if info, err := os.Lstat(parentDir); err == nil {
			if info.Mode()&os.ModeSymlink != 0 {
				return errors.NewInvalidRequest("parent directory must not be a symlink")
			}
		}
	}

	if mode == pathCheckRead {
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			return errors.NewNotFound(path)
		}
	}

	// Symlink files are rejected in both modes, even with AllowUnsafePaths.
	if info, err := os.Lstat(absPath); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return errors.NewInvalidRequest("path must not be a symlink")
		}
	}

	return nil
}

// allowedDirs returns the directories snapshots may live in: baseDir/exports
// plus the absolute entries of cfg.AllowedPaths.
func allowedDirs(cfg *config.Config, baseDir string) []string {
	dirs := []string{filepath.Join(baseDir, "exports")}
	if cfg != nil {
		for _, p := range cfg.AllowedPaths {
			if filepath.IsAbs(p) {
				dirs = append(dirs, filepath.Clean(p))
			}
		}
	}
	return dirs
}

// isDirectlyInAllowedDir checks if parentDir exactly matches one of the
// allowed directories. Stricter than "is under": subdirectories are rejected.
func isDirectlyInAllowedDir(parentDir string, allowedDirs []string) bool {
	parentDir = filepath.Clean(parentDir)
	for _, dir := range allowedDirs {
		if parentDir == filepath.Clean(dir) {
			return true
		}
	}
	return false
}

// containsTraversal checks if path contains ".." directory traversal.
func containsTraversal(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part == ".." {
			return true
		}
	}
	if filepath.Separator != '/' {
		for _, part := range strings.Split(path, "/") {
			if part == ".." {
				return true
			}
		}
	}
	return false
}
