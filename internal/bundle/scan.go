package bundle

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const bundleSuffix = ".app"

// DefaultRoots returns the system-wide and per-user application directories,
// followed by any extra roots from configuration.
func DefaultRoots(extra []string) []string {
	roots := []string{"/Applications"}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, "Applications"))
	}
	return append(roots, extra...)
}

// Scan enumerates application bundles under the given roots and returns a
// deduplicated, name-sorted list. A missing or unreadable root contributes
// zero entries; it is logged and never fails the scan.
func Scan(roots []string) []Application {
	var apps []Application
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			slog.Warn("skipping unreadable scan root", "root", root, "error", err)
			continue
		}

		found := 0
		for _, entry := range entries {
			if !strings.HasSuffix(entry.Name(), bundleSuffix) {
				continue
			}
			path := filepath.Join(root, entry.Name())
			info, _ := entry.Info()
			apps = append(apps, readApplication(path, info))
			found++
		}
		slog.Debug("scanned root", "root", root, "bundles", found)
	}

	apps = dedupe(apps)
	sort.SliceStable(apps, func(i, j int) bool {
		return strings.ToLower(apps[i].Name) < strings.ToLower(apps[j].Name)
	})
	return apps
}

// dedupe suppresses duplicates by bundle identifier, falling back to name,
// keeping the first occurrence in enumeration order.
func dedupe(apps []Application) []Application {
	seen := make(map[string]bool, len(apps))
	result := apps[:0]
	for _, app := range apps {
		key := app.BundleID
		if key == "" {
			key = app.Name
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, app)
	}
	return result
}
