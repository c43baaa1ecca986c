// Package bundle discovers installed application bundles and extracts their
// metadata. Discovery is read-only and degrades per entry: an unreadable root
// or a broken descriptor never aborts a scan.
package bundle

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"howett.net/plist"
)

// Application represents one discovered application bundle.
type Application struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BundleID     string    `json:"bundle_id"`
	Path         string    `json:"path"`
	Version      string    `json:"version,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	Category     string    `json:"category,omitempty"`
	Size         int64     `json:"size,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// infoPlist holds the descriptor fields Launchmat consumes.
type infoPlist struct {
	DisplayName string `plist:"CFBundleDisplayName"`
	BundleName  string `plist:"CFBundleName"`
	Identifier  string `plist:"CFBundleIdentifier"`
	ShortVer    string `plist:"CFBundleShortVersionString"`
	Version     string `plist:"CFBundleVersion"`
	IconFile    string `plist:"CFBundleIconFile"`
	LSCategory  string `plist:"LSApplicationCategoryType"`
}

// AppID derives the stable application id from the absolute bundle path.
// The same path always yields the same id; distinct paths never collide
// short of a SHA-256 prefix collision.
func AppID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return "app_" + hex.EncodeToString(sum[:])[:16]
}

// readApplication builds an Application record for one bundle path.
// A missing or malformed descriptor yields a fallback record, never an error.
func readApplication(path string, entryInfo fs.FileInfo) Application {
	app := Application{
		ID:           AppID(path),
		Name:         stemName(path),
		Path:         path,
		Category:     CategoryOther,
		LastModified: time.Now(),
	}
	if entryInfo != nil {
		app.LastModified = entryInfo.ModTime()
	}

	info, err := readDescriptor(path)
	if err == nil {
		if info.DisplayName != "" {
			app.Name = info.DisplayName
		} else if info.BundleName != "" {
			app.Name = info.BundleName
		}
		app.Version = info.ShortVer
		if app.Version == "" {
			app.Version = info.Version
		}
		app.Icon = resolveIcon(path, info.IconFile)
		app.Category = Categorize(info.Identifier, info.LSCategory)
	}

	app.BundleID = info.Identifier
	if app.BundleID == "" {
		app.BundleID = "unknown." + app.Name
	}

	app.Size = dirSize(path)

	return app
}

// readDescriptor parses Contents/Info.plist. howett.net/plist handles both
// the XML and binary encodings.
func readDescriptor(bundlePath string) (infoPlist, error) {
	var info infoPlist
	data, err := os.ReadFile(filepath.Join(bundlePath, "Contents", "Info.plist"))
	if err != nil {
		return info, err
	}
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return infoPlist{}, err
	}
	return info, nil
}

// resolveIcon returns the icon path under Contents/Resources when the
// referenced file exists, otherwise "".
func resolveIcon(bundlePath, iconFile string) string {
	if iconFile == "" {
		return ""
	}
	if filepath.Ext(iconFile) == "" {
		iconFile += ".icns"
	}
	iconPath := filepath.Join(bundlePath, "Contents", "Resources", iconFile)
	if _, err := os.Stat(iconPath); err != nil {
		return ""
	}
	return iconPath
}

// dirSize sums file sizes under path recursively. Errors yield 0.
func dirSize(path string) int64 {
	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return nil
			}
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0
	}
	return total
}

// stemName strips the directory and the bundle suffix from a path.
func stemName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), bundleSuffix)
}
