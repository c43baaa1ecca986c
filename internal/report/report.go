// Package report renders the current folder layout to a standalone HTML
// file. The body is composed as markdown and converted with goldmark; the
// file lands under the exports directory next to settings snapshots.
package report

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/launchmat/launchmat/internal/bundle"
	"github.com/launchmat/launchmat/internal/errors"
	"github.com/launchmat/launchmat/internal/store"
)

// Output describes a written report.
type Output struct {
	Path        string `json:"path"`
	Folders     int    `json:"folders"`
	Apps        int    `json:"apps"`
	GeneratedAt int64  `json:"generated_at"`
}

const page = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #1d1d1f; }
h1 { border-bottom: 1px solid #d2d2d7; padding-bottom: .3rem; }
table { border-collapse: collapse; width: 100%%; }
th, td { text-align: left; padding: .3rem .6rem; border-bottom: 1px solid #e8e8ed; }
code { background: #f5f5f7; padding: .1rem .3rem; border-radius: 3px; }
</style>
</head>
<body>
%s
</body>
</html>
`

// Generate writes an HTML report of the folder layout under
// baseDir/exports and returns its path.
func Generate(baseDir string, folders []store.Folder, apps []bundle.Application, now time.Time) (*Output, error) {
	md := compose(folders, apps, now)

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(md), &body); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("markdown conversion failed: %w", err))
	}

	dir := filepath.Join(baseDir, "exports")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create exports directory: %w", err))
	}
	path := filepath.Join(dir, fmt.Sprintf("launchmat-report-%s.html", now.Format("20060102-150405")))

	doc := fmt.Sprintf(page, "Launchmat Report", body.String())
	if err := writeAtomic(path, []byte(doc)); err != nil {
		return nil, err
	}

	return &Output{
		Path:        path,
		Folders:     len(folders),
		Apps:        len(apps),
		GeneratedAt: now.Unix(),
	}, nil
}

// compose builds the markdown body: a header, a per-folder section with an
// application table, and a footer for applications missing from disk.
func compose(folders []store.Folder, apps []bundle.Application, now time.Time) string {
	byID := make(map[string]bundle.Application, len(apps))
	for _, app := range apps {
		byID[app.ID] = app
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Launchmat Report\n\n")
	fmt.Fprintf(&b, "Generated %s. %d folders, %d applications.\n\n",
		now.UTC().Format("2006-01-02 15:04 MST"), len(folders), len(apps))

	var missing []string
	for _, folder := range folders {
		fmt.Fprintf(&b, "## %s\n\n", escape(folder.Name))
		if len(folder.AppIDs) == 0 {
			b.WriteString("_Empty._\n\n")
			continue
		}

		b.WriteString("| Application | Version | Path |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, appID := range folder.AppIDs {
			app, ok := byID[appID]
			if !ok {
				missing = append(missing, appID)
				continue
			}
			version := app.Version
			if version == "" {
				version = "-"
			}
			fmt.Fprintf(&b, "| %s | %s | `%s` |\n", escape(app.Name), escape(version), app.Path)
		}
		b.WriteString("\n")
	}

	if len(missing) > 0 {
		fmt.Fprintf(&b, "## Not on disk\n\n%d mapped applications were not found in the last scan.\n\n", len(missing))
	}
	return b.String()
}

// escape neutralizes characters that would otherwise be interpreted as
// markdown or markup in user-chosen names.
func escape(s string) string {
	s = html.EscapeString(s)
	return strings.NewReplacer("|", "\\|", "#", "\\#", "*", "\\*", "_", "\\_").Replace(s)
}

// writeAtomic writes to a temp file in the target directory and renames it
// into place, so a failed write never leaves a truncated report.
func writeAtomic(path string, data []byte) error {
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to write report: %w", err))
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errors.NewInternal(fmt.Errorf("failed to finalize report: %w", err))
	}
	return nil
}
