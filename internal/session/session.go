// Package session composes discovery and the store into one coherent view
// for the presentation layer. The session owns the only in-memory copy of
// the merged state; mutations are forwarded to the store first and the view
// is patched optimistically once the write succeeds.
package session

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/launchmat/launchmat/internal/bundle"
	"github.com/launchmat/launchmat/internal/config"
	"github.com/launchmat/launchmat/internal/errors"
	"github.com/launchmat/launchmat/internal/store"
)

// ItemKind discriminates the two item variants in the flat view.
type ItemKind string

const (
	ItemFolder      ItemKind = "folder"
	ItemApplication ItemKind = "application"
)

// Item is a tagged variant: exactly one of Folder or Application is set,
// according to Kind.
type Item struct {
	Kind        ItemKind            `json:"kind"`
	Folder      *store.Folder       `json:"folder,omitempty"`
	Application *bundle.Application `json:"application,omitempty"`
}

// Session holds one activation's worth of merged state.
type Session struct {
	store *store.Store
	cfg   *config.Config

	// scan and roots are swapped out in tests.
	scan  func(roots []string) []bundle.Application
	roots []string

	apps         []bundle.Application
	folders      []store.Folder
	openFolderID string
}

// New creates a session over the given store and configuration.
func New(st *store.Store, cfg *config.Config) *Session {
	return &Session{
		store: st,
		cfg:   cfg,
		scan:  bundle.Scan,
		roots: bundle.DefaultRoots(cfg.ExtraScanRoots),
	}
}

// NewWithScan creates a session with a custom discovery function in place
// of the filesystem scan.
func NewWithScan(st *store.Store, cfg *config.Config, scan func(roots []string) []bundle.Application) *Session {
	s := New(st, cfg)
	if scan != nil {
		s.scan = scan
	}
	return s
}

// Activate loads folders, runs discovery, reconciles newly-seen applications
// into folders, and records the scan timestamp. After Activate the session
// exposes the merged applications+folders view.
func (s *Session) Activate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.NewInternal(err)
	}

	s.folders = s.store.LoadFolders()
	s.apps = s.scan(s.roots)

	previous := make([]string, 0)
	for appID := range s.store.Mappings() {
		previous = append(previous, appID)
	}
	diff := bundle.Diff(s.apps, previous)
	slog.Debug("discovery pass", "apps", len(s.apps), "new", len(diff.New), "removed", len(diff.RemovedIDs))

	folders, err := s.store.AutoCategorizeNewApps(s.apps, s.folders)
	if err != nil {
		return err
	}
	s.folders = folders

	if err := s.store.SetLastScan(time.Now()); err != nil {
		slog.Warn("could not record scan timestamp", "error", err)
	}
	return nil
}

// Applications returns the discovered applications, sorted by name.
func (s *Session) Applications() []bundle.Application {
	return s.apps
}

// Folders returns the folder collection in position order.
func (s *Session) Folders() []store.Folder {
	return s.folders
}

// Application looks up a discovered application by id.
func (s *Session) Application(appID string) (bundle.Application, bool) {
	for _, app := range s.apps {
		if app.ID == appID {
			return app, true
		}
	}
	return bundle.Application{}, false
}

// OpenFolder switches the flat view to the folder's contents.
func (s *Session) OpenFolder(folderID string) error {
	for _, f := range s.folders {
		if f.ID == folderID {
			s.openFolderID = folderID
			return nil
		}
	}
	return errors.NewNotFound(folderID)
}

// CloseFolder returns the flat view to the folder grid.
func (s *Session) CloseFolder() {
	s.openFolderID = ""
}

// OpenFolderID returns the id of the open folder, or "".
func (s *Session) OpenFolderID() string {
	return s.openFolderID
}

// Items returns the current flat view: folders when no folder is open, the
// open folder's applications (in insertion order) otherwise.
func (s *Session) Items() []Item {
	if s.openFolderID == "" {
		items := make([]Item, len(s.folders))
		for i := range s.folders {
			items[i] = Item{Kind: ItemFolder, Folder: &s.folders[i]}
		}
		return items
	}

	var items []Item
	for _, f := range s.folders {
		if f.ID != s.openFolderID {
			continue
		}
		for _, appID := range f.AppIDs {
			if app, ok := s.Application(appID); ok {
				a := app
				items = append(items, Item{Kind: ItemApplication, Application: &a})
			}
		}
	}
	return items
}

// Page returns the page-th window of the current item list.
// Pages outside the valid range yield an empty slice.
func (s *Session) Page(page int) []Item {
	items := s.Items()
	size := s.pageSize()

	start := page * size
	if page < 0 || start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageCount returns the number of pages in the current item list.
func (s *Session) PageCount() int {
	items := s.Items()
	if len(items) == 0 {
		return 0
	}
	size := s.pageSize()
	return (len(items) + size - 1) / size
}

func (s *Session) pageSize() int {
	if s.cfg != nil && s.cfg.PageSize > 0 {
		return s.cfg.PageSize
	}
	return 20
}

// Filter returns the current items whose name contains query,
// case-insensitively. An empty query returns everything.
func (s *Session) Filter(query string) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	items := s.Items()
	if query == "" {
		return items
	}

	var matched []Item
	for _, item := range items {
		var name string
		switch item.Kind {
		case ItemFolder:
			name = item.Folder.Name
		case ItemApplication:
			name = item.Application.Name
		}
		if strings.Contains(strings.ToLower(name), query) {
			matched = append(matched, item)
		}
	}
	return matched
}
