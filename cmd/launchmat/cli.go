package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/launchmat/launchmat/internal/config"
	"github.com/launchmat/launchmat/internal/errors"
	"github.com/launchmat/launchmat/internal/report"
	"github.com/launchmat/launchmat/internal/session"
	"github.com/launchmat/launchmat/internal/store"
)

// jsonFlag switches a command from table output to indented JSON.
var jsonFlag = &cli.BoolFlag{Name: "json", Usage: "Output JSON instead of a table"}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(sess *session.Session, st *store.Store, cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "launchmat",
		Usage:   "Application shortcut organizer",
		Version: Version,
		Commands: []*cli.Command{
			scanCmd(sess),
			appsCmd(sess, st),
			foldersCmd(sess),
			folderCmd(sess),
			moveCmd(sess),
			removeCmd(sess),
			launchCmd(sess),
			revealCmd(sess),
			infoCmd(sess),
			exportCmd(st, cfg, baseDir),
			importCmd(st, cfg, baseDir),
			resetCmd(st),
			reportCmd(sess, baseDir),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// scanCmd creates the scan command.
func scanCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Scan application directories and file new applications into folders",
		Flags: []cli.Flag{jsonFlag},
		Action: func(c *cli.Context) error {
			if err := sess.Activate(c.Context); err != nil {
				return outputError(err)
			}
			summary := map[string]any{
				"apps":    len(sess.Applications()),
				"folders": len(sess.Folders()),
			}
			if c.Bool("json") {
				return outputJSON(summary)
			}
			fmt.Printf("%d applications in %d folders\n", summary["apps"], summary["folders"])
			return nil
		},
	}
}

// appsCmd creates the apps command.
func appsCmd(sess *session.Session, st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "apps",
		Usage: "List discovered applications",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Only applications in this folder id"},
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Case-insensitive name filter"},
			jsonFlag,
		},
		Action: func(c *cli.Context) error {
			if err := sess.Activate(c.Context); err != nil {
				return outputError(err)
			}

			folderID := c.String("folder")
			query := strings.ToLower(c.String("query"))
			mappings := st.Mappings()
			folderNames := make(map[string]string)
			for _, f := range sess.Folders() {
				folderNames[f.ID] = f.Name
			}
			if folderID != "" {
				if _, ok := folderNames[folderID]; !ok {
					return outputError(errors.NewNotFound(folderID))
				}
			}

			apps := sess.Applications()
			filtered := apps[:0:0]
			for _, app := range apps {
				if folderID != "" && mappings[app.ID] != folderID {
					continue
				}
				if query != "" && !strings.Contains(strings.ToLower(app.Name), query) {
					continue
				}
				filtered = append(filtered, app)
			}

			if c.Bool("json") {
				return outputJSON(map[string]any{"apps": filtered, "count": len(filtered)})
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Name", "Version", "Folder", "Path"})
			for _, app := range filtered {
				t.AppendRow(table.Row{app.ID, app.Name, app.Version, folderNames[mappings[app.ID]], app.Path})
			}
			t.Render()
			return nil
		},
	}
}

// foldersCmd creates the folders command.
func foldersCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "folders",
		Usage: "List folders in position order",
		Flags: []cli.Flag{jsonFlag},
		Action: func(c *cli.Context) error {
			if err := sess.Activate(c.Context); err != nil {
				return outputError(err)
			}
			folders := sess.Folders()
			if c.Bool("json") {
				return outputJSON(map[string]any{"folders": folders})
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "ID", "Name", "Color", "Icon", "Apps"})
			for _, f := range folders {
				t.AppendRow(table.Row{f.Position, f.ID, f.Name, f.Color, f.Icon, len(f.AppIDs)})
			}
			t.Render()
			return nil
		},
	}
}

// folderCmd groups the folder mutation subcommands.
func folderCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "folder",
		Usage: "Create, rename, restyle, delete, or reorder folders",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create an empty folder",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "color", Usage: "Palette color (default blue)"},
					&cli.StringFlag{Name: "icon", Usage: "Symbol name (default folder)"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return outputError(errors.NewInvalidRequest("folder create takes exactly one name; flags go before it"))
					}
					if err := sess.Activate(c.Context); err != nil {
						return outputError(err)
					}
					folder, err := sess.CreateFolder(c.Args().First(), c.String("color"), c.String("icon"))
					if err != nil {
						return outputError(err)
					}
					return outputJSON(folder)
				},
			},
			{
				Name:      "rename",
				Usage:     "Rename a folder",
				ArgsUsage: "<id> <name>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("folder id and new name are required"))
					}
					if err := sess.Activate(c.Context); err != nil {
						return outputError(err)
					}
					name := c.Args().Get(1)
					if err := sess.UpdateFolder(c.Args().First(), store.FolderUpdate{Name: &name}); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"updated": c.Args().First()})
				},
			},
			{
				Name:      "style",
				Usage:     "Change a folder's color or icon",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "color", Usage: "New palette color"},
					&cli.StringFlag{Name: "icon", Usage: "New symbol name"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return outputError(errors.NewInvalidRequest("folder style takes exactly one folder id; flags go before it"))
					}
					if err := sess.Activate(c.Context); err != nil {
						return outputError(err)
					}
					update := store.FolderUpdate{}
					if c.IsSet("color") {
						color := c.String("color")
						update.Color = &color
					}
					if c.IsSet("icon") {
						icon := c.String("icon")
						update.Icon = &icon
					}
					if err := sess.UpdateFolder(c.Args().First(), update); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"updated": c.Args().First()})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a folder; its applications move to the catch-all folder",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("folder id is required"))
					}
					if err := sess.Activate(c.Context); err != nil {
						return outputError(err)
					}
					if err := sess.DeleteFolder(c.Args().First()); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"deleted": c.Args().First()})
				},
			},
			{
				Name:      "reorder",
				Usage:     "Reorder folders; every folder id must be listed exactly once",
				ArgsUsage: "<id> <id> ...",
				Action: func(c *cli.Context) error {
					if err := sess.Activate(c.Context); err != nil {
						return outputError(err)
					}
					if err := sess.ReorderFolders(c.Args().Slice()); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"folders": sess.Folders()})
				},
			},
		},
	}
}

// moveCmd creates the move command.
func moveCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:      "move",
		Usage:     "Move an application into a folder",
		ArgsUsage: "<app_id> <folder_id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest("application id and folder id are required"))
			}
			if err := sess.Activate(c.Context); err != nil {
				return outputError(err)
			}
			if err := sess.MoveApp(c.Args().First(), c.Args().Get(1)); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"moved": c.Args().First(), "folder": c.Args().Get(1)})
		},
	}
}

// removeCmd creates the remove command.
func removeCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove an application from the organizer (the bundle is untouched)",
		ArgsUsage: "<app_id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("application id is required"))
			}
			if err := sess.Activate(c.Context); err != nil {
				return outputError(err)
			}
			if err := sess.RemoveApp(c.Args().First()); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"removed": c.Args().First()})
		},
	}
}

// launchCmd creates the launch command.
func launchCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:      "launch",
		Usage:     "Launch an application",
		ArgsUsage: "<app_id>",
		Action: func(c *cli.Context) error {
			return appAction(c, sess, sess.Launch)
		},
	}
}

// revealCmd creates the reveal command.
func revealCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:      "reveal",
		Usage:     "Reveal an application bundle in the file browser",
		ArgsUsage: "<app_id>",
		Action: func(c *cli.Context) error {
			return appAction(c, sess, sess.Reveal)
		},
	}
}

// infoCmd creates the info command.
func infoCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Open the information window for an application",
		ArgsUsage: "<app_id>",
		Action: func(c *cli.Context) error {
			return appAction(c, sess, sess.ShowInfo)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(st *store.Store, cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export folders, mappings, and settings as a JSON snapshot",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to file instead of stdout"},
		},
		Action: func(c *cli.Context) error {
			snapshot := st.ExportSettings()
			if path := c.String("output"); path != "" {
				if err := validatePath(path, pathCheckWrite, cfg, baseDir); err != nil {
					return outputError(err)
				}
				data, err := json.MarshalIndent(snapshot, "", "  ")
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
					return outputError(errors.NewInternal(err))
				}
				if err := os.WriteFile(path, data, 0600); err != nil {
					return outputError(errors.NewInternal(err))
				}
				return outputJSON(map[string]any{"path": path})
			}
			return outputJSON(snapshot)
		},
	}
}

// importCmd creates the import command.
func importCmd(st *store.Store, cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import a snapshot from a file or stdin",
		ArgsUsage: "[path]",
		Action: func(c *cli.Context) error {
			var data []byte
			var err error
			switch {
			case c.NArg() > 0:
				path := c.Args().First()
				if err := validatePath(path, pathCheckRead, cfg, baseDir); err != nil {
					return outputError(err)
				}
				data, err = os.ReadFile(path)
			case stdinHasData():
				data, err = io.ReadAll(os.Stdin)
			default:
				return outputError(errors.NewInvalidRequest("snapshot must be given as a path or piped via stdin"))
			}
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			if err := st.ImportSettings(data); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"imported": true})
		},
	}
}

// resetCmd creates the reset command.
func resetCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Delete all folders, mappings, and settings",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "Skip confirmation"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("force") {
				return outputError(errors.NewInvalidRequest("pass --force to confirm the reset"))
			}
			if err := st.ClearAllData(); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"reset": true})
		},
	}
}

// reportCmd creates the report command.
func reportCmd(sess *session.Session, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Write an HTML report of the folder layout",
		Action: func(c *cli.Context) error {
			if err := sess.Activate(c.Context); err != nil {
				return outputError(err)
			}
			out, err := report.Generate(baseDir, sess.Folders(), sess.Applications(), time.Now())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// Helper functions

// appAction activates the session and runs a per-application operation
// taking the first positional argument as the application id.
func appAction(c *cli.Context, sess *session.Session, fn func(ctx context.Context, appID string) error) error {
	if c.NArg() < 1 {
		return outputError(errors.NewInvalidRequest("application id is required"))
	}
	if err := sess.Activate(c.Context); err != nil {
		return outputError(err)
	}
	if err := fn(c.Context, c.Args().First()); err != nil {
		return outputError(err)
	}
	return outputJSON(map[string]any{"ok": true, "app": c.Args().First()})
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if lmErr, ok := err.(*errors.LaunchmatError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", lmErr.Code, lmErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
