// Package launcher shells out to the platform "open" facility for the three
// side-effecting application operations. Failures are not retried; they carry
// the application name so the caller can report them.
package launcher

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/launchmat/launchmat/internal/bundle"
	"github.com/launchmat/launchmat/internal/errors"
)

// execCommand and goos are swapped out in tests.
var (
	execCommand = exec.CommandContext
	goos        = runtime.GOOS
)

// supported rejects the side-effecting operations on platforms without the
// "open" facility.
func supported() error {
	if goos != "darwin" {
		return errors.NewInvalidRequest("application launching is only supported on darwin")
	}
	return nil
}

// Launch opens the application bundle.
func Launch(ctx context.Context, app bundle.Application) error {
	if err := supported(); err != nil {
		return err
	}
	if err := run(ctx, "open", app.Path); err != nil {
		return errors.NewLaunchFailed(app.Name, err)
	}
	return nil
}

// Reveal shows the application bundle in the file browser.
func Reveal(ctx context.Context, app bundle.Application) error {
	if err := supported(); err != nil {
		return err
	}
	if err := run(ctx, "open", "-R", app.Path); err != nil {
		return errors.NewRevealFailed(app.Name, err)
	}
	return nil
}

// ShowInfo opens the Finder information window for the bundle.
func ShowInfo(ctx context.Context, app bundle.Application) error {
	if err := supported(); err != nil {
		return err
	}
	script := fmt.Sprintf(
		`tell application "Finder" to open information window of (POSIX file %q as alias)`,
		app.Path,
	)
	if err := run(ctx, "osascript", "-e", script); err != nil {
		return errors.NewInfoFailed(app.Name, err)
	}
	return nil
}

// run executes a command and folds stderr into the returned error.
func run(ctx context.Context, name string, args ...string) error {
	cmd := execCommand(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
