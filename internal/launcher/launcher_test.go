package launcher

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/launchmat/launchmat/internal/bundle"
	"github.com/launchmat/launchmat/internal/errors"
)

// fakeCommand records the invocation and substitutes a command with a known
// exit status, so tests never touch the real `open` binary. It also forces
// the platform gate open so the suite runs anywhere.
func fakeCommand(t *testing.T, wantExit int, got *[]string) func(context.Context, string, ...string) *exec.Cmd {
	t.Helper()
	prevGoos := goos
	goos = "darwin"
	t.Cleanup(func() { goos = prevGoos })
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		*got = append([]string{name}, args...)
		if wantExit == 0 {
			return exec.CommandContext(ctx, "true")
		}
		return exec.CommandContext(ctx, "false")
	}
}

func TestLaunch_InvokesOpen(t *testing.T) {
	var got []string
	execCommand = fakeCommand(t, 0, &got)
	defer func() { execCommand = exec.CommandContext }()

	app := bundle.Application{Name: "Xcode", Path: "/Applications/Xcode.app"}
	if err := Launch(context.Background(), app); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	if len(got) != 2 || got[0] != "open" || got[1] != app.Path {
		t.Errorf("invoked %v, want [open %s]", got, app.Path)
	}
}

func TestReveal_InvokesOpenR(t *testing.T) {
	var got []string
	execCommand = fakeCommand(t, 0, &got)
	defer func() { execCommand = exec.CommandContext }()

	app := bundle.Application{Name: "Xcode", Path: "/Applications/Xcode.app"}
	if err := Reveal(context.Background(), app); err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}

	if len(got) != 3 || got[1] != "-R" {
		t.Errorf("invoked %v, want open -R <path>", got)
	}
}

func TestShowInfo_InvokesOsascript(t *testing.T) {
	var got []string
	execCommand = fakeCommand(t, 0, &got)
	defer func() { execCommand = exec.CommandContext }()

	app := bundle.Application{Name: "Xcode", Path: "/Applications/Xcode.app"}
	if err := ShowInfo(context.Background(), app); err != nil {
		t.Fatalf("ShowInfo failed: %v", err)
	}

	if got[0] != "osascript" {
		t.Errorf("invoked %v, want osascript", got)
	}
	if !strings.Contains(strings.Join(got, " "), app.Path) {
		t.Errorf("script %v should reference the bundle path", got)
	}
}

func TestUnsupportedPlatform(t *testing.T) {
	prevGoos := goos
	goos = "linux"
	defer func() { goos = prevGoos }()

	app := bundle.Application{Name: "Xcode", Path: "/Applications/Xcode.app"}
	if err := Launch(context.Background(), app); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Launch on linux error = %v, want INVALID_REQUEST", err)
	}
}

func TestFailures_CarryCodeAndAppName(t *testing.T) {
	var got []string
	execCommand = fakeCommand(t, 1, &got)
	defer func() { execCommand = exec.CommandContext }()

	app := bundle.Application{Name: "Xcode", Path: "/Applications/Xcode.app"}
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		code errors.ErrorCode
	}{
		{"launch", func() error { return Launch(ctx, app) }, errors.ErrLaunchFailed},
		{"reveal", func() error { return Reveal(ctx, app) }, errors.ErrRevealFailed},
		{"info", func() error { return ShowInfo(ctx, app) }, errors.ErrInfoFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
			if !strings.Contains(err.Error(), "Xcode") {
				t.Errorf("error %q should name the application", err.Error())
			}
		})
	}
}
