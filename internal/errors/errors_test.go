package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("folder_games")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %s, want %s", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if !strings.Contains(err.Message, "folder_games") {
		t.Errorf("Message %q should contain the identifier", err.Message)
	}
	if err.Details["identifier"] != "folder_games" {
		t.Errorf("Details[identifier] = %v, want folder_games", err.Details["identifier"])
	}
}

func TestNewStorageWrite_WrapsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewStorageWrite("folders", cause)

	if err.Code != ErrStorageWrite {
		t.Errorf("Code = %s, want %s", err.Code, ErrStorageWrite)
	}
	if !strings.Contains(err.Message, "folders") {
		t.Errorf("Message %q should name the attempted operation", err.Message)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestProcessErrors_NameApp(t *testing.T) {
	cause := stderrors.New("exit status 1")

	tests := []struct {
		name string
		err  *LaunchmatError
		code ErrorCode
	}{
		{"launch", NewLaunchFailed("Xcode", cause), ErrLaunchFailed},
		{"reveal", NewRevealFailed("Xcode", cause), ErrRevealFailed},
		{"info", NewInfoFailed("Xcode", cause), ErrInfoFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if !strings.Contains(tt.err.Message, "Xcode") {
				t.Errorf("Message %q should contain the application name", tt.err.Message)
			}
			if tt.err.Details["app_name"] != "Xcode" {
				t.Errorf("Details[app_name] = %v, want Xcode", tt.err.Details["app_name"])
			}
		})
	}
}

func TestNewCatchAllProtected(t *testing.T) {
	err := NewCatchAllProtected("folder_other")

	if err.Code != ErrCatchAllProtected {
		t.Errorf("Code = %s, want %s", err.Code, ErrCatchAllProtected)
	}
	if err.Status != 409 {
		t.Errorf("Status = %d, want 409", err.Status)
	}
}

func TestNewInternal_NilError(t *testing.T) {
	err := NewInternal(nil)

	if err.Message != "internal error" {
		t.Errorf("Message = %q, want generic message for nil cause", err.Message)
	}
}

func TestIs(t *testing.T) {
	err := NewInvalidRequest("bad input")

	if !Is(err, ErrInvalidRequest) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrNotFound) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrInvalidRequest) {
		t.Error("Is should not match a non-LaunchmatError")
	}
}
