package errors

import "fmt"

// ErrorCode represents a Launchmat error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrCatchAllProtected ErrorCode = "CATCHALL_PROTECTED" // 409
	ErrImportFormat      ErrorCode = "IMPORT_FORMAT"      // 422
	ErrStorageWrite      ErrorCode = "STORAGE_WRITE"      // 500
	ErrLaunchFailed      ErrorCode = "LAUNCH_FAILED"      // 502
	ErrRevealFailed      ErrorCode = "REVEAL_FAILED"      // 502
	ErrInfoFailed        ErrorCode = "INFO_FAILED"        // 502
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// LaunchmatError represents a structured error with code, status, and details.
type LaunchmatError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *LaunchmatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *LaunchmatError) Unwrap() error {
	return e.Cause
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *LaunchmatError {
	return &LaunchmatError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing folder or application.
func NewNotFound(identifier string) *LaunchmatError {
	return &LaunchmatError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewCatchAllProtected creates a 409 error for attempts to delete the catch-all folder.
func NewCatchAllProtected(folderID string) *LaunchmatError {
	return &LaunchmatError{
		Code:    ErrCatchAllProtected,
		Status:  409,
		Message: fmt.Sprintf("folder %q is the reassignment target for deleted folders and cannot be deleted", folderID),
		Details: map[string]any{"folder_id": folderID},
	}
}

// NewImportFormat creates a 422 error for a missing or malformed snapshot.
func NewImportFormat(msg string) *LaunchmatError {
	return &LaunchmatError{
		Code:    ErrImportFormat,
		Status:  422,
		Message: msg,
	}
}

// NewStorageWrite creates a 500 error for a failed persisted write.
// The attempted operation name is surfaced so the caller can report it.
func NewStorageWrite(op string, err error) *LaunchmatError {
	return &LaunchmatError{
		Code:    ErrStorageWrite,
		Status:  500,
		Message: fmt.Sprintf("failed to persist %s: %v", op, err),
		Details: map[string]any{"operation": op},
		Cause:   err,
	}
}

// NewLaunchFailed creates a 502 error for a failed application launch.
func NewLaunchFailed(appName string, err error) *LaunchmatError {
	return newProcessError(ErrLaunchFailed, "launch", appName, err)
}

// NewRevealFailed creates a 502 error for a failed reveal-in-Finder.
func NewRevealFailed(appName string, err error) *LaunchmatError {
	return newProcessError(ErrRevealFailed, "reveal", appName, err)
}

// NewInfoFailed creates a 502 error for a failed show-info invocation.
func NewInfoFailed(appName string, err error) *LaunchmatError {
	return newProcessError(ErrInfoFailed, "show info for", appName, err)
}

func newProcessError(code ErrorCode, verb, appName string, err error) *LaunchmatError {
	return &LaunchmatError{
		Code:    code,
		Status:  502,
		Message: fmt.Sprintf("failed to %s %q: %v", verb, appName, err),
		Details: map[string]any{"app_name": appName},
		Cause:   err,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *LaunchmatError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &LaunchmatError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		Cause:   err,
	}
}

// Is checks if an error is a LaunchmatError with the given code.
func Is(err error, code ErrorCode) bool {
	if lErr, ok := err.(*LaunchmatError); ok {
		return lErr.Code == code
	}
	return false
}
