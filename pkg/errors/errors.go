package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure independently of its message
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Source tree errors
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"
	ErrRevision       ErrorCode = "REVISION"

	// External tool errors
	ErrToolNotFound ErrorCode = "TOOL_NOT_FOUND"
	ErrToolExecute  ErrorCode = "TOOL_EXECUTE"

	// Archive errors
	ErrArchiveRead  ErrorCode = "ARCHIVE_READ"
	ErrVerifyFailed ErrorCode = "VERIFY_FAILED"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// SdkpackError is an error carrying a stable code. Details hold the
// structured context renderers show next to the message, such as the
// stderr of a failed tool or the path that was missing.
type SdkpackError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *SdkpackError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
}

func (e *SdkpackError) Unwrap() error { return e.Wrapped }

// Is reports whether target is a SdkpackError with the same code
func (e *SdkpackError) Is(target error) bool {
	var other *SdkpackError
	return errors.As(target, &other) && other.Code == e.Code
}

func build(code ErrorCode, message string, wrapped error) *SdkpackError {
	return &SdkpackError{
		Code:    code,
		Message: message,
		Details: map[string]interface{}{},
		Wrapped: wrapped,
	}
}

// New creates an error with the given code
func New(code ErrorCode, message string) *SdkpackError {
	return build(code, message, nil)
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SdkpackError {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches a code and message to err. It returns nil for a nil err,
// so callers check err first: a nil *SdkpackError stored in an error
// interface is not a nil error.
func Wrap(err error, code ErrorCode, message string) *SdkpackError {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SdkpackError {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

// WithDetail records key=value on the error and returns it for chaining
func (e *SdkpackError) WithDetail(key string, value interface{}) *SdkpackError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

func find(err error) *SdkpackError {
	var sdkErr *SdkpackError
	if errors.As(err, &sdkErr) {
		return sdkErr
	}
	return nil
}

// IsErrorCode reports whether the outermost SdkpackError in err's chain
// has code.
func IsErrorCode(err error, code ErrorCode) bool {
	sdkErr := find(err)
	return sdkErr != nil && sdkErr.Code == code
}

// GetErrorCode returns the code of err, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	if sdkErr := find(err); sdkErr != nil {
		return sdkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of err, or nil
func GetErrorDetails(err error) map[string]interface{} {
	if sdkErr := find(err); sdkErr != nil {
		return sdkErr.Details
	}
	return nil
}
