package errors

import "fmt"

type ErrorCode string

const (
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrNotFound           ErrorCode = "NOT_FOUND"

	// Startup
	ErrMissingConfig   ErrorCode = "MISSING_CONFIG"
	ErrInvalidConfig   ErrorCode = "INVALID_CONFIG"
	ErrCredentialsFile ErrorCode = "CREDENTIALS_FILE_ERROR"

	// Calendar provider
	ErrCalendarAPI     ErrorCode = "CALENDAR_API_ERROR"
	ErrCalendarRequest ErrorCode = "CALENDAR_REQUEST_ERROR"

	// Slack
	ErrInvalidSignature ErrorCode = "INVALID_SIGNATURE"
	ErrSlackReply       ErrorCode = "SLACK_REPLY_ERROR"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so callers can use errors.Is against a sentinel AppError.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}
