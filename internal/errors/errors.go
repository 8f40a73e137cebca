package errors

import (
	"errors"
	"net/http"
)

// Sentinel domain errors. Services return these; the HTTP error handler maps
// them to status codes and the response envelope.
var (
	// ErrMissingCredentials is returned when login is attempted without email or password.
	ErrMissingCredentials = errors.New("please provide your email and password")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	// Both cases share one error so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrNotConfirmed is returned when the account email has not been confirmed yet.
	ErrNotConfirmed = errors.New("please confirm your email first")
	// ErrUserAlreadyExists is returned when signing up with a taken email.
	ErrUserAlreadyExists = errors.New("a user with this email already exists")
	// ErrUserNotFound is returned when no account matches the given email.
	ErrUserNotFound = errors.New("there is no user with that email address")
	// ErrUnauthenticated is returned when a protected route is hit without a
	// usable session token.
	ErrUnauthenticated = errors.New("you are not logged in, please log in to get access")
	// ErrInvalidToken is returned when a signed token fails verification.
	ErrInvalidToken = errors.New("invalid or expired token, please try again")
	// ErrStalePassword rejects session tokens issued before the last password change.
	ErrStalePassword = errors.New("password was recently changed, please log in again")
	// ErrInvalidResetToken is returned when a reset token does not match or has expired.
	ErrInvalidResetToken = errors.New("token is invalid or has expired")
	// ErrEmailDelivery is returned when the outbound mail transport fails.
	ErrEmailDelivery = errors.New("there was an error sending the email, try again later")
	// ErrTaskNotFound covers both a missing task and a task owned by someone else.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskNotCreated is returned when the store rejects a new task.
	ErrTaskNotCreated = errors.New("task not created")
)

// Envelope statuses. "fail" marks client faults (4xx), "error" server faults (5xx).
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope is the uniform JSON response body.
type Envelope struct {
	Status  string      `json:"status"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// AppError is an anticipated, client-safe failure carrying its HTTP status.
type AppError struct {
	StatusCode  int
	Message     string
	Operational bool
}

func (e *AppError) Error() string {
	return e.Message
}

// Status returns the envelope status for the error's status code.
func (e *AppError) Status() string {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return StatusFail
	}
	return StatusError
}

// New creates an operational AppError.
func New(statusCode int, message string) *AppError {
	return &AppError{
		StatusCode:  statusCode,
		Message:     message,
		Operational: true,
	}
}

// MapError converts any error into an AppError. Unrecognized errors become
// non-operational opaque 500s.
func MapError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrMissingCredentials):
		return New(http.StatusBadRequest, ErrMissingCredentials.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return New(http.StatusUnauthorized, ErrInvalidCredentials.Error())
	case errors.Is(err, ErrNotConfirmed):
		return New(http.StatusUnauthorized, ErrNotConfirmed.Error())
	case errors.Is(err, ErrUserAlreadyExists):
		return New(http.StatusConflict, ErrUserAlreadyExists.Error())
	case errors.Is(err, ErrUserNotFound):
		return New(http.StatusNotFound, ErrUserNotFound.Error())
	case errors.Is(err, ErrUnauthenticated):
		return New(http.StatusUnauthorized, ErrUnauthenticated.Error())
	case errors.Is(err, ErrStalePassword):
		return New(http.StatusUnauthorized, ErrStalePassword.Error())
	case errors.Is(err, ErrInvalidToken):
		return New(http.StatusBadRequest, ErrInvalidToken.Error())
	case errors.Is(err, ErrInvalidResetToken):
		return New(http.StatusBadRequest, ErrInvalidResetToken.Error())
	case errors.Is(err, ErrEmailDelivery):
		return New(http.StatusInternalServerError, ErrEmailDelivery.Error())
	case errors.Is(err, ErrTaskNotFound):
		return New(http.StatusNotFound, ErrTaskNotFound.Error())
	case errors.Is(err, ErrTaskNotCreated):
		return New(http.StatusBadRequest, ErrTaskNotCreated.Error())
	default:
		return &AppError{
			StatusCode:  http.StatusInternalServerError,
			Message:     "internal server error",
			Operational: false,
		}
	}
}
