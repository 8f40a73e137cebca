package errors

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler is the single boundary that turns any error escaping a
// handler into the response envelope. Non-operational errors are logged and
// surfaced as opaque 500s.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	appErr := toAppError(err)
	if !appErr.Operational {
		log.Printf("unexpected error: method=%s path=%s err=%v", c.Request().Method, c.Request().URL.Path, err)
	}

	res := Envelope{
		Status:  appErr.Status(),
		Data:    nil,
		Message: appErr.Message,
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(appErr.StatusCode)
	} else {
		err = c.JSON(appErr.StatusCode, res)
	}
	if err != nil {
		log.Printf("write error response: %v", err)
	}
}

func toAppError(err error) *AppError {
	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		return New(http.StatusBadRequest, validationMessage(valErrs))
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg := http.StatusText(echoErr.Code)
		if s, ok := echoErr.Message.(string); ok {
			msg = s
		}
		return New(echoErr.Code, msg)
	}

	return MapError(err)
}

// validationMessage renders field-level messages for failed validate tags.
func validationMessage(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "invalid request"
	}
	fe := errs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "please enter a valid email"
	case "min":
		return fmt.Sprintf("%s can not have less than %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s can not have more than %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
