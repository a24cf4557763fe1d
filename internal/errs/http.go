package errs

import (
	"errors"
	"net/http"
)

// Status classifies err into an HTTP status and a stable machine code.
// Wrapped errors are unwrapped, anything unknown is a 500.
func Status(err error) (int, string) {
	var (
		notFound     *NotFoundError
		exists       *AlreadyExistsError
		validation   *ValidationError
		forbidden    *ForbiddenError
		unauthorized *UnauthorizedError
		external     *ExternalServiceError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, "not_found"
	case errors.As(err, &exists):
		return http.StatusConflict, "already_exists"
	case errors.As(err, &validation):
		return http.StatusBadRequest, "invalid_input"
	case errors.As(err, &forbidden):
		return http.StatusForbidden, "forbidden"
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.As(err, &external):
		if external.Transient {
			return http.StatusServiceUnavailable, "service_unavailable"
		}
		return http.StatusBadGateway, "service_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Message returns the message of the first typed error in err's chain, without
// its detail or the context added by wrapping. Errors with no typed cause
// return err.Error().
func Message(err error) string {
	var typed interface{ message() string }
	if errors.As(err, &typed) {
		return typed.message()
	}
	return err.Error()
}

// Detail returns what err adds beyond Message: the typed error's detail, or
// the wrapping context when there is none.
func Detail(err error) string {
	var typed interface{ detail() string }
	if errors.As(err, &typed) && typed.detail() != "" {
		return typed.detail()
	}
	if full := err.Error(); full != Message(err) {
		return full
	}
	return ""
}
