package watson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeInvalidArgument   ErrorCode = "invalid_argument"
	CodeUnauthenticated   ErrorCode = "unauthenticated"
	CodePermissionDenied  ErrorCode = "permission_denied"
	CodeNotFound          ErrorCode = "not_found"
	CodeMethodNotAllowed  ErrorCode = "method_not_allowed"
	CodeNotAcceptable     ErrorCode = "not_acceptable"
	CodeConflict          ErrorCode = "conflict"
	CodeGone              ErrorCode = "gone"
	CodeTooLarge          ErrorCode = "too_large"
	CodeUnsupportedMedia  ErrorCode = "unsupported_media_type"
	CodeResourceExhausted ErrorCode = "resource_exhausted"
	CodeCanceled          ErrorCode = "canceled"
	CodeInternal          ErrorCode = "internal"
	CodeNotImplemented    ErrorCode = "not_implemented"
	CodeUnavailable       ErrorCode = "unavailable"
	CodeDeadlineExceeded  ErrorCode = "deadline_exceeded"
	CodeUnknown           ErrorCode = "unknown"
)

// Error is returned for every non-2xx response from a Watson service.
type Error struct {
	StatusCode int            `json:"status_code"`
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Headers    http.Header    `json:"-"`
	RawBody    []byte         `json:"-"`
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// NewError creates a new error that did not come from a response.
// StatusCode stays zero.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new service error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	out := *e
	out.Details = details
	return &out
}

// WithDetails returns a new Error with the provided map merged into details.
func (e *Error) WithDetails(details map[string]any) *Error {
	if len(details) == 0 {
		return e
	}
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	out := *e
	out.Details = merged
	return &out
}

// HTTPStatus maps an ErrorCode to an HTTP status code.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeNotAcceptable:
		return http.StatusNotAcceptable
	case CodeConflict:
		return http.StatusConflict
	case CodeGone:
		return http.StatusGone
	case CodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case CodeResourceExhausted:
		return http.StatusTooManyRequests
	case CodeCanceled:
		return 499
	case CodeNotImplemented:
		return http.StatusNotImplemented
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// CodeFromStatus maps an HTTP status code returned by a service to an ErrorCode.
func CodeFromStatus(status int) ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return CodeInvalidArgument
	case http.StatusUnauthorized:
		return CodeUnauthenticated
	case http.StatusForbidden:
		return CodePermissionDenied
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	case http.StatusNotAcceptable:
		return CodeNotAcceptable
	case http.StatusConflict:
		return CodeConflict
	case http.StatusGone:
		return CodeGone
	case http.StatusRequestEntityTooLarge:
		return CodeTooLarge
	case http.StatusUnsupportedMediaType:
		return CodeUnsupportedMedia
	case http.StatusTooManyRequests:
		return CodeResourceExhausted
	case 499:
		return CodeCanceled
	case http.StatusInternalServerError:
		return CodeInternal
	case http.StatusNotImplemented:
		return CodeNotImplemented
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return CodeUnavailable
	case http.StatusGatewayTimeout:
		return CodeDeadlineExceeded
	}
	return CodeUnknown
}

// IsNotFound reports whether err is a service error with status 404.
func IsNotFound(err error) bool {
	var svcErr *Error
	return errors.As(err, &svcErr) && svcErr.Code == CodeNotFound
}

// MissingArgumentError reports a required argument that was not provided.
// It is returned before any request is sent.
type MissingArgumentError struct {
	Field string
}

func (e *MissingArgumentError) Error() string {
	return e.Field + " must be provided"
}

// MissingPropertyError reports a required property absent from a response body.
type MissingPropertyError struct {
	Model    string
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("required property '%s' not present in %s JSON", e.Property, e.Model)
}

// argumentError converts validator failures on an options struct into
// MissingArgumentError values (for "required") or invalid_argument errors.
func argumentError(err error) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	errs := make([]error, 0, len(valErrs))
	for _, ve := range valErrs {
		if ve.Tag() == "required" {
			errs = append(errs, &MissingArgumentError{Field: ve.Field()})
			continue
		}
		errs = append(errs, Errorf(CodeInvalidArgument, "%s %s", ve.Field(), formatValidationError(ve)).
			WithDetail(ve.Field(), formatValidationError(ve)))
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// errorBody covers the error shapes returned across Watson services:
//
//	{"error": "msg", "code": 404, "code_description": "Not Found"}
//	{"error": {"message": "msg"}}
//	{"errors": [{"message": "msg"}]}
//	{"message": "msg"} / {"errorMessage": "msg"}
type errorBody struct {
	Error           json.RawMessage `json:"error"`
	Errors          []errorItem     `json:"errors"`
	Message         string          `json:"message"`
	ErrorMessage    string          `json:"errorMessage"`
	CodeDescription string          `json:"code_description"`
	Description     string          `json:"description"`
	Warnings        []any           `json:"warnings"`
}

type errorItem struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorFromResponse reads and closes resp.Body and returns the *Error it
// describes. It is used for responses that do not pass through
// Service.Request, such as a failed websocket handshake.
func ErrorFromResponse(resp *http.Response) *Error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	return decodeError(resp.StatusCode, resp.Header, body)
}

// decodeError builds an *Error from a non-2xx response.
func decodeError(status int, header http.Header, body []byte) *Error {
	svcErr := &Error{
		StatusCode: status,
		Code:       CodeFromStatus(status),
		Headers:    header,
		RawBody:    body,
	}

	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		svcErr.Message = eb.message()
		details := map[string]any{}
		if eb.CodeDescription != "" {
			details["code_description"] = eb.CodeDescription
		}
		if eb.Description != "" {
			details["description"] = eb.Description
		}
		if len(eb.Warnings) > 0 {
			details["warnings"] = eb.Warnings
		}
		if len(details) > 0 {
			svcErr.Details = details
		}
	}
	if svcErr.Message == "" {
		svcErr.Message = strings.TrimSpace(string(body))
	}
	if svcErr.Message == "" {
		svcErr.Message = http.StatusText(status)
	}
	if svcErr.Message == "" {
		svcErr.Message = "unknown error"
	}
	return svcErr
}

func (eb *errorBody) message() string {
	if len(eb.Error) > 0 {
		var s string
		if json.Unmarshal(eb.Error, &s) == nil && s != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(eb.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
	}
	if len(eb.Errors) > 0 && eb.Errors[0].Message != "" {
		return eb.Errors[0].Message
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.ErrorMessage
}
