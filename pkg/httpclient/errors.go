package httpclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
)

const maxErrorBody = 1 << 20

// StatusError is a non-2xx response whose body has already been read.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.StatusCode, string(e.Body))
}

// errorPayload accepts both error shapes seen from the storefront API:
// {"error": "message"} and {"error": {"code": "...", "message": "..."}}.
// A bare {"message": "..."} is read as a fallback.
type errorPayload struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type structuredError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeErrorBody returns the code and human readable message in body, if any.
func decodeErrorBody(body []byte) (code, message string) {
	var payload errorPayload
	if json.Unmarshal(body, &payload) != nil {
		return "", ""
	}

	raw := bytes.TrimSpace(payload.Error)
	switch {
	case len(raw) > 0 && raw[0] == '"':
		_ = json.Unmarshal(raw, &message)
	case len(raw) > 0 && raw[0] == '{':
		var se structuredError
		if json.Unmarshal(raw, &se) == nil {
			code, message = se.Code, se.Message
		}
	}
	if message == "" {
		message = payload.Message
	}
	return code, message
}

// ParseResponseError reads the body of a non-2xx response and translates it
// into an AppError. The body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}
	return DecodeError(resp.StatusCode, body, serviceName)
}

// AsAppError converts a transport level error into an AppError. A *StatusError
// from the circuit breaker is decoded like any other error response; an open
// breaker becomes ServiceUnavailable. Other errors are returned unchanged.
func AsAppError(err error, serviceName string) error {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return DecodeError(statusErr.StatusCode, statusErr.Body, serviceName)
	case errors.Is(err, ErrCircuitOpen):
		return apperrors.ServiceUnavailable(serviceName + " is temporarily unavailable")
	default:
		return err
	}
}

// DecodeError maps a status code and error body to an AppError, keeping the
// server's message so it can be shown to the shopper.
func DecodeError(status int, body []byte, serviceName string) error {
	code, message := decodeErrorBody(body)
	return mapDownstreamError(status, code, message, serviceName)
}

func mapDownstreamError(status int, code, message, serviceName string) error {
	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{Code: "NOT_FOUND", Message: message, Status: status, Err: apperrors.ErrNotFound}
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case status == http.StatusConflict:
		return apperrors.Conflict(message)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return apperrors.Unauthorized(message)
	case status == http.StatusUnprocessableEntity:
		return apperrors.PaymentFailed(message)
	case status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(message)
	case status >= 500:
		return apperrors.Remote(status, message)
	default:
		if code == "" {
			code = "REMOTE_ERROR"
		}
		return &apperrors.AppError{
			Code:    code,
			Message: message,
			Status:  status,
			Err:     fmt.Errorf("%s returned status %d: %w", serviceName, status, apperrors.ErrRemote),
		}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
