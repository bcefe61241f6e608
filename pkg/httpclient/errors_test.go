package httpclient

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
)

func makeResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDecodeErrorBody(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantCode    string
		wantMessage string
	}{
		{"flask string", `{"error":"Invalid credentials"}`, "", "Invalid credentials"},
		{"structured", `{"error":{"code":"NOT_FOUND","message":"product not found"}}`, "NOT_FOUND", "product not found"},
		{"message only", `{"message":"User already exists"}`, "", "User already exists"},
		{"empty string error falls back", `{"error":"","message":"try later"}`, "", "try later"},
		{"not json", `<html>502</html>`, "", ""},
		{"empty", ``, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := decodeErrorBody([]byte(tc.body))
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantMessage, msg)
		})
	}
}

func TestParseResponseError_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"not found", http.StatusNotFound, apperrors.ErrNotFound},
		{"bad request", http.StatusBadRequest, apperrors.ErrInvalidInput},
		{"conflict", http.StatusConflict, apperrors.ErrConflict},
		{"unauthorized", http.StatusUnauthorized, apperrors.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, apperrors.ErrUnauthorized},
		{"unprocessable", http.StatusUnprocessableEntity, apperrors.ErrPaymentFailed},
		{"unavailable", http.StatusServiceUnavailable, apperrors.ErrServiceUnavail},
		{"server error", http.StatusInternalServerError, apperrors.ErrRemote},
		{"teapot", http.StatusTeapot, apperrors.ErrRemote},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ParseResponseError(makeResponse(tc.status, `{"error":"boom"}`), "api")
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
			assert.Equal(t, "boom", appErr.Message)
			assert.True(t, errors.Is(err, tc.sentinel))
		})
	}
}

func TestParseResponseError_UnknownStatusKeepsCode(t *testing.T) {
	body := `{"error":{"code":"RATE_LIMITED","message":"slow down"}}`
	err := ParseResponseError(makeResponse(http.StatusTooManyRequests, body), "api")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "RATE_LIMITED", appErr.Code)
	assert.Equal(t, http.StatusTooManyRequests, appErr.Status)
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("initiate payment: %w", &StatusError{
		StatusCode: http.StatusInternalServerError,
		Body:       []byte(`{"error":"Phone number is required"}`),
	})
	err := AsAppError(wrapped, "api")
	assert.Equal(t, "Phone number is required", apperrors.UserMessage(err, "fallback"))
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))

	open := AsAppError(ErrCircuitOpen, "api")
	assert.True(t, errors.Is(open, apperrors.ErrServiceUnavail))

	plain := errors.New("dial tcp: refused")
	assert.Equal(t, plain, AsAppError(plain, "api"))
}

func TestStatusError_Error(t *testing.T) {
	err := &StatusError{StatusCode: 500, Body: []byte("oops")}
	assert.Equal(t, "server error 500: oops", err.Error())
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(400))
	assert.True(t, IsClientError(499))
	assert.False(t, IsClientError(500))
	assert.False(t, IsClientError(200))
}
