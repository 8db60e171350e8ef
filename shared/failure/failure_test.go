package failure_test

import (
	"errors"
	"fmt"
	"hotelbook/shared/failure"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		reason  failure.Reason
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("guests must be positive")),
			code:    http.StatusBadRequest,
			reason:  failure.ReasonValidation,
			message: "guests must be positive",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("roomId is required"),
			code:    http.StatusBadRequest,
			reason:  failure.ReasonValidation,
			message: "roomId is required",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			reason:  failure.ReasonUnauthorized,
			message: "token expired",
		},
		{
			name:    "not found",
			err:     failure.NotFound("booking not found"),
			code:    http.StatusNotFound,
			reason:  failure.ReasonNotFound,
			message: "booking not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("already exists"),
			code:    http.StatusConflict,
			reason:  failure.ReasonConflict,
			message: "already exists",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("not your room"),
			code:    http.StatusForbidden,
			reason:  failure.ReasonForbidden,
			message: "not your room",
		},
		{
			name:    "explicit reason",
			err:     failure.New(http.StatusConflict, failure.ReasonRoomUnavailable, "Room is not available"),
			code:    http.StatusConflict,
			reason:  failure.ReasonRoomUnavailable,
			message: "Room is not available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure
			if !errors.As(tt.err, &f) {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, f.Code)
			}

			if f.Reason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, f.Reason)
			}

			if f.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, f.Error())
			}
		})
	}
}

func TestNilPassthrough(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	if err := failure.InternalError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestGetCodeAndReason(t *testing.T) {
	wrapped := fmt.Errorf("creating booking: %w", failure.New(http.StatusBadRequest, failure.ReasonInvalidDateRange, "bad range"))

	if code := failure.GetCode(wrapped); code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, code)
	}

	if reason := failure.GetReason(wrapped); reason != failure.ReasonInvalidDateRange {
		t.Errorf("expected %q, got %q", failure.ReasonInvalidDateRange, reason)
	}

	if !failure.Is(wrapped, failure.ReasonInvalidDateRange) {
		t.Error("expected Is to match the wrapped reason")
	}

	plain := errors.New("connection reset")

	if code := failure.GetCode(plain); code != http.StatusInternalServerError {
		t.Errorf("expected %d, got %d", http.StatusInternalServerError, code)
	}

	if reason := failure.GetReason(plain); reason != failure.ReasonInternal {
		t.Errorf("expected %q, got %q", failure.ReasonInternal, reason)
	}

	if failure.Is(plain, failure.ReasonInternal) {
		t.Error("plain errors are not failures")
	}
}
