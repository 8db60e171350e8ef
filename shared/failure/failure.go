package failure

import (
	"errors"
	"net/http"
)

// Reason is a machine readable discriminator clients branch on instead of the message text.
type Reason string

const (
	ReasonValidation             Reason = "validation"
	ReasonInvalidDateRange       Reason = "invalid_date_range"
	ReasonUnauthorized           Reason = "unauthorized"
	ReasonForbidden              Reason = "forbidden"
	ReasonNotFound               Reason = "not_found"
	ReasonRoomNotFound           Reason = "room_not_found"
	ReasonBookingNotFound        Reason = "booking_not_found"
	ReasonConflict               Reason = "conflict"
	ReasonRoomUnavailable        Reason = "room_unavailable"
	ReasonHotelAlreadyRegistered Reason = "hotel_already_registered"
	ReasonBookingAlreadyPaid     Reason = "booking_already_paid"
	ReasonNeedsHotelRegistration Reason = "needs_hotel_registration"
	ReasonInvalidSignature       Reason = "invalid_signature"
	ReasonInternal               Reason = "internal"
	ReasonUnimplemented          Reason = "unimplemented"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  Reason `json:"reason,omitempty"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter", Reason: ReasonValidation}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter", Reason: ReasonValidation}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions", Reason: ReasonForbidden}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource", Reason: ReasonForbidden}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// New returns a Failure carrying an explicit reason.
func New(code int, reason Reason, message string) error {
	return &Failure{
		Code:    code,
		Message: message,
		Reason:  reason,
	}
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Reason:  ReasonValidation,
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Reason:  ReasonValidation,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
		Reason:  ReasonUnauthorized,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
			Reason:  ReasonInternal,
		}
	}

	return nil
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return &Failure{
		Code:    http.StatusNotImplemented,
		Message: methodName,
		Reason:  ReasonUnimplemented,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
		Reason:  ReasonNotFound,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
		Reason:  ReasonConflict,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
		Reason:  ReasonForbidden,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the reason of an error interface, or ReasonInternal for non failures.
func GetReason(err error) Reason {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ReasonInternal
}

// Is reports whether err is a Failure with the given reason.
func Is(err error, reason Reason) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Reason == reason
}
