package response

import (
	"encoding/json"
	"errors"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"hotelbook/shared/logger"
	"net/http"
)

type Data[T any] struct {
	Success bool `json:"success"`
	Data    *T   `json:"data,omitempty"`
}

type Error struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Reason  failure.Reason `json:"reason,omitempty"`
}

type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// WithMessage sends a successful response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Success: true, Message: message})
}

// WithJSON sends a successful response containing a JSON object
func WithJSON[T any](writer http.ResponseWriter, code int, payload T) {
	response(writer, code, Data[T]{Success: true, Data: &payload})
}

// WithError sends a failure response. Errors that are not a failure.Failure never leak their
// text to the client.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if !errors.As(err, &fail) {
		logger.ErrorWithStack(err)

		response(writer, http.StatusInternalServerError, Error{
			Message: constant.ResponseErrorInternal,
			Reason:  failure.ReasonInternal,
		})

		return
	}

	response(writer, fail.Code, Error{Message: fail.Message, Reason: fail.Reason})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	response(writer, http.StatusTooManyRequests, Error{Message: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Error{Message: constant.ResponseErrorPrepareShutdown})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Error{Message: constant.ResponseErrorUnhealthy})
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
