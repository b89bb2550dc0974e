// Package response defines the uniform JSON envelope returned by every
// handler: {"status":"OK","data":...} or {"status":"Error","error":"..."}.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

type OKResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func OKWithData(data any) OKResponse {
	return OKResponse{Status: StatusOK, Data: data}
}

func Error(msg string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Error: msg}
}

// ValidationError flattens validator violations into one human-readable
// message per offending field.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var msgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "uuid":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid uuid", err.Field()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("field %s must be a date in format YYYY-MM-DD", err.Field()))
		case "timeslot":
			msgs = append(msgs, fmt.Sprintf("field %s must be a time slot in format HH:MM-HH:MM", err.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return ErrorResponse{Status: StatusError, Error: strings.Join(msgs, ", ")}
}
