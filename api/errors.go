package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"gitlab.com/system76/power-management-service/graphics"
)

type ProblemDetail struct {
	Type     string        `json:"type,omitempty" validate:"uri"`
	Status   int           `json:"status,omitempty"`
	Title    string        `json:"title,omitempty"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty" validate:"uri"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

type ErrorDetail struct {
	Detail  string `json:"detail"`
	Pointer string `json:"pointer"`
}

type ProblemOption func(*ProblemDetail)

func NewProblemDetail(options ...ProblemOption) ProblemDetail {
	problem := ProblemDetail{}
	for _, option := range options {
		option(&problem)
	}
	return problem
}

func WithStatus(s int) ProblemOption {
	return func(p *ProblemDetail) {
		p.Status = s
	}
}

func WithTitle(t string) ProblemOption {
	return func(p *ProblemDetail) {
		p.Title = t
	}
}

func WithDetail(d string) ProblemOption {
	return func(p *ProblemDetail) {
		p.Detail = d
	}
}

func WithErrors(e []ErrorDetail) ProblemOption {
	return func(p *ProblemDetail) {
		p.Errors = e
	}
}

func NewValidationProblem(e error) ProblemDetail {
	return NewProblemDetail(
		WithStatus(http.StatusBadRequest),
		WithTitle("Input Validation Error"),
		WithDetail("Your request body has invalid parameters."),
		WithErrors(readableErrors(e)),
	)
}

func NewEmptyBodyProblem() ProblemDetail {
	return NewProblemDetail(
		WithStatus(http.StatusBadRequest),
		WithTitle("Empty Request Body"),
		WithDetail("Your request did not include a body."),
	)
}

func readableErrors(err error) []ErrorDetail {
	var errors []ErrorDetail
	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			var detail, pointer string
			switch e.Tag() {
			case "required":
				detail = "is required"
			case "oneof":
				detail = "is not one of the allowed values"
			default:
				detail = "is invalid"
			}
			pointer = "#/" + strings.ToLower(e.Field())
			errors = append(errors, ErrorDetail{Detail: detail, Pointer: pointer})
		}
	}
	return errors
}

// graphicsStatus maps the graphics error taxonomy onto HTTP statuses.
// Not-switchable and device-in-use are conflicts with the hardware state
// rather than server faults.
func graphicsStatus(err error) int {
	var gerr *graphics.Error
	if errors.As(err, &gerr) {
		switch gerr.Kind {
		case graphics.ErrNotSwitchable, graphics.ErrDeviceInUse:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}
