package response

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mathquiz/mathquiz-be/internal/pkg/validate"

	"github.com/sirupsen/logrus"
)

// Response is the error body for every endpoint: a single "error" member.
// Success responses are bare payloads and don't go through this type.
type Response struct {
	StatusCode int `json:"-"`
	Error      any `json:"error"`
}

func NewInternalServerError() *Response {
	res := &Response{
		Error:      "Internal Server Error",
		StatusCode: fiber.StatusInternalServerError,
	}
	return res
}

func NewFailed(msg string, err error, logger *logrus.Logger) *Response {
	res := &Response{
		Error:      msg,
		StatusCode: fiber.StatusInternalServerError,
	}

	if e, ok := err.(*fiber.Error); ok {
		res.StatusCode = e.Code
		if e.Message != "" {
			res.Error = e.Message
		}
	} else if errors, ok := err.(*validate.FieldsError); ok {
		res.StatusCode = fiber.StatusBadRequest
		res.Error = errors.Fields
	}

	if logger != nil && res.StatusCode >= fiber.StatusInternalServerError {
		logger.Error(err)
	}

	return res
}

func (r *Response) Send(ctx *fiber.Ctx) error {
	return ctx.Status(r.StatusCode).JSON(r)
}
