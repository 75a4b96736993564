package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/domain"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/entity"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/usecase"
	"github.com/mathquiz/mathquiz-be/internal/pkg/response"
	"github.com/mathquiz/mathquiz-be/internal/pkg/validate"
	"github.com/sirupsen/logrus"
)

type (
	MathProblemHandler interface {
		Generate(ctx *fiber.Ctx) error
		SubmitAnswer(ctx *fiber.Ctx) error
		GetSessionSubmissions(ctx *fiber.Ctx) error
	}

	mathProblemHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.MathProblemUsecase
	}
)

func NewMathProblemHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.MathProblemUsecase) MathProblemHandler {
	return &mathProblemHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// badRequest maps body-parse errors to 400 while letting field-validation
// errors keep their per-field detail.
func badRequest(err error) error {
	if fieldsErr, ok := err.(*validate.FieldsError); ok {
		return fieldsErr
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

// POST /api/math-problem
func (h *mathProblemHandler) Generate(ctx *fiber.Ctx) error {
	var req entity.GenerateProblemRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.MATH_PROBLEM_INVALID_BODY, badRequest(err), h.logger).Send(ctx)
	}

	result, err := h.usecase.CreateProblem(ctx.UserContext(), req)
	if err != nil {
		// Degraded success: the problem exists but the session row does
		// not, so the caller gets the content with no session_id.
		if errors.Is(err, usecase.ErrSessionNotPersisted) && result != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"problem_text": result.ProblemText,
				"final_answer": result.FinalAnswer,
				"error":        domain.MATH_PROBLEM_SAVE_SESSION_FAILED,
			})
		}
		return response.NewFailed(domain.MATH_PROBLEM_GENERATE_FAILED, err, h.logger).Send(ctx)
	}

	return ctx.Status(fiber.StatusOK).JSON(result)
}

// POST /api/math-problem/submit
func (h *mathProblemHandler) SubmitAnswer(ctx *fiber.Ctx) error {
	var req entity.SubmitAnswerRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.MATH_PROBLEM_MISSING_SUBMISSION, badRequest(err), h.logger).Send(ctx)
	}

	result, err := h.usecase.GradeSubmission(ctx.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidAnswer):
			return response.NewFailed(domain.MATH_PROBLEM_INVALID_ANSWER, fiber.NewError(fiber.StatusBadRequest, domain.MATH_PROBLEM_INVALID_ANSWER), h.logger).Send(ctx)
		case errors.Is(err, usecase.ErrSessionNotFound):
			return response.NewFailed(domain.MATH_PROBLEM_SESSION_NOT_FOUND, fiber.NewError(fiber.StatusNotFound, domain.MATH_PROBLEM_SESSION_NOT_FOUND), h.logger).Send(ctx)
		default:
			return response.NewFailed(domain.MATH_PROBLEM_SUBMIT_FAILED, err, h.logger).Send(ctx)
		}
	}

	return ctx.Status(fiber.StatusOK).JSON(result)
}

// GET /api/math-problem/sessions/:session_id/submissions
func (h *mathProblemHandler) GetSessionSubmissions(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return response.NewFailed(domain.MATH_PROBLEM_MISSING_SUBMISSION, fiber.NewError(fiber.StatusBadRequest, "session_id is required"), h.logger).Send(ctx)
	}

	submissions, err := h.usecase.GetSessionSubmissions(ctx.UserContext(), sessionID)
	if err != nil {
		if errors.Is(err, usecase.ErrSessionNotFound) {
			return response.NewFailed(domain.MATH_PROBLEM_SESSION_NOT_FOUND, fiber.NewError(fiber.StatusNotFound, domain.MATH_PROBLEM_SESSION_NOT_FOUND), h.logger).Send(ctx)
		}
		return response.NewFailed(domain.MATH_PROBLEM_SUBMIT_FAILED, err, h.logger).Send(ctx)
	}

	return ctx.Status(fiber.StatusOK).JSON(submissions)
}
