package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/entity"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/usecase"
	"github.com/mathquiz/mathquiz-be/internal/pkg/validate"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUsecase lets each test script the usecase outcome directly.
type stubUsecase struct {
	createProblem   func(context.Context, entity.GenerateProblemRequest) (*entity.GenerateProblemResponse, error)
	gradeSubmission func(context.Context, entity.SubmitAnswerRequest) (*entity.SubmitAnswerResponse, error)
	getSubmissions  func(context.Context, string) ([]entity.SubmissionLog, error)
}

func (s *stubUsecase) CreateProblem(ctx context.Context, req entity.GenerateProblemRequest) (*entity.GenerateProblemResponse, error) {
	return s.createProblem(ctx, req)
}

func (s *stubUsecase) GradeSubmission(ctx context.Context, req entity.SubmitAnswerRequest) (*entity.SubmitAnswerResponse, error) {
	return s.gradeSubmission(ctx, req)
}

func (s *stubUsecase) GetSessionSubmissions(ctx context.Context, sessionID string) ([]entity.SubmissionLog, error) {
	return s.getSubmissions(ctx, sessionID)
}

func newTestApp(u usecase.MathProblemUsecase) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	h := NewMathProblemHandler(validate.NewValidator(), logger, u)

	app := fiber.New()
	group := app.Group("/api/math-problem")
	group.Post("/", h.Generate)
	group.Post("/submit", h.SubmitAnswer)
	group.Get("/sessions/:session_id/submissions", h.GetSessionSubmissions)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestGenerateReturnsProblem(t *testing.T) {
	app := newTestApp(&stubUsecase{
		createProblem: func(_ context.Context, req entity.GenerateProblemRequest) (*entity.GenerateProblemResponse, error) {
			return &entity.GenerateProblemResponse{
				ProblemText:        "What is 2 + 3?",
				FinalAnswer:        5,
				SessionID:          "abc-123",
				Difficulty:         req.Difficulty,
				ProblemType:        req.ProblemType,
				HintText:           "Count up from two.",
				StepByStepSolution: []string{"1. 2 + 3 = 5"},
			}, nil
		},
	})

	resp := postJSON(t, app, "/api/math-problem", fiber.Map{
		"difficulty":  "easy",
		"problemType": "addition",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, "abc-123", body["session_id"])
	assert.Equal(t, "easy", body["difficulty"])
	assert.Equal(t, float64(5), body["final_answer"])
}

func TestGenerateRejectsInvalidDifficulty(t *testing.T) {
	app := newTestApp(&stubUsecase{})

	resp := postJSON(t, app, "/api/math-problem", fiber.Map{
		"difficulty":  "impossible",
		"problemType": "addition",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeJSON(t, resp)
	fields, ok := body["error"].(map[string]any)
	require.True(t, ok, "validation failures carry per-field detail")
	assert.Contains(t, fields, "difficulty")
}

func TestGenerateDegradedWhenSessionNotPersisted(t *testing.T) {
	app := newTestApp(&stubUsecase{
		createProblem: func(_ context.Context, _ entity.GenerateProblemRequest) (*entity.GenerateProblemResponse, error) {
			return &entity.GenerateProblemResponse{
				ProblemText: "What is 2 + 3?",
				FinalAnswer: 5,
			}, usecase.ErrSessionNotPersisted
		},
	})

	resp := postJSON(t, app, "/api/math-problem", fiber.Map{
		"difficulty":  "easy",
		"problemType": "addition",
	})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, "What is 2 + 3?", body["problem_text"])
	assert.Equal(t, float64(5), body["final_answer"])
	assert.NotEmpty(t, body["error"])
	assert.NotContains(t, body, "session_id")
}

func TestSubmitAnswerGraded(t *testing.T) {
	app := newTestApp(&stubUsecase{
		gradeSubmission: func(_ context.Context, req entity.SubmitAnswerRequest) (*entity.SubmitAnswerResponse, error) {
			return &entity.SubmitAnswerResponse{
				IsCorrect:       true,
				FeedbackText:    "Correct!",
				ExplanationHint: "5 is the sum.",
			}, nil
		},
	})

	resp := postJSON(t, app, "/api/math-problem/submit", fiber.Map{
		"session_id":  "abc-123",
		"user_answer": 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, true, body["is_correct"])
	assert.Equal(t, "Correct!", body["feedback_text"])
}

func TestSubmitAnswerStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid answer", usecase.ErrInvalidAnswer, http.StatusBadRequest},
		{"unknown session", usecase.ErrSessionNotFound, http.StatusNotFound},
		{"upstream failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubUsecase{
				gradeSubmission: func(_ context.Context, _ entity.SubmitAnswerRequest) (*entity.SubmitAnswerResponse, error) {
					return nil, tt.err
				},
			})

			resp := postJSON(t, app, "/api/math-problem/submit", fiber.Map{
				"session_id":  "abc-123",
				"user_answer": "whatever",
			})
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decodeJSON(t, resp)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSubmitAnswerRequiresSessionID(t *testing.T) {
	app := newTestApp(&stubUsecase{})

	resp := postJSON(t, app, "/api/math-problem/submit", fiber.Map{
		"user_answer": 5,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetSessionSubmissions(t *testing.T) {
	app := newTestApp(&stubUsecase{
		getSubmissions: func(_ context.Context, sessionID string) ([]entity.SubmissionLog, error) {
			if sessionID != "abc-123" {
				return nil, usecase.ErrSessionNotFound
			}
			return []entity.SubmissionLog{
				{ID: 2, SessionID: sessionID, UserAnswer: 7, IsCorrect: false, FeedbackText: "Not quite."},
				{ID: 1, SessionID: sessionID, UserAnswer: 5, IsCorrect: true, FeedbackText: "Correct!"},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/math-problem/sessions/abc-123/submissions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	var logs []entity.SubmissionLog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&logs))
	require.Len(t, logs, 2)
	assert.Equal(t, uint(2), logs[0].ID)

	missing := httptest.NewRequest(http.MethodGet, "/api/math-problem/sessions/nope/submissions", nil)
	respMissing, err := app.Test(missing)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, respMissing.StatusCode)
}
