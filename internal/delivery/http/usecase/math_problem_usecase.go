package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mathquiz/mathquiz-be/internal/delivery/http/entity"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/repository"
	internalEntity "github.com/mathquiz/mathquiz-be/internal/entity"
	"github.com/mathquiz/mathquiz-be/internal/pkg/corpus"
	"github.com/mathquiz/mathquiz-be/internal/pkg/llm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var (
	// ErrSessionNotFound - grading or listing referenced a session that does
	// not exist (or the store could not be read).
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionNotPersisted - the problem was generated but the session row
	// could not be written. The generated content is still returned; grading
	// will be impossible for that problem instance.
	ErrSessionNotPersisted = errors.New("session not persisted")

	// ErrInvalidAnswer - the submitted answer is not a finite number.
	ErrInvalidAnswer = errors.New("user answer is not a valid number")
)

type MathProblemUsecase interface {
	CreateProblem(ctx context.Context, req entity.GenerateProblemRequest) (*entity.GenerateProblemResponse, error)
	GradeSubmission(ctx context.Context, req entity.SubmitAnswerRequest) (*entity.SubmitAnswerResponse, error)
	GetSessionSubmissions(ctx context.Context, sessionID string) ([]entity.SubmissionLog, error)
}

type MathProblemConfig struct {
	DB         *gorm.DB
	Repository repository.MathProblemRepository

	// Generator and Grader are retry-wrapped providers: five attempts for
	// problem generation, three for feedback.
	Generator llm.Provider
	Grader    llm.Provider

	// Corpus is the optional reference-content collaborator. Nil means the
	// capability is absent; generation proceeds without enrichment.
	Corpus corpus.Corpus

	Log    *logrus.Logger
	Config *viper.Viper

	PromptTemplate string
}

type mathProblemUsecase struct {
	cfg MathProblemConfig
}

func NewMathProblemUsecase(cfg MathProblemConfig) MathProblemUsecase {
	if cfg.PromptTemplate == "" {
		cfg.PromptTemplate = defaultPromptTemplate
	}
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &mathProblemUsecase{cfg: cfg}
}

// problemShape is the required output shape for problem generation.
var problemShape = &llm.Shape{
	Name: "math-problem",
	Fields: []llm.Field{
		{Name: "problem_text", Type: llm.FieldString, Description: "The math word problem description."},
		{Name: "final_answer", Type: llm.FieldNumber, Description: "The single, numerical final answer."},
		{Name: "hint_text", Type: llm.FieldString, Description: "A short, helpful hint for the user."},
		{Name: "step_by_step_solution", Type: llm.FieldStringArray, Description: "Each step of the detailed solution in order."},
	},
}

// feedbackShape is the required output shape for grading feedback.
var feedbackShape = &llm.Shape{
	Name: "grading-feedback",
	Fields: []llm.Field{
		{Name: "feedback_text", Type: llm.FieldString, Description: "Personalized feedback and encouragement."},
		{Name: "explanation_hint", Type: llm.FieldString, Description: "A brief hint or explanation of the next step, if incorrect, or a brief affirmation if correct."},
	},
}

func (u *mathProblemUsecase) CreateProblem(ctx context.Context, req entity.GenerateProblemRequest) (*entity.GenerateProblemResponse, error) {
	syllabusContext := u.syllabusContext(ctx)

	system := u.cfg.PromptTemplate
	system = strings.ReplaceAll(system, "{{difficulty}}", req.Difficulty)
	system = strings.ReplaceAll(system, "{{problemType}}", req.ProblemType)
	system = strings.ReplaceAll(system, "{{syllabusContext}}", syllabusInstruction(syllabusContext))

	userQuery := fmt.Sprintf("Generate a new word problem of %s difficulty focused on %s.", req.Difficulty, req.ProblemType)

	raw, err := u.cfg.Generator.Generate(ctx, llm.Request{
		System: system,
		User:   userQuery,
		Shape:  problemShape,
	})
	if err != nil {
		return nil, fmt.Errorf("generate math problem: %w", err)
	}

	var problem entity.GeneratedProblem
	if err := json.Unmarshal(raw, &problem); err != nil {
		return nil, fmt.Errorf("decode generated problem: %w", err)
	}

	resp := &entity.GenerateProblemResponse{
		ProblemText:        problem.ProblemText,
		FinalAnswer:        problem.FinalAnswer,
		Difficulty:         req.Difficulty,
		ProblemType:        req.ProblemType,
		HintText:           problem.HintText,
		StepByStepSolution: problem.StepByStepSolution,
	}

	// The session row is only written once a fully-validated result exists.
	session := &internalEntity.MathProblemSession{
		ProblemText:   problem.ProblemText,
		CorrectAnswer: problem.FinalAnswer,
	}
	if err := u.cfg.Repository.CreateSession(u.cfg.DB, session); err != nil {
		u.cfg.Log.Errorf("failed to save session: %v", err)
		return resp, ErrSessionNotPersisted
	}

	resp.SessionID = session.ID
	return resp, nil
}

func (u *mathProblemUsecase) GradeSubmission(ctx context.Context, req entity.SubmitAnswerRequest) (*entity.SubmitAnswerResponse, error) {
	answer, err := parseAnswer(req.UserAnswer)
	if err != nil {
		return nil, ErrInvalidAnswer
	}

	session, err := u.cfg.Repository.FindSessionByID(u.cfg.DB, req.SessionID)
	if err != nil {
		// A read failure and a missing row are the same to the caller:
		// there is nothing to grade against.
		return nil, ErrSessionNotFound
	}

	// Exact equality, no tolerance. Integer and simple-decimal answers are
	// expected to match exactly.
	isCorrect := answer == session.CorrectAnswer

	feedback := u.generateFeedback(ctx, session.ProblemText, session.CorrectAnswer, answer, isCorrect)

	// The submission is recorded unconditionally once the verdict exists,
	// even when feedback degraded to the fallback. A write failure must not
	// change the caller's result.
	submission := &internalEntity.MathProblemSubmission{
		SessionID:    req.SessionID,
		UserAnswer:   answer,
		IsCorrect:    isCorrect,
		FeedbackText: strings.TrimSpace(feedback.FeedbackText + " " + feedback.ExplanationHint),
	}
	if err := u.cfg.Repository.CreateSubmission(u.cfg.DB, submission); err != nil {
		u.cfg.Log.Errorf("failed to save submission for session %s: %v", req.SessionID, err)
	}

	return &entity.SubmitAnswerResponse{
		IsCorrect:       isCorrect,
		FeedbackText:    feedback.FeedbackText,
		ExplanationHint: feedback.ExplanationHint,
	}, nil
}

func (u *mathProblemUsecase) GetSessionSubmissions(_ context.Context, sessionID string) ([]entity.SubmissionLog, error) {
	if _, err := u.cfg.Repository.FindSessionByID(u.cfg.DB, sessionID); err != nil {
		return nil, ErrSessionNotFound
	}

	submissions, err := u.cfg.Repository.FindSubmissionsBySessionID(u.cfg.DB, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session submissions: %w", err)
	}

	logs := make([]entity.SubmissionLog, 0, len(submissions))
	for _, s := range submissions {
		logs = append(logs, entity.SubmissionLog{
			ID:           s.ID,
			SessionID:    s.SessionID,
			UserAnswer:   s.UserAnswer,
			IsCorrect:    s.IsCorrect,
			FeedbackText: s.FeedbackText,
			CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		})
	}
	return logs, nil
}

// generateFeedback asks the grader model for personalized feedback and falls
// back to fixed wording when retries are exhausted. A missing explanation is
// not fatal to recording the grade.
func (u *mathProblemUsecase) generateFeedback(ctx context.Context, problemText string, correctAnswer, userAnswer float64, isCorrect bool) entity.GeneratedFeedback {
	userQuery := fmt.Sprintf(`The original problem was: %q
The correct answer is: %s
The user submitted the answer: %s

Based on this, tell the student if they were correct or incorrect, and provide a constructive hint or encouragement.`,
		problemText,
		formatNumber(correctAnswer),
		formatNumber(userAnswer),
	)

	raw, err := u.cfg.Grader.Generate(ctx, llm.Request{
		System: feedbackSystemPrompt,
		User:   userQuery,
		Shape:  feedbackShape,
	})
	if err != nil {
		u.cfg.Log.Warnf("feedback generation failed, using fallback: %v", err)
		return fallbackFeedback(isCorrect)
	}

	var feedback entity.GeneratedFeedback
	if err := json.Unmarshal(raw, &feedback); err != nil {
		u.cfg.Log.Warnf("failed to decode feedback, using fallback: %v", err)
		return fallbackFeedback(isCorrect)
	}
	return feedback
}

func fallbackFeedback(isCorrect bool) entity.GeneratedFeedback {
	if isCorrect {
		return entity.GeneratedFeedback{FeedbackText: "🎉 Great job! The backend confirmed your answer is correct."}
	}
	return entity.GeneratedFeedback{FeedbackText: "❌ Your answer was incorrect. Keep trying!"}
}

// syllabusContext fetches reference content to enrich the prompt. Best
// effort only: an absent corpus or a failed lookup degrades to an empty or
// placeholder context string.
func (u *mathProblemUsecase) syllabusContext(ctx context.Context) string {
	if u.cfg.Corpus == nil || u.cfg.Config == nil {
		return ""
	}

	url := u.cfg.Config.GetString("syllabus.url")
	if url == "" {
		return ""
	}

	docs, err := u.cfg.Corpus.LookupURLs(ctx, []string{url})
	if err != nil {
		u.cfg.Log.Warnf("failed to fetch syllabus: %v", err)
		return "Syllabus context could not be loaded."
	}
	if len(docs) == 0 || docs[0].Content == "" {
		return "Syllabus context could not be loaded."
	}

	maxChars := u.cfg.Config.GetInt("syllabus.max_context_chars")
	if maxChars <= 0 {
		maxChars = 5000
	}
	return corpus.Truncate(docs[0].Content, maxChars)
}

func syllabusInstruction(syllabusContext string) string {
	if syllabusContext == "" {
		return ""
	}
	return fmt.Sprintf(`

[SYLLABUS CONTEXT]: Use the following syllabus information/topics as context to make the word problem relevant to the course content, ensuring the problem remains suitable for a 5th-grade level.
Content: %s`, syllabusContext)
}

// parseAnswer accepts the JSON representations a client may submit for a
// numeric answer and rejects anything that is not a finite number.
func parseAnswer(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	default:
		return 0, fmt.Errorf("unsupported answer type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("answer is not finite")
	}
	return f, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

const defaultPromptTemplate = `You are a math problem generator. Generate a single word problem that is {{difficulty}} difficulty, suitable for a 5th-grade student, and primarily focuses on {{problemType}} while potentially including one other basic arithmetic operation.
{{syllabusContext}}

You MUST provide the problem, the exact final numerical answer, a simple but helpful hint and detailed step by step solution.
The response MUST be a single JSON object matching the provided schema.

Make sure "step_by_step_solution" is an ARRAY of short strings, each one showing the required mathematical operation and result for that step (the 'jalan kerja').
Example (for a problem where you add 10, subtract 5, then multiply by 2):
"step_by_step_solution": [
    "1. Start by finding the total: 10 + 5 = 15",
    "2. Find the remaining amount: 15 - 5 = 10",
    "3. Calculate the final value: 10 * 2 = 20"
]`

const feedbackSystemPrompt = `You are a friendly and encouraging math tutor. Provide personalized feedback to the student based on their answer. Keep the feedback concise but helpful. The response MUST be a single JSON object matching the provided schema.`
