package entity

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type ProblemType string

const (
	ProblemTypeAddition       ProblemType = "addition"
	ProblemTypeSubtraction    ProblemType = "subtraction"
	ProblemTypeMultiplication ProblemType = "multiplication"
	ProblemTypeDivision       ProblemType = "division"
)

// Request untuk generate soal baru
type GenerateProblemRequest struct {
	Difficulty  string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	ProblemType string `json:"problemType" validate:"required,oneof=addition subtraction multiplication division"`
}

// GeneratedProblem is the validated model output for one generation call.
// Only problem_text and final_answer survive into the session row.
type GeneratedProblem struct {
	ProblemText        string   `json:"problem_text"`
	FinalAnswer        float64  `json:"final_answer"`
	HintText           string   `json:"hint_text"`
	StepByStepSolution []string `json:"step_by_step_solution"`
}

// Response untuk generate soal
type GenerateProblemResponse struct {
	ProblemText        string   `json:"problem_text"`
	FinalAnswer        float64  `json:"final_answer"`
	SessionID          string   `json:"session_id,omitempty"`
	Difficulty         string   `json:"difficulty"`
	ProblemType        string   `json:"problem_type"`
	HintText           string   `json:"hint_text"`
	StepByStepSolution []string `json:"step_by_step_solution"`
}

// Request untuk submit jawaban. UserAnswer accepts a JSON number or a
// numeric string; parsing happens in the usecase.
type SubmitAnswerRequest struct {
	SessionID  string `json:"session_id" validate:"required"`
	UserAnswer any    `json:"user_answer" validate:"required"`
}

// GeneratedFeedback is the validated model output for one grading call.
type GeneratedFeedback struct {
	FeedbackText    string `json:"feedback_text"`
	ExplanationHint string `json:"explanation_hint"`
}

// Response untuk submit jawaban
type SubmitAnswerResponse struct {
	IsCorrect       bool   `json:"is_correct"`
	FeedbackText    string `json:"feedback_text"`
	ExplanationHint string `json:"explanation_hint"`
}

// Submission log untuk session
type SubmissionLog struct {
	ID           uint    `json:"id"`
	SessionID    string  `json:"session_id"`
	UserAnswer   float64 `json:"user_answer"`
	IsCorrect    bool    `json:"is_correct"`
	FeedbackText string  `json:"feedback_text"`
	CreatedAt    string  `json:"created_at"`
}
