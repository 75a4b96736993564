package domain

var (
	MATH_PROBLEM_INVALID_BODY        = "Invalid JSON body."
	MATH_PROBLEM_GENERATE_FAILED     = "Failed to generate math problem after multiple retries."
	MATH_PROBLEM_SAVE_SESSION_FAILED = "Problem generated, but failed to save session to the database."
	MATH_PROBLEM_MISSING_SUBMISSION  = "Missing session_id or user_answer."
	MATH_PROBLEM_INVALID_ANSWER      = "User answer must be a valid number."
	MATH_PROBLEM_SESSION_NOT_FOUND   = "Session not found or database error."
	MATH_PROBLEM_SUBMIT_FAILED       = "An unexpected error occurred during submission processing."
)
