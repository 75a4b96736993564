package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"google.golang.org/genai"
)

func problemShape() *Shape {
	return &Shape{
		Name: "test-math-problem",
		Fields: []Field{
			{Name: "problem_text", Type: FieldString, Description: "The word problem."},
			{Name: "final_answer", Type: FieldNumber, Description: "The numerical answer."},
			{Name: "hint_text", Type: FieldString, Description: "A short hint."},
			{Name: "step_by_step_solution", Type: FieldStringArray, Description: "Ordered solution steps."},
		},
	}
}

func TestValidateShapeAccepts(t *testing.T) {
	raw := json.RawMessage(`{
		"problem_text": "Sam has 3 apples and buys 4 more. How many now?",
		"final_answer": 7,
		"hint_text": "Add the two amounts.",
		"step_by_step_solution": ["1. 3 + 4 = 7"]
	}`)
	if err := validateShape(problemShape(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateShapeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing field", `{"problem_text":"x","final_answer":7,"hint_text":"h"}`},
		{"answer not numeric", `{"problem_text":"x","final_answer":"7","hint_text":"h","step_by_step_solution":["s"]}`},
		{"steps not an array", `{"problem_text":"x","final_answer":7,"hint_text":"h","step_by_step_solution":"s"}`},
		{"steps not strings", `{"problem_text":"x","final_answer":7,"hint_text":"h","step_by_step_solution":[1,2]}`},
		{"not json", `the model apologizes`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateShape(problemShape(), json.RawMessage(tt.raw))
			if err == nil {
				t.Fatal("expected error")
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %v", err)
			}
		})
	}
}

func TestGenaiSchema(t *testing.T) {
	schema := problemShape().GenaiSchema()
	if schema.Type != genai.TypeObject {
		t.Fatalf("schema type = %v, want object", schema.Type)
	}
	if len(schema.Required) != 4 {
		t.Fatalf("required = %v, want 4 fields", schema.Required)
	}
	steps, ok := schema.Properties["step_by_step_solution"]
	if !ok {
		t.Fatal("step_by_step_solution missing from properties")
	}
	if steps.Type != genai.TypeArray || steps.Items == nil || steps.Items.Type != genai.TypeString {
		t.Fatal("step_by_step_solution must be an array of strings")
	}
	if schema.Properties["final_answer"].Type != genai.TypeNumber {
		t.Fatal("final_answer must be a number")
	}
}
