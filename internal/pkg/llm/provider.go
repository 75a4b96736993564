package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over a generative endpoint. A call sends a
// system instruction and a user instruction and receives JSON conforming to
// the requested response shape.
type Provider interface {
	// Generate issues one request. When req.Shape is set, the returned
	// payload has already been validated against it; a well-formed HTTP
	// response whose body fails shape validation is returned as an error.
	Generate(ctx context.Context, req Request) (json.RawMessage, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes a single structured-output call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// User is the instruction for this call.
	User string

	// Shape is the required output shape. When nil the raw text is
	// returned without validation.
	Shape *Shape
}
