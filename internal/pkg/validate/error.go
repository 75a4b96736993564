package validate

// FieldsError carries the per-field validation messages for a rejected
// request body.
type FieldsError struct {
	Fields map[string]string
}

func NewFieldsError(fields map[string]string) *FieldsError {
	return &FieldsError{
		Fields: fields,
	}
}

func (f *FieldsError) Error() string {
	return "request body validation failed"
}
