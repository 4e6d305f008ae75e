package oracle

import "context"

// Mock is a canned Validator for tests and offline runs.
type Mock struct {
	Result bool
	Err    error
	Calls  []string
}

// Validate records the call and returns the canned result.
func (m *Mock) Validate(_ context.Context, text string) (bool, error) {
	m.Calls = append(m.Calls, text)
	return m.Result, m.Err
}
