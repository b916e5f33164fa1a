package types

import "github.com/go-playground/validator/v10"

// ExecuteRequest is the body for POST /execute, proxied to the code-execution
// sandbox unchanged apart from shape validation.
type ExecuteRequest struct {
	Language string `json:"language" validate:"required"`
	Version  string `json:"version,omitempty"`
	Code     string `json:"code" validate:"required"`
	Stdin    string `json:"stdin,omitempty"`
}

// ExecuteResult mirrors the sandbox's run output.
type ExecuteResult struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

// Validate validates the ExecuteRequest using the validator.
func (r *ExecuteRequest) Validate() error {
	return validator.New().Struct(r)
}
