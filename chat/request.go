package chat

import "fmt"

// Request carries the parameters of one chat call. Optional fields are
// pointers so that an unset field is omitted from the payload entirely
// rather than encoded as null; some servers treat an explicit null
// differently from a missing key.
type Request struct {
	Message     string   `json:"message"`
	Model       string   `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
}

// Validate checks local constraints. It runs before any network activity.
func (r Request) Validate() error {
	if r.Message == "" {
		return &ValidationError{Reason: "message is required"}
	}
	if r.Temperature != nil && (*r.Temperature < 0.0 || *r.Temperature > 2.0) {
		return &ValidationError{Reason: fmt.Sprintf("temperature must be between 0.0 and 2.0, got %g", *r.Temperature)}
	}
	if r.MaxTokens != nil && *r.MaxTokens <= 0 {
		return &ValidationError{Reason: fmt.Sprintf("max_tokens must be positive, got %d", *r.MaxTokens)}
	}
	return nil
}
