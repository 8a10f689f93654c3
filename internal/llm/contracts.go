package llm

import "context"

// Generator is the external oracle our pipeline depends on: a prompt string
// in, a text completion out. Implementations must surface timeouts, transport
// failures, and non-success statuses as distinct errors.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
