package port

import "context"

// CompletionRequest carries one chat-completion call to an LLM provider.
type CompletionRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// CompletionResponse holds the model's raw text output and reported usage.
type CompletionResponse struct {
	Content    string
	TokensUsed int
}

// ChatCompleter abstracts an LLM chat-completion provider.
type ChatCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
