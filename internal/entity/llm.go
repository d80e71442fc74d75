package entity

// CompletionRequest is a single prompt submitted to a text-completion provider
type CompletionRequest struct {
	SystemPrompt string
	Prompt       string
	MaxTokens    int
	Temperature  float32
}
