package summarizer

import (
	"context"
)

const (
	promptPrefix = "Summarize the following news article:\n\n"
	promptSuffix = "\n\nSummary:"
)

// Input describes the payload for a summary request.
type Input struct {
	// Text contains the article text to summarise.
	Text string
	// SourceURL is the page the text came from. It is not part of the prompt.
	SourceURL string
}

// Summarizer produces a single summary for a given input text.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}

// Prompt substitutes the article into the fixed summary prompt.
func Prompt(article string) string {
	return promptPrefix + article + promptSuffix
}
