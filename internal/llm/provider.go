// Package llm generates an optional plain-language narrative of a run's
// match exceptions. The narrative is advisory text for report readers;
// it never feeds back into the report numbers and a failure here only
// downgrades to a warning.
package llm

import (
	"context"
	"fmt"
	"strings"

	"premalloc/internal/model"
)

// Provider defines the interface for narrative backends.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Narrate generates a short narrative for the given request.
	Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error)
}

// NarrateRequest carries the exception table and run context.
type NarrateRequest struct {
	// Exceptions is the Match Exceptions table of the run.
	Exceptions model.ReportTable

	// TotalRecords is the number of records the run processed.
	TotalRecords int

	// Model optionally overrides the configured model name.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// NarrateResponse is the generated narrative.
type NarrateResponse struct {
	Narrative  string
	Model      string
	TokensUsed int
}

// NewProvider creates a provider from configuration. An empty provider
// name disables the narrative and returns (nil, nil).
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
}

// BuildPrompt constructs the narrative prompt. The model only sees the
// exception rows the run produced; it is instructed to describe them,
// not to re-allocate anything.
func BuildPrompt(req NarrateRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are summarizing the Match Exceptions report of a premium tax
allocation run for an insurance filing analyst.

RULES:
1. Describe only the exception rows listed below. Do not invent policy
   numbers, addresses or amounts.
2. Do not suggest changing any premium allocation; allocations are
   decided by the pipeline, not by you.
3. Group similar exceptions (same match code) and note patterns such as
   PO Box addresses or repeated unverifiable streets.

The run processed %d records; %d of them are exceptions:

`, req.TotalRecords, len(req.Exceptions.Rows))

	b.WriteString(strings.Join(req.Exceptions.Headers, " | "))
	b.WriteString("\n")
	for i, row := range req.Exceptions.Rows {
		if i >= 50 {
			fmt.Fprintf(&b, "... and %d more rows\n", len(req.Exceptions.Rows)-50)
			break
		}
		b.WriteString(strings.Join(row, " | "))
		b.WriteString("\n")
	}

	b.WriteString("\nProvide a 3-5 sentence summary of what kinds of addresses failed to match and why.")
	return b.String()
}
