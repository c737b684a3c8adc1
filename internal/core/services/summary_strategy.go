package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
	"github.com/custodia-labs/newsum/internal/logger"
)

// Token budgets per mode. Brief output must stay shorter than detailed.
const (
	BriefMaxTokens    = 150
	DetailedMaxTokens = 600
)

// SummaryStrategy turns a set of article documents into one summary.
type SummaryStrategy interface {
	// Mode returns the summary mode this strategy serves.
	Mode() domain.SummaryMode

	// Prompts names the templates Summarize loads.
	Prompts() []string

	// Summarize produces an untrimmed summary of docs.
	Summarize(ctx context.Context, g *generator, docs []string) (string, error)
}

// TextSplitter splits long text into overlapping pieces.
type TextSplitter interface {
	Split(text string) []string
}

// generator issues prompt completions against the LLM.
type generator struct {
	llm         driven.LLMService
	prompts     driven.PromptStore
	temperature float64
}

const summarySystemPrompt = "You summarise news articles accurately and concisely. " +
	"Only use facts stated in the provided text."

func (g *generator) complete(ctx context.Context, promptName, text string, maxTokens int) (string, error) {
	tpl, err := g.prompts.Load(promptName)
	if err != nil {
		return "", fmt.Errorf("loading prompt %s: %w", promptName, err)
	}
	out, err := g.llm.Generate(ctx, fillPrompt(tpl, text), driven.GenerateOptions{
		System:      summarySystemPrompt,
		MaxTokens:   maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSummarization, err)
	}
	return out, nil
}

// fillPrompt substitutes the first %s in tpl with text.
// Templates without a placeholder get the text appended.
func fillPrompt(tpl, text string) string {
	if !strings.Contains(tpl, "%s") {
		return tpl + "\n\n" + text
	}
	return strings.Replace(tpl, "%s", text, 1)
}

// StuffStrategy puts every document into a single detailed prompt.
type StuffStrategy struct{}

// Mode returns SummaryDetailed.
func (StuffStrategy) Mode() domain.SummaryMode { return domain.SummaryDetailed }

func (StuffStrategy) Prompts() []string { return []string{driven.PromptSummaryDetailed} }

// Summarize issues one completion over the concatenated documents.
func (StuffStrategy) Summarize(ctx context.Context, g *generator, docs []string) (string, error) {
	logger.Debug("Stuff: %d documents in one prompt", len(docs))
	return g.complete(ctx, driven.PromptSummaryDetailed, strings.Join(docs, "\n\n"), DetailedMaxTokens)
}

// MapReduceStrategy summarises each chunk, then combines the partials.
// The combine step always runs so a single partial is still reduced to 1-2 sentences.
type MapReduceStrategy struct {
	splitter TextSplitter
}

// NewMapReduceStrategy creates a brief strategy. A nil splitter keeps
// each document whole.
func NewMapReduceStrategy(splitter TextSplitter) *MapReduceStrategy {
	return &MapReduceStrategy{splitter: splitter}
}

// Mode returns SummaryBrief.
func (*MapReduceStrategy) Mode() domain.SummaryMode { return domain.SummaryBrief }

func (*MapReduceStrategy) Prompts() []string {
	return []string{driven.PromptSummaryBrief, driven.PromptSummaryCombine}
}

// Summarize maps the brief prompt over every chunk and reduces with the combine prompt.
func (m *MapReduceStrategy) Summarize(ctx context.Context, g *generator, docs []string) (string, error) {
	var pieces []string
	for _, doc := range docs {
		if m.splitter == nil {
			pieces = append(pieces, doc)
			continue
		}
		pieces = append(pieces, m.splitter.Split(doc)...)
	}
	if len(pieces) == 0 {
		return "", fmt.Errorf("%w: nothing to summarise", domain.ErrSummarization)
	}
	logger.Debug("Map-reduce: %d documents, %d chunks", len(docs), len(pieces))

	partials := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrSummarization, err)
		}
		out, err := g.complete(ctx, driven.PromptSummaryBrief, p, BriefMaxTokens)
		if err != nil {
			return "", err
		}
		partials = append(partials, strings.TrimSpace(out))
	}

	return g.complete(ctx, driven.PromptSummaryCombine, strings.Join(partials, "\n\n"), BriefMaxTokens)
}
