package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used by the summarisation strategies.
// Each template expects a single %s placeholder for the text.
const (
	// PromptSummaryBrief summarises one chunk in the map step of a brief summary.
	PromptSummaryBrief = "summary_brief"

	// PromptSummaryCombine merges partial summaries in the reduce step of a brief summary.
	PromptSummaryCombine = "summary_combine"

	// PromptSummaryDetailed summarises all documents at once into one paragraph.
	PromptSummaryDetailed = "summary_detailed"
)

// AllPromptNames lists the prompts a PromptStore is expected to serve.
func AllPromptNames() []string {
	return []string{PromptSummaryBrief, PromptSummaryCombine, PromptSummaryDetailed}
}
