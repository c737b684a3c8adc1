package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

const defaultSimilarK = 5

// SearchNewsInput is the input schema for the search_news tool.
type SearchNewsInput struct {
	Query string `json:"query" jsonschema:"topic or keywords to fetch news for"`
}

// SearchNewsOutput is the output schema for the search_news tool.
type SearchNewsOutput struct {
	Articles []ArticleOutput `json:"articles"`
	Count    int             `json:"count"`
	Indexed  int             `json:"indexed"`
	Warnings []string        `json:"warnings,omitempty"`
}

// ArticleOutput is an article as returned to MCP clients.
type ArticleOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Source      string  `json:"source"`
	Author      string  `json:"author,omitempty"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url"`
	PublishedAt string  `json:"published_at,omitempty"`
	Similarity  float64 `json:"similarity,omitempty"`
}

// FindSimilarInput is the input schema for the find_similar tool.
type FindSimilarInput struct {
	Text string `json:"text" jsonschema:"text to compare against indexed articles"`
	K    int    `json:"k,omitempty" jsonschema:"maximum number of articles to return (default 5)"`
}

// FindSimilarOutput is the output schema for the find_similar tool.
type FindSimilarOutput struct {
	Articles []ArticleOutput `json:"articles"`
	Count    int             `json:"count"`
}

// SummarizeInput is the input schema for the summarize_articles tool.
type SummarizeInput struct {
	ArticleIDs []string `json:"article_ids,omitempty" jsonschema:"indexed article IDs; empty summarises the current results"`
	Mode       string   `json:"mode,omitempty" jsonschema:"brief or detailed (default brief)"`
}

// SummarizeOutput is the output schema for the summarize_articles tool.
type SummarizeOutput struct {
	Summary string `json:"summary"`
	Mode    string `json:"mode"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_news",
		Description: "Fetch news articles for a query, record it in history and index the results",
	}, s.handleSearchNews)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_similar",
		Description: "Find indexed articles semantically similar to the given text",
	}, s.handleFindSimilar)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize_articles",
		Description: "Summarise indexed articles, or the current search results when no IDs are given",
	}, s.handleSummarize)
}

func (s *Server) handleSearchNews(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchNewsInput,
) (*mcp.CallToolResult, SearchNewsOutput, error) {
	outcome, err := s.ports.Session.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchNewsOutput{}, err
	}

	output := SearchNewsOutput{
		Articles: make([]ArticleOutput, len(outcome.Articles)),
		Count:    len(outcome.Articles),
		Indexed:  outcome.Indexed,
	}
	for i := range outcome.Articles {
		output.Articles[i] = toArticleOutput(outcome.Articles[i], 0)
	}
	if outcome.IndexErr != nil {
		output.Warnings = append(output.Warnings, fmt.Sprintf("indexing failed: %v", outcome.IndexErr))
	}
	if outcome.HistoryErr != nil {
		output.Warnings = append(output.Warnings, fmt.Sprintf("history not saved: %v", outcome.HistoryErr))
	}
	return nil, output, nil
}

func (s *Server) handleFindSimilar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindSimilarInput,
) (*mcp.CallToolResult, FindSimilarOutput, error) {
	k := input.K
	if k <= 0 {
		k = defaultSimilarK
	}

	hits, err := s.ports.Session.Similar(ctx, input.Text, k)
	if err != nil {
		return nil, FindSimilarOutput{}, err
	}

	output := FindSimilarOutput{
		Articles: make([]ArticleOutput, len(hits)),
		Count:    len(hits),
	}
	for i := range hits {
		output.Articles[i] = toArticleOutput(hits[i].Article, hits[i].Similarity)
	}
	return nil, output, nil
}

func (s *Server) handleSummarize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeInput,
) (*mcp.CallToolResult, SummarizeOutput, error) {
	mode := domain.SummaryBrief
	if input.Mode != "" {
		m, err := domain.ParseSummaryMode(input.Mode)
		if err != nil {
			return nil, SummarizeOutput{}, err
		}
		mode = m
	}

	var (
		summary string
		err     error
	)
	switch {
	case len(input.ArticleIDs) > 0:
		if s.ports.Summary == nil {
			return nil, SummarizeOutput{}, ErrMissingSummaryService
		}
		summary, err = s.ports.Summary.SummarizeByID(ctx, domain.SummaryRequest{
			ArticleIDs: input.ArticleIDs,
			Mode:       mode,
		})
	case input.Mode == "":
		// Current results in the preferred mode.
		if prefs := s.ports.Session.Preferences(); prefs != nil {
			mode = prefs.Preferences().SummaryMode
		}
		summary, err = s.ports.Session.SummarizeAll(ctx)
	default:
		if s.ports.Summary == nil {
			return nil, SummarizeOutput{}, ErrMissingSummaryService
		}
		summary, err = s.ports.Summary.Summarize(ctx, s.ports.Session.Results(), mode)
	}
	if err != nil {
		return nil, SummarizeOutput{}, err
	}
	return nil, SummarizeOutput{Summary: summary, Mode: mode.String()}, nil
}

func toArticleOutput(a domain.Article, similarity float64) ArticleOutput {
	out := ArticleOutput{
		ID:          a.ID,
		Title:       a.Title,
		Source:      a.Source,
		Author:      a.Author,
		Description: a.Description,
		URL:         a.URL,
		Similarity:  similarity,
	}
	if !a.PublishedAt.IsZero() {
		out.PublishedAt = a.PublishedAt.Format(time.RFC3339)
	}
	return out
}
