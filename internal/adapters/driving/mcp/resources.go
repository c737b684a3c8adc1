package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

// uriScheme is the custom URI scheme for newsum resources.
const uriScheme = "newsum://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "results",
		Name:        "results",
		Description: "Articles from the last search",
		MIMEType:    "application/json",
	}, s.handleResultsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent searches, oldest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "articles/{articleId}",
		Name:        "article",
		Description: "Full text of an indexed article",
		MIMEType:    "text/plain",
	}, s.handleArticleResource)
}

func (s *Server) handleResultsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	results := s.ports.Session.Results()
	out := make([]ArticleOutput, len(results))
	for i := range results {
		out[i] = toArticleOutput(results[i], 0)
	}
	return jsonResource(req.Params.URI, out)
}

func (s *Server) handleHistoryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type entry struct {
		Query      string `json:"query"`
		Timestamp  string `json:"timestamp"`
		NumResults int    `json:"num_results"`
	}

	entries := []entry{}
	if prefs := s.ports.Session.Preferences(); prefs != nil {
		for _, e := range prefs.History(domain.DefaultHistoryLimit) {
			entries = append(entries, entry{
				Query:      e.Query,
				Timestamp:  e.Timestamp.Format(time.RFC3339),
				NumResults: e.NumResults,
			})
		}
	}
	return jsonResource(req.Params.URI, entries)
}

func (s *Server) handleArticleResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Index == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractArticleID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	article, err := s.ports.Index.GetArticle(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting article: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     renderArticle(article),
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func renderArticle(a *domain.Article) string {
	var b strings.Builder
	b.WriteString(a.Title)
	b.WriteString("\n")
	b.WriteString(a.Source)
	if !a.PublishedAt.IsZero() {
		b.WriteString(" · ")
		b.WriteString(a.PublishedAt.Format("2006-01-02"))
	}
	b.WriteString("\n")
	b.WriteString(a.URL)
	b.WriteString("\n\n")
	b.WriteString(a.Body())
	return b.String()
}

// extractArticleID extracts the ID from a URI like newsum://articles/{articleId}.
func extractArticleID(uri string) string {
	const prefix = uriScheme + "articles/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
