package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsum/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
	"github.com/custodia-labs/newsum/internal/postprocessors/chunker"
)

func TestSummaryService_Summarize_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		service := NewSummaryService(&mockLLMService{}, newMockPromptStore())
		_, err := service.Summarize(ctx, nil, domain.SummaryBrief)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("nil llm", func(t *testing.T) {
		service := NewSummaryService(nil, newMockPromptStore())
		_, err := service.Summarize(ctx, testArticles(), domain.SummaryBrief)
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})

	t.Run("unknown mode", func(t *testing.T) {
		service := NewSummaryService(&mockLLMService{}, newMockPromptStore())
		_, err := service.Summarize(ctx, testArticles(), domain.SummaryMode("epic"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestSummaryService_Summarize_Detailed(t *testing.T) {
	llm := &mockLLMService{}
	service := NewSummaryService(llm, newMockPromptStore(), WithTemperature(0.3))
	articles := testArticles()

	out, err := service.Summarize(context.Background(), articles, domain.SummaryDetailed)

	require.NoError(t, err)
	assert.Equal(t, "summary(600)", out, "output is trimmed")
	require.Equal(t, 1, llm.calls(), "stuff issues one completion")

	prompt := llm.prompts[0]
	assert.True(t, strings.HasPrefix(prompt, "DETAILED: "))
	for _, a := range articles {
		assert.Contains(t, prompt, "Title: "+a.Title)
	}
	assert.Equal(t, DetailedMaxTokens, llm.opts[0].MaxTokens)
	assert.InDelta(t, 0.3, llm.opts[0].Temperature, 1e-9)
	assert.NotEmpty(t, llm.opts[0].System)
}

func TestSummaryService_Summarize_BriefMapReduce(t *testing.T) {
	llm := &mockLLMService{}
	splitter := chunker.New(chunker.WithChunkSize(60), chunker.WithOverlap(10))
	service := NewSummaryService(llm, newMockPromptStore(), WithSplitter(splitter))
	articles := testArticles()[:2]

	out, err := service.Summarize(context.Background(), articles, domain.SummaryBrief)

	require.NoError(t, err)
	assert.Equal(t, "summary(150)", out)

	chunks := 0
	for _, a := range articles {
		chunks += len(splitter.Split(a.Document()))
	}
	require.Equal(t, chunks+1, llm.calls(), "one map call per chunk plus the combine")
	for i := 0; i < chunks; i++ {
		assert.True(t, strings.HasPrefix(llm.prompts[i], "BRIEF: "))
		assert.Equal(t, BriefMaxTokens, llm.opts[i].MaxTokens)
	}
	last := llm.prompts[chunks]
	assert.True(t, strings.HasPrefix(last, "COMBINE: "))
	assert.Contains(t, last, "summary(150)")
}

func TestSummaryService_Summarize_BriefSingleDocumentStillCombines(t *testing.T) {
	llm := &mockLLMService{}
	service := NewSummaryService(llm, newMockPromptStore())

	_, err := service.Summarize(context.Background(), testArticles()[:1], domain.SummaryBrief)

	require.NoError(t, err)
	require.Equal(t, 2, llm.calls())
	assert.True(t, strings.HasPrefix(llm.prompts[1], "COMBINE: "))
}

func TestSummaryService_BriefShorterThanDetailed(t *testing.T) {
	llm := &mockLLMService{respond: func(_ string, opts driven.GenerateOptions) string {
		return strings.Repeat("word ", opts.MaxTokens/10)
	}}
	service := NewSummaryService(llm, newMockPromptStore())
	articles := testArticles()

	brief, err := service.Summarize(context.Background(), articles, domain.SummaryBrief)
	require.NoError(t, err)
	detailed, err := service.Summarize(context.Background(), articles, domain.SummaryDetailed)
	require.NoError(t, err)

	assert.Less(t, len(brief), len(detailed))
}

func TestSummaryService_Summarize_LLMError(t *testing.T) {
	cause := errors.New("503 service unavailable")

	for _, mode := range []domain.SummaryMode{domain.SummaryBrief, domain.SummaryDetailed} {
		t.Run(mode.String(), func(t *testing.T) {
			service := NewSummaryService(&mockLLMService{err: cause}, newMockPromptStore())

			_, err := service.Summarize(context.Background(), testArticles(), mode)

			require.ErrorIs(t, err, domain.ErrSummarization)
			assert.ErrorIs(t, err, cause)
		})
	}
}

func TestSummaryService_Summarize_PromptError(t *testing.T) {
	prompts := newMockPromptStore()
	prompts.err = errors.New("permission denied")
	service := NewSummaryService(&mockLLMService{}, prompts)

	_, err := service.Summarize(context.Background(), testArticles(), domain.SummaryDetailed)

	assert.ErrorIs(t, err, domain.ErrSummarization)
}

func TestSummaryService_Summarize_EmptyResponse(t *testing.T) {
	llm := &mockLLMService{respond: func(string, driven.GenerateOptions) string { return "  \n" }}
	service := NewSummaryService(llm, newMockPromptStore())

	_, err := service.Summarize(context.Background(), testArticles(), domain.SummaryDetailed)

	assert.ErrorIs(t, err, domain.ErrSummarization)
}

func TestSummaryService_Cache(t *testing.T) {
	llm := &mockLLMService{}
	cache := memory.NewSummaryCache()
	service := NewSummaryService(llm, newMockPromptStore(), WithSummaryCache(cache, time.Hour))
	articles := testArticles()
	ctx := context.Background()

	first, err := service.Summarize(ctx, articles, domain.SummaryDetailed)
	require.NoError(t, err)

	reversed := []domain.Article{articles[3], articles[2], articles[1], articles[0]}
	second, err := service.Summarize(ctx, reversed, domain.SummaryDetailed)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, llm.calls(), "article order does not change the cache key")
	assert.Equal(t, 1, cache.Len())

	_, err = service.Summarize(ctx, articles, domain.SummaryBrief)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len(), "mode is part of the key")
}

func TestSummaryService_CacheKeyIncludesPrompts(t *testing.T) {
	tests := []struct {
		name   string
		mode   domain.SummaryMode
		prompt string
	}{
		{"detailed template edited", domain.SummaryDetailed, driven.PromptSummaryDetailed},
		{"brief map template edited", domain.SummaryBrief, driven.PromptSummaryBrief},
		{"brief combine template edited", domain.SummaryBrief, driven.PromptSummaryCombine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &mockLLMService{}
			prompts := newMockPromptStore()
			service := NewSummaryService(llm, prompts, WithSummaryCache(memory.NewSummaryCache(), time.Hour))
			articles := testArticles()[:1]
			ctx := context.Background()

			_, err := service.Summarize(ctx, articles, tt.mode)
			require.NoError(t, err)
			callsBefore := llm.calls()

			_, err = service.Summarize(ctx, articles, tt.mode)
			require.NoError(t, err)
			require.Equal(t, callsBefore, llm.calls(), "unchanged prompts hit the cache")

			prompts.prompts[tt.prompt] = "EDITED " + prompts.prompts[tt.prompt]
			_, err = service.Summarize(ctx, articles, tt.mode)
			require.NoError(t, err)
			assert.Greater(t, llm.calls(), callsBefore, "an edited prompt regenerates the summary")
		})
	}
}

func TestSummaryService_CacheSkippedWhenPromptMissing(t *testing.T) {
	cache := &failingCache{}
	prompts := newMockPromptStore()
	prompts.err = domain.ErrNotFound
	service := NewSummaryService(&mockLLMService{}, prompts, WithSummaryCache(cache, time.Hour))

	_, err := service.Summarize(context.Background(), testArticles(), domain.SummaryDetailed)

	assert.ErrorIs(t, err, domain.ErrSummarization)
	assert.Zero(t, cache.gets)
	assert.Zero(t, cache.sets)
}

func TestSummaryService_CacheFailureIgnored(t *testing.T) {
	cache := &failingCache{}
	service := NewSummaryService(&mockLLMService{}, newMockPromptStore(), WithSummaryCache(cache, time.Hour))

	out, err := service.Summarize(context.Background(), testArticles(), domain.SummaryDetailed)

	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, 1, cache.gets)
	assert.Equal(t, 1, cache.sets)
}

func TestSummaryService_SummarizeByID(t *testing.T) {
	store := memory.NewArticleStore()
	ctx := context.Background()
	articles := testArticles()
	for i := range articles {
		require.NoError(t, store.SaveArticle(ctx, &articles[i]))
	}
	llm := &mockLLMService{}
	service := NewSummaryService(llm, newMockPromptStore(), WithArticleLookup(store))

	t.Run("resolves ids", func(t *testing.T) {
		out, err := service.SummarizeByID(ctx, domain.SummaryRequest{
			ArticleIDs: []string{articles[1].ID, articles[1].ID, articles[2].ID},
			Mode:       domain.SummaryDetailed,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, out)
		last := llm.prompts[len(llm.prompts)-1]
		assert.Equal(t, 1, strings.Count(last, "Title: "+articles[1].Title))
		assert.Contains(t, last, "Title: "+articles[2].Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := service.SummarizeByID(ctx, domain.SummaryRequest{ArticleIDs: []string{"missing"}})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("no ids", func(t *testing.T) {
		_, err := service.SummarizeByID(ctx, domain.SummaryRequest{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("default mode is brief", func(t *testing.T) {
		before := llm.calls()
		_, err := service.SummarizeByID(ctx, domain.SummaryRequest{ArticleIDs: []string{articles[3].ID}})
		require.NoError(t, err)
		assert.Equal(t, before+2, llm.calls())
	})
}

func TestFillPrompt(t *testing.T) {
	tests := []struct {
		tpl  string
		want string
	}{
		{"Summarise: %s END", "Summarise: body END"},
		{"no placeholder", "no placeholder\n\nbody"},
		{"%s then %s", "body then %s"},
	}

	for _, tt := range tests {
		t.Run(tt.tpl, func(t *testing.T) {
			assert.Equal(t, tt.want, fillPrompt(tt.tpl, "body"))
		})
	}
}

func TestFillPrompt_TextWithPercent(t *testing.T) {
	got := fillPrompt("A: %s", "growth of 5%s")
	assert.Equal(t, fmt.Sprintf("A: %s", "growth of 5%s"), got)
}
