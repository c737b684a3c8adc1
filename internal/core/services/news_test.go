package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsum/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/newsum/internal/core/domain"
)

func TestNewsService_Fetch_EmptyQuery(t *testing.T) {
	source := &mockNewsSource{}
	service := NewNewsService(source, nil)

	_, err := service.Fetch(context.Background(), "   ", 5)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, source.calls)
}

func TestNewsService_Fetch_NoSource(t *testing.T) {
	service := NewNewsService(nil, nil)

	_, err := service.Fetch(context.Background(), "ai", 5)

	require.ErrorIs(t, err, domain.ErrFetch)
	assert.Equal(t, "none", service.SourceName())
}

func TestNewsService_Fetch_ClampsPageSize(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero", 0, 1},
		{"negative", -3, 1},
		{"in range", 7, 7},
		{"too large", 500, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &mockNewsSource{}
			service := NewNewsService(source, nil)

			_, err := service.Fetch(context.Background(), "ai", tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, source.lastQuery.PageSize)
		})
	}
}

func TestNewsService_Fetch_DedupesAndCaps(t *testing.T) {
	a := testArticles()
	source := &mockNewsSource{articles: []domain.Article{a[0], a[1], a[0], a[2], a[3]}}
	service := NewNewsService(source, nil)

	got, err := service.Fetch(context.Background(), "news", 3)

	require.NoError(t, err)
	require.Len(t, got, 3)
	seen := map[string]bool{}
	for _, art := range got {
		assert.False(t, seen[art.ID], "duplicate id %s", art.ID)
		seen[art.ID] = true
	}
	assert.Equal(t, []string{a[0].ID, a[1].ID, a[2].ID}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestNewsService_Fetch_AssignsMissingIDs(t *testing.T) {
	source := &mockNewsSource{articles: []domain.Article{
		{Title: "One", URL: "https://example.com/one"},
		{Title: "One again", URL: "https://example.com/one"},
	}}
	service := NewNewsService(source, nil)

	got, err := service.Fetch(context.Background(), "one", 5)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
}

func TestNewsService_Fetch_LanguageFromPreferences(t *testing.T) {
	prefs, err := NewPreferenceService(memory.NewPreferenceStore(), 0)
	require.NoError(t, err)
	require.NoError(t, prefs.SetLanguage("DE"))

	source := &mockNewsSource{}
	service := NewNewsService(source, prefs)

	_, err = service.Fetch(context.Background(), "ki", 5)

	require.NoError(t, err)
	assert.Equal(t, "de", source.lastQuery.Language)
	assert.Equal(t, "ki", source.lastQuery.Query)
}

func TestNewsService_Fetch_DefaultLanguage(t *testing.T) {
	source := &mockNewsSource{}
	service := NewNewsService(source, nil)

	_, err := service.Fetch(context.Background(), "ai", 5)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLanguage, source.lastQuery.Language)
}

func TestNewsService_Fetch_WrapsErrors(t *testing.T) {
	t.Run("plain error gains ErrFetch", func(t *testing.T) {
		cause := errors.New("connection refused")
		service := NewNewsService(&mockNewsSource{err: cause}, nil)

		_, err := service.Fetch(context.Background(), "ai", 5)

		require.ErrorIs(t, err, domain.ErrFetch)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("auth error keeps both sentinels", func(t *testing.T) {
		cause := errors.Join(domain.ErrFetch, domain.ErrAuth)
		service := NewNewsService(&mockNewsSource{err: cause}, nil)

		_, err := service.Fetch(context.Background(), "ai", 5)

		require.ErrorIs(t, err, domain.ErrFetch)
		assert.ErrorIs(t, err, domain.ErrAuth)
	})
}

func TestNewsService_SourceName(t *testing.T) {
	service := NewNewsService(&mockNewsSource{}, nil)
	assert.Equal(t, "mock", service.SourceName())
}
