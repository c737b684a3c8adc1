package article

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

// mockSession implements the summarising part of driving.SessionService.
type mockSession struct {
	driving.SessionService
	calls []int
	err   error
}

func (m *mockSession) SummarizeArticle(_ context.Context, index int, mode domain.SummaryMode) (string, error) {
	m.calls = append(m.calls, index)
	if m.err != nil {
		return "", m.err
	}
	return fmt.Sprintf("session %s summary", mode), nil
}

// mockSummary implements driving.SummaryService for testing.
type mockSummary struct {
	articles []domain.Article
}

func (m *mockSummary) Summarize(_ context.Context, articles []domain.Article, mode domain.SummaryMode) (string, error) {
	m.articles = append(m.articles, articles...)
	return fmt.Sprintf("direct %s summary", mode), nil
}

func (m *mockSummary) SummarizeByID(context.Context, domain.SummaryRequest) (string, error) {
	return "", domain.ErrNotFound
}

func testArticle() domain.Article {
	return domain.Article{
		ID:          "a1",
		Title:       "AI regulation advances",
		Source:      "Wire",
		Author:      "J. Doe",
		Description: "Lawmakers agree on a framework.",
		Content:     "The agreement covers model audits.",
		URL:         "https://example.com/ai",
		PublishedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// summaryFrom runs the batch returned by a summary request and picks the result.
func summaryFrom(t *testing.T, cmd tea.Cmd) messages.SummaryCompleted {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if done, ok := c().(messages.SummaryCompleted); ok {
			return done
		}
	}
	require.Fail(t, "no SummaryCompleted in batch")
	return messages.SummaryCompleted{}
}

func newReadyView(session driving.SessionService, summary driving.SummaryService) *View {
	v := NewView(nil, session, summary)
	v.SetDimensions(100, 40)
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Nil(t, v.Article())
	assert.Nil(t, v.Init())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_View_NoArticle(t *testing.T) {
	v := newReadyView(nil, nil)

	assert.Contains(t, v.View(), "No article selected")
}

func TestView_View_ShowsArticle(t *testing.T) {
	v := newReadyView(nil, nil)
	v.SetArticle(0, testArticle())

	view := v.View()

	assert.Contains(t, view, "AI regulation advances")
	assert.Contains(t, view, "Wire | J. Doe | 2024-05-01 09:30")
	assert.Contains(t, view, "https://example.com/ai")
	assert.Contains(t, view, "Lawmakers agree")
	assert.Contains(t, view, "b: brief")
}

func TestView_BriefSummaryFromResults(t *testing.T) {
	session := &mockSession{}
	v := newReadyView(session, &mockSummary{})
	v.SetArticle(2, testArticle())

	_, cmd := v.Update(keyRunes("b"))
	assert.Equal(t, domain.SummaryBrief, v.Pending())

	done := summaryFrom(t, cmd)
	assert.Equal(t, "a1", done.ArticleID)
	assert.Equal(t, []int{2}, session.calls)

	v.Update(done)
	got, ok := v.Summary(domain.SummaryBrief)
	require.True(t, ok)
	assert.Equal(t, "session brief summary", got)
	assert.Empty(t, v.Pending())
	assert.Contains(t, v.View(), "session brief summary")
}

func TestView_DetailedSummaryOfHit(t *testing.T) {
	session := &mockSession{}
	summary := &mockSummary{}
	v := newReadyView(session, summary)
	v.SetArticle(-1, testArticle())

	_, cmd := v.Update(keyRunes("d"))
	v.Update(summaryFrom(t, cmd))

	assert.Empty(t, session.calls)
	require.Len(t, summary.articles, 1)
	assert.Equal(t, "a1", summary.articles[0].ID)
	got, _ := v.Summary(domain.SummaryDetailed)
	assert.Equal(t, "direct detailed summary", got)
}

func TestView_SummaryNotRequestedTwice(t *testing.T) {
	v := newReadyView(&mockSession{}, nil)
	v.SetArticle(0, testArticle())

	_, cmd := v.Update(keyRunes("b"))
	require.NotNil(t, cmd)

	// A second request while one is pending is ignored.
	_, again := v.Update(keyRunes("d"))
	assert.Nil(t, again)

	v.Update(summaryFrom(t, cmd))
	_, again = v.Update(keyRunes("b"))
	assert.Nil(t, again, "brief summary already shown")
}

func TestView_SummaryError(t *testing.T) {
	session := &mockSession{err: fmt.Errorf("%w: timeout", domain.ErrSummarization)}
	v := newReadyView(session, nil)
	v.SetArticle(0, testArticle())

	_, cmd := v.Update(keyRunes("b"))
	v.Update(summaryFrom(t, cmd))

	assert.ErrorIs(t, v.Err(), domain.ErrSummarization)
	_, ok := v.Summary(domain.SummaryBrief)
	assert.False(t, ok)
	assert.Contains(t, v.View(), "Error")
}

func TestView_NoSummarizer(t *testing.T) {
	v := newReadyView(nil, nil)
	v.SetArticle(-1, testArticle())

	_, cmd := v.Update(keyRunes("b"))
	done := summaryFrom(t, cmd)

	assert.ErrorIs(t, done.Err, ErrNoSummarizer)
}

func TestView_IgnoresOtherSummaries(t *testing.T) {
	v := newReadyView(&mockSession{}, nil)
	v.SetArticle(0, testArticle())

	v.Update(messages.SummaryCompleted{Mode: domain.SummaryBrief, Summary: "all results"})
	v.Update(messages.SummaryCompleted{ArticleID: "other", Mode: domain.SummaryBrief, Summary: "x"})

	_, ok := v.Summary(domain.SummaryBrief)
	assert.False(t, ok)
}

func TestView_SetArticleClearsSummaries(t *testing.T) {
	v := newReadyView(&mockSession{}, nil)
	v.SetArticle(0, testArticle())
	v.Update(messages.SummaryCompleted{ArticleID: "a1", Mode: domain.SummaryBrief, Summary: "s"})

	other := testArticle()
	other.ID = "a2"
	v.SetArticle(1, other)

	_, ok := v.Summary(domain.SummaryBrief)
	assert.False(t, ok)
}

func TestView_EscReturnsToResults(t *testing.T) {
	v := newReadyView(nil, nil)
	v.SetArticle(0, testArticle())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearchResults}, cmd())
}

func TestView_Scroll(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(40, 8)
	a := testArticle()
	a.Content = "one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen " +
		"sixteen seventeen eighteen nineteen twenty twenty-one twenty-two twenty-three twenty-four"
	v.SetArticle(0, a)

	require.Positive(t, v.maxScrollOffset())

	v.Update(keyRunes("j"))
	assert.Equal(t, 1, v.scrollOffset)

	v.Update(keyRunes("G"))
	assert.Equal(t, v.maxScrollOffset(), v.scrollOffset)

	v.Update(keyRunes("g"))
	assert.Equal(t, 0, v.scrollOffset)

	v.Update(keyRunes("k"))
	assert.Equal(t, 0, v.scrollOffset)
}
