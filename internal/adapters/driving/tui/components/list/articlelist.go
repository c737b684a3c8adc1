// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/newsum/internal/core/domain"
)

// ArticleList displays articles in a navigable, numbered list.
// When populated from similarity hits each row also shows its similarity.
type ArticleList struct {
	articles []domain.Article
	scores   []float64
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewArticleList creates a new article list component.
func NewArticleList(s *styles.Styles) *ArticleList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ArticleList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the article list.
func (r *ArticleList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ArticleList) Update(msg tea.Msg) (*ArticleList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the article list.
func (r *ArticleList) View() string {
	if len(r.articles) == 0 {
		return r.styles.Muted.Render("No articles")
	}

	lines := make([]string, 0, len(r.articles)+2)

	header := fmt.Sprintf("Articles (%d)", len(r.articles))
	if r.scores != nil {
		header = fmt.Sprintf("Similar articles (%d)", len(r.articles))
	}
	lines = append(lines, r.styles.Subtitle.Render(header), "")

	// Each article takes three lines.
	visibleCount := (r.height - 4) / 3
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(r.articles))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderArticle(i))
	}

	return strings.Join(lines, "\n")
}

func (r *ArticleList) renderArticle(index int) string {
	a := r.articles[index]

	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := a.Title
	if title == "" {
		title = "(Untitled)"
	}
	title = Truncate(fmt.Sprintf("%d. %s", index+1, title), max(r.width-14, 10))

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(indicator + title)
	} else {
		titleLine = indicator + r.styles.Headline.Render(title)
	}
	if r.scores != nil {
		titleLine += "  " + r.styles.Muted.Render(fmt.Sprintf("%.3f", r.scores[index]))
	}

	meta := a.Source
	if !a.PublishedAt.IsZero() {
		meta += " · " + a.PublishedAt.Format("2006-01-02")
	}
	metaLine := "    " + r.styles.Publisher.Render(meta)

	preview := Truncate(strings.Join(strings.Fields(a.Description), " "), max(r.width-6, 20))
	previewLine := r.styles.Muted.Render("    " + preview)

	return titleLine + "\n" + metaLine + "\n" + previewLine
}

// Truncate shortens s to n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// SetArticles replaces the list with plain articles.
func (r *ArticleList) SetArticles(articles []domain.Article) {
	r.articles = articles
	r.scores = nil
	r.selected = 0
}

// SetHits replaces the list with similarity hits.
func (r *ArticleList) SetHits(hits []domain.ArticleHit) {
	r.articles = make([]domain.Article, len(hits))
	r.scores = make([]float64, len(hits))
	for i, h := range hits {
		r.articles[i] = h.Article
		r.scores[i] = h.Similarity
	}
	r.selected = 0
}

// ShowingHits reports whether the list holds similarity hits.
func (r *ArticleList) ShowingHits() bool {
	return r.scores != nil
}

// Articles returns the current articles.
func (r *ArticleList) Articles() []domain.Article {
	return r.articles
}

// Selected returns the index of the selected article.
func (r *ArticleList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ArticleList) SetSelected(index int) {
	if index >= 0 && index < len(r.articles) {
		r.selected = index
	}
}

// SelectedArticle returns the currently selected article, or nil if none.
func (r *ArticleList) SelectedArticle() *domain.Article {
	if len(r.articles) == 0 || r.selected < 0 || r.selected >= len(r.articles) {
		return nil
	}
	return &r.articles[r.selected]
}

// MoveUp moves selection up.
func (r *ArticleList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ArticleList) MoveDown() {
	if r.selected < len(r.articles)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ArticleList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of articles.
func (r *ArticleList) Count() int {
	return len(r.articles)
}

// IsEmpty returns whether the list is empty.
func (r *ArticleList) IsEmpty() bool {
	return len(r.articles) == 0
}
