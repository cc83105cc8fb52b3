package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ngmaloney/coral-terminal/internal/models"
)

const (
	cardWidth = 36
	cardGap   = 1
)

// coralSelector renders coral cards in a grid. It is a pure view: the owning
// page keeps the cursor and selection and passes them in on every render.
type coralSelector struct {
	corals      []models.Coral
	loading     bool
	selectedID  string
	cursor      int // -1 hides the cursor
	width       int
	imageURL    func(filename string) string
	loadingText string
	emptyText   string
	now         time.Time
}

func (s coralSelector) View() string {
	if s.loading {
		return mutedStyle.Render(s.loadingText)
	}
	if len(s.corals) == 0 {
		return mutedStyle.Render(s.emptyText)
	}

	cols := gridColumns(s.width)
	var rows []string
	for start := 0; start < len(s.corals); start += cols {
		end := min(start+cols, len(s.corals))
		var cards []string
		for i := start; i < end; i++ {
			cards = append(cards, s.renderCard(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s coralSelector) renderCard(i int) string {
	c := s.corals[i]
	selected := c.InternalID == s.selectedID && s.selectedID != ""

	id := "ID: " + c.InternalID
	if selected {
		id = "✓ " + id
	}

	lines := []string{titleStyle.Render(id)}
	if url := s.imageURL(c.Thumbnail); url != "" {
		lines = append(lines, mutedStyle.Render(url))
	} else {
		lines = append(lines, mutedStyle.Render("No image yet"))
	}
	lines = append(lines, "Last updated: "+c.LastUpdated.Date())
	if c.LastUpdated.Valid() {
		now := s.now
		if now.IsZero() {
			now = time.Now()
		}
		lines = append(lines, mutedStyle.Render(humanize.RelTime(c.LastUpdated.Time, now, "ago", "from now")))
	}

	style := cardStyle
	switch {
	case i == s.cursor:
		style = cursorCardStyle
	case selected:
		style = selectedCardStyle
	}
	return style.MarginRight(cardGap).Render(strings.Join(lines, "\n"))
}

// gridColumns is the number of cards that fit in width
func gridColumns(width int) int {
	if width <= 0 {
		return 3
	}
	return max(1, width/(cardWidth+2+cardGap))
}

// moveGridCursor moves cursor over n cards laid out in cols columns
func moveGridCursor(cursor, n, cols int, dir string) int {
	if n == 0 {
		return 0
	}
	switch dir {
	case "left":
		cursor--
	case "right":
		cursor++
	case "up":
		cursor -= cols
	case "down":
		cursor += cols
	}
	return max(0, min(cursor, n-1))
}

func coralAt(corals []models.Coral, cursor int) (models.Coral, bool) {
	if cursor < 0 || cursor >= len(corals) {
		return models.Coral{}, false
	}
	return corals[cursor], true
}
