package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ngmaloney/coral-terminal/internal/models"
)

// dashboardFocus is the part of the dashboard receiving arrow keys
type dashboardFocus int

const (
	focusSitePicker dashboardFocus = iota
	focusCoralGrid
)

// dashboardPage is the per-site coral gallery
type dashboardPage struct {
	env env

	sites        []models.DiveSite
	sitesLoading bool
	siteIdx      int // -1 until a site is selected

	corals        []models.Coral
	coralsLoading bool
	coralGen      int
	cursor        int

	focus   dashboardFocus
	err     string
	notice  string
	spinner spinner.Model
}

func newDashboardPage(e env) dashboardPage {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return dashboardPage{
		env:          e,
		sitesLoading: true,
		siteIdx:      -1,
		spinner:      s,
	}
}

func (p dashboardPage) Init() tea.Cmd {
	return tea.Batch(p.spinner.Tick, fetchDiveSites(p.env.client))
}

func (p dashboardPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.env.width = msg.Width
		return p, nil

	case spinner.TickMsg:
		if !p.sitesLoading && !p.coralsLoading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case diveSitesFetchedMsg:
		p.sitesLoading = false
		if msg.err != nil {
			p.env.logger.Warn("failed to load dive sites", zap.Error(msg.err))
			p.err = "Failed to load dive sites"
			return p, nil
		}
		p.sites = msg.sites
		if len(p.sites) > 0 {
			return p.selectSite(0)
		}
		return p, nil

	case coralsFetchedMsg:
		if msg.gen != p.coralGen {
			p.env.logger.Debug("discarding stale coral list",
				zap.Int("dive_site_id", msg.siteID), zap.Int("generation", msg.gen))
			return p, nil
		}
		p.coralsLoading = false
		if msg.err != nil {
			p.env.logger.Warn("failed to load corals",
				zap.Int("dive_site_id", msg.siteID), zap.Error(msg.err))
			p.err = "Failed to load corals for this site"
			p.corals = nil
			return p, nil
		}
		p.err = ""
		p.corals = msg.corals
		p.cursor = 0
		return p, nil

	case copiedMsg:
		if msg.err != nil {
			p.notice = "Could not copy to clipboard: " + msg.err.Error()
		} else {
			p.notice = "Copied " + msg.text
		}
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	return p, nil
}

// selectSite switches the gallery to sites[idx] and fetches its corals.
// Any in-flight fetch for a previous site becomes stale.
func (p dashboardPage) selectSite(idx int) (page, tea.Cmd) {
	p.siteIdx = idx
	p.coralGen++
	p.corals = nil
	p.cursor = 0
	p.coralsLoading = true
	p.notice = ""
	p.err = ""
	site := p.sites[idx]
	return p, tea.Batch(p.spinner.Tick, fetchCorals(p.env.client, p.coralGen, site.ID))
}

func (p dashboardPage) handleKey(msg tea.KeyMsg) (page, tea.Cmd) {
	if key.Matches(msg, keyNext) || key.Matches(msg, keyPrev) {
		if p.focus == focusSitePicker && len(p.corals) > 0 {
			p.focus = focusCoralGrid
		} else {
			p.focus = focusSitePicker
		}
		return p, nil
	}

	if key.Matches(msg, keyRefresh) && p.siteIdx >= 0 {
		return p.selectSite(p.siteIdx)
	}

	if p.focus == focusSitePicker {
		if len(p.sites) == 0 {
			return p, nil
		}
		switch {
		case key.Matches(msg, keyLeft):
			return p.selectSite((p.siteIdx - 1 + len(p.sites)) % len(p.sites))
		case key.Matches(msg, keyRight):
			return p.selectSite((p.siteIdx + 1) % len(p.sites))
		case key.Matches(msg, keyDown), key.Matches(msg, keyEnter):
			if len(p.corals) > 0 {
				p.focus = focusCoralGrid
			}
		}
		return p, nil
	}

	cols := gridColumns(p.env.width)
	switch {
	case key.Matches(msg, keyLeft):
		p.cursor = moveGridCursor(p.cursor, len(p.corals), cols, "left")
	case key.Matches(msg, keyRight):
		p.cursor = moveGridCursor(p.cursor, len(p.corals), cols, "right")
	case key.Matches(msg, keyDown):
		p.cursor = moveGridCursor(p.cursor, len(p.corals), cols, "down")
	case key.Matches(msg, keyUp):
		if p.cursor < cols {
			p.focus = focusSitePicker
			return p, nil
		}
		p.cursor = moveGridCursor(p.cursor, len(p.corals), cols, "up")
	case key.Matches(msg, keyEnter):
		if c, ok := coralAt(p.corals, p.cursor); ok {
			return p, navigate(CoralPath(c.InternalID))
		}
	case key.Matches(msg, keyCopy):
		if c, ok := coralAt(p.corals, p.cursor); ok {
			if url := p.env.client.ImageURL(c.Thumbnail); url != "" {
				return p, copyToClipboard(p.env.clipboard, url)
			}
		}
	}
	return p, nil
}

func (p dashboardPage) View() string {
	sections := []string{titleStyle.Render("STINAPA Dashboard"), ""}

	sections = append(sections, fieldLabel("Select Dive Site", p.focus == focusSitePicker))
	switch {
	case p.sitesLoading:
		sections = append(sections, fmt.Sprintf("  %s Loading dive sites...", p.spinner.View()))
	case p.siteIdx < 0:
		sections = append(sections, mutedStyle.Render("  Select a dive site..."))
	default:
		name := p.sites[p.siteIdx].Name
		sections = append(sections, fmt.Sprintf("  ◀ %s ▶  %s", valueStyle.Render(name),
			mutedStyle.Render(fmt.Sprintf("(%d of %d)", p.siteIdx+1, len(p.sites)))))
	}
	sections = append(sections, "")

	if p.err != "" {
		sections = append(sections, errorBanner(p.err), "")
	}

	if p.siteIdx >= 0 && (p.err == "" || len(p.corals) > 0) {
		cursor := -1
		if p.focus == focusCoralGrid {
			cursor = p.cursor
		}
		grid := coralSelector{
			corals:      p.corals,
			loading:     p.coralsLoading,
			cursor:      cursor,
			width:       p.env.width,
			imageURL:    p.env.client.ImageURL,
			loadingText: p.spinner.View() + " Loading...",
			emptyText:   "No corals found for this dive site.",
		}
		sections = append(sections, grid.View())
	}

	if p.notice != "" {
		sections = append(sections, "", successStyle.Render(p.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p dashboardPage) ShortHelp() []key.Binding {
	if p.focus == focusCoralGrid {
		open := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open timeline"))
		return []key.Binding{keyLeft, keyRight, keyUp, keyDown, open, keyCopy, keyNext}
	}
	site := key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "dive site"))
	return []key.Binding{site, keyNext, keyRefresh}
}
