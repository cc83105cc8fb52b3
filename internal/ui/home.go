package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ngmaloney/coral-terminal/internal/models"
)

const aboutText = `CoralWatch Bonaire is a citizen science initiative to monitor and protect
coral reef health around Bonaire. By collecting and analyzing coral
observations, we can better understand and respond to threats to coral
health.`

// homeEntry is one selectable line on the home page
type homeEntry struct {
	label string
	path  string
}

// homePage is the landing page: links plus this client's recent uploads
type homePage struct {
	env       env
	recent    []models.UploadRecord
	recentErr string
	cursor    int
	now       func() time.Time
}

func newHomePage(e env) homePage {
	return homePage{env: e, now: time.Now}
}

func (p homePage) Init() tea.Cmd {
	if p.env.journal == nil || p.env.recent <= 0 {
		return nil
	}
	return fetchRecentUploads(p.env.journal, p.env.recent)
}

func (p homePage) entries() []homeEntry {
	entries := []homeEntry{
		{label: "Upload Image", path: PathUpload},
		{label: "View Dashboard", path: PathDashboard},
	}
	for _, r := range p.recent {
		entries = append(entries, homeEntry{label: r.CoralInternalID, path: CoralPath(r.CoralInternalID)})
	}
	return entries
}

func (p homePage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case recentUploadsMsg:
		if msg.err != nil {
			p.env.logger.Warn("failed to read upload journal", zap.Error(msg.err))
			p.recentErr = "Recent uploads are unavailable"
			return p, nil
		}
		p.recent = msg.records
		return p, nil

	case tea.KeyMsg:
		entries := p.entries()
		switch {
		case key.Matches(msg, keyUp), key.Matches(msg, keyPrev):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keyDown), key.Matches(msg, keyNext):
			if p.cursor < len(entries)-1 {
				p.cursor++
			}
		case key.Matches(msg, keyEnter):
			return p, navigate(entries[p.cursor].path)
		}
	}
	return p, nil
}

func (p homePage) View() string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		sectionBoxStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left,
			sectionHeaderStyle.MarginTop(0).Render("Upload Coral Image"),
			"Submit a new coral observation by uploading an image and specifying the dive site location.",
			"",
			button("Upload Image", p.cursor == 0),
		)),
		" ",
		sectionBoxStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left,
			sectionHeaderStyle.MarginTop(0).Render("STINAPA Dashboard"),
			"View and analyze coral health data across different dive sites in Bonaire.",
			"",
			button("View Dashboard", p.cursor == 1),
		)),
	)

	sections := []string{
		titleStyle.Render("Welcome to CoralWatch Bonaire"),
		"",
		cards,
		sectionHeaderStyle.Render("About CoralWatch Bonaire"),
		aboutText,
	}

	if p.env.journal != nil {
		sections = append(sections, sectionHeaderStyle.Render("Recent uploads"))
		switch {
		case p.recentErr != "":
			sections = append(sections, mutedStyle.Render(p.recentErr))
		case len(p.recent) == 0:
			sections = append(sections, mutedStyle.Render("No uploads from this terminal yet."))
		default:
			for i, r := range p.recent {
				sections = append(sections, p.renderRecent(i+2, r))
			}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p homePage) renderRecent(idx int, r models.UploadRecord) string {
	marker := "  "
	id := valueStyle.Render(r.CoralInternalID)
	if idx == p.cursor {
		marker = "▸ "
		id = focusedLabelStyle.Render(r.CoralInternalID)
	}
	detail := fmt.Sprintf("%s · %s · %s", r.DiveSite, r.Filename, humanize.RelTime(r.UploadedAt, p.now(), "ago", "from now"))
	return marker + id + "  " + mutedStyle.Render(detail)
}

func (p homePage) ShortHelp() []key.Binding {
	return []key.Binding{keyUp, keyDown, keyEnter}
}
