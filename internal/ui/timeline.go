package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ngmaloney/coral-terminal/internal/coralapi"
	"github.com/ngmaloney/coral-terminal/internal/models"
)

// badgeKind selects how an observation's status is rendered
type badgeKind int

const (
	badgeNone badgeKind = iota
	badgeHealthy
	badgeAlert
)

func observationBadge(o models.Observation) badgeKind {
	switch {
	case o.StatusText() == "":
		return badgeNone
	case o.IsHealthy():
		return badgeHealthy
	default:
		return badgeAlert
	}
}

// timelinePage shows every observation of one coral, in server order
type timelinePage struct {
	env          env
	coralID      string
	loading      bool
	err          string
	notFound     bool
	observations []models.Observation
	cursor       int
	notice       string
	spinner      spinner.Model
}

func newTimelinePage(e env, coralID string) timelinePage {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	p := timelinePage{env: e, coralID: coralID, spinner: s}
	if strings.TrimSpace(coralID) == "" {
		p.err = "No coral ID provided"
	} else {
		p.loading = true
	}
	return p
}

func (p timelinePage) Init() tea.Cmd {
	if !p.loading {
		return nil
	}
	return tea.Batch(p.spinner.Tick, fetchTimeline(p.env.client, p.coralID))
}

func (p timelinePage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.env.width = msg.Width
		return p, nil

	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case timelineFetchedMsg:
		if msg.coralID != p.coralID {
			return p, nil
		}
		p.loading = false
		if msg.err != nil {
			p.env.logger.Warn("failed to load coral timeline",
				zap.String("coral_internal_id", p.coralID), zap.Error(msg.err))
			p.err = "Failed to load coral timeline"
			p.notFound = coralapi.IsNotFound(msg.err)
			return p, nil
		}
		p.err = ""
		p.notFound = false
		p.observations = msg.observations
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

func (p timelinePage) handleKey(msg tea.KeyMsg) (page, tea.Cmd) {
	switch {
	case key.Matches(msg, keyUp):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keyDown):
		if p.cursor < len(p.observations)-1 {
			p.cursor++
		}
	case key.Matches(msg, keyCopy):
		if p.cursor < len(p.observations) {
			url := p.env.client.ImageURL(p.observations[p.cursor].ImageFilename)
			if url != "" {
				return p, copyToClipboard(p.env.clipboard, url)
			}
		}
	case key.Matches(msg, keyRefresh):
		if p.coralID != "" && !p.loading {
			p.loading = true
			p.err = ""
			p.notice = ""
			return p, tea.Batch(p.spinner.Tick, fetchTimeline(p.env.client, p.coralID))
		}
	}
	return p, nil
}

func (p timelinePage) View() string {
	if p.loading {
		return fmt.Sprintf("%s Loading coral timeline...", p.spinner.View())
	}
	if p.err != "" {
		if p.notFound {
			return lipgloss.JoinVertical(lipgloss.Left,
				errorBanner(p.err),
				mutedStyle.Render(fmt.Sprintf("No coral with ID %s exists.", p.coralID)))
		}
		return errorBanner(p.err)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("Coral Timeline"),
		mutedStyle.Render("   ID: "+p.coralID),
	)

	sections := []string{header, ""}
	if len(p.observations) == 0 {
		sections = append(sections, mutedStyle.Render("No observations found for this coral."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	for i, obs := range p.observations {
		sections = append(sections, p.renderObservation(i, obs))
	}
	if p.notice != "" {
		sections = append(sections, successStyle.Render(p.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p timelinePage) renderObservation(i int, obs models.Observation) string {
	lines := []string{
		valueStyle.Bold(true).Render(obs.Timestamp.String()),
		mutedStyle.Render(p.env.client.ImageURL(obs.ImageFilename)),
	}

	if kind := observationBadge(obs); kind != badgeNone {
		lines = append(lines, labelStyle.Render("Status: ")+statusBadge(obs.StatusText(), kind == badgeHealthy))
	}
	if notes := obs.NotesText(); notes != "" {
		lines = append(lines, labelStyle.Render("Notes: ")+notes)
	}

	style := sectionBoxStyle
	if i == p.cursor {
		style = style.BorderForeground(colorPrimary).BorderStyle(lipgloss.ThickBorder())
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (p timelinePage) ShortHelp() []key.Binding {
	if len(p.observations) == 0 {
		return []key.Binding{keyRefresh}
	}
	return []key.Binding{keyUp, keyDown, keyCopy, keyRefresh}
}
