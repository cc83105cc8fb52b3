package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/ngmaloney/coral-terminal/internal/coralapi"
	"github.com/ngmaloney/coral-terminal/internal/forms"
	"github.com/ngmaloney/coral-terminal/internal/models"
)

const (
	siteFieldName = iota
	siteFieldLatitude
	siteFieldLongitude
	siteFieldSubmit
	siteFieldCount
)

// diveSitesPage lists dive sites and adds new ones
type diveSitesPage struct {
	env env

	sites   []models.DiveSite
	loading bool
	loadErr string
	spinner spinner.Model

	inputs     []textinput.Model
	focus      int
	formErr    string
	success    string
	submitting bool
}

func newDiveSitesPage(e env) diveSitesPage {
	inputs := []textinput.Model{
		newTextInput("Enter dive site name", 120),
		newTextInput("e.g., 12.1543", 32),
		newTextInput("e.g., -68.2775", 32),
	}
	inputs[siteFieldName].Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return diveSitesPage{env: e, inputs: inputs, loading: true, spinner: s}
}

func (p diveSitesPage) Init() tea.Cmd {
	return tea.Batch(p.spinner.Tick, fetchDiveSites(p.env.client))
}

// CapturingText implements textCapturer
func (p diveSitesPage) CapturingText() bool {
	return p.focus != siteFieldSubmit
}

func (p diveSitesPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case diveSitesFetchedMsg:
		p.loading = false
		if msg.err != nil {
			p.env.logger.Warn("failed to load dive sites", zap.Error(msg.err))
			p.loadErr = "Failed to load dive sites"
			return p, nil
		}
		p.loadErr = ""
		p.sites = msg.sites
		return p, nil

	case diveSiteCreatedMsg:
		p.submitting = false
		if msg.err != nil {
			p.env.logger.Warn("failed to add dive site", zap.String("name", msg.name), zap.Error(msg.err))
			if coralapi.IsConflict(msg.err) {
				p.formErr = "A dive site with this name already exists"
			} else {
				p.formErr = "Failed to add dive site"
			}
			return p, nil
		}
		p.success = fmt.Sprintf("Dive site \"%s\" added successfully", msg.name)
		for i := range p.inputs {
			p.inputs[i].Reset()
		}
		p = p.setFocus(siteFieldName)
		p.loading = true
		return p, tea.Batch(p.spinner.Tick, fetchDiveSites(p.env.client))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyNext), key.Matches(msg, keyDown):
			return p.setFocus((p.focus + 1) % siteFieldCount), nil
		case key.Matches(msg, keyPrev), key.Matches(msg, keyUp):
			return p.setFocus((p.focus - 1 + siteFieldCount) % siteFieldCount), nil
		case key.Matches(msg, keyEnter), key.Matches(msg, keySubmit):
			return p.submit()
		}
	}

	if p.focus < len(p.inputs) {
		var cmd tea.Cmd
		p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p diveSitesPage) setFocus(field int) diveSitesPage {
	p.focus = field
	for i := range p.inputs {
		if i == field {
			p.inputs[i].Focus()
		} else {
			p.inputs[i].Blur()
		}
	}
	return p
}

// submit validates the form and sends the creation request. Invalid input
// never reaches the API.
func (p diveSitesPage) submit() (page, tea.Cmd) {
	if p.submitting {
		return p, nil
	}
	p.formErr = ""
	p.success = ""

	form, err := forms.ParseDiveSite(
		p.inputs[siteFieldName].Value(),
		p.inputs[siteFieldLatitude].Value(),
		p.inputs[siteFieldLongitude].Value(),
	)
	if err != nil {
		var fe *forms.FieldError
		if errors.As(err, &fe) {
			p.formErr = fe.Message
		} else {
			p.formErr = err.Error()
		}
		return p, nil
	}

	p.submitting = true
	return p, createDiveSite(p.env.client, coralapi.NewDiveSite{
		Name:      form.Name,
		Latitude:  form.Latitude,
		Longitude: form.Longitude,
	})
}

func (p diveSitesPage) View() string {
	form := []string{sectionHeaderStyle.Render("Add New Dive Site"), ""}
	if p.formErr != "" {
		form = append(form, errorBanner(p.formErr))
	}
	if p.success != "" {
		form = append(form, successBanner(p.success))
	}

	labels := []string{"Dive Site Name *", "Latitude (optional)", "Longitude (optional)"}
	for i, in := range p.inputs {
		form = append(form, fieldLabel(labels[i], p.focus == i), "  "+in.View())
	}

	label := "Add Dive Site"
	if p.submitting {
		label = "Adding..."
	}
	form = append(form, "", button(label, p.focus == siteFieldSubmit))

	list := []string{sectionHeaderStyle.Render("Existing Dive Sites"), ""}
	switch {
	case p.loading:
		list = append(list, fmt.Sprintf("  %s Loading dive sites...", p.spinner.View()))
	case p.loadErr != "":
		list = append(list, errorBanner(p.loadErr))
	default:
		list = append(list, p.renderTable())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Manage Dive Sites"),
		sectionBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, form...)),
		lipgloss.JoinVertical(lipgloss.Left, list...),
	)
}

func (p diveSitesPage) renderTable() string {
	rows := siteRows(p.sites)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("Name", "Latitude", "Longitude").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}

// siteRows builds the table body, with a single placeholder row when empty
func siteRows(sites []models.DiveSite) [][]string {
	if len(sites) == 0 {
		return [][]string{{"No dive sites found", "", ""}}
	}
	rows := make([][]string, len(sites))
	for i, s := range sites {
		rows[i] = []string{s.Name, models.FormatCoordinate(s.Latitude), models.FormatCoordinate(s.Longitude)}
	}
	return rows
}

func (p diveSitesPage) ShortHelp() []key.Binding {
	return []key.Binding{keyNext, keyPrev, keySubmit}
}
