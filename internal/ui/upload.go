package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ngmaloney/coral-terminal/internal/coralapi"
	"github.com/ngmaloney/coral-terminal/internal/forms"
	"github.com/ngmaloney/coral-terminal/internal/models"
)

// uploadField is a focusable part of the upload form
type uploadField int

const (
	fieldSite uploadField = iota
	fieldMode
	fieldCoral
	fieldImage
	fieldStatus
	fieldNotes
	fieldSubmit
	fieldCount
)

// uploadPage submits a coral photo, either as a new coral or as a new
// observation of an existing one
type uploadPage struct {
	env env

	sites        []models.DiveSite
	sitesLoading bool
	siteIdx      int // -1 when no site is selected

	mode          string
	corals        []models.Coral // nil until fetched for the selected site
	coralsLoading bool
	coralGen      int
	coralCursor   int
	selectedCoral string

	imageInput  textinput.Model
	statusInput textinput.Model
	notesInput  textinput.Model
	image       *selectedImage
	checking    bool

	focus      uploadField
	submitting bool
	err        string
	spinner    spinner.Model
}

func newUploadPage(e env) uploadPage {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return uploadPage{
		env:          e,
		sitesLoading: true,
		siteIdx:      -1,
		mode:         forms.ModeNewCoral,
		imageInput:   newTextInput("/path/to/coral.jpg", 1024),
		statusInput:  newTextInput("e.g., Healthy, SCTLD suspected", 120),
		notesInput:   newTextInput("Anything the reviewers should know", 500),
		spinner:      s,
	}
}

func (p uploadPage) Init() tea.Cmd {
	return tea.Batch(p.spinner.Tick, fetchDiveSites(p.env.client))
}

// CapturingText implements textCapturer
func (p uploadPage) CapturingText() bool {
	return p.focus == fieldImage || p.focus == fieldStatus || p.focus == fieldNotes
}

func (p uploadPage) selectedSite() (models.DiveSite, bool) {
	if p.siteIdx < 0 || p.siteIdx >= len(p.sites) {
		return models.DiveSite{}, false
	}
	return p.sites[p.siteIdx], true
}

// coralPickerVisible reports whether the existing coral selector is shown
func (p uploadPage) coralPickerVisible() bool {
	_, ok := p.selectedSite()
	return ok && p.mode == forms.ModeExistingCoral
}

func (p uploadPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.env.width = msg.Width
		return p, nil

	case spinner.TickMsg:
		if !p.sitesLoading && !p.coralsLoading && !p.submitting {
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
		return p, nil

	case coralsFetchedMsg:
		return p.handleCorals(msg), nil

	case imageCheckedMsg:
		p.checking = false
		if msg.problem != "" {
			p.image = nil
			p.err = msg.problem
			return p, nil
		}
		p.image = msg.image
		p.err = ""
		return p.setFocus(p.nextField(1)), nil

	case uploadFinishedMsg:
		return p.handleUploadFinished(msg)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	return p.updateInput(msg)
}

func (p uploadPage) handleCorals(msg coralsFetchedMsg) uploadPage {
	if msg.gen != p.coralGen {
		p.env.logger.Debug("discarding stale coral list",
			zap.Int("dive_site_id", msg.siteID), zap.Int("generation", msg.gen))
		return p
	}
	p.coralsLoading = false
	if msg.err != nil {
		p.env.logger.Warn("failed to load existing corals",
			zap.Int("dive_site_id", msg.siteID), zap.Error(msg.err))
		p.err = "Failed to load existing corals"
		p.corals = nil
		return p
	}
	p.corals = msg.corals
	p.coralCursor = 0
	return p
}

func (p uploadPage) handleUploadFinished(msg uploadFinishedMsg) (page, tea.Cmd) {
	p.submitting = false
	if msg.err != nil {
		p.env.logger.Warn("upload failed", zap.Error(msg.err))
		p.err = coralapi.ErrorMessage(msg.err, "Failed to upload image")
		return p, nil
	}

	res := msg.result
	p.env.logger.Info("upload complete",
		zap.String("coral_internal_id", res.CoralInternalID),
		zap.String("filename", res.Filename))

	rec := models.UploadRecord{
		CoralInternalID: res.CoralInternalID,
		DiveSite:        res.DiveSite,
		Filename:        res.Filename,
		Message:         res.Message,
	}
	if site, ok := p.selectedSite(); ok && rec.DiveSite == "" {
		rec.DiveSite = site.Name
	}

	p.image = nil
	p.imageInput.Reset()
	p.siteIdx = -1
	p.selectedCoral = ""
	p.corals = nil
	p.err = ""

	return p, tea.Batch(
		recordUpload(p.env.journal, p.env.logger, rec),
		navigate(CoralPath(res.CoralInternalID)),
	)
}

// selectSite changes the dive site. The existing coral selection is always
// cleared and, in existing-coral mode, the new site's corals are fetched.
func (p uploadPage) selectSite(idx int) (uploadPage, tea.Cmd) {
	p.siteIdx = idx
	p.err = ""
	return p.resetCorals()
}

// setMode switches between new and existing coral uploads
func (p uploadPage) setMode(mode string) (uploadPage, tea.Cmd) {
	if mode == p.mode {
		return p, nil
	}
	p.mode = mode
	return p.resetCorals()
}

// resetCorals drops the coral list and selection. Results of any fetch still
// in flight are ignored once they arrive.
func (p uploadPage) resetCorals() (uploadPage, tea.Cmd) {
	p.selectedCoral = ""
	p.corals = nil
	p.coralCursor = 0
	p.coralGen++
	p.coralsLoading = false

	site, ok := p.selectedSite()
	if !ok || p.mode != forms.ModeExistingCoral {
		return p, nil
	}
	p.coralsLoading = true
	return p, tea.Batch(p.spinner.Tick, fetchCorals(p.env.client, p.coralGen, site.ID))
}

func (p uploadPage) handleKey(msg tea.KeyMsg) (page, tea.Cmd) {
	if key.Matches(msg, keySubmit) {
		return p.submit()
	}
	if key.Matches(msg, keyNext) {
		return p.setFocus(p.nextField(1)), nil
	}
	if key.Matches(msg, keyPrev) {
		return p.setFocus(p.nextField(-1)), nil
	}

	switch p.focus {
	case fieldSite:
		n := len(p.sites)
		switch {
		case n == 0:
		case key.Matches(msg, keyRight):
			return p.selectSite((p.siteIdx+2)%(n+1) - 1)
		case key.Matches(msg, keyLeft):
			return p.selectSite((p.siteIdx+n+1)%(n+1) - 1)
		case key.Matches(msg, keyDown), key.Matches(msg, keyEnter):
			return p.setFocus(p.nextField(1)), nil
		}
		return p, nil

	case fieldMode:
		switch {
		case key.Matches(msg, keyLeft), key.Matches(msg, keyRight), key.Matches(msg, keyToggle):
			if p.mode == forms.ModeNewCoral {
				return p.setMode(forms.ModeExistingCoral)
			}
			return p.setMode(forms.ModeNewCoral)
		case key.Matches(msg, keyDown), key.Matches(msg, keyEnter):
			return p.setFocus(p.nextField(1)), nil
		case key.Matches(msg, keyUp):
			return p.setFocus(p.nextField(-1)), nil
		}
		return p, nil

	case fieldCoral:
		cols := gridColumns(p.env.width)
		switch {
		case key.Matches(msg, keyLeft):
			p.coralCursor = moveGridCursor(p.coralCursor, len(p.corals), cols, "left")
		case key.Matches(msg, keyRight):
			p.coralCursor = moveGridCursor(p.coralCursor, len(p.corals), cols, "right")
		case key.Matches(msg, keyUp):
			p.coralCursor = moveGridCursor(p.coralCursor, len(p.corals), cols, "up")
		case key.Matches(msg, keyDown):
			p.coralCursor = moveGridCursor(p.coralCursor, len(p.corals), cols, "down")
		case key.Matches(msg, keyEnter), key.Matches(msg, keyToggle):
			if c, ok := coralAt(p.corals, p.coralCursor); ok {
				p.selectedCoral = c.InternalID
			}
		}
		return p, nil

	case fieldImage:
		if key.Matches(msg, keyEnter) {
			path := strings.TrimSpace(p.imageInput.Value())
			if path == "" {
				p.image = nil
				return p, nil
			}
			p.checking = true
			return p, checkImage(path)
		}

	case fieldStatus, fieldNotes:
		if key.Matches(msg, keyEnter) || key.Matches(msg, keyDown) {
			return p.setFocus(p.nextField(1)), nil
		}
		if key.Matches(msg, keyUp) {
			return p.setFocus(p.nextField(-1)), nil
		}

	case fieldSubmit:
		switch {
		case key.Matches(msg, keyEnter):
			return p.submit()
		case key.Matches(msg, keyUp):
			return p.setFocus(p.nextField(-1)), nil
		}
		return p, nil
	}

	return p.updateInput(msg)
}

// updateInput forwards msg to the focused text input
func (p uploadPage) updateInput(msg tea.Msg) (page, tea.Cmd) {
	var cmd tea.Cmd
	switch p.focus {
	case fieldImage:
		p.imageInput, cmd = p.imageInput.Update(msg)
		// an edited path no longer names the checked file
		if p.image != nil && strings.TrimSpace(p.imageInput.Value()) != p.image.path {
			p.image = nil
		}
	case fieldStatus:
		p.statusInput, cmd = p.statusInput.Update(msg)
	case fieldNotes:
		p.notesInput, cmd = p.notesInput.Update(msg)
	}
	return p, cmd
}

// nextField returns the next visible field in direction dir
func (p uploadPage) nextField(dir int) uploadField {
	f := p.focus
	for range fieldCount {
		f = (f + uploadField(dir) + fieldCount) % fieldCount
		if f == fieldCoral && !p.coralPickerVisible() {
			continue
		}
		return f
	}
	return p.focus
}

func (p uploadPage) setFocus(f uploadField) uploadPage {
	p.focus = f
	p.imageInput.Blur()
	p.statusInput.Blur()
	p.notesInput.Blur()
	switch f {
	case fieldImage:
		p.imageInput.Focus()
	case fieldStatus:
		p.statusInput.Focus()
	case fieldNotes:
		p.notesInput.Focus()
	}
	return p
}

// submit checks the preconditions in order and sends the upload. A failed
// check reports its own message and makes no request.
func (p uploadPage) submit() (page, tea.Cmd) {
	if p.submitting {
		return p, nil
	}

	form := forms.Upload{Mode: p.mode, ExistingCoralID: p.selectedCoral}
	if p.image != nil {
		form.ImagePath = p.image.path
	}
	if site, ok := p.selectedSite(); ok {
		form.DiveSiteName = site.Name
	}

	if err := form.Validate(); err != nil {
		var fe *forms.FieldError
		if errors.As(err, &fe) {
			p.err = fe.Message
		} else {
			p.err = err.Error()
		}
		return p, nil
	}

	req := coralapi.UploadRequest{
		ImagePath:    form.ImagePath,
		DiveSiteName: form.DiveSiteName,
		StatusGuess:  strings.TrimSpace(p.statusInput.Value()),
		Notes:        strings.TrimSpace(p.notesInput.Value()),
	}
	if p.mode == forms.ModeExistingCoral {
		req.ExistingCoralID = form.ExistingCoralID
	}

	p.submitting = true
	p.err = ""
	p.env.logger.Info("uploading image",
		zap.String("file", p.image.name),
		zap.String("dive_site", req.DiveSiteName),
		zap.String("mode", p.mode))
	return p, tea.Batch(p.spinner.Tick, uploadImage(p.env.client, req))
}

func (p uploadPage) View() string {
	sections := []string{titleStyle.Render("Upload Coral Image"), ""}

	if p.err != "" {
		sections = append(sections, errorBanner(p.err), "")
	}

	// Dive site
	sections = append(sections, fieldLabel("Dive Site", p.focus == fieldSite))
	switch site, ok := p.selectedSite(); {
	case p.sitesLoading:
		sections = append(sections, fmt.Sprintf("  %s Loading dive sites...", p.spinner.View()))
	case ok:
		sections = append(sections, "  ◀ "+valueStyle.Render(site.Name)+" ▶")
	default:
		sections = append(sections, mutedStyle.Render("  ◀ Select a dive site ▶"))
	}
	sections = append(sections, "")

	// Mode
	newMark, existingMark := "(•)", "( )"
	if p.mode == forms.ModeExistingCoral {
		newMark, existingMark = "( )", "(•)"
	}
	sections = append(sections,
		fieldLabel("Upload Type", p.focus == fieldMode),
		fmt.Sprintf("  %s Upload as New Coral   %s Add to Existing Coral", newMark, existingMark),
		"",
	)

	// Existing coral
	if p.coralPickerVisible() {
		cursor := -1
		if p.focus == fieldCoral {
			cursor = p.coralCursor
		}
		selector := coralSelector{
			corals:      p.corals,
			loading:     p.coralsLoading,
			selectedID:  p.selectedCoral,
			cursor:      cursor,
			width:       p.env.width,
			imageURL:    p.env.client.ImageURL,
			loadingText: "Loading existing corals...",
			emptyText:   "No existing corals found at this site.",
		}
		sections = append(sections, fieldLabel("Select Existing Coral", p.focus == fieldCoral), selector.View(), "")
	}

	// Image
	sections = append(sections, fieldLabel("Coral Image", p.focus == fieldImage), "  "+p.imageInput.View())
	switch {
	case p.checking:
		sections = append(sections, mutedStyle.Render("  Checking image..."))
	case p.image != nil:
		preview := fmt.Sprintf("  %s · %s · %s", p.image.name, humanize.Bytes(uint64(p.image.size)), p.image.mimeType)
		sections = append(sections, successStyle.Render(preview))
	}
	sections = append(sections, "")

	sections = append(sections,
		fieldLabel("Status Guess (optional)", p.focus == fieldStatus), "  "+p.statusInput.View(), "",
		fieldLabel("Notes (optional)", p.focus == fieldNotes), "  "+p.notesInput.View(), "",
	)

	if p.submitting {
		sections = append(sections, fmt.Sprintf("%s Uploading...", p.spinner.View()))
	} else {
		sections = append(sections, button("Upload Image", p.focus == fieldSubmit))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p uploadPage) ShortHelp() []key.Binding {
	bindings := []key.Binding{keyNext, keyPrev}
	switch p.focus {
	case fieldSite:
		bindings = append(bindings, key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "dive site")))
	case fieldMode:
		bindings = append(bindings, keyToggle)
	case fieldCoral:
		bindings = append(bindings, key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose coral")))
	case fieldImage:
		bindings = append(bindings, key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select file")))
	}
	return append(bindings, keySubmit)
}
