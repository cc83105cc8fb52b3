package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ngmaloney/coral-terminal/internal/coralapi"
	"github.com/ngmaloney/coral-terminal/internal/journal"
)

// page is one screen of the client. A page owns all of its state; the shell
// builds a fresh one on every navigation.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (page, tea.Cmd)
	View() string
	ShortHelp() []key.Binding
}

// textCapturer is implemented by pages with text inputs. While it reports
// true, single-character shortcuts are left to the page.
type textCapturer interface {
	CapturingText() bool
}

// Options configures the terminal client
type Options struct {
	Client        coralapi.Client
	Journal       journal.Store // optional
	Logger        *zap.Logger
	RecentUploads int
	StartPath     string
	Clipboard     func(string) error // defaults to the system clipboard
}

// env is what every page is built with
type env struct {
	client    coralapi.Client
	journal   journal.Store
	logger    *zap.Logger
	recent    int
	clipboard func(string) error
	width     int
}

// App is the navigation shell: nav bar, current page and help line
type App struct {
	env     env
	path    string
	current page
	gen     int // page generation; bumped on every navigation
	width   int
	height  int
	help    help.Model
}

// NewApp creates the shell positioned at opts.StartPath (default "/")
func NewApp(opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	start := opts.StartPath
	if start == "" {
		start = PathHome
	}

	a := App{
		env: env{
			client:    opts.Client,
			journal:   opts.Journal,
			logger:    logger.Named("ui"),
			recent:    opts.RecentUploads,
			clipboard: copyFn,
		},
		help: help.New(),
	}
	a.path = start
	a.gen = 1
	a.current = a.newPage(start)
	return a
}

// Path returns the current route
func (a App) Path() string {
	return a.path
}

// Init starts the initial page
func (a App) Init() tea.Cmd {
	return scope(a.gen, a.current.Init())
}

// Update handles messages and updates the shell
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.env.width = msg.Width
		a.help.Width = msg.Width
		return a.forward(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		capturing := a.capturingText()
		if link, ok := linkForKey(msg.String(), !capturing); ok {
			return a.navigate(link.path)
		}
		if !capturing && msg.String() == "q" {
			return a, tea.Quit
		}
		return a.forward(msg)

	case navigateMsg:
		return a.navigate(msg.path)

	case scopedMsg:
		if msg.gen != a.gen {
			a.env.logger.Debug("dropping result for unmounted page",
				zap.Int("generation", msg.gen),
				zap.Int("current", a.gen))
			return a, nil
		}
		return a.forward(msg.msg)
	}

	return a.forward(msg)
}

func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	p, cmd := a.current.Update(msg)
	a.current = p
	return a, scope(a.gen, cmd)
}

// navigate discards the current page and mounts the one for path
func (a App) navigate(path string) (tea.Model, tea.Cmd) {
	a.env.logger.Debug("navigate", zap.String("from", a.path), zap.String("to", path))
	a.path = path
	a.gen++
	a.current = a.newPage(path)
	return a, scope(a.gen, a.current.Init())
}

func (a App) newPage(path string) page {
	kind, coralID := resolveRoute(path)
	switch kind {
	case routeHome:
		return newHomePage(a.env)
	case routeUpload:
		return newUploadPage(a.env)
	case routeDashboard:
		return newDashboardPage(a.env)
	case routeTimeline:
		return newTimelinePage(a.env, coralID)
	case routeDiveSites:
		return newDiveSitesPage(a.env)
	}
	return notFoundPage{path: path}
}

func (a App) capturingText() bool {
	c, ok := a.current.(textCapturer)
	return ok && c.CapturingText()
}

// View renders the shell
func (a App) View() string {
	bindings := append(a.current.ShortHelp(), keyNavigate, keyQuit)

	return lipgloss.JoinVertical(lipgloss.Left,
		a.viewNavBar(),
		a.current.View(),
		helpStyle.Render(a.help.ShortHelpView(bindings)),
	)
}

func (a App) viewNavBar() string {
	parts := []string{brandStyle.Render("🪸 CoralWatch Bonaire")}
	for _, l := range navLinks {
		label := strings.ToUpper(l.fkey) + " " + l.label
		if isActiveLink(l, a.path) {
			parts = append(parts, activeNavLinkStyle.Render(label))
		} else {
			parts = append(parts, navLinkStyle.Render(label))
		}
	}
	return navBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

// scope tags every message produced by cmd with the page generation gen.
// Navigation and quit requests pass through untagged.
func scope(gen int, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		switch msg := cmd().(type) {
		case nil:
			return nil
		case navigateMsg, tea.QuitMsg:
			return msg
		case tea.BatchMsg:
			cmds := make([]tea.Cmd, len(msg))
			for i, c := range msg {
				cmds[i] = scope(gen, c)
			}
			return tea.BatchMsg(cmds)
		default:
			return scopedMsg{gen: gen, msg: msg}
		}
	}
}

// notFoundPage is shown for paths outside the route table
type notFoundPage struct {
	path string
}

func (p notFoundPage) Init() tea.Cmd { return nil }

func (p notFoundPage) Update(msg tea.Msg) (page, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keyEnter) {
		return p, navigate(PathHome)
	}
	return p, nil
}

func (p notFoundPage) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Page not found"),
		"",
		mutedStyle.Render("Nothing lives at "+p.path),
	)
}

func (p notFoundPage) ShortHelp() []key.Binding {
	return []key.Binding{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "home"))}
}
