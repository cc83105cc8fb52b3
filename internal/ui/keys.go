package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
)

// Key bindings shared by the pages
var (
	keyUp       = key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up"))
	keyDown     = key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down"))
	keyLeft     = key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev"))
	keyRight    = key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next"))
	keyNext     = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field"))
	keyPrev     = key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field"))
	keyEnter    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
	keyToggle   = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	keySubmit   = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit"))
	keyCopy     = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy image URL"))
	keyRefresh  = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
	keyNavigate = key.NewBinding(key.WithKeys("f1", "f2", "f3", "f4"), key.WithHelp("F1-F4", "pages"))
	keyQuit     = key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit"))
)

// newTextInput creates a text input with a steady cursor
func newTextInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 48
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}
