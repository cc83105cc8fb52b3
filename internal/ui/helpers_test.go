package ui

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ngmaloney/coral-terminal/internal/coralapi"
	"github.com/ngmaloney/coral-terminal/internal/models"
)

// fakeClient is an in-memory coralapi.Client that counts calls
type fakeClient struct {
	sites       []models.DiveSite
	sitesErr    error
	corals      map[int][]models.Coral
	coralsErr   error
	timelines   map[string][]models.Observation
	timelineErr error
	createErr   error
	upload      *coralapi.UploadResult
	uploadErr   error

	mu       sync.Mutex
	calls    map[string]int
	uploads  []coralapi.UploadRequest
	newSites []coralapi.NewDiveSite
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeClient) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeClient) ListDiveSites(ctx context.Context) ([]models.DiveSite, error) {
	f.record("ListDiveSites")
	if f.sitesErr != nil {
		return nil, f.sitesErr
	}
	return append([]models.DiveSite{}, f.sites...), nil
}

func (f *fakeClient) CreateDiveSite(ctx context.Context, site coralapi.NewDiveSite) (*models.DiveSite, error) {
	f.record("CreateDiveSite")
	f.mu.Lock()
	f.newSites = append(f.newSites, site)
	f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := models.DiveSite{ID: 100, Name: site.Name, Latitude: site.Latitude, Longitude: site.Longitude}
	f.sites = append(f.sites, created)
	return &created, nil
}

func (f *fakeClient) ListCoralsAtSite(ctx context.Context, diveSiteID int) ([]models.Coral, error) {
	f.record("ListCoralsAtSite")
	if f.coralsErr != nil {
		return nil, f.coralsErr
	}
	return f.corals[diveSiteID], nil
}

func (f *fakeClient) CoralTimeline(ctx context.Context, coralInternalID string) ([]models.Observation, error) {
	f.record("CoralTimeline")
	if f.timelineErr != nil {
		return nil, f.timelineErr
	}
	return f.timelines[coralInternalID], nil
}

func (f *fakeClient) UploadImage(ctx context.Context, req coralapi.UploadRequest) (*coralapi.UploadResult, error) {
	f.record("UploadImage")
	f.mu.Lock()
	f.uploads = append(f.uploads, req)
	f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.upload, nil
}

func (f *fakeClient) ImageURL(filename string) string {
	return testImageURL(filename)
}

// fakeJournal is an in-memory journal.Store
type fakeJournal struct {
	mu      sync.Mutex
	records []models.UploadRecord
	err     error
}

func (j *fakeJournal) Record(ctx context.Context, rec *models.UploadRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	rec.ID = int64(len(j.records) + 1)
	j.records = append(j.records, *rec)
	return nil
}

func (j *fakeJournal) ListRecent(ctx context.Context, limit int) ([]models.UploadRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return nil, j.err
	}
	out := make([]models.UploadRecord, 0, limit)
	for i := len(j.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, j.records[i])
	}
	return out, nil
}

func testEnv(c *fakeClient) env {
	return env{
		client:    c,
		logger:    zap.NewNop(),
		recent:    10,
		clipboard: func(string) error { return nil },
		width:     120,
	}
}

// collect runs cmd and returns the messages it produces, flattening batches.
// Spinner ticks are dropped so tests never wait on animation timers.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch m := msg.(type) {
	case nil, spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, collect(c)...)
		}
		return out
	case scopedMsg:
		if _, tick := m.msg.(spinner.TickMsg); tick {
			return nil
		}
	}
	return []tea.Msg{msg}
}

// drive feeds the messages produced by cmd back into p until it settles and
// returns every message seen along the way
func drive(p page, cmd tea.Cmd) (page, []tea.Msg) {
	var seen []tea.Msg
	pending := collect(cmd)
	for i := 0; i < 20 && len(pending) > 0; i++ {
		var next []tea.Msg
		for _, msg := range pending {
			seen = append(seen, msg)
			var c tea.Cmd
			p, c = p.Update(msg)
			next = append(next, collect(c)...)
		}
		pending = next
	}
	return p, seen
}

// driveApp is drive for the shell
func driveApp(a App, cmd tea.Cmd) (App, []tea.Msg) {
	var seen []tea.Msg
	pending := collect(cmd)
	for i := 0; i < 20 && len(pending) > 0; i++ {
		var next []tea.Msg
		for _, msg := range pending {
			seen = append(seen, msg)
			m, c := a.Update(msg)
			a = m.(App)
			next = append(next, collect(c)...)
		}
		pending = next
	}
	return a, seen
}

func press(p page, k string) (page, tea.Cmd) {
	return p.Update(keyMsg(k))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	case "f3":
		return tea.KeyMsg{Type: tea.KeyF3}
	case "f4":
		return tea.KeyMsg{Type: tea.KeyF4}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func findNavigate(msgs []tea.Msg) (string, bool) {
	for _, m := range msgs {
		if nav, ok := m.(navigateMsg); ok {
			return nav.path, true
		}
	}
	return "", false
}

// writeTestImage writes a file with a PNG signature and returns its path
func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coral.png")
	data := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing test image: %v", err)
	}
	return path
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
