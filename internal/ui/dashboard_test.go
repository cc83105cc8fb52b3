package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/ngmaloney/coral-terminal/internal/models"
)

func dashboardFixture() *fakeClient {
	return &fakeClient{
		sites: []models.DiveSite{
			{ID: 5, Name: "Klein Bonaire"},
			{ID: 6, Name: "Salt Pier"},
		},
		corals: map[int][]models.Coral{
			5: {
				{ID: 1, InternalID: "C1", Thumbnail: "c1.jpg", LastUpdated: models.ParseTimestamp("2025-03-01 10:00:00")},
				{ID: 9, InternalID: "C9", Thumbnail: "c9.jpg", LastUpdated: models.ParseTimestamp("2025-03-02 10:00:00")},
			},
		},
	}
}

func TestDashboardPage_AutoSelectsFirstSite(t *testing.T) {
	c := dashboardFixture()
	p := newDashboardPage(testEnv(c))

	pg, _ := drive(p, p.Init())
	d := pg.(dashboardPage)

	if d.siteIdx != 0 {
		t.Errorf("siteIdx = %d, want 0", d.siteIdx)
	}
	if len(d.corals) != 2 {
		t.Fatalf("expected 2 corals, got %d", len(d.corals))
	}

	view := pg.View()
	if strings.Count(view, "ID: ") != 2 {
		t.Errorf("expected two coral cards, got:\n%s", view)
	}
	if !strings.Contains(view, "Klein Bonaire") {
		t.Error("selected site name should be shown")
	}
}

func TestDashboardPage_SelectCoralNavigates(t *testing.T) {
	c := dashboardFixture()
	p := newDashboardPage(testEnv(c))
	pg, _ := drive(p, p.Init())

	pg, _ = press(pg, "tab")
	pg, _ = press(pg, "right")
	_, cmd := press(pg, "enter")

	path, ok := findNavigate(collect(cmd))
	if !ok || path != "/coral/C9" {
		t.Errorf("navigate = %q (%v), want /coral/C9", path, ok)
	}
}

func TestDashboardPage_EmptySite(t *testing.T) {
	c := dashboardFixture()
	c.corals = nil
	p := newDashboardPage(testEnv(c))
	pg, _ := drive(p, p.Init())

	if !strings.Contains(pg.View(), "No corals found for this dive site.") {
		t.Errorf("expected empty state, got:\n%s", pg.View())
	}
}

func TestDashboardPage_NoSites(t *testing.T) {
	c := &fakeClient{}
	p := newDashboardPage(testEnv(c))
	pg, _ := drive(p, p.Init())

	if n := c.callCount("ListCoralsAtSite"); n != 0 {
		t.Errorf("ListCoralsAtSite called %d times, want 0", n)
	}
	if strings.Contains(pg.View(), "No corals found") {
		t.Error("empty coral state needs a selected site")
	}
}

func TestDashboardPage_Errors(t *testing.T) {
	t.Run("dive sites", func(t *testing.T) {
		c := dashboardFixture()
		c.sitesErr = errors.New("timeout")
		p := newDashboardPage(testEnv(c))
		pg, _ := drive(p, p.Init())

		if !strings.Contains(pg.View(), "Failed to load dive sites") {
			t.Errorf("expected dive site error, got:\n%s", pg.View())
		}
	})

	t.Run("corals", func(t *testing.T) {
		c := dashboardFixture()
		c.coralsErr = errors.New("timeout")
		p := newDashboardPage(testEnv(c))
		pg, _ := drive(p, p.Init())

		if !strings.Contains(pg.View(), "Failed to load corals for this site") {
			t.Errorf("expected coral error, got:\n%s", pg.View())
		}
	})
}

func TestDashboardPage_SwitchingSiteClearsCoralError(t *testing.T) {
	c := dashboardFixture()
	c.coralsErr = errors.New("timeout")
	p := newDashboardPage(testEnv(c))
	pg, _ := drive(p, p.Init())
	if !strings.Contains(pg.View(), "Failed to load corals for this site") {
		t.Fatalf("expected coral error, got:\n%s", pg.View())
	}

	c.coralsErr = nil
	pg, cmd := press(pg, "right")
	view := pg.View()
	if strings.Contains(view, "Failed to load corals for this site") {
		t.Error("error from the previous site should be cleared")
	}
	if !strings.Contains(view, "Loading...") {
		t.Errorf("expected loading indicator for the new site, got:\n%s", view)
	}

	pg, _ = drive(pg, cmd)
	if !strings.Contains(pg.View(), "No corals found for this dive site.") {
		t.Errorf("expected empty state for Salt Pier, got:\n%s", pg.View())
	}
}

func TestDashboardPage_StaleSiteResultsDiscarded(t *testing.T) {
	c := dashboardFixture()
	c.corals[6] = []models.Coral{{ID: 2, InternalID: "S2"}}

	p := newDashboardPage(testEnv(c))
	pg, first := p.Update(diveSitesFetchedMsg{sites: c.sites})
	pg, second := press(pg, "right")

	firstMsgs := collect(first)
	for _, m := range append(collect(second), firstMsgs...) {
		pg, _ = pg.Update(m)
	}

	d := pg.(dashboardPage)
	if d.siteIdx != 1 {
		t.Fatalf("siteIdx = %d, want 1", d.siteIdx)
	}
	if len(d.corals) != 1 || d.corals[0].InternalID != "S2" {
		t.Errorf("corals = %+v, want Salt Pier's corals", d.corals)
	}
}

func TestDashboardPage_CopyThumbnailURL(t *testing.T) {
	c := dashboardFixture()
	var copied string
	e := testEnv(c)
	e.clipboard = func(s string) error {
		copied = s
		return nil
	}

	p := newDashboardPage(e)
	pg, _ := drive(p, p.Init())
	pg, _ = press(pg, "tab")
	pg, cmd := press(pg, "c")
	pg, _ = drive(pg, cmd)

	if copied != "http://api.test/images/c1.jpg" {
		t.Errorf("copied = %q", copied)
	}
	if !strings.Contains(pg.View(), "Copied http://api.test/images/c1.jpg") {
		t.Error("expected copy notice")
	}
}
