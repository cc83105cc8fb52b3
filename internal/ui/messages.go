package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ngmaloney/coral-terminal/internal/coralapi"
	"github.com/ngmaloney/coral-terminal/internal/journal"
	"github.com/ngmaloney/coral-terminal/internal/models"
)

// journalTimeout bounds local journal queries. API deadlines are owned by
// the coralapi client.
const journalTimeout = 5 * time.Second

// Message types for async operations

// navigateMsg asks the shell to switch to another route
type navigateMsg struct {
	path string
}

// scopedMsg carries a page's async result tagged with the page generation
// that issued it
type scopedMsg struct {
	gen int
	msg tea.Msg
}

// diveSitesFetchedMsg is sent when the dive site list has been fetched
type diveSitesFetchedMsg struct {
	sites []models.DiveSite
	err   error
}

// coralsFetchedMsg is sent when the corals at a dive site have been fetched.
// gen is the selection generation the request was issued under.
type coralsFetchedMsg struct {
	gen    int
	siteID int
	corals []models.Coral
	err    error
}

// timelineFetchedMsg is sent when a coral's observations have been fetched
type timelineFetchedMsg struct {
	coralID      string
	observations []models.Observation
	err          error
}

// diveSiteCreatedMsg is sent when a dive site creation request completes
type diveSiteCreatedMsg struct {
	name string
	site *models.DiveSite
	err  error
}

// imageCheckedMsg is sent when a candidate image path has been inspected.
// problem is a user-facing reason the path was rejected.
type imageCheckedMsg struct {
	image   *selectedImage
	problem string
}

// uploadFinishedMsg is sent when an upload request completes
type uploadFinishedMsg struct {
	result *coralapi.UploadResult
	err    error
}

// recentUploadsMsg is sent when the local journal has been read
type recentUploadsMsg struct {
	records []models.UploadRecord
	err     error
}

// copiedMsg is sent after an attempt to copy text to the clipboard
type copiedMsg struct {
	text string
	err  error
}

// selectedImage is an image file chosen for upload
type selectedImage struct {
	path     string
	name     string
	size     int64
	mimeType string
}

func navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{path: path}
	}
}

func fetchDiveSites(client coralapi.DiveSiteClient) tea.Cmd {
	return func() tea.Msg {
		sites, err := client.ListDiveSites(context.Background())
		return diveSitesFetchedMsg{sites: sites, err: err}
	}
}

func fetchCorals(client coralapi.CoralClient, gen, siteID int) tea.Cmd {
	return func() tea.Msg {
		corals, err := client.ListCoralsAtSite(context.Background(), siteID)
		return coralsFetchedMsg{gen: gen, siteID: siteID, corals: corals, err: err}
	}
}

func fetchTimeline(client coralapi.CoralClient, coralID string) tea.Cmd {
	return func() tea.Msg {
		observations, err := client.CoralTimeline(context.Background(), coralID)
		return timelineFetchedMsg{coralID: coralID, observations: observations, err: err}
	}
}

func createDiveSite(client coralapi.DiveSiteClient, site coralapi.NewDiveSite) tea.Cmd {
	return func() tea.Msg {
		created, err := client.CreateDiveSite(context.Background(), site)
		return diveSiteCreatedMsg{name: site.Name, site: created, err: err}
	}
}

// checkImage verifies that path is a regular file holding an image
func checkImage(path string) tea.Cmd {
	return func() tea.Msg {
		info, err := os.Stat(path)
		if err != nil {
			return imageCheckedMsg{problem: "Image file not found: " + path}
		}
		if !info.Mode().IsRegular() {
			return imageCheckedMsg{problem: "Not a regular file: " + path}
		}

		mimeType, err := coralapi.DetectImageType(path)
		if errors.Is(err, coralapi.ErrNotImage) {
			return imageCheckedMsg{problem: fmt.Sprintf("Not an image file: %s (%s)", filepath.Base(path), mimeType)}
		}
		if err != nil {
			return imageCheckedMsg{problem: "Could not read image: " + err.Error()}
		}

		return imageCheckedMsg{image: &selectedImage{
			path:     path,
			name:     filepath.Base(path),
			size:     info.Size(),
			mimeType: mimeType,
		}}
	}
}

func uploadImage(client coralapi.UploadClient, req coralapi.UploadRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := client.UploadImage(context.Background(), req)
		return uploadFinishedMsg{result: result, err: err}
	}
}

// recordUpload appends a successful upload to the journal. Failures are only
// logged so they never hold up navigation.
func recordUpload(store journal.Store, logger *zap.Logger, rec models.UploadRecord) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()

		if err := store.Record(ctx, &rec); err != nil {
			logger.Warn("failed to record upload in journal",
				zap.String("coral_internal_id", rec.CoralInternalID),
				zap.Error(err))
		}
		return nil
	}
}

func fetchRecentUploads(store journal.Store, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()

		records, err := store.ListRecent(ctx, limit)
		return recentUploadsMsg{records: records, err: err}
	}
}

func copyToClipboard(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: text, err: write(text)}
	}
}
