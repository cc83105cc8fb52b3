package coralapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const uploadPath = "/upload"

// UploadImage sends an image with its metadata as multipart form data
func (c *HTTPClient) UploadImage(ctx context.Context, r UploadRequest) (*UploadResult, error) {
	body, contentType, err := buildUploadBody(r)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	var result UploadResult
	if err := c.do(req, uploadPath, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// buildUploadBody encodes the image and fields; empty optional fields are left out
func buildUploadBody(r UploadRequest) (*bytes.Buffer, string, error) {
	f, err := os.Open(r.ImagePath)
	if err != nil {
		return nil, "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, "", fmt.Errorf("detecting image type: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("rewinding image: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(r.ImagePath)))
	h.Set("Content-Type", mtype.String())
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("creating image part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copying image: %w", err)
	}

	fields := []struct{ name, value string }{
		{"dive_site_name", r.DiveSiteName},
		{"sctld_status_guess", r.StatusGuess},
		{"user_notes", r.Notes},
		{"existing_coral_internal_id", r.ExistingCoralID},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("writing %s: %w", field.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// ErrNotImage is returned by DetectImageType for files that are not images
var ErrNotImage = errors.New("not an image")

// DetectImageType sniffs a file's content and returns its image MIME type
func DetectImageType(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detecting file type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return mtype.String(), fmt.Errorf("%s is %s: %w", filepath.Base(path), mtype.String(), ErrNotImage)
	}
	return mtype.String(), nil
}
