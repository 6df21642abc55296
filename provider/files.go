package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// FileInfo identifies one stored dataset file.
type FileInfo struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// MinUploadLines is the smallest accepted dataset: the provider needs three
// full seasonal cycles of monthly data to fit its models.
const MinUploadLines = 36

var ErrDatasetTooSmall = fmt.Errorf("dataset has to be more than %d rows", MinUploadLines)

// CleanUpload drops blank lines from an uploaded CSV and rejects datasets too
// small to forecast. The cleaned content is what gets stored, so row counts
// seen later by the dataset endpoint match what was validated here.
func CleanUpload(content []byte) ([]byte, error) {
	lines := strings.Split(string(content), "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cleaned = append(cleaned, strings.TrimRight(line, "\r"))
	}
	if len(cleaned) < MinUploadLines {
		return nil, ErrDatasetTooSmall
	}
	return []byte(strings.Join(cleaned, "\n")), nil
}

// Upload stores a dataset file with the provider and returns its assigned id.
// Callers are expected to have cleaned the content first.
func (c *Client) Upload(ctx context.Context, name string, content []byte) (FileInfo, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return FileInfo{}, fmt.Errorf("unable to build upload form, %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return FileInfo{}, fmt.Errorf("unable to build upload form, %w", err)
	}
	if err := mw.Close(); err != nil {
		return FileInfo{}, fmt.Errorf("unable to build upload form, %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/file/upload", &body)
	if err != nil {
		return FileInfo{}, fmt.Errorf("unable to build request, %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return FileInfo{}, fmt.Errorf("upload request failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return FileInfo{}, fmt.Errorf("/file/upload status %d, %w", resp.StatusCode, ErrBadStatus)
	}

	var info FileInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return FileInfo{}, fmt.Errorf("unable to decode upload response, %w", err)
	}
	return info, nil
}

// Delete removes a stored dataset file from the provider.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	body, err := json.Marshal(map[string]string{"file_id": fileID})
	if err != nil {
		return fmt.Errorf("unable to encode delete request, %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/file/", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("unable to build request, %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed, %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("/file/ status %d, %w", resp.StatusCode, ErrBadStatus)
	}
	return nil
}
