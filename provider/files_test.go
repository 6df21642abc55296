package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csvLines(n int) string {
	lines := make([]string, 0, n)
	lines = append(lines, "Month,Sales")
	for i := 1; i < n; i++ {
		lines = append(lines, "2023-01-31,100")
	}
	return strings.Join(lines, "\n")
}

func TestCleanUpload(t *testing.T) {
	testData := map[string]struct {
		content     string
		expected    string
		expectedErr error
	}{
		"too small": {
			content:     csvLines(10),
			expectedErr: ErrDatasetTooSmall,
		},
		"blank lines dropped before counting": {
			content:     csvLines(35) + "\n\n\n\n",
			expectedErr: ErrDatasetTooSmall,
		},
		"exactly minimum": {
			content:  csvLines(36),
			expected: csvLines(36),
		},
		"blank lines and cr stripped": {
			content:  strings.ReplaceAll(csvLines(40), "\n", "\r\n\n"),
			expected: csvLines(40),
		},
	}
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			got, err := CleanUpload([]byte(td.content))
			if td.expectedErr != nil {
				require.ErrorIs(t, err, td.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, string(got))
		})
	}
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/file/upload", r.URL.Path)
		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		assert.Equal(t, "sales.csv", header.Filename)
		json.NewEncoder(w).Encode(FileInfo{ID: "abc123", Name: header.Filename})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	info, err := c.Upload(context.Background(), "sales.csv", []byte(csvLines(36)))
	require.NoError(t, err)
	assert.Equal(t, FileInfo{ID: "abc123", Name: "sales.csv"}, info)
}

func TestUploadBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "disk full", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	_, err := c.Upload(context.Background(), "sales.csv", []byte(csvLines(36)))
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestDelete(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/file/", r.URL.Path)
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotID = req["file_id"]
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	require.NoError(t, c.Delete(context.Background(), "abc123"))
	assert.Equal(t, "abc123", gotID)

	srv.Close()
	assert.Error(t, c.Delete(context.Background(), "abc123"))
}
