// Package provider consumes the external forecast and dataset services. The
// forecasting methods themselves are opaque: a request names a method and an
// optional step count and comes back as a flat sequence of predictions.
package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/forecastlab/forecastviz/forecastset"
	"github.com/forecastlab/forecastviz/timeseries"
)

var (
	ErrBadStatus    = errors.New("provider returned non-200 status")
	ErrBatchAborted = errors.New("forecast batch aborted")
)

// Client talks to the forecast provider over HTTP with JSON bodies.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

type forecastRequest struct {
	MethodName string `json:"method_name"`
	FileID     string `json:"file_id"`
	// Steps is null for a validation forecast; the provider bounds the length
	// by its held-out window. Non-null requests extrapolate that many periods.
	Steps *int `json:"steps"`
}

// Forecast requests one method's predictions for a file.
func (c *Client) Forecast(ctx context.Context, fileID string, m forecastset.Method, steps *int) ([]float64, error) {
	body, err := json.Marshal(forecastRequest{
		MethodName: m.String(),
		FileID:     fileID,
		Steps:      steps,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to encode forecast request, %w", err)
	}

	var values []float64
	if err := c.post(ctx, "/forecast", body, &values); err != nil {
		return nil, fmt.Errorf("method %s, %w", m, err)
	}
	return values, nil
}

// ForecastBatch issues the four method requests concurrently and commits all
// or nothing: if any request fails, the whole batch is rejected so the caller
// keeps its previous forecast state untouched.
func (c *Client) ForecastBatch(ctx context.Context, fileID string, steps *int) (*forecastset.Set, error) {
	methods := forecastset.Methods()
	results := make([][]float64, len(methods))
	errs := make([]error, len(methods))

	var wg sync.WaitGroup
	for i, m := range methods {
		wg.Add(1)
		go func(i int, m forecastset.Method) {
			defer wg.Done()
			results[i], errs[i] = c.Forecast(ctx, fileID, m, steps)
		}(i, m)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			c.logger.Error().Err(err).Str("method", methods[i].String()).Msg("forecast request failed")
			return nil, fmt.Errorf("%w, %s", ErrBatchAborted, err)
		}
	}

	set := forecastset.NewSet()
	for i, m := range methods {
		if err := set.Put(m, results[i]); err != nil {
			return nil, err
		}
	}
	return set, nil
}

type datasetRequest struct {
	FileID string `json:"file_id"`
}

type datasetResponse struct {
	Columns []string         `json:"columns"`
	Rows    []timeseries.Row `json:"rows"`
}

// Dataset fetches the tabular contents of a file. The provider returns plain
// header names; they become the pickable column catalog.
func (c *Client) Dataset(ctx context.Context, fileID string) (timeseries.Dataset, error) {
	body, err := json.Marshal(datasetRequest{FileID: fileID})
	if err != nil {
		return timeseries.Dataset{}, fmt.Errorf("unable to encode dataset request, %w", err)
	}

	var resp datasetResponse
	if err := c.post(ctx, "/file/data", body, &resp); err != nil {
		return timeseries.Dataset{}, err
	}

	columns := make([]timeseries.Column, 0, len(resp.Columns))
	for _, name := range resp.Columns {
		columns = append(columns, timeseries.Column{ID: name, Label: name})
	}
	return timeseries.Dataset{Columns: columns, Rows: resp.Rows}, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("unable to build request, %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed, %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s status %d, %w", path, resp.StatusCode, ErrBadStatus)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable to decode %s response, %w", path, err)
	}
	return nil
}
