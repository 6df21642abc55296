package server

import (
	"io"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/forecastlab/forecastviz"
	"github.com/forecastlab/forecastviz/forecastset"
	"github.com/forecastlab/forecastviz/provider"
	"github.com/forecastlab/forecastviz/scene"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleListFiles returns the uploaded file catalog in upload order.
func (s *Server) handleListFiles(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	files := make([]provider.FileInfo, len(s.files))
	copy(files, s.files)
	return c.JSON(files)
}

// handleUpload ingests a dataset file: blank lines are dropped and datasets
// below the minimum row count are rejected before anything is stored. The
// cleaned content goes to the provider, which assigns the file id.
func (s *Server) handleUpload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "file is required"})
	}

	f, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "unable to read file"})
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "unable to read file"})
	}

	cleaned, err := provider.CleanUpload(content)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
	}

	info, err := s.provider.Upload(c.Context(), filepath.Base(header.Filename), cleaned)
	if err != nil {
		s.logger.Error().Err(err).Str("file", header.Filename).Msg("upload failed")
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: "unable to store file"})
	}

	s.mu.Lock()
	s.files = append(s.files, info)
	s.mu.Unlock()

	return c.JSON(info)
}

// handleDeleteFile removes a file from the provider and the catalog. Deleting
// the active file resets the chart state, matching navigation away from it.
func (s *Server) handleDeleteFile(c *fiber.Ctx) error {
	fileID := c.Params("id")

	if err := s.provider.Delete(c.Context(), fileID); err != nil {
		s.logger.Error().Err(err).Str("file", fileID).Msg("delete failed")
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: "unable to delete file"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.files {
		if f.ID == fileID {
			s.files = append(s.files[:i], s.files[i+1:]...)
			break
		}
	}
	if s.activeFile == fileID {
		s.activeFile = ""
		s.state = forecastviz.NewState()
		s.redrawLocked()
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type openFileRequest struct {
	DateColumn   string `json:"date_column"`
	TargetColumn string `json:"target_column"`
}

// handleOpenFile navigates to a file: fetches its dataset, resets forecast
// state, and tears down both charts. Forecasts committed for the previous
// file never survive navigation.
func (s *Server) handleOpenFile(c *fiber.Ctx) error {
	fileID := c.Params("id")

	var req openFileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}
	if req.DateColumn == "" || req.TargetColumn == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "date_column and target_column are required"})
	}

	dataset, err := s.provider.Dataset(c.Context(), fileID)
	if err != nil {
		s.logger.Error().Err(err).Str("file", fileID).Msg("dataset fetch failed")
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: "unable to load dataset"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeFile = fileID
	s.state = s.state.WithDataset(dataset, req.DateColumn, req.TargetColumn)
	s.redrawLocked()

	return c.JSON(dataset)
}

type forecastRequest struct {
	Mode  string `json:"mode"`
	Steps int    `json:"steps"`
}

// handleForecast runs one forecast action: four provider calls as a single
// batch. The batch commits all or nothing; on failure the previous forecast
// state is preserved and only an error flag is raised. A batch that resolves
// after the active file has changed is dropped.
func (s *Server) handleForecast(c *fiber.Ctx) error {
	var req forecastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	validation := req.Mode != "extrapolation"
	var steps *int
	if !validation {
		if req.Steps < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "number of forecasts can't be negative or zero"})
		}
		n := req.Steps
		steps = &n
	}

	s.mu.Lock()
	if s.activeFile == "" {
		s.mu.Unlock()
		return c.Status(fiber.StatusConflict).JSON(errorResponse{Error: "no active file"})
	}
	fileID := s.activeFile
	s.state = s.state.WithLoading(true).WithError(false)
	if !validation {
		s.state = s.state.WithSteps(req.Steps)
	}
	// loading tears the scenes down until the batch settles
	s.redrawLocked()
	s.mu.Unlock()

	set, err := s.provider.ForecastBatch(c.Context(), fileID, steps)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeFile != fileID {
		// stale resolution: the user navigated away mid-flight
		s.logger.Warn().Str("file", fileID).Msg("dropping stale forecast batch")
		return c.Status(fiber.StatusConflict).JSON(errorResponse{Error: "active file changed"})
	}

	s.state = s.state.WithLoading(false)
	if err != nil {
		s.state = s.state.WithError(true)
		s.redrawLocked()
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: "forecast batch failed"})
	}

	if validation {
		s.state = s.state.WithValidationForecasts(set)
	} else {
		s.state = s.state.WithExtrapolatedForecasts(set)
	}
	s.redrawLocked()

	return c.JSON(fiber.Map{"mode": req.Mode, "methods": set.Methods()})
}

type toggleRequest struct {
	Method  string `json:"method"`
	Checked bool   `json:"checked"`
}

// handleToggle flips one method's visibility and re-renders both charts from
// the derived visible sets.
func (s *Server) handleToggle(c *fiber.Ctx) error {
	var req toggleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	m := forecastset.Method(req.Method)
	if !m.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "unknown method"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithToggle(m, req.Checked)
	s.redrawLocked()

	return c.JSON(s.state.Visibility)
}

type resizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// handleResize records the new container size and redraws, the host-side
// equivalent of a window resize signal.
func (s *Server) handleResize(c *fiber.Ctx) error {
	var req resizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = req.Width, req.Height
	s.redrawLocked()

	return c.SendStatus(fiber.StatusNoContent)
}

// handleChart serves the live scene for one chart mode. When no forecasts are
// committed the empty state message is returned instead of a document.
func (s *Server) handleChart(c *fiber.Ctx) error {
	var chart *forecastviz.Chart
	switch c.Params("mode") {
	case "validation":
		chart = s.validation
	case "extrapolation":
		chart = s.forecast
	default:
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: "unknown chart mode"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := chart.Scene().(*scene.SVGHandle)
	if !ok || handle == nil {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString("No forecast.")
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(handle.Document())
}

// handleDownload serves the displayed extrapolated forecasts as
// forecasts.csv.
func (s *Server) handleDownload(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dates := s.state.FutureDates(s.opt.Window)
	label := s.state.Dataset.ColumnLabel(s.state.DateColumn)
	csv := forecastviz.ForecastCSV(s.state.VisibleExtrapolated, dates, label)

	c.Set(fiber.HeaderContentType, forecastviz.CSVContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+forecastviz.CSVFileName+`"`)
	return c.SendString(csv)
}
