// Package server hosts the forecast comparison view over HTTP: dataset
// selection, forecast actions, method toggles, the rendered charts, and the
// CSV download.
package server

import (
	"sync"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/forecastlab/forecastviz"
	"github.com/forecastlab/forecastviz/provider"
	"github.com/forecastlab/forecastviz/scene"
)

// Server owns the host-side chart state. All state transitions happen behind
// one mutex, mirroring the single UI thread of the reference frontend; the
// four forecast fetches of a batch still run concurrently inside the
// provider client.
type Server struct {
	app      *fiber.App
	provider *provider.Client
	logger   zerolog.Logger
	opt      *forecastviz.Options

	mu         sync.Mutex
	files      []provider.FileInfo
	activeFile string
	state      forecastviz.State
	validation *forecastviz.Chart
	forecast   *forecastviz.Chart

	// last reported container size, zero until a resize signal arrives
	width, height float64
}

func New(client *provider.Client, opt *forecastviz.Options, logger zerolog.Logger) *Server {
	if opt == nil {
		opt = forecastviz.NewDefaultOptions()
	}
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:     "forecastviz",
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		}),
		provider: client,
		logger:   logger,
		opt:      opt,
		state:    forecastviz.NewState(),
	}

	builder := scene.NewSVGBuilder()
	s.validation = forecastviz.NewChart(scene.Validation, builder, opt, logger)
	s.forecast = forecastviz.NewChart(scene.Extrapolation, builder, opt, logger)
	s.validation.Mount(s.measure)
	s.forecast.Mount(s.measure)

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.handleHealth)
	s.app.Get("/api/files", s.handleListFiles)
	s.app.Post("/api/files", s.handleUpload)
	s.app.Delete("/api/files/:id", s.handleDeleteFile)
	s.app.Post("/api/files/:id/open", s.handleOpenFile)
	s.app.Post("/api/forecast", s.handleForecast)
	s.app.Post("/api/toggle", s.handleToggle)
	s.app.Post("/api/resize", s.handleResize)
	s.app.Get("/chart/:mode", s.handleChart)
	s.app.Get("/forecasts.csv", s.handleDownload)
}

// measure reports the container size last announced by the client. Before the
// first resize signal the charts fall back to the default drawing size.
func (s *Server) measure() (float64, float64, bool) {
	return s.width, s.height, s.width > 0 && s.height > 0
}

// App exposes the fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validation.Unmount()
	s.forecast.Unmount()
	return s.app.Shutdown()
}

// redrawLocked rebuilds both scenes from the current state. Callers hold the
// mutex.
func (s *Server) redrawLocked() {
	if err := s.validation.Redraw(s.state); err != nil {
		s.logger.Error().Err(err).Msg("validation chart redraw failed")
	}
	if err := s.forecast.Redraw(s.state); err != nil {
		s.logger.Error().Err(err).Msg("forecast chart redraw failed")
	}
}
