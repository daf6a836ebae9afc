// Package server serves clock frames over HTTP.
//
// GET /clock.png renders one frame. Query parameters:
//   - width, height: pixel size, default is the widget's intrinsic size
//   - at: HH:MM[:SS] to draw a fixed time instead of the current one
//
// Frames are cached per size, second and style, and identical concurrent
// requests share one render. While the view is hidden the endpoint answers
// 204 No Content.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lucax88x/clockface/internal/canvas"
	"github.com/lucax88x/clockface/internal/clock"
	"github.com/lucax88x/clockface/internal/clockface"
	"github.com/lucax88x/clockface/internal/widget"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

// View reports what to draw; a ClockView satisfies it.
type View interface {
	Style() clockface.Style
	Visible() bool
}

type Options struct {
	Addr         string
	Density      float64
	CacheSize    int
	MaxDimension int
}

type metrics struct {
	frames      *prometheus.CounterVec
	renderTime  prometheus.Histogram
	badRequests prometheus.Counter
	hidden      prometheus.Counter
}

type Server struct {
	server   *http.Server
	logger   *slog.Logger
	clock    clock.Clock
	view     View
	opts     Options
	cache    *lru.Cache[string, []byte]
	group    singleflight.Group
	registry *prometheus.Registry
	metrics  metrics
}

func NewServer(
	logger *slog.Logger,
	clock clock.Clock,
	view View,
	opts Options,
) (*Server, error) {
	cache, err := lru.New[string, []byte](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("server: could not create frame cache. %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics{
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clockface_frames_total",
				Help: "Frames served, by cache result",
			},
			[]string{"cache"},
		),
		renderTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "clockface_render_duration_seconds",
			Help:    "Time spent rendering and encoding a frame",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		badRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clockface_bad_requests_total",
			Help: "Frame requests rejected for invalid parameters",
		}),
		hidden: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clockface_hidden_requests_total",
			Help: "Frame requests answered without a frame while the clock is hidden",
		}),
	}
	registry.MustRegister(m.frames, m.renderTime, m.badRequests, m.hidden)

	mux := http.NewServeMux()

	s := &Server{
		server: &http.Server{
			Addr:         opts.Addr,
			Handler:      mux,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			IdleTimeout:  DefaultIdleTimeout,
		},
		logger:   logger,
		clock:    clock,
		view:     view,
		opts:     opts,
		cache:    cache,
		registry: registry,
		metrics:  m,
	}

	mux.HandleFunc("GET /clock.png", s.handleClock)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info("server: starting", slog.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: failed to start. %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	return s.server.Shutdown(ctx)
}

type frameRequest struct {
	width  int
	height int
	at     time.Time
	style  clockface.Style
}

func (r frameRequest) key() string {
	return fmt.Sprintf("%dx%d@%s/%s", r.width, r.height, r.at.Format(clock.Time), r.style.Fingerprint())
}

func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseFrameRequest(r)
	if err != nil {
		s.metrics.badRequests.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !s.view.Visible() {
		s.metrics.hidden.Inc()
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	key := req.key()
	png, ok := s.cache.Get(key)

	if ok {
		s.metrics.frames.WithLabelValues("hit").Inc()
	} else {
		v, err, _ := s.group.Do(key, func() (any, error) {
			return s.render(req)
		})
		if err != nil {
			s.logger.ErrorContext(r.Context(), "server: render failed", slog.Any("error", err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		png, _ = v.([]byte)
		s.cache.Add(key, png)
		s.metrics.frames.WithLabelValues("miss").Inc()
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(png); err != nil {
		s.logger.ErrorContext(r.Context(), "server: failed to write frame", slog.Any("error", err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
		s.logger.Error("server: failed to write health response", slog.Any("error", err))
	}
}

func (s *Server) parseFrameRequest(r *http.Request) (frameRequest, error) {
	size := widget.DefaultSize(s.opts.Density)
	query := r.URL.Query()

	width, err := s.dimension(query.Get("width"), size)
	if err != nil {
		return frameRequest{}, fmt.Errorf("width: %w", err)
	}

	height, err := s.dimension(query.Get("height"), size)
	if err != nil {
		return frameRequest{}, fmt.Errorf("height: %w", err)
	}

	now := s.clock.Now()
	at := now.Truncate(time.Second)
	if value := query.Get("at"); value != "" {
		at, err = clock.ParseAt(value, now)
		if err != nil {
			return frameRequest{}, err
		}
	}

	return frameRequest{
		width:  width,
		height: height,
		at:     at,
		style:  s.view.Style(),
	}, nil
}

func (s *Server) dimension(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("must be an integer, got %q", value)
	}

	if n < 1 || n > s.opts.MaxDimension {
		return 0, fmt.Errorf("must be between 1 and %d, got %d", s.opts.MaxDimension, n)
	}

	return n, nil
}

func (s *Server) render(req frameRequest) ([]byte, error) {
	timer := prometheus.NewTimer(s.metrics.renderTime)
	defer timer.ObserveDuration()

	raster := canvas.NewRaster(req.width, req.height)

	g := clockface.Layout(clockface.Viewport{Width: float64(req.width), Height: float64(req.height)})
	cmds := clockface.NewRenderer(g, req.style, raster).Render(clockface.TimeOf(req.at))
	clockface.Replay(raster, cmds)

	var buf bytes.Buffer
	if err := raster.PNG(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
