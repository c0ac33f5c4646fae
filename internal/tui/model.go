package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"quakemap/internal/config"
	"quakemap/internal/geom"
	"quakemap/internal/observability"
	"quakemap/internal/quake"
	"quakemap/internal/render"
	"quakemap/internal/scene"
)

// Source loads the two remote resources a render cycle needs.
type Source interface {
	Boundaries(ctx context.Context, location, object string) ([]geom.Polygon, error)
	Earthquakes(ctx context.Context, location string) ([]quake.Event, error)
}

type phase int

const (
	phaseIdle phase = iota
	phaseBoundaries
	phaseEarthquakes
)

func (p phase) String() string {
	switch p {
	case phaseBoundaries:
		return "fetching boundaries"
	case phaseEarthquakes:
		return "fetching earthquakes"
	}
	return "idle"
}

// Options wires the model's collaborators. Clock defaults to the real clock.
type Options struct {
	Config  *config.Config
	Source  Source
	Logger  *log.Logger
	Metrics *observability.Metrics
	Clock   clockwork.Clock
}

type Model struct {
	width  int
	height int

	cfg     *config.Config
	src     Source
	log     *log.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock

	// Render cycle. Only messages tagged with the current cycle are applied.
	ctx      context.Context
	cycle    int
	cycleCtx context.Context
	cancel   context.CancelFunc
	phase    phase
	rc       scene.Context

	surface   *render.Surface
	animStart time.Time

	status      string
	helpVisible bool
	spin        spinner.Model

	// earthquake table
	showEvents bool
	tbl        table.Model

	// hover state
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverQuake  int // index into surface earthquakes, -1 when none
}

// New builds the model. ctx bounds every fetch the model starts.
func New(ctx context.Context, opts Options) Model {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	m := Model{
		cfg:         opts.Config,
		src:         opts.Source,
		log:         opts.Logger,
		metrics:     opts.Metrics,
		clock:       clock,
		ctx:         ctx,
		surface:     render.NewSurface(),
		status:      "quakemap ready",
		helpVisible: true,
		hoverQuake:  -1,
	}
	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(dimStyle))
	m.tbl = table.New(
		table.WithColumns(eventColumns()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Close cancels any fetch still in flight.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}
