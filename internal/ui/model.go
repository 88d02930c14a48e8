package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dgilberg1988/my-surf-spots/internal/catalog"
	"github.com/dgilberg1988/my-surf-spots/internal/flights"
	"github.com/dgilberg1988/my-surf-spots/internal/geolocation"
	"github.com/dgilberg1988/my-surf-spots/internal/marine"
	"github.com/dgilberg1988/my-surf-spots/internal/models"
	"github.com/dgilberg1988/my-surf-spots/internal/ranking"
)

// LocationProbe finds the user's position once
type LocationProbe interface {
	Acquire(ctx context.Context) (models.Coordinates, error)
}

// FlightOpener launches a flight search for a spot
type FlightOpener interface {
	Open(spot models.SurfSpot) error
}

// LocationState tracks the geolocation probe
type LocationState int

const (
	LocationPending     LocationState = iota // Probe in flight
	LocationKnown                            // userLocation is set
	LocationUnavailable                      // Probe failed; distances hidden
)

// Options configures a Model
type Options struct {
	Catalog  *catalog.Catalog
	Fetcher  marine.WaveFetcher
	Probe    LocationProbe
	Opener   FlightOpener
	SortMode ranking.SortMode
	Logger   *slog.Logger
}

// Model is the widget's controller state. It is only changed in Update.
type Model struct {
	width  int
	height int

	catalog *catalog.Catalog
	fetcher marine.WaveFetcher
	probe   LocationProbe
	opener  FlightOpener
	logger  *slog.Logger

	// Data
	heights      []models.WaveHeight
	userLocation *models.Coordinates // Set at most once
	locState     LocationState
	locErr       error

	// Loading states
	refreshing bool
	refreshGen int // Only the newest refresh may write heights

	// Presentation
	sortMode    ranking.SortMode
	selectedPos int // Catalog position of the highlighted card
	status      string
	spinner     spinner.Model
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.SortMode == "" {
		opts.SortMode = ranking.SortByWaveHeight
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	heights := pendingHeights(opts.Catalog.Len())

	m := Model{
		catalog:  opts.Catalog,
		fetcher:  opts.Fetcher,
		probe:    opts.Probe,
		opener:   opts.Opener,
		logger:   opts.Logger.With("component", "ui"),
		heights:  heights,
		locState: LocationPending,
		sortMode: opts.SortMode,
		spinner:  s,
	}

	if m.probe == nil {
		m.locState = LocationUnavailable
		m.locErr = geolocation.ErrUnsupported
	}
	if m.fetcher != nil {
		// Init's refresh is generation 1
		m.refreshGen = 1
		m.refreshing = true
	}

	return m
}

// Init starts the location probe and the first wave refresh together
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}

	if m.probe != nil {
		cmds = append(cmds, acquireLocation(m.probe))
	}
	if m.fetcher != nil {
		cmds = append(cmds, refreshWaves(m.fetcher, m.catalog.Spots(), m.refreshGen))
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case locationMsg:
		return m.handleLocation(msg), nil

	case wavesRefreshedMsg:
		if msg.gen != m.refreshGen {
			m.logger.Debug("dropping stale refresh", "gen", msg.gen, "current", m.refreshGen)
			return m, nil
		}
		m.heights = msg.heights
		m.refreshing = false
		m.logger.Info("wave heights refreshed", "spots", len(msg.heights), "unavailable", countUnavailable(msg.heights))
		return m, nil

	case flightOpenedMsg:
		if msg.err != nil {
			m.logger.Warn("flight search failed", "spot", msg.spot, "error", msg.err)
			m.status = fmt.Sprintf("Could not open a browser for %s", msg.spot)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleLocation records the first successful fix and ignores later ones
func (m Model) handleLocation(msg locationMsg) Model {
	if m.userLocation != nil {
		return m
	}
	if msg.err != nil {
		m.locState = LocationUnavailable
		m.locErr = msg.err
		if errors.Is(msg.err, geolocation.ErrUnsupported) {
			m.logger.Info("geolocation unsupported; distances hidden")
		} else {
			m.logger.Info("geolocation failed; distances hidden", "error", msg.err)
		}
		return m
	}

	coords := msg.coords
	m.userLocation = &coords
	m.locState = LocationKnown
	m.locErr = nil
	return m
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		m.moveSelection(-1)
		return m, nil

	case "down", "j":
		m.moveSelection(1)
		return m, nil

	case "s":
		m.sortMode = m.sortMode.Toggle()
		m.status = ""
		if ranking.Effective(m.sortMode, m.userLocation) != m.sortMode {
			m.status = "Distance sort needs your location; sorting by wave height"
			m.logger.Info("distance sort unavailable without location")
		}
		return m, nil

	case "r":
		if m.fetcher == nil {
			return m, nil
		}
		m.refreshGen++
		m.refreshing = true
		m.status = ""
		m.heights = pendingHeights(m.catalog.Len())
		return m, tea.Batch(m.spinner.Tick, refreshWaves(m.fetcher, m.catalog.Spots(), m.refreshGen))

	case "enter", "f":
		spot, ok := m.catalog.At(m.selectedPos)
		if !ok || m.opener == nil {
			return m, nil
		}
		m.status = fmt.Sprintf("Opening flights to %s...", flights.Destination(spot))
		return m, openFlights(m.opener, spot)
	}

	return m, nil
}

// moveSelection moves the highlight up or down the ranked list
func (m *Model) moveSelection(delta int) {
	cards := m.cards()
	if len(cards) == 0 {
		return
	}

	idx := 0
	for i, c := range cards {
		if c.Position == m.selectedPos {
			idx = i
			break
		}
	}

	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(cards) {
		idx = len(cards) - 1
	}
	m.selectedPos = cards[idx].Position
}

// cards ranks the current state
func (m Model) cards() []ranking.Card {
	return ranking.Rank(m.catalog.Spots(), m.heights, m.userLocation, m.sortMode)
}

func (m Model) busy() bool {
	return m.refreshing || m.locState == LocationPending
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	title := titleStyle.Render("🏄 Surf Spots")
	subtitle := mutedStyle.Render(fmt.Sprintf("Live wave heights • sorted by %s",
		ranking.Effective(m.sortMode, m.userLocation).Label()))
	sections = append(sections, title, subtitle, m.viewLocation())

	if m.refreshing {
		sections = append(sections, fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render("Fetching wave heights...")))
	}
	sections = append(sections, "")

	sections = append(sections, renderCards(m.cards(), m.selectedPos, m.cardWidth()))

	if m.status != "" {
		sections = append(sections, "", mutedStyle.Render(m.status))
	}

	help := helpStyle.Render("↑/↓: Select • Enter/F: Find flights • S: Toggle sort • R: Refresh • Q: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewLocation renders the location line under the title
func (m Model) viewLocation() string {
	switch m.locState {
	case LocationKnown:
		return successStyle.Render(fmt.Sprintf("📍 Your location: %.2f, %.2f",
			m.userLocation.Latitude, m.userLocation.Longitude))
	case LocationUnavailable:
		return mutedStyle.Render("📍 Location unavailable - distances hidden")
	default:
		return mutedStyle.Render(fmt.Sprintf("%s Locating...", m.spinner.View()))
	}
}

// cardWidth fits cards to the terminal, within limits
func (m Model) cardWidth() int {
	w := m.width - 4
	if w > 72 {
		w = 72
	}
	if w < 36 {
		w = 36
	}
	return w
}

func pendingHeights(n int) []models.WaveHeight {
	heights := make([]models.WaveHeight, n)
	for i := range heights {
		heights[i] = models.PendingWave()
	}
	return heights
}

func countUnavailable(heights []models.WaveHeight) int {
	n := 0
	for _, h := range heights {
		if h.Status == models.WaveUnavailable {
			n++
		}
	}
	return n
}
