// Package preview shows a progressive render in the terminal as ASCII art.
package preview

import (
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// ramp maps brightness to characters, darkest first
const ramp = " .:-=+*#%@"

// Default thumbnail size used until the terminal reports its size
const (
	defaultCols = 80
	defaultRows = 24
)

// statusLines is the number of terminal rows reserved below the image
const statusLines = 2

type tickMsg struct {
	id string
}

// Model is a bubbletea model that polls a progressive render on a timer
// and draws its canvas. Quitting stops the render.
type Model struct {
	id          string
	name        string
	progressive *renderer.Progressive
	interval    time.Duration
	printer     *message.Printer
	cols, rows  int
	stopped     bool
}

// New creates a preview of a running render
func New(name string, p *renderer.Progressive, interval time.Duration) Model {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return Model{
		id:          uuid.NewString(),
		name:        name,
		progressive: p,
		interval:    interval,
		printer:     message.NewPrinter(language.English),
		cols:        defaultCols,
		rows:        defaultRows - statusLines,
	}
}

// Stopped reports whether the user quit before rendering finished
func (m Model) Stopped() bool {
	return m.stopped
}

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = max(1, msg.Width)
		m.rows = max(1, msg.Height-statusLines)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if !m.progressive.Finished() {
				m.progressive.Stop()
				m.stopped = true
			}
			return m, tea.Quit
		}

	case tickMsg:
		// Ignore ticks from another model
		if msg.id != m.id {
			return m, nil
		}
		if _, finished := m.progressive.Poll(); finished {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	// Terminal cells are about twice as tall as wide
	img := m.progressive.Canvas().Downsample(m.cols, m.rows*2)
	writeASCII(&b, img)

	stats := m.progressive.Stats()
	b.WriteString(m.printer.Sprintf("%s: %d / %d pixels (%.1f%%), %.0f pixels/s, %v\n",
		m.name, stats.CompletedPixels, stats.TotalPixels, stats.Progress()*100,
		stats.PixelsPerSecond, stats.Elapsed.Round(time.Millisecond)))

	switch {
	case m.stopped:
		b.WriteString("stopped\n")
	case m.progressive.Finished():
		b.WriteString("done\n")
	default:
		b.WriteString("press q to stop\n")
	}
	return b.String()
}

// writeASCII draws every other row of img using the brightness ramp
func writeASCII(b *strings.Builder, img *image.RGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			b.WriteByte(rampChar(img.RGBAAt(x, y).R, img.RGBAAt(x, y).G, img.RGBAAt(x, y).B))
		}
		b.WriteByte('\n')
	}
}

// rampChar picks the character for an 8-bit color by its luminance
func rampChar(r, g, b uint8) byte {
	// Rec. 709 weights in integer form, so white maps to the last character
	lum := (2126*int(r) + 7152*int(g) + 722*int(b)) / 10000
	i := lum * (len(ramp) - 1) / 255
	return ramp[max(0, min(len(ramp)-1, i))]
}
