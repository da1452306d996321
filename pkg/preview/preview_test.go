package preview

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

type silentLogger struct{}

func (silentLogger) Printf(string, ...interface{}) {}

func newTestProgressive(t *testing.T, ctx context.Context, width, height int) *renderer.Progressive {
	t.Helper()
	camera := renderer.MustCamera(width, height, 1.0,
		core.ViewTransform(core.NewPoint(0, 0, -5), core.Origin(), core.Up()))
	w := world.DefaultBuilder().Build()
	return renderer.NewProgressive(ctx, camera, w, renderer.DefaultProgressiveConfig(), silentLogger{})
}

func TestRampChar(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    byte
	}{
		{"black", 0, 0, 0, ' '},
		{"white", 255, 255, 255, '@'},
		{"mid gray", 128, 128, 128, '='},
		{"pure red", 255, 0, 0, '.'},
		{"pure green", 0, 255, 0, '*'},
		{"near white", 250, 250, 250, '%'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rampChar(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("rampChar(%d, %d, %d) = %q, want %q", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestModel_TicksUntilFinished(t *testing.T) {
	p := newTestProgressive(t, context.Background(), 20, 10)
	var model tea.Model = New("Default World", p, time.Millisecond)

	id := model.(Model).id
	deadline := time.Now().Add(5 * time.Second)
	for {
		var cmd tea.Cmd
		model, cmd = model.Update(tickMsg{id: id})
		if p.Finished() {
			if cmd == nil {
				t.Fatal("Expected quit command after render finished")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Fatal("Expected tea.QuitMsg after render finished")
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Render did not finish")
		}
		time.Sleep(time.Millisecond)
	}

	view := model.View()
	if !strings.Contains(view, "200 / 200 pixels") {
		t.Errorf("Expected completed stats in view, got:\n%s", view)
	}
	if !strings.Contains(view, "done") {
		t.Errorf("Expected done marker in view, got:\n%s", view)
	}
	if !strings.ContainsAny(view, "=+*#%@") {
		t.Errorf("Expected lit sphere in thumbnail, got:\n%s", view)
	}
}

func TestModel_IgnoresForeignTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := newTestProgressive(t, ctx, 20, 10)
	model := New("Default World", p, time.Hour)

	_, cmd := model.Update(tickMsg{id: "someone-else"})
	if cmd != nil {
		t.Error("Expected no command for a tick from another model")
	}
	p.Stop()
}

func TestModel_QuitStopsRender(t *testing.T) {
	p := newTestProgressive(t, context.Background(), 400, 200)
	model := New("Default World", p, time.Hour)

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("Expected tea.QuitMsg")
	}
	if !p.Finished() {
		t.Error("Expected render to be finished after quit")
	}

	m := updated.(Model)
	if !m.Stopped() {
		t.Error("Expected model to report it was stopped")
	}
	if view := m.View(); !strings.Contains(view, "stopped") {
		t.Errorf("Expected stopped marker in view, got:\n%s", view)
	}
}

func TestModel_WindowSize(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := newTestProgressive(t, ctx, 40, 40)
	model := New("Default World", p, time.Hour)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 10, Height: 12})
	m := updated.(Model)
	if m.cols != 10 || m.rows != 12-statusLines {
		t.Errorf("Expected 10x%d, got %dx%d", 12-statusLines, m.cols, m.rows)
	}

	// 40x40 scales to 10x10 pixels, drawn as 5 text rows
	lines := strings.Split(strings.TrimSuffix(m.View(), "\n"), "\n")
	if len(lines) != 5+statusLines {
		t.Errorf("Expected %d lines, got %d:\n%s", 5+statusLines, len(lines), m.View())
	}
	p.Stop()
}
