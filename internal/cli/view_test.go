package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/slabtower/pkg/brick"
	"github.com/matzehuels/slabtower/pkg/query"
	"github.com/matzehuels/slabtower/pkg/settle"
)

func canonicalViewModel(t *testing.T) viewModel {
	t.Helper()
	bricks, err := brick.ParseAll(strings.NewReader(canonical))
	if err != nil {
		t.Fatalf("ParseAll() error: %v", err)
	}
	res, err := settle.Settle(bricks)
	if err != nil {
		t.Fatalf("Settle() error: %v", err)
	}
	m, err := newViewModel(res, query.Analyze(res.Graph))
	if err != nil {
		t.Fatalf("newViewModel() error: %v", err)
	}
	return m
}

func press(m viewModel, keys ...tea.KeyMsg) viewModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(viewModel)
	}
	return m
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyWorst = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestViewModelNavigation(t *testing.T) {
	m := canonicalViewModel(t)

	m = press(m, keyLeft)
	if m.cursor != 0 {
		t.Errorf("cursor after left at start = %d, want 0", m.cursor)
	}
	m = press(m, keyRight, keyRight)
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	m = press(m, keyRight, keyRight, keyRight, keyRight, keyRight, keyRight)
	if m.cursor != 6 {
		t.Errorf("cursor should stop at the last brick, got %d", m.cursor)
	}
	m = press(m, keyWorst)
	if m.cursor != 0 {
		t.Errorf("cursor after w = %d, want the worst brick 0", m.cursor)
	}
}

func TestViewModelToggleAxis(t *testing.T) {
	m := canonicalViewModel(t)
	if m.axis != 0 {
		t.Fatalf("initial axis = %d, want 0", m.axis)
	}
	m = press(m, keyTab)
	if m.axis != 1 || !strings.Contains(m.View(), "AAA") {
		t.Errorf("after tab the y view should show AAA:\n%s", m.View())
	}
	m = press(m, keyTab)
	if m.axis != 0 {
		t.Errorf("second tab should return to x, got %d", m.axis)
	}
}

func TestViewModelScroll(t *testing.T) {
	m := canonicalViewModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 11})
	m = next.(viewModel)
	if m.height != 5 {
		t.Fatalf("height = %d, want 5", m.height)
	}

	m = press(m, keyDown)
	if m.offset != 1 {
		t.Errorf("offset after down = %d, want 1", m.offset)
	}
	m = press(m, keyDown, keyDown)
	if m.offset != 1 {
		t.Errorf("offset should stop at %d, got %d", m.maxOffset(), m.offset)
	}

	m.offset = 0
	m = press(m, keyRight) // B sits on z=2, the lowest visible layer
	if m.offset != 0 {
		t.Errorf("B is visible, offset = %d, want 0", m.offset)
	}
	m.cursor = 0
	m.follow()
	if m.offset != 1 {
		t.Errorf("following A (z=1) should scroll to offset 1, got %d", m.offset)
	}
}

func TestViewModelQuit(t *testing.T) {
	_, cmd := canonicalViewModel(t).Update(keyQuit)
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestViewModelPanel(t *testing.T) {
	m := canonicalViewModel(t)
	view := m.View()
	for _, want := range []string{"Brick A", "6 would fall", "[1/7]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	m = press(m, keyRight)
	if view := m.View(); !strings.Contains(view, "safe to remove") {
		t.Errorf("brick B should be safe to remove:\n%s", view)
	}
}
