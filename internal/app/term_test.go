package app

import (
	"testing"
	"time"

	"backdrop/internal/core"
	"backdrop/internal/settings"

	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T, cols, rows int) (*Terminal, tcell.SimulationScreen, *settings.Store, *core.ManualClock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	store := settings.NewStore(settings.Defaults())
	clock := core.NewManualClock(time.Unix(0, 0))
	term := NewTerminal(screen, store, TerminalOptions{Seed: 1, Clock: clock})
	return term, screen, store, clock
}

func TestTerminalPresentsHalfBlocks(t *testing.T) {
	term, screen, _, _ := newSimTerminal(t, 20, 6)
	if got := term.Engine().Backing(); got != (core.Size{W: 20, H: 12}) {
		t.Fatalf("backing = %+v, want 20x12", got)
	}

	term.Start()
	term.Loop().RunFrame()

	r, _, _, _ := screen.GetContent(0, 0)
	if r != '▀' {
		t.Fatalf("cell (0,0) = %q, want half block", r)
	}
	r, _, _, _ = screen.GetContent(1, 5)
	if r == '▀' {
		t.Fatalf("status line not drawn on last row")
	}
}

func TestTerminalFocusControlsVisibility(t *testing.T) {
	term, _, _, _ := newSimTerminal(t, 20, 6)
	term.Start()
	loop := term.Loop()
	loop.RunFrame()

	term.Handle(tcell.NewEventFocus(false))
	frames := term.Engine().Frames()
	for i := 0; i < 5; i++ {
		loop.RunFrame()
	}
	if term.Engine().Frames() != frames {
		t.Fatalf("engine drew while unfocused")
	}

	term.Handle(tcell.NewEventFocus(true))
	loop.RunFrame()
	if term.Engine().Frames() != frames+1 {
		t.Fatalf("engine did not resume on focus")
	}
}

func TestTerminalResizeIsDebounced(t *testing.T) {
	term, _, _, clock := newSimTerminal(t, 20, 6)
	term.Start()

	term.Handle(tcell.NewEventResize(30, 8))
	if got := term.Engine().Backing(); got != (core.Size{W: 20, H: 12}) {
		t.Fatalf("resize applied immediately: %+v", got)
	}
	clock.Advance(100 * time.Millisecond)
	term.Loop().Drain()
	if got := term.Engine().Backing(); got != (core.Size{W: 30, H: 16}) {
		t.Fatalf("backing = %+v, want 30x16", got)
	}
}

func TestTerminalResizeReplacesSurface(t *testing.T) {
	term, _, _, clock := newSimTerminal(t, 20, 6)
	term.Start()
	first := term.surface
	if first == nil || term.Engine().Surface() != first {
		t.Fatalf("terminal does not track the engine surface")
	}

	term.Handle(tcell.NewEventResize(30, 8))
	clock.Advance(100 * time.Millisecond)
	term.Loop().Drain()
	if term.surface == first {
		t.Fatalf("surface was not re-acquired on resize")
	}
	if term.Engine().Surface() != term.surface {
		t.Fatalf("terminal lost track of the re-acquired surface")
	}
}

func TestTerminalStartsWithReducedMotion(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(20, 6)

	store := settings.NewStore(settings.Defaults())
	term := NewTerminal(screen, store, TerminalOptions{Seed: 1, ReducedMotion: true})
	term.Start()
	term.Loop().RunFrame()
	if term.Engine().Animating() || term.Engine().Ticks() != 0 {
		t.Fatalf("engine animated despite the reduced-motion preference")
	}
	if term.Engine().Draws() == 0 {
		t.Fatalf("no static frame drawn")
	}

	term.Handle(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if !term.Engine().Animating() {
		t.Fatalf("toggling reduced motion off did not resume animation")
	}
}

func TestTerminalKeysUpdateSettings(t *testing.T) {
	term, _, store, _ := newSimTerminal(t, 20, 6)

	if quit := term.Handle(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone)); quit {
		t.Fatalf("tier key quit the host")
	}
	if got := store.Snapshot().Tier; got != settings.TierMax {
		t.Fatalf("tier = %q, want max", got)
	}
	term.Handle(tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone))
	if got := store.Snapshot().Intensity; got < 0.64 || got > 0.66 {
		t.Fatalf("intensity = %v, want 0.65", got)
	}
	term.Handle(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	if store.Snapshot().EnableParticles {
		t.Fatalf("particles still enabled")
	}
	if quit := term.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); !quit {
		t.Fatalf("escape did not quit")
	}
}
