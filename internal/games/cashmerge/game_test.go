package cashmerge

import (
	"strings"
	"testing"

	"github.com/vovakirdan/cash-merge/internal/config"
	"github.com/vovakirdan/cash-merge/internal/core"
)

func newTestGame(t *testing.T) (*Game, *core.Screen) {
	t.Helper()
	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 21}
	g := NewGame(config.DefaultCashMergeConfig())
	g.Reset(rc)
	return g, core.NewScreen(rc.ScreenW, rc.ScreenH)
}

func TestGameRenderShowsCoinsAndHUD(t *testing.T) {
	g, screen := newTestGame(t)
	withBoard(g.Session(), boardOf(map[Pos]Tile{
		at(0, 0): coin(CurrencyKRW, 5000),
		at(4, 4): coin(CurrencyUSD, 20),
	}))

	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"CASH MERGE", "Score: 0", "Tokens: 3", "₩5000", "$20"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestGameCellAtRoundTrip(t *testing.T) {
	g, _ := newTestGame(t)
	bx, by := g.boardOrigin()

	for r := range BoardSize {
		for c := range BoardSize {
			x := bx + c*cellWidth + cellWidth/2
			y := by + r*cellHeight + 1
			p, ok := g.CellAt(x, y)
			if !ok || p != at(r, c) {
				t.Errorf("CellAt(%d, %d) = %v %v, want (%d,%d)", x, y, p, ok, r, c)
			}
		}
	}

	// Grid lines and the outside are not cells.
	for _, xy := range [][2]int{{bx, by + 1}, {bx + 1, by}, {bx - 1, by + 1}, {bx + boardW, by + 1}} {
		if _, ok := g.CellAt(xy[0], xy[1]); ok {
			t.Errorf("CellAt(%d, %d) should miss", xy[0], xy[1])
		}
	}
}

func TestGameMouseMoveFlow(t *testing.T) {
	g, _ := newTestGame(t)
	withBoard(g.Session(), boardOf(map[Pos]Tile{at(2, 2): coin(CurrencyJPY, 100)}))
	bx, by := g.boardOrigin()
	click := func(r, c int) Outcome {
		out, ok := g.ClickAt(bx+c*cellWidth+2, by+r*cellHeight+1)
		if !ok {
			t.Fatalf("click on (%d,%d) missed", r, c)
		}
		return out
	}

	if out := click(2, 2); out != OutcomeSelected {
		t.Fatalf("first click = %v", out)
	}
	if out := click(0, 0); out != OutcomeMoved {
		t.Fatalf("second click = %v", out)
	}
	if g.Cursor() != at(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", g.Cursor())
	}
	if step := g.Step(); !step.TurnEnded {
		t.Errorf("lone coin should end the turn at once: %+v", step)
	}
	if g.Session().Board().TileCount() != 3 {
		t.Errorf("tile count = %d, want 3", g.Session().Board().TileCount())
	}
}

func TestGameCursorClamps(t *testing.T) {
	g, _ := newTestGame(t)
	g.MoveCursor(-10, 10)
	if g.Cursor() != at(0, BoardSize-1) {
		t.Errorf("cursor = %v", g.Cursor())
	}
}

func TestGameResetKeepsGenerationIncreasing(t *testing.T) {
	g, _ := newTestGame(t)
	first := g.Session().Generation()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 99})
	if g.Session().Generation() <= first {
		t.Errorf("generation %d after reset, was %d", g.Session().Generation(), first)
	}
}

func TestGameTooSmall(t *testing.T) {
	g, _ := newTestGame(t)
	g.Resize(20, 10)
	screen := core.NewScreen(20, 10)

	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected resize hint:\n%s", screen.String())
	}
	if _, ok := g.CellAt(5, 5); ok {
		t.Error("CellAt should miss while the window is too small")
	}
}

func TestGameOverOverlay(t *testing.T) {
	g, screen := newTestGame(t)
	s := g.Session()
	withBoard(s, deadBoard())
	s.score = 12000
	s.resolving = true
	g.Step()

	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "10% exchange fee discount") {
		t.Errorf("missing game over overlay:\n%s", out)
	}
}
