package cashmerge

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/cash-merge/internal/core"
)

const (
	cellWidth  = 9 // Including the left border
	cellHeight = 2 // Including the top border
	hudHeight  = 3

	boardW = BoardSize*cellWidth + 1
	boardH = BoardSize*cellHeight + 1

	minScreenW = boardW + 2
	minScreenH = hudHeight + 1 + boardH + 2
)

var currencyColors = [currencyCount]core.Color{
	CurrencyKRW: core.ColorCyan,
	CurrencyUSD: core.ColorBrightGreen,
	CurrencyJPY: core.ColorMagenta,
}

// boardOrigin returns the top-left corner of the grid.
func (g *Game) boardOrigin() (int, int) {
	return (g.screenW - boardW) / 2, hudHeight + 1
}

// CellAt maps screen coordinates to a board cell. Grid lines are not cells.
func (g *Game) CellAt(x, y int) (Pos, bool) {
	if g.tooSmall {
		return Pos{}, false
	}
	bx, by := g.boardOrigin()
	if !core.NewRect(bx, by, boardW, boardH).Contains(x, y) {
		return Pos{}, false
	}
	rx, ry := x-bx, y-by
	if rx%cellWidth == 0 || ry%cellHeight == 0 {
		return Pos{}, false
	}
	p := Pos{Row: ry / cellHeight, Col: rx / cellWidth}
	return p, p.InBounds()
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		y := g.screenH / 2
		dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH), core.ColorGray)
		return
	}

	snap := g.session.Snapshot()
	bx, by := g.boardOrigin()

	g.renderHUD(dst, snap, bx)
	g.renderGrid(dst, bx, by)
	g.renderCoins(dst, snap, bx, by)

	msgY := by + boardH
	dst.DrawText(bx, msgY, g.message)

	if snap.GameOver {
		g.renderGameOver(dst, snap, bx, by)
	}
}

// renderHUD draws the title, counters and the event line.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot, bx int) {
	dst.DrawTextCentered(0, strings.ToUpper(g.Title()), core.ColorBrightYellow)

	dst.DrawText(bx, 1, fmt.Sprintf("Score: %d", snap.Score))
	tokens := fmt.Sprintf("Tokens: %d  Merges: %d", snap.Tokens, snap.Merges)
	dst.DrawText(bx+boardW-utf8.RuneCountInString(tokens), 1, tokens)

	switch {
	case snap.ExchangeMode:
		dst.DrawTextColored(bx, 2, "EXCHANGE MODE", core.ColorOrange)
	case snap.Event != nil:
		line := fmt.Sprintf("%s %s (%ds)", snap.Event.Name, snap.Event.Description, snap.Event.Remaining)
		dst.DrawTextColored(bx, 2, line, core.ColorYellow)
	default:
		dst.DrawTextColored(bx, 2, "Rates are calm", core.ColorGray)
	}
}

// renderGrid draws the board lines.
func (g *Game) renderGrid(dst *core.Screen, bx, by int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := bx + x*cellWidth
			py := by + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == BoardSize:
				corner = '┐'
			case y == BoardSize && x == 0:
				corner = '└'
			case y == BoardSize && x == BoardSize:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == BoardSize:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == BoardSize:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderCoins draws coin labels plus the cursor and selection markers.
func (g *Game) renderCoins(dst *core.Screen, snap Snapshot, bx, by int) {
	inner := cellWidth - 1
	for r := range BoardSize {
		for c := range BoardSize {
			x := bx + c*cellWidth + 1
			y := by + r*cellHeight + 1

			if cell := snap.Board[r][c]; cell != nil {
				color := currencyColors[cell.Currency]
				if cell.IsMerging {
					color = core.ColorBrightYellow
				}
				pad := max((inner-utf8.RuneCountInString(cell.Label))/2, 1)
				dst.DrawTextColored(x+pad, y, cell.Label, color)
			}

			here := Pos{Row: r, Col: c}
			if snap.Selected != nil && *snap.Selected == here {
				dst.SetColored(x, y, '[', core.ColorBrightCyan)
				dst.SetColored(x+inner-1, y, ']', core.ColorBrightCyan)
			} else if here == g.cursor && !snap.GameOver {
				dst.SetColored(x, y, '>', core.ColorYellow)
				dst.SetColored(x+inner-1, y, '<', core.ColorYellow)
			}
		}
	}
}

// renderGameOver draws the final score box.
func (g *Game) renderGameOver(dst *core.Screen, snap Snapshot, bx, by int) {
	reward := "No coupon this time"
	if snap.Coupon != nil {
		reward = "Coupon: " + snap.Coupon.Label
	}
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score: %d", snap.Score),
		reward,
		"Press R to play again",
	}

	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	box := core.NewRect(0, 0, width+4, len(lines)+2)
	cx, cy := core.NewRect(bx, by, boardW, boardH).Center()
	box.X = cx - box.W/2
	box.Y = cy - box.H/2

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorRed)
	for i, l := range lines {
		x := cx - utf8.RuneCountInString(l)/2
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorBrightYellow
		}
		dst.DrawTextColored(x, box.Y+1+i, l, color)
	}
}
