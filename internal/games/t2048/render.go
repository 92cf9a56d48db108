package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// boardSize returns the drawn size of a w x h board including borders.
func boardSize(w, h int) (int, int) {
	return w*cellWidth + 1, h*cellHeight + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardSize(g.variant.Width, g.variant.Height)
	area := core.NewRect(0, hudHeight+1, g.screenW, g.screenH-hudHeight-1)
	board := area.CenteredIn(boardW, boardH)
	board.X = core.Clamp(board.X, 0, max(0, g.screenW-boardW))
	board.Y = hudHeight + 1

	g.renderHUD(dst, board.X, board.W)
	g.renderBoard(dst, board.X, board.Y)
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	boardW, boardH := boardSize(g.variant.Width, g.variant.Height)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", boardW+2, boardH+hudHeight+2))
}

// renderHUD draws the title, score and best score.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.variant.Title
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.mgr.Score()))

	best := fmt.Sprintf("Best: %d", g.mgr.Best())
	dst.DrawText(max(boardX, boardX+boardW-len(best)), 1, best)

	maxStr := fmt.Sprintf("Max: %d", g.mgr.Board().MaxTile())
	dst.DrawTextColored(boardX+(boardW-len(maxStr))/2, 2, maxStr, core.ColorGray)
}

// renderBoard draws the grid lines and colored tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	w, h := g.variant.Width, g.variant.Height

	for y := range h + 1 {
		for x := range w + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.SetColored(px, py, corner(x, y, w, h), core.ColorGray)

			if x < w {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < h {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for y, row := range g.mgr.Board().Values() {
		for x, val := range row {
			if val == 0 {
				continue
			}
			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1

			valStr := strconv.Itoa(val)
			padLeft := max(0, (cellWidth-1-len(valStr))/2)
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, core.TileColor(val))
		}
	}
}

// corner picks the box drawing rune for grid intersection (x, y).
func corner(x, y, w, h int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == w:
		return '┐'
	case y == h && x == 0:
		return '└'
	case y == h && x == w:
		return '┘'
	case y == 0:
		return '┬'
	case y == h:
		return '┴'
	case x == 0:
		return '├'
	case x == w:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws pause and game-over overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	switch {
	case g.paused:
		g.drawOverlay(dst, board, "PAUSED", "Press P to resume")
	case g.overlayVisible():
		score := fmt.Sprintf("Score: %d", g.mgr.Score())
		g.drawOverlay(dst, board, "GAME OVER", score, "Press R to restart")
	}
}

// drawOverlay draws a text box centered on the board.
func (g *Game) drawOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := board.CenteredIn(maxLen+4, len(lines)+2)
	centerX, _ := box.Center()

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, core.ColorWhite)
	}
}
