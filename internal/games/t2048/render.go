package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/board"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
	minWidth   = 36
)

// layoutSize returns the screen size needed for a size x size board.
func layoutSize(size int) (w, h int) {
	boardW := size*cellWidth + 1
	boardH := size*cellHeight + 1
	return max(boardW, minWidth), hudHeight + 1 + boardH + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	size := g.board.Size()
	boardW := size*cellWidth + 1
	boardH := size*cellHeight + 1
	layoutW, _ := layoutSize(size)

	left := (g.screenW - layoutW) / 2
	area := core.NewRect(left+(layoutW-boardW)/2, hudHeight+1, boardW, boardH)

	g.renderHUD(dst, left, layoutW)
	g.renderGrid(dst, area.X, area.Y)
	g.renderTiles(dst, area.X, area.Y)

	if g.notice != "" {
		x := left + (layoutW-len(g.notice))/2
		dst.DrawTextColored(x, area.Bottom(), g.notice, core.ColorYellow)
	}

	if g.status == StatusLost {
		centerX, centerY := area.Center()
		maxStr := fmt.Sprintf("Max tile: %d", board.MaxTile(g.board))
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", maxStr, "R: restart  U: undo")
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	w, h := layoutSize(g.board.Size())
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h))
}

// renderHUD draws title, status, scores and the undo indicator.
func (g *Game) renderHUD(dst *core.Screen, left, width int) {
	title := "2048"
	switch g.status {
	case StatusWon:
		title = "You win!"
	case StatusLost:
		title = "You lost!"
	}
	color := core.ColorBrightWhite
	if g.status == StatusWon {
		color = core.ColorBrightYellow
	}
	dst.DrawTextColored(left+(width-len(title))/2, 0, title, color)

	dst.DrawText(left, 1, fmt.Sprintf("Score: %d", g.score))
	best := fmt.Sprintf("Best: %d", g.best)
	dst.DrawText(left+width-len(best), 1, best)

	var undo string
	switch {
	case g.undoDisabled:
		undo = "Undo: off"
	default:
		undo = fmt.Sprintf("Undo: %d/%d", g.history.Len(), g.history.Limit())
	}
	dst.DrawTextColored(left, 2, undo, core.ColorGray)

	size := fmt.Sprintf("%dx%d", g.board.Size(), g.board.Size())
	if !g.started {
		size += " (+/-)"
	}
	dst.DrawTextColored(left+width-len(size), 2, size, core.ColorGray)
}

// renderGrid draws the grid lines for the current board size.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	n := g.board.Size()
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			// Draw corner/intersection
			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			// Draw horizontal line to the right
			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}

			// Draw vertical line down
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws tile values, with sliding tiles at their animated positions.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	slides := g.animator.Slides()
	pops := g.animator.Pops()
	progress := g.animator.Progress()

	hidden := make(map[board.Pos]bool, len(slides)+len(pops))
	for _, s := range slides {
		hidden[s.To] = true
	}
	popping := make(map[board.Pos]bool, len(pops))
	for _, p := range pops {
		if g.animator.Phase() == PhaseSlide {
			hidden[p.To] = true
		} else {
			popping[p.To] = true
		}
	}

	for y, row := range g.board.Rows() {
		for x, val := range row {
			p := board.Pos{X: x, Y: y}
			if val.IsEmpty() || hidden[p] {
				continue
			}
			text := strconv.FormatInt(int64(val), 10)
			if popping[p] && progress < 1 {
				text = "[" + text + "]"
			}
			drawTile(dst, boardX, boardY, float64(x), float64(y), text, core.TileColor(int64(val)))
		}
	}

	for _, s := range slides {
		fx, fy := s.Position(progress)
		drawTile(dst, boardX, boardY, fx, fy, strconv.FormatInt(int64(s.Value), 10), core.TileColor(int64(s.Value)))
	}
}

// drawTile centers text in the cell at fractional board coordinates.
func drawTile(dst *core.Screen, boardX, boardY int, fx, fy float64, text string, color core.Color) {
	cellX := boardX + int(math.Round(fx*cellWidth)) + 1
	cellY := boardY + int(math.Round(fy*cellHeight)) + 1

	padLeft := core.Clamp((cellWidth-1-len(text))/2, 0, cellWidth-1)
	dst.DrawTextColored(cellX+padLeft, cellY, text, color)
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	// Find max line width
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorRed)

	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawTextColored(x, box.Y+1+i, line, core.ColorBrightWhite)
	}
}
