package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mathflyer/internal/config"
	"github.com/vovakirdan/mathflyer/internal/core"
	"github.com/vovakirdan/mathflyer/internal/engine"
	"github.com/vovakirdan/mathflyer/internal/scoring"
)

// Glyphs used by the renderer.
const (
	BodyChar      = '▶'
	BodyFillChar  = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	DirtChar      = '░'
	CeilingChar   = '─'
	DividerChar   = '┄'
	SparkChar     = '*'
	FadingChar    = '·'
)

// Layout rows reserved around the playfield.
const (
	hudRows    = 1
	footerRows = 1
	minCols    = 30
	minRows    = 10
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorGold:          lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// viewport projects playfield pixels onto the screen rows between the HUD and the footer.
type viewport struct {
	cols, top, rows int
	sx, sy          float64
}

func newViewport(scr *core.Screen, pf config.Playfield) viewport {
	rows := max(scr.Height()-hudRows-footerRows, 1)
	return viewport{
		cols: scr.Width(),
		top:  hudRows,
		rows: rows,
		sx:   float64(scr.Width()) / pf.Width,
		sy:   float64(rows) / pf.Height,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.sy))
}

// span returns the half-open cell range covering r. Non-empty rectangles
// always cover at least one cell.
func (v viewport) span(r core.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = v.col(r.X), v.row(r.Y)
	c1 = int(math.Ceil(r.Right() * v.sx))
	r1 = v.top + int(math.Ceil(r.Bottom()*v.sy))
	if c1 <= c0 {
		c1 = c0 + 1
	}
	if r1 <= r0 {
		r1 = r0 + 1
	}
	return c0, max(r0, v.top), c1, min(r1, v.top+v.rows)
}

// Renderer draws engine snapshots into a character screen. It implements
// engine.Surface; the Bubble Tea model turns the screen into a string.
type Renderer struct {
	screen    *core.Screen
	particles *Particles
	paused    bool
	status    string
	best      int
	runs      int
	frames    int
}

var _ engine.Surface = (*Renderer)(nil)

// NewRenderer creates a renderer for a width x height terminal.
// particles may be nil.
func NewRenderer(width, height int, particles *Particles) *Renderer {
	return &Renderer{
		screen:    core.NewScreen(width, height),
		particles: particles,
	}
}

// Resize changes the terminal size. The playfield is rescaled on the next draw.
func (r *Renderer) Resize(width, height int) {
	r.screen.Resize(width, height)
}

// Screen returns the character buffer of the last draw.
func (r *Renderer) Screen() *core.Screen {
	return r.screen
}

// SetPaused toggles the pause overlay.
func (r *Renderer) SetPaused(paused bool) {
	r.paused = paused
}

// SetStatus shows msg in the footer until cleared with an empty string.
func (r *Renderer) SetStatus(msg string) {
	r.status = msg
}

// RecordRun remembers a finished run for the best-score display.
func (r *Renderer) RecordRun(s engine.GameOverSummary) {
	r.runs++
	r.best = max(r.best, s.Score)
}

// Best returns the best pass score of this session.
func (r *Renderer) Best() int {
	return r.best
}

// Frames returns how many snapshots were drawn.
func (r *Renderer) Frames() int {
	return r.frames
}

// String renders the screen with colors.
func (r *Renderer) String() string {
	return RenderScreen(r.screen)
}

// Draw renders one snapshot.
func (r *Renderer) Draw(s engine.GameState) error {
	r.frames++
	dst := r.screen
	dst.Clear()

	if dst.Width() < minCols || dst.Height() < minRows {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorBrightRed)
		return nil
	}

	v := newViewport(dst, s.Playfield)
	r.drawTerrain(dst, v, s.Playfield)
	for _, o := range s.Obstacles {
		r.drawObstacle(dst, v, o)
	}
	r.drawBody(dst, v, s)
	r.drawParticles(dst, v)
	r.drawHUD(dst, s)
	r.drawFeedback(dst, v, s.Feedback)
	r.drawFooter(dst, s)

	switch {
	case s.Phase == engine.PhaseReady:
		drawMessage(dst, core.ColorBrightCyan,
			"MATH FLYER",
			"Fly through the gap holding the right answer",
			"SPACE to start")
	case s.Phase == engine.PhaseGameOver:
		r.drawGameOver(dst, s)
	case r.paused:
		drawMessage(dst, core.ColorBrightYellow, "PAUSED", "Press P to resume")
	}
	return nil
}

func (r *Renderer) drawTerrain(dst *core.Screen, v viewport, pf config.Playfield) {
	if pf.CeilingY > 0 {
		if row := v.row(pf.CeilingY) - 1; row >= v.top {
			dst.DrawHLine(0, row, v.cols, CeilingChar, core.ColorGray)
		}
	}
	groundRow := v.row(pf.GroundY())
	dst.DrawHLine(0, groundRow, v.cols, GroundChar, core.ColorGreen)
	for y := groundRow + 1; y < v.top+v.rows; y++ {
		dst.DrawHLine(0, y, v.cols, DirtChar, core.ColorGray)
	}
}

func (r *Renderer) drawObstacle(dst *core.Screen, v viewport, o engine.ObstacleView) {
	c0, r0, c1, r1 := v.span(o.Top)
	dst.FillRect(c0, r0, c1-c0, r1-r0, PipeChar, core.ColorGreen)
	dst.DrawHLine(c0, r1-1, c1-c0, PipeCapTop, core.ColorBrightGreen)

	c0, r0, c1, r1 = v.span(o.Bottom)
	dst.FillRect(c0, r0, c1-c0, r1-r0, PipeChar, core.ColorGreen)
	dst.DrawHLine(c0, r0, c1-c0, PipeCapBottom, core.ColorBrightGreen)

	if !o.HasQuestion() {
		return
	}
	zc0, _, zc1, divider := v.span(o.Upper.Bounds)
	if divider < v.row(o.Lower.Bounds.Bottom()) {
		dst.DrawHLine(zc0, divider, zc1-zc0, DividerChar, core.ColorGray)
	}
	drawZoneLabel(dst, v, o.Upper, o.Answered)
	drawZoneLabel(dst, v, o.Lower, o.Answered)
}

func drawZoneLabel(dst *core.Screen, v viewport, z engine.ZoneView, answered bool) {
	color := core.ColorBrightCyan
	if answered {
		color = core.ColorBrightRed
		if z.IsCorrect {
			color = core.ColorBrightGreen
		}
	}
	c0, r0, c1, r1 := v.span(z.Bounds)
	label := fmt.Sprint(z.Value)
	x := c0 + (c1-c0-len(label))/2
	dst.DrawText(x, (r0+r1-1)/2, label, color)
}

func (r *Renderer) drawBody(dst *core.Screen, v viewport, s engine.GameState) {
	color := core.ColorBrightYellow
	if s.Phase == engine.PhaseGameOver {
		color = core.ColorBrightRed
	}
	c0, r0, c1, r1 := v.span(s.Body.Bounds)
	dst.FillRect(c0, r0, c1-c0, r1-r0, BodyFillChar, color)
	dst.SetColored(c1-1, r0, BodyChar, color)
}

func (r *Renderer) drawParticles(dst *core.Screen, v viewport) {
	if r.particles == nil {
		return
	}
	r.particles.Each(func(p Particle) {
		row := v.row(p.Pos.Y)
		if row < v.top || row >= v.top+v.rows {
			return
		}
		ch := SparkChar
		if p.TTL < particleMinTTL/2 {
			ch = FadingChar
		}
		dst.SetColored(v.col(p.Pos.X), row, ch, p.Color)
	})
}

func (r *Renderer) drawHUD(dst *core.Screen, s engine.GameState) {
	dst.DrawText(1, 0, fmt.Sprintf("Score %d", s.Score), core.ColorBrightWhite)
	dst.DrawText(12, 0, fmt.Sprintf("Math %d", s.Math.Points), core.ColorGold)
	if s.Math.Streak > 1 {
		dst.DrawText(22, 0, fmt.Sprintf("x%d", s.Math.Streak), core.ColorOrange)
	}

	if s.Question != nil {
		dst.DrawTextCentered(0, s.Question.String(), core.ColorBrightCyan)
	}

	best := fmt.Sprintf("Best %d", max(r.best, s.Score))
	dst.DrawText(dst.Width()-len(best)-1, 0, best, core.ColorGray)
}

func (r *Renderer) drawFeedback(dst *core.Screen, v viewport, f *scoring.Feedback) {
	if f == nil {
		return
	}
	color := core.ColorBrightGreen
	switch f.Type {
	case scoring.FeedbackIncorrect:
		color = core.ColorBrightRed
	case scoring.FeedbackStreakBonus:
		color = core.ColorGold
	}
	dst.DrawTextCentered(v.top+1, f.Message, color)
}

func (r *Renderer) drawFooter(dst *core.Screen, s engine.GameState) {
	y := dst.Height() - 1
	if r.status != "" {
		dst.DrawText(1, y, r.status, core.ColorBrightRed)
		return
	}

	var help string
	switch s.Phase {
	case engine.PhaseReady:
		help = "space: start  q: quit"
	case engine.PhasePlaying:
		help = "space/w/up: flap  p: pause  r: restart  q: quit"
	case engine.PhaseGameOver:
		help = "r: restart  q: quit"
	}
	dst.DrawText(1, y, help, core.ColorGray)

	acc := fmt.Sprintf("%d/%d correct", s.Math.TotalCorrect, s.Math.TotalCorrect+s.Math.TotalIncorrect)
	dst.DrawText(dst.Width()-len(acc)-1, y, acc, core.ColorGray)
}

func (r *Renderer) drawGameOver(dst *core.Screen, s engine.GameState) {
	m := s.Math
	drawMessage(dst, core.ColorBrightRed,
		fmt.Sprintf("GAME OVER (%s)", s.GameOverReason),
		fmt.Sprintf("Score %d   Math %d", s.Score, m.Points),
		fmt.Sprintf("Correct %d   Wrong %d   Accuracy %.0f%%", m.TotalCorrect, m.TotalIncorrect, m.Accuracy()),
		fmt.Sprintf("Best streak %d", m.HighestStreak),
		"R to restart, Q to quit")
}

// drawMessage draws a box with centered lines in the middle of the screen.
// The first line is the title.
func drawMessage(dst *core.Screen, titleColor core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := min(width+4, dst.Width())
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorWhite)
	for i, l := range lines {
		color := core.ColorBrightWhite
		if i == 0 {
			color = titleColor
		}
		dst.DrawTextCentered(boxY+1+i, l, color)
	}
}
