package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/whereisit/internal/core"
	"github.com/vovakirdan/whereisit/internal/registry"
	"github.com/vovakirdan/whereisit/internal/stage"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorFrame:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorDivider: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorHUD:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	core.ColorBrown:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorPink:    lipgloss.NewStyle().Foreground(lipgloss.Color("211")),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
}

var (
	stageStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	levelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

func cell(v float64) int {
	return int(math.Round(v))
}

// drawStage renders the playfield of st into dst. The dragged object is drawn
// last so it stays on top.
func drawStage(dst *core.Screen, st *stage.Stage, dragging stage.ObjectID) {
	dst.Clear()

	bounds := st.Bounds()
	divider := cell(bounds.X + st.XMinFraction()*bounds.W)
	if st.XMinFraction() > 0 {
		dst.DrawVLine(divider, cell(bounds.Y), cell(bounds.H), '┊', core.ColorDivider)
	}

	frame := st.Frame()
	frameColor := core.ColorFrame
	if st.IsWinning() {
		frameColor = core.ColorGreen
	}
	dst.DrawBox(cell(frame.X), cell(frame.Y), cell(frame.W), cell(frame.H), frameColor)

	objs := st.Objects()
	var top *stage.Object
	for i := range objs {
		if objs[i].ID == dragging {
			top = &objs[i]
			continue
		}
		drawObject(dst, objs[i])
	}
	if top != nil {
		drawObject(dst, *top)
	}
}

func drawObject(dst *core.Screen, o stage.Object) {
	icon, err := registry.Lookup(string(o.ID))
	if err != nil {
		// Unknown icons still need to be visible and draggable.
		w, h := cell(o.Size.W), cell(o.Size.H)
		dst.DrawBox(cell(o.Position.X), cell(o.Position.Y), w, h, core.ColorHUD)
		dst.DrawText(cell(o.Position.X)+1, cell(o.Position.Y)+h/2, string(o.ID), core.ColorHUD)
		return
	}
	dst.DrawArt(cell(o.Position.X), cell(o.Position.Y), icon.Art, icon.Color)
}

// objectAt returns the topmost object whose drawn cells cover (x, y).
func objectAt(st *stage.Stage, x, y int, dragging stage.ObjectID) (stage.Object, bool) {
	objs := st.Objects()
	covers := func(o stage.Object) bool {
		ox, oy := cell(o.Position.X), cell(o.Position.Y)
		return x >= ox && x < ox+cell(o.Size.W) && y >= oy && y < oy+cell(o.Size.H)
	}
	for _, o := range objs {
		if o.ID == dragging && covers(o) {
			return o, true
		}
	}
	for i := len(objs) - 1; i >= 0; i-- {
		if covers(objs[i]) {
			return objs[i], true
		}
	}
	return stage.Object{}, false
}

// targetTitle returns the display name of the stage's target.
func targetTitle(st *stage.Stage) string {
	id := string(st.Target())
	if icon, err := registry.Lookup(id); err == nil {
		return icon.Title
	}
	return id
}

// hudLine renders the status line above the playfield.
func (m Model) hudLine() string {
	st := m.sess.Stage()
	seq := m.sess.Sequencer()

	left := stageStyle.Render(fmt.Sprintf("Stage %d/%d: %s", seq.Index()+1, seq.Len(), st.Name()))

	var prompt string
	switch {
	case m.complete:
		prompt = promptStyle.Render("Super! All done!")
	case st.IsWinning():
		prompt = promptStyle.Render("Super!")
	default:
		prompt = promptStyle.Render(fmt.Sprintf("Where is the %s?", targetTitle(st)))
	}

	percent := 0.0
	if st.Threshold() > 0 {
		percent = core.ClampF(float64(st.Level())/float64(st.Threshold()), 0, 1)
	}
	right := m.progress.ViewAs(percent) + " " +
		levelStyle.Render(fmt.Sprintf("%d/%d", st.Level(), st.Threshold()))

	line := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", prompt, "  ", right)
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(line)
}
