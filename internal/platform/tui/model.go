package tui

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/whereisit/internal/core"
	"github.com/vovakirdan/whereisit/internal/session"
	"github.com/vovakirdan/whereisit/internal/stage"
)

const (
	hudRows  = 1
	helpRows = 1

	defaultTickRate = 30
)

// FieldRect returns the playfield for a terminal of the given size: the
// whole screen minus the status and help lines.
func FieldRect(width, height int) core.Rect {
	return core.NewRect(0, 0, float64(max(width, 0)), float64(max(height-hudRows-helpRows, 0)))
}

// Options configures the front end.
type Options struct {
	TickRate    int           // animation frames per second
	Celebration time.Duration // pause between a hit and the next level
	Confetti    int           // confetti pieces per celebration
	Seed        int64
	Logger      *log.Logger
}

// Model is the Bubble Tea model for a game session.
type Model struct {
	sess     *session.Session
	screen   *core.Screen
	confetti *Confetti
	opts     Options
	logger   *log.Logger

	keys     KeyMap
	help     help.Model
	progress progress.Model

	width, height int

	dragging stage.ObjectID
	grab     core.Point // pointer offset into the dragged object
	selected int        // keyboard selection, index into the stage objects

	round       int // increments with every celebration
	celebrating bool
	animating   bool
	complete    bool
	quitting    bool
}

// NewModel creates a model for sess on a width x height terminal.
func NewModel(sess *session.Session, width, height int, opts Options) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = defaultTickRate
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	field := FieldRect(width, height)
	return Model{
		sess:     sess,
		screen:   core.NewScreen(int(field.W), int(field.H)),
		confetti: NewConfetti(opts.Seed),
		opts:     opts,
		logger:   logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(16), progress.WithoutPercentage()),
		width:    width,
		height:   height,
		selected: -1,
		complete: sess.Complete(),
	}
}

// Init plays the opening prompt.
func (m Model) Init() tea.Cmd {
	m.sess.Start()
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case CelebrationDoneMsg:
		return m.handleCelebrationDone(msg)
	}

	return m, nil
}

func (m Model) acceptsInput() bool {
	return !m.celebrating && !m.complete
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if !m.acceptsInput() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Repeat):
		m.sess.Stage().Prompt()
	case key.Matches(msg, m.keys.Next):
		m.selectNext()
	case key.Matches(msg, m.keys.Up):
		m.nudge(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.nudge(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.nudge(-2, 0)
	case key.Matches(msg, m.keys.Right):
		m.nudge(2, 0)
	case key.Matches(msg, m.keys.Drop):
		if m.dragging != "" {
			o, _ := m.sess.Stage().Object(m.dragging)
			return m.drop(o.Position)
		}
	case key.Matches(msg, m.keys.Cancel):
		m.cancelDrag()
	}
	return m, nil
}

// selectNext picks the next object for keyboard dragging. Switching objects
// abandons the current drag.
func (m *Model) selectNext() {
	objs := m.sess.Stage().Objects()
	if len(objs) == 0 {
		return
	}
	next := (m.selected + 1) % len(objs)
	if m.dragging != "" {
		m.cancelDrag()
	}
	m.selected = next
	m.dragging = objs[next].ID
	m.grab = core.Point{}
}

func (m *Model) nudge(dx, dy float64) {
	if m.dragging == "" {
		m.selectNext()
	}
	o, ok := m.sess.Stage().Object(m.dragging)
	if !ok {
		return
	}
	m.move(o.Position.Add(dx, dy))
}

func (m *Model) move(p core.Point) {
	if err := m.sess.DragChanged(m.dragging, p); err != nil {
		m.logger.Debug("drag rejected", "object", m.dragging, "error", err)
	}
}

func (m *Model) cancelDrag() {
	if m.dragging == "" {
		return
	}
	if err := m.sess.DragCancelled(m.dragging); err != nil {
		m.logger.Debug("cancel rejected", "object", m.dragging, "error", err)
	}
	m.dragging = ""
	m.selected = -1
}

// handleMouse turns left-button press, motion and release into a drag.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.acceptsInput() {
		return m, nil
	}
	x, y := msg.X, msg.Y-hudRows
	p := core.Point{X: float64(x), Y: float64(y)}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.dragging != "" {
			m.cancelDrag()
		}
		o, ok := objectAt(m.sess.Stage(), x, y, "")
		if !ok {
			return m, nil
		}
		m.dragging = o.ID
		m.grab = p.Sub(o.Position)
		m.selected = -1

	case tea.MouseActionMotion:
		if m.dragging != "" {
			m.move(p.Sub(m.grab))
		}

	case tea.MouseActionRelease:
		if m.dragging != "" {
			return m.drop(p.Sub(m.grab))
		}
	}
	return m, nil
}

// drop finishes the current drag at p.
func (m Model) drop(p core.Point) (tea.Model, tea.Cmd) {
	id := m.dragging
	m.dragging = ""
	m.selected = -1

	outcome, err := m.sess.DragEnded(id, p)
	if err != nil {
		m.logger.Warn("drop rejected", "object", id, "error", err)
		return m, nil
	}
	if outcome == session.Hit {
		return m.startCelebration()
	}
	return m, nil
}

func (m Model) startCelebration() (tea.Model, tea.Cmd) {
	m.celebrating = true
	m.round++
	m.confetti.Burst(m.opts.Confetti, m.screen.Width(), m.screen.Height())

	cmds := []tea.Cmd{celebrationCmd(m.opts.Celebration, m.round)}
	if !m.animating {
		m.animating = true
		cmds = append(cmds, tickCmd(m.opts.TickRate))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleCelebrationDone(msg CelebrationDoneMsg) (tea.Model, tea.Cmd) {
	if !m.celebrating || msg.Round != m.round {
		return m, nil
	}

	tr, err := m.sess.CelebrationDone()
	if errors.Is(err, session.ErrGameComplete) {
		m.celebrating = false
		m.complete = true
		return m, nil
	}
	if err != nil {
		// The stage is still winning; keep celebrating and try again.
		m.logger.Error("level advance failed", "error", err)
		m.round++
		return m, celebrationCmd(m.opts.Celebration, m.round)
	}
	m.celebrating = false

	if tr.Complete {
		m.complete = true
		// One last burst for the finish.
		m.confetti.Burst(m.opts.Confetti*2, m.screen.Width(), m.screen.Height())
		if !m.animating {
			m.animating = true
			return m, tickCmd(m.opts.TickRate)
		}
		return m, nil
	}
	if tr.StageChanged {
		m.logger.Info("stage changed", "stage", tr.Stage)
	}
	return m, nil
}

// handleTick advances the confetti while any is on screen.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.animating {
		return m, nil
	}
	m.confetti.Step(1/float64(m.opts.TickRate), m.screen.Height())
	if m.confetti.Len() == 0 && !m.celebrating {
		m.animating = false
		return m, nil
	}
	return m, tickCmd(m.opts.TickRate)
}

// handleResize processes window resize events. Stages keep their layout;
// objects outside a smaller window are clipped until the next level.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	field := FieldRect(msg.Width, msg.Height)
	m.screen.Resize(int(field.W), int(field.H))
	m.help.Width = msg.Width
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	drawStage(m.screen, m.sess.Stage(), m.dragging)
	m.confetti.Draw(m.screen)
	if m.complete {
		m.screen.DrawTextCentered(m.screen.Height()/2, " Super! All done! ", core.ColorYellow)
	}

	return m.hudLine() + "\n" + RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for sess.
func Run(sess *session.Session, width, height int, opts Options) error {
	model := NewModel(sess, width, height, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Report drags while a button is held
	)

	_, err := p.Run()
	return err
}
