package main

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/layout"
)

const demoFPS = 30

// demoModel drives a Layout with synthetic windows and draws the active
// workspace as boxes in the terminal, the view offset acting as a viewport
// into the column strip.
type demoModel struct {
	layout *layout.Layout
	clock  animation.Clock

	windows []*demoWindow
	nextID  int

	start time.Time

	termW, termH int
	status       string
}

type demoTickMsg time.Time

func demoTick() tea.Cmd {
	return tea.Tick(time.Second/demoFPS, func(t time.Time) tea.Msg {
		return demoTickMsg(t)
	})
}

func runDemo() error {
	opts := loadOptions()

	clock := animation.NewClock()
	clock.SetRate(opts.Animations.Slowdown)
	l := layout.New(clock, opts)
	l.AddOutput(layout.Output{Name: "demo-1", Size: geometry.Sz(1280, 720), Scale: 1})

	m := &demoModel{
		layout: l,
		clock:  clock,
		start:  time.Now(),
		status: "n: new window  w: close  h/l: focus  H/L: move  f: fullscreen  m: maximize  t: tabbed  r: preset width  q: quit",
	}

	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

func (m *demoModel) Init() tea.Cmd {
	return demoTick()
}

// communicate commits every pending configure, like clients acking.
func (m *demoModel) communicate() {
	for _, w := range m.windows {
		if w.commit() {
			m.layout.UpdateWindow(w.id)
		}
	}
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case demoTickMsg:
		m.layout.AdvanceAnimations(time.Since(m.start))
		m.layout.Refresh()
		m.communicate()
		return m, demoTick()

	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *demoModel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	do := func(a layout.Action) {
		if err := a.Do(m.layout); err != nil {
			m.status = err.Error()
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n":
		m.nextID++
		w := newDemoWindow(m.nextID, geometry.Sz(100, 100))
		m.windows = append(m.windows, w)
		m.layout.AddWindow(w, true, false)
	case "w":
		if win, ok := m.layout.ActiveWindow(); ok {
			id := win.ID()
			m.layout.RemoveWindow(id)
			for i, w := range m.windows {
				if w.id == id {
					m.windows = append(m.windows[:i], m.windows[i+1:]...)
					break
				}
			}
		}
	case "h":
		do(layout.FocusColumnLeft{})
	case "l":
		do(layout.FocusColumnRight{})
	case "j":
		do(layout.FocusWindowDown{})
	case "k":
		do(layout.FocusWindowUp{})
	case "H":
		do(layout.MoveColumnLeft{})
	case "L":
		do(layout.MoveColumnRight{})
	case "J":
		do(layout.MoveWindowDown{})
	case "K":
		do(layout.MoveWindowUp{})
	case "f":
		do(layout.FullscreenWindow{})
	case "m":
		do(layout.MaximizeColumn{})
	case "t":
		do(layout.ToggleColumnTabbedDisplay{})
	case "r":
		do(layout.SwitchPresetColumnWidth{})
	case "c":
		do(layout.CenterColumn{})
	case ",":
		do(layout.ConsumeOrExpelWindowLeft{})
	case ".":
		do(layout.ConsumeOrExpelWindowRight{})
	case "pgup":
		do(layout.FocusWorkspaceUp{})
	case "pgdown":
		do(layout.FocusWorkspaceDown{})
	case "space":
		do(layout.ToggleWindowFloating{})
	}

	m.communicate()
	return m, nil
}

var demoStatusStyle = lipgloss.NewStyle().Faint(true)

func (m *demoModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.termW == 0 {
		view.SetContent("loading...")
		return view
	}

	canvas := newDemoCanvas(m.termW, m.termH-1)

	if mon, ok := m.layout.ActiveMonitor(); ok {
		sp := mon.ActiveWorkspace().Scrolling()

		// Map logical pixels to terminal cells.
		outSize := mon.Output().Size
		sx := float64(m.termW) / outSize.W
		sy := float64(m.termH-1) / outSize.H

		activeWin, _ := m.layout.ActiveWindow()

		for i, col := range sp.Columns() {
			colX := sp.ColumnScreenX(i)
			y := sp.ColumnScreenY(i)
			for _, tile := range col.Tiles() {
				size := tile.TileExpectedOrCurrentSize()
				rect := geometry.Rc(colX, y, size.W, size.H)

				label := string(tile.Window().ID())
				active := activeWin != nil && tile.Window().ID() == activeWin.ID()
				canvas.drawBox(
					int(rect.Loc.X*sx), int(rect.Loc.Y*sy),
					max(4, int(rect.Size.W*sx)), max(3, int(rect.Size.H*sy)),
					label, active,
				)
				y += size.H + m.layout.Options().Gaps
			}
		}
	}

	body := canvas.String()
	status := demoStatusStyle.Render(m.status)
	view.SetContent(lipgloss.JoinVertical(lipgloss.Left, body, status))
	return view
}

// demoCanvas is a simple cell grid the boxes are painted onto.
type demoCanvas struct {
	w, h  int
	cells [][]rune
}

func newDemoCanvas(w, h int) *demoCanvas {
	cells := make([][]rune, h)
	for i := range cells {
		row := make([]rune, w)
		for j := range row {
			row[j] = ' '
		}
		cells[i] = row
	}
	return &demoCanvas{w: w, h: h, cells: cells}
}

func (c *demoCanvas) put(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

func (c *demoCanvas) drawBox(x, y, w, h int, label string, active bool) {
	horiz, vert := '─', '│'
	tl, tr, bl, br := '╭', '╮', '╰', '╯'
	if active {
		horiz, vert = '═', '║'
		tl, tr, bl, br = '╔', '╗', '╚', '╝'
	}
	for i := 1; i < w-1; i++ {
		c.put(x+i, y, horiz)
		c.put(x+i, y+h-1, horiz)
	}
	for i := 1; i < h-1; i++ {
		c.put(x, y+i, vert)
		c.put(x+w-1, y+i, vert)
	}
	c.put(x, y, tl)
	c.put(x+w-1, y, tr)
	c.put(x, y+h-1, bl)
	c.put(x+w-1, y+h-1, br)

	for i, r := range label {
		if i+2 >= w-2 {
			break
		}
		c.put(x+2+i, y, r)
	}
}

func (c *demoCanvas) String() string {
	out := make([]byte, 0, (c.w+1)*c.h)
	for i, row := range c.cells {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, []byte(string(row))...)
	}
	return string(out)
}
