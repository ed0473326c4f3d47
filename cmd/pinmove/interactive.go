package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stablemem/pinmove/arena"
	"github.com/stablemem/pinmove/errors"
	"github.com/stablemem/pinmove/pin"
	"github.com/stablemem/pinmove/secret"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	occupiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateGrid modelState = iota
	stateInputSecret
)

type interactiveModel struct {
	lin      *arena.Linear
	slabs    *arena.Arena[secret.Bytes]
	slots    []*pin.Slot[secret.Bytes]
	input    textinput.Model
	status   string
	err      error
	selected int
	state    modelState
}

func newInteractiveModel(n int) (*interactiveModel, error) {
	ctx := context.Background()

	lin, err := arena.NewLinear(ctx, &arena.LinearConfig{Pages: 1, MaxPages: 4})
	if err != nil {
		return nil, err
	}
	slabs := arena.New[secret.Bytes]()

	slots := make([]*pin.Slot[secret.Bytes], n)
	for i := range slots {
		if slots[i], err = slabs.Allocate(); err != nil {
			_ = lin.Close(ctx)
			return nil, err
		}
	}

	ti := textinput.New()
	ti.Placeholder = "secret payload"
	ti.Prompt = "secret: "
	ti.Width = 40

	return &interactiveModel{
		lin:   lin,
		slabs: slabs,
		slots: slots,
		input: ti,
	}, nil
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateInputSecret {
			switch msg.String() {
			case "enter":
				m.seedSelected()
				m.state = stateGrid
				m.input.Blur()
				m.input.SetValue("")
				return m, nil
			case "esc":
				m.state = stateGrid
				m.input.Blur()
				m.input.SetValue("")
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			ctx := context.Background()
			m.slabs.Close()
			m.lin.Close(ctx)
			return m, tea.Quit

		case "left", "h":
			if m.selected > 0 {
				m.selected--
			}

		case "right", "l":
			if m.selected < len(m.slots)-1 {
				m.selected++
			}

		case "s":
			m.state = stateInputSecret
			m.input.Focus()
			return m, textinput.Blink

		case "t":
			m.transferSelected()

		case "d":
			m.destroySelected()
		}
	}

	return m, nil
}

func (m *interactiveModel) seedSelected() {
	m.err = nil
	buf := []byte(m.input.Value())
	if err := secret.Seed(m.slots[m.selected], m.lin, buf); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("seeded slot %d", m.selected)
}

// transferSelected moves the selected occupant into the next empty slot.
func (m *interactiveModel) transferSelected() {
	m.err = nil
	src := m.slots[m.selected]
	if !src.Occupied() {
		m.err = errors.Empty()
		return
	}

	for i, dst := range m.slots {
		if dst.Occupied() {
			continue
		}
		h, err := pin.Transfer(src, dst)
		if err != nil {
			m.err = err
			return
		}
		h.Release()
		m.status = fmt.Sprintf("transferred slot %d -> slot %d", m.selected, i)
		m.selected = i
		return
	}
	m.err = errors.AlreadyOccupied()
}

func (m *interactiveModel) destroySelected() {
	m.err = nil
	h, err := m.slots[m.selected].AcquireOccupied()
	if err != nil {
		m.err = err
		return
	}
	if err := h.Destroy(); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("destroyed occupant of slot %d", m.selected)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("pinmove"))
	b.WriteString("\n\n")

	cells := make([]string, len(m.slots))
	for i, s := range m.slots {
		cells[i] = renderSlot(i, s, i == m.selected)
	}
	b.WriteString(strings.Join(cells, "  "))
	b.WriteString("\n\n")

	if m.state == stateInputSecret {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: seed selected slot • esc: cancel"))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→: select • s: seed • t: transfer • d: destroy • q: quit"))
	return b.String()
}

// renderSlot draws one slot's occupancy, shared by the TUI and the scripted
// mode.
func renderSlot(i int, s *pin.Slot[secret.Bytes], selected bool) string {
	label := fmt.Sprintf("[%d: empty]", i)
	style := emptyStyle
	if s.Occupied() {
		label = fmt.Sprintf("[%d: gen %d]", i, s.Generation())
		style = occupiedStyle
	}
	if selected {
		style = selectedStyle
	}
	return style.Render(label)
}

func runInteractive(n int) error {
	m, err := newInteractiveModel(n)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
