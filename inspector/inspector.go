// Package inspector is a reusable Bubble Tea component for watching a
// cpu.CPU execute: registers, flags, and a disassembled window around PC.
// It is not a CLI frontend — there is no cmd/ package here, no flag
// parsing, no file loading. An embedder constructs a Model around a CPU it
// already owns and drives, and mounts it with tea.NewProgram itself, the
// same way the teacher debugger's model wrapped an already-running Cpu.
package inspector

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"i8080/cpu"
	"i8080/disasm"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	flagOnStyle = lipgloss.NewStyle().Bold(true)
)

// Model is a tea.Model wrapping a live *cpu.CPU. Each space/enter key press
// advances the CPU by one Step; View renders its current register, flag, and
// disassembly state.
type Model struct {
	CPU    *cpu.CPU
	code   []byte
	origin uint16
	window int
}

// New returns a Model over c, disassembling code (the image loaded into c's
// memory at origin) for its instruction-window view.
func New(c *cpu.CPU, code []byte, origin uint16) Model {
	return Model{CPU: c, code: code, origin: origin, window: 8}
}

// Init satisfies tea.Model; the inspector has no async startup work.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update advances the CPU one instruction per space/enter key press and
// quits on q/ctrl+c, mirroring the teacher debugger's step-on-keypress
// convention.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			m.CPU.Step()
		}
	}
	return m, nil
}

// View renders the registers/flags panel beside a disassembly window
// starting at PC.
func (m Model) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.registerPanel(), m.disasmPanel())
}

func (m Model) registerPanel() string {
	c := m.CPU
	var b strings.Builder
	b.WriteString(headerStyle.Render("registers"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "A  %02X   F  %02X\n", c.A, c.F)
	fmt.Fprintf(&b, "B  %02X   C  %02X\n", c.B, c.C)
	fmt.Fprintf(&b, "D  %02X   E  %02X\n", c.D, c.E)
	fmt.Fprintf(&b, "H  %02X   L  %02X\n", c.H, c.L)
	fmt.Fprintf(&b, "SP %04X\n", c.SP)
	fmt.Fprintf(&b, "PC %04X\n", c.PC)
	b.WriteString(m.flagLine())
	b.WriteString("\n\n")
	b.WriteString(spew.Sdump(disasm.Catalog[m.CPU.Memory.ReadByte(c.PC)]))
	return boxStyle.Render(b.String())
}

// flagLine renders each flag as its letter when set, a dash when clear, the
// same on/off letter-pair rendering the teacher's status() used for its own
// flag bits.
func (m Model) flagLine() string {
	c := m.CPU
	bits := []struct {
		letter string
		mask   byte
	}{
		{"S", cpu.FlagS}, {"Z", cpu.FlagZ}, {"A", cpu.FlagA}, {"P", cpu.FlagP}, {"C", cpu.FlagC},
	}
	var out []string
	for _, bit := range bits {
		if c.Test(bit.mask) {
			out = append(out, flagOnStyle.Render(bit.letter))
		} else {
			out = append(out, "-")
		}
	}
	return strings.Join(out, " ")
}

func (m Model) disasmPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("disassembly"))
	b.WriteString("\n")

	records := disasm.All(m.code, m.origin)
	pc := m.CPU.PC
	shown := 0
	for _, rec := range records {
		if rec.Addr < pc && shown == 0 {
			continue
		}
		marker := "  "
		text := rec.Text
		if rec.Addr == pc {
			marker = "> "
			// Annotate only the instruction under the cursor: flag state
			// only tells us about the branch about to execute, not ones
			// further down the window.
			text = disasm.Annotate(rec, rec.Raw[0], m.CPU).Text
		}
		fmt.Fprintf(&b, "%s%04X  %s\n", marker, rec.Addr, text)
		shown++
		if shown >= m.window {
			break
		}
	}
	return boxStyle.Render(b.String())
}

// Run mounts the inspector as a full Bubble Tea program and blocks until
// the user quits.
func Run(c *cpu.CPU, code []byte, origin uint16) error {
	_, err := tea.NewProgram(New(c, code, origin)).Run()
	return err
}
