package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/allkern/hyrisc/cpu"
	"github.com/allkern/hyrisc/device"
	"github.com/allkern/hyrisc/driver"
)

// model is the bubbletea model for the single-step debugger: it owns the
// driver, the memory windows it wants to render a page of, and the set of
// PC breakpoints the operator has armed.
type model struct {
	d   *driver.Driver
	rom *device.ROM
	ram *device.RAM

	breakpoints map[uint32]bool
	lastErr     error
	quitting    bool
}

const pageWidth = 16

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "s":
			m.lastErr = m.d.Tick()

		case "c":
			for {
				if err := m.d.Tick(); err != nil {
					m.lastErr = err
					break
				}
				if m.d.CPU.Cycle == 0 && m.breakpoints[m.d.CPU.R[cpu.PC]] {
					break
				}
			}

		case "b":
			pc := m.d.CPU.R[cpu.PC]
			if m.breakpoints[pc] {
				delete(m.breakpoints, pc)
			} else {
				m.breakpoints[pc] = true
			}
		}
	}

	return m, nil
}

func flagBar(st uint8) string {
	labels := []struct {
		bit  uint8
		name string
	}{
		{cpu.FlagZ, "Z"},
		{cpu.FlagN, "N"},
		{cpu.FlagV, "V"},
		{cpu.FlagC, "C"},
	}
	var sb strings.Builder
	for _, l := range labels {
		if st&l.bit != 0 {
			sb.WriteString(l.name + " ")
		} else {
			sb.WriteString(". ")
		}
	}
	return sb.String()
}

func (m model) registerPanel() string {
	var sb strings.Builder
	for i := 0; i < 32; i += 4 {
		fmt.Fprintf(&sb, "r%-2d %08x  r%-2d %08x  r%-2d %08x  r%-2d %08x\n",
			i, m.d.CPU.R[i], i+1, m.d.CPU.R[i+1], i+2, m.d.CPU.R[i+2], i+3, m.d.CPU.R[i+3])
	}
	return sb.String()
}

func (m model) busPanel() string {
	bci := m.d.CPU.BCI
	return fmt.Sprintf(
		"pc   %08x\ncycle %d\nflags %s\na    %08x\nd    %08x\nrw   %v\nbusreq %v busack %v be %d\nirq  %v  vector %08x",
		m.d.CPU.R[cpu.PC], m.d.CPU.Cycle, flagBar(m.d.CPU.ST),
		bci.A, bci.D, bci.RW, bci.BusReq, bci.BusAck, bci.BE,
		m.d.CPU.PIC.IRQ, m.d.CPU.PIC.V,
	)
}

// memoryPage renders pageWidth bytes of buf starting at the row containing
// pc (relative to base), highlighting the byte at pc itself — a classic
// page-table debugger view.
func memoryPage(label string, base uint32, buf []byte, pc uint32) string {
	if pc < base || int(pc-base) >= len(buf) {
		return fmt.Sprintf("%s: pc out of range", label)
	}
	rel := int(pc - base)
	start := (rel / pageWidth) * pageWidth

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s @ %08x\n", label, base+uint32(start))
	end := start + pageWidth
	if end > len(buf) {
		end = len(buf)
	}
	for i := start; i < end; i++ {
		if i == rel {
			fmt.Fprintf(&sb, "[%02x]", buf[i])
		} else {
			fmt.Fprintf(&sb, " %02x ", buf[i])
		}
	}
	return sb.String()
}

func (m model) memoryPanel() string {
	pc := m.d.CPU.R[cpu.PC]

	if m.rom != nil && pc >= m.rom.Base {
		return memoryPage("rom", m.rom.Base, m.rom.Bytes(), pc)
	}
	if m.ram != nil && pc >= m.ram.Base {
		return memoryPage("ram", m.ram.Base, m.ram.Bytes(), pc)
	}
	return "pc outside rom/ram"
}

func (m model) breakpointPanel() string {
	if len(m.breakpoints) == 0 {
		return "breakpoints: none"
	}
	var addrs []string
	for addr := range m.breakpoints {
		addrs = append(addrs, fmt.Sprintf("%08x", addr))
	}
	return "breakpoints: " + strings.Join(addrs, " ")
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	errLine := "ok"
	if m.lastErr != nil {
		errLine = m.lastErr.Error()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.registerPanel(), "  ", m.busPanel()),
		"",
		m.memoryPanel(),
		"",
		m.breakpointPanel(),
		"status: "+errLine,
		"",
		"space/s step, c continue to breakpoint, b toggle breakpoint, q quit",
		"",
		spew.Sdump(m.d.CPU.Dec),
	)
}
