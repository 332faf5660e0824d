// Command hyriscdbg is an interactive, single-stepping debugger for a
// Hyrisc ROM image: a bubbletea terminal UI showing the register file,
// status flags, BCI pin state, and a memory page around pc, with simple
// PC breakpoints.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/allkern/hyrisc/device"
	"github.com/allkern/hyrisc/driver"
)

const (
	romBase = 0x80000000
	ramBase = 0x10000000
	ramSize = 1 << 16
)

func run(romPath string) error {
	romImage, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("hyriscdbg: reading rom: %w", err)
	}

	d := driver.New(nil)

	rom := device.NewROM(romBase, len(romImage))
	rom.Load(romImage)
	d.Attach(rom)

	ram := device.NewRAM(ramBase, ramSize)
	d.Attach(ram)

	if err := d.Reset(romBase); err != nil {
		return fmt.Errorf("hyriscdbg: reset: %w", err)
	}

	m := model{
		d:           d,
		rom:         rom,
		ram:         ram,
		breakpoints: make(map[uint32]bool),
	}

	_, err = tea.NewProgram(m).Run()
	return err
}

func main() {
	cmd := &cobra.Command{
		Use:   "hyriscdbg <rom>",
		Short: "Interactively single-step a Hyrisc ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
