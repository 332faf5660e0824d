// Command hyrisc-run loads a flat ROM image and runs it against the
// reference memory map: ROM at 0x80000000, RAM at 0x10000000, a terminal
// at 0xA0000000, and an indirected I/O bus at 0xFFFFFFFE carrying a
// PCI-configuration-style device and a single ATA-like disk.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/allkern/hyrisc/device"
	"github.com/allkern/hyrisc/driver"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

const (
	romBase      = 0x80000000
	ramBase      = 0x10000000
	terminalBase = 0xA0000000
	iobusBase    = 0xFFFFFFFE

	defaultRAMSize = 1 << 20 // 1 MiB
)

// fileBlockStore adapts an *os.File to device.BlockStore, one sector at a
// time, so --disk points straight at a flat image instead of requiring it
// be preloaded into memory.
type fileBlockStore struct {
	f    *os.File
	size int64
}

func newFileBlockStore(f *os.File) (*fileBlockStore, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return &fileBlockStore{f: f, size: info.Size()}, nil
}

func (s *fileBlockStore) ReadSector(lba uint32, out []byte) error {
	_, err := s.f.ReadAt(out, int64(lba)*device.ATASectorSize)
	return err
}

func (s *fileBlockStore) WriteSector(lba uint32, in []byte) error {
	_, err := s.f.WriteAt(in, int64(lba)*device.ATASectorSize)
	return err
}

func (s *fileBlockStore) Sectors() uint32 {
	return uint32(s.size / device.ATASectorSize)
}

func run(romPath string, ramSize int, diskPath string, ticks uint64, trace bool) error {
	romImage, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("hyrisc-run: reading rom: %w", err)
	}

	// logger is left a nil driver.Logger, not a nil *log.Logger, when
	// tracing is off: a non-nil interface wrapping a nil *log.Logger
	// would make the driver's "if Log != nil" checks true and panic on
	// the first Printf call.
	var logger driver.Logger
	if trace {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	d := driver.New(logger)

	rom := device.NewROM(romBase, len(romImage))
	rom.Load(romImage)
	d.Attach(rom)

	ram := device.NewRAM(ramBase, ramSize)
	d.Attach(ram)

	term := device.NewTerminal(terminalBase, os.Stdout, os.Stdin)
	d.Attach(term)

	iobus := device.NewIOBus(iobusBase)
	iobus.Attach(device.NewPCIBus())

	if diskPath != "" {
		disk, err := os.OpenFile(diskPath, os.O_RDWR, 0o644)
		if err != nil {
			return fmt.Errorf("hyrisc-run: opening disk: %w", err)
		}
		defer disk.Close()

		store, err := newFileBlockStore(disk)
		if err != nil {
			return fmt.Errorf("hyrisc-run: stat disk: %w", err)
		}

		drive := device.NewATADrive("HYRISC VDISK", store)
		iobus.Attach(device.NewATAController(drive))
	}
	d.Attach(iobus)

	if err := d.Reset(romBase); err != nil {
		return fmt.Errorf("hyrisc-run: reset: %w", err)
	}

	ran, err := d.Run(ticks)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hyrisc-run: fatal after", ran, "ticks:", err)
		fmt.Fprintln(os.Stderr, spew.Sdump(d.CPU.Snapshot()))
		return err
	}

	return nil
}

func newRootCmd() *cobra.Command {
	var (
		rom     string
		ramSize int
		disk    string
		ticks   uint64
		trace   bool
	)

	cmd := &cobra.Command{
		Use:   "hyrisc-run",
		Short: "Run a Hyrisc ROM image against the reference memory map",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rom == "" {
				return fmt.Errorf("hyrisc-run: --rom is required")
			}
			return run(rom, ramSize, disk, ticks, trace)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&rom, "rom", "", "path to a flat ROM image")
	flags.IntVar(&ramSize, "ram-size", defaultRAMSize, "RAM size in bytes")
	flags.StringVar(&disk, "disk", "", "path to a flat disk image (optional)")
	flags.Uint64Var(&ticks, "ticks", 1_000_000, "number of ticks to run")
	flags.BoolVar(&trace, "trace", false, "log host-visible events (illegal instruction, breakpoint, bus error) to stderr")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
