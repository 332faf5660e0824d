package cpu

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// IllegalInstructionError is returned by Clock when the decoder's opcode
// does not match any entry in the instruction set.
type IllegalInstructionError struct {
	Opcode uint8
	PC     uint32
}

func (e *IllegalInstructionError) Error() string {
	return fmt.Sprintf("cpu: illegal instruction 0x%02x at pc=0x%08x", e.Opcode, e.PC)
}

// BreakpointError is returned by Clock when the host breakpoint opcode is
// executed. It carries enough state for a caller to render a diagnostic
// dump before halting or resuming.
type BreakpointError struct {
	PC    uint32
	State *DumpState
}

func (e *BreakpointError) Error() string {
	return fmt.Sprintf("cpu: host breakpoint at pc=0x%08x", e.PC)
}

// DumpState is a snapshot of everything useful to a human inspecting a
// breakpoint or a post-mortem illegal-instruction halt: the general-purpose
// and float register banks, status word, decoder latches, and bus state.
type DumpState struct {
	R        [32]uint32
	F        [32]float32
	ST       uint8
	Decoder  Decoder
	BCI      BCIState
	PIC      PICState
	Cycle    int
}

// BCIState and PICState are plain-value snapshots of the pin bundles, kept
// separate from the live bus.BCI/bus.PIC types so a dump can be captured,
// copied, and inspected after the fact without aliasing live CPU state.
type BCIState struct {
	A, D   uint32
	RW     bool
	S      uint8
	BusReq bool
	BusAck bool
	BE     uint8
	BusIRQ bool
}

type PICState struct {
	V      uint32
	IRQ    bool
	IRQAck bool
}

// Dump renders a DumpState with go-spew, matching the reference debugger's
// register/bus dump format.
func Dump(s *DumpState) string {
	return spew.Sdump(s)
}
