package cpu

import "github.com/allkern/hyrisc/bus"

// CPU is the full Hyrisc processor state: the 32-entry general-purpose and
// float register banks, status word, decoder latches, and the externally
// visible BCI/PIC pin bundles a driver and its devices observe each tick.
type CPU struct {
	R [32]uint32
	F [32]float32
	ST uint8

	Instruction uint32
	Dec         Decoder
	Cycle       int

	BCI bus.BCI
	PIC bus.PIC

	ResetLine  bus.Signal
	FreezeLine bus.Signal

	// Log, when non-nil, receives one line per bus error promoted to IRQ.
	// Illegal instructions and breakpoints are not logged here; Clock
	// returns them as errors. Left nil, the CPU never writes anywhere on
	// its own.
	Log Logger
}

// Logger is the minimal sink the CPU writes host-visible events to. The
// standard library's *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// FPCSR reads the FPU control/status word aliased onto the highest float
// register.
func (c *CPU) FPCSR() uint32 {
	return floatBits(c.F[FPCSRIndex])
}

// SetFPCSR writes the FPU control/status word back into its aliased float
// register.
func (c *CPU) SetFPCSR(v uint32) {
	c.F[FPCSRIndex] = floatFromBits(v)
}

// ResetNow performs the synchronous reset the reference implementation
// applies while the RESET line is held high: internal latches are cleared,
// the bus returns to its idle pattern, and pc is loaded from pic.V.
func (c *CPU) ResetNow() {
	vec := c.PIC.V

	*c = CPU{
		Log: c.Log,
	}

	c.PIC.V = vec

	c.BCI.A = 0xffffffff
	c.BCI.D = 0xffffffff
	c.BCI.RW = false
	c.BCI.S = bus.Execute
	c.BCI.BE = 0
	c.BCI.BusReq = false
	c.BCI.BusIRQ = true

	c.PIC.IRQ = false
	c.PIC.IRQAck = false

	c.Instruction = 0xffffffff

	c.R[PC] = c.PIC.V
}

// PulseReset sets pic.V to vec, holds RESET high for one tick, then
// releases it — the one-shot reset helper a driver calls at startup instead
// of manipulating ResetLine directly.
func (c *CPU) PulseReset(vec uint32) error {
	c.ResetLine.Set(true)
	c.PIC.V = vec

	err := c.Clock()

	c.ResetLine.Set(false)

	return err
}

// bciUpdate runs the housekeeping every tick begins with: promoting a
// bus error or open bus condition to an IRQ when BusIRQ is enabled.
//
// A literal "clear busreq/busack here if both are set" step (as every
// transfer leaves them after a device acknowledges) would race the very
// state-3 handler that needs to observe busack true — by the time that
// handler's dispatch runs later in the same tick, housekeeping would
// already have cleared the flag it's checking, and the instruction
// would never complete. Instead, every handler that raises busreq
// (fetch capture, and each load/store/call/ret/push/pop completion)
// clears both lines itself at the moment it consumes a successful
// acknowledgment; housekeeping only has the error/open-bus path left.
func (c *CPU) bciUpdate() {
	if !c.BCI.BusIRQ {
		return
	}

	openBus := c.BCI.BusReq && !c.BCI.BusAck

	if c.BCI.BE != 0 || openBus {
		if c.PIC.IRQAck {
			c.BCI.BE = 0
			c.PIC.IRQAck = false
			c.PIC.IRQ = false
			return
		}

		code := c.BCI.BE
		if openBus && code == 0 {
			code = bus.EOpenBus
		}

		c.PIC.IRQAck = false
		c.PIC.IRQ = true
		c.PIC.V = bus.ErrorVector(code)

		if c.Log != nil {
			c.Log.Printf("cpu: bus error promoted to irq, vector=0x%08x", c.PIC.V)
		}
	}
}

// handleSignals applies reset > freeze > IRQ priority. It reports whether
// the state machine should advance this tick.
func (c *CPU) handleSignals() bool {
	if c.ResetLine.Current {
		c.ResetNow()
		return false
	}

	if c.FreezeLine.Current {
		return false
	}

	if c.PIC.IRQ {
		c.Cycle = 0
		c.R[PC] = c.PIC.V
		c.PIC.IRQAck = true

		return true
	}

	return true
}

func (c *CPU) initRead(addr uint32, size uint8) {
	c.BCI.A = addr
	c.BCI.S = bus.Size(size)
	c.BCI.RW = false
	c.BCI.BusReq = true
	c.BCI.BE = 0
}

func (c *CPU) initWrite(addr uint32, value uint32, size uint8) {
	c.BCI.A = addr
	c.BCI.S = bus.Size(size)
	c.BCI.D = value
	c.BCI.RW = true
	c.BCI.BusReq = true
	c.BCI.BE = 0
}

// Clock advances the CPU by one tick: BCI housekeeping, signal handling,
// then one step of the fetch/decode/execute state machine. It returns a
// non-nil error — *IllegalInstructionError or *BreakpointError — exactly
// when the instruction just executed raised one of those host-visible
// conditions; the caller decides whether to keep stepping.
func (c *CPU) Clock() error {
	c.bciUpdate()

	if !c.handleSignals() {
		return nil
	}

	switch c.Cycle {
	case 0:
		c.initRead(c.R[PC], uint8(bus.Execute))
		c.Cycle++

	case 1:
		c.Instruction = c.BCI.D
		c.BCI.BusReq = false
		c.BCI.BusAck = false
		c.R[PC] += 4
		c.Cycle++

	case 2:
		Decode(c.Instruction, &c.Dec)

		done, err := c.execute(0)
		if done {
			c.Cycle = 0
			c.R[R0] = 0
		} else {
			c.Cycle++
		}

		return err

	case 3:
		done, err := c.execute(1)
		if done {
			c.Cycle = 0
			c.R[R0] = 0
		}

		return err
	}

	return nil
}

// Snapshot captures the CPU's state for diagnostic dumps.
func (c *CPU) Snapshot() *DumpState {
	return &DumpState{
		R:       c.R,
		F:       c.F,
		ST:      c.ST,
		Decoder: c.Dec,
		Cycle:   c.Cycle,
		BCI: BCIState{
			A: c.BCI.A, D: c.BCI.D, RW: c.BCI.RW, S: uint8(c.BCI.S),
			BusReq: c.BCI.BusReq, BusAck: c.BCI.BusAck, BE: c.BCI.BE, BusIRQ: c.BCI.BusIRQ,
		},
		PIC: PICState{V: c.PIC.V, IRQ: c.PIC.IRQ, IRQAck: c.PIC.IRQAck},
	}
}
