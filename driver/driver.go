// Package driver wires a cpu.CPU to a set of device.Device peripherals and
// steps them together, one tick at a time.
package driver

import (
	"fmt"

	"github.com/allkern/hyrisc/cpu"
	"github.com/allkern/hyrisc/device"
)

// Logger is the minimal sink the driver writes host-visible events to. The
// standard library's *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// Driver owns a CPU and the devices attached to its bus, and advances both
// together. Devices are polled in registration order every tick; the first
// device that acknowledges a request ends the polling for that tick, so
// where windows overlap the first-registered device wins.
type Driver struct {
	CPU     *cpu.CPU
	Devices []device.Device

	// Log, when non-nil, receives one line per tick that raises a
	// host-visible condition (illegal instruction, breakpoint, bus error).
	// Left nil, Tick never writes anywhere on its own.
	Log Logger

	Ticks uint64
}

// New returns a Driver around a fresh CPU, with BusIRQ enabled so bus
// errors and open-bus accesses are promoted to an IRQ instead of silently
// leaving D unmodified.
func New(log Logger) *Driver {
	d := &Driver{
		CPU: &cpu.CPU{},
		Log: log,
	}
	d.CPU.BCI.BusIRQ = true
	d.CPU.Log = log
	return d
}

// Attach registers a device in polling order.
func (d *Driver) Attach(dev device.Device) {
	d.Devices = append(d.Devices, dev)
}

// Reset pulses RESET with vec as the reset vector, matching the power-on
// sequence a real board's reset controller drives.
func (d *Driver) Reset(vec uint32) error {
	return d.CPU.PulseReset(vec)
}

// Tick advances the CPU by one clock, then lets every attached device
// answer any bus request the CPU just raised, in the fixed order
// housekeeping -> signal handling -> one CPU state transition -> device
// updates. It returns the CPU's own tick error (illegal instruction or
// breakpoint) unchanged; the driver itself never turns device behavior
// into an error, since an unanswered access is exactly the open-bus
// condition bciUpdate promotes to an IRQ on the following tick.
func (d *Driver) Tick() error {
	err := d.CPU.Clock()

	for _, dev := range d.Devices {
		acked := d.CPU.BCI.BusAck
		dev.Update(&d.CPU.BCI)
		if !acked && d.CPU.BCI.BusAck {
			break
		}
	}

	d.Ticks++

	if err != nil && d.Log != nil {
		d.Log.Printf("driver: tick %d: %v", d.Ticks, err)
	}

	return err
}

// Run clocks the driver until either n ticks have elapsed or a tick
// returns a non-nil error, whichever comes first. It returns the number of
// ticks actually run and the terminating error, if any.
func (d *Driver) Run(n uint64) (uint64, error) {
	var i uint64
	for ; i < n; i++ {
		if err := d.Tick(); err != nil {
			return i + 1, err
		}
	}
	return i, nil
}

// OpenBus reports whether the CPU is currently waiting on a bus access no
// attached device answered this tick: busreq asserted with busack still
// false after every device has had a chance to respond. This is the
// condition bciUpdate will itself promote to an IRQ on the next tick when
// BusIRQ is set; Run callers that disable BusIRQ (to observe raw access
// patterns, e.g. in a debugger) can poll this instead.
func (d *Driver) OpenBus() bool {
	return d.CPU.BCI.BusReq && !d.CPU.BCI.BusAck
}

// String renders a brief one-line summary of the driver's current tick
// count and cycle phase, useful in --trace logging.
func (d *Driver) String() string {
	return fmt.Sprintf("tick=%d cycle=%d pc=0x%08x a=0x%08x rw=%v size=%v",
		d.Ticks, d.CPU.Cycle, d.CPU.R[cpu.PC], d.CPU.BCI.A, d.CPU.BCI.RW, d.CPU.BCI.S)
}
