// Package device implements the reference peripherals that answer a
// Hyrisc CPU's Bus Controller Interface: a read-only ROM, a read-write
// RAM, a terminal, and an indirected I/O bus carrying a PCI-config-style
// device and an ATA-like block device.
package device

import "github.com/allkern/hyrisc/bus"

// Device is the single operation every peripheral exposes: given a
// tick's BCI state, decide whether the access falls in its window and,
// if so, service it — setting BusAck and BE, and either reading D or
// consuming it. A device that doesn't recognize the address leaves the
// BCI untouched, letting the driver poll the next device in line.
type Device interface {
	Update(bci *bus.BCI)
}

// inRange reports whether addr falls within a size-byte window starting
// at base, matching the inclusive-upper-bound range test every
// reference peripheral uses (base <= a <= base+size).
func inRange(addr, base uint32, size uint32) bool {
	return addr >= base && addr <= base+size
}
