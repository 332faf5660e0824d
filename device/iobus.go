package device

import "github.com/allkern/hyrisc/bus"

// IOBusExt is the indirection context an IOBus hands to its sub-devices:
// the currently latched port, the data value being transferred, and the
// direction/size of the access. The reference implementation's
// equivalent struct is missing the field its own iobus actually
// assigns (an "addr" field referenced nowhere in its own declaration);
// this redesign keeps the four fields an indirected sub-device
// genuinely needs and nothing else.
type IOBusExt struct {
	Port uint32
	Data uint32
	RW   bool
	Size bus.Size
}

// IOBusDevice is a sub-device reachable only through an IOBus's
// port/data indirection, never directly on the CPU's address bus.
type IOBusDevice interface {
	Update(ext *IOBusExt)
}

// IOBus is the two-register memory-mapped indirection point: offset 0
// is the port register (selects which sub-device port subsequent data
// accesses target), offset 1 is the data register (the actual
// read/write, offered to every registered sub-device, each of which
// decides from the latched port whether to respond).
type IOBus struct {
	Base    uint32
	devices []IOBusDevice
	ext     IOBusExt
}

// NewIOBus builds an IOBus with no sub-devices registered yet.
func NewIOBus(base uint32) *IOBus {
	return &IOBus{Base: base}
}

// Attach registers a sub-device. Every data access is passed to all
// registered sub-devices in registration order; none of them stops the
// dispatch. Where port ranges overlap, every matching sub-device receives
// a write, and on a read the last one to set Data determines the value.
func (b *IOBus) Attach(dev IOBusDevice) {
	b.devices = append(b.devices, dev)
}

func (b *IOBus) Update(bci *bus.BCI) {
	if !inRange(bci.A, b.Base, 1) {
		return
	}
	if !bci.BusReq {
		return
	}

	bci.BusAck = true
	bci.BE = bus.EOK

	offset := bci.A - b.Base

	switch offset {
	case 0:
		if bci.RW {
			b.ext.Port = bci.D
		} else {
			bci.D = b.ext.Port
		}
	case 1:
		b.ext.RW = bci.RW
		b.ext.Size = bci.S

		if bci.RW {
			b.ext.Data = bci.D
			for _, dev := range b.devices {
				dev.Update(&b.ext)
			}
		} else {
			b.ext.Data = 0
			for _, dev := range b.devices {
				dev.Update(&b.ext)
			}
			bci.D = b.ext.Data
		}
	}
}
