package device

import "github.com/allkern/hyrisc/bus"

// RAM is a fixed-size, byte-addressable, read/write window, grounded
// directly on the reference flash-backed store: little-endian
// read8/16/32 and write8/16/32 built up from the byte primitive.
type RAM struct {
	Base uint32
	buf  []byte
}

// NewRAM allocates a zero-filled RAM of size bytes at base.
func NewRAM(base uint32, size int) *RAM {
	return &RAM{Base: base, buf: make([]byte, size)}
}

func (r *RAM) read8(addr uint32) uint32 {
	if int(addr) >= len(r.buf) {
		return 0
	}
	return uint32(r.buf[addr])
}

func (r *RAM) read16(addr uint32) uint32 {
	return r.read8(addr) | (r.read8(addr+1) << 8)
}

func (r *RAM) read32(addr uint32) uint32 {
	return r.read16(addr) | (r.read16(addr+2) << 16)
}

func (r *RAM) write8(addr, value uint32) {
	if int(addr) >= len(r.buf) {
		return
	}
	r.buf[addr] = byte(value)
}

func (r *RAM) write16(addr, value uint32) {
	r.write8(addr, value&0xff)
	r.write8(addr+1, (value>>8)&0xff)
}

func (r *RAM) write32(addr, value uint32) {
	r.write16(addr, value&0xffff)
	r.write16(addr+2, (value>>16)&0xffff)
}

func (r *RAM) read(addr uint32, size bus.Size) uint32 {
	switch size {
	case bus.Byte:
		return r.read8(addr)
	case bus.Short:
		return r.read16(addr)
	default:
		return r.read32(addr)
	}
}

func (r *RAM) write(addr, value uint32, size bus.Size) {
	switch size {
	case bus.Byte:
		r.write8(addr, value)
	case bus.Short:
		r.write16(addr, value)
	default:
		r.write32(addr, value)
	}
}

// Bytes exposes the backing buffer directly, for a debugger's memory-page
// view. The BCI path above never uses it; only host-side tooling does.
func (r *RAM) Bytes() []byte {
	return r.buf
}

func (r *RAM) Update(bci *bus.BCI) {
	if !inRange(bci.A, r.Base, uint32(len(r.buf))) {
		return
	}
	if !bci.BusReq {
		return
	}

	bci.BusAck = true
	bci.BE = bus.EOK

	if bci.RW {
		r.write(bci.A-r.Base, bci.D, bci.S)
	} else {
		bci.D = r.read(bci.A-r.Base, bci.S)
	}
}
