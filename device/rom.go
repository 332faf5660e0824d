package device

import "github.com/allkern/hyrisc/bus"

// ROM is a fixed-size, byte-addressable, read-only window. A write
// anywhere in range is refused with a bus error rather than silently
// accepted or applied.
type ROM struct {
	Base uint32
	buf  []byte
}

// NewROM allocates a zero-filled ROM of size bytes at base.
func NewROM(base uint32, size int) *ROM {
	return &ROM{Base: base, buf: make([]byte, size)}
}

// Load copies data into the ROM starting at offset 0, truncating to the
// backing buffer's size.
func (r *ROM) Load(data []byte) {
	copy(r.buf, data)
}

// Bytes exposes the backing buffer directly, for a debugger's memory-page
// view. The BCI path above never uses it; only host-side tooling does.
func (r *ROM) Bytes() []byte {
	return r.buf
}

// read8 returns 0 for an address at or past the end of the buffer rather
// than panicking: inRange's upper bound is inclusive of base+len(buf),
// one past the last valid offset, matching the reference range check.
func (r *ROM) read8(addr uint32) uint32 {
	if int(addr) >= len(r.buf) {
		return 0
	}
	return uint32(r.buf[addr])
}

func (r *ROM) read16(addr uint32) uint32 {
	return r.read8(addr) | (r.read8(addr+1) << 8)
}

func (r *ROM) read32(addr uint32) uint32 {
	return r.read16(addr) | (r.read16(addr+2) << 16)
}

func (r *ROM) read(addr uint32, size bus.Size) uint32 {
	switch size {
	case bus.Byte:
		return r.read8(addr)
	case bus.Short:
		return r.read16(addr)
	default:
		return r.read32(addr)
	}
}

func (r *ROM) Update(bci *bus.BCI) {
	if !inRange(bci.A, r.Base, uint32(len(r.buf))) {
		return
	}
	if !bci.BusReq {
		return
	}

	bci.BusAck = true

	if bci.RW {
		bci.BE = bus.EACCES
		return
	}

	bci.BE = bus.EOK
	bci.D = r.read(bci.A-r.Base, bci.S)
}
