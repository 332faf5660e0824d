package device

import (
	"bufio"
	"io"

	"github.com/allkern/hyrisc/bus"
)

// Terminal is a two-address memory-mapped console: offset 0 is
// write-only character output, offset 1 is read-only keystroke input.
// Every other offset in the window reads as zero.
//
// The reference implementation reaches for a platform conio/termios
// shim to poll a keystroke without blocking; that has no portable Go
// equivalent, so Terminal instead takes an Out io.Writer and an In
// io.ByteReader supplied by the caller. A driver wanting non-blocking
// keyboard input puts its real stdin behind a buffered reader fed from
// a goroutine; Terminal itself never touches the OS.
type Terminal struct {
	Base uint32
	Out  io.Writer
	In   io.ByteReader
}

// NewTerminal wraps an io.Reader for In behind a *bufio.Reader, which
// satisfies io.ByteReader.
func NewTerminal(base uint32, out io.Writer, in io.Reader) *Terminal {
	var br io.ByteReader
	if in != nil {
		br = bufio.NewReader(in)
	}
	return &Terminal{Base: base, Out: out, In: br}
}

func (t *Terminal) read(addr uint32) uint32 {
	switch addr {
	case 1:
		if t.In == nil {
			return 0
		}
		b, err := t.In.ReadByte()
		if err != nil {
			return 0
		}
		return uint32(b)
	default:
		return 0
	}
}

func (t *Terminal) write(addr, value uint32) {
	if addr != 0 || t.Out == nil {
		return
	}
	t.Out.Write([]byte{byte(value)})
}

func (t *Terminal) Update(bci *bus.BCI) {
	if !inRange(bci.A, t.Base, 2) {
		return
	}
	if !bci.BusReq {
		return
	}

	bci.BusAck = true
	bci.BE = bus.EOK

	if bci.RW {
		t.write(bci.A-t.Base, bci.D)
	} else {
		bci.D = t.read(bci.A - t.Base)
	}
}
