package device

import (
	"testing"

	"github.com/allkern/hyrisc/bus"
	"github.com/stretchr/testify/assert"
)

func TestRAMWriteThenReadRoundTrip(t *testing.T) {
	r := NewRAM(0x10000000, 256)

	write := &bus.BCI{A: 0x10000010, RW: true, D: 0x1234, S: bus.Long, BusReq: true}
	r.Update(write)
	assert.True(t, write.BusAck)
	assert.Equal(t, bus.EOK, write.BE)

	read := &bus.BCI{A: 0x10000010, S: bus.Long, BusReq: true}
	r.Update(read)
	assert.Equal(t, uint32(0x1234), read.D)
}

func TestRAMByteOrderIsLittleEndian(t *testing.T) {
	r := NewRAM(0x10000000, 16)

	write := &bus.BCI{A: 0x10000000, RW: true, D: 0xAABBCCDD, S: bus.Long, BusReq: true}
	r.Update(write)

	b0 := &bus.BCI{A: 0x10000000, S: bus.Byte, BusReq: true}
	r.Update(b0)
	assert.Equal(t, uint32(0xDD), b0.D)

	b3 := &bus.BCI{A: 0x10000003, S: bus.Byte, BusReq: true}
	r.Update(b3)
	assert.Equal(t, uint32(0xAA), b3.D)
}
