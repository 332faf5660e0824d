package device

import (
	"testing"

	"github.com/allkern/hyrisc/bus"
	"github.com/stretchr/testify/assert"
)

type fakeSubDevice struct {
	port uint32
	mem  map[uint32]uint32
}

func (f *fakeSubDevice) Update(ext *IOBusExt) {
	if ext.Port != f.port {
		return
	}
	if ext.RW {
		f.mem[ext.Port] = ext.Data
	} else {
		ext.Data = f.mem[ext.Port]
	}
}

func TestIOBusRoutesThroughPortThenData(t *testing.T) {
	sub := &fakeSubDevice{port: 0x42, mem: map[uint32]uint32{0x42: 0}}

	iobus := NewIOBus(0xFFFFFFFE)
	iobus.Attach(sub)

	setPort := &bus.BCI{A: 0xFFFFFFFE, RW: true, D: 0x42, S: bus.Long, BusReq: true}
	iobus.Update(setPort)
	assert.True(t, setPort.BusAck)

	writeData := &bus.BCI{A: 0xFFFFFFFF, RW: true, D: 0x99, S: bus.Long, BusReq: true}
	iobus.Update(writeData)

	readData := &bus.BCI{A: 0xFFFFFFFF, S: bus.Long, BusReq: true}
	iobus.Update(readData)
	assert.Equal(t, uint32(0x99), readData.D)
}

func TestIOBusIgnoresUnmatchedPort(t *testing.T) {
	sub := &fakeSubDevice{port: 0x42, mem: map[uint32]uint32{}}

	iobus := NewIOBus(0xFFFFFFFE)
	iobus.Attach(sub)

	setPort := &bus.BCI{A: 0xFFFFFFFE, RW: true, D: 0x7, S: bus.Long, BusReq: true}
	iobus.Update(setPort)

	readData := &bus.BCI{A: 0xFFFFFFFF, S: bus.Long, BusReq: true}
	iobus.Update(readData)
	assert.Equal(t, uint32(0), readData.D)
}
