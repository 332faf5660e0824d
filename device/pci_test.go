package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPCIConfigReadVendorAndDeviceID(t *testing.T) {
	p := NewPCIBus()
	p.Register(&PCIFunction{Bus: 0, Device: 1, VendorID: 0x1234, DeviceID: 0xABCD})

	addrWrite := &IOBusExt{Port: PCIConfigAddr, RW: true, Data: 1 << 11}
	p.Update(addrWrite)

	read := &IOBusExt{Port: PCIConfigData, RW: false}
	p.Update(read)

	assert.Equal(t, uint32(0x1234)|(uint32(0xABCD)<<16), read.Data)
}

func TestPCIUnmatchedDeviceReadsAllOnes(t *testing.T) {
	p := NewPCIBus()

	addrWrite := &IOBusExt{Port: PCIConfigAddr, RW: true, Data: 3 << 11}
	p.Update(addrWrite)

	read := &IOBusExt{Port: PCIConfigData, RW: false}
	p.Update(read)

	assert.Equal(t, uint32(0xffffffff), read.Data)
}

func TestPCIWriteZeroCommandDisablesDevice(t *testing.T) {
	p := NewPCIBus()
	p.Register(&PCIFunction{Bus: 0, Device: 2, VendorID: 0xCAFE, DeviceID: 0xBEEF})

	addrWrite := &IOBusExt{Port: PCIConfigAddr, RW: true, Data: (2 << 11) | (1 << 2)}
	p.Update(addrWrite)

	writeCmd := &IOBusExt{Port: PCIConfigData, RW: true, Data: 0}
	p.Update(writeCmd)

	reselectVendorReg := &IOBusExt{Port: PCIConfigAddr, RW: true, Data: 2 << 11}
	p.Update(reselectVendorReg)

	read := &IOBusExt{Port: PCIConfigData, RW: false}
	p.Update(read)
	assert.Equal(t, uint32(0xffffffff), read.Data)
}
