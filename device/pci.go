package device

// PCI config-space port addresses, matched against an IOBusExt's Port
// field — the standard mechanism #1 address/data pair.
const (
	PCIConfigAddr = 0xcf8
	PCIConfigData = 0xcfc
)

// PCIFunction is one registered device's config space: enough fields to
// answer IDENTIFY-style enumeration, not a full config-space emulation.
type PCIFunction struct {
	Bus, Device, Function uint8

	VendorID, DeviceID uint16
	ClassCode          uint32
	Revision           uint8
	Command, Status    uint16
	BAR                [6]uint32

	// Disabled is set by the "write zero to command disables the
	// device" quirk the reference config-space write path implements;
	// a disabled function stops answering reads until re-enabled.
	Disabled bool
}

func (f *PCIFunction) configRead(reg uint8) uint32 {
	if f.Disabled && reg != 1 {
		return 0xffffffff
	}
	switch reg {
	case 0:
		return uint32(f.VendorID) | (uint32(f.DeviceID) << 16)
	case 1:
		return uint32(f.Command) | (uint32(f.Status) << 16)
	case 2:
		return uint32(f.Revision) | (f.ClassCode << 8)
	case 4, 5, 6, 7, 8, 9:
		return f.BAR[reg-4]
	}
	return 0
}

func (f *PCIFunction) configWrite(reg uint8, value uint32) {
	if reg != 1 {
		return
	}
	f.Command = uint16(value)
	f.Disabled = f.Command == 0
}

// PCIBus is the IOBus sub-device indirecting port 0xcf8/0xcfc accesses
// to a flat list of registered functions, matched by (bus, device).
type PCIBus struct {
	functions []*PCIFunction
	addr      uint32
}

func NewPCIBus() *PCIBus {
	return &PCIBus{}
}

func (p *PCIBus) Register(f *PCIFunction) {
	p.functions = append(p.functions, f)
}

func (p *PCIBus) find(busNo, dev uint8) *PCIFunction {
	for _, f := range p.functions {
		if f.Bus == busNo && f.Device == dev {
			return f
		}
	}
	return nil
}

func decodeConfigAddr(addr uint32) (busNo, dev, fn, reg uint8) {
	busNo = uint8((addr >> 16) & 0xff)
	dev = uint8((addr >> 11) & 0x1f)
	fn = uint8((addr >> 8) & 0x7)
	reg = uint8((addr >> 2) & 0x3f)
	return
}

func (p *PCIBus) Update(ext *IOBusExt) {
	switch ext.Port {
	case PCIConfigAddr:
		if ext.RW {
			p.addr = ext.Data
		} else {
			ext.Data = p.addr
		}
	case PCIConfigData:
		busNo, dev, _, reg := decodeConfigAddr(p.addr)
		f := p.find(busNo, dev)
		if f == nil {
			if !ext.RW {
				ext.Data = 0xffffffff
			}
			return
		}
		if ext.RW {
			f.configWrite(reg, ext.Data)
		} else {
			ext.Data = f.configRead(reg)
		}
	}
}
