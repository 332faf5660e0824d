package cpu

import "github.com/allkern/hyrisc/mask"

// Encoding tags select one of four operand layouts via instruction bits 8-9.
const (
	EncReserved = iota // encoding 0, reserved
	Enc1Field16        // 1 field + 16-bit immediate
	Enc2Field8         // 2 fields + 8-bit immediate
	Enc4Field          // 4 register fields + size
)

// Decoder holds the fields populated by Decode from the current instruction
// latch. It is pure: decoding never touches memory or registers.
type Decoder struct {
	Opcode   uint8
	Encoding uint8

	FieldX uint8
	FieldY uint8
	FieldZ uint8
	FieldW uint8

	Size  uint8
	Imm8  uint8
	Imm16 uint16
}

// Decode populates d from the given 32-bit instruction word. Bits 0-7 are
// always the opcode and bits 8-9 are always the encoding tag; the
// remaining layout depends on the encoding.
func Decode(instr uint32, d *Decoder) {
	*d = Decoder{}

	d.Opcode = uint8(mask.Field(instr, 0, 8))
	d.Encoding = uint8(mask.Field(instr, 8, 2))

	switch d.Encoding {
	case Enc4Field:
		d.FieldX = uint8(mask.Field(instr, 10, 5))
		d.FieldY = uint8(mask.Field(instr, 15, 5))
		d.FieldZ = uint8(mask.Field(instr, 20, 5))
		d.FieldW = uint8(mask.Field(instr, 25, 5))
		d.Size = uint8(mask.Field(instr, 30, 2))

	case Enc2Field8:
		d.FieldX = uint8(mask.Field(instr, 10, 5))
		d.FieldY = uint8(mask.Field(instr, 15, 5))
		d.Imm8 = uint8(mask.Field(instr, 20, 8))

	case Enc1Field16:
		d.FieldX = uint8(mask.Field(instr, 10, 5))
		d.Imm16 = uint16(mask.Field(instr, 15, 16))

	case EncReserved:
		// Reserved: fields are left zero. The instruction set never
		// emits encoding 0; branch/jal forms reuse encodings 1 and 3
		// (see exec.go) with fieldx doing double duty as the
		// condition code.
	}
}

// I10 reconstructs the 10-bit fixed offset used by load.fa/load.fs and
// their store/lea counterparts: fieldz is the low 5 bits, fieldw the high
// 5 bits.
func (d *Decoder) I10() uint32 {
	return uint32(d.FieldZ) | (uint32(d.FieldW) << 5)
}
