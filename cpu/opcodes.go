package cpu

// Opcode values, one byte each, occupying instruction bits 0-7.
const (
	OpMov     uint8 = 0xff
	OpLi      uint8 = 0xfe
	OpLui     uint8 = 0xfd
	OpLoadM   uint8 = 0xfc
	OpLoadS   uint8 = 0xfb
	OpLoadFA  uint8 = 0xfa
	OpLoadFS  uint8 = 0xf9
	OpStoreM  uint8 = 0xf8
	OpStoreS  uint8 = 0xf7
	OpStoreFA uint8 = 0xf6
	OpStoreFS uint8 = 0xf5
	OpLeaM    uint8 = 0xf4
	OpLeaS    uint8 = 0xf3
	OpLeaFA   uint8 = 0xf2
	OpLeaFS   uint8 = 0xf1

	OpAddR    uint8 = 0xef
	OpAddUI8  uint8 = 0xee
	OpAddUI16 uint8 = 0xed
	OpAddSI8  uint8 = 0xec
	OpAddSI16 uint8 = 0xeb
	OpSubR    uint8 = 0xea
	OpSubUI8  uint8 = 0xe9
	OpSubUI16 uint8 = 0xe8
	OpSubSI8  uint8 = 0xe7
	OpSubSI16 uint8 = 0xe6
	OpMulR    uint8 = 0xe5
	OpMulUI8  uint8 = 0xe4
	OpMulUI16 uint8 = 0xe3
	OpMulSI8  uint8 = 0xe2
	OpMulSI16 uint8 = 0xe1
	OpDivR    uint8 = 0xe0
	OpDivUI8  uint8 = 0xdf
	OpDivUI16 uint8 = 0xde
	OpDivSI8  uint8 = 0xdd
	OpDivSI16 uint8 = 0xdc

	OpCmpZ  uint8 = 0xdb
	OpCmpR  uint8 = 0xda
	OpCmpI8 uint8 = 0xd9
	OpCmpI16 uint8 = 0xd8

	OpAndR  uint8 = 0xcf
	OpAndI8 uint8 = 0xce
	OpAndI16 uint8 = 0xcd
	OpOrR   uint8 = 0xcc
	OpOrI8  uint8 = 0xcb
	OpOrI16 uint8 = 0xca
	OpXorR  uint8 = 0xc9
	OpXorI8 uint8 = 0xc8
	OpXorI16 uint8 = 0xc7
	OpNot   uint8 = 0xc6
	OpNeg   uint8 = 0xc5

	OpSext uint8 = 0xc4
	OpZext uint8 = 0xc3
	OpRstS uint8 = 0xc2
	OpRstM uint8 = 0xc1
	OpInc  uint8 = 0xc0
	OpDec  uint8 = 0xbf
	OpTst  uint8 = 0xbe

	OpLslR   uint8 = 0xbd
	OpLslI16 uint8 = 0xbc
	OpLsrR   uint8 = 0xbb
	OpLsrI16 uint8 = 0xba
	OpAslR   uint8 = 0xb9
	OpAslI16 uint8 = 0xb8
	OpAsrR   uint8 = 0xb7
	OpAsrI16 uint8 = 0xb6

	OpBccS      uint8 = 0xaf
	OpBccU      uint8 = 0xae
	OpJalCCI16  uint8 = 0xad
	OpJalCCM    uint8 = 0xac
	OpJalCCS    uint8 = 0xab
	OpCallCCI16 uint8 = 0xaa
	OpCallCCM   uint8 = 0xa9
	OpCallCCS   uint8 = 0xa8
	OpRtlCC     uint8 = 0xa7
	OpRetCC     uint8 = 0xa6

	OpPushM uint8 = 0x9f
	OpPopM  uint8 = 0x9e
	OpPushS uint8 = 0x9d
	OpPopS  uint8 = 0x9c

	OpNop uint8 = 0x8f

	// OpBreak is a host breakpoint, not part of the original instruction
	// set's enumerated opcodes: it raises a diagnostic dump and halt in a
	// hosted environment rather than being treated as illegal.
	OpBreak uint8 = 0x45
)

// FPU opcodes. The reference instruction set never wired fpu.hpp's
// operation table to opcode bytes; these occupy the unused 0x50-0x6f range
// above OpBreak and below OpNop, all encoding 3
// (register-register): fieldx is the destination float register, fieldy
// and fieldz are sources (fieldz unused by unary ops).
const (
	OpFAdd  uint8 = 0x60
	OpFSub  uint8 = 0x61
	OpFMul  uint8 = 0x62
	OpFDiv  uint8 = 0x63
	OpFFma  uint8 = 0x64
	OpFSqrt uint8 = 0x65
	OpFPow  uint8 = 0x66
	OpFAbs  uint8 = 0x67
	OpFMod  uint8 = 0x68
	OpFExp  uint8 = 0x69
	OpFMin  uint8 = 0x6a
	OpFMax  uint8 = 0x6b
	OpFSin  uint8 = 0x6c
	OpFCos  uint8 = 0x6d
	OpFTan  uint8 = 0x6e
	OpFAsin uint8 = 0x50
	OpFAcos uint8 = 0x51
	OpFAtan uint8 = 0x52
	OpFSinh uint8 = 0x53
	OpFCosh uint8 = 0x54
	OpFTanh uint8 = 0x55
	OpFRound uint8 = 0x56
	OpFClamp uint8 = 0x57
	OpFCvtI  uint8 = 0x58
	OpFCvtF  uint8 = 0x59
)

// Condition codes, carried in fieldx for every conditional instruction.
const (
	CondEQ uint8 = iota
	CondNE
	CondCS
	CondCC
	CondMI
	CondPL
	CondVS
	CondVC
	CondHI
	CondLS
	CondGE
	CondLT
	CondGT
	CondLE
	CondAL
)

// TestCondition evaluates condition code cc against the Z/N/V/C bits of st.
// Codes 15-31 are not part of the defined table; no opcode ever encodes
// one, so they resolve to always-false rather than falling through to
// whatever the last defined case happens to leave behind.
func TestCondition(cc uint8, st uint8) bool {
	z := st&FlagZ != 0
	n := st&FlagN != 0
	v := st&FlagV != 0
	c := st&FlagC != 0

	switch cc {
	case CondEQ:
		return z
	case CondNE:
		return !z
	case CondCS:
		return c
	case CondCC:
		return !c
	case CondMI:
		return n
	case CondPL:
		return !n
	case CondVS:
		return v
	case CondVC:
		return !v
	case CondHI:
		return c && !z
	case CondLS:
		return !c || z
	case CondGE:
		return n == v
	case CondLT:
		return n != v
	case CondGT:
		return !z && (n == v)
	case CondLE:
		return z || (n != v)
	case CondAL:
		return true
	}

	return false
}
