package cpu

import "github.com/allkern/hyrisc/bus"

// execute runs the decode-execute or I/O-completion half of an instruction.
// cycle is 0 on the first call (entered from state 2) and 1 on the second
// (state 3, reached only when the first call returned false). It reports
// whether the instruction is finished and any host-visible signal raised.
func (c *CPU) execute(cycle int) (bool, error) {
	d := &c.Dec

	regX := &c.R[d.FieldX]
	regY := c.R[d.FieldY]
	regZ := c.R[d.FieldZ]

	indexedMultiply := regY + regZ*uint32(d.FieldW)
	indexedShift := regY + (regZ << d.FieldW)

	switch d.Opcode {
	case OpMov:
		*regX = c.R[d.FieldY]
		return true, nil

	case OpLi:
		*regX = uint32(d.Imm16)
		return true, nil

	case OpLui:
		*regX = uint32(d.Imm16) << 16
		return true, nil

	case OpLoadM:
		return c.load(cycle, indexedMultiply, d.Size, regX)
	case OpLoadS:
		return c.load(cycle, indexedShift, d.Size, regX)
	case OpLoadFA:
		return c.load(cycle, regY+d.I10(), d.Size, regX)
	case OpLoadFS:
		return c.load(cycle, regY-d.I10(), d.Size, regX)

	case OpStoreM:
		return c.store(cycle, indexedMultiply, *regX, d.Size)
	case OpStoreS:
		return c.store(cycle, indexedShift, *regX, d.Size)
	case OpStoreFA:
		return c.store(cycle, regY+d.I10(), *regX, d.Size)
	case OpStoreFS:
		return c.store(cycle, regY-d.I10(), *regX, d.Size)

	case OpLeaM:
		*regX = indexedMultiply
		return true, nil
	case OpLeaS:
		*regX = indexedShift
		return true, nil
	case OpLeaFA:
		*regX = regY + d.I10()
		return true, nil
	case OpLeaFS:
		*regX = regY - d.I10()
		return true, nil

	case OpAddR:
		Perform(regX, regY, regZ, aluAddU, &c.ST)
		return true, nil
	case OpAddUI8:
		Perform(regX, regY, uint32(d.Imm8), aluAddU, &c.ST)
		return true, nil
	case OpAddUI16:
		Perform(regX, *regX, uint32(d.Imm16), aluAddU, &c.ST)
		return true, nil
	case OpAddSI8:
		Perform(regX, regY, uint32(d.Imm8), aluAddS, &c.ST)
		return true, nil
	case OpAddSI16:
		Perform(regX, *regX, uint32(d.Imm16), aluAddS, &c.ST)
		return true, nil

	case OpSubR:
		Perform(regX, regY, regZ, aluSubU, &c.ST)
		return true, nil
	case OpSubUI8:
		Perform(regX, regY, uint32(d.Imm8), aluSubU, &c.ST)
		return true, nil
	case OpSubUI16:
		Perform(regX, *regX, uint32(d.Imm16), aluSubU, &c.ST)
		return true, nil
	case OpSubSI8:
		Perform(regX, regY, uint32(d.Imm8), aluSubS, &c.ST)
		return true, nil
	case OpSubSI16:
		Perform(regX, *regX, uint32(d.Imm16), aluSubS, &c.ST)
		return true, nil

	case OpMulR:
		Perform(regX, regY, regZ, aluMulU, &c.ST)
		return true, nil
	case OpMulUI8:
		Perform(regX, regY, uint32(d.Imm8), aluMulU, &c.ST)
		return true, nil
	case OpMulUI16:
		Perform(regX, *regX, uint32(d.Imm16), aluMulU, &c.ST)
		return true, nil
	case OpMulSI8:
		Perform(regX, regY, uint32(d.Imm8), aluMulS, &c.ST)
		return true, nil
	case OpMulSI16:
		Perform(regX, *regX, uint32(d.Imm16), aluMulS, &c.ST)
		return true, nil

	case OpDivR:
		Perform(regX, regY, regZ, aluDivU, &c.ST)
		return true, nil
	case OpDivUI8:
		Perform(regX, regY, uint32(d.Imm8), aluDivU, &c.ST)
		return true, nil
	case OpDivUI16:
		Perform(regX, *regX, uint32(d.Imm16), aluDivU, &c.ST)
		return true, nil
	case OpDivSI8:
		Perform(regX, regY, uint32(d.Imm8), aluDivS, &c.ST)
		return true, nil
	case OpDivSI16:
		Perform(regX, *regX, uint32(d.Imm16), aluDivS, &c.ST)
		return true, nil

	case OpCmpZ:
		Perform(regX, 0, 0, aluCmp, &c.ST)
		return true, nil
	case OpCmpR:
		Perform(regX, regY, 0, aluCmp, &c.ST)
		return true, nil
	case OpCmpI8:
		// Compares against the 8-bit immediate this opcode actually
		// decodes, not a 16-bit one — cmpi8 and cmpi16 are distinct
		// opcodes with distinct immediate widths.
		Perform(regX, uint32(d.Imm8), 0, aluCmp, &c.ST)
		return true, nil
	case OpCmpI16:
		Perform(regX, uint32(d.Imm16), 0, aluCmp, &c.ST)
		return true, nil

	case OpAndR:
		Perform(regX, regY, regZ, aluAnd, &c.ST)
		return true, nil
	case OpAndI8:
		Perform(regX, regY, uint32(d.Imm8), aluAnd, &c.ST)
		return true, nil
	case OpAndI16:
		Perform(regX, *regX, uint32(d.Imm16), aluAnd, &c.ST)
		return true, nil
	case OpOrR:
		Perform(regX, regY, regZ, aluOr, &c.ST)
		return true, nil
	case OpOrI8:
		Perform(regX, regY, uint32(d.Imm8), aluOr, &c.ST)
		return true, nil
	case OpOrI16:
		Perform(regX, *regX, uint32(d.Imm16), aluOr, &c.ST)
		return true, nil
	case OpXorR:
		Perform(regX, regY, regZ, aluXor, &c.ST)
		return true, nil
	case OpXorI8:
		Perform(regX, regY, uint32(d.Imm8), aluXor, &c.ST)
		return true, nil
	case OpXorI16:
		Perform(regX, *regX, uint32(d.Imm16), aluXor, &c.ST)
		return true, nil
	case OpNot:
		Perform(regX, regY, 0, aluNot, &c.ST)
		return true, nil
	case OpNeg:
		Perform(regX, regY, 0, aluNeg, &c.ST)
		return true, nil

	case OpSext:
		*regX = uint32(signExtendWidth(regY, d.Size))
		return true, nil
	case OpZext:
		*regX = zeroExtendWidth(regY, d.Size)
		return true, nil

	case OpRstS:
		*regX = 0
		return true, nil
	case OpRstM:
		if d.FieldX <= d.FieldY {
			for i := d.FieldX; i <= d.FieldY; i++ {
				c.R[i] = 0
			}
		}
		return true, nil

	case OpInc:
		Perform(regX, 1<<d.Size, 0, aluInc, &c.ST)
		return true, nil
	case OpDec:
		Perform(regX, 1<<d.Size, 0, aluDec, &c.ST)
		return true, nil

	case OpTst:
		Perform(regX, uint32(d.FieldY), 0, aluTst, &c.ST)
		return true, nil

	case OpLslR:
		Perform(regX, regY, regZ, aluLsl, &c.ST)
		return true, nil
	case OpLslI16:
		Perform(regX, *regX, uint32(d.Imm16), aluLsl, &c.ST)
		return true, nil
	case OpLsrR:
		Perform(regX, regY, regZ, aluLsr, &c.ST)
		return true, nil
	case OpLsrI16:
		Perform(regX, *regX, uint32(d.Imm16), aluLsr, &c.ST)
		return true, nil
	case OpAslR:
		Perform(regX, regY, regZ, aluAsl, &c.ST)
		return true, nil
	case OpAslI16:
		Perform(regX, *regX, uint32(d.Imm16), aluAsl, &c.ST)
		return true, nil
	case OpAsrR:
		Perform(regX, regY, regZ, aluAsr, &c.ST)
		return true, nil
	case OpAsrI16:
		Perform(regX, *regX, uint32(d.Imm16), aluAsr, &c.ST)
		return true, nil

	case OpBccS:
		if TestCondition(d.FieldX, c.ST) {
			c.R[PC] += uint32(int32(int16(d.Imm16)))
		}
		return true, nil
	case OpBccU:
		if TestCondition(d.FieldX, c.ST) {
			c.R[PC] += uint32(d.Imm16)
		}
		return true, nil

	case OpJalCCI16:
		if TestCondition(d.FieldX, c.ST) {
			c.R[PC] = (c.R[PC] & 0xffff0000) | uint32(d.Imm16)
		}
		return true, nil
	case OpJalCCM:
		if TestCondition(d.FieldX, c.ST) {
			c.R[LR] = c.R[PC]
			c.R[PC] = indexedMultiply
		}
		return true, nil
	case OpJalCCS:
		if TestCondition(d.FieldX, c.ST) {
			c.R[LR] = c.R[PC]
			c.R[PC] = indexedShift
		}
		return true, nil

	case OpCallCCI16:
		return c.call(cycle, d.FieldX, func() uint32 { return (c.R[PC] & 0xffff0000) | uint32(d.Imm16) })
	case OpCallCCM:
		return c.call(cycle, d.FieldX, func() uint32 { return indexedMultiply })
	case OpCallCCS:
		return c.call(cycle, d.FieldX, func() uint32 { return indexedShift })

	case OpRtlCC:
		if TestCondition(d.FieldX, c.ST) {
			c.R[PC] = c.R[LR]
		}
		return true, nil

	case OpRetCC:
		return c.ret(cycle, d.FieldX)

	case OpPushS:
		return c.push(cycle, *regX)
	case OpPopS:
		return c.pop(cycle, regX)

	case OpFAdd:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], c.F[d.FieldZ], fpuAdd)
		return true, nil
	case OpFSub:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], c.F[d.FieldZ], fpuSub)
		return true, nil
	case OpFMul:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], c.F[d.FieldZ], fpuMul)
		return true, nil
	case OpFDiv:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], c.F[d.FieldZ], fpuDiv)
		return true, nil
	case OpFFma:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], c.F[d.FieldZ], fpuFma)
		return true, nil
	case OpFSqrt:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuSqrt)
		return true, nil
	case OpFPow:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], c.F[d.FieldZ], fpuPow)
		return true, nil
	case OpFAbs:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuAbs)
		return true, nil
	case OpFMod:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], c.F[d.FieldZ], fpuMod)
		return true, nil
	case OpFExp:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuExp)
		return true, nil
	case OpFMin:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], c.F[d.FieldZ], fpuMin)
		return true, nil
	case OpFMax:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], c.F[d.FieldZ], fpuMax)
		return true, nil
	case OpFSin:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuSin)
		return true, nil
	case OpFCos:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuCos)
		return true, nil
	case OpFTan:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuTan)
		return true, nil
	case OpFAsin:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuAsin)
		return true, nil
	case OpFAcos:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuAcos)
		return true, nil
	case OpFAtan:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuAtan)
		return true, nil
	case OpFSinh:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuSinh)
		return true, nil
	case OpFCosh:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuCosh)
		return true, nil
	case OpFTanh:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuTanh)
		return true, nil
	case OpFRound:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], 0, fpuRound)
		return true, nil
	case OpFClamp:
		c.fpu(&c.F[d.FieldX], c.F[d.FieldY], c.F[d.FieldZ], fpuClamp)
		return true, nil
	case OpFCvtI:
		c.F[d.FieldX] = FCvtI(c.F[d.FieldY], c.FPCSR())
		return true, nil
	case OpFCvtF:
		c.F[d.FieldX] = FCvtF(c.F[d.FieldY])
		return true, nil

	case OpNop:
		return true, nil

	case OpBreak:
		return true, &BreakpointError{PC: c.R[PC], State: c.Snapshot()}

	default:
		return true, &IllegalInstructionError{Opcode: d.Opcode, PC: c.R[PC]}
	}
}

func (c *CPU) fpu(dst *float32, src1, src2 float32, op FPUOp) {
	fpcsr := c.FPCSR()
	FPUPerform(dst, src1, src2, op, &fpcsr)
	c.SetFPCSR(fpcsr)
}

func (c *CPU) load(cycle int, addr uint32, size uint8, dst *uint32) (bool, error) {
	switch cycle {
	case 0:
		c.initRead(addr, size)
		return false, nil
	default:
		if !c.BCI.BusAck {
			return false, nil
		}
		c.BCI.BusReq = false
		c.BCI.BusAck = false
		*dst = c.BCI.D
		return true, nil
	}
}

func (c *CPU) store(cycle int, addr uint32, value uint32, size uint8) (bool, error) {
	switch cycle {
	case 0:
		c.initWrite(addr, value, size)
		return false, nil
	default:
		if !c.BCI.BusAck {
			return false, nil
		}
		c.BCI.BusReq = false
		c.BCI.BusAck = false
		return true, nil
	}
}

func (c *CPU) call(cycle int, cond uint8, target func() uint32) (bool, error) {
	switch cycle {
	case 0:
		if !TestCondition(cond, c.ST) {
			return true, nil
		}
		c.R[SP] -= 4
		c.initWrite(c.R[SP], c.R[PC], uint8(bus.Long))
		c.R[PC] = target()
		return false, nil
	default:
		if !c.BCI.BusAck {
			return false, nil
		}
		c.BCI.BusReq = false
		c.BCI.BusAck = false
		return true, nil
	}
}

func (c *CPU) ret(cycle int, cond uint8) (bool, error) {
	switch cycle {
	case 0:
		if !TestCondition(cond, c.ST) {
			return true, nil
		}
		c.initRead(c.R[SP], uint8(bus.Long))
		c.R[SP] += 4
		return false, nil
	default:
		if !c.BCI.BusAck {
			return false, nil
		}
		c.BCI.BusReq = false
		c.BCI.BusAck = false
		c.R[PC] = c.BCI.D
		return true, nil
	}
}

func (c *CPU) push(cycle int, value uint32) (bool, error) {
	switch cycle {
	case 0:
		c.R[SP] -= 4
		c.initWrite(c.R[SP], value, uint8(bus.Long))
		return false, nil
	default:
		if !c.BCI.BusAck {
			return false, nil
		}
		c.BCI.BusReq = false
		c.BCI.BusAck = false
		return true, nil
	}
}

func (c *CPU) pop(cycle int, dst *uint32) (bool, error) {
	switch cycle {
	case 0:
		c.initRead(c.R[SP], uint8(bus.Long))
		c.R[SP] += 4
		return false, nil
	default:
		if !c.BCI.BusAck {
			return false, nil
		}
		c.BCI.BusReq = false
		c.BCI.BusAck = false
		*dst = c.BCI.D
		return true, nil
	}
}

func signExtendWidth(v uint32, size uint8) int32 {
	switch size {
	case 0:
		return int32(int8(v))
	case 1:
		return int32(int16(v))
	default:
		return int32(v)
	}
}

func zeroExtendWidth(v uint32, size uint8) uint32 {
	switch size {
	case 0:
		return v & 0xff
	case 1:
		return v & 0xffff
	default:
		return v
	}
}
