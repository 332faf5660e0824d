package cpu

import "math"

// FPUOp computes a single-precision result from a destination (read-modify,
// for fma/clamp) and up to two sources.
type FPUOp func(dst float32, src1, src2 float32) float32

// The single-precision FPU operation table, mirroring the reference
// implementation's fadd/fsub/.../fclamp set one for one.
var (
	fpuAdd   FPUOp = func(dst, src1, src2 float32) float32 { return src1 + src2 }
	fpuSub   FPUOp = func(dst, src1, src2 float32) float32 { return src1 - src2 }
	fpuMul   FPUOp = func(dst, src1, src2 float32) float32 { return src1 * src2 }
	fpuDiv   FPUOp = func(dst, src1, src2 float32) float32 { return src1 / src2 }
	fpuFma   FPUOp = func(dst, src1, src2 float32) float32 { return dst + src1*src2 }
	fpuSqrt  FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Sqrt(float64(src1))) }
	fpuPow   FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Pow(float64(src1), float64(src2))) }
	fpuAbs   FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Abs(float64(src1))) }
	fpuMod   FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Mod(float64(src1), float64(src2))) }
	fpuExp   FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Exp(float64(src1))) }
	fpuMin   FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Min(float64(src1), float64(src2))) }
	fpuMax   FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Max(float64(src1), float64(src2))) }
	fpuSin   FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Sin(float64(src1))) }
	fpuCos   FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Cos(float64(src1))) }
	fpuTan   FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Tan(float64(src1))) }
	fpuAsin  FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Asin(float64(src1))) }
	fpuAcos  FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Acos(float64(src1))) }
	fpuAtan  FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Atan(float64(src1))) }
	fpuSinh  FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Sinh(float64(src1))) }
	fpuCosh  FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Cosh(float64(src1))) }
	fpuTanh  FPUOp = func(dst, src1, src2 float32) float32 { return float32(math.Tanh(float64(src1))) }
	fpuRound FPUOp = func(dst, src1, src2 float32) float32 { return roundMode(src1, RoundNearest) }
	fpuClamp FPUOp = func(dst, src1, src2 float32) float32 {
		if dst < src1 {
			return src1
		}
		if dst > src2 {
			return src2
		}
		return dst
	}
)

// roundMode rounds v per one of the four FPCSR rounding modes. Go has no
// hardware rounding-mode switch (no fesetround equivalent), so every op in
// the FPUOp table, including fround itself, always rounds to nearest; the
// FPUOp signature carries no fpcsr parameter for the table entries to read
// from. FCvtI is the only caller that actually derives mode from FPCSR,
// since it takes fpcsr as an explicit argument rather than going through
// the table.
func roundMode(v float32, mode uint8) float32 {
	switch mode {
	case RoundDown:
		return float32(math.Floor(float64(v)))
	case RoundUp:
		return float32(math.Ceil(float64(v)))
	case RoundTowardZero:
		return float32(math.Trunc(float64(v)))
	default:
		return float32(math.RoundToEven(float64(v)))
	}
}

// FPUPerform runs op, writes *dst, and ORs any IEEE exception flags
// observed into *fpcsr. It never traps on NaN/Inf, per the FPU contract.
// The rounding-mode bits of *fpcsr are not applied: op always rounds to
// nearest.
func FPUPerform(dst *float32, src1, src2 float32, op FPUOp, fpcsr *uint32) {
	before := *dst

	result := op(before, src1, src2)

	*dst = result

	*fpcsr |= detectExceptions(before, src1, src2, result)
}

func detectExceptions(dst, src1, src2, result float32) uint32 {
	var flags uint32

	if math.IsNaN(float64(result)) && !math.IsNaN(float64(src1)) && !math.IsNaN(float64(src2)) {
		flags |= FPCSRInvalid
	}

	if math.IsInf(float64(result), 0) && !math.IsInf(float64(src1), 0) && !math.IsInf(float64(src2), 0) {
		if src2 == 0 {
			flags |= FPCSRDivByZero
		} else {
			flags |= FPCSROverflow
		}
	}

	if result != 0 && !math.IsInf(float64(result), 0) && math.Abs(float64(result)) < math.SmallestNonzeroFloat32*(1<<23) {
		flags |= FPCSRUnderflow
	}

	if float32(int64(result)) != result && !math.IsNaN(float64(result)) && !math.IsInf(float64(result), 0) {
		flags |= FPCSRInexact
	}

	return flags
}

// FCvtI converts src, rounded per the FPCSR rounding mode, to a signed
// 32-bit integer whose bit pattern is stored (not cast) into the
// destination float register, so an integer result can travel through the
// float register file without the hardware needing a separate integer bus.
func FCvtI(src float32, fpcsr uint32) float32 {
	mode := uint8((fpcsr & fpcsrRoundMask) >> 5)
	rounded := roundMode(src, mode)
	return math.Float32frombits(uint32(int32(rounded)))
}

// FCvtF converts the integer payload stored in src's bit pattern to a
// float32 value.
func FCvtF(src float32) float32 {
	return float32(int32(math.Float32bits(src)))
}

// floatBits and floatFromBits let FPCSR be stored as an ordinary uint32
// while still living in the float register bank, per the FPCSR-aliasing
// convention.
func floatBits(f float32) uint32 {
	return math.Float32bits(f)
}

func floatFromBits(v uint32) float32 {
	return math.Float32frombits(v)
}
