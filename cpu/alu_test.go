package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerformAddCarry(t *testing.T) {
	var dst uint32 = 0xFFFFFFFF
	var st uint8

	Perform(&dst, dst, 1, aluAddU, &st)

	assert.Equal(t, uint32(0), dst)
	assert.True(t, st&FlagZ != 0)
	assert.True(t, st&FlagC != 0)
	assert.False(t, st&FlagN != 0)
}

func TestPerformAddNoCarry(t *testing.T) {
	var dst uint32 = 1
	var st uint8

	Perform(&dst, dst, 1, aluAddU, &st)

	assert.Equal(t, uint32(2), dst)
	assert.False(t, st&FlagC != 0)
	assert.False(t, st&FlagZ != 0)
}

func TestPerformNegativeFlag(t *testing.T) {
	var dst uint32
	var st uint8

	Perform(&dst, 0, 0x80000000, aluAddU, &st)

	assert.True(t, st&FlagN != 0)
	assert.False(t, st&FlagZ != 0)
}

func TestPerformDivideByZeroDoesNotPanic(t *testing.T) {
	var dst uint32 = 10
	var st uint8

	assert.NotPanics(t, func() {
		Perform(&dst, 10, 0, aluDivU, &st)
	})
	assert.True(t, st&FlagZ != 0)
}

func TestPerformCmpDiscardsResult(t *testing.T) {
	var dst uint32 = 5
	var st uint8

	Perform(&dst, 5, 0, aluCmp, &st)

	assert.Equal(t, uint32(5), dst, "cmp must not write the destination")
	assert.True(t, st&FlagZ != 0)
}

func TestPerformDivSignedVsUnsigned(t *testing.T) {
	var stU, stS uint8
	dstU := uint32(0xFFFFFFFB) // -5 as int32
	dstS := dstU

	Perform(&dstU, dstU, 2, aluDivU, &stU)
	Perform(&dstS, dstS, 2, aluDivS, &stS)

	assert.NotEqual(t, dstU, dstS, "unsigned and signed division of -5/2 must differ")
	assert.Equal(t, uint32(0xFFFFFFFE), dstS) // -2
}

func TestPerformNegIsBitwiseNot(t *testing.T) {
	var dst uint32
	var st uint8

	Perform(&dst, 0x0000FFFF, 0, aluNeg, &st)

	assert.Equal(t, uint32(0xFFFF0000), dst)
}

func TestPerformTstSetsZIffBitClear(t *testing.T) {
	var st uint8
	reg := uint32(0b1010)

	Perform(&reg, 1, 0, aluTst, &st) // bit 1 is set
	assert.False(t, st&FlagZ != 0)

	Perform(&reg, 0, 0, aluTst, &st) // bit 0 is clear
	assert.True(t, st&FlagZ != 0)
}
