package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField(t *testing.T) {
	// iiiiiiii 11xxxxxy yyyyzzzz zwwwwwSS, opcode in bits 0-7
	word := uint32(0x000003FF) // low 10 bits set
	assert.Equal(t, uint32(0xFF), Field(word, 0, 8))
	assert.Equal(t, uint32(0x3), Field(word, 8, 2))

	word = uint32(1) << 10
	assert.Equal(t, uint32(1), Field(word, 10, 5))
}

func TestSignExtend(t *testing.T) {
	assert.Equal(t, int32(-1), SignExtend(0xFFFF, 16))
	assert.Equal(t, int32(0x7FFF), SignExtend(0x7FFF, 16))
	assert.Equal(t, int32(-128), SignExtend(0x80, 8))
	assert.Equal(t, int32(127), SignExtend(0x7F, 8))
}
