package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorVector(t *testing.T) {
	assert.Equal(t, uint32(0xF0000000), ErrorVector(EOK))
	assert.Equal(t, uint32(0xF0000100), ErrorVector(ENOENT))
	assert.Equal(t, uint32(0xF0000F00), ErrorVector(0xF))
}

func TestSizeBytes(t *testing.T) {
	assert.Equal(t, uint32(1), Byte.Bytes())
	assert.Equal(t, uint32(2), Short.Bytes())
	assert.Equal(t, uint32(4), Long.Bytes())
	assert.Equal(t, uint32(4), Execute.Bytes())
}

func TestSignalTriggers(t *testing.T) {
	var s Signal

	s.Set(false)
	assert.True(t, s.Test(LevelLow))
	assert.False(t, s.Test(Rising))

	s.Set(true)
	assert.True(t, s.Test(Rising))
	assert.True(t, s.Test(Edge))
	assert.False(t, s.Test(Falling))

	s.Set(true)
	assert.True(t, s.Test(LevelHigh))
	assert.False(t, s.Test(Edge))

	s.Set(false)
	assert.True(t, s.Test(Falling))
	assert.True(t, s.Test(Edge))
}
