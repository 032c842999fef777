package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	assert.True(t, IsSet(0b1101_1000, 1))
	assert.True(t, IsSet(0b1101_1000, 2))
	assert.False(t, IsSet(0b1101_1000, 3))
	assert.True(t, IsSet(0b1101_1000, 4))

	assert.Equal(t, Set(0b0000_0000, 1, 0b0000_0010), byte(0b1000_0000))
	assert.Equal(t, Set(0b0000_0000, 1, 0b0000_0101), byte(0b1010_0000))
	assert.Equal(t, Set(0b0000_0000, 1, 0b0000_0111), byte(0b1110_0000))
	assert.Equal(t, Set(0b0000_0000, 2, 0b0000_0011), byte(0b0110_0000))
	assert.Equal(t, Set(0b0000_0000, 2, 0b0000_0111), byte(0b0111_0000))
	assert.Equal(t, Set(0b0000_0000, 5, 0b0000_1111), byte(0b0000_1111))
	assert.Equal(t, Set(0b0000_0000, 7, 0b0000_1000), byte(0b0000_0010))
	assert.Equal(t, Set(0b0000_0000, 7, 0b0000_1111), byte(0b0000_0011))
	assert.Equal(t, Set(0b1111_1111, 1, 0), byte(0b1111_1111))

	assert.Equal(t, Unset(0b1111_0000, 5, 8), byte(0b1111_0000))
	assert.Equal(t, Unset(0b1111_1111, 5, 8), byte(0b1111_0000))
}

func TestWord(t *testing.T) {
	assert.Equal(t, Word(0x3C, 0xF4), uint16(0x3CF4))
	assert.Equal(t, Word(0x00, 0x00), uint16(0))
	assert.Equal(t, Word(0xFF, 0xFF), uint16(0xFFFF))
}

func TestHighLow(t *testing.T) {
	assert.Equal(t, High(0x3CF4), byte(0x3C))
	assert.Equal(t, Low(0x3CF4), byte(0xF4))
	assert.Equal(t, Word(High(0xBEEF), Low(0xBEEF)), uint16(0xBEEF))
}

func TestParity(t *testing.T) {
	assert.True(t, Parity(0x00))
	assert.False(t, Parity(0x01))
	assert.True(t, Parity(0x03))
	assert.True(t, Parity(0xFF))
	assert.False(t, Parity(0x80))
}
