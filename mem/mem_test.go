package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"i8080/mask"
)

func TestReadWriteByte(t *testing.T) {
	var m Memory
	m.WriteByte(0x1234, 0xAB)
	assert.Equal(t, byte(0xAB), m.ReadByte(0x1234))
	assert.Equal(t, byte(0), m.ReadByte(0x1235))
}

func TestWordRoundTrip(t *testing.T) {
	var m Memory
	for _, tc := range []struct {
		addr uint16
		word uint16
	}{
		{0x0000, 0x1234},
		{0x4000, 0xBEEF},
		{0xFFFE, 0xABCD},
	} {
		m.WriteWord(tc.addr, tc.word)
		assert.Equal(t, tc.word, m.ReadWord(tc.addr), "addr %x", tc.addr)
	}
}

func TestWordWrapsAtTopOfMemory(t *testing.T) {
	var m Memory
	m.WriteWord(0xFFFF, 0xABCD)
	// low byte at 0xFFFF, high byte wraps to 0x0000
	assert.Equal(t, byte(0xCD), m.ReadByte(0xFFFF))
	assert.Equal(t, byte(0xAB), m.ReadByte(0x0000))
}

func TestWriteBytes(t *testing.T) {
	var m Memory
	m.WriteBytes(0x0100, []byte{1, 2, 3, 4})
	assert.Equal(t, byte(1), m.ReadByte(0x0100))
	assert.Equal(t, byte(4), m.ReadByte(0x0103))
}

func TestReset(t *testing.T) {
	var m Memory
	m.WriteByte(5, 0xFF)
	m.Reset()
	assert.Equal(t, byte(0), m.ReadByte(5))
}

func TestPorts(t *testing.T) {
	var p Ports
	p.Write(0x01, 0x42)
	assert.Equal(t, byte(0x42), p.Read(0x01))
	assert.Equal(t, byte(0), p.Read(0x02))
	p.Reset()
	assert.Equal(t, byte(0), p.Read(0x01))
}

func TestPortsSetClearBit(t *testing.T) {
	var p Ports
	p.SetBit(0x10, mask.I8)
	assert.True(t, p.TestBit(0x10, mask.I8))
	assert.Equal(t, byte(0x01), p.Read(0x10))

	p.SetBit(0x10, mask.I1)
	assert.Equal(t, byte(0x81), p.Read(0x10))

	p.ClearBit(0x10, mask.I8)
	assert.False(t, p.TestBit(0x10, mask.I8))
	assert.Equal(t, byte(0x80), p.Read(0x10))
}
