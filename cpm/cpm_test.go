package cpm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"i8080/cpu"
)

// assembleConsolePrint lays out a tiny CP/M-style program: a CALL 5 BDOS
// invocation followed by a JMP 0000H warm boot, with C primed beforehand by
// MVI and DE by LXI.
func assembleConsolePrint(dataAddr uint16) []byte {
	return []byte{
		0x0E, funcPrintString, // MVI C, 9
		0x11, byte(dataAddr), byte(dataAddr >> 8), // LXI D, dataAddr
		0xCD, 0x05, 0x00, // CALL 0005H
		0xC3, 0x00, 0x00, // JMP 0000H
	}
}

func TestPrintString(t *testing.T) {
	c := cpu.New(cpu.Options{})
	var out bytes.Buffer
	m := New(c, strings.NewReader(""), &out)

	const message = 0x0200
	c.Memory.WriteBytes(message, append([]byte("HELLO"), '$'))
	m.Load(assembleConsolePrint(message))

	err := m.Run()

	assert.NoError(t, err)
	assert.Equal(t, "HELLO", out.String())
}

func TestConsoleOutputChar(t *testing.T) {
	c := cpu.New(cpu.Options{})
	var out bytes.Buffer
	m := New(c, strings.NewReader(""), &out)

	m.Load([]byte{
		0x0E, funcConsoleOutput, // MVI C, 2
		0x1E, 'X', // MVI E, 'X'
		0xCD, 0x05, 0x00, // CALL 0005H
		0xC3, 0x00, 0x00, // JMP 0000H
	})

	assert.NoError(t, m.Run())
	assert.Equal(t, "X", out.String())
}

func TestConsoleInput(t *testing.T) {
	c := cpu.New(cpu.Options{})
	var out bytes.Buffer
	m := New(c, strings.NewReader("Q"), &out)

	m.Load([]byte{
		0x0E, funcConsoleInput, // MVI C, 1
		0xCD, 0x05, 0x00, // CALL 0005H
		0xC3, 0x00, 0x00, // JMP 0000H
	})

	assert.NoError(t, m.Run())
	assert.Equal(t, byte('Q'), c.A)
}

func TestWarmBootResetsCPUState(t *testing.T) {
	c := cpu.New(cpu.Options{})
	var out bytes.Buffer
	m := New(c, strings.NewReader(""), &out)

	m.Load([]byte{
		0x3E, 0x42, // MVI A, 0x42
		0x37,             // STC (dirty a flag so Reset has something to clear)
		0xC3, 0x00, 0x00, // JMP 0000H
	})

	assert.NoError(t, m.Run())
	assert.Equal(t, byte(0), c.A, "warm boot must reset the accumulator")
	assert.Equal(t, byte(0), c.F, "warm boot must reset the flags")
	assert.False(t, c.IntEnabled)
}

func TestSystemResetFunctionHaltsRun(t *testing.T) {
	c := cpu.New(cpu.Options{})
	var out bytes.Buffer
	m := New(c, strings.NewReader(""), &out)

	m.Load([]byte{
		0x0E, funcSystemReset, // MVI C, 0
		0xCD, 0x05, 0x00, // CALL 0005H
		0x76, // HLT, only reached if the reset didn't stop Run
	})

	assert.NoError(t, m.Run())
	assert.Equal(t, "", out.String())
}

func TestUnknownFunctionReturnsError(t *testing.T) {
	c := cpu.New(cpu.Options{})
	var out bytes.Buffer
	m := New(c, strings.NewReader(""), &out)

	m.Load([]byte{
		0x0E, 99, // MVI C, 99
		0xCD, 0x05, 0x00, // CALL 0005H
		0xC3, 0x00, 0x00, // JMP 0000H
	})

	err := m.Run()

	assert.Error(t, err)
	var unknown ErrUnknownFunction
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, byte(99), unknown.Func)
}

func TestReadLine(t *testing.T) {
	c := cpu.New(cpu.Options{})
	var out bytes.Buffer
	m := New(c, strings.NewReader("hi\n"), &out)

	const buf = 0x0300
	c.Memory.WriteByte(buf, 10) // max length

	m.Load([]byte{
		0x0E, funcReadLine, // MVI C, 10
		0x11, byte(buf), byte(buf >> 8), // LXI D, buf
		0xCD, 0x05, 0x00, // CALL 0005H
		0xC3, 0x00, 0x00, // JMP 0000H
	})

	assert.NoError(t, m.Run())
	assert.Equal(t, byte(2), c.Memory.ReadByte(buf+1))
	assert.Equal(t, "hi", string([]byte{c.Memory.ReadByte(buf + 2), c.Memory.ReadByte(buf + 3)}))
}
