// Package cpm overlays a minimal CP/M 2.2 BDOS on top of a cpu.CPU, enough
// to run .COM-style console programs: console I/O and the warm-boot/system
// reset entry points a guest program expects to find at 0x0000 and 0x0005.
package cpm

import (
	"bufio"
	"fmt"
	"io"

	"i8080/cpu"
)

// ErrUnknownFunction carries the offending function number and is
// returned, unwrapped, by Machine.Run when a guest calls a BDOS function this overlay
// does not implement.
type ErrUnknownFunction struct {
	Func byte
}

func (e ErrUnknownFunction) Error() string {
	return fmt.Sprintf("cpm: unknown BDOS function %d", e.Func)
}

const (
	warmBoot = 0x0000
	bdosCall = 0x0005

	funcSystemReset   = 0
	funcConsoleInput  = 1
	funcConsoleOutput = 2
	funcPrintString   = 9
	funcReadLine      = 10
)

// Machine wraps a *cpu.CPU with the BDOS/BIOS entry points a CP/M guest
// calls through CALL 5, redirected to in, out instead of a real console
// driver.
type Machine struct {
	CPU *cpu.CPU
	in  *bufio.Reader
	out io.Writer

	halted bool
}

// New returns a Machine driving c, reading console input from in and
// writing console output to out.
func New(c *cpu.CPU, in io.Reader, out io.Writer) *Machine {
	return &Machine{CPU: c, in: bufio.NewReader(in), out: out}
}

// Load places program at CP/M's conventional transient program area
// (0x0100) and primes PC to start executing it there.
func (m *Machine) Load(program []byte) {
	m.CPU.Load(program, 0x0100)
}

// Run drives the CPU to completion, intercepting PC at warmBoot and
// bdosCall before every instruction fetch. It returns the first unknown
// BDOS function call encountered, if any; a nil error means the guest ran
// to a warm boot, BDOS function 0, or HLT.
func (m *Machine) Run() error {
	m.halted = false
	c := m.CPU

	for !m.halted && !c.Halted {
		switch c.PC {
		case warmBoot:
			c.Reset()
			m.halted = true
			continue
		case bdosCall:
			if err := m.dispatch(); err != nil {
				return err
			}
			continue
		}
		c.Step()
	}

	return nil
}

// dispatch services one BDOS call: C selects the function, DE (or E alone
// for the single-character functions) carries the argument, and A carries
// the result back for console input. It finishes by
// performing the RET the intercepted CALL would otherwise have executed,
// since Run's hook runs in place of that instruction rather than alongside
// it.
func (m *Machine) dispatch() error {
	c := m.CPU
	fn := c.C

	switch fn {
	case funcSystemReset:
		m.halted = true

	case funcConsoleInput:
		b, err := m.in.ReadByte()
		if err != nil {
			c.A = 0x1A // CP/M EOF marker
		} else {
			c.A = b
		}

	case funcConsoleOutput:
		fmt.Fprintf(m.out, "%c", c.E)

	case funcPrintString:
		addr := c.DE()
		for {
			b := c.Memory.ReadByte(addr)
			if b == '$' {
				break
			}
			fmt.Fprintf(m.out, "%c", b)
			addr++
		}

	case funcReadLine:
		m.readLine()

	default:
		return ErrUnknownFunction{Func: fn}
	}

	c.PC = c.Memory.ReadWord(c.SP)
	c.SP += 2
	return nil
}

// readLine implements function 10: DE points at a buffer whose first byte
// is the maximum line length and whose second byte this call fills in with
// the number of characters actually read, followed by the characters
// themselves (no trailing CR/LF).
func (m *Machine) readLine() {
	c := m.CPU
	buf := c.DE()
	max := c.Memory.ReadByte(buf)

	line, _ := m.in.ReadString('\n')
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	if len(line) > int(max) {
		line = line[:max]
	}

	c.Memory.WriteByte(buf+1, byte(len(line)))
	c.Memory.WriteBytes(buf+2, []byte(line))
}
