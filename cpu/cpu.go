// Package cpu implements the Intel 8080 instruction set: registers, flags,
// the ALU, and the fetch/decode/execute loop, over a 64 kB linear memory and
// a 256-port I/O space.
package cpu

import (
	"fmt"
	"log"

	"i8080/disasm"
	"i8080/mem"
)

// Options configures a new CPU.
type Options struct {
	// Debug prints each fetched instruction's disassembly to standard
	// output before it executes, and turns on diagnostic logging of jumps
	// and interrupts via the standard logger, the same log.Println style the
	// teacher's decode loop used for its own jump tracing.
	Debug bool
	// Origin is the initial PC and the address Reset rewinds to until a
	// Load is made. Load does not read it: Load takes its own origin
	// argument, which then replaces this one.
	Origin uint16
}

// CPU is a complete 8080: registers, the two address spaces, and the
// run-loop bookkeeping (interrupt enable, halt, and cycle accounting) spec.md
// §5 and §6 describe.
type CPU struct {
	RegisterFile

	Memory mem.Memory
	Ports  mem.Ports

	// IntEnabled mirrors the EI/DI state; an interrupt is only accepted
	// while this is true.
	IntEnabled bool
	// Halted is true after HLT, until an interrupt or Reset clears it.
	Halted bool
	// jumped is set by any opcode that altered PC itself (jumps, calls,
	// returns, RST, PCHL); Step uses it to decide whether to advance PC
	// past the instruction it just executed.
	jumped bool

	// Cycles is a signed countdown to the next interrupt deadline: it
	// starts at IntPeriod and is decremented by every instruction's T-state
	// cost. Exec treats a zero-or-negative value as the deadline crossing.
	Cycles int
	// IntPeriod is the number of cycles between interrupt deadlines, set
	// via SetIntPeriod.
	IntPeriod int

	pendingInterrupt bool
	interruptOp      byte

	// fileSize records the length of the last Load, used only by the
	// diagnostic run-termination heuristic in Run.
	fileSize int
	origin   uint16

	debug bool
}

// New returns a CPU ready to load a program into.
func New(opts Options) *CPU {
	c := &CPU{debug: opts.Debug, origin: opts.Origin}
	c.PC = opts.Origin
	return c
}

// Load copies program into memory starting at origin and records it as the
// entry point and extent used by Run's termination heuristic.
func (c *CPU) Load(program []byte, origin uint16) {
	c.Memory.WriteBytes(origin, program)
	c.origin = origin
	c.fileSize = len(program)
	c.PC = origin
}

// Reset clears registers, flags, and run state, and rewinds PC to the
// origin established by the last Load (or Options.Origin if none).
func (c *CPU) Reset() {
	c.RegisterFile.reset()
	c.IntEnabled = false
	c.Halted = false
	c.jumped = false
	c.Cycles = c.IntPeriod
	c.pendingInterrupt = false
	c.PC = c.origin
	c.SP = 0
}

// SetIntPeriod configures the cycle budget between interrupt deadlines:
// the emulated clock rate (2 MHz) divided by the desired interrupt
// frequency in Hz, and primes Cycles with it.
func (c *CPU) SetIntPeriod(freqHz int) {
	c.IntPeriod = 2_000_000 / freqHz
	c.Cycles = c.IntPeriod
}

// Interrupt injects op for Step to execute in place of its next ordinary
// fetch, as spec.md §5 describes. It is a no-op unless IntEnabled is
// already true at the moment of the call: the 8080 interrupt line carries
// no queue, so an interrupt offered while disabled is simply missed. op is
// typically an RST nn opcode (0xC7 + 8n).
func (c *CPU) Interrupt(op byte) {
	if !c.IntEnabled {
		return
	}
	c.pendingInterrupt = true
	c.interruptOp = op
}

// acceptInterrupt clears Halted, disables further interrupts (the handler
// must re-enable with EI), and executes the latched opcode in place of a
// normal fetch, returning the T-states it consumed. Step only calls this
// once it has already confirmed a pending, enabled interrupt.
func (c *CPU) acceptInterrupt() int {
	c.pendingInterrupt = false
	c.IntEnabled = false
	c.Halted = false
	if c.debug {
		log.Printf("interrupt accepted, op=%#02x pc=%#04x", c.interruptOp, c.PC)
	}
	c.jumped = false
	// exec's RST arm pushes PC+1, the return address for an RST fetched
	// normally from memory. An injected interrupt never advanced past the
	// instruction it interrupted, so back PC up by one first to land the
	// pushed return address back on the interrupted instruction.
	c.PC--
	cycles := c.exec(c.interruptOp)
	if !c.jumped {
		// A non-branching op leaves PC on the interrupted instruction.
		c.PC++
	}
	return cycles
}

// Step executes exactly one instruction (or an accepted pending interrupt in
// its place) and returns the number of T-states it consumed. A halted CPU
// with no pending interrupt consumes zero cycles and leaves PC unmoved.
func (c *CPU) Step() int {
	var cycles int
	if c.pendingInterrupt && c.IntEnabled {
		cycles = c.acceptInterrupt()
	} else if c.Halted {
		return 0
	} else {
		op := c.Memory.ReadByte(c.PC)
		before := c.PC
		c.jumped = false
		if c.debug {
			raw := []byte{op, c.Memory.ReadByte(c.PC + 1), c.Memory.ReadByte(c.PC + 2)}
			fmt.Printf("%04X  %s\n", c.PC, disasm.Decode(raw, 0).Text)
		}

		cycles = c.exec(op)

		if !c.jumped {
			c.PC = before + uint16(disasm.Catalog[op].Len)
		}
		if c.debug && c.jumped {
			log.Printf("jumped: %#04x -> %#04x (op %#02x)", before, c.PC, op)
		}
	}

	c.Cycles -= cycles
	return cycles
}

// Run steps the CPU until HLT with no pending interrupt, or until PC
// returns to 0 or leaves the loaded program's extent. This boundary check is
// a diagnostic convenience for standalone test programs, grounded on the
// Z80 emulator's RET/max-cycle termination heuristic; embedders driving a
// real guest should call Step or Exec directly instead of relying on it.
func (c *CPU) Run() int {
	elapsed := 0
	for {
		if c.Halted && !c.pendingInterrupt {
			break
		}
		if c.PC == 0 {
			break
		}
		if c.fileSize > 0 && (c.PC < c.origin || int(c.PC) >= int(c.origin)+c.fileSize) {
			break
		}
		elapsed += c.Step()
	}
	return elapsed
}

// Exec steps the CPU continuously, invoking callback every time the cycle
// countdown crosses zero so the host can run its own periodic duties and
// optionally call Interrupt before the next quantum begins. It returns once
// the CPU halts with no pending interrupt. callback may be nil.
func (c *CPU) Exec(callback func(*CPU)) {
	for !(c.Halted && !c.pendingInterrupt) {
		c.Step()
		if c.Cycles <= 0 {
			if callback != nil {
				callback(c)
			}
			c.Cycles += c.IntPeriod
		}
	}
}
