package cpu

import "i8080/disasm"

// getReg reads one of the 8 register-field operands, where field 6 means
// "memory at HL" rather than a real register.
func (c *CPU) getReg(f byte) byte {
	switch f & 0x07 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.Memory.ReadByte(c.HL())
	default:
		return c.A
	}
}

// setReg is the inverse of getReg.
func (c *CPU) setReg(f byte, v byte) {
	switch f & 0x07 {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.Memory.WriteByte(c.HL(), v)
	default:
		c.A = v
	}
}

func (c *CPU) imm8() byte {
	return c.Memory.ReadByte(c.PC + 1)
}

func (c *CPU) imm16() uint16 {
	return c.Memory.ReadWord(c.PC + 1)
}

// jump sets PC to addr and marks the instruction as having moved PC itself,
// so Step does not also advance past the instruction's own length.
func (c *CPU) jump(addr uint16) {
	c.PC = addr
	c.jumped = true
}

func (c *CPU) call(addr uint16) {
	c.pushWord(c.PC + 3)
	c.jump(addr)
}

func (c *CPU) ret() {
	c.jump(c.popWord())
}

// condition evaluates one of the 8 condition-code fields used by Jcc/Ccc/Rcc.
func (c *CPU) condition(cc byte) bool {
	switch cc {
	case 0:
		return !c.Test(FlagZ)
	case 1:
		return c.Test(FlagZ)
	case 2:
		return !c.Test(FlagC)
	case 3:
		return c.Test(FlagC)
	case 4:
		return !c.Test(FlagP)
	case 5:
		return c.Test(FlagP)
	case 6:
		return !c.Test(FlagS)
	default:
		return c.Test(FlagS)
	}
}

// exec performs the action of a single opcode byte (already fetched; PC
// still points at it) and returns the number of T-states consumed. It does
// not advance PC past the instruction; Step does that once exec returns,
// unless exec itself jumped.
//
// Every group from the instruction set lives in its own switch arm, per the
// one-arm-per-opcode layout the module's design favors over a function
// table: an 8080 opcode byte carries its operands in fixed bit fields, so
// there is no shared addressing-mode decode stage worth factoring out.
func (c *CPU) exec(op byte) int {
	info := disasm.Catalog[op]

	switch op {
	case 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38:
		// NOP and its undocumented duplicates.

	case 0x76: // HLT
		c.Halted = true

	case 0xF3: // DI
		c.IntEnabled = false
	case 0xFB: // EI
		c.IntEnabled = true

	case 0x07:
		c.rlc()
	case 0x0F:
		c.rrc()
	case 0x17:
		c.ral()
	case 0x1F:
		c.rar()
	case 0x27:
		c.daa()
	case 0x2F:
		c.cma()
	case 0x37: // STC
		c.Set(FlagC)
	case 0x3F: // CMC
		c.setFlag(FlagC, !c.Test(FlagC))

	case 0x22: // SHLD
		c.Memory.WriteWord(c.imm16(), c.HL())
	case 0x2A: // LHLD
		c.SetHL(c.Memory.ReadWord(c.imm16()))
	case 0x32: // STA
		c.Memory.WriteByte(c.imm16(), c.A)
	case 0x3A: // LDA
		c.A = c.Memory.ReadByte(c.imm16())

	case 0x02:
		c.Memory.WriteByte(c.BC(), c.A)
	case 0x12:
		c.Memory.WriteByte(c.DE(), c.A)
	case 0x0A:
		c.A = c.Memory.ReadByte(c.BC())
	case 0x1A:
		c.A = c.Memory.ReadByte(c.DE())

	case 0xEB: // XCHG
		c.H, c.L, c.D, c.E = c.D, c.E, c.H, c.L
	case 0xE3: // XTHL
		lo := c.Memory.ReadByte(c.SP)
		hi := c.Memory.ReadByte(c.SP + 1)
		c.Memory.WriteByte(c.SP, c.L)
		c.Memory.WriteByte(c.SP+1, c.H)
		c.H, c.L = hi, lo
	case 0xE9: // PCHL
		c.jump(c.HL())
	case 0xF9: // SPHL
		c.SP = c.HL()

	case 0xD3: // OUT
		c.Ports.Write(c.imm8(), c.A)
	case 0xDB: // IN
		c.A = c.Ports.Read(c.imm8())

	case 0xC9, 0xD9: // RET (+ undocumented duplicate)
		c.ret()

	case 0xC3, 0xCB: // JMP (+ undocumented duplicate)
		c.jump(c.imm16())
	case 0xCD, 0xDD, 0xED, 0xFD: // CALL (+ undocumented duplicates)
		c.call(c.imm16())

	default:
		if handled := c.execRegisterGroup(op); handled {
			break
		}
		if handled := c.execBranchGroup(op); handled {
			return c.branchCycles(op, info)
		}
		if handled := c.execStackGroup(op); handled {
			break
		}
		// Unassigned opcode: behaves as NOP, matching the documented
		// duplicates' convention for the remaining undocumented slots.
	}

	return info.Cycles
}

// execRegisterGroup handles MOV, the INR/DCR/MVI-per-register group, LXI/
// INX/DCX/DAD, and the register/immediate ALU groups — every opcode whose
// behavior is parameterized by a 3-bit register field rather than being a
// one-off. It reports whether op belonged to one of these groups.
func (c *CPU) execRegisterGroup(op byte) bool {
	switch {
	case op >= 0x40 && op <= 0x7F && op != 0x76:
		c.setReg(op>>3, c.getReg(op))
		return true

	case op&0xC7 == 0x04: // INR r
		r := (op >> 3) & 0x07
		c.setReg(r, c.inr(c.getReg(r)))
		return true
	case op&0xC7 == 0x05: // DCR r
		r := (op >> 3) & 0x07
		c.setReg(r, c.dcr(c.getReg(r)))
		return true
	case op&0xC7 == 0x06: // MVI r,
		r := (op >> 3) & 0x07
		c.setReg(r, c.imm8())
		return true

	case op&0xCF == 0x01: // LXI rp,
		c.setPair(op>>4, c.imm16())
		return true
	case op&0xCF == 0x03: // INX rp
		c.setPair(op>>4, c.getPair(op>>4)+1)
		return true
	case op&0xCF == 0x0B: // DCX rp
		c.setPair(op>>4, c.getPair(op>>4)-1)
		return true
	case op&0xCF == 0x09: // DAD rp
		hl := uint32(c.HL()) + uint32(c.getPair(op>>4))
		c.setFlag(FlagC, hl > 0xFFFF)
		c.SetHL(uint16(hl))
		return true

	case op >= 0x80 && op <= 0xBF:
		c.aluGroup((op>>3)&0x07, c.getReg(op))
		return true
	case op&0xC7 == 0xC6:
		c.aluGroup((op>>3)&0x07, c.imm8())
		return true
	}
	return false
}

// aluGroup dispatches the 8 accumulator-vs-operand operations shared by the
// register, memory, and immediate ALU opcode rows.
func (c *CPU) aluGroup(which byte, b byte) {
	switch which {
	case 0:
		c.add(b)
	case 1:
		c.adc(b)
	case 2:
		c.sub(b)
	case 3:
		c.sbb(b)
	case 4:
		c.ana(b)
	case 5:
		c.xra(b)
	case 6:
		c.ora(b)
	case 7:
		c.cmp(b)
	}
}

// getPair/setPair address BC/DE/HL/SP by the 2-bit field LXI/INX/DCX/DAD and
// PUSH/POP(B form) share, selected by (op>>4)&0x03.
func (c *CPU) getPair(f byte) uint16 {
	switch f & 0x03 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *CPU) setPair(f byte, v uint16) {
	switch f & 0x03 {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

// execBranchGroup handles the 24 conditional Jcc/Ccc/Rcc opcodes. It reports
// whether op belonged to this group; branchCycles then computes the taken/
// not-taken cycle count separately since exec's default path returns early
// for this group.
func (c *CPU) execBranchGroup(op byte) bool {
	if op&0xC7 == 0xC2 { // Jcc
		if c.condition((op >> 3) & 0x07) {
			c.jump(c.imm16())
		}
		return true
	}
	if op&0xC7 == 0xC4 { // Ccc
		if c.condition((op >> 3) & 0x07) {
			c.call(c.imm16())
		}
		return true
	}
	if op&0xC7 == 0xC0 { // Rcc
		if c.condition((op >> 3) & 0x07) {
			c.ret()
		}
		return true
	}
	return false
}

func (c *CPU) branchCycles(op byte, info disasm.Info) int {
	if c.jumped {
		return info.CyclesTaken
	}
	return info.Cycles
}

// execStackGroup handles PUSH/POP and RST, the remaining opcodes whose
// behavior is parameterized by a register-pair or restart-vector field.
func (c *CPU) execStackGroup(op byte) bool {
	if op&0xC7 == 0xC7 { // RST n
		n := (op >> 3) & 0x07
		c.pushWord(c.PC + 1)
		c.jump(uint16(n) * 8)
		return true
	}
	if op&0xCF == 0xC5 { // PUSH rp/PSW
		c.pushWord(c.pushPopPair(op >> 4))
		return true
	}
	if op&0xCF == 0xC1 { // POP rp/PSW
		c.setPushPopPair(op>>4, c.popWord())
		return true
	}
	return false
}

// pushPopPair/setPushPopPair address BC/DE/HL/PSW, the register-pair
// encoding PUSH and POP use (distinct from LXI/DAD's encoding in that slot 3
// means PSW, not SP).
func (c *CPU) pushPopPair(f byte) uint16 {
	switch f & 0x03 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.PSW()
	}
}

func (c *CPU) setPushPopPair(f byte, v uint16) {
	switch f & 0x03 {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SetPSW(v)
	}
}
