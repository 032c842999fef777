package disasm

import "fmt"

// Record is one decoded instruction: its address, the raw bytes it occupies,
// and a mnemonic already formatted with its operand.
type Record struct {
	Addr   uint16
	Raw    []byte
	Text   string
	Length int
}

// FlagTester is the minimal view a disassembler needs of a live CPU to
// annotate a conditional branch with whether it would be taken. cpu.CPU
// satisfies this structurally; disasm never imports cpu, which is what
// keeps cpu -> disasm one-directional.
type FlagTester interface {
	Test(mask byte) bool
}

// The flag bit positions a Jcc/Ccc/Rcc condition field tests. These mirror
// cpu.FlagZ/FlagC/FlagP/FlagS exactly (the 8080's hardware bit layout, not a
// choice this package made), duplicated locally rather than imported so that
// disasm never depends on cpu.
const (
	flagC byte = 0x01
	flagP byte = 0x04
	flagZ byte = 0x40
	flagS byte = 0x80
)

// conditionTaken reports whether op is one of the 8080's 24 conditional
// jump/call/return opcodes and, if so, whether state's current flags satisfy
// its condition field.
func conditionTaken(op byte, state FlagTester) (taken bool, ok bool) {
	if op&0xC7 != 0xC2 && op&0xC7 != 0xC4 && op&0xC7 != 0xC0 {
		return false, false
	}
	switch (op >> 3) & 0x07 {
	case 0:
		return !state.Test(flagZ), true
	case 1:
		return state.Test(flagZ), true
	case 2:
		return !state.Test(flagC), true
	case 3:
		return state.Test(flagC), true
	case 4:
		return !state.Test(flagP), true
	case 5:
		return state.Test(flagP), true
	case 6:
		return !state.Test(flagS), true
	default:
		return state.Test(flagS), true
	}
}

// Annotate appends " ; taken" or " ; not taken" to rec's text when op is a
// conditional jump, call, or return, evaluated against state's current
// flags. Instructions with no condition field are returned unchanged.
func Annotate(rec Record, op byte, state FlagTester) Record {
	taken, ok := conditionTaken(op, state)
	if !ok {
		return rec
	}
	if taken {
		rec.Text += " ; taken"
	} else {
		rec.Text += " ; not taken"
	}
	return rec
}

// Decode decodes a single instruction starting at addr in code, which must
// be addressable as code[addr:]. It never reads past len(code).
func Decode(code []byte, addr uint16) Record {
	op := code[addr]
	info := Catalog[op]

	length := info.Len
	if int(addr)+length > len(code) {
		length = len(code) - int(addr)
	}
	raw := append([]byte(nil), code[addr:int(addr)+length]...)

	text := info.Mnemonic
	switch info.Len {
	case 2:
		if len(raw) >= 2 {
			text += fmt.Sprintf("$%02X", raw[1])
		}
	case 3:
		if len(raw) >= 3 {
			text += fmt.Sprintf("$%02X%02X", raw[2], raw[1])
		}
	}

	return Record{Addr: addr, Raw: raw, Text: text, Length: length}
}

// Disassembler walks a fixed code image one instruction at a time.
type Disassembler struct {
	code   []byte
	cursor uint16
}

// NewDisassembler returns a Disassembler over code, starting at the given
// address.
func NewDisassembler(code []byte, start uint16) *Disassembler {
	return &Disassembler{code: code, cursor: start}
}

// Next decodes the instruction at the current cursor and advances past it.
// It reports false once the cursor has walked off the end of code.
func (d *Disassembler) Next() (Record, bool) {
	if int(d.cursor) >= len(d.code) {
		return Record{}, false
	}
	rec := Decode(d.code, d.cursor)
	if rec.Length == 0 {
		return rec, false
	}
	d.cursor += uint16(rec.Length)
	return rec, true
}

// All decodes every instruction in code from start to the end of the image.
func All(code []byte, start uint16) []Record {
	d := NewDisassembler(code, start)
	var out []Record
	for {
		rec, ok := d.Next()
		if !ok {
			break
		}
		out = append(out, rec)
	}
	return out
}
