package cpu

import "i8080/mask"

// RegisterFile is the 8080's register set: the accumulator and flags (A, F),
// three general-purpose pairs (BC, DE, HL), and the two word-only registers
// SP and PC.
//
// Pair access is built on mask.Word/mask.High/mask.Low so that writing a
// half is always observable through the word view and vice versa, per the
// pair/half aliasing invariant in spec.md §3 — generalized from the
// page/col address composition the teacher's decode step used.
type RegisterFile struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte
	SP   uint16
	PC   uint16
}

// BC returns the BC pair as a word.
func (r *RegisterFile) BC() uint16 { return mask.Word(r.B, r.C) }

// SetBC writes the BC pair from a word.
func (r *RegisterFile) SetBC(w uint16) { r.B, r.C = mask.High(w), mask.Low(w) }

// DE returns the DE pair as a word.
func (r *RegisterFile) DE() uint16 { return mask.Word(r.D, r.E) }

// SetDE writes the DE pair from a word.
func (r *RegisterFile) SetDE(w uint16) { r.D, r.E = mask.High(w), mask.Low(w) }

// HL returns the HL pair as a word.
func (r *RegisterFile) HL() uint16 { return mask.Word(r.H, r.L) }

// SetHL writes the HL pair from a word.
func (r *RegisterFile) SetHL(w uint16) { r.H, r.L = mask.High(w), mask.Low(w) }

// PSW returns the Program Status Word: A in the high byte, F in the low
// byte, with the reserved F bits fixed up per the 8080 convention (bit 1
// reads as 1; bits 3 and 5 read as 0).
func (r *RegisterFile) PSW() uint16 {
	f := (r.F | reservedSetMask) &^ reservedClearMask
	return mask.Word(r.A, f)
}

// SetPSW writes A and F from a word (used by POP PSW), fixing up the
// reserved F bits on the way in.
func (r *RegisterFile) SetPSW(w uint16) {
	r.A = mask.High(w)
	r.F = (mask.Low(w) | reservedSetMask) &^ reservedClearMask
}

// reset zeroes every register.
func (r *RegisterFile) reset() {
	*r = RegisterFile{}
}
