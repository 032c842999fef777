package cpu

// ALU primitives. Each sets every affected flag; add through ora, inr, and
// dcr also return the result byte, while cmp only sets flags and the
// rotates, daa, and cma work on A in place. ADC and SBB fold the carry-in
// into a 9-bit intermediate (res9) before truncating to 8 bits, the same
// widen-then-truncate technique the pack's Z80 superoptimizer uses in its
// execAdc/execSbc to avoid losing the carry chain the naive two-step
// "add, then add the carry" sequence drops on 0xFF + carry.

func carryIn(set bool) byte {
	if set {
		return 1
	}
	return 0
}

func auxCarryAdd(a, b, cin byte) bool {
	return (a&0x0F)+(b&0x0F)+cin > 0x0F
}

func auxCarrySub(a, b, cin byte) bool {
	return int(a&0x0F)-int(b&0x0F)-int(cin) < 0
}

func (c *CPU) add(b byte) byte {
	res9 := uint16(c.A) + uint16(b)
	ac := auxCarryAdd(c.A, b, 0)
	result := byte(res9)
	c.setSZP(result)
	c.setFlag(FlagC, res9 > 0xFF)
	c.setFlag(FlagA, ac)
	c.A = result
	return result
}

func (c *CPU) adc(b byte) byte {
	cin := carryIn(c.Test(FlagC))
	res9 := uint16(c.A) + uint16(b) + uint16(cin)
	ac := auxCarryAdd(c.A, b, cin)
	result := byte(res9)
	c.setSZP(result)
	c.setFlag(FlagC, res9 > 0xFF)
	c.setFlag(FlagA, ac)
	c.A = result
	return result
}

func (c *CPU) sub(b byte) byte {
	res9 := int(c.A) - int(b)
	ac := auxCarrySub(c.A, b, 0)
	result := byte(res9)
	c.setSZP(result)
	c.setFlag(FlagC, res9 < 0)
	c.setFlag(FlagA, ac)
	c.A = result
	return result
}

func (c *CPU) sbb(b byte) byte {
	cin := carryIn(c.Test(FlagC))
	res9 := int(c.A) - int(b) - int(cin)
	ac := auxCarrySub(c.A, b, cin)
	result := byte(res9)
	c.setSZP(result)
	c.setFlag(FlagC, res9 < 0)
	c.setFlag(FlagA, ac)
	c.A = result
	return result
}

// cmp performs sub without storing the result, per CMP's semantics.
func (c *CPU) cmp(b byte) {
	res9 := int(c.A) - int(b)
	ac := auxCarrySub(c.A, b, 0)
	c.setSZP(byte(res9))
	c.setFlag(FlagC, res9 < 0)
	c.setFlag(FlagA, ac)
}

// ana uses the canonical (A|b)&0x08 auxiliary-carry convention real 8080
// silicon exhibits for ANA/ANI, rather than the simpler but non-conforming
// "AC always cleared" some emulators settle for.
func (c *CPU) ana(b byte) byte {
	ac := (c.A|b)&0x08 != 0
	result := c.A & b
	c.setSZP(result)
	c.Clear(FlagC)
	c.setFlag(FlagA, ac)
	c.A = result
	return result
}

func (c *CPU) xra(b byte) byte {
	result := c.A ^ b
	c.setSZP(result)
	c.Clear(FlagC | FlagA)
	c.A = result
	return result
}

func (c *CPU) ora(b byte) byte {
	result := c.A | b
	c.setSZP(result)
	c.Clear(FlagC | FlagA)
	c.A = result
	return result
}

func (c *CPU) inr(b byte) byte {
	carry := c.Test(FlagC)
	result := b + 1
	c.setSZP(result)
	c.setFlag(FlagA, auxCarryAdd(b, 1, 0))
	c.setFlag(FlagC, carry)
	return result
}

func (c *CPU) dcr(b byte) byte {
	carry := c.Test(FlagC)
	result := b - 1
	c.setSZP(result)
	c.setFlag(FlagA, auxCarrySub(b, 1, 0))
	c.setFlag(FlagC, carry)
	return result
}

func (c *CPU) setFlag(mask byte, on bool) {
	if on {
		c.Set(mask)
	} else {
		c.Clear(mask)
	}
}

// rlc rotates A left, carry out of bit 7 into both bit 0 and CF.
func (c *CPU) rlc() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | carryIn(carry)
	c.setFlag(FlagC, carry)
}

// rrc rotates A right, carry out of bit 0 into both bit 7 and CF.
func (c *CPU) rrc() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | (carryIn(carry) << 7)
	c.setFlag(FlagC, carry)
}

// ral rotates A left through CF.
func (c *CPU) ral() {
	cin := carryIn(c.Test(FlagC))
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | cin
	c.setFlag(FlagC, carry)
}

// rar rotates A right through CF.
func (c *CPU) rar() {
	cin := carryIn(c.Test(FlagC))
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | (cin << 7)
	c.setFlag(FlagC, carry)
}

// daa adjusts A after a BCD addition per the standard 8080 algorithm:
// correct the low nibble if it exceeds 9 or AC is set, then the high nibble
// if it exceeds 9 or CF is set (or the low-nibble correction carried into
// it), leaving S/Z/P/AC/C all updated from the adjusted value.
func (c *CPU) daa() {
	lsb := c.A & 0x0F
	msb := c.A >> 4
	carry := c.Test(FlagC)

	var correction byte
	if c.Test(FlagA) || lsb > 9 {
		correction |= 0x06
	}
	if carry || msb > 9 || (msb >= 9 && lsb > 9) {
		correction |= 0x60
		carry = true
	}

	aux := (c.A&0x0F)+(correction&0x0F) > 0x0F
	result := c.A + correction

	c.setSZP(result)
	c.setFlag(FlagA, aux)
	c.setFlag(FlagC, carry)
	c.A = result
}

// cma complements A; flags are unaffected per spec.
func (c *CPU) cma() {
	c.A = ^c.A
}
