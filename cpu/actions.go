package cpu

import "github.com/arcbyte/m6502/memory"

// execute carries out the semantic action for op against operand, per
// spec.md §4.2.5. mode is only needed to distinguish ASL/LSR/ROL/ROR's
// Accumulator form from their memory forms; every other action reads its
// operand generically through Operand.read/Operand.Address.
func (c *CPU) execute(op Operation, mode AddressingMode, operand Operand) {
	switch op {
	case OpLDA:
		c.A = operand.read(c.mem)
		c.updateZN(c.A)
	case OpLDX:
		c.X = operand.read(c.mem)
		c.updateZN(c.X)
	case OpLDY:
		c.Y = operand.read(c.mem)
		c.updateZN(c.Y)
	case OpSTA:
		addr, _ := operand.Address()
		c.mem.WriteByte(addr, c.A)
	case OpSTX:
		addr, _ := operand.Address()
		c.mem.WriteByte(addr, c.X)
	case OpSTY:
		addr, _ := operand.Address()
		c.mem.WriteByte(addr, c.Y)

	case OpTAX:
		c.X = c.A
		c.updateZN(c.X)
	case OpTAY:
		c.Y = c.A
		c.updateZN(c.Y)
	case OpTXA:
		c.A = c.X
		c.updateZN(c.A)
	case OpTYA:
		c.A = c.Y
		c.updateZN(c.A)
	case OpTSX:
		c.X = c.SP
		c.updateZN(c.X)
	case OpTXS:
		c.SP = c.X

	case OpPHA:
		c.pushByte(c.A)
	case OpPHP:
		c.pushByte(c.P | FlagB | 1<<5)
	case OpPLA:
		c.A = c.popByte()
		c.updateZN(c.A)
	case OpPLP:
		c.P = c.popByte()

	case OpAND:
		c.A &= operand.read(c.mem)
		c.updateZN(c.A)
	case OpORA:
		c.A |= operand.read(c.mem)
		c.updateZN(c.A)
	case OpEOR:
		c.A ^= operand.read(c.mem)
		c.updateZN(c.A)
	case OpBIT:
		v := operand.read(c.mem)
		c.setFlag(FlagZ, c.A&v == 0)
		c.setFlag(FlagV, v&0x40 != 0)
		c.setFlag(FlagN, v&0x80 != 0)

	case OpADC:
		c.adc(operand.read(c.mem))
	case OpSBC:
		c.adc(^operand.read(c.mem))

	case OpCMP:
		c.compare(c.A, operand.read(c.mem))
	case OpCPX:
		c.compare(c.X, operand.read(c.mem))
	case OpCPY:
		c.compare(c.Y, operand.read(c.mem))

	case OpINC:
		addr, _ := operand.Address()
		c.mem.Modify(addr, func(v byte) byte {
			r := v + 1
			c.updateZN(r)
			return r
		})
	case OpDEC:
		addr, _ := operand.Address()
		c.mem.Modify(addr, func(v byte) byte {
			r := v - 1
			c.updateZN(r)
			return r
		})
	case OpINX:
		c.X++
		c.updateZN(c.X)
	case OpINY:
		c.Y++
		c.updateZN(c.Y)
	case OpDEX:
		c.X--
		c.updateZN(c.X)
	case OpDEY:
		c.Y--
		c.updateZN(c.Y)

	case OpASL:
		c.shift(mode, operand, func(v byte) (byte, bool) { return v << 1, v&0x80 != 0 })
	case OpLSR:
		c.shift(mode, operand, func(v byte) (byte, bool) { return v >> 1, v&0x01 != 0 })
	case OpROL:
		carryIn := c.flagSet(FlagC)
		c.shift(mode, operand, func(v byte) (byte, bool) {
			r := v << 1
			if carryIn {
				r |= 0x01
			}
			return r, v&0x80 != 0
		})
	case OpROR:
		carryIn := c.flagSet(FlagC)
		c.shift(mode, operand, func(v byte) (byte, bool) {
			r := v >> 1
			if carryIn {
				r |= 0x80
			}
			return r, v&0x01 != 0
		})

	case OpJMP:
		addr, _ := operand.Address()
		c.PC = addr
	case OpJSR:
		addr, _ := operand.Address()
		c.pushWord(c.PC)
		c.PC = addr
	case OpRTS:
		c.PC = c.popWord()

	case OpBCC:
		c.branch(!c.flagSet(FlagC), operand)
	case OpBCS:
		c.branch(c.flagSet(FlagC), operand)
	case OpBEQ:
		c.branch(c.flagSet(FlagZ), operand)
	case OpBNE:
		c.branch(!c.flagSet(FlagZ), operand)
	case OpBMI:
		c.branch(c.flagSet(FlagN), operand)
	case OpBPL:
		c.branch(!c.flagSet(FlagN), operand)
	case OpBVC:
		c.branch(!c.flagSet(FlagV), operand)
	case OpBVS:
		c.branch(c.flagSet(FlagV), operand)

	case OpCLC:
		c.setFlag(FlagC, false)
	case OpCLD:
		c.setFlag(FlagD, false)
	case OpCLI:
		c.setFlag(FlagI, false)
	case OpCLV:
		c.setFlag(FlagV, false)
	case OpSEC:
		c.setFlag(FlagC, true)
	case OpSED:
		c.setFlag(FlagD, true)
	case OpSEI:
		c.setFlag(FlagI, true)

	case OpNOP:
		// consumes a cycle on real hardware; here it is simply a no-op.

	case OpBRK:
		c.pushWord(c.PC + 1) // skip the padding byte following the opcode
		c.pushByte(c.P | FlagB | 1<<5)
		c.setFlag(FlagI, true)
		c.PC = c.mem.ReadWord(memory.IRQVectorLow)
	case OpRTI:
		c.P = c.popByte() &^ FlagB
		c.PC = c.popWord()
	}
}

// adc implements ADC directly and SBC as ADC of the bitwise-complemented
// operand, the standard identity that lets one carry/overflow computation
// serve both instructions.
func (c *CPU) adc(v byte) {
	var carryIn uint16
	if c.flagSet(FlagC) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(v) + carryIn
	result := byte(sum)
	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (c.A^result)&(v^result)&0x80 != 0)
	c.A = result
	c.updateZN(c.A)
}

// compare implements CMP/CPX/CPY: a subtraction whose result is discarded
// except for the flags it sets.
func (c *CPU) compare(reg, v byte) {
	result := reg - v
	c.setFlag(FlagC, reg >= v)
	c.updateZN(result)
}

// shift applies f — which returns the shifted/rotated value and the bit
// that becomes the new carry — to the accumulator or to a memory operand,
// per mode.
func (c *CPU) shift(mode AddressingMode, operand Operand, f func(byte) (byte, bool)) {
	if mode == Accumulator {
		r, carryOut := f(c.A)
		c.A = r
		c.setFlag(FlagC, carryOut)
		c.updateZN(c.A)
		return
	}
	addr, _ := operand.Address()
	c.mem.Modify(addr, func(v byte) byte {
		r, carryOut := f(v)
		c.setFlag(FlagC, carryOut)
		c.updateZN(r)
		return r
	})
}

// branch adds operand's signed offset to PC when taken is true; operand is
// always a Relative ValueOperand.
func (c *CPU) branch(taken bool, operand Operand) {
	if !taken {
		return
	}
	offset := int8(operand.read(c.mem))
	c.PC = uint16(int32(c.PC) + int32(offset))
}

func (c *CPU) pushByte(v byte) {
	c.mem.WriteByte(memory.StackBase|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) popByte() byte {
	c.SP++
	return c.mem.ReadByte(memory.StackBase | uint16(c.SP))
}

func (c *CPU) pushWord(w uint16) {
	c.pushByte(byte(w >> 8))
	c.pushByte(byte(w))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.popByte())
	hi := uint16(c.popByte())
	return hi<<8 | lo
}
