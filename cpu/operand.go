package cpu

// MemoryBus is the address space a CPU steps against. memory.Memory
// satisfies it, and any other type with these five methods can stand in
// for it.
type MemoryBus interface {
	ReadByte(addr uint16) byte
	ReadWord(addr uint16) uint16
	ReadWordZeroPage(zp byte) uint16
	WriteByte(addr uint16, value byte)
	Modify(addr uint16, f func(byte) byte)
}

type operandKind int

const (
	operandNone operandKind = iota
	operandValue
	operandAddress
)

// Operand is the tagged Value(u8)/Address(u16) sum type spec.md's
// re-architecture section calls for: an instruction's operand is either an
// immediate/relative byte already in hand, or a memory address still to be
// dereferenced, and the two are never confused at a type level.
type Operand struct {
	kind    operandKind
	value   byte
	address uint16
}

// ValueOperand wraps an operand byte that needs no further memory access
// (Immediate and Relative addressing).
func ValueOperand(v byte) Operand {
	return Operand{kind: operandValue, value: v}
}

// AddressOperand wraps a resolved effective address still to be read or
// written by the instruction's action.
func AddressOperand(addr uint16) Operand {
	return Operand{kind: operandAddress, address: addr}
}

// Address reports the resolved address and whether this operand carries
// one; Implicit/Accumulator operands and bare values do not.
func (o Operand) Address() (uint16, bool) {
	if o.kind != operandAddress {
		return 0, false
	}
	return o.address, true
}

// read returns the operand's byte value, dereferencing through bus when the
// operand is an address.
func (o Operand) read(bus MemoryBus) byte {
	switch o.kind {
	case operandValue:
		return o.value
	case operandAddress:
		return bus.ReadByte(o.address)
	default:
		return 0
	}
}

// fetchByte consumes the byte at PC and advances PC by one.
func (c *CPU) fetchByte() byte {
	v := c.mem.ReadByte(c.PC)
	c.PC++
	return v
}

// fetchWord consumes the little-endian word at PC and advances PC by two.
func (c *CPU) fetchWord() uint16 {
	v := c.mem.ReadWord(c.PC)
	c.PC += 2
	return v
}

// resolveOperand fetches whatever operand bytes mode requires and produces
// the Operand the instruction's action will consume, per spec.md §4.2.3.
func (c *CPU) resolveOperand(mode AddressingMode) Operand {
	switch mode {
	case Implicit, Accumulator:
		return Operand{kind: operandNone}
	case Immediate, Relative:
		return ValueOperand(c.fetchByte())
	case ZeroPage:
		return AddressOperand(uint16(c.fetchByte()))
	case ZeroPageX:
		return AddressOperand(uint16(c.fetchByte() + c.X))
	case ZeroPageY:
		return AddressOperand(uint16(c.fetchByte() + c.Y))
	case Absolute:
		return AddressOperand(c.fetchWord())
	case AbsoluteX:
		return AddressOperand(c.fetchWord() + uint16(c.X))
	case AbsoluteY:
		return AddressOperand(c.fetchWord() + uint16(c.Y))
	case Indirect:
		return AddressOperand(c.mem.ReadWord(c.fetchWord()))
	case IndexedIndirect:
		zp := c.fetchByte() + c.X
		return AddressOperand(c.mem.ReadWordZeroPage(zp))
	case IndirectIndexed:
		zp := c.fetchByte()
		return AddressOperand(c.mem.ReadWordZeroPage(zp) + uint16(c.Y))
	default:
		return Operand{kind: operandNone}
	}
}
