// Package cpu implements the MOS 6502 instruction decoder and executor:
// registers, status flags, the opcode decode table, and the semantic action
// for every documented mnemonic. It holds no I/O of its own — it steps
// against whatever MemoryBus it is given.
package cpu

import "github.com/arcbyte/m6502/memory"

// CPU holds the six architectural registers and a reference to the address
// space it executes against. It performs no timing: Step decodes and
// executes exactly one instruction and returns, with no notion of cycle
// cost.
type CPU struct {
	PC uint16
	SP byte
	A  byte
	X  byte
	Y  byte
	P  byte

	mem MemoryBus
}

// New returns a CPU wired to bus, with every register at its zero value
// except SP, which starts at the top of the stack page. Reset must be
// called before Step to load PC from the reset vector.
func New(bus MemoryBus) *CPU {
	return &CPU{SP: 0xFF, mem: bus}
}

// Reset loads PC from the reset vector at 0xFFFC/0xFFFD and resets SP to
// 0xFF. A, X, Y, and P are left untouched, matching real hardware: only the
// stack pointer and program counter are defined by the reset sequence.
func (c *CPU) Reset() {
	c.PC = c.mem.ReadWord(memory.ResetVectorLow)
	c.SP = 0xFF
}

// Step decodes and executes the single instruction at PC, advancing PC past
// its opcode and operand bytes (branches and jumps then overwrite PC again
// as their semantics require). It returns a *FaultError, and leaves all
// registers unchanged, if the opcode at PC has no decode-table entry.
func (c *CPU) Step() error {
	pc := c.PC
	opcode := c.fetchByte()
	entry, ok := decode(opcode)
	if !ok {
		c.PC = pc
		return &FaultError{Opcode: opcode, PC: pc}
	}
	operand := c.resolveOperand(entry.mode)
	c.execute(entry.op, entry.mode, operand)
	return nil
}

// Snapshot is an immutable copy of every architectural register, for
// inspection by a debugger or test without aliasing the live CPU.
type Snapshot struct {
	PC uint16
	SP byte
	A  byte
	X  byte
	Y  byte
	P  byte
}

// Snapshot captures the CPU's current register state.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{PC: c.PC, SP: c.SP, A: c.A, X: c.X, Y: c.Y, P: c.P}
}
