// Package disassembler turns bytes in a cpu.MemoryBus back into mnemonic
// text, for the TUI's instruction panel and the `disasm` command.
package disassembler

import (
	"fmt"
	"strings"

	"github.com/arcbyte/m6502/cpu"
)

const memorySize = 0x10000

// Location is one decoded instruction: its address, raw opcode byte, any
// operand bytes, and the Operation/AddressingMode the opcode decoded to.
type Location struct {
	PC           uint16
	Opcode       byte
	OperandBytes []byte
	Op           cpu.Operation
	Mode         cpu.AddressingMode
	Valid        bool
}

// Size is the number of bytes this instruction occupies: 1 for the opcode
// plus however many operand bytes its addressing mode consumes.
func (l Location) Size() int {
	if !l.Valid {
		return 1
	}
	return 1 + l.Mode.OperandBytes()
}

// String renders Location the way a listing file would: address, hex dump,
// then mnemonic and formatted operand.
func (l Location) String() string {
	hexDump := fmt.Sprintf("%02X", l.Opcode)
	for _, b := range l.OperandBytes {
		hexDump += fmt.Sprintf(" %02X", b)
	}
	return fmt.Sprintf("$%04X: %-8s  %s", l.PC, hexDump, l.text())
}

func (l Location) text() string {
	if !l.Valid {
		return fmt.Sprintf("db $%02X        ; illegal opcode", l.Opcode)
	}
	operand := formatOperand(l.Mode, l.PC, l.OperandBytes)
	if operand == "" {
		return l.Op.String()
	}
	return fmt.Sprintf("%s %s", l.Op.String(), operand)
}

func formatOperand(mode cpu.AddressingMode, pc uint16, bytes []byte) string {
	switch mode {
	case cpu.Implicit:
		return ""
	case cpu.Accumulator:
		return "A"
	case cpu.Immediate:
		return fmt.Sprintf("#$%02X", bytes[0])
	case cpu.ZeroPage:
		return fmt.Sprintf("$%02X", bytes[0])
	case cpu.ZeroPageX:
		return fmt.Sprintf("$%02X,X", bytes[0])
	case cpu.ZeroPageY:
		return fmt.Sprintf("$%02X,Y", bytes[0])
	case cpu.Absolute:
		return fmt.Sprintf("$%02X%02X", bytes[1], bytes[0])
	case cpu.AbsoluteX:
		return fmt.Sprintf("$%02X%02X,X", bytes[1], bytes[0])
	case cpu.AbsoluteY:
		return fmt.Sprintf("$%02X%02X,Y", bytes[1], bytes[0])
	case cpu.Indirect:
		return fmt.Sprintf("($%02X%02X)", bytes[1], bytes[0])
	case cpu.IndexedIndirect:
		return fmt.Sprintf("($%02X,X)", bytes[0])
	case cpu.IndirectIndexed:
		return fmt.Sprintf("($%02X),Y", bytes[0])
	case cpu.Relative:
		offset := int8(bytes[0])
		target := pc + 2 + uint16(offset)
		return fmt.Sprintf("$%04X", target)
	default:
		return "???"
	}
}

// decodeLocation decodes the instruction at pc, reading as many operand
// bytes as its addressing mode calls for.
func decodeLocation(bus cpu.MemoryBus, pc uint16) Location {
	opcode := bus.ReadByte(pc)
	loc := Location{PC: pc, Opcode: opcode}

	op, mode, ok := cpu.Decode(opcode)
	if !ok {
		return loc
	}
	loc.Op, loc.Mode, loc.Valid = op, mode, true

	n := mode.OperandBytes()
	for i := 0; i < n; i++ {
		loc.OperandBytes = append(loc.OperandBytes, bus.ReadByte(pc+1+uint16(i)))
	}
	return loc
}

// DisassembleInstructions walks the entire 64 KiB address space from 0,
// decoding one Location after another.
func DisassembleInstructions(bus cpu.MemoryBus) []Location {
	var rows []Location
	pc := 0
	for pc < memorySize {
		loc := decodeLocation(bus, uint16(pc))
		rows = append(rows, loc)
		pc += loc.Size()
	}
	return rows
}

// DisassembleRange disassembles length bytes starting at start, rendering
// each Location as a listing line.
func DisassembleRange(bus cpu.MemoryBus, start uint16, length int) string {
	var out strings.Builder
	pc := int(start)
	end := pc + length
	for pc < end && pc < memorySize {
		loc := decodeLocation(bus, uint16(pc))
		out.WriteString(loc.String())
		out.WriteString("\n")
		pc += loc.Size()
	}
	return out.String()
}

// DisassembleAll disassembles the full address space as listing text.
func DisassembleAll(bus cpu.MemoryBus) string {
	return DisassembleRange(bus, 0, memorySize)
}
