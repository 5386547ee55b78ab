package disassembler_test

import (
	"testing"

	"github.com/arcbyte/m6502/cpu"
	"github.com/arcbyte/m6502/disassembler"
	"github.com/arcbyte/m6502/memory"
	"github.com/stretchr/testify/assert"
)

func TestDisassembleRangeFormatsKnownInstructions(t *testing.T) {
	mem := memory.New()
	mem.WriteByte(0x0200, cpu.LDA_IMM)
	mem.WriteByte(0x0201, 0x42)
	mem.WriteByte(0x0202, cpu.STA_ZP)
	mem.WriteByte(0x0203, 0x10)
	mem.WriteByte(0x0204, cpu.BRK)

	out := disassembler.DisassembleRange(mem, 0x0200, 5)

	assert.Contains(t, out, "LDA #$42")
	assert.Contains(t, out, "STA $10")
	assert.Contains(t, out, "BRK")
}

func TestDisassembleRangeMarksIllegalOpcode(t *testing.T) {
	mem := memory.New()
	mem.WriteByte(0x0200, 0x02) // no decode-table entry

	out := disassembler.DisassembleRange(mem, 0x0200, 1)

	assert.Contains(t, out, "illegal opcode")
}

func TestRelativeBranchTargetIsComputedFromPC(t *testing.T) {
	mem := memory.New()
	mem.WriteByte(0x0200, cpu.BNE)
	mem.WriteByte(0x0201, 0x05) // +5: target = 0x0200 + 2 + 5 = 0x0207

	out := disassembler.DisassembleRange(mem, 0x0200, 2)

	assert.Contains(t, out, "BNE $0207")
}

func TestLocationSizeMatchesAddressingMode(t *testing.T) {
	mem := memory.New()
	mem.WriteByte(0x0200, cpu.JMP_ABS)
	mem.WriteByte(0x0201, 0x00)
	mem.WriteByte(0x0202, 0x40)
	mem.WriteByte(0x0203, cpu.NOP) // would be mis-decoded as part of JMP's operand if Size() were wrong

	out := disassembler.DisassembleRange(mem, 0x0200, 4)

	assert.Contains(t, out, "JMP $4000")
	assert.Contains(t, out, "$0203")
}

func TestDisassembleInstructionsCoversFullAddressSpace(t *testing.T) {
	mem := memory.New()
	rows := disassembler.DisassembleInstructions(mem)

	var last int
	for _, r := range rows {
		last = int(r.PC) + r.Size()
	}
	assert.Equal(t, 0x10000, last)
}
