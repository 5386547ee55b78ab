package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arcbyte/m6502/cpu"
	"github.com/arcbyte/m6502/memory"
	"github.com/stretchr/testify/assert"
)

func newTestMonitor(program ...byte) *Monitor {
	mem := memory.New()
	for i, b := range program {
		mem.WriteByte(0x0200+uint16(i), b)
	}
	mem.WriteByte(memory.ResetVectorLow, 0x00)
	mem.WriteByte(memory.ResetVectorHigh, 0x02)
	c := cpu.New(mem)
	c.Reset()
	return New(c, mem)
}

func TestStepAdvancesCPUAndRecordsLastSnapshot(t *testing.T) {
	m := newTestMonitor(cpu.LDA_IMM, 0x42)
	m.step()

	assert.Equal(t, byte(0x42), m.cpu.A)
	assert.Equal(t, uint16(0x0200), m.lastSnapshot.PC)
}

func TestStepOnIllegalOpcodeSetsFaultAndPauses(t *testing.T) {
	m := newTestMonitor(0x02)
	m.paused = false

	m.step()

	assert.Error(t, m.fault)
	assert.True(t, m.paused)
}

func TestStepIsANoOpOnceFaulted(t *testing.T) {
	m := newTestMonitor(0x02)
	m.step()
	firstFault := m.fault

	m.step()

	assert.Equal(t, firstFault, m.fault)
	assert.Equal(t, uint16(0x0200), m.cpu.PC, "PC must not advance past a fault")
}

func TestBreakpointToggle(t *testing.T) {
	m := newTestMonitor(cpu.NOP, cpu.NOP)
	addr := m.locations[m.selectedLocation].PC

	assert.False(t, m.breakpoints[addr])
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	assert.True(t, m.breakpoints[addr], "breakpoints map is shared across Update's value-receiver copies")
}
