package cpu_test

import (
	"testing"

	"github.com/arcbyte/m6502/cpu"
	"github.com/stretchr/testify/assert"
)

func TestTransferInstructions(t *testing.T) {
	tests := []struct {
		name    string
		opcode  byte
		setup   func(*cpu.CPU)
		check   func(*testing.T, cpu.Snapshot)
	}{
		{
			name:   "TAX",
			opcode: cpu.TAX,
			setup:  func(c *cpu.CPU) { c.A = 0x42 },
			check:  func(t *testing.T, s cpu.Snapshot) { assert.Equal(t, byte(0x42), s.X) },
		},
		{
			name:   "TAY",
			opcode: cpu.TAY,
			setup:  func(c *cpu.CPU) { c.A = 0x42 },
			check:  func(t *testing.T, s cpu.Snapshot) { assert.Equal(t, byte(0x42), s.Y) },
		},
		{
			name:   "TXA",
			opcode: cpu.TXA,
			setup:  func(c *cpu.CPU) { c.X = 0x42 },
			check:  func(t *testing.T, s cpu.Snapshot) { assert.Equal(t, byte(0x42), s.A) },
		},
		{
			name:   "TYA",
			opcode: cpu.TYA,
			setup:  func(c *cpu.CPU) { c.Y = 0x42 },
			check:  func(t *testing.T, s cpu.Snapshot) { assert.Equal(t, byte(0x42), s.A) },
		},
		{
			name:   "TSX",
			opcode: cpu.TSX,
			setup:  func(c *cpu.CPU) { c.SP = 0xF0 },
			check:  func(t *testing.T, s cpu.Snapshot) { assert.Equal(t, byte(0xF0), s.X) },
		},
		{
			name:   "TXS does not touch flags",
			opcode: cpu.TXS,
			setup: func(c *cpu.CPU) {
				c.X = 0x00
				c.P = 0xFF
			},
			check: func(t *testing.T, s cpu.Snapshot) {
				assert.Equal(t, byte(0x00), s.SP)
				assert.Equal(t, byte(0xFF), s.P)
			},
		},
		{
			name:   "TAX sets Z on zero",
			opcode: cpu.TAX,
			setup:  func(c *cpu.CPU) { c.A = 0x00 },
			check: func(t *testing.T, s cpu.Snapshot) {
				assert.True(t, s.P&cpu.FlagZ != 0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newMachine(tt.opcode)
			tt.setup(c)
			assert.NoError(t, c.Step())
			tt.check(t, c.Snapshot())
		})
	}
}

func TestStackInstructions(t *testing.T) {
	t.Run("PHA then PLA round-trips and sets flags from popped value", func(t *testing.T) {
		c, _ := newMachine(cpu.PHA, cpu.PLA)
		c.A = 0x00
		spBefore := c.Snapshot().SP

		assert.NoError(t, c.Step()) // PHA
		assert.Equal(t, spBefore-1, c.Snapshot().SP)

		c.A = 0x7F // clobber before PLA restores it
		assert.NoError(t, c.Step()) // PLA
		assert.Equal(t, byte(0x00), c.Snapshot().A)
		assert.Equal(t, spBefore, c.Snapshot().SP)
		assert.True(t, c.Snapshot().P&cpu.FlagZ != 0)
	})

	t.Run("PHP then PLP round-trips status register", func(t *testing.T) {
		c, _ := newMachine(cpu.PHP, cpu.PLP)
		c.P = cpu.FlagC | cpu.FlagN

		assert.NoError(t, c.Step()) // PHP
		c.P = 0
		assert.NoError(t, c.Step()) // PLP

		assert.True(t, c.Snapshot().P&cpu.FlagC != 0)
		assert.True(t, c.Snapshot().P&cpu.FlagN != 0)
	})

	t.Run("stack pointer wraps from 0xFF to 0x00 on pull underflow", func(t *testing.T) {
		c, _ := newMachine(cpu.PLA)
		c.SP = 0xFF
		assert.NoError(t, c.Step())
		assert.Equal(t, byte(0x00), c.Snapshot().SP)
	})

	t.Run("stack pointer wraps from 0x00 to 0xFF on push overflow", func(t *testing.T) {
		c, _ := newMachine(cpu.PHA)
		c.SP = 0x00
		assert.NoError(t, c.Step())
		assert.Equal(t, byte(0xFF), c.Snapshot().SP)
	})
}
