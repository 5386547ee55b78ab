package cpu_test

import (
	"testing"

	"github.com/arcbyte/m6502/cpu"
	"github.com/stretchr/testify/assert"
)

func TestJMP(t *testing.T) {
	t.Run("absolute", func(t *testing.T) {
		c, _ := newMachine(cpu.JMP_ABS, 0x00, 0x40)
		assert.NoError(t, c.Step())
		assert.Equal(t, uint16(0x4000), c.Snapshot().PC)
	})

	t.Run("indirect", func(t *testing.T) {
		c, mem := newMachine(cpu.JMP_IND, 0x00, 0x30)
		mem.WriteByte(0x3000, 0x00)
		mem.WriteByte(0x3001, 0x40)
		assert.NoError(t, c.Step())
		assert.Equal(t, uint16(0x4000), c.Snapshot().PC)
	})
}

func TestJSRPushesReturnAddressRTSRestoresIt(t *testing.T) {
	c, mem := newMachine(cpu.JSR_ABS, 0x00, 0x40)
	mem.WriteByte(0x4000, cpu.RTS)
	pcAfterJSR := uint16(0x0203) // address of the byte following JSR's 3 bytes

	assert.NoError(t, c.Step()) // JSR $4000
	assert.Equal(t, uint16(0x4000), c.Snapshot().PC)

	assert.NoError(t, c.Step()) // RTS
	assert.Equal(t, pcAfterJSR, c.Snapshot().PC)
}

func TestBranches(t *testing.T) {
	tests := []struct {
		name    string
		opcode  byte
		setup   func(*cpu.CPU)
		offset  byte
		taken   bool
	}{
		{"BEQ taken when Z set", cpu.BEQ, func(c *cpu.CPU) { c.P |= cpu.FlagZ }, 0x05, true},
		{"BEQ not taken when Z clear", cpu.BEQ, func(c *cpu.CPU) {}, 0x05, false},
		{"BNE taken when Z clear", cpu.BNE, func(c *cpu.CPU) {}, 0x05, true},
		{"BCC taken when C clear", cpu.BCC, func(c *cpu.CPU) {}, 0x05, true},
		{"BCS taken when C set", cpu.BCS, func(c *cpu.CPU) { c.P |= cpu.FlagC }, 0x05, true},
		{"BMI taken when N set", cpu.BMI, func(c *cpu.CPU) { c.P |= cpu.FlagN }, 0x05, true},
		{"BPL taken when N clear", cpu.BPL, func(c *cpu.CPU) {}, 0x05, true},
		{"BVC taken when V clear", cpu.BVC, func(c *cpu.CPU) {}, 0x05, true},
		{"BVS taken when V set", cpu.BVS, func(c *cpu.CPU) { c.P |= cpu.FlagV }, 0x05, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newMachine(tt.opcode, tt.offset)
			tt.setup(c)
			pcBefore := c.Snapshot().PC

			assert.NoError(t, c.Step())

			wantPC := pcBefore + 2
			if tt.taken {
				wantPC += uint16(int8(tt.offset))
			}
			assert.Equal(t, wantPC, c.Snapshot().PC)
		})
	}
}

func TestBranchWithNegativeOffsetGoesBackward(t *testing.T) {
	c, _ := newMachine(cpu.BNE, 0xFC) // -4
	pcBefore := c.Snapshot().PC

	assert.NoError(t, c.Step())

	assert.Equal(t, pcBefore+2-4, c.Snapshot().PC)
}
