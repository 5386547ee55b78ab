package cpu

import "fmt"

// String renders the register file the way the teacher's monitor formats
// it, so a Snapshot can be dropped into a %v/Println without going
// through the TUI.
func (s Snapshot) String() string {
	flags := ""
	for _, f := range []struct {
		bit  byte
		name string
	}{
		{FlagN, "N"}, {FlagV, "V"}, {FlagB, "B"}, {FlagD, "D"},
		{FlagI, "I"}, {FlagZ, "Z"}, {FlagC, "C"},
	} {
		if s.P&f.bit != 0 {
			flags += f.name
		} else {
			flags += "-"
		}
	}
	return fmt.Sprintf("PC=%04X SP=%02X A=%02X X=%02X Y=%02X P=%s",
		s.PC, s.SP, s.A, s.X, s.Y, flags)
}
