// Package romimage loads a raw 64 KiB ROM image into memory and parses the
// accompanying debug-symbol file a host can use to map addresses back to
// source lines.
package romimage

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arcbyte/m6502/memory"
	"go.uber.org/zap"
)

// Load reads the file at path and copies it verbatim into mem. The file
// must be exactly memory.Size bytes: this core has no bank switching or
// partial loads, so anything else is a configuration error the caller
// should surface rather than silently truncate or zero-pad.
func Load(path string, mem *memory.Memory, logger *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading ROM image %q: %w", path, err)
	}
	if len(data) != memory.Size {
		return fmt.Errorf("ROM image %q must be exactly %d bytes, got %d", path, memory.Size, len(data))
	}

	mem.LoadImage(data)
	logger.Info("loaded ROM image",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
		zap.Uint16("resetVector", mem.ReadWord(memory.ResetVectorLow)),
	)
	return nil
}

// SymbolTable maps PC values back to the source line that produced the
// instruction at that address, for a debugger's source-level view.
type SymbolTable struct {
	lineForPC map[uint16]int
}

// LoadSymbols parses a debug-symbol file: one "<source_line_number>
// <hex_pc>" pair per line, whitespace-separated, hex PC optionally
// "0x"-prefixed.
func LoadSymbols(path string) (*SymbolTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening symbol file %q: %w", path, err)
	}
	defer f.Close()

	table := &SymbolTable{lineForPC: make(map[uint16]int)}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("symbol file %q line %d: expected 2 fields, got %d", path, lineNo, len(fields))
		}

		srcLine, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("symbol file %q line %d: bad source line number: %w", path, lineNo, err)
		}
		pc, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "0x"), 16, 16)
		if err != nil {
			return nil, fmt.Errorf("symbol file %q line %d: bad PC: %w", path, lineNo, err)
		}

		table.lineForPC[uint16(pc)] = srcLine
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading symbol file %q: %w", path, err)
	}
	return table, nil
}

// SourceLine reports the source line mapped to pc, if the symbol table
// carries one.
func (t *SymbolTable) SourceLine(pc uint16) (int, bool) {
	line, ok := t.lineForPC[pc]
	return line, ok
}
