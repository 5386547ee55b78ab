package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcbyte/m6502/cpu"
	"github.com/arcbyte/m6502/disassembler"
	"github.com/arcbyte/m6502/memory"
	"github.com/arcbyte/m6502/romimage"
	"github.com/arcbyte/m6502/sdlhost"
	"github.com/arcbyte/m6502/tui"
)

func main() {
	var verbose bool
	var logger *zap.Logger

	rootCmd := &cobra.Command{
		Use:   "m6502",
		Short: "A MOS 6502 emulator: load a ROM image and run, monitor, display, or disassemble it",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable development-mode (human-readable) logging")

	var symbolsPath string

	loadMachine := func(romPath string) (*cpu.CPU, *memory.Memory, *romimage.SymbolTable, error) {
		mem := memory.New()
		if err := romimage.Load(romPath, mem, logger); err != nil {
			return nil, nil, nil, err
		}

		var symbols *romimage.SymbolTable
		if symbolsPath != "" {
			var err error
			symbols, err = romimage.LoadSymbols(symbolsPath)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("loading symbols: %w", err)
			}
		}

		c := cpu.New(mem)
		c.Reset()
		return c, mem, symbols, nil
	}

	// run: headless execution until a fault (illegal opcode) or --steps is exhausted.
	var maxSteps int

	runCmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Run a ROM image headlessly until it faults or the step limit is reached",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, symbols, err := loadMachine(args[0])
			if err != nil {
				return err
			}

			steps := 0
			for maxSteps <= 0 || steps < maxSteps {
				if err := c.Step(); err != nil {
					logger.Error("machine halted", zap.Error(err), zap.Int("steps", steps))
					return err
				}
				steps++
			}

			snap := c.Snapshot()
			fields := []zap.Field{zap.Int("steps", steps), zap.String("state", snap.String())}
			if symbols != nil {
				if line, ok := symbols.SourceLine(snap.PC); ok {
					fields = append(fields, zap.Int("sourceLine", line))
				}
			}
			logger.Info("step limit reached", fields...)
			return nil
		},
	}
	runCmd.Flags().IntVar(&maxSteps, "steps", 0, "stop after this many instructions (0 = run until fault)")
	runCmd.Flags().StringVar(&symbolsPath, "symbols", "", "optional debug symbol file (line-number hex-pc pairs)")

	// monitor: interactive bubbletea TUI.
	monitorCmd := &cobra.Command{
		Use:   "monitor <rom>",
		Short: "Step a ROM image under an interactive register/memory/disassembly monitor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, mem, _, err := loadMachine(args[0])
			if err != nil {
				return err
			}

			p := tea.NewProgram(tui.New(c, mem))
			_, err = p.Run()
			return err
		},
	}
	monitorCmd.Flags().StringVar(&symbolsPath, "symbols", "", "optional debug symbol file (line-number hex-pc pairs)")

	// display: SDL2 framebuffer frontend.
	var stepsPerFrame int

	displayCmd := &cobra.Command{
		Use:   "display <rom>",
		Short: "Run a ROM image behind an SDL2 window showing the 32x32 framebuffer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, mem, _, err := loadMachine(args[0])
			if err != nil {
				return err
			}

			host, err := sdlhost.New(c, mem)
			if err != nil {
				return fmt.Errorf("opening display: %w", err)
			}
			defer host.Close()

			if err := host.Run(stepsPerFrame); err != nil {
				logger.Error("display run ended", zap.Error(err))
				return err
			}
			return nil
		},
	}
	displayCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 1000, "CPU instructions executed between presented frames")

	// disasm: static disassembly listing.
	var startAddr string
	var length int

	disasmCmd := &cobra.Command{
		Use:   "disasm <rom>",
		Short: "Print a disassembly listing of a ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mem := memory.New()
			if err := romimage.Load(args[0], mem, logger); err != nil {
				return err
			}

			if startAddr == "" {
				fmt.Println(disassembler.DisassembleAll(mem))
				return nil
			}

			addr, err := parseAddress(startAddr)
			if err != nil {
				return fmt.Errorf("parsing start address: %w", err)
			}
			fmt.Println(disassembler.DisassembleRange(mem, addr, length))
			return nil
		},
	}
	disasmCmd.Flags().StringVarP(&startAddr, "addr", "a", "", "start address, e.g. $0200 or 0x0200 (default: disassemble the whole image)")
	disasmCmd.Flags().IntVarP(&length, "length", "l", 64, "number of bytes to disassemble from --addr")

	rootCmd.AddCommand(runCmd, monitorCmd, displayCmd, disasmCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseAddress accepts "$1234", "0x1234", and plain decimal. Unprefixed
// input follows strconv's base-0 rules: a leading 0 reads as octal, and
// bare hex such as "FF00" is rejected.
func parseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "$") {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
