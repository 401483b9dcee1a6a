// Package monitor renders the state of a vm16 CPU for a human.
//
// A Monitor is an observer: the emulator calls it between instructions,
// and it only reads the CPU through cpu.View.
package monitor

import (
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/vm16/cpu"
)

const (
	LINE_BYTES = 16 // Bytes per memory dump line.
)

// DefaultRegisters are the registers shown when none are configured.
var DefaultRegisters = []cpu.Register{cpu.REG_IP, cpu.REG_R1, cpu.REG_R4, cpu.REG_R8, cpu.REG_SP, cpu.REG_FP}

// DefaultViews show the next instruction, and the top of the stack.
var DefaultViews = []View{
	{Anchor: cpu.REG_IP, Lines: 1},
	{Anchor: cpu.REG_SP, Offset: 2, Lines: 3},
}

// View is a memory dump window.
type View struct {
	Anchor   cpu.Register // Register holding the base address.
	Address  uint16       // Base address, when Absolute is set.
	Absolute bool         // Use Address instead of Anchor.
	Offset   int          // Added to the base address.
	Lines    int          // Lines of LINE_BYTES to show.
}

// Start returns the first address of the view.
func (v View) Start(view cpu.View) (addr uint16, err error) {
	base := v.Address
	if !v.Absolute {
		base, err = view.Register(v.Anchor)
		if err != nil {
			return
		}
	}

	addr = uint16(int(base) + v.Offset)
	return
}

// Monitor dumps registers and memory views after each instruction.
type Monitor struct {
	Output    io.Writer      // Destination of the dumps.
	Registers []cpu.Register // Registers to show.
	Views     []View         // Memory windows to show.
}

// NewMonitor creates a monitor with the default registers and views.
func NewMonitor(out io.Writer) (mon *Monitor) {
	mon = &Monitor{
		Output:    out,
		Registers: DefaultRegisters,
		Views:     DefaultViews,
	}

	return
}

// Observe writes the next instruction, the registers, and each memory view.
func (mon *Monitor) Observe(view cpu.View) (err error) {
	ip, err := view.Register(cpu.REG_IP)
	if err != nil {
		return
	}

	if view.Halted() {
		_, err = fmt.Fprintf(mon.Output, "Halted at 0x%04X\n", ip)
	} else {
		text, _ := Disassemble(view, ip)
		_, err = fmt.Fprintf(mon.Output, "Next: 0x%04X: %v\n", ip, text)
	}
	if err != nil {
		return
	}

	err = WriteRegisters(mon.Output, view, mon.Registers)
	if err != nil {
		return
	}

	for _, v := range mon.Views {
		var start uint16
		start, err = v.Start(view)
		if err != nil {
			return
		}
		err = WriteMemory(mon.Output, view, start, v.Lines)
		if err != nil {
			return
		}
	}

	return
}

// WriteRegisters writes the value of each register on one line.
func WriteRegisters(w io.Writer, view cpu.View, regs []cpu.Register) (err error) {
	var text strings.Builder

	text.WriteString("Registers:\n")
	for _, reg := range regs {
		var value uint16
		value, err = view.Register(reg)
		if err != nil {
			return
		}
		fmt.Fprintf(&text, "%v: 0x%04X; ", reg, value)
	}
	text.WriteString("\n")

	_, err = io.WriteString(w, text.String())
	return
}

// WriteMemory writes lines of LINE_BYTES bytes starting at start,
// stopping at the end of memory.
func WriteMemory(w io.Writer, view cpu.View, start uint16, lines int) (err error) {
	var text strings.Builder

	text.WriteString("Memory: ")
	for n := range LINE_BYTES {
		fmt.Fprintf(&text, "%+X ", n)
	}
	text.WriteString("\n")

	length := view.MemoryLen()
	for line := range lines {
		addr := int(start) + LINE_BYTES*line
		if addr >= length {
			break
		}
		fmt.Fprintf(&text, "0x%04X: ", addr)
		for offset := range LINE_BYTES {
			if addr+offset >= length {
				break
			}
			var value uint8
			value, err = view.Memory(uint16(addr + offset))
			if err != nil {
				return
			}
			fmt.Fprintf(&text, "%02X ", value)
		}
		text.WriteString("\n")
	}

	_, err = io.WriteString(w, text.String())
	return
}

// Disassemble describes the instruction at addr, returning its text and
// its size in bytes. Operand bytes beyond the end of memory are shown as '--'.
func Disassemble(view cpu.View, addr uint16) (text string, size int) {
	value, err := view.Memory(addr)
	if err != nil {
		return "--", 0
	}

	op := cpu.Opcode(value)
	count, ok := op.Operands()
	if !ok {
		return fmt.Sprintf("?? %02X", value), 1
	}

	words := []string{op.String()}
	for n := range count {
		value, err = view.Memory(addr + 1 + uint16(n))
		if err != nil {
			words = append(words, "--")
			continue
		}
		words = append(words, fmt.Sprintf("%02X", value))
	}

	return strings.Join(words, " "), 1 + count
}
