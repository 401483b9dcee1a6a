// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/vm16/cpu"
	"github.com/ezrec/vm16/internal"
	"github.com/ezrec/vm16/program"
)

const (
	DEFAULT_MEMORY_SIZE = 0xFFFF // Largest memory a 16-bit length can describe.
)

var _emulator_defines = map[string]string{
	"DEFAULT_MEMORY_SIZE": fmt.Sprintf("%#x", DEFAULT_MEMORY_SIZE),
}

// Observer is called with the CPU state between instructions.
type Observer interface {
	Observe(view cpu.View) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(view cpu.View) error

func (fn ObserverFunc) Observe(view cpu.View) error {
	return fn(view)
}

// Emulator state. CPU + program + observers.
type Emulator struct {
	Verbose    bool             // If set, enables verbose logging.
	*cpu.Cpu                    // Reference to the CPU simulation.
	Program    *program.Program // Program installed at reset.
	MemorySize uint16           // Memory size used at reset.
	Observers  []Observer       // Called after reset, and after every instruction.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:        cpu.NewCpu(DEFAULT_MEMORY_SIZE),
		Program:    &program.Program{},
		MemorySize: DEFAULT_MEMORY_SIZE,
	}

	return
}

// Defines returns an iterator over all of the defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	symbols := internal.IterSeq2Map(cpu.Symbols(), func(value uint8) string {
		return fmt.Sprintf("0x%02x", value)
	})
	return internal.IterSeq2Concat(maps.All(_emulator_defines), symbols)
}

// LoadProgram parses the program file at path, with the emulator defines
// predeclared, and makes it the program installed at reset.
func (emu *Emulator) LoadProgram(path string) (err error) {
	prog, err := program.ParseFile(path, emu.Defines())
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: %v: %d bytes in %d segments", prog.Name, prog.Size(), len(prog.Segments))
	}

	emu.Program = prog
	return
}

// Reset builds a fresh CPU, and installs the program.
func (emu *Emulator) Reset() (err error) {
	if emu.Verbose {
		log.Printf("emulator: reset, memory 0x%04x", emu.MemorySize)
	}

	emu.Cpu = cpu.NewCpu(emu.MemorySize)
	emu.Cpu.Verbose = emu.Verbose

	if emu.Program != nil {
		err = emu.Program.Load(emu.Cpu)
		if err != nil {
			return
		}
	}

	return emu.notify()
}

// notify calls every observer.
func (emu *Emulator) notify() (err error) {
	for _, obs := range emu.Observers {
		err = obs.Observe(emu.Cpu)
		if err != nil {
			return
		}
	}

	return
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() uint16 {
	ip, _ := emu.Cpu.Register(cpu.REG_IP)
	return ip
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted() {
		done = true
		return
	}

	ip := emu.Ip()
	done, err = emu.Cpu.Step()
	if err != nil {
		err = &ErrRuntime{Ip: ip, Err: err}
		return
	}

	err = emu.notify()
	return
}

// Run ticks the emulator until it halts, faults, or an observer fails.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d instructions", emu.Cpu.Ticks)
	}

	return
}
