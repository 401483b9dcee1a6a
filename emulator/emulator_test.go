package emulator

import (
	"bytes"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vm16/cpu"
	"github.com/ezrec/vm16/monitor"
	"github.com/ezrec/vm16/program"
)

func parseProgram(t *testing.T, src string) *program.Program {
	prog, err := program.Parse(t.Name(), strings.NewReader(src), NewEmulator().Defines())
	assert.NoError(t, err)
	return prog
}

func register(emu *Emulator, reg cpu.Register) uint16 {
	value, _ := emu.Cpu.Register(reg)
	return value
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(uint16(DEFAULT_MEMORY_SIZE), emu.MemorySize)
	assert.Equal(DEFAULT_MEMORY_SIZE, emu.Cpu.MemoryLen())
}

func TestEmulator_Defines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	defines := maps.Collect(emu.Defines())

	assert.Equal("0xffff", defines["DEFAULT_MEMORY_SIZE"])
	assert.Equal("0x10", defines["MOV_LIT_REG"])
	assert.Equal("0xff", defines["HALT"])
	assert.Equal("0x0a", defines["SP"])
}

func TestEmulator_LoadProgram(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "size.star")
	err := os.WriteFile(path, []byte(`
memory = DEFAULT_MEMORY_SIZE
program = {0: [MOV_LIT_REG] + word(DEFAULT_MEMORY_SIZE) + [R1, HALT]}
`), 0o644)
	assert.NoError(err)

	emu := NewEmulator()
	assert.NoError(emu.LoadProgram(path))
	assert.Equal(DEFAULT_MEMORY_SIZE, emu.Program.Memory)

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())
	assert.Equal(uint16(DEFAULT_MEMORY_SIZE), register(emu, cpu.REG_R1))

	err = emu.LoadProgram(filepath.Join(t.TempDir(), "missing.star"))
	assert.Error(err)
}

func TestEmulator_Loop(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = parseProgram(t, `
program = {
    0: [MOV_MEM_REG] + word(0x100) + [R1] +
       [MOV_LIT_REG] + word(1) + [R2] +
       [ADD_REG_REG, R1, R2] +
       [MOV_REG_MEM, ACC] + word(0x100) +
       [JMP_NOT_EQ] + word(5) + word(0) +
       [HALT],
}
`)

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())

	value, err := emu.Cpu.MemoryWord(0x100)
	assert.NoError(err)
	assert.Equal(uint16(5), value)
	assert.True(emu.Cpu.Halted())

	// Ticks past the halt are no-ops.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulator_Observers(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.MemorySize = 0x100
	emu.Program = parseProgram(t, `
program = {0: [MOV_LIT_REG] + word(0x1234) + [R1] + [HALT]}
`)

	var ips []uint16
	emu.Observers = []Observer{
		ObserverFunc(func(view cpu.View) error {
			ip, err := view.Register(cpu.REG_IP)
			ips = append(ips, ip)
			return err
		}),
	}

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())

	assert.Equal([]uint16{0, 4, 5}, ips)
	assert.Equal(0x100, emu.Cpu.MemoryLen())
}

func TestEmulator_ObserverError(t *testing.T) {
	assert := assert.New(t)

	stop := errors.New("stop")

	emu := NewEmulator()
	emu.Program = parseProgram(t, `program = {0: [PSH_LIT, 0, 0, PSH_LIT, 0, 0, HALT]}`)
	emu.Observers = []Observer{
		ObserverFunc(func(view cpu.View) error {
			sp, _ := view.Register(cpu.REG_SP)
			if sp < 0xFFFD {
				return stop
			}
			return nil
		}),
	}

	assert.NoError(emu.Reset())
	err := emu.Run()
	assert.Equal(stop, err)
	assert.False(emu.Cpu.Halted())
}

func TestEmulator_Fault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = parseProgram(t, `program = {0: [MOV_LIT_REG] + word(0) + [R1] + [0x16]}`)

	observed := 0
	emu.Observers = []Observer{
		ObserverFunc(func(view cpu.View) error {
			observed++
			return nil
		}),
	}

	assert.NoError(emu.Reset())
	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrUnknownOpcode)

	var er *ErrRuntime
	assert.True(errors.As(err, &er))
	assert.Equal(uint16(4), er.Ip)
	assert.Equal(2, observed)

	// The fault is latched.
	_, err = emu.Tick()
	assert.ErrorIs(err, cpu.ErrFaulted)
}

func TestEmulator_ResetLoadFails(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.MemorySize = 0x10
	emu.Program = parseProgram(t, `program = {0x10: [HALT]}`)

	err := emu.Reset()
	assert.ErrorIs(err, cpu.ErrAddressOutOfRange)
}

func TestEmulator_Call(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}

	emu := NewEmulator()
	assert.NoError(emu.LoadProgram("../examples/call.star"))
	emu.MemorySize = uint16(emu.Program.Memory)
	emu.Observers = []Observer{monitor.NewMonitor(out)}

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())

	assert.Equal(uint16(0x001E), register(emu, cpu.REG_IP))
	assert.Equal(uint16(0x1234), register(emu, cpu.REG_R1))
	assert.Equal(uint16(0xABCD), register(emu, cpu.REG_R4))
	assert.Equal(uint16(0x0000), register(emu, cpu.REG_R8))

	sp := register(emu, cpu.REG_SP)
	for n, expect := range []uint16{0x4444, 0x1111, 0x2222, 0x3333} {
		value, err := emu.Cpu.MemoryWord(sp + 2 + 2*uint16(n))
		assert.NoError(err)
		assert.Equal(expect, value)
	}

	// Reset, one dump per instruction, 8 + 6 + 2 instructions.
	assert.Equal(1+16, strings.Count(out.String(), "Registers:\n"))
	assert.Contains(out.String(), "Halted at 0x001E\n")
}
