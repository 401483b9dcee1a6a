package monitor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vm16/cpu"
)

const memoryHeader = "Memory: +0 +1 +2 +3 +4 +5 +6 +7 +8 +9 +A +B +C +D +E +F \n"

func newTestCpu(t *testing.T) *cpu.Cpu {
	c := cpu.NewCpu(0x20)
	assert.NoError(t, c.Load(0, []byte{0x10, 0x12, 0x34, 0x02, 0xFF}))
	return c
}

func TestWriteRegisters(t *testing.T) {
	assert := assert.New(t)

	c := newTestCpu(t)
	out := &bytes.Buffer{}

	err := WriteRegisters(out, c, []cpu.Register{cpu.REG_IP, cpu.REG_R1, cpu.REG_SP})
	assert.NoError(err)
	assert.Equal("Registers:\nip: 0x0000; r1: 0x0000; sp: 0x001E; \n", out.String())

	_, err = c.Step()
	assert.NoError(err)

	out.Reset()
	assert.NoError(WriteRegisters(out, c, []cpu.Register{cpu.REG_R1}))
	assert.Equal("Registers:\nr1: 0x1234; \n", out.String())

	err = WriteRegisters(out, c, []cpu.Register{cpu.Register(12)})
	assert.ErrorIs(err, cpu.ErrAddressOutOfRange)
}

func TestWriteMemory(t *testing.T) {
	assert := assert.New(t)

	c := newTestCpu(t)
	out := &bytes.Buffer{}

	assert.NoError(WriteMemory(out, c, 0, 1))
	assert.Equal(memoryHeader+
		"0x0000: 10 12 34 02 FF 00 00 00 00 00 00 00 00 00 00 00 \n",
		out.String())
}

func TestWriteMemory_End(t *testing.T) {
	assert := assert.New(t)

	c := newTestCpu(t)
	out := &bytes.Buffer{}

	assert.NoError(WriteMemory(out, c, 0x18, 3))
	assert.Equal(memoryHeader+
		"0x0018: 00 00 00 00 00 00 00 00 \n",
		out.String())

	out.Reset()
	assert.NoError(WriteMemory(out, c, 0x20, 3))
	assert.Equal(memoryHeader, out.String())
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	c := newTestCpu(t)
	assert.NoError(c.Load(0x1F, []byte{byte(cpu.OP_PSH_LIT)}))

	table := [](struct {
		addr uint16
		text string
		size int
	}){
		{0x00, "mov_lit_reg 12 34 02", 4},
		{0x04, "halt", 1},
		{0x05, "?? 00", 1},
		{0x1F, "psh_lit -- --", 3},
		{0x20, "--", 0},
	}

	for _, entry := range table {
		text, size := Disassemble(c, entry.addr)
		assert.Equal(entry.text, text)
		assert.Equal(entry.size, size)
	}
}

func TestView_Start(t *testing.T) {
	assert := assert.New(t)

	c := newTestCpu(t)

	start, err := View{Anchor: cpu.REG_SP, Offset: 2}.Start(c)
	assert.NoError(err)
	assert.Equal(uint16(0x20), start)

	start, err = View{Absolute: true, Address: 0x100, Offset: -0x10}.Start(c)
	assert.NoError(err)
	assert.Equal(uint16(0xF0), start)

	_, err = View{Anchor: cpu.Register(0x20)}.Start(c)
	assert.ErrorIs(err, cpu.ErrAddressOutOfRange)
}

func TestMonitor_Observe(t *testing.T) {
	assert := assert.New(t)

	c := newTestCpu(t)
	out := &bytes.Buffer{}
	mon := NewMonitor(out)

	assert.NoError(mon.Observe(c))
	text := out.String()
	assert.True(strings.HasPrefix(text, "Next: 0x0000: mov_lit_reg 12 34 02\n"), text)
	assert.Contains(text, "Registers:\nip: 0x0000; r1: 0x0000; r4: 0x0000; r8: 0x0000; sp: 0x001E; fp: 0x001E; \n")
	assert.Contains(text, "0x0000: 10 12 34 02 FF")
	assert.Equal(2, strings.Count(text, "Memory: "))

	for range 2 {
		_, err := c.Step()
		assert.NoError(err)
	}

	out.Reset()
	assert.NoError(mon.Observe(c))
	assert.True(strings.HasPrefix(out.String(), "Halted at 0x0005\n"), out.String())
	assert.Contains(out.String(), "r1: 0x1234; ")
}

func TestStepper(t *testing.T) {
	assert := assert.New(t)

	c := newTestCpu(t)
	input := strings.NewReader("\nnext\n")
	st := &Stepper{Input: input}

	assert.NoError(st.Observe(c))
	assert.NoError(st.Observe(c))
	assert.False(st.done)

	// End of input stops the pauses.
	assert.NoError(st.Observe(c))
	assert.True(st.done)
	assert.NoError(st.Observe(c))
}

func TestStepper_Halted(t *testing.T) {
	assert := assert.New(t)

	c := cpu.NewCpu(0x10)
	assert.NoError(c.Load(0, []byte{byte(cpu.OP_HALT)}))
	_, err := c.Step()
	assert.NoError(err)

	st := &Stepper{Input: strings.NewReader("\n")}
	assert.NoError(st.Observe(c))
	assert.Nil(st.scanner)
}
