// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"

	"github.com/ezrec/vm16/internal"
	"github.com/ezrec/vm16/memory"
)

// View is the read-only face of the CPU offered to debuggers and monitors.
type View interface {
	Register(reg Register) (value uint16, err error)
	Memory(addr uint16) (value uint8, err error)
	MemoryWord(addr uint16) (value uint16, err error)
	MemoryLen() int
	Halted() bool
}

var _ View = (*Cpu)(nil)

// Cpu is the simulation context for the vm16 machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ticks int // Instructions executed.

	memory    *memory.Bank  // Addressable memory.
	register  *RegisterFile // Register file.
	frameSize int16         // Bytes pushed since the last call boundary.
	halted    bool          // Set by HALT.
	fault     error         // First fault raised, if any.
}

// NewCpu creates a new CPU with a specifically sized memory.
// The stack pointer and frame pointer start at the last whole word of memory.
func NewCpu(size uint16) (cpu *Cpu) {
	cpu = &Cpu{
		memory:   memory.NewBank(size),
		register: NewRegisterFile(),
	}

	top := size - 2
	_ = cpu.register.Write(REG_SP, top)
	_ = cpu.register.Write(REG_FP, top)

	return
}

// Symbols iterates over the names of all registers and opcodes, in upper case.
func Symbols() iter.Seq2[string, uint8] {
	return internal.IterSeq2Concat(registerSymbols(), opcodeSymbols())
}

// Load installs data into memory at offset.
func (cpu *Cpu) Load(offset uint16, data []byte) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: load %d bytes at 0x%04x", len(data), offset)
	}

	return cpu.memory.Load(offset, data)
}

// Halted returns true once a HALT instruction has executed.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// Fault returns the fault that stopped the CPU, or nil.
func (cpu *Cpu) Fault() error {
	return cpu.fault
}

// Register returns the value of a register.
func (cpu *Cpu) Register(reg Register) (value uint16, err error) {
	return cpu.register.Read(reg)
}

// Memory returns the byte at addr.
func (cpu *Cpu) Memory(addr uint16) (value uint8, err error) {
	return cpu.memory.ReadU8(addr)
}

// MemoryWord returns the big-endian word at addr.
func (cpu *Cpu) MemoryWord(addr uint16) (value uint16, err error) {
	return cpu.memory.ReadU16(addr)
}

// MemoryLen returns the size of memory in bytes.
func (cpu *Cpu) MemoryLen() int {
	return cpu.memory.Len()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for reg := range Registers() {
		val, _ := cpu.register.Read(reg)
		text += fmt.Sprintf("% 5s: %04X\n", reg.String(), val)
	}
	text += fmt.Sprintf("% 5s: %d\n", "frame", cpu.frameSize)

	state := "running"
	switch {
	case cpu.fault != nil:
		state = "faulted"
	case cpu.halted:
		state = "halted"
	}
	text += fmt.Sprintf("% 5s: %v\n", "state", state)

	return
}

// fetchU8 reads the byte at IP, and advances IP.
func (cpu *Cpu) fetchU8() (value uint8, err error) {
	ip, err := cpu.register.Read(REG_IP)
	if err != nil {
		return
	}

	value, err = cpu.memory.ReadU8(ip)
	if err != nil {
		return
	}

	err = cpu.register.Write(REG_IP, ip+1)
	return
}

// fetchU16 reads the word at IP, and advances IP.
func (cpu *Cpu) fetchU16() (value uint16, err error) {
	ip, err := cpu.register.Read(REG_IP)
	if err != nil {
		return
	}

	value, err = cpu.memory.ReadU16(ip)
	if err != nil {
		return
	}

	err = cpu.register.Write(REG_IP, ip+2)
	return
}

// fetchRegister reads a register index operand.
func (cpu *Cpu) fetchRegister() (reg Register, err error) {
	value, err := cpu.fetchU8()
	if err != nil {
		return
	}

	reg = Register(value)
	if !reg.Valid() {
		err = ErrRegister(reg)
	}
	return
}

// copyRegister sets dst to the value of src.
func (cpu *Cpu) copyRegister(dst, src Register) (err error) {
	value, err := cpu.register.Read(src)
	if err != nil {
		return
	}

	return cpu.register.Write(dst, value)
}

// Step executes a single instruction.
// Once the CPU has halted, Step does nothing. Once the CPU has faulted,
// Step does nothing and returns ErrFaulted along with the original fault.
func (cpu *Cpu) Step() (halted bool, err error) {
	if cpu.fault != nil {
		err = errors.Join(ErrFaulted, cpu.fault)
		return
	}

	if cpu.halted {
		halted = true
		return
	}

	ip, err := cpu.register.Read(REG_IP)
	if err != nil {
		return
	}

	var op Opcode
	defer func() {
		if err != nil {
			err = cpu.latch(ip, op, err)
		}
	}()

	value, err := cpu.fetchU8()
	if err != nil {
		return
	}
	op = Opcode(value)

	if cpu.Verbose {
		log.Printf("cpu: %04x: %v", ip, op)
	}

	err = cpu.execute(op)
	if err != nil {
		return
	}

	cpu.Ticks++
	halted = cpu.halted

	return
}

// Execute executes a single opcode whose operands start at IP.
// Faults are latched as in Step. A halted CPU returns ErrHalted.
func (cpu *Cpu) Execute(op Opcode) (err error) {
	if cpu.fault != nil {
		err = errors.Join(ErrFaulted, cpu.fault)
		return
	}

	if cpu.halted {
		err = ErrHalted
		return
	}

	ip, err := cpu.register.Read(REG_IP)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %04x: execute %v", ip, op)
	}

	err = cpu.execute(op)
	if err != nil {
		err = cpu.latch(ip, op, err)
		return
	}

	cpu.Ticks++
	return
}

// latch records the first fault; the CPU will not run again.
func (cpu *Cpu) latch(ip uint16, op Opcode, err error) error {
	cpu.fault = &ErrFault{Ip: ip, Opcode: op, Err: err}
	return cpu.fault
}

// execute dispatches op, fetching its operands from IP.
func (cpu *Cpu) execute(op Opcode) (err error) {
	switch op {
	case OP_MOV_LIT_REG:
		var val uint16
		var reg Register
		val, err = cpu.fetchU16()
		if err != nil {
			return
		}
		reg, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		err = cpu.register.Write(reg, val)
	case OP_MOV_REG_REG:
		var regs uint16
		regs, err = cpu.fetchU16()
		if err != nil {
			return
		}
		src, dst := memory.Split(regs)
		err = cpu.copyRegister(Register(dst), Register(src))
	case OP_MOV_REG_MEM:
		var reg Register
		var addr, val uint16
		reg, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		addr, err = cpu.fetchU16()
		if err != nil {
			return
		}
		val, err = cpu.register.Read(reg)
		if err != nil {
			return
		}
		err = cpu.memory.WriteU16(addr, val)
	case OP_MOV_MEM_REG:
		var reg Register
		var addr, val uint16
		addr, err = cpu.fetchU16()
		if err != nil {
			return
		}
		reg, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		val, err = cpu.memory.ReadU16(addr)
		if err != nil {
			return
		}
		err = cpu.register.Write(reg, val)
	case OP_ADD_REG_REG:
		var regs, a, b uint16
		regs, err = cpu.fetchU16()
		if err != nil {
			return
		}
		reg_a, reg_b := memory.Split(regs)
		a, err = cpu.register.Read(Register(reg_a))
		if err != nil {
			return
		}
		b, err = cpu.register.Read(Register(reg_b))
		if err != nil {
			return
		}
		err = cpu.register.Write(REG_ACC, a+b)
	case OP_JMP_NOT_EQ:
		var val, addr, acc uint16
		val, err = cpu.fetchU16()
		if err != nil {
			return
		}
		addr, err = cpu.fetchU16()
		if err != nil {
			return
		}
		acc, err = cpu.register.Read(REG_ACC)
		if err != nil {
			return
		}
		if val != acc {
			err = cpu.register.Write(REG_IP, addr)
		}
	case OP_PSH_LIT:
		var val uint16
		val, err = cpu.fetchU16()
		if err != nil {
			return
		}
		err = cpu.push(val)
	case OP_PSH_REG:
		var reg Register
		var val uint16
		reg, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		val, err = cpu.register.Read(reg)
		if err != nil {
			return
		}
		err = cpu.push(val)
	case OP_POP:
		var reg Register
		var val uint16
		reg, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		val, err = cpu.pop()
		if err != nil {
			return
		}
		err = cpu.register.Write(reg, val)
	case OP_CAL_LIT:
		var addr uint16
		addr, err = cpu.fetchU16()
		if err != nil {
			return
		}
		err = cpu.pushState()
		if err != nil {
			return
		}
		err = cpu.register.Write(REG_IP, addr)
	case OP_CAL_REG:
		var reg Register
		reg, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		err = cpu.pushState()
		if err != nil {
			return
		}
		// The target is read after the frame is saved, so 'cal sp' and
		// 'cal fp' see the new stack.
		err = cpu.copyRegister(REG_IP, reg)
	case OP_RET:
		err = cpu.popState()
	case OP_HALT:
		cpu.halted = true
	default:
		ip, _ := cpu.register.Read(REG_IP)
		err = ErrOpcode{Ip: ip - 1, Opcode: op}
	}

	return
}
