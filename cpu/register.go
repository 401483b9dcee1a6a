package cpu

import (
	"iter"
	"strings"

	"github.com/ezrec/vm16/memory"
)

// Register is a register index. The numbering is part of the instruction encoding.
type Register uint8

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_IP  = Register(0)  // ip
	REG_ACC = Register(1)  // acc
	REG_R1  = Register(2)  // r1
	REG_R2  = Register(3)  // r2
	REG_R3  = Register(4)  // r3
	REG_R4  = Register(5)  // r4
	REG_R5  = Register(6)  // r5
	REG_R6  = Register(7)  // r6
	REG_R7  = Register(8)  // r7
	REG_R8  = Register(9)  // r8
	REG_SP  = Register(10) // sp
	REG_FP  = Register(11) // fp
)

// REGISTER_COUNT is the number of registers in the register file.
const REGISTER_COUNT = 12

// Valid returns true if the register is part of the register file.
func (reg Register) Valid() bool {
	return reg < REGISTER_COUNT
}

// ParseRegister finds a register by its case-insensitive name.
func ParseRegister(name string) (reg Register, err error) {
	for candidate := range Registers() {
		if strings.EqualFold(name, candidate.String()) {
			reg = candidate
			return
		}
	}

	err = ErrRegisterName(name)
	return
}

// Registers iterates over the register file, by index.
func Registers() iter.Seq[Register] {
	return func(yield func(reg Register) bool) {
		for reg := range Register(REGISTER_COUNT) {
			if !yield(reg) {
				return
			}
		}
	}
}

// registerSymbols iterates over the name of each register, in upper case.
func registerSymbols() iter.Seq2[string, uint8] {
	return func(yield func(name string, value uint8) bool) {
		for reg := range Registers() {
			if !yield(strings.ToUpper(reg.String()), uint8(reg)) {
				return
			}
		}
	}
}

// RegisterFile holds the register values in 2-byte slots of a dedicated bank.
type RegisterFile struct {
	bank *memory.Bank
}

// NewRegisterFile creates a zeroed register file.
func NewRegisterFile() (rf *RegisterFile) {
	rf = &RegisterFile{
		bank: memory.NewBank(2 * REGISTER_COUNT),
	}

	return
}

// Read returns the value of a register.
func (rf *RegisterFile) Read(reg Register) (value uint16, err error) {
	if !reg.Valid() {
		err = ErrRegister(reg)
		return
	}

	return rf.bank.ReadU16(2 * uint16(reg))
}

// Write sets the value of a register.
func (rf *RegisterFile) Write(reg Register, value uint16) (err error) {
	if !reg.Valid() {
		err = ErrRegister(reg)
		return
	}

	return rf.bank.WriteU16(2*uint16(reg), value)
}
