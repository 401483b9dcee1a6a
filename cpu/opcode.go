package cpu

import (
	"iter"
	"strings"
)

// Opcode is a single byte instruction tag.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_MOV_LIT_REG = Opcode(0x10) // mov_lit_reg
	OP_MOV_REG_REG = Opcode(0x11) // mov_reg_reg
	OP_MOV_REG_MEM = Opcode(0x12) // mov_reg_mem
	OP_MOV_MEM_REG = Opcode(0x13) // mov_mem_reg
	OP_ADD_REG_REG = Opcode(0x14) // add_reg_reg
	OP_JMP_NOT_EQ  = Opcode(0x15) // jmp_not_eq
	OP_PSH_LIT     = Opcode(0x17) // psh_lit
	OP_PSH_REG     = Opcode(0x18) // psh_reg
	OP_POP         = Opcode(0x1A) // pop
	OP_CAL_LIT     = Opcode(0x5E) // cal_lit
	OP_CAL_REG     = Opcode(0x5F) // cal_reg
	OP_RET         = Opcode(0x60) // ret
	OP_HALT        = Opcode(0xFF) // halt
)

// opcodeOperands is the number of operand bytes following each opcode.
var opcodeOperands = map[Opcode]int{
	OP_MOV_LIT_REG: 3, // u16 literal, u8 register
	OP_MOV_REG_REG: 2, // u8 source, u8 destination
	OP_MOV_REG_MEM: 3, // u8 register, u16 address
	OP_MOV_MEM_REG: 3, // u16 address, u8 register
	OP_ADD_REG_REG: 2, // u8 register, u8 register
	OP_JMP_NOT_EQ:  4, // u16 literal, u16 address
	OP_PSH_LIT:     2, // u16 literal
	OP_PSH_REG:     1, // u8 register
	OP_POP:         1, // u8 register
	OP_CAL_LIT:     2, // u16 address
	OP_CAL_REG:     1, // u8 register
	OP_RET:         0,
	OP_HALT:        0,
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opcodeOperands[op]
	return ok
}

// Operands returns the number of operand bytes that follow the opcode.
func (op Opcode) Operands() (count int, ok bool) {
	count, ok = opcodeOperands[op]
	return
}

// Opcodes iterates over the instruction set, by ascending opcode.
func Opcodes() iter.Seq[Opcode] {
	return func(yield func(op Opcode) bool) {
		for n := range 0x100 {
			op := Opcode(n)
			if !op.Valid() {
				continue
			}
			if !yield(op) {
				return
			}
		}
	}
}

// opcodeSymbols iterates over the mnemonic of each opcode, in upper case.
func opcodeSymbols() iter.Seq2[string, uint8] {
	return func(yield func(name string, value uint8) bool) {
		for op := range Opcodes() {
			if !yield(strings.ToUpper(op.String()), uint8(op)) {
				return
			}
		}
	}
}
