package cpu

import (
	"errors"

	"github.com/ezrec/vm16/memory"
	"github.com/ezrec/vm16/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrAddressOutOfRange = memory.ErrAddressOutOfRange
	ErrUnknownOpcode     = errors.New(f("unknown opcode"))
	ErrFaulted           = errors.New(f("cpu faulted"))
	ErrHalted            = errors.New(f("cpu halted"))
	ErrRegisterUnknown   = errors.New(f("register unknown"))
)

// ErrRegister reports an access to a register outside of the register file.
type ErrRegister Register

func (er ErrRegister) Error() string {
	return f("register %d out of range", uint8(er))
}

func (er ErrRegister) Unwrap() error {
	return ErrAddressOutOfRange
}

// ErrRegisterName reports a register name that does not exist.
type ErrRegisterName string

func (er ErrRegisterName) Error() string {
	return f("register '%v' unknown", string(er))
}

func (er ErrRegisterName) Unwrap() error {
	return ErrRegisterUnknown
}

// ErrOpcode reports an opcode byte that is not in the instruction set.
type ErrOpcode struct {
	Ip     uint16 // Address of the opcode byte.
	Opcode Opcode // Opcode byte fetched.
}

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x at 0x%04x", uint8(eo.Opcode), eo.Ip)
}

func (eo ErrOpcode) Unwrap() error {
	return ErrUnknownOpcode
}

// ErrFault is a fault raised while executing an instruction.
type ErrFault struct {
	Ip     uint16 // Address of the faulting instruction.
	Opcode Opcode // Opcode of the faulting instruction.
	Err    error  // Underlying fault.
}

func (err *ErrFault) Error() string {
	if !err.Opcode.Valid() {
		return f("0x%04x: %v", err.Ip, err.Err)
	}
	return f("0x%04x %v: %v", err.Ip, err.Opcode.String(), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
