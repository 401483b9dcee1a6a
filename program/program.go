// Package program loads vm16 machine code images.
//
// A program file is a Starlark script. Every opcode mnemonic and register
// name is predeclared in upper case, along with a word() builtin that
// splits a 16-bit value into its big-endian bytes. The script binds
// 'program' to a dict of load offsets to byte lists, and may bind 'memory'
// to the memory size it needs:
//
//	memory = 0xFFFF
//	program = {
//	    0x0000: [MOV_LIT_REG] + word(0x1234) + [R1] +
//	            [HALT],
//	}
package program

import (
	"iter"
	"os"
)

// Segment is a run of bytes installed at an offset.
type Segment struct {
	Offset uint16
	Data   []byte
}

// End returns the address just past the segment.
func (seg Segment) End() int {
	return int(seg.Offset) + len(seg.Data)
}

// Program is a machine code image.
type Program struct {
	Name     string    // Name of the program file.
	Memory   int       // Requested memory size, 0 if unspecified.
	Segments []Segment // Segments, in ascending offset order.
}

// Loader accepts program segments.
type Loader interface {
	Load(offset uint16, data []byte) error
}

// ParseFile parses the program file at path.
func ParseFile(path string, defines iter.Seq2[string, string]) (prog *Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return Parse(path, inf, defines)
}

// Load installs every segment of the program.
func (prog *Program) Load(loader Loader) (err error) {
	for _, seg := range prog.Segments {
		err = loader.Load(seg.Offset, seg.Data)
		if err != nil {
			err = &ErrScript{Name: prog.Name, Err: ErrSegment{Offset: int(seg.Offset), Err: err}}
			return
		}
	}

	return
}

// Size returns the total number of bytes in the program.
func (prog *Program) Size() (size int) {
	for _, seg := range prog.Segments {
		size += len(seg.Data)
	}
	return
}

// End returns the address just past the highest segment.
func (prog *Program) End() (end int) {
	for _, seg := range prog.Segments {
		end = max(end, seg.End())
	}
	return
}

// Bytes iterates over every byte of the program, by address.
func (prog *Program) Bytes() iter.Seq2[uint16, byte] {
	return func(yield func(addr uint16, value byte) bool) {
		for _, seg := range prog.Segments {
			for n, value := range seg.Data {
				if !yield(seg.Offset+uint16(n), value) {
					return
				}
			}
		}
	}
}
