// Package memory implements the byte-addressable storage of the vm16 machine.
//
// A Bank is a fixed-size buffer addressed by 16-bit offsets. Words are stored
// big-endian, high byte first. Every access is bounds-checked and reports
// ErrAddressOutOfRange rather than touching memory outside the buffer.
package memory
