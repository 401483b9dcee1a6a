// Package cpu implements the execution engine of the vm16 machine.
//
// The CPU consists of a byte-addressable memory of up to 64K, a register
// file of twelve 16-bit registers (ip, acc, r1-r8, sp, fp), and a
// thirteen instruction opcode set. Subroutine calls save r1-r8, the return
// address and the caller's stack frame size on a stack that grows down from
// the top of memory.
//
// The engine never prints. Debug views are built on the read-only View
// interface by the caller, between calls to Step.
package cpu
