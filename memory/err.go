package memory

import (
	"errors"

	"github.com/ezrec/vm16/translate"
)

var f = translate.From

var (
	// Memory errors
	ErrAddressOutOfRange = errors.New(f("address out of range"))
)

// ErrAddress reports an access outside of a bank.
type ErrAddress struct {
	Op      string // Accessor that failed.
	Address int    // First address of the access.
	Length  int    // Length of the bank.
}

func (err ErrAddress) Error() string {
	return f("%v 0x%04x: beyond memory length 0x%04x", err.Op, err.Address, err.Length)
}

func (err ErrAddress) Unwrap() error {
	return ErrAddressOutOfRange
}
