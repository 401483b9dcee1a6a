package emulator

import (
	"github.com/ezrec/vm16/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip  uint16
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("ip 0x%04x %v", err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
