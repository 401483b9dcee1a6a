package program

import (
	"errors"

	"github.com/ezrec/vm16/translate"
)

var f = translate.From

var (
	// Program file errors
	ErrProgramMissing = errors.New(f("'program' not defined"))
	ErrProgramType    = errors.New(f("'program' is not a dict"))
	ErrSegmentType    = errors.New(f("segment is not a list of bytes"))
	ErrOffsetRange    = errors.New(f("segment offset out of range"))
	ErrByteRange      = errors.New(f("byte out of range"))
	ErrWordRange      = errors.New(f("word out of range"))
	ErrSegmentOverlap = errors.New(f("segments overlap"))
	ErrMemorySize     = errors.New(f("'memory' out of range"))
)

// ErrScript indicates the program file that failed to load.
type ErrScript struct {
	Name string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

// ErrSegment indicates the segment that failed to load.
type ErrSegment struct {
	Offset int
	Err    error
}

func (err ErrSegment) Error() string {
	return f("segment 0x%04x %v", err.Offset, err.Err)
}

func (err ErrSegment) Unwrap() error {
	return err.Err
}
