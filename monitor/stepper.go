package monitor

import (
	"bufio"
	"io"

	"github.com/ezrec/vm16/cpu"
)

// Stepper pauses between instructions until a line is read from Input.
// Once Input is exhausted, it stops pausing.
type Stepper struct {
	Input io.Reader

	scanner *bufio.Scanner
	done    bool
}

// Observe waits for the next input line, unless the CPU has halted.
func (st *Stepper) Observe(view cpu.View) (err error) {
	if st.done || view.Halted() {
		return
	}

	if st.scanner == nil {
		st.scanner = bufio.NewScanner(st.Input)
	}

	if !st.scanner.Scan() {
		st.done = true
		err = st.scanner.Err()
	}

	return
}
