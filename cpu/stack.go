package cpu

// push writes value at SP, then moves SP down one word.
func (cpu *Cpu) push(value uint16) (err error) {
	sp, err := cpu.register.Read(REG_SP)
	if err != nil {
		return
	}

	err = cpu.memory.WriteU16(sp, value)
	if err != nil {
		return
	}

	cpu.frameSize += 2
	err = cpu.register.Write(REG_SP, sp-2)
	return
}

// pop moves SP up one word, then reads the value at SP.
func (cpu *Cpu) pop() (value uint16, err error) {
	sp, err := cpu.register.Read(REG_SP)
	if err != nil {
		return
	}

	err = cpu.register.Write(REG_SP, sp+2)
	if err != nil {
		return
	}

	cpu.frameSize -= 2
	value, err = cpu.memory.ReadU16(sp + 2)
	return
}

// pushState saves a call frame: r1-r8, the return IP, and the
// caller's frame size (plus the marker word itself).
// FP is left pointing at the new top of stack.
func (cpu *Cpu) pushState() (err error) {
	for reg := REG_R1; reg <= REG_R8; reg++ {
		var val uint16
		val, err = cpu.register.Read(reg)
		if err != nil {
			return
		}
		err = cpu.push(val)
		if err != nil {
			return
		}
	}

	ip, err := cpu.register.Read(REG_IP)
	if err != nil {
		return
	}
	err = cpu.push(ip)
	if err != nil {
		return
	}

	err = cpu.push(uint16(cpu.frameSize + 2))
	if err != nil {
		return
	}
	cpu.frameSize = 0

	return cpu.copyRegister(REG_FP, REG_SP)
}

// popState unwinds the call frame at FP.
//
// After the frame, one more word is popped as the count of argument words
// to discard. FP is restored from the frame size recorded by pushState.
func (cpu *Cpu) popState() (err error) {
	fp, err := cpu.register.Read(REG_FP)
	if err != nil {
		return
	}
	err = cpu.register.Write(REG_SP, fp)
	if err != nil {
		return
	}

	marker, err := cpu.pop()
	if err != nil {
		return
	}
	cpu.frameSize = int16(marker)
	frameSize := cpu.frameSize

	ip, err := cpu.pop()
	if err != nil {
		return
	}
	err = cpu.register.Write(REG_IP, ip)
	if err != nil {
		return
	}

	for reg := REG_R8; reg >= REG_R1; reg-- {
		var val uint16
		val, err = cpu.pop()
		if err != nil {
			return
		}
		err = cpu.register.Write(reg, val)
		if err != nil {
			return
		}
	}

	args, err := cpu.pop()
	if err != nil {
		return
	}
	for range args {
		_, err = cpu.pop()
		if err != nil {
			return
		}
	}

	return cpu.register.Write(REG_FP, fp+uint16(frameSize))
}
