package memory

// Bank is a fixed length, byte addressable memory.
type Bank struct {
	data []byte
}

// NewBank creates a zeroed bank of size bytes.
func NewBank(size uint16) (bank *Bank) {
	bank = &Bank{
		data: make([]byte, size),
	}

	return
}

// Len returns the size of the bank in bytes.
func (bank *Bank) Len() int {
	return len(bank.data)
}

// check verifies that width bytes starting at addr are inside the bank.
func (bank *Bank) check(op string, addr uint16, width int) (err error) {
	if int(addr)+width > len(bank.data) {
		err = ErrAddress{Op: op, Address: int(addr), Length: len(bank.data)}
	}
	return
}

// ReadU8 reads the byte at addr.
func (bank *Bank) ReadU8(addr uint16) (value uint8, err error) {
	err = bank.check("read_u8", addr, 1)
	if err != nil {
		return
	}

	value = bank.data[addr]
	return
}

// WriteU8 writes the byte at addr.
func (bank *Bank) WriteU8(addr uint16, value uint8) (err error) {
	err = bank.check("write_u8", addr, 1)
	if err != nil {
		return
	}

	bank.data[addr] = value
	return
}

// ReadU16 reads the big-endian word at addr.
func (bank *Bank) ReadU16(addr uint16) (value uint16, err error) {
	err = bank.check("read_u16", addr, 2)
	if err != nil {
		return
	}

	value = Combine(bank.data[addr], bank.data[int(addr)+1])
	return
}

// WriteU16 writes the big-endian word at addr.
func (bank *Bank) WriteU16(addr uint16, value uint16) (err error) {
	err = bank.check("write_u16", addr, 2)
	if err != nil {
		return
	}

	bank.data[addr], bank.data[int(addr)+1] = Split(value)
	return
}

// Load copies data into the bank starting at offset.
// Nothing is written if any part of data would fall outside of the bank.
func (bank *Bank) Load(offset uint16, data []byte) (err error) {
	if int(offset)+len(data) > len(bank.data) {
		err = ErrAddress{Op: "load", Address: int(offset), Length: len(bank.data)}
		return
	}

	copy(bank.data[offset:], data)
	return
}
