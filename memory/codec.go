package memory

// Combine joins a high and a low byte into a big-endian word.
func Combine(hi, lo uint8) uint16 {
	return (uint16(hi) << 8) | uint16(lo)
}

// Split divides a word into its high and low bytes.
func Split(word uint16) (hi, lo uint8) {
	hi = uint8((word >> 8) & 0xff)
	lo = uint8(word & 0xff)
	return
}
