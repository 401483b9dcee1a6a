package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFile_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	rf := NewRegisterFile()

	for reg := range Registers() {
		val, err := rf.Read(reg)
		assert.NoError(err)
		assert.Equal(uint16(0), val, reg.String())
	}

	for reg := range Registers() {
		for _, value := range []uint16{0, 1, 0x1234, 0xFF01, 0xF801, 0xFFFF} {
			assert.NoError(rf.Write(reg, value))
			val, err := rf.Read(reg)
			assert.NoError(err)
			assert.Equal(value, val, reg.String())
		}
	}
}

func TestRegisterFile_Independent(t *testing.T) {
	assert := assert.New(t)

	rf := NewRegisterFile()
	assert.NoError(rf.Write(REG_R1, 0x1234))
	assert.NoError(rf.Write(REG_R2, 0xFF01))

	val, _ := rf.Read(REG_R1)
	assert.Equal(uint16(0x1234), val)
	val, _ = rf.Read(REG_R2)
	assert.Equal(uint16(0xFF01), val)

	assert.NoError(rf.Write(REG_R1, 0xF801))
	val, _ = rf.Read(REG_R1)
	assert.Equal(uint16(0xF801), val)
	val, _ = rf.Read(REG_R2)
	assert.Equal(uint16(0xFF01), val)
}

func TestRegisterFile_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	rf := NewRegisterFile()

	for _, reg := range []Register{REGISTER_COUNT, 0x20, 0xFF} {
		_, err := rf.Read(reg)
		assert.ErrorIs(err, ErrAddressOutOfRange)

		err = rf.Write(reg, 1)
		assert.ErrorIs(err, ErrAddressOutOfRange)

		var er ErrRegister
		assert.True(errors.As(err, &er))
		assert.Equal(ErrRegister(reg), er)
	}
}

func TestRegister_Encoding(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		reg   Register
		value uint8
		name  string
	}){
		{REG_IP, 0x00, "ip"},
		{REG_ACC, 0x01, "acc"},
		{REG_R1, 0x02, "r1"},
		{REG_R2, 0x03, "r2"},
		{REG_R3, 0x04, "r3"},
		{REG_R4, 0x05, "r4"},
		{REG_R5, 0x06, "r5"},
		{REG_R6, 0x07, "r6"},
		{REG_R7, 0x08, "r7"},
		{REG_R8, 0x09, "r8"},
		{REG_SP, 0x0A, "sp"},
		{REG_FP, 0x0B, "fp"},
	}

	for _, entry := range table {
		assert.Equal(entry.value, uint8(entry.reg))
		assert.Equal(entry.name, entry.reg.String())
		assert.True(entry.reg.Valid())
	}

	assert.False(Register(12).Valid())
	assert.Equal("Register(12)", Register(12).String())
}

func TestParseRegister(t *testing.T) {
	assert := assert.New(t)

	reg, err := ParseRegister("acc")
	assert.NoError(err)
	assert.Equal(REG_ACC, reg)

	reg, err = ParseRegister("SP")
	assert.NoError(err)
	assert.Equal(REG_SP, reg)

	_, err = ParseRegister("r9")
	assert.ErrorIs(err, ErrRegisterUnknown)
	assert.Equal(ErrRegisterName("r9"), err)
}
