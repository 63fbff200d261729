package ads101x

import (
	"fmt"
	"io"
)

// Bus is the byte-oriented transport the driver runs on. Implementations are
// expected to perform a single combined transaction per call; the driver never
// retries, so a failed call surfaces immediately.
//
// [github.com/kueda12048/ads101x-smbus/pkg/smbus] provides a Linux
// implementation.
type Bus interface {
	// ReadBlock reads count bytes from register reg of the device at addr.
	ReadBlock(addr byte, reg byte, count int) ([]byte, error)

	// WriteBlock writes data to register reg of the device at addr.
	WriteBlock(addr byte, reg byte, data []byte) error
}

// Field describes one bit field inside a multi-byte device register: which
// register it lives in, how many bytes that register transfers as (MSB first),
// and which bits belong to the field. Signed fields decode as two's complement
// restricted to the field width.
type Field struct {
	reg      byte
	width    int
	numBits  int
	lowBit   int
	mask     uint64
	signed   bool
	readOnly bool
}

// NewField builds a field descriptor and validates its geometry. The field
// must hold at least one bit and lie entirely within the register.
func NewField(reg byte, width, numBits, lowBit int, signed bool) (Field, error) {
	if numBits < 1 {
		return Field{}, fmt.Errorf("%w: need at least one bit, got %d", ErrFieldGeometry, numBits)
	}
	if width < 1 || width > 4 {
		return Field{}, fmt.Errorf("%w: unsupported register width %d", ErrFieldGeometry, width)
	}
	if lowBit < 0 || lowBit+numBits > width*8 {
		return Field{}, fmt.Errorf("%w: bits [%d,%d) exceed a %d-byte register",
			ErrFieldGeometry, lowBit, lowBit+numBits, width)
	}
	return Field{
		reg:     reg,
		width:   width,
		numBits: numBits,
		lowBit:  lowBit,
		mask:    (uint64(1)<<numBits - 1) << lowBit,
		signed:  signed,
	}, nil
}

// NewROField is NewField for fields that reject writes.
func NewROField(reg byte, width, numBits, lowBit int, signed bool) (Field, error) {
	f, err := NewField(reg, width, numBits, lowBit, signed)
	f.readOnly = true
	return f, err
}

// mustField is for the static register map, whose geometry is constant.
func mustField(f Field, err error) Field {
	if err != nil {
		panic(err)
	}
	return f
}

// assemble reassembles register bytes into an unsigned value, MSB first.
func (f Field) assemble(data []byte) uint64 {
	var val uint64
	for i, b := range data {
		val |= uint64(b) << ((f.width - 1 - i) * 8)
	}
	return val
}

// Read fetches the register in one block read and extracts the field value.
// Device state is not mutated.
func (f Field) Read(bus Bus, addr byte) (int64, error) {
	data, err := bus.ReadBlock(addr, f.reg, f.width)
	if err != nil {
		return 0, fmt.Errorf("read register 0x%02X: %w", f.reg, err)
	}
	if len(data) != f.width {
		return 0, fmt.Errorf("%w: register 0x%02X: expected %d bytes, got %d",
			io.ErrUnexpectedEOF, f.reg, f.width, len(data))
	}

	raw := (f.assemble(data) & f.mask) >> f.lowBit
	if f.signed && raw&(1<<(f.numBits-1)) != 0 {
		// Two's complement restricted to numBits bits.
		return -int64((^raw & ((1 << f.numBits) - 1)) + 1), nil
	}
	return int64(raw), nil
}

// Write sets the field to value, preserving the register's other bits via a
// read-modify-write. The sequence is not atomic with respect to concurrent
// writers of the same register; callers must serialize device access.
//
// Values that do not fit in the field width are rejected rather than masked.
func (f Field) Write(bus Bus, addr byte, value int64) error {
	if f.readOnly {
		return fmt.Errorf("write register 0x%02X: %w", f.reg, ErrReadOnly)
	}
	if value < 0 || value >= 1<<f.numBits {
		return fmt.Errorf("%w: %d does not fit in %d bits", ErrValueRange, value, f.numBits)
	}

	data, err := bus.ReadBlock(addr, f.reg, f.width)
	if err != nil {
		return fmt.Errorf("read register 0x%02X: %w", f.reg, err)
	}
	if len(data) != f.width {
		return fmt.Errorf("%w: register 0x%02X: expected %d bytes, got %d",
			io.ErrUnexpectedEOF, f.reg, f.width, len(data))
	}

	val := f.assemble(data)
	val &^= f.mask
	val |= uint64(value) << f.lowBit

	out := make([]byte, f.width)
	for i := range out {
		out[i] = byte(val >> ((f.width - 1 - i) * 8))
	}
	if err := bus.WriteBlock(addr, f.reg, out); err != nil {
		return fmt.Errorf("write register 0x%02X: %w", f.reg, err)
	}
	return nil
}
