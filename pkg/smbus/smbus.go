// Package smbus adapts a periph.io I2C bus to the block read/write transport
// the ads101x driver expects.
package smbus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Bus is an SMBus-style view of one I2C bus: block reads and writes addressed
// by device and register. It satisfies the ads101x.Bus interface.
type Bus struct {
	bus  i2c.BusCloser
	name string
}

// Open initializes the host drivers and opens the named I2C bus. An empty
// name opens the first available bus.
func Open(name string) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initialize host drivers: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}
	return &Bus{bus: bus, name: name}, nil
}

// ReadBlock reads count bytes from register reg of the device at addr, as a
// single write-register-then-read combined transaction.
func (b *Bus) ReadBlock(addr byte, reg byte, count int) ([]byte, error) {
	buf := make([]byte, count)
	if err := b.bus.Tx(uint16(addr), []byte{reg}, buf); err != nil {
		return nil, fmt.Errorf("i2c read %d bytes at 0x%02X/0x%02X: %w", count, addr, reg, err)
	}
	return buf, nil
}

// WriteBlock writes data to register reg of the device at addr in a single
// transaction.
func (b *Bus) WriteBlock(addr byte, reg byte, data []byte) error {
	out := make([]byte, 0, len(data)+1)
	out = append(out, reg)
	out = append(out, data...)
	if err := b.bus.Tx(uint16(addr), out, nil); err != nil {
		return fmt.Errorf("i2c write %d bytes at 0x%02X/0x%02X: %w", len(data), addr, reg, err)
	}
	return nil
}

func (b *Bus) String() string {
	return b.bus.String()
}

// Close releases the underlying bus.
func (b *Bus) Close() error {
	return b.bus.Close()
}
