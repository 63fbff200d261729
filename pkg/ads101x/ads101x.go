package ads101x

import (
	"fmt"
	"time"
)

const (
	// settlingDelay is the wait after an input path change in continuous
	// mode, so the analog front end settles before the next result is used.
	settlingDelay = 15 * time.Millisecond

	// conversionDelay is the wait for a triggered single-shot conversion to
	// complete.
	conversionDelay = 10 * time.Millisecond
)

// ADS101x provides high-level control over a TI ADS101x 12-bit ADC on an I2C
// bus.
//
// Every operation is a blocking sequence of bus transactions, some with real
// time delays in between. The device is treated as exclusively owned: field
// writes are read-modify-write on shared register state, so callers sharing
// one physical device must serialize all access externally.
type ADS101x struct {
	bus  Bus
	addr byte

	// Selector state, seeded from hardware at construction and refreshed on
	// every successful accessor write. The cache avoids redundant mux
	// rewrites and decides conversion timing without re-reading the device.
	gain Gain
	mux  Mux
	mode Mode

	sleep func(time.Duration)
}

// New probes the device at addr and returns a driver with its selector cache
// seeded from the current register contents.
func New(bus Bus, addr byte) (*ADS101x, error) {
	adc := &ADS101x{
		bus:   bus,
		addr:  addr,
		sleep: time.Sleep,
	}

	gain, err := fieldGain.Read(bus, addr)
	if err != nil {
		return nil, fmt.Errorf("probe gain: %w", err)
	}
	mux, err := fieldMux.Read(bus, addr)
	if err != nil {
		return nil, fmt.Errorf("probe mux: %w", err)
	}
	mode, err := fieldMode.Read(bus, addr)
	if err != nil {
		return nil, fmt.Errorf("probe mode: %w", err)
	}

	adc.gain = Gain(gain)
	adc.mux = Mux(mux)
	adc.mode = Mode(mode)
	return adc, nil
}

// Config represents user-level configuration parameters.
type Config struct {
	Gain     Gain
	Mode     Mode
	DataRate DataRate
}

// DefaultConfig matches the device's power-on defaults, except the mux which
// Voltage manages per call.
func DefaultConfig() Config {
	return Config{
		Gain:     GainTwo,
		Mode:     SingleShot,
		DataRate: SPS1600,
	}
}

// Configure applies cfg to the device. Call it once at start-up.
func (adc *ADS101x) Configure(cfg Config) error {
	if err := adc.SetMode(cfg.Mode); err != nil {
		return err
	}
	if err := adc.SetGain(cfg.Gain); err != nil {
		return err
	}
	return adc.SetDataRate(cfg.DataRate)
}

// Gain reads the PGA setting from the device and refreshes the cache.
func (adc *ADS101x) Gain() (Gain, error) {
	v, err := fieldGain.Read(adc.bus, adc.addr)
	if err != nil {
		return 0, err
	}
	adc.gain = Gain(v)
	return adc.gain, nil
}

// SetGain writes the PGA setting. The cache is updated only after the write
// succeeds.
func (adc *ADS101x) SetGain(g Gain) error {
	if err := fieldGain.Write(adc.bus, adc.addr, int64(g)); err != nil {
		return err
	}
	adc.gain = g
	return nil
}

// Mux reads the input multiplexer selection from the device and refreshes the
// cache.
func (adc *ADS101x) Mux() (Mux, error) {
	v, err := fieldMux.Read(adc.bus, adc.addr)
	if err != nil {
		return 0, err
	}
	adc.mux = Mux(v)
	return adc.mux, nil
}

// SetMux writes the input multiplexer selection. The cache is updated only
// after the write succeeds.
func (adc *ADS101x) SetMux(m Mux) error {
	if err := fieldMux.Write(adc.bus, adc.addr, int64(m)); err != nil {
		return err
	}
	adc.mux = m
	return nil
}

// Mode reads the operating mode from the device and refreshes the cache.
func (adc *ADS101x) Mode() (Mode, error) {
	v, err := fieldMode.Read(adc.bus, adc.addr)
	if err != nil {
		return 0, err
	}
	adc.mode = Mode(v)
	return adc.mode, nil
}

// SetMode writes the operating mode. The cache is updated only after the
// write succeeds.
func (adc *ADS101x) SetMode(m Mode) error {
	if err := fieldMode.Write(adc.bus, adc.addr, int64(m)); err != nil {
		return err
	}
	adc.mode = m
	return nil
}

// DataRate reads the conversion rate setting.
func (adc *ADS101x) DataRate() (DataRate, error) {
	v, err := fieldDataRate.Read(adc.bus, adc.addr)
	return DataRate(v), err
}

// SetDataRate writes the conversion rate setting. The rate is passed through
// uninterpreted; conversion timing does not depend on it.
func (adc *ADS101x) SetDataRate(dr DataRate) error {
	return fieldDataRate.Write(adc.bus, adc.addr, int64(dr))
}

// OperationStatus reads the operational status bit. In single-shot mode a 1
// means the device is idle and a conversion can be triggered.
func (adc *ADS101x) OperationStatus() (int64, error) {
	return fieldOperationStatus.Read(adc.bus, adc.addr)
}

// Comparator field accessors. The driver stores these values uninterpreted;
// alert pin behavior is outside its scope.

func (adc *ADS101x) ComparatorMode() (int64, error) {
	return fieldCompMode.Read(adc.bus, adc.addr)
}

func (adc *ADS101x) SetComparatorMode(v int64) error {
	return fieldCompMode.Write(adc.bus, adc.addr, v)
}

func (adc *ADS101x) ComparatorPolarity() (int64, error) {
	return fieldCompPolarity.Read(adc.bus, adc.addr)
}

func (adc *ADS101x) SetComparatorPolarity(v int64) error {
	return fieldCompPolarity.Write(adc.bus, adc.addr, v)
}

func (adc *ADS101x) ComparatorLatching() (int64, error) {
	return fieldCompLatching.Read(adc.bus, adc.addr)
}

func (adc *ADS101x) SetComparatorLatching(v int64) error {
	return fieldCompLatching.Write(adc.bus, adc.addr, v)
}

func (adc *ADS101x) ComparatorQueue() (int64, error) {
	return fieldCompQueue.Read(adc.bus, adc.addr)
}

func (adc *ADS101x) SetComparatorQueue(v int64) error {
	return fieldCompQueue.Write(adc.bus, adc.addr, v)
}

// Registers reads every named field, which can be handy for debug.
func (adc *ADS101x) Registers() (map[string]int64, error) {
	fields := map[string]Field{
		"operation_status":    fieldOperationStatus,
		"mux":                 fieldMux,
		"gain":                fieldGain,
		"mode":                fieldMode,
		"data_rate":           fieldDataRate,
		"comparator_mode":     fieldCompMode,
		"comparator_polarity": fieldCompPolarity,
		"comparator_latching": fieldCompLatching,
		"comparator_queue":    fieldCompQueue,
		"conversion_result":   fieldConversion,
	}

	out := make(map[string]int64, len(fields))
	for name, f := range fields {
		v, err := f.Read(adc.bus, adc.addr)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// Voltage routes channel to the converter, triggers a conversion when the
// operating mode requires one, and returns the calibrated input voltage.
//
// Any transport failure aborts the read; the cache keeps the state of the
// last successful write.
func (adc *ADS101x) Voltage(channel Mux) (float64, error) {
	if channel != adc.mux {
		if err := adc.SetMux(channel); err != nil {
			return 0, err
		}
		// In continuous mode the analog front end needs time to settle
		// after an input path change. A single-shot trigger below forces
		// a fresh conversion anyway, so the wait only matters here.
		if adc.mode == Continuous {
			adc.sleep(settlingDelay)
		}
	}

	if adc.mode == SingleShot {
		if err := fieldOperationStatus.Write(adc.bus, adc.addr, 1); err != nil {
			return 0, err
		}
		adc.sleep(conversionDelay)
	}

	res, err := fieldConversion.Read(adc.bus, adc.addr)
	if err != nil {
		return 0, err
	}
	return float64(res) / 2047.0 * adc.gain.FullScale(), nil
}
