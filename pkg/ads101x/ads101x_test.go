package ads101x

import (
	"errors"
	"math"
	"testing"
	"time"
)

// Power-on default config register contents: idle, mux AIN0/AIN1, gain TWO,
// single-shot, 1600 SPS.
const defaultConfig = 0x8583

// newTestADC builds a driver over a fake bus seeded with config, swaps the
// real sleeps for a recorder, and drops the construction-time reads from the
// transaction log.
func newTestADC(t *testing.T, config uint16) (*ADS101x, *fakeBus, func() []time.Duration) {
	t.Helper()
	bus := newFakeBus()
	bus.setRegister(RegConfig, config)

	adc, err := New(bus, DefaultAddr)
	if err != nil {
		t.Fatalf("failed to construct driver: %v", err)
	}

	var naps []time.Duration
	adc.sleep = func(d time.Duration) { naps = append(naps, d) }
	bus.ops = nil

	return adc, bus, func() []time.Duration { return naps }
}

func TestNew(t *testing.T) {
	t.Run("SeedsCache", func(t *testing.T) {
		adc, _, _ := newTestADC(t, defaultConfig)
		if adc.gain != GainTwo {
			t.Errorf("expected cached gain %v, got %v", GainTwo, adc.gain)
		}
		if adc.mux != MuxAIN0AIN1 {
			t.Errorf("expected cached mux %v, got %v", MuxAIN0AIN1, adc.mux)
		}
		if adc.mode != SingleShot {
			t.Errorf("expected cached mode %v, got %v", SingleShot, adc.mode)
		}
	})

	t.Run("TransportFailure", func(t *testing.T) {
		bus := newFakeBus()
		bus.readErr = errors.New("bus fault")
		if _, err := New(bus, DefaultAddr); err == nil {
			t.Error("expected error")
		}
	})
}

func TestVoltageSequencing(t *testing.T) {
	t.Run("SingleShotMuxChange", func(t *testing.T) {
		adc, bus, naps := newTestADC(t, defaultConfig)

		if _, err := adc.Voltage(MuxAIN0GND); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// One mux write, one conversion trigger, no settling delay.
		if n := bus.writes(RegConfig); n != 2 {
			t.Errorf("expected 2 config writes, got %d", n)
		}
		if d := naps(); len(d) != 1 || d[0] != conversionDelay {
			t.Errorf("expected one conversion delay, got %v", d)
		}
		if adc.mux != MuxAIN0GND {
			t.Errorf("expected cached mux %v, got %v", MuxAIN0GND, adc.mux)
		}
	})

	t.Run("SingleShotMuxUnchanged", func(t *testing.T) {
		adc, bus, naps := newTestADC(t, defaultConfig)

		if _, err := adc.Voltage(MuxAIN0AIN1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Only the conversion trigger.
		if n := bus.writes(RegConfig); n != 1 {
			t.Errorf("expected 1 config write, got %d", n)
		}
		if d := naps(); len(d) != 1 || d[0] != conversionDelay {
			t.Errorf("expected one conversion delay, got %v", d)
		}
	})

	t.Run("ContinuousMuxChange", func(t *testing.T) {
		adc, bus, naps := newTestADC(t, defaultConfig&^0x0100)

		if _, err := adc.Voltage(MuxAIN0GND); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// One mux write plus the settling delay, no conversion trigger.
		if n := bus.writes(RegConfig); n != 1 {
			t.Errorf("expected 1 config write, got %d", n)
		}
		if d := naps(); len(d) != 1 || d[0] != settlingDelay {
			t.Errorf("expected one settling delay, got %v", d)
		}
	})

	t.Run("ContinuousMuxUnchanged", func(t *testing.T) {
		adc, bus, naps := newTestADC(t, defaultConfig&^0x0100)

		if _, err := adc.Voltage(MuxAIN0AIN1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if n := bus.writes(RegConfig); n != 0 {
			t.Errorf("expected no config writes, got %d", n)
		}
		if d := naps(); len(d) != 0 {
			t.Errorf("expected no delays, got %v", d)
		}
	})
}

func TestVoltageScaling(t *testing.T) {
	t.Run("GainTwo", func(t *testing.T) {
		adc, bus, _ := newTestADC(t, defaultConfig)
		bus.setRegister(RegConversion, 1024<<4)

		v, err := adc.Voltage(MuxAIN0AIN1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := 1024.0 / 2047.0 * 2.048
		if math.Abs(v-expected) > 0.000001 {
			t.Errorf("expected %f, got %f", expected, v)
		}
	})

	t.Run("NegativeCode", func(t *testing.T) {
		adc, bus, _ := newTestADC(t, defaultConfig)
		bus.setRegister(RegConversion, 0xFFF<<4) // -1

		v, err := adc.Voltage(MuxAIN0AIN1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := -1.0 / 2047.0 * 2.048
		if math.Abs(v-expected) > 0.000001 {
			t.Errorf("expected %f, got %f", expected, v)
		}
	})

	t.Run("UnrecognizedGain", func(t *testing.T) {
		// PGA bits 111 select no defined range; the mapping falls back to 0.
		adc, bus, _ := newTestADC(t, defaultConfig|0x0E00)
		bus.setRegister(RegConversion, 1024<<4)

		v, err := adc.Voltage(MuxAIN0AIN1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 0.0 {
			t.Errorf("expected 0.0, got %f", v)
		}
	})
}

func TestFailedWriteKeepsCache(t *testing.T) {
	errBus := errors.New("bus fault")

	t.Run("SetMux", func(t *testing.T) {
		adc, bus, _ := newTestADC(t, defaultConfig)
		bus.writeErr = errBus

		if err := adc.SetMux(MuxAIN3GND); !errors.Is(err, errBus) {
			t.Fatalf("expected wrapped bus fault, got %v", err)
		}
		if adc.mux != MuxAIN0AIN1 {
			t.Errorf("cached mux changed after failed write: %v", adc.mux)
		}
	})

	t.Run("Voltage", func(t *testing.T) {
		adc, bus, _ := newTestADC(t, defaultConfig)
		bus.writeErr = errBus

		if _, err := adc.Voltage(MuxAIN3GND); !errors.Is(err, errBus) {
			t.Fatalf("expected wrapped bus fault, got %v", err)
		}
		if adc.mux != MuxAIN0AIN1 {
			t.Errorf("cached mux changed after failed write: %v", adc.mux)
		}
	})
}

func TestAccessors(t *testing.T) {
	t.Run("SetGain", func(t *testing.T) {
		adc, bus, _ := newTestADC(t, defaultConfig)
		if err := adc.SetGain(GainSixteen); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if adc.gain != GainSixteen {
			t.Errorf("expected cached gain %v, got %v", GainSixteen, adc.gain)
		}
		if got := bus.register(RegConfig) >> 9 & 0x7; got != uint16(GainSixteen) {
			t.Errorf("expected gain bits %d, got %d", GainSixteen, got)
		}
	})

	t.Run("GainRefreshesCache", func(t *testing.T) {
		adc, bus, _ := newTestADC(t, defaultConfig)
		// Another master changed the register behind our back.
		bus.setRegister(RegConfig, defaultConfig&^0x0E00|uint16(GainOne)<<9)

		g, err := adc.Gain()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g != GainOne || adc.gain != GainOne {
			t.Errorf("expected %v, got %v (cache %v)", GainOne, g, adc.gain)
		}
	})

	t.Run("DataRate", func(t *testing.T) {
		adc, _, _ := newTestADC(t, defaultConfig)
		if err := adc.SetDataRate(SPS250); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		dr, err := adc.DataRate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dr != SPS250 {
			t.Errorf("expected %v, got %v", SPS250, dr)
		}
	})

	t.Run("ComparatorQueue", func(t *testing.T) {
		adc, _, _ := newTestADC(t, defaultConfig)
		if err := adc.SetComparatorQueue(1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		q, err := adc.ComparatorQueue()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q != 1 {
			t.Errorf("expected 1, got %d", q)
		}
	})
}

func TestConfigure(t *testing.T) {
	adc, bus, _ := newTestADC(t, defaultConfig)

	err := adc.Configure(Config{Gain: GainOne, Mode: Continuous, DataRate: SPS250})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := bus.register(RegConfig); got != 0x8223 {
		t.Errorf("expected config register 0x8223, got 0x%04X", got)
	}
	if adc.gain != GainOne || adc.mode != Continuous {
		t.Errorf("cache not updated: gain %v, mode %v", adc.gain, adc.mode)
	}
}

func TestRegisters(t *testing.T) {
	adc, _, _ := newTestADC(t, defaultConfig)

	regs, err := adc.Registers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regs) != 10 {
		t.Errorf("expected 10 fields, got %d", len(regs))
	}
	if regs["gain"] != int64(GainTwo) {
		t.Errorf("expected gain %d, got %d", GainTwo, regs["gain"])
	}
	if regs["mode"] != int64(SingleShot) {
		t.Errorf("expected mode %d, got %d", SingleShot, regs["mode"])
	}
	if regs["conversion_result"] != 0 {
		t.Errorf("expected conversion result 0, got %d", regs["conversion_result"])
	}
}
