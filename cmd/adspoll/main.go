package main

import (
	"flag"
	"os"
	"time"

	"github.com/kueda12048/ads101x-smbus/pkg/ads101x"
	"github.com/kueda12048/ads101x-smbus/pkg/smbus"
	"github.com/l0nax/go-spew/spew"
	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	log = zerolog.New(cw).With().Timestamp().Logger()
}

func flags() (bus string, addr uint, gain uint, rate uint, continuous bool, interval time.Duration) {
	bn := flag.String("bus", "", "I2C bus name or number (empty = first available)")
	ad := flag.Uint("addr", ads101x.DefaultAddr, "7-bit device address")
	gn := flag.Uint("gain", uint(ads101x.GainTwoThirds), "PGA setting (0-5)")
	dr := flag.Uint("rate", uint(ads101x.SPS1600), "data rate setting (0-6)")
	cm := flag.Bool("continuous", false, "continuous conversion mode instead of single-shot")
	iv := flag.Duration("interval", time.Second, "poll interval")
	flag.Parse()
	return *bn, *ad, *gn, *dr, *cm, *iv
}

func main() {
	busName, addr, gain, rate, continuous, interval := flags()

	bus, err := smbus.Open(busName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open I2C bus")
	}
	defer func() {
		if err := bus.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close I2C bus")
		}
	}()

	log.Info().Str("bus", bus.String()).Msg("opened I2C bus")

	adc, err := ads101x.New(bus, byte(addr))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to probe ADS101x")
	}

	cfg := ads101x.DefaultConfig()
	cfg.Gain = ads101x.Gain(gain)
	cfg.DataRate = ads101x.DataRate(rate)
	if continuous {
		cfg.Mode = ads101x.Continuous
	}

	log.Debug().Any("config", cfg).Msg("configuring ADS101x")
	if err = adc.Configure(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to configure ADS101x")
	}

	regs, err := adc.Registers()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read ADS101x registers")
	}
	spew.Dump(regs)

	channels := []ads101x.Mux{
		ads101x.MuxAIN0GND,
		ads101x.MuxAIN1GND,
		ads101x.MuxAIN2GND,
		ads101x.MuxAIN3GND,
	}

	for {
		for _, ch := range channels {
			v, err := adc.Voltage(ch)
			if err != nil {
				log.Fatal().Err(err).Str("channel", ch.String()).Msg("failed to read voltage")
			}
			log.Info().Str("channel", ch.String()).Float64("voltage", v).Msg("sample")
		}
		time.Sleep(interval)
	}
}
