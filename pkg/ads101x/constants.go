package ads101x

// Constants from the datasheet

// Register addresses
const (
	// RegConversion holds the last conversion result.
	RegConversion = 0x00
	// RegConfig is the configuration register.
	RegConfig = 0x01
	// RegLoThresh is the comparator low threshold (reserved, unused here).
	RegLoThresh = 0x02
	// RegHiThresh is the comparator high threshold (reserved, unused here).
	RegHiThresh = 0x03
)

// 7-bit device addresses, selected by the ADDR pin strap.
const (
	AddrGND = 0x48
	AddrVDD = 0x49
	AddrSDA = 0x4A
	AddrSCL = 0x4B

	// DefaultAddr is the address with ADDR tied to ground.
	DefaultAddr = AddrGND
)

// Mux selects which analog input pair is routed to the converter.
type Mux byte

const (
	MuxAIN0AIN1 Mux = 0x0 // differential, P = AIN0, N = AIN1 (default)
	MuxAIN0AIN3 Mux = 0x1 // differential, P = AIN0, N = AIN3
	MuxAIN1AIN3 Mux = 0x2 // differential, P = AIN1, N = AIN3
	MuxAIN2AIN3 Mux = 0x3 // differential, P = AIN2, N = AIN3
	MuxAIN0GND  Mux = 0x4 // single-ended, AIN0
	MuxAIN1GND  Mux = 0x5 // single-ended, AIN1
	MuxAIN2GND  Mux = 0x6 // single-ended, AIN2
	MuxAIN3GND  Mux = 0x7 // single-ended, AIN3
)

func (m Mux) String() string {
	switch m {
	case MuxAIN0AIN1:
		return "AIN0_AIN1"
	case MuxAIN0AIN3:
		return "AIN0_AIN3"
	case MuxAIN1AIN3:
		return "AIN1_AIN3"
	case MuxAIN2AIN3:
		return "AIN2_AIN3"
	case MuxAIN0GND:
		return "AIN0_GND"
	case MuxAIN1GND:
		return "AIN1_GND"
	case MuxAIN2GND:
		return "AIN2_GND"
	case MuxAIN3GND:
		return "AIN3_GND"
	default:
		return "(invalid mux)"
	}
}

// Gain is the PGA setting, selecting the input full-scale voltage range.
//
// Values are the raw 3-bit field codes, not the pre-shifted whole-register
// masks some datasheet tables list.
type Gain byte

const (
	GainTwoThirds Gain = 0x0 // +/- 6.144V
	GainOne       Gain = 0x1 // +/- 4.096V
	GainTwo       Gain = 0x2 // +/- 2.048V (default)
	GainFour      Gain = 0x3 // +/- 1.024V
	GainEight     Gain = 0x4 // +/- 0.512V
	GainSixteen   Gain = 0x5 // +/- 0.256V
)

// FullScale returns the full-scale input voltage for the gain setting.
// Unrecognized settings map to 0, not an error.
func (g Gain) FullScale() float64 {
	switch g {
	case GainTwoThirds:
		return 6.144
	case GainOne:
		return 4.096
	case GainTwo:
		return 2.048
	case GainFour:
		return 1.024
	case GainEight:
		return 0.512
	case GainSixteen:
		return 0.256
	default:
		return 0
	}
}

func (g Gain) String() string {
	switch g {
	case GainTwoThirds:
		return "2/3x (+/-6.144V)"
	case GainOne:
		return "1x (+/-4.096V)"
	case GainTwo:
		return "2x (+/-2.048V)"
	case GainFour:
		return "4x (+/-1.024V)"
	case GainEight:
		return "8x (+/-0.512V)"
	case GainSixteen:
		return "16x (+/-0.256V)"
	default:
		return "(invalid gain)"
	}
}

// Mode is the conversion operating mode.
type Mode byte

const (
	// Continuous converts back to back without being triggered.
	Continuous Mode = 0x0
	// SingleShot powers down after each conversion; every reading must be
	// triggered through the operational status bit.
	SingleShot Mode = 0x1
)

func (m Mode) String() string {
	switch m {
	case Continuous:
		return "continuous"
	case SingleShot:
		return "single-shot"
	default:
		return "(invalid mode)"
	}
}

// DataRate is the conversion rate setting.
type DataRate byte

const (
	SPS128 DataRate = iota
	SPS250
	SPS490
	SPS920
	SPS1600 // default
	SPS2400
	SPS3300
)

func (dr DataRate) String() string {
	switch dr {
	case SPS128:
		return "128 SPS"
	case SPS250:
		return "250 SPS"
	case SPS490:
		return "490 SPS"
	case SPS920:
		return "920 SPS"
	case SPS1600:
		return "1600 SPS"
	case SPS2400:
		return "2400 SPS"
	case SPS3300:
		return "3300 SPS"
	default:
		return "(invalid data rate)"
	}
}

// The device's register map. All fields are two bytes wide, MSB first; the
// conversion result is a signed 12-bit code left-justified to bit 4.
var (
	fieldOperationStatus = mustField(NewField(RegConfig, 2, 1, 15, false))
	fieldMux             = mustField(NewField(RegConfig, 2, 3, 12, false))
	fieldGain            = mustField(NewField(RegConfig, 2, 3, 9, false))
	fieldMode            = mustField(NewField(RegConfig, 2, 1, 8, false))
	fieldDataRate        = mustField(NewField(RegConfig, 2, 3, 5, false))
	fieldCompMode        = mustField(NewField(RegConfig, 2, 1, 4, false))
	fieldCompPolarity    = mustField(NewField(RegConfig, 2, 1, 3, false))
	fieldCompLatching    = mustField(NewField(RegConfig, 2, 1, 2, false))
	fieldCompQueue       = mustField(NewField(RegConfig, 2, 2, 0, false))

	fieldConversion = mustField(NewROField(RegConversion, 2, 12, 4, true))
)
