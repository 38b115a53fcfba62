// Package pinmap maps the board's logical pin names to physical GPIO
// numbers. It is static data for the ESP32 module pinout: the gpio core
// receives the resolved number and never looks back into this table.
//
// Several names alias the same GPIO (the ESP32 muxes ADC, touch, RTC and bus
// functions onto the numbered pads); the table records the aliases so a
// config can speak in whichever role the wiring diagram uses.
package pinmap

import "gpiokit/x/mathx"

// NoPin marks a disabled or unconnected line.
const NoPin = -1

// Upper header pins.
const (
	D13 = 13
	D12 = 12
	D14 = 14
	D27 = 27
	D26 = 26
	D25 = 25
	D33 = 33
	D32 = 32
	D35 = 35
	D34 = 34
)

// Lower header pins.
const (
	D15 = 15
	D4  = 4
	D5  = 5
	D18 = 18
	D19 = 19
	D21 = 21
	D22 = 22
	D23 = 23
)

// BuiltinLED is the on-module LED.
const BuiltinLED = 2

// UART pins.
const (
	RX0 = 3
	TX0 = 1
	RX2 = 16
	TX2 = 17
)

// I2C pins.
const (
	SDA = 21
	SCL = 22
)

// VSPI pins.
const (
	VSPIMISO = 19
	VSPIMOSI = 23
	VSPICLK  = 18
	VSPICS   = 5
)

// HSPI pins.
const (
	HSPIMISO = 12
	HSPIMOSI = 13
	HSPICLK  = 14
	HSPICS   = 15
)

// Default SPI role aliases (wired to VSPI).
const (
	SPIMOSI = 23
	SPIMISO = 19
	SPISCK  = 18
	SPICS   = 5
)

// ADC channel pads.
const (
	ADC1Ch0 = 36
	ADC1Ch3 = 39
	ADC1Ch4 = 32
	ADC1Ch5 = 33
	ADC1Ch6 = 34
	ADC1Ch7 = 35
	ADC2Ch0 = 4
	ADC2Ch2 = 2
	ADC2Ch3 = 15
	ADC2Ch4 = 13
	ADC2Ch5 = 12
	ADC2Ch6 = 14
	ADC2Ch7 = 27
	ADC2Ch8 = 25
	ADC2Ch9 = 26
)

// DAC pads.
const (
	DAC1 = 25
	DAC2 = 26
)

// Touch sensor pads.
const (
	Touch0 = 4
	Touch2 = 2
	Touch3 = 15
	Touch4 = 13
	Touch5 = 12
	Touch6 = 14
	Touch7 = 27
	Touch8 = 33
	Touch9 = 32
)

// RTC-domain pads.
const (
	RTC0  = 36
	RTC3  = 39
	RTC4  = 34
	RTC5  = 35
	RTC6  = 25
	RTC7  = 26
	RTC8  = 33
	RTC9  = 32
	RTC10 = 4
	RTC12 = 2
	RTC13 = 15
	RTC14 = 13
	RTC15 = 12
	RTC16 = 14
	RTC17 = 27
)

// Strapping pins sampled at reset; drive with care.
const (
	Strap1 = 12
	Strap2 = 5
	Strap3 = 2
	Strap4 = 15
)

var byName = map[string]int{
	"D13": D13, "D12": D12, "D14": D14, "D27": D27, "D26": D26,
	"D25": D25, "D33": D33, "D32": D32, "D35": D35, "D34": D34,
	"D15": D15, "D4": D4, "D5": D5, "D18": D18, "D19": D19,
	"D21": D21, "D22": D22, "D23": D23,

	"BUILTIN_LED": BuiltinLED,

	"RX0": RX0, "TX0": TX0, "RX2": RX2, "TX2": TX2,

	"SDA": SDA, "SCL": SCL,

	"VSPI_MISO": VSPIMISO, "VSPI_MOSI": VSPIMOSI, "VSPI_CLK": VSPICLK, "VSPI_CS": VSPICS,
	"HSPI_MISO": HSPIMISO, "HSPI_MOSI": HSPIMOSI, "HSPI_CLK": HSPICLK, "HSPI_CS": HSPICS,
	"SPI_MOSI": SPIMOSI, "SPI_MISO": SPIMISO, "SPI_SCK": SPISCK, "SPI_CS": SPICS,

	"ADC1_CH0": ADC1Ch0, "ADC1_CH3": ADC1Ch3, "ADC1_CH4": ADC1Ch4,
	"ADC1_CH5": ADC1Ch5, "ADC1_CH6": ADC1Ch6, "ADC1_CH7": ADC1Ch7,
	"ADC2_CH0": ADC2Ch0, "ADC2_CH2": ADC2Ch2, "ADC2_CH3": ADC2Ch3,
	"ADC2_CH4": ADC2Ch4, "ADC2_CH5": ADC2Ch5, "ADC2_CH6": ADC2Ch6,
	"ADC2_CH7": ADC2Ch7, "ADC2_CH8": ADC2Ch8, "ADC2_CH9": ADC2Ch9,

	"DAC1": DAC1, "DAC2": DAC2,

	"TOUCH0": Touch0, "TOUCH2": Touch2, "TOUCH3": Touch3, "TOUCH4": Touch4,
	"TOUCH5": Touch5, "TOUCH6": Touch6, "TOUCH7": Touch7, "TOUCH8": Touch8,
	"TOUCH9": Touch9,

	"RTC_0": RTC0, "RTC_3": RTC3, "RTC_4": RTC4, "RTC_5": RTC5,
	"RTC_6": RTC6, "RTC_7": RTC7, "RTC_8": RTC8, "RTC_9": RTC9,
	"RTC_10": RTC10, "RTC_12": RTC12, "RTC_13": RTC13, "RTC_14": RTC14,
	"RTC_15": RTC15, "RTC_16": RTC16, "RTC_17": RTC17,

	"STRAP1": Strap1, "STRAP2": Strap2, "STRAP3": Strap3, "STRAP4": Strap4,
}

// ByName resolves a logical pin name to its GPIO number.
func ByName(name string) (int, bool) {
	n, ok := byName[name]
	return n, ok
}

// Valid reports whether n is inside the SoC's GPIO range.
func Valid(n int) bool {
	return mathx.Between(n, 0, 39)
}
