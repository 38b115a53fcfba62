package pinmap

import "testing"

func TestByName(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		{"D13", 13},
		{"BUILTIN_LED", 2},
		{"SDA", 21},
		{"SCL", 22},
		{"VSPI_CS", 5},
		{"ADC1_CH0", 36},
		{"RTC_17", 27},
	}
	for _, tc := range cases {
		got, ok := ByName(tc.name)
		if !ok || got != tc.want {
			t.Fatalf("ByName(%q): want %d, got %d ok=%v", tc.name, tc.want, got, ok)
		}
	}
	if _, ok := ByName("D99"); ok {
		t.Fatal("unknown name resolved")
	}
}

func TestAliasesShareThePad(t *testing.T) {
	if SDA != D21 || SCL != D22 {
		t.Fatal("I2C aliases diverge from header pins")
	}
	if SPIMOSI != VSPIMOSI || SPISCK != VSPICLK {
		t.Fatal("SPI role aliases diverge from VSPI")
	}
	if DAC1 != D25 || Touch2 != BuiltinLED {
		t.Fatal("pad aliases diverge")
	}
}

func TestValid(t *testing.T) {
	for _, n := range []int{0, 13, 39} {
		if !Valid(n) {
			t.Fatalf("Valid(%d): want true", n)
		}
	}
	for _, n := range []int{NoPin, -5, 40} {
		if Valid(n) {
			t.Fatalf("Valid(%d): want false", n)
		}
	}
}
