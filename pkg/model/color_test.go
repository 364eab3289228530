package model

import (
	"math"
	"strings"
	"testing"
)

func TestHexToRGBAndBack(t *testing.T) {
	tests := []struct {
		name string
		hex  string
	}{
		{"blanc", "FFFFFF"},
		{"noir", "000000"},
		{"kelly yellow", "FFB300"},
		{"minuscules", "cc8080"},
		{"casse mixte", "Ff6800"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := HexToRGB(tc.hex)
			if err != nil {
				t.Fatalf("HexToRGB(%q): %v", tc.hex, err)
			}
			// round-trip à la casse près
			if got := c.Hex(); got != strings.ToLower(tc.hex) {
				t.Errorf("Hex() = %q; want %q", got, strings.ToLower(tc.hex))
			}
		})
	}
}

func TestHexToRGBChannels(t *testing.T) {
	c, err := HexToRGB("FF8000")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 1.0 {
		t.Errorf("R = %v; want 1.0", c.R)
	}
	if math.Abs(c.G-128.0/255.0) > 1e-9 {
		t.Errorf("G = %v; want 128/255", c.G)
	}
	if c.B != 0.0 {
		t.Errorf("B = %v; want 0.0", c.B)
	}
}

func TestHexToRGBRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "FFF", "FFFFFFF", "GGGGGG", "#FFFFFF"} {
		if _, err := HexToRGB(s); err == nil {
			t.Errorf("HexToRGB(%q) should fail", s)
		}
	}
}
