package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB est un triplet de flottants, un canal dans 0.0-1.0.
// C'est le format que les exporters attendent ; la forme hex ne sert
// qu'à la config/palette et aux fichiers tabulés.
type RGB struct {
	R float64
	G float64
	B float64
}

// HexToRGB convertit une chaîne hex de 6 caractères ("00"-"FF"/"ff") en RGB.
// La casse est indifférente en entrée.
func HexToRGB(hexColor string) (RGB, error) {
	if len(hexColor) != 6 {
		return RGB{}, fmt.Errorf("hex color %q should be 6 characters", hexColor)
	}
	var channels [3]float64
	for i := 0; i < 3; i++ {
		cc := hexColor[i*2 : i*2+2]
		n, err := strconv.ParseUint(cc, 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("hex color %q: %w", hexColor, err)
		}
		channels[i] = float64(n) / 255.0
	}
	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// Hex retourne la forme hex sur 6 caractères, minuscules, 2 chiffres par
// canal (arrondi, pas troncature). HexToRGB(c.Hex()) redonne c à la casse près.
func (c RGB) Hex() string {
	var b strings.Builder
	for _, n := range []float64{c.R, c.G, c.B} {
		v := int(math.Round(n * 255))
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		fmt.Fprintf(&b, "%02x", v)
	}
	return b.String()
}

func (c RGB) String() string {
	return "#" + c.Hex()
}
