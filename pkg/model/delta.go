package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrBadDelta : chaîne de durée mal formée. Toujours remontée à l'appelant,
// jamais remplacée silencieusement par une valeur par défaut.
var ErrBadDelta = errors.New("invalid duration string")

// Delta représente une durée "in-movie" (offset depuis le début du film).
// Forme canonique : "(-)HH:MM:SS". Les jours sont repliés dans les heures,
// jamais perdus.
type Delta time.Duration

var deltaPtn = regexp.MustCompile(`^(-?)([0-9]+):([0-9]+):([0-9]+)$`)

// String formate le Delta en "(-)HH:MM:SS", 2 chiffres par composant.
// Le signe n'est préfixé que si la valeur entière est négative ; zéro
// s'affiche sans signe.
func (d Delta) String() string {
	total := d.Seconds()
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, hours, minutes, seconds)
}

// ParseDelta construit un Delta depuis sa forme canonique "(-?)H:M:S".
// Tout autre format retourne ErrBadDelta (enveloppée avec la chaîne fautive).
func ParseDelta(s string) (Delta, error) {
	m := deltaPtn.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q should be \"(-?)00:00:00\"", ErrBadDelta, s)
	}
	// le pattern garantit des chiffres : les conversions ne peuvent pas échouer
	hours, _ := strconv.ParseInt(m[2], 10, 64)
	minutes, _ := strconv.ParseInt(m[3], 10, 64)
	seconds, _ := strconv.ParseInt(m[4], 10, 64)

	total := hours*3600 + minutes*60 + seconds
	if m[1] == "-" {
		total = -total
	}
	return Delta(time.Duration(total) * time.Second), nil
}

// Seconds retourne le total de secondes, SIGNÉ.
// Attention : pas de normalisation "jours négatifs + reste positif" comme le
// timedelta de certains langages ; -1h doit donner -3600, pas autre chose.
// La division entière de Go tronque vers zéro, c'est exactement ce qu'on veut.
func (d Delta) Seconds() int64 {
	return int64(time.Duration(d) / time.Second)
}

func (d Delta) Milliseconds() int64 {
	return int64(time.Duration(d) / time.Millisecond)
}

// DeltaFromSeconds construit un Delta depuis un total de secondes signé.
func DeltaFromSeconds(n int64) Delta {
	return Delta(time.Duration(n) * time.Second)
}

// MarshalYAML sérialise sous la forme canonique (lisible + re-parsable).
func (d Delta) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML accepte uniquement la forme canonique.
func (d *Delta) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDelta(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
