package model

import (
	"errors"
	"testing"
	"time"
)

func TestDeltaString(t *testing.T) {
	tests := []struct {
		name string
		in   Delta
		want string
	}{
		{"zero sans signe", 0, "00:00:00"},
		{"une heure", Delta(time.Hour), "01:00:00"},
		{"composite", Delta(time.Hour + 61*time.Second), "01:01:01"},
		{"jours repliés dans les heures", Delta(26*time.Hour + 5*time.Second), "26:00:05"},
		{"négatif", Delta(-(time.Hour + time.Second)), "-01:00:01"},
		{"négatif court", Delta(-5 * time.Second), "-00:00:05"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.String(); got != tc.want {
				t.Errorf("String() = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestParseDeltaRoundTrip(t *testing.T) {
	// parse(format(d)) == d, y compris négatifs et zéro
	deltas := []Delta{
		0,
		Delta(time.Second),
		Delta(59 * time.Second),
		Delta(time.Hour + 30*time.Minute),
		Delta(27 * time.Hour),
		Delta(-time.Second),
		Delta(-(13*time.Hour + 37*time.Minute + 7*time.Second)),
	}
	for _, d := range deltas {
		got, err := ParseDelta(d.String())
		if err != nil {
			t.Fatalf("ParseDelta(%q): %v", d.String(), err)
		}
		if got != d {
			t.Errorf("round-trip %q = %v; want %v", d.String(), got, d)
		}
	}
}

func TestParseDeltaRejectsGarbage(t *testing.T) {
	bad := []string{"", "1:2", "abc", "00:00:00:00", "1h30m", "--00:00:01", "00:00:0a"}
	for _, s := range bad {
		if _, err := ParseDelta(s); !errors.Is(err, ErrBadDelta) {
			t.Errorf("ParseDelta(%q) err = %v; want ErrBadDelta", s, err)
		}
	}
}

func TestDeltaSecondsStaysSigned(t *testing.T) {
	// -1h doit donner -3600 : pas de normalisation "jour negatif + reste"
	d := Delta(-time.Hour)
	if got := d.Seconds(); got != -3600 {
		t.Fatalf("Seconds() = %d; want -3600", got)
	}
	if got := Delta(90 * time.Second).Seconds(); got != 90 {
		t.Fatalf("Seconds() = %d; want 90", got)
	}
}
