package snarks

import (
	"fmt"
	"testing"

	"github.com/patrickprogramme/snarksubs/pkg/model"
)

func TestAssignColorsMoreUsersThanPalette(t *testing.T) {
	palette := []model.PaletteEntry{
		{Name: "red", Hex: "FF0000", Use: true},
		{Name: "green", Hex: "00FF00", Use: true},
		{Name: "blue", Hex: "0000FF", Use: false}, // désactivée : exclue du tirage
	}
	inPalette := map[model.RGB]bool{
		{R: 1, G: 0, B: 0}: true,
		{R: 0, G: 1, B: 0}: true,
	}

	var users []string
	for i := 0; i < 7; i++ {
		users = append(users, fmt.Sprintf("@user%d", i))
	}

	got := AssignColors(palette, users)
	if len(got) != len(users) {
		t.Fatalf("got %d colors, want %d", len(got), len(users))
	}
	for u, c := range got {
		if !inPalette[c] {
			t.Errorf("%s: color %v not from the enabled palette", u, c)
		}
	}
}

func TestAssignColorsEmptyPaletteFallsBackToWhite(t *testing.T) {
	palette := []model.PaletteEntry{
		{Name: "blue", Hex: "0000FF", Use: false},
	}
	got := AssignColors(palette, []string{"@a", "@b"})
	for u, c := range got {
		if c != white {
			t.Errorf("%s: got %v, want white", u, c)
		}
	}
}

func TestUniqueUsersKeepsFirstAppearanceOrder(t *testing.T) {
	snarks := []model.Snark{
		{User: "@b"}, {User: "@a"}, {User: "@b"}, {User: "@c"}, {User: "@a"},
	}
	got := UniqueUsers(snarks)
	want := []string{"@b", "@a", "@c"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}
