package snarks

import (
	"math/rand"

	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// fallback quand la palette n'a aucune entrée active ou qu'un hex est
// corrompu : du blanc, comme des sous-titres ordinaires.
var white = model.RGB{R: 1, G: 1, B: 1}

// AssignColors tire une couleur par utilisateur dans les entrées actives
// de la palette : mélange, répétition de la palette jusqu'à couvrir tous
// les utilisateurs (au-delà, des doublons apparaissent), troncature puis
// appariement. Le tirage n'est pas déterministe ; seules les propriétés
// structurelles sont garanties (une couleur par utilisateur, couleurs
// issues de la palette).
func AssignColors(palette []model.PaletteEntry, users []string) map[string]model.RGB {
	var enabled []model.RGB
	for _, entry := range palette {
		if !entry.Use {
			continue
		}
		c, err := model.HexToRGB(entry.Hex)
		if err != nil {
			continue
		}
		enabled = append(enabled, c)
	}

	assigned := make(map[string]model.RGB, len(users))
	if len(enabled) == 0 {
		for _, u := range users {
			assigned[u] = white
		}
		return assigned
	}

	rand.Shuffle(len(enabled), func(i, j int) {
		enabled[i], enabled[j] = enabled[j], enabled[i]
	})

	// Répéter la palette jusqu'à avoir au moins autant d'entrées que
	// d'utilisateurs, puis tronquer.
	pool := enabled
	for len(pool) < len(users) {
		pool = append(pool, enabled...)
	}
	pool = pool[:len(users)]

	for i, u := range users {
		assigned[u] = pool[i]
	}
	return assigned
}
