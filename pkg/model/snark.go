package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snark est l'unité qui traverse le pipeline : un message horodaté et
// attribué. User/Msg/Date sont immuables une fois parsés ; Time et les
// champs dérivés sont recalculés à chaque passe.
type Snark struct {
	// ID identifie la ligne de façon stable à travers les recalculs
	// (utile aux observateurs d'une session). Posé par la session,
	// les parsers n'ont pas à s'en occuper.
	ID uuid.UUID

	User string    // clé de jointure pour fudge/couleur/ignore
	Msg  string    // contenu opaque pour le pipeline (peut contenir des \n)
	Date time.Time // horodatage réel, clé d'ordre "qui a parlé en premier"

	// Time est la durée depuis le premier message (offset in-movie),
	// recalculée par les étapes du pipeline. C'est ce que les sinks affichent.
	Time Delta

	// GlobalTime est Time AVANT fudges par utilisateur : la base stable
	// qui permet de recalculer les corrections sans repartir de Date.
	// nil = pas encore dérivé.
	GlobalTime *Delta

	// Color n'est présent que si la colorisation est active (ou posée
	// par le parser).
	Color *RGB

	// Ignored marque un soft-delete : l'utilisateur est sur la liste
	// d'ignore mais le message garde sa place (dé-ignorable en session).
	Ignored bool

	// Extras pass-through posés par certains parsers, ignorables par
	// les exporters.
	UserURL string
	MsgURL  string
}

func (s Snark) String() string {
	return fmt.Sprintf("Snark[%s %s: %.40q]", s.Time, s.User, s.Msg)
}

// CloneSnarks copie profondément une liste de snarks (les champs pointeurs
// sont re-boxés). Nécessaire aux snapshots de session : pas d'aliasing
// entre versions stable et instable.
func CloneSnarks(snarks []Snark) []Snark {
	if snarks == nil {
		return nil
	}
	out := make([]Snark, len(snarks))
	copy(out, snarks)
	for i := range out {
		if snarks[i].GlobalTime != nil {
			gt := *snarks[i].GlobalTime
			out[i].GlobalTime = &gt
		}
		if snarks[i].Color != nil {
			c := *snarks[i].Color
			out[i].Color = &c
		}
	}
	return out
}
