// Package snarks implémente le coeur du système : la transformation
// temporelle qui convertit des messages horodatés "monde réel" en
// messages synchronisés sur la timeline du film, filtrés et colorés.
//
// Trois étapes composables (Preprocess, FudgeUsers, Postprocess) dont
// l'enchaînement est équivalent, champ pour champ, à la passe unique
// Process. Cette équivalence permet à une session interactive de ne
// rejouer que les étapes tardives après une retouche de config.
package snarks

import (
	"errors"
	"sort"

	"github.com/patrickprogramme/snarksubs/internal/config"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// ErrNoSnarks : aucun message n'a survécu au parsing ou au filtrage.
// Issue normale d'un filtrage agressif, pas un bug ; l'orchestration la
// journalise en warning et s'arrête proprement.
var ErrNoSnarks = errors.New("no snarks to work with")

// Preprocess est l'étape A : messages bruts -> messages datés, non filtrés.
// Trie par Date, dérive GlobalTime et Time (offset depuis le premier
// message + décalage global), retrie par Time, puis marque Ignored sans
// retirer personne : en session un utilisateur ignoré peut être repêché.
func Preprocess(cfg *config.Config, snarks []model.Snark) []model.Snark {
	if len(snarks) == 0 {
		return snarks
	}

	sort.SliceStable(snarks, func(i, j int) bool {
		return snarks[i].Date.Before(snarks[j].Date)
	})

	first := snarks[0].Date
	for i := range snarks {
		gt := model.Delta(snarks[i].Date.Sub(first)) + cfg.FudgeTime
		snarks[i].GlobalTime = &gt
		snarks[i].Time = gt
	}

	// Tri stable : à Time égal, l'ordre chronologique (Date) est conservé.
	sort.SliceStable(snarks, func(i, j int) bool {
		return snarks[i].Time < snarks[j].Time
	})

	ignored := make(map[string]bool, len(cfg.IgnoreUsers))
	for _, u := range cfg.IgnoreUsers {
		ignored[u] = true
	}
	for i := range snarks {
		snarks[i].Ignored = ignored[snarks[i].User]
	}

	return snarks
}

// FudgeUsers est l'étape B : recalcule Time depuis la base stable
// GlobalTime plus la correction par utilisateur. Idempotente : rejouée
// sur le même état elle redonne les mêmes Time, puisqu'elle repart de
// GlobalTime au lieu de cumuler sur le Time précédent.
func FudgeUsers(cfg *config.Config, snarks []model.Snark) []model.Snark {
	if len(snarks) == 0 {
		return snarks
	}

	// Retri par Date : nécessaire pour re-dériver GlobalTime quand il
	// manque (ex : fudge_time modifié en session).
	sort.SliceStable(snarks, func(i, j int) bool {
		return snarks[i].Date.Before(snarks[j].Date)
	})

	first := snarks[0].Date
	for i := range snarks {
		if snarks[i].GlobalTime == nil {
			gt := model.Delta(snarks[i].Date.Sub(first)) + cfg.FudgeTime
			snarks[i].GlobalTime = &gt
		}
		base := *snarks[i].GlobalTime
		snarks[i].Time = base + cfg.FudgeUsers.Lookup(snarks[i].User, base)
	}

	sort.SliceStable(snarks, func(i, j int) bool {
		return snarks[i].Time < snarks[j].Time
	})

	return snarks
}

// Postprocess est l'étape C : messages datés -> liste finale filtrée et
// colorée, prête pour l'export. Écarte les ignorés, les temps négatifs
// (zéro est conservé) et, si end_time est posé, les retardataires.
func Postprocess(cfg *config.Config, snarks []model.Snark) ([]model.Snark, error) {
	out := make([]model.Snark, 0, len(snarks))
	for _, s := range snarks {
		if s.Ignored {
			continue
		}
		if s.Time < 0 {
			continue
		}
		if cfg.EndTime != nil && s.Time > *cfg.EndTime {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})

	switch cfg.ColorEnabled {
	case config.ColorRandom:
		colors := AssignColors(cfg.Palette, UniqueUsers(out))
		for i := range out {
			c := colors[out[i].User]
			out[i].Color = &c
		}
	case config.ColorNo:
		for i := range out {
			out[i].Color = nil
		}
	case config.ColorDefault:
		// le parser a décidé, ne pas toucher
	}

	if len(out) == 0 {
		return out, ErrNoSnarks
	}
	return out, nil
}

// Process enchaîne les trois étapes sur des messages fraîchement parsés.
// Équivalent champ pour champ à Preprocess puis FudgeUsers puis
// Postprocess appelées séparément.
func Process(cfg *config.Config, snarks []model.Snark) ([]model.Snark, error) {
	snarks = Preprocess(cfg, snarks)
	snarks = FudgeUsers(cfg, snarks)
	return Postprocess(cfg, snarks)
}

// UniqueUsers retourne les auteurs distincts, dans l'ordre de première
// apparition.
func UniqueUsers(snarks []model.Snark) []string {
	seen := make(map[string]bool, len(snarks))
	var users []string
	for _, s := range snarks {
		if !seen[s.User] {
			seen[s.User] = true
			users = append(users, s.User)
		}
	}
	return users
}
