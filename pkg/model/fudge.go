package model

import "sort"

// Fudge est une correction manuelle par utilisateur : à partir du temps
// in-movie Bookmark (mesuré sur la timeline globalement fudgée, PAS la
// timeline finale), ajouter Amount aux messages de cet utilisateur.
type Fudge struct {
	Bookmark Delta `yaml:"bookmark"`
	Amount   Delta `yaml:"delay"`
}

// FudgeTable associe chaque utilisateur à sa liste de corrections,
// triée par Bookmark croissant.
type FudgeTable map[string][]Fudge

// Add pose une correction pour user. Une correction existante au même
// Bookmark (égalité exacte) est remplacée, puis la liste est re-triée et
// consolidée : en remontant depuis la fin, une paire dont le Amount est
// identique à celui de la paire précédente est supprimée. La règle de
// Lookup rend ces doublons intérieurs redondants ; la liste reste minimale.
func (t FudgeTable) Add(user string, f Fudge) {
	list := t[user]

	kept := list[:0]
	for _, x := range list {
		if x.Bookmark != f.Bookmark {
			kept = append(kept, x)
		}
	}
	list = append(kept, f)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Bookmark < list[j].Bookmark
	})

	// Consolider les séries de Amount identiques.
	for i := len(list) - 1; i >= 1; i-- {
		if list[i].Amount == list[i-1].Amount {
			list = append(list[:i], list[i+1:]...)
		}
	}
	t[user] = list
}

// Remove supprime toute correction de user exactement au Bookmark donné.
// Sans effet si absente.
func (t FudgeTable) Remove(user string, bookmark Delta) {
	list, ok := t[user]
	if !ok {
		return
	}
	kept := list[:0]
	for _, x := range list {
		if x.Bookmark != bookmark {
			kept = append(kept, x)
		}
	}
	if len(kept) == 0 {
		delete(t, user)
		return
	}
	t[user] = kept
}

// Lookup parcourt la liste de user du Bookmark le plus tardif au plus
// ancien et retourne le Amount de la première paire dont Bookmark <= t.
// L'égalité exacte compte (>=) : un message pile sur le bookmark reçoit
// cette correction. Zéro si l'utilisateur n'a pas de liste ou qu'aucune
// paire ne qualifie. "La correction applicable la plus récente gagne."
func (t FudgeTable) Lookup(user string, globallyFudged Delta) Delta {
	list := t[user]
	for i := len(list) - 1; i >= 0; i-- {
		if globallyFudged >= list[i].Bookmark {
			return list[i].Amount
		}
	}
	return 0
}

// Clone retourne une copie profonde de la table.
func (t FudgeTable) Clone() FudgeTable {
	if t == nil {
		return nil
	}
	out := make(FudgeTable, len(t))
	for user, list := range t {
		cp := make([]Fudge, len(list))
		copy(cp, list)
		out[user] = cp
	}
	return out
}
