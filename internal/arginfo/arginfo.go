// Package arginfo décrit les options attendues par les adaptateurs
// (parsers et exporters) : méta-information exploitable par la CLI pour
// valider, documenter et demander les valeurs manquantes.
package arginfo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// Types d'argument reconnus.
type Type string

const (
	Datetime     Type = "DATETIME"
	TimeDelta    Type = "TIMEDELTA"
	Boolean      Type = "BOOLEAN"
	Integer      Type = "INTEGER"
	String       Type = "STRING"
	HiddenString Type = "HIDDEN_STRING" // secret : jamais affiché ni persisté en clair à l'écran
	File         Type = "FILE"
	URL          Type = "URL"
	FileOrURL    Type = "FILE_OR_URL"
)

// Arg est la méta-information d'un argument attendu.
type Arg struct {
	Name        string
	Type        Type
	Required    bool
	Default     string
	Choices     []string
	Multiple    bool
	Description string
}

// Options porte les valeurs d'options des adaptateurs, sous forme de
// clés préfixées par l'espace de noms de l'adaptateur ("subrip.show_name").
// Toutes les valeurs sont des chaînes ; les getters typés convertissent.
type Options map[string]string

// Get retourne la valeur de ns.key, ou fallback si absente.
func (o Options) Get(ns, key, fallback string) string {
	if v, ok := o[ns+"."+key]; ok {
		return v
	}
	return fallback
}

// Has indique si ns.key est renseignée (même vide).
func (o Options) Has(ns, key string) bool {
	_, ok := o[ns+"."+key]
	return ok
}

// Set pose la valeur de ns.key.
func (o Options) Set(ns, key, value string) {
	o[ns+"."+key] = value
}

// GetBool interprète ns.key comme booléen ("true"/"false", "1"/"0", etc).
func (o Options) GetBool(ns, key string, fallback bool) (bool, error) {
	v, ok := o[ns+"."+key]
	if !ok {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("option %s.%s : booléen invalide %q", ns, key, v)
	}
	return b, nil
}

// GetInt interprète ns.key comme entier.
func (o Options) GetInt(ns, key string, fallback int) (int, error) {
	v, ok := o[ns+"."+key]
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("option %s.%s : entier invalide %q", ns, key, v)
	}
	return n, nil
}

// GetDelta interprète ns.key comme durée canonique (-)HH:MM:SS.
func (o Options) GetDelta(ns, key string, fallback model.Delta) (model.Delta, error) {
	v, ok := o[ns+"."+key]
	if !ok {
		return fallback, nil
	}
	d, err := model.ParseDelta(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("option %s.%s : %w", ns, key, err)
	}
	return d, nil
}

// Missing retourne les arguments requis de l'adaptateur ns qui n'ont ni
// valeur fournie ni défaut.
func Missing(args []Arg, ns string, opts Options) []Arg {
	var out []Arg
	for _, a := range args {
		if !a.Required {
			continue
		}
		if opts.Has(ns, a.Name) || a.Default != "" {
			continue
		}
		out = append(out, a)
	}
	return out
}
