// Package parsers regroupe les adaptateurs source : chacun sait aller
// chercher des snarks bruts quelque part (log, texte tabulé, html, API
// de recherche, archive) et les rendre au pipeline sous forme de
// model.Snark sans champ Time.
//
// Les adaptateurs sont choisis par nom dans un registre peuplé par
// enregistrement explicite au démarrage, pas par balayage de modules.
package parsers

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// ErrParser : l'adaptateur n'a pas pu récupérer ou interpréter les
// messages bruts. Journalisé puis run interrompu, sans sortie partielle.
var ErrParser = errors.New("parser failed")

// Parser est le contrat d'un adaptateur source.
type Parser interface {
	Name() string
	Describe() string
	Options() []arginfo.Arg

	// Fetch récupère les snarks bruts. Si firstMsg est non vide, les
	// messages antérieurs au premier dont le texte contient cette
	// sous-chaîne (sensible à la casse) sont écartés.
	Fetch(ctx context.Context, src, firstMsg string, opts arginfo.Options) ([]model.Snark, error)
}

// Registry associe un nom d'adaptateur à son implémentation.
type Registry struct {
	parsers map[string]Parser
}

func NewRegistry() *Registry {
	return &Registry{parsers: map[string]Parser{}}
}

// Register ajoute un adaptateur. Panique sur un nom en double : c'est
// une erreur de câblage au démarrage, pas une condition d'exécution.
func (r *Registry) Register(p Parser) {
	if _, dup := r.parsers[p.Name()]; dup {
		panic(fmt.Sprintf("parsers: double enregistrement de %q", p.Name()))
	}
	r.parsers[p.Name()] = p
}

// Get retourne l'adaptateur nommé.
func (r *Registry) Get(name string) (Parser, error) {
	p, ok := r.parsers[name]
	if !ok {
		return nil, fmt.Errorf("parser inconnu %q: %w", name, ErrParser)
	}
	return p, nil
}

// Names retourne les noms enregistrés, triés.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.parsers))
	for n := range r.parsers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry construit le registre avec tous les adaptateurs
// intégrés.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&Chatlog{})
	r.Register(&TabbedText{})
	r.Register(&TranscriptHTML{})
	r.Register(NewSearchAPI())
	r.Register(&Archive{})
	return r
}
