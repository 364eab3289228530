// Package exporters regroupe les adaptateurs sortie : chacun sait
// restituer une liste de snarks traités quelque part (sous-titres,
// texte tabulé, html, billet de blog, archive). Le pendant du package
// parsers, avec le même registre par enregistrement explicite.
package exporters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// ErrExporter : l'adaptateur n'a pas pu restituer les snarks.
// Journalisé puis run interrompu, sans sortie partielle.
var ErrExporter = errors.New("exporter failed")

// Exporter est le contrat d'un adaptateur sortie.
type Exporter interface {
	Name() string
	Describe() string
	Options() []arginfo.Arg

	// UsesDestFile indique si la sortie de Write doit finir dans le
	// fichier de destination. Les adaptateurs qui gèrent eux-mêmes leur
	// destination (un billet de blog) répondent false : leur sortie
	// n'est qu'un compte-rendu.
	UsesDestFile() bool

	// Write restitue les snarks dans w. showTime est la durée
	// d'affichage de chaque message à l'écran.
	Write(ctx context.Context, w io.Writer, snarks []model.Snark, showTime model.Delta, opts arginfo.Options) error
}

// Registry associe un nom d'adaptateur à son implémentation.
type Registry struct {
	exporters map[string]Exporter
}

func NewRegistry() *Registry {
	return &Registry{exporters: map[string]Exporter{}}
}

// Register ajoute un adaptateur. Panique sur un nom en double : c'est
// une erreur de câblage au démarrage, pas une condition d'exécution.
func (r *Registry) Register(e Exporter) {
	if _, dup := r.exporters[e.Name()]; dup {
		panic(fmt.Sprintf("exporters: double enregistrement de %q", e.Name()))
	}
	r.exporters[e.Name()] = e
}

// Get retourne l'adaptateur nommé.
func (r *Registry) Get(name string) (Exporter, error) {
	e, ok := r.exporters[name]
	if !ok {
		return nil, fmt.Errorf("exporter inconnu %q: %w", name, ErrExporter)
	}
	return e, nil
}

// Names retourne les noms enregistrés, triés.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.exporters))
	for n := range r.exporters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry construit le registre avec tous les adaptateurs
// intégrés. L'exporter wordpress reçoit le registre lui-même : il
// délègue le corps du billet à un autre adaptateur.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&SubRip{})
	r.Register(&TabbedText{})
	r.Register(&TranscriptHTML{})
	r.Register(NewWordpress(r))
	r.Register(&Archive{})
	return r
}
