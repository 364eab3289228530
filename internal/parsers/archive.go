package parsers

import (
	"context"
	"fmt"
	"strings"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/internal/archive"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// Archive relit une archive sqlite écrite par l'exporter du même nom.
// Chaque champ sauvegardé est restauré ; Time et Color pourront quand
// même être écrasés par le pipeline ensuite.
type Archive struct{}

func (p *Archive) Name() string { return "archive" }

func (p *Archive) Describe() string {
	return "Collects snarks from a sqlite archive file."
}

func (p *Archive) Options() []arginfo.Arg { return nil }

func (p *Archive) Fetch(ctx context.Context, src, firstMsg string, opts arginfo.Options) ([]model.Snark, error) {
	if src == "" {
		return nil, missingSrcErr(p.Name())
	}
	// seul un fichier local a un sens pour du sqlite
	src = strings.TrimPrefix(src, "file://")

	db, err := archive.Open(src)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrParser)
	}
	defer db.Close()

	all, err := archive.ReadAll(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrParser)
	}

	if firstMsg == "" {
		return all, nil
	}
	var snarks []model.Snark
	started := false
	for _, s := range all {
		if !started {
			if !strings.Contains(s.Msg, firstMsg) {
				continue
			}
			started = true
		}
		snarks = append(snarks, s)
	}
	return snarks, nil
}
