package exporters

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/internal/archive"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// Archive restitue les snarks dans une base sqlite, tous champs
// compris (y compris les extras posés par les parsers). Le pendant du
// parser du même nom : exporter vers une archive après une collecte
// coûteuse, puis reparser l'archive pour les ajustements.
type Archive struct{}

func (e *Archive) Name() string { return "archive" }

func (e *Archive) Describe() string {
	return "Writes snarks to a sqlite archive file.\nThis saves EVERY field, in case a parser adds non-standard ones."
}

func (e *Archive) Options() []arginfo.Arg { return nil }

func (e *Archive) UsesDestFile() bool { return true }

func (e *Archive) Write(ctx context.Context, w io.Writer, snarks []model.Snark, showTime model.Delta, opts arginfo.Options) error {
	// sqlite écrit dans un fichier, pas dans un flux : on construit la
	// base dans un fichier temporaire puis on recopie ses octets.
	tmp, err := os.CreateTemp("", "snarks-*.db")
	if err != nil {
		return fmt.Errorf("fichier temporaire d'archive: %v: %w", err, ErrExporter)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	db, err := archive.Open(tmpPath)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrExporter)
	}
	if err := archive.WriteAll(ctx, db, snarks); err != nil {
		db.Close()
		return fmt.Errorf("%v: %w", err, ErrExporter)
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("fermeture de l'archive: %v: %w", err, ErrExporter)
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return fmt.Errorf("relecture de l'archive: %v: %w", err, ErrExporter)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("recopie de l'archive: %v: %w", err, ErrExporter)
	}
	return nil
}
