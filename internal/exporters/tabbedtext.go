package exporters

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// TabbedText restitue les snarks en texte tabulé : le format
// d'aller-retour que le parser du même nom sait relire, et qui s'ouvre
// dans un tableur.
type TabbedText struct{}

func (e *TabbedText) Name() string { return "tabbedtext" }

func (e *TabbedText) Describe() string {
	return "Writes snarks as tab-separated text.\nColumns: In-Movie Time, Original Date, Color, User, Msg."
}

func (e *TabbedText) Options() []arginfo.Arg { return nil }

func (e *TabbedText) UsesDestFile() bool { return true }

func (e *TabbedText) Write(ctx context.Context, w io.Writer, snarks []model.Snark, showTime model.Delta, opts arginfo.Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "In-Movie Time\tOriginal Date\tColor\tUser\tMsg\r\n")

	for _, s := range snarks {
		color := ""
		if s.Color != nil {
			color = s.Color.Hex()
		}
		// les sauts de ligne deviennent des \n littéraux
		msg := strings.ReplaceAll(s.Msg, "\n", `\n`)

		fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%s\r\n",
			s.Time, s.Date.Format("2006-01-02 15:04:05"), color, s.User, msg)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("écriture tabbedtext: %v: %w", err, ErrExporter)
	}
	return nil
}
