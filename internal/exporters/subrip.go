package exporters

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

var (
	srtBlankLines  = regexp.MustCompile(`\n\n+`)
	srtLeadSpace   = regexp.MustCompile(`^ +`)
	srtSpacedBreak = regexp.MustCompile(` *\n *`)
	srtLink        = regexp.MustCompile(` *https?://[^ ]+`)
)

// SubRip restitue les snarks en sous-titres SubRip (.srt). Quand les
// snarks sont colorés, un bloc-palette d'une seconde s'affiche en tête
// pour charger toutes les couleurs (certains lecteurs ne les prennent
// en compte qu'à la première occurrence).
type SubRip struct{}

func (e *SubRip) Name() string { return "subrip" }

func (e *SubRip) Describe() string {
	return "Writes snarks as SubRip subtitles."
}

func (e *SubRip) Options() []arginfo.Arg {
	return []arginfo.Arg{
		{
			Name: "include_names", Type: arginfo.Boolean,
			Default: "true", Choices: []string{"true", "false"},
			Description: "Boolean to prepend each msg with its user.\nDefault is true.",
		},
	}
}

func (e *SubRip) UsesDestFile() bool { return true }

func (e *SubRip) Write(ctx context.Context, w io.Writer, snarks []model.Snark, showTime model.Delta, opts arginfo.Options) error {
	includeNames, err := opts.GetBool(e.Name(), "include_names", true)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrExporter)
	}

	bw := bufio.NewWriter(w)
	index := 0

	// bloc-palette : un "#" par couleur distincte, affiché d'une seconde
	// jusqu'à une seconde plus show_time
	if palette := paletteRuns(snarks); palette != "" {
		index++
		one := model.DeltaFromSeconds(1)
		fmt.Fprintf(bw, "%d\r\n%s --> %s\r\n%s\r\n\r\n",
			index, srtDelta(one), srtDelta(one+showTime), palette)
	}

	for _, s := range snarks {
		msg := strings.ReplaceAll(s.Msg, "\r", "")

		// SubRip tolère le multiligne, pas les lignes vides
		msg = srtBlankLines.ReplaceAllString(msg, "\n")
		msg = srtLeadSpace.ReplaceAllString(msg, "")
		msg = srtSpacedBreak.ReplaceAllString(msg, "\n")
		msg = strings.TrimRight(msg, " \n")
		// les liens sont illisibles en sous-titre
		msg = srtLink.ReplaceAllString(msg, "")

		if s.Color != nil {
			msg = fontColor(msg, *s.Color)
		}
		if includeNames {
			msg = strings.ReplaceAll(s.User, "@", "") + ": " + msg
		}
		msg = strings.ReplaceAll(msg, "\n", "\r\n")

		index++
		fmt.Fprintf(bw, "%d\r\n%s --> %s\r\n%s\r\n\r\n",
			index, srtDelta(s.Time), srtDelta(s.Time+showTime), msg)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("écriture subrip: %v: %w", err, ErrExporter)
	}
	return nil
}

// paletteRuns assemble le message du bloc-palette : un "#" coloré par
// couleur distincte, dans l'ordre de première apparition.
func paletteRuns(snarks []model.Snark) string {
	seen := map[string]bool{}
	var b strings.Builder
	for _, s := range snarks {
		if s.Color == nil {
			continue
		}
		hex := s.Color.Hex()
		if seen[hex] {
			continue
		}
		seen[hex] = true
		b.WriteString(fontColor("#", *s.Color))
	}
	return b.String()
}

// srtDelta formate une durée au goût de SubRip : un suffixe
// millisecondes est obligatoire.
func srtDelta(d model.Delta) string {
	return d.String() + ",000"
}

func fontColor(text string, c model.RGB) string {
	return fmt.Sprintf("<font color=\"#%s\">%s</font>", c.Hex(), text)
}
