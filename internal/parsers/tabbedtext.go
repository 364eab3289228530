package parsers

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/internal/fetch"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// Colonnes : In-Movie Time, Original Date, Color, User, Msg.
// La colonne de temps est ignorée (recalculée), la couleur peut être
// écrasée plus tard par le pipeline.
var tabbedLine = regexp.MustCompile(
	`^[^\t]*\t([0-9]{4})-([0-9]{2})-([0-9]{2}) ([0-9]{2}):([0-9]{2}):([0-9]{2})\t([0-9A-Fa-f]{6})?\t([^\t]+)\t([^\t]+)`)

// TabbedText relit l'export texte tabulé de ce même outil : le format
// d'aller-retour lisible dans un tableur.
type TabbedText struct{}

func (p *TabbedText) Name() string { return "tabbedtext" }

func (p *TabbedText) Describe() string {
	return "Collects snarks from tab-separated text."
}

func (p *TabbedText) Options() []arginfo.Arg {
	return []arginfo.Arg{
		{
			Name: "reply_name", Type: arginfo.String,
			Description: "The name to which replies were directed (no \"@\").\nRegexes will remove it from messages.",
		},
	}
}

func (p *TabbedText) Fetch(ctx context.Context, src, firstMsg string, opts arginfo.Options) ([]model.Snark, error) {
	if src == "" {
		return nil, missingSrcErr(p.Name())
	}

	regexes := replyRegexes(opts.Get(p.Name(), "reply_name", ""))

	data, err := fetch.ReadSource(ctx, src, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("lecture de %s: %v: %w", src, err, ErrParser)
	}

	var snarks []model.Snark
	started := false

	for _, line := range fetch.SplitLines(data) {
		m := tabbedLine.FindStringSubmatch(line)
		if m == nil {
			// la première ligne est l'en-tête, les autres sont suspectes
			continue
		}

		msg := strings.ReplaceAll(m[9], `\n`, "\n")
		msg = stripReplyName(msg, regexes)

		s := model.Snark{
			User: m[8],
			Msg:  msg,
			Date: tabbedDate(m[1:7]),
		}
		if m[7] != "" {
			if c, err := model.HexToRGB(m[7]); err == nil {
				s.Color = &c
			}
		}

		if !started {
			if firstMsg != "" && !containsMarker(line, firstMsg) {
				continue
			}
			started = true
		}
		snarks = append(snarks, s)
	}

	return snarks, nil
}

func tabbedDate(groups []string) time.Time {
	n := make([]int, 6)
	for i, g := range groups {
		n[i], _ = strconv.Atoi(g)
	}
	return time.Date(n[0], time.Month(n[1]), n[2], n[3], n[4], n[5], 0, time.Local)
}
