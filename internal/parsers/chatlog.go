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

// Une ligne de snark dans un log de projection :
//
//	2012-04-21 20:30:05 INFO: Tweet shown (lag 3s): steve: the msg
var chatlogLine = regexp.MustCompile(
	`^([0-9]{4})-([0-9]{2})-([0-9]{2}) ([0-9]{2}):([0-9]{2}):([0-9]{2}) INFO: Tweet (?:shown|expired) \(lag ([0-9-]+)s\): ([^:]+): (.*)$`)

// Toute ligne portant un horodatage de log : si elle ne matche pas
// chatlogLine, ce n'est PAS une continuation multiligne.
var chatlogStamped = regexp.MustCompile(
	`^[0-9]{4}-[0-9]{2}-[0-9]{2} [0-9]{2}:[0-9]{2}:[0-9]{2} [^:]+: .*`)

// Chatlog collecte les snarks depuis le log d'une séance de visionnage
// collectif (les tweets affichés pendant la projection, avec leur lag
// de propagation qui est soustrait de la date).
type Chatlog struct{}

func (p *Chatlog) Name() string { return "chatlog" }

func (p *Chatlog) Describe() string {
	return "Collects snarks from a screening session log."
}

func (p *Chatlog) Options() []arginfo.Arg { return nil }

func (p *Chatlog) Fetch(ctx context.Context, src, firstMsg string, opts arginfo.Options) ([]model.Snark, error) {
	if src == "" {
		return nil, missingSrcErr(p.Name())
	}

	data, err := fetch.ReadSource(ctx, src, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("lecture de %s: %v: %w", src, err, ErrParser)
	}

	var snarks []model.Snark
	started := false
	prevLineWasSnark := false

	for _, line := range fetch.SplitLines(data) {
		m := chatlogLine.FindStringSubmatch(line)
		if m == nil {
			// Une ligne sans horodatage de log prolonge le snark
			// précédent (message multiligne).
			if len(snarks) > 0 && prevLineWasSnark && !chatlogStamped.MatchString(line) {
				snarks[len(snarks)-1].Msg += "\n" + line
				prevLineWasSnark = true
			} else {
				prevLineWasSnark = false
			}
			continue
		}

		lag, _ := strconv.Atoi(m[7])
		date := logDate(m[1:7]).Add(-time.Duration(lag) * time.Second)

		if !started {
			if firstMsg != "" && !containsMarker(line, firstMsg) {
				// snark antérieur au premier message attendu
				continue
			}
			started = true
		}

		snarks = append(snarks, model.Snark{
			User: "@" + m[8],
			Msg:  m[9],
			Date: date,
		})
		prevLineWasSnark = true
	}

	return snarks, nil
}

// logDate assemble une date locale depuis six groupes numériques
// (le regex garantit des chiffres).
func logDate(groups []string) time.Time {
	n := make([]int, 6)
	for i, g := range groups {
		n[i], _ = strconv.Atoi(g)
	}
	return time.Date(n[0], time.Month(n[1]), n[2], n[3], n[4], n[5], 0, time.Local)
}

// containsMarker : recherche de sous-chaîne sensible à la casse.
func containsMarker(s, marker string) bool {
	return strings.Contains(s, marker)
}
