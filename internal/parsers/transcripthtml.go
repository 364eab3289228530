package parsers

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/internal/fetch"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// Une ligne de tweet dans un billet Transcript :
//
//	<a href='...'>@user</a>: msg <br/><font size=-3><a href='...'>2012-04-21 20:30:05</a></font><br/>
var transcriptLine = regexp.MustCompile(
	`(?i)(?:<p>)?<a href='([^']*)'>([^<]*)</a>: (.*?) +<br ?/><font size=-3><a href='([^']*)'[^>]*>([0-9]{4})-([0-9]{2})-([0-9]{2}) ([0-9]{2}):([0-9]{2}):([0-9]{2})</a></font>(?:<br ?/>|</p>)?`)

// Fin de la zone utile du billet : tout ce qui suit est de l'habillage.
var transcriptTail = regexp.MustCompile(`<div class="[^"]*robots-nocontent[^"]*">`)

// TranscriptHTML collecte les snarks depuis un billet de blog
// "transcript" en html. Pose les extras UserURL et MsgURL (lien vers
// le compte et vers le message d'origine) que les exporters peuvent
// ignorer.
type TranscriptHTML struct{}

func (p *TranscriptHTML) Name() string { return "transcripthtml" }

func (p *TranscriptHTML) Describe() string {
	return "Collects snarks from an html transcript blog post."
}

func (p *TranscriptHTML) Options() []arginfo.Arg {
	return []arginfo.Arg{
		{
			Name: "reply_name", Type: arginfo.String,
			Description: "The name to which replies were directed (no \"@\").\nRegexes will remove it from comments.",
		},
	}
}

func (p *TranscriptHTML) Fetch(ctx context.Context, src, firstMsg string, opts arginfo.Options) ([]model.Snark, error) {
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
		if transcriptTail.MatchString(line) {
			break
		}

		m := transcriptLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		msg := stripReplyName(m[3], regexes)
		msg = asciify(htmlUnescape(msg))

		s := model.Snark{
			User:    m[2],
			Msg:     msg,
			Date:    transcriptDate(m[5:11]),
			UserURL: m[1],
			MsgURL:  m[4],
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

// les dates des transcripts sont en UTC
func transcriptDate(groups []string) time.Time {
	n := make([]int, 6)
	for i, g := range groups {
		n[i], _ = strconv.Atoi(g)
	}
	return time.Date(n[0], time.Month(n[1]), n[2], n[3], n[4], n[5], 0, time.UTC)
}
