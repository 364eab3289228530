package exporters

import (
	"bufio"
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// TranscriptHTML restitue les snarks en html, avec un lien vers chaque
// utilisateur et chaque message. Les liens restent inertes ("#") si le
// parser n'a pas posé les extras UserURL/MsgURL, sauf à deviner les
// liens de compte avec faux_twitter_links.
type TranscriptHTML struct{}

func (e *TranscriptHTML) Name() string { return "transcripthtml" }

func (e *TranscriptHTML) Describe() string {
	return "Writes snarks as html with links to each user and comment."
}

func (e *TranscriptHTML) Options() []arginfo.Arg {
	return []arginfo.Arg{
		{
			Name: "excerpt_only", Type: arginfo.Boolean,
			Default: "true", Choices: []string{"true", "false"},
			Description: "Boolean to only generate an excerpt to paste elsewhere.\nDefault is true.",
		},
		{
			Name: "faux_twitter_links", Type: arginfo.Boolean,
			Default: "false", Choices: []string{"true", "false"},
			Description: "Boolean to guess twitter user links, if the parser didn't provide them.\nLinks to comments still can't be guessed and will be \"#\".\nDefault is false.",
		},
	}
}

func (e *TranscriptHTML) UsesDestFile() bool { return true }

func (e *TranscriptHTML) Write(ctx context.Context, w io.Writer, snarks []model.Snark, showTime model.Delta, opts arginfo.Options) error {
	ns := e.Name()

	excerptOnly, err := opts.GetBool(ns, "excerpt_only", true)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrExporter)
	}
	fauxLinks, err := opts.GetBool(ns, "faux_twitter_links", false)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrExporter)
	}

	bw := bufio.NewWriter(w)

	if !excerptOnly {
		fmt.Fprint(bw, "<html>\r\n<body>\r\n")
	}

	for _, s := range snarks {
		userURL := s.UserURL
		if userURL == "" {
			if fauxLinks {
				userURL = "http://www.twitter.com/" + url.QueryEscape(strings.TrimPrefix(s.User, "@"))
			} else {
				userURL = "#"
			}
		}
		msgURL := s.MsgURL
		if msgURL == "" {
			msgURL = "#"
		}

		// les noms portent toujours le @
		user := s.User
		if !strings.HasPrefix(user, "@") {
			user = "@" + user
		}

		msg := html.EscapeString(s.Msg)
		msg = strings.ReplaceAll(msg, "\n", "<br/>")
		msg = escapeExotic(msg)

		fmt.Fprintf(bw,
			"<a href='%s'>%s</a>: %s <br/><font size=-3><a href='%s' style='color: grey; text-decoration: none;'>%s</a></font><br/>\r\n",
			userURL, user, msg, msgURL, s.Date.Format("2006-01-02 15:04:05"))
	}

	if !excerptOnly {
		fmt.Fprint(bw, "</body>\r\n</html>\r\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("écriture transcripthtml: %v: %w", err, ErrExporter)
	}
	return nil
}

// escapeExotic remplace tout caractère hors ascii par son entité
// numérique : le html reste collable dans n'importe quel éditeur.
func escapeExotic(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		} else {
			fmt.Fprintf(&b, "&#%d;", r)
		}
	}
	return b.String()
}
