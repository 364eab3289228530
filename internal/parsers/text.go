package parsers

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// replyRegex est une paire motif/remplacement pour gommer le nom du
// compte auquel les réponses étaient adressées.
type replyRegex struct {
	ptn *regexp.Regexp
	rep string
}

// replyRegexes construit les motifs de nettoyage pour replyName (sans
// "@"). D'abord "@name" entouré d'espaces -> un espace, puis toute
// occurrence restante -> rien.
func replyRegexes(replyName string) []replyRegex {
	if replyName == "" {
		return nil
	}
	escaped := regexp.QuoteMeta(replyName)
	return []replyRegex{
		{regexp.MustCompile(`(?i) +@` + escaped + ` +`), " "},
		{regexp.MustCompile(`(?i) *@` + escaped + ` *`), ""},
	}
}

func stripReplyName(msg string, regexes []replyRegex) string {
	for _, rr := range regexes {
		msg = rr.ptn.ReplaceAllString(msg, rr.rep)
	}
	return msg
}

// asciify remplace la ponctuation typographique par son équivalent
// ascii, et tout autre caractère non-ascii par "?". Les sous-titres
// passent par des lecteurs vidéo au support unicode inégal.
func asciify(s string) string {
	replacer := strings.NewReplacer(
		"–", "-",
		"—", "-",
		"‘", "'",
		"’", "'",
		"′", "'",
		"“", `"`,
		"”", `"`,
		"…", "...",
	)
	s = replacer.Replace(s)

	var b strings.Builder
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// htmlUnescape décode les entités HTML/XML d'un texte.
func htmlUnescape(s string) string {
	return html.UnescapeString(s)
}

// missingSrcErr : erreur uniforme quand src_path manque.
func missingSrcErr(name string) error {
	return fmt.Errorf("le parser %s exige l'argument général src_path: %w", name, ErrParser)
}
