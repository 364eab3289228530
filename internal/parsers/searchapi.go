package parsers

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/internal/fetch"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

const defaultSearchURL = "http://search.twitter.com/search.json"

// format des dates created_at de l'API de recherche
const searchDateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// searchPage est une page de résultats JSON de l'API.
type searchPage struct {
	Results []struct {
		FromUser  string `json:"from_user"`
		Text      string `json:"text"`
		CreatedAt string `json:"created_at"`
		ID        int64  `json:"id"`
	} `json:"results"`
	NextPage string `json:"next_page"`
}

// SearchAPI collecte les snarks via une API de recherche paginée :
// les tweets d'un compte et les mentions @reply de ce compte. Une
// recherche isolée peut être lacunaire, d'où l'option passes qui
// relance la recherche pour combler les trous ; il est recommandé
// d'exporter d'abord vers une archive, puis de reparser CELLE-CI pour
// les ajustements.
type SearchAPI struct {
	// une requête par seconde, la limite polie de l'API
	limiter *rate.Limiter
}

func NewSearchAPI() *SearchAPI {
	return &SearchAPI{limiter: rate.NewLimiter(rate.Every(time.Second), 1)}
}

func (p *SearchAPI) Name() string { return "searchapi" }

func (p *SearchAPI) Describe() string {
	return "Collects snarks from a paginated search API.\nFinds posts from an account and any @reply mentions of it."
}

func (p *SearchAPI) Options() []arginfo.Arg {
	return []arginfo.Arg{
		{
			Name: "reply_name", Type: arginfo.String, Required: true,
			Description: "The name to which replies were directed (no \"@\").",
		},
		{
			Name: "since_date", Type: arginfo.Datetime,
			Description: "UTC date (YYYY-MM-DD) to limit dredging up old posts.",
		},
		{
			Name: "until_date", Type: arginfo.Datetime,
			Description: "UTC date (YYYY-MM-DD) to limit dredging up new posts.",
		},
		{
			Name: "passes", Type: arginfo.Integer, Default: "1",
			Description: "Search X times to fill omissions in results.",
		},
		{
			Name: "search_url", Type: arginfo.URL, Default: defaultSearchURL,
			Description: "Search API endpoint.",
		},
	}
}

func (p *SearchAPI) Fetch(ctx context.Context, src, firstMsg string, opts arginfo.Options) ([]model.Snark, error) {
	// src_path n'est pas utilisé : la source est l'API elle-même
	ns := p.Name()

	replyName := opts.Get(ns, "reply_name", "")
	if replyName == "" {
		return nil, fmt.Errorf("option requise %s.reply_name absente: %w", ns, ErrParser)
	}
	regexes := replyRegexes(replyName)

	passes, err := opts.GetInt(ns, "passes", 1)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrParser)
	}
	passesRemaining := 0
	if passes > 1 {
		passesRemaining = passes - 1
	}

	searchURL := opts.Get(ns, "search_url", defaultSearchURL)

	query := fmt.Sprintf("@%s OR from:%s", replyName, replyName)
	if since := opts.Get(ns, "since_date", ""); since != "" {
		query += " since:" + since
	}
	if until := opts.Get(ns, "until_date", ""); until != "" {
		query += " until:" + until
	}
	originalURL := fmt.Sprintf("%s?q=%s&rpp=100&page=1&result_type=recent", searchURL, url.QueryEscape(query))

	var snarks []model.Snark
	next := originalURL

	for next != "" {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("recherche interrompue: %v: %w", err, ErrParser)
		}

		var page searchPage
		if err := fetch.FetchJSONInto(ctx, next, 0, 0, &page); err != nil {
			return nil, fmt.Errorf("page de recherche: %v: %w", err, ErrParser)
		}

		for _, r := range page.Results {
			date, err := time.Parse(searchDateLayout, r.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("date de résultat %q: %v: %w", r.CreatedAt, err, ErrParser)
			}

			msg := stripReplyName(r.Text, regexes)
			msg = asciify(htmlUnescape(msg))

			snarks = append(snarks, model.Snark{
				User:    "@" + r.FromUser,
				Msg:     msg,
				Date:    date.UTC(),
				UserURL: "http://www.twitter.com/" + r.FromUser,
				MsgURL:  fmt.Sprintf("http://twitter.com/#!/%s/status/%d", r.FromUser, r.ID),
			})
		}

		switch {
		case page.NextPage != "":
			next = searchURL + page.NextPage
		case passesRemaining > 0:
			// une passe de plus depuis le début pour combler les trous,
			// après une pause polie
			passesRemaining--
			if err := fetch.Nap(ctx, time.Second); err != nil {
				return nil, fmt.Errorf("recherche interrompue: %v: %w", err, ErrParser)
			}
			next = originalURL
		default:
			next = ""
		}
	}

	sort.SliceStable(snarks, func(i, j int) bool {
		return snarks[i].Date.Before(snarks[j].Date)
	})
	snarks = dedupeSnarks(snarks)

	if firstMsg != "" {
		firstIndex := -1
		for i := range snarks {
			if strings.Contains(snarks[i].Msg, firstMsg) {
				// garder la DERNIÈRE occurrence : les passes multiples
				// peuvent en remonter des copies précoces
				firstIndex = i
			}
		}
		if firstIndex >= 0 {
			snarks = snarks[firstIndex:]
		} else {
			snarks = nil
		}
	}

	return snarks, nil
}

// dedupeSnarks élimine les doublons remontés par les passes multiples.
func dedupeSnarks(snarks []model.Snark) []model.Snark {
	seen := make(map[string]bool, len(snarks))
	out := snarks[:0]
	for _, s := range snarks {
		key := fmt.Sprintf("%s\x00%s\x00%d\x00%s", s.User, s.Msg, s.Date.UnixNano(), s.MsgURL)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
