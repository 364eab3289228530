package parsers

import (
	"context"
	"testing"
	"time"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
)

const transcriptFixture = `<h1>Transcript de la soiree</h1>
<a href='http://www.twitter.com/alice'>@alice</a>: le film commence &amp; c&#8217;est parti <br/><font size=-3><a href='http://twitter.com/#!/alice/status/1'>2012-04-21 20:30:05</a></font><br/>
<a href='http://www.twitter.com/bob'>@bob</a>: @host premier plan <br /><font size=-3><a href='http://twitter.com/#!/bob/status/2'>2012-04-21 20:30:20</a></font><br />
<div class="zemanta robots-nocontent">habillage du billet</div>
<a href='http://www.twitter.com/carol'>@carol</a>: jamais vu <br/><font size=-3><a href='http://twitter.com/#!/carol/status/3'>2012-04-21 20:30:40</a></font><br/>
`

func TestTranscriptHTMLFetch(t *testing.T) {
	src := writeFixture(t, "transcript.html", transcriptFixture)

	opts := arginfo.Options{}
	opts.Set("transcripthtml", "reply_name", "host")

	snarks, err := (&TranscriptHTML{}).Fetch(context.Background(), src, "", opts)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	// tout ce qui suit le marqueur robots-nocontent est de l'habillage
	if len(snarks) != 2 {
		t.Fatalf("len(snarks) = %d, attendu 2", len(snarks))
	}

	// entités html décodées, apostrophe typographique ramenée en ascii
	if got, want := snarks[0].Msg, "le film commence & c'est parti"; got != want {
		t.Errorf("Msg[0] = %q, attendu %q", got, want)
	}
	if snarks[0].UserURL != "http://www.twitter.com/alice" {
		t.Errorf("UserURL[0] = %q", snarks[0].UserURL)
	}
	if snarks[0].MsgURL != "http://twitter.com/#!/alice/status/1" {
		t.Errorf("MsgURL[0] = %q", snarks[0].MsgURL)
	}

	// dates en UTC
	want := time.Date(2012, 4, 21, 20, 30, 5, 0, time.UTC)
	if !snarks[0].Date.Equal(want) {
		t.Errorf("Date[0] = %v, attendu %v", snarks[0].Date, want)
	}

	if got, want := snarks[1].Msg, "premier plan"; got != want {
		t.Errorf("Msg[1] = %q, attendu %q", got, want)
	}
	if snarks[1].User != "@bob" {
		t.Errorf("User[1] = %q", snarks[1].User)
	}
}
