package exporters

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

func sampleSnarks() []model.Snark {
	red := model.RGB{R: 1, G: 0, B: 0}
	green := model.RGB{R: 0, G: 1, B: 0}
	return []model.Snark{
		{
			User: "@alice", Msg: "le film commence",
			Date: time.Date(2012, 4, 21, 20, 30, 5, 0, time.UTC),
			Time: model.DeltaFromSeconds(60), Color: &red,
		},
		{
			User: "@bob", Msg: "un lien http://example.com/x et la suite",
			Date: time.Date(2012, 4, 21, 20, 30, 20, 0, time.UTC),
			Time: model.DeltaFromSeconds(75), Color: &green,
		},
	}
}

func TestSubRipWrite(t *testing.T) {
	var buf bytes.Buffer
	showTime := model.DeltaFromSeconds(6)

	err := (&SubRip{}).Write(context.Background(), &buf, sampleSnarks(), showTime, arginfo.Options{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	// bloc-palette en tête : un "#" par couleur, d'une seconde jusqu'à
	// une seconde plus show_time
	wantPalette := "1\r\n00:00:01,000 --> 00:00:07,000\r\n" +
		`<font color="#ff0000">#</font><font color="#00ff00">#</font>` + "\r\n\r\n"
	if !strings.HasPrefix(out, wantPalette) {
		t.Errorf("préambule inattendu:\n%q", out)
	}

	wantEntry := "2\r\n00:01:00,000 --> 00:01:06,000\r\n" +
		`alice: <font color="#ff0000">le film commence</font>` + "\r\n\r\n"
	if !strings.Contains(out, wantEntry) {
		t.Errorf("entrée alice absente de:\n%q", out)
	}

	// les liens sont gommés des messages
	if strings.Contains(out, "http://example.com") {
		t.Errorf("lien non gommé:\n%q", out)
	}
	if !strings.Contains(out, "un lien et la suite") {
		t.Errorf("message de bob inattendu:\n%q", out)
	}
}

func TestSubRipWithoutNames(t *testing.T) {
	var buf bytes.Buffer
	opts := arginfo.Options{}
	opts.Set("subrip", "include_names", "false")

	snarks := []model.Snark{{User: "@alice", Msg: "seule", Time: model.DeltaFromSeconds(5)}}
	err := (&SubRip{}).Write(context.Background(), &buf, snarks, model.DeltaFromSeconds(6), opts)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	// pas de couleur : pas de bloc-palette, indexation depuis 1
	want := "1\r\n00:00:05,000 --> 00:00:11,000\r\nseule\r\n\r\n"
	if buf.String() != want {
		t.Errorf("sortie = %q, attendu %q", buf.String(), want)
	}
}

func TestSubRipCollapsesBlankLines(t *testing.T) {
	var buf bytes.Buffer
	opts := arginfo.Options{}
	opts.Set("subrip", "include_names", "false")

	snarks := []model.Snark{{User: "@a", Msg: "  haut \n\n\n bas  ", Time: 0}}
	err := (&SubRip{}).Write(context.Background(), &buf, snarks, model.DeltaFromSeconds(6), opts)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "haut\r\nbas\r\n") {
		t.Errorf("lignes vides non repliées:\n%q", buf.String())
	}
}
