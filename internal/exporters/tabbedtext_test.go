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

func TestTabbedTextWrite(t *testing.T) {
	red := model.RGB{R: 1, G: 0, B: 0}
	snarks := []model.Snark{
		{
			User: "@alice", Msg: "ligne un\nligne deux",
			Date: time.Date(2012, 4, 21, 20, 30, 5, 0, time.UTC),
			Time: model.DeltaFromSeconds(60), Color: &red,
		},
		{
			User: "@bob", Msg: "sans couleur",
			Date: time.Date(2012, 4, 21, 20, 30, 20, 0, time.UTC),
			Time: model.DeltaFromSeconds(75),
		},
	}

	var buf bytes.Buffer
	err := (&TabbedText{}).Write(context.Background(), &buf, snarks, model.DeltaFromSeconds(6), arginfo.Options{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	lines := strings.Split(buf.String(), "\r\n")
	if len(lines) != 4 || lines[3] != "" {
		t.Fatalf("framing inattendu: %q", buf.String())
	}
	if lines[0] != "In-Movie Time\tOriginal Date\tColor\tUser\tMsg" {
		t.Errorf("en-tête = %q", lines[0])
	}
	// sauts de ligne en \n littéraux, couleur en hex
	if want := "00:01:00\t2012-04-21 20:30:05\tff0000\t@alice\tligne un\\nligne deux"; lines[1] != want {
		t.Errorf("ligne[1] = %q, attendu %q", lines[1], want)
	}
	// colonne couleur vide quand le snark n'en a pas
	if want := "00:01:15\t2012-04-21 20:30:20\t\t@bob\tsans couleur"; lines[2] != want {
		t.Errorf("ligne[2] = %q, attendu %q", lines[2], want)
	}
}
