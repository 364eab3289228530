package parsers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/patrickprogramme/snarksubs/internal/archive"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

func TestArchiveFetchRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snarks.db")
	ctx := context.Background()

	gt := model.DeltaFromSeconds(65)
	color := model.RGB{R: 1, G: 0, B: 0}
	stored := []model.Snark{
		{
			ID:   uuid.New(),
			User: "@alice", Msg: "le film commence",
			Date: time.Date(2012, 4, 21, 20, 30, 5, 0, time.UTC),
			Time: model.DeltaFromSeconds(60),
		},
		{
			ID:   uuid.New(),
			User: "@bob", Msg: "premier plan",
			Date:       time.Date(2012, 4, 21, 20, 30, 20, 0, time.UTC),
			Time:       model.DeltaFromSeconds(75),
			GlobalTime: &gt,
			Color:      &color,
			Ignored:    true,
			UserURL:    "http://www.twitter.com/bob",
			MsgURL:     "http://twitter.com/#!/bob/status/2",
		},
	}

	db, err := archive.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := archive.WriteAll(ctx, db, stored); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	snarks, err := (&Archive{}).Fetch(ctx, path, "", nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(snarks) != 2 {
		t.Fatalf("len(snarks) = %d, attendu 2", len(snarks))
	}

	// tous les champs survivent à l'aller-retour
	if snarks[0].ID != stored[0].ID {
		t.Errorf("ID[0] = %v, attendu %v", snarks[0].ID, stored[0].ID)
	}
	if !snarks[0].Date.Equal(stored[0].Date) {
		t.Errorf("Date[0] = %v, attendu %v", snarks[0].Date, stored[0].Date)
	}
	if snarks[0].Time != stored[0].Time {
		t.Errorf("Time[0] = %v, attendu %v", snarks[0].Time, stored[0].Time)
	}
	if snarks[0].GlobalTime != nil || snarks[0].Color != nil || snarks[0].Ignored {
		t.Errorf("champs optionnels inattendus sur snark[0]: %v", snarks[0])
	}

	s := snarks[1]
	if s.GlobalTime == nil || *s.GlobalTime != gt {
		t.Errorf("GlobalTime[1] = %v, attendu %v", s.GlobalTime, gt)
	}
	if s.Color == nil || s.Color.Hex() != "ff0000" {
		t.Errorf("Color[1] = %v, attendu ff0000", s.Color)
	}
	if !s.Ignored {
		t.Error("Ignored[1] perdu")
	}
	if s.UserURL != stored[1].UserURL || s.MsgURL != stored[1].MsgURL {
		t.Errorf("urls[1] = %q %q", s.UserURL, s.MsgURL)
	}
}

func TestArchiveFetchFirstMsg(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snarks.db")
	ctx := context.Background()

	stored := []model.Snark{
		{ID: uuid.New(), User: "@alice", Msg: "avant", Date: time.Unix(100, 0).UTC()},
		{ID: uuid.New(), User: "@bob", Msg: "le vrai debut", Date: time.Unix(200, 0).UTC()},
		{ID: uuid.New(), User: "@carol", Msg: "apres", Date: time.Unix(300, 0).UTC()},
	}

	db, err := archive.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := archive.WriteAll(ctx, db, stored); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	db.Close()

	snarks, err := (&Archive{}).Fetch(ctx, path, "vrai debut", nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(snarks) != 2 {
		t.Fatalf("len(snarks) = %d, attendu 2", len(snarks))
	}
	if snarks[0].User != "@bob" {
		t.Errorf("premier snark = %v, attendu celui de @bob", snarks[0])
	}
}
