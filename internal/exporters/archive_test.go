package exporters

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/patrickprogramme/snarksubs/internal/archive"
	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// Les octets produits par l'exporter, recopiés dans un fichier, doivent
// former une base sqlite relisible.
func TestArchiveWriteProducesReadableDB(t *testing.T) {
	ctx := context.Background()
	gt := model.DeltaFromSeconds(65)
	stored := []model.Snark{
		{
			ID:   uuid.New(),
			User: "@alice", Msg: "le film commence",
			Date:       time.Date(2012, 4, 21, 20, 30, 5, 0, time.UTC),
			Time:       model.DeltaFromSeconds(60),
			GlobalTime: &gt,
		},
	}

	var buf bytes.Buffer
	if err := (&Archive{}).Write(ctx, &buf, stored, model.DeltaFromSeconds(6), arginfo.Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snarks.db")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("écriture du fichier: %v", err)
	}

	db, err := archive.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	snarks, err := archive.ReadAll(ctx, db)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(snarks) != 1 {
		t.Fatalf("len(snarks) = %d, attendu 1", len(snarks))
	}
	if snarks[0].ID != stored[0].ID || snarks[0].Msg != stored[0].Msg {
		t.Errorf("snark relu = %v, attendu %v", snarks[0], stored[0])
	}
	if snarks[0].GlobalTime == nil || *snarks[0].GlobalTime != gt {
		t.Errorf("GlobalTime relu = %v, attendu %v", snarks[0].GlobalTime, gt)
	}
}
