// Package archive lit et écrit des snarks dans une base sqlite locale :
// le format d'aller-retour sans perte (tous les champs, y compris les
// extras des parsers) qui sert de tampon entre une collecte coûteuse et
// des exports répétés.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/patrickprogramme/snarksubs/pkg/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS snarks (
	id          TEXT NOT NULL,
	user        TEXT NOT NULL,
	msg         TEXT NOT NULL,
	date_unix   INTEGER NOT NULL,
	time_sec    INTEGER NOT NULL,
	global_sec  INTEGER,
	color_hex   TEXT,
	ignored     INTEGER NOT NULL DEFAULT 0,
	user_url    TEXT NOT NULL DEFAULT '',
	msg_url     TEXT NOT NULL DEFAULT ''
);`

// Open ouvre (ou crée) une archive sqlite et s'assure du schéma.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ouverture de l'archive %s: %w", path, err)
	}
	// sqlite n'accepte qu'un écrivain
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("schéma de l'archive %s: %w", path, err)
	}
	return db, nil
}

// ReadAll restitue tous les snarks dans leur ordre d'insertion.
func ReadAll(ctx context.Context, db *sql.DB) ([]model.Snark, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user, msg, date_unix, time_sec, global_sec, color_hex, ignored, user_url, msg_url
		FROM snarks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("lecture de l'archive: %w", err)
	}
	defer rows.Close()

	var snarks []model.Snark
	for rows.Next() {
		var (
			id        string
			s         model.Snark
			dateUnix  int64
			timeSec   int64
			globalSec sql.NullInt64
			colorHex  sql.NullString
			ignored   int
		)
		if err := rows.Scan(&id, &s.User, &s.Msg, &dateUnix, &timeSec, &globalSec, &colorHex, &ignored, &s.UserURL, &s.MsgURL); err != nil {
			return nil, fmt.Errorf("ligne d'archive: %w", err)
		}
		if parsed, err := uuid.Parse(id); err == nil {
			s.ID = parsed
		}
		s.Date = unixUTC(dateUnix)
		s.Time = model.DeltaFromSeconds(timeSec)
		if globalSec.Valid {
			gt := model.DeltaFromSeconds(globalSec.Int64)
			s.GlobalTime = &gt
		}
		if colorHex.Valid && colorHex.String != "" {
			if c, err := model.HexToRGB(colorHex.String); err == nil {
				s.Color = &c
			}
		}
		s.Ignored = ignored != 0
		snarks = append(snarks, s)
	}
	return snarks, rows.Err()
}

// WriteAll remplace le contenu de l'archive par la liste donnée, dans
// une transaction : archive complète ou archive intacte, rien entre.
func WriteAll(ctx context.Context, db *sql.DB, snarks []model.Snark) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transaction d'archive: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snarks`); err != nil {
		return fmt.Errorf("purge de l'archive: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snarks (id, user, msg, date_unix, time_sec, global_sec, color_hex, ignored, user_url, msg_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("préparation d'insertion: %w", err)
	}
	defer stmt.Close()

	for _, s := range snarks {
		var globalSec interface{}
		if s.GlobalTime != nil {
			globalSec = s.GlobalTime.Seconds()
		}
		var colorHex interface{}
		if s.Color != nil {
			colorHex = s.Color.Hex()
		}
		ignored := 0
		if s.Ignored {
			ignored = 1
		}
		if _, err := stmt.ExecContext(ctx,
			s.ID.String(), s.User, s.Msg, s.Date.Unix(), s.Time.Seconds(),
			globalSec, colorHex, ignored, s.UserURL, s.MsgURL); err != nil {
			return fmt.Errorf("insertion d'un snark: %w", err)
		}
	}

	return tx.Commit()
}

func unixUTC(n int64) time.Time {
	return time.Unix(n, 0).UTC()
}
