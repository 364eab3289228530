package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/patrickprogramme/snarksubs/pkg/model"
)

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snarksubs.yaml")

	cfg := defaultConfig()
	cfg.ParserName = "tabbedtext"
	cfg.ExporterName = "transcripthtml"
	cfg.SrcPath = "snarks.txt"
	cfg.FirstMsg = "and here we go"
	cfg.FudgeTime = model.Delta(-2 * time.Minute)
	cfg.FudgeUsers.Add("@steve", model.Fudge{
		Bookmark: model.Delta(10 * time.Minute),
		Amount:   model.Delta(5 * time.Second),
	})
	cfg.FudgeUsers.Add("@steve", model.Fudge{
		Bookmark: model.Delta(20 * time.Minute),
		Amount:   model.Delta(8 * time.Second),
	})
	cfg.IgnoreUsers = []string{"@spambot"}
	et := model.Delta(2 * time.Hour)
	cfg.EndTime = &et
	cfg.ParserOptions.Set("tabbedtext", "reply_name_escaped", "true")

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.ParserName != cfg.ParserName || got.ExporterName != cfg.ExporterName {
		t.Errorf("adaptateurs: got %s/%s", got.ParserName, got.ExporterName)
	}
	if got.FirstMsg != cfg.FirstMsg {
		t.Errorf("first_msg: got %q", got.FirstMsg)
	}
	if got.FudgeTime != cfg.FudgeTime {
		t.Errorf("fudge_time: got %v want %v", got.FudgeTime, cfg.FudgeTime)
	}
	if got.EndTime == nil || *got.EndTime != et {
		t.Errorf("end_time: got %v", got.EndTime)
	}

	list := got.FudgeUsers["@steve"]
	if len(list) != 2 {
		t.Fatalf("fudge_users: got %#v", got.FudgeUsers)
	}
	if list[0].Bookmark != model.Delta(10*time.Minute) || list[0].Amount != model.Delta(5*time.Second) {
		t.Errorf("fudge[0]: got %+v", list[0])
	}
	if list[1].Bookmark != model.Delta(20*time.Minute) || list[1].Amount != model.Delta(8*time.Second) {
		t.Errorf("fudge[1]: got %+v", list[1])
	}

	if v := got.ParserOptions.Get("tabbedtext", "reply_name_escaped", ""); v != "true" {
		t.Errorf("parser option: got %q", v)
	}
}

func TestLoadCreatesDefaultFromEmbeddedAsset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snarksubs.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ParserName != "chatlog" || cfg.ExporterName != "subrip" {
		t.Errorf("defaults: got %s/%s", cfg.ParserName, cfg.ExporterName)
	}
	if cfg.ColorEnabled != ColorRandom {
		t.Errorf("color_enabled: got %q", cfg.ColorEnabled)
	}
	if cfg.ShowTime != model.Delta(6*time.Second) {
		t.Errorf("show_time: got %v", cfg.ShowTime)
	}
	// la palette vide de l'asset retombe sur la palette intégrée
	if len(cfg.Palette) == 0 {
		t.Errorf("palette left empty after normalize")
	}
	if cfg.FudgeUsers == nil || cfg.ParserOptions == nil || cfg.ExporterOptions == nil {
		t.Errorf("nil maps after normalize")
	}
}

func TestConfigCloneIsDeep(t *testing.T) {
	cfg := defaultConfig()
	cfg.FudgeUsers.Add("@a", model.Fudge{Bookmark: model.Delta(time.Minute), Amount: model.Delta(time.Second)})
	et := model.Delta(time.Hour)
	cfg.EndTime = &et

	clone := cfg.Clone()
	clone.FudgeUsers.Add("@a", model.Fudge{Bookmark: model.Delta(2 * time.Minute), Amount: model.Delta(9 * time.Second)})
	*clone.EndTime = model.Delta(2 * time.Hour)
	clone.ParserOptions.Set("chatlog", "x", "1")

	if len(cfg.FudgeUsers["@a"]) != 1 {
		t.Errorf("clone shares fudge table")
	}
	if *cfg.EndTime != model.Delta(time.Hour) {
		t.Errorf("clone shares end_time pointer")
	}
	if cfg.ParserOptions.Has("chatlog", "x") {
		t.Errorf("clone shares options map")
	}
}

func TestValidate(t *testing.T) {
	parsers := []string{"chatlog", "tabbedtext"}
	exporters := []string{"subrip"}

	cfg := defaultConfig()
	if _, err := cfg.Validate(parsers, exporters); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	bad := defaultConfig()
	bad.ParserName = "nosuch"
	if _, err := bad.Validate(parsers, exporters); err == nil {
		t.Errorf("unknown parser accepted")
	}

	bad = defaultConfig()
	bad.ColorEnabled = "rainbow"
	bad.normalizeConfig()
	if _, err := bad.Validate(parsers, exporters); err == nil {
		t.Errorf("bad color mode accepted")
	}
}
