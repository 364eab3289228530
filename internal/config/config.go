package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/internal/assets"
	"github.com/patrickprogramme/snarksubs/internal/bootstrap"
	"github.com/patrickprogramme/snarksubs/internal/fsutil"
	"github.com/patrickprogramme/snarksubs/pkg/model"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

// struct pour les paramètres de configuration
type Config struct {
	// Adaptateurs
	ParserName   string `yaml:"parser_name"`
	ExporterName string `yaml:"exporter_name"`

	// Entrée / sortie
	SrcPath  string `yaml:"src_path"`
	DestPath string `yaml:"dest_path"`

	// Premier message à garder (sous-chaîne, sensible à la casse)
	FirstMsg string `yaml:"first_msg"`

	// Calage temporel
	FudgeTime  model.Delta      `yaml:"fudge_time"`
	FudgeUsers model.FudgeTable `yaml:"fudge_users"`

	// Filtrage
	IgnoreUsers []string     `yaml:"ignore_users"`
	EndTime     *model.Delta `yaml:"end_time"`

	// Couleur : no | random | default
	ColorEnabled string               `yaml:"color_enabled"`
	Palette      []model.PaletteEntry `yaml:"palette"`

	// Durée d'affichage de chaque message (consommée par les exporters)
	ShowTime model.Delta `yaml:"show_time"`

	// Options propres aux adaptateurs, clés "adaptateur.option"
	ParserOptions   arginfo.Options `yaml:"parser_options"`
	ExporterOptions arginfo.Options `yaml:"exporter_options"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Modes de couleur acceptés.
const (
	ColorNo      = "no"
	ColorRandom  = "random"
	ColorDefault = "default"
)

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	c.ParserName = "chatlog"
	c.ExporterName = "subrip"

	c.FudgeTime = 0
	c.FudgeUsers = model.FudgeTable{}
	c.IgnoreUsers = nil
	c.EndTime = nil

	c.ColorEnabled = ColorRandom
	c.Palette = model.DefaultPalette()

	c.ShowTime = model.Delta(6_000_000_000) // 6s

	c.ParserOptions = arginfo.Options{}
	c.ExporterOptions = arginfo.Options{}

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple
// embarqué depuis internal/assets.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "snarksubs.yaml"
	}

	// si le fichier n'existe pas -> le créer à partir de l'asset embarqué
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := bootstrap.EnsureConfigPresent(path, assets.Embedded, assets.DefaultConfigAsset); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// On déserialise dans cfg initialisé : les champs absents conservent les valeurs par défaut.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		// re-normaliser au cas où la migration a modifié des valeurs
		cfg.normalizeConfig()
	}

	return cfg, nil
}

// Save sérialise la config en YAML et l'écrit atomiquement.
// path vide : réécrire le fichier d'origine.
func (c *Config) Save(path string) error {
	if path == "" {
		path = c.configFilePath
	}
	if path == "" {
		return fmt.Errorf("aucun chemin de configuration connu")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("échec d'encodage YAML de la configuration : %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture de la configuration %s : %w", path, err)
	}
	return nil
}

// Path retourne le fichier d'où la config a été chargée ("" si construite).
func (c *Config) Path() string { return c.configFilePath }

// Clone retourne une copie profonde, sûre à modifier pendant qu'une autre
// goroutine lit l'originale.
func (c *Config) Clone() *Config {
	out := *c
	out.FudgeUsers = c.FudgeUsers.Clone()
	out.IgnoreUsers = append([]string(nil), c.IgnoreUsers...)
	if c.EndTime != nil {
		et := *c.EndTime
		out.EndTime = &et
	}
	out.Palette = model.ClonePalette(c.Palette)
	out.ParserOptions = make(arginfo.Options, len(c.ParserOptions))
	for k, v := range c.ParserOptions {
		out.ParserOptions[k] = v
	}
	out.ExporterOptions = make(arginfo.Options, len(c.ExporterOptions))
	for k, v := range c.ExporterOptions {
		out.ExporterOptions[k] = v
	}
	return &out
}

func (c *Config) normalizeConfig() {
	c.ParserName = strings.TrimSpace(c.ParserName)
	c.ExporterName = strings.TrimSpace(c.ExporterName)
	c.SrcPath = strings.TrimSpace(c.SrcPath)
	c.DestPath = strings.TrimSpace(c.DestPath)

	c.ColorEnabled = strings.TrimSpace(strings.ToLower(c.ColorEnabled))
	if c.ColorEnabled == "" {
		c.ColorEnabled = ColorRandom
	}

	// les maps restent utilisables même si le YAML les a laissées à nil
	if c.FudgeUsers == nil {
		c.FudgeUsers = model.FudgeTable{}
	}
	if c.ParserOptions == nil {
		c.ParserOptions = arginfo.Options{}
	}
	if c.ExporterOptions == nil {
		c.ExporterOptions = arginfo.Options{}
	}
	if len(c.Palette) == 0 {
		c.Palette = model.DefaultPalette()
	}
}
