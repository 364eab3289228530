package config

import (
	"fmt"
	"strings"
)

// Validate vérifie la cohérence statique de la config avant un run.
// knownParsers / knownExporters : noms enregistrés dans les registres.
// Retourne warnings (non-fataux) et une erreur si c'est bloquant.
func (c *Config) Validate(knownParsers, knownExporters []string) (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	if c.ParserName == "" {
		return warnings, fmt.Errorf("parser_name manquant")
	}
	if !contains(knownParsers, c.ParserName) {
		return warnings, fmt.Errorf("parser inconnu %q (disponibles : %s)", c.ParserName, strings.Join(knownParsers, ", "))
	}
	if c.ExporterName == "" {
		return warnings, fmt.Errorf("exporter_name manquant")
	}
	if !contains(knownExporters, c.ExporterName) {
		return warnings, fmt.Errorf("exporter inconnu %q (disponibles : %s)", c.ExporterName, strings.Join(knownExporters, ", "))
	}

	switch c.ColorEnabled {
	case ColorNo, ColorRandom, ColorDefault:
	default:
		return warnings, fmt.Errorf("color_enabled %q invalide (no, random ou default)", c.ColorEnabled)
	}

	if c.ShowTime < 0 {
		return warnings, fmt.Errorf("show_time négatif : %s", c.ShowTime)
	}
	if c.EndTime != nil && *c.EndTime < 0 {
		warnings = append(warnings, fmt.Sprintf("end_time négatif (%s) : aucun message ne survivra", *c.EndTime))
	}

	if c.ColorEnabled == ColorRandom {
		enabled := 0
		for _, p := range c.Palette {
			if p.Use {
				enabled++
			}
		}
		if enabled == 0 {
			warnings = append(warnings, "palette sans entrée active : tous les utilisateurs seront blancs")
		}
	}

	return warnings, nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
