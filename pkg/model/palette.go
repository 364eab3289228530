package model

// PaletteEntry est une couleur candidate de la palette. Seules les entrées
// avec Use=true participent au tirage aléatoire.
type PaletteEntry struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
	Use  bool   `yaml:"use"`
}

// DefaultPalette retourne la palette de départ. Liste préfabriquée plutôt
// qu'un randomiseur HSV : les couleurs restent distinguables sur un fond
// vidéo. Sources :
//
//	http://jsfiddle.net/k8NC2/1/
//	http://stackoverflow.com/questions/470690/how-to-automatically-generate-n-distinct-colors
//
// Quelques entrées sont désactivées par défaut (moches en sous-titres à
// basse résolution) mais restent proposables à l'opérateur.
func DefaultPalette() []PaletteEntry {
	return []PaletteEntry{
		{Name: "white", Hex: "FFFFFF", Use: true},
		{Name: "kelly-vivid-yellow", Hex: "FFB300", Use: true},
		{Name: "kelly-strong-purple", Hex: "803E75", Use: true},
		{Name: "kelly-vivid-orange", Hex: "FF6800", Use: false},
		{Name: "kelly-very-light-blue", Hex: "A6BDD7", Use: true},
		{Name: "kelly-grayish-yellow", Hex: "CEA262", Use: true},
		{Name: "kelly-medium-gray", Hex: "817066", Use: false},
		{Name: "kelly-vivid-green", Hex: "007D34", Use: true},
		{Name: "kelly-strong-purplish-pink", Hex: "F6768E", Use: false},
		{Name: "kelly-strong-blue", Hex: "00538A", Use: true},
		{Name: "kelly-strong-yellowish-pink", Hex: "FF7A5C", Use: false},
		{Name: "kelly-vivid-orange-yellow", Hex: "FF8E00", Use: false},
		{Name: "kelly-strong-purplish-red", Hex: "B32851", Use: false},
		{Name: "kelly-vivid-greenish-yellow", Hex: "F4C800", Use: false},
		{Name: "kelly-vivid-yellowish-green", Hex: "93AA00", Use: false},
		{Name: "kelly-reddish-orange", Hex: "F13A13", Use: false},
		{Name: "boynton-blue", Hex: "0000FF", Use: false},
		{Name: "boynton-red", Hex: "FF0000", Use: false},
		{Name: "boynton-gray", Hex: "808080", Use: true},
		{Name: "boynton-brown", Hex: "800000", Use: false},
		{Name: "softened-pink", Hex: "CC8080", Use: true},
		{Name: "softened-yellow", Hex: "FECC5A", Use: true},
		{Name: "softened-magenta", Hex: "CC00CC", Use: true},
		{Name: "softened-orange", Hex: "CC8000", Use: true},
		{Name: "softened-green", Hex: "00CC00", Use: true},
		{Name: "lighter-yellowish-brown", Hex: "795335", Use: true},
		{Name: "lighter-strong-violet", Hex: "73579A", Use: true},
	}
}

// ClonePalette copie la liste (les entrées sont des valeurs simples).
func ClonePalette(palette []PaletteEntry) []PaletteEntry {
	if palette == nil {
		return nil
	}
	out := make([]PaletteEntry, len(palette))
	copy(out, palette)
	return out
}
