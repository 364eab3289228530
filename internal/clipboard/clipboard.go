package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// WriteAll écrit une chaîne de caractères dans le presse-papier.
// Sert au mode -clipboard : coller l'export HTML directement dans un
// éditeur de billet de blog sans passer par un fichier.
func WriteAll(text string) error {
	if text == "" {
		return errors.New("le texte à copier ne peut pas être vide")
	}
	return clipboard.WriteAll(text)
}

// ReadAll lit le contenu texte du presse-papier.
func ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return text, nil
}
