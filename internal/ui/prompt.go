// Package ui regroupe les interactions terminal : demander à l'opérateur
// les options d'adaptateur manquantes, en masquant la saisie des secrets
// (mots de passe de blog).
package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

type Prompter struct {
	reader *bufio.Reader
}

func NewPrompter() *Prompter {
	return &Prompter{reader: bufio.NewReader(os.Stdin)}
}

// PromptString affiche label puis lit une ligne sur stdin.
func (p *Prompter) PromptString(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	input, err := p.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("lecture stdin: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// PromptHidden lit une valeur sans écho (terminal requis). Si stdin n'est
// pas un terminal, retombe sur une lecture visible plutôt que d'échouer.
func (p *Prompter) PromptHidden(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return p.PromptString(label)
	}
	fmt.Fprintf(os.Stderr, "%s: ", label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("lecture masquée: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
