package session

// Flag décrit une catégorie de changement notifiée aux observateurs.
type Flag uint8

const (
	// FlagSnarks : la liste de snarks stable a changé.
	FlagSnarks Flag = 1 << iota
	// FlagConfigAny est impliqué dès qu'un flag de section config est posé.
	FlagConfigAny
	// FlagConfigAll se développe en tous les flags de section.
	FlagConfigAll
	FlagConfigFudges
	FlagConfigShowTime
	FlagConfigParsers
	FlagConfigExporters
)

// flags de section de la config, développés par FlagConfigAll
const configSections = FlagConfigFudges | FlagConfigShowTime | FlagConfigParsers | FlagConfigExporters

// Event est remis à chaque observateur lors d'une notification.
type Event struct {
	flags Flag
}

// NewEvent normalise un jeu de flags : FlagConfigAll ajoute toutes les
// sections, et toute section présente implique FlagConfigAny.
func NewEvent(flags Flag) Event {
	if flags&FlagConfigAll != 0 {
		flags |= configSections
	}
	if flags&configSections != 0 {
		flags |= FlagConfigAny
	}
	return Event{flags: flags}
}

// Has indique si tous les flags donnés sont présents.
func (e Event) Has(f Flag) bool {
	return e.flags&f == f
}
