package app

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/internal/clipboard"
	"github.com/patrickprogramme/snarksubs/internal/config"
	"github.com/patrickprogramme/snarksubs/internal/exporters"
	"github.com/patrickprogramme/snarksubs/internal/fsutil"
	"github.com/patrickprogramme/snarksubs/internal/parsers"
	"github.com/patrickprogramme/snarksubs/internal/session"
	"github.com/patrickprogramme/snarksubs/internal/snarks"
	"github.com/patrickprogramme/snarksubs/internal/ui"
)

// CLIFlags contient les informations venant des flags de l'app.
// Chaque champ non vide écrase le champ correspondant de la config.
type CLIFlags struct {
	ConfigPath   string
	ParserName   string
	ExporterName string
	SrcPath      string
	DestPath     string
	FirstMsg     string
	Clipboard    bool
	List         bool
	Verbose      bool
}

// App orchestre les différentes dépendances (parsers, exporters,
// session, UI...).
type App struct {
	cfg       *config.Config
	log       *zap.SugaredLogger
	flags     *CLIFlags
	parsers   *parsers.Registry
	exporters *exporters.Registry
	prompter  *ui.Prompter
}

// New construit l'application avec les registres intégrés.
// Pour les tests, on préférera construire App en injectant des
// implémentations réduites.
func New(cfg *config.Config, log *zap.SugaredLogger, flags *CLIFlags) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		flags:     flags,
		parsers:   parsers.DefaultRegistry(),
		exporters: exporters.DefaultRegistry(),
		prompter:  ui.NewPrompter(),
	}
}

// ParserNames expose les noms d'adaptateurs source connus (pour la
// validation de config et le flag -list).
func (a *App) ParserNames() []string { return a.parsers.Names() }

// ExporterNames expose les noms d'adaptateurs sortie connus.
func (a *App) ExporterNames() []string { return a.exporters.Names() }

// Run exécute le flux principal : collecte, pipeline, restitution.
func (a *App) Run(ctx context.Context) error {
	a.applyFlags()

	// la session n'a qu'un éditeur ici, mais elle garantit que le
	// sauvegardeur de config observe des instantanés cohérents
	sess := session.New(a.cfg, nil)
	saver := newConfigSaver(sess, a.log)
	sess.Subscribe(saver)
	defer sess.Unsubscribe(saver)

	if err := sess.Checkout("app.Run"); err != nil {
		return err
	}
	cfg, err := sess.Config()
	if err != nil {
		return err
	}

	parser, err := a.parsers.Get(cfg.ParserName)
	if err != nil {
		return err
	}
	a.log.Infof("collecte via le parser %s...", parser.Name())

	raw, err := parser.Fetch(ctx, cfg.SrcPath, cfg.FirstMsg, cfg.ParserOptions)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("aucun message collecté: %w", snarks.ErrNoSnarks)
	}
	a.log.Infof("%d messages collectés", len(raw))

	if err := sess.SetSnarks(raw); err != nil {
		return err
	}
	list, err := sess.Snarks()
	if err != nil {
		return err
	}

	processed, err := snarks.Process(cfg, list)
	if err != nil {
		return err
	}
	if err := sess.SetSnarks(processed); err != nil {
		return err
	}

	exporter, err := a.exporters.Get(cfg.ExporterName)
	if err != nil {
		return err
	}

	// compléter les options requises manquantes avant de figer la
	// config ; les secrets ne sont jamais écrits dans la session
	opts, configChanged, err := a.completeOptions(exporter, cfg.ExporterOptions)
	if err != nil {
		return err
	}

	if err := sess.Commit(); err != nil {
		return err
	}
	flags := session.FlagSnarks
	if configChanged {
		flags |= session.FlagConfigExporters
	}
	sess.Fire(session.NewEvent(flags))

	final := sess.CloneConfig()

	a.log.Infof("restitution via l'exporter %s...", exporter.Name())
	var buf bytes.Buffer
	if err := exporter.Write(ctx, &buf, sess.CloneSnarks(), final.ShowTime, opts); err != nil {
		return err
	}

	return a.deliver(exporter, final.DestPath, buf.Bytes())
}

// applyFlags écrase la config avec les valeurs passées en ligne de
// commande.
func (a *App) applyFlags() {
	if a.flags.ParserName != "" {
		a.cfg.ParserName = a.flags.ParserName
	}
	if a.flags.ExporterName != "" {
		a.cfg.ExporterName = a.flags.ExporterName
	}
	if a.flags.SrcPath != "" {
		a.cfg.SrcPath = a.flags.SrcPath
	}
	if a.flags.DestPath != "" {
		a.cfg.DestPath = a.flags.DestPath
	}
	if a.flags.FirstMsg != "" {
		a.cfg.FirstMsg = a.flags.FirstMsg
	}
}

// completeOptions demande à l'utilisateur les options requises encore
// absentes. Les valeurs ordinaires sont aussi reportées dans la config
// de session (elles seront sauvegardées) ; les HiddenString ne vivent
// que dans la copie retournée.
func (a *App) completeOptions(exporter exporters.Exporter, configured arginfo.Options) (arginfo.Options, bool, error) {
	ns := exporter.Name()

	opts := make(arginfo.Options, len(configured))
	for k, v := range configured {
		opts[k] = v
	}

	changed := false
	for _, arg := range arginfo.Missing(exporter.Options(), ns, opts) {
		label := fmt.Sprintf("option %s.%s", ns, arg.Name)

		var value string
		var err error
		if arg.Type == arginfo.HiddenString {
			value, err = a.prompter.PromptHidden(label)
		} else {
			value, err = a.prompter.PromptString(label)
		}
		if err != nil {
			return nil, false, fmt.Errorf("saisie de %s.%s: %v: %w", ns, arg.Name, err, exporters.ErrExporter)
		}
		if value == "" {
			return nil, false, fmt.Errorf("option requise %s.%s non renseignée: %w", ns, arg.Name, exporters.ErrExporter)
		}

		opts.Set(ns, arg.Name, value)
		if arg.Type != arginfo.HiddenString {
			configured.Set(ns, arg.Name, value)
			changed = true
		}
	}
	return opts, changed, nil
}

// deliver achemine la sortie bufferisée de l'exporter : fichier de
// destination, presse-papier, ou simple compte-rendu journalisé.
func (a *App) deliver(exporter exporters.Exporter, dest string, out []byte) error {
	wrote := false

	if exporter.UsesDestFile() {
		if dest == "" {
			dest = a.defaultDest(exporter.Name())
			a.log.Warnf("dest_path absent : sortie écrite dans %s", dest)
		}
		if err := fsutil.WriteFileAtomic(dest, out, 0o644); err != nil {
			return fmt.Errorf("écriture de %s: %v: %w", dest, err, exporters.ErrExporter)
		}
		a.log.Infof("sortie écrite dans %s", dest)
		wrote = true
	} else {
		// la destination est ailleurs (un billet de blog) : la sortie
		// n'est qu'un compte-rendu
		for _, line := range strings.Split(strings.TrimRight(string(out), "\r\n"), "\n") {
			if line = strings.TrimRight(line, "\r"); line != "" {
				a.log.Info(line)
			}
		}
		wrote = true
	}

	if a.flags.Clipboard {
		if err := clipboard.WriteAll(string(out)); err != nil {
			return fmt.Errorf("copie dans le presse-papier: %v: %w", err, exporters.ErrExporter)
		}
		a.log.Info("sortie copiée dans le presse-papier")
		wrote = true
	}

	if !wrote {
		return fmt.Errorf("aucune destination pour la sortie: %w", exporters.ErrExporter)
	}
	a.log.Info("terminé")
	return nil
}

// extensions de fichier par exporter ; ".out" pour un adaptateur inconnu
var destExtensions = map[string]string{
	"subrip":         ".srt",
	"tabbedtext":     ".txt",
	"transcripthtml": ".html",
	"archive":        ".db",
}

// defaultDest dérive un nom de fichier de sortie du nom de la source,
// assaini pour le système de fichiers.
func (a *App) defaultDest(exporterName string) string {
	base := strings.TrimSuffix(filepath.Base(a.cfg.SrcPath), filepath.Ext(a.cfg.SrcPath))
	ext, ok := destExtensions[exporterName]
	if !ok {
		ext = ".out"
	}
	return fsutil.SanitizeFilename(base) + ext
}

// ListAdapters journalise les adaptateurs disponibles, leur description
// et leurs options (pour le flag -list).
func (a *App) ListAdapters() {
	a.log.Info("parsers disponibles :")
	for _, name := range a.parsers.Names() {
		p, err := a.parsers.Get(name)
		if err != nil {
			continue
		}
		a.logAdapter(name, p.Describe(), p.Options())
	}
	a.log.Info("exporters disponibles :")
	for _, name := range a.exporters.Names() {
		e, err := a.exporters.Get(name)
		if err != nil {
			continue
		}
		a.logAdapter(name, e.Describe(), e.Options())
	}
}

func (a *App) logAdapter(name, desc string, args []arginfo.Arg) {
	a.log.Infof("  %s: %s", name, strings.ReplaceAll(desc, "\n", " "))
	for _, arg := range args {
		required := ""
		if arg.Required {
			required = " (requis)"
		}
		a.log.Infof("    %s.%s [%s]%s", name, arg.Name, arg.Type, required)
	}
}
