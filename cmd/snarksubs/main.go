package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/patrickprogramme/snarksubs/internal/app"
	"github.com/patrickprogramme/snarksubs/internal/config"
	"github.com/patrickprogramme/snarksubs/internal/exporters"
	"github.com/patrickprogramme/snarksubs/internal/logger"
	"github.com/patrickprogramme/snarksubs/internal/parsers"
	"github.com/patrickprogramme/snarksubs/internal/snarks"
)

func main() {
	flags := parseFlags()

	// déterminer binDir pour les fichiers qui vivent à côté de l'exécutable
	binDir := "."
	if exePath, err := os.Executable(); err != nil {
		log.Printf("impossible de déterminer le chemin de l'exécutable: %v", err)
	} else {
		binDir = filepath.Dir(exePath)
	}

	// emplacement config par défaut
	if flags.ConfigPath == "snarksubs.yaml" || flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, "snarksubs.yaml")
	}

	zlog, closeLog, err := logger.New(filepath.Join(binDir, "log.txt"), flags.Verbose)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer closeLog()

	// charger la config (créée depuis l'exemple embarqué si absente)
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		zlog.Errorf("chargement de la config: %v", err)
		closeLog()
		os.Exit(1)
	}

	a := app.New(cfg, zlog, flags)

	if flags.List {
		a.ListAdapters()
		return
	}

	warnings, err := cfg.Validate(a.ParserNames(), a.ExporterNames())
	for _, w := range warnings {
		zlog.Warn(w)
	}
	if err != nil {
		zlog.Errorf("config invalide: %v", err)
		closeLog()
		os.Exit(1)
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		switch {
		case errors.Is(err, snarks.ErrNoSnarks):
			// issue prévisible, pas une panne
			zlog.Warnf("%v", err)
		case errors.Is(err, parsers.ErrParser), errors.Is(err, exporters.ErrExporter):
			zlog.Errorf("%v", err)
		default:
			zlog.Errorw("échec inattendu", "error", err)
		}
		stop()
		closeLog()
		os.Exit(1)
	}
}

func parseFlags() *app.CLIFlags {
	f := &app.CLIFlags{}
	flag.StringVar(&f.ConfigPath, "config", "snarksubs.yaml", "chemin du fichier de configuration")
	flag.StringVar(&f.ParserName, "parser", "", "parser à utiliser (écrase la config)")
	flag.StringVar(&f.ExporterName, "exporter", "", "exporter à utiliser (écrase la config)")
	flag.StringVar(&f.SrcPath, "src", "", "source des messages : chemin ou URL (écrase la config)")
	flag.StringVar(&f.DestPath, "dest", "", "fichier de sortie (écrase la config)")
	flag.StringVar(&f.FirstMsg, "first", "", "sous-chaîne du premier message à garder (écrase la config)")
	flag.BoolVar(&f.Clipboard, "clipboard", false, "copier aussi la sortie dans le presse-papier")
	flag.BoolVar(&f.List, "list", false, "lister les parsers et exporters disponibles")
	flag.BoolVar(&f.Verbose, "verbose", false, "journalisation DEBUG sur la console")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"snarksubs compile des messages horodatés en sous-titres.\n\nUsage:\n  %s [flags]\n\nFlags:\n",
			strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe"))
		flag.PrintDefaults()
	}
	flag.Parse()
	return f
}
