// Package logger construit le logger zap de l'application : une sortie
// console lisible (INFO et plus, sans horodatage) doublée d'un fichier
// log.txt détaillé (DEBUG et plus, horodaté), comme l'attendent les
// longues sessions de calage de sous-titres.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New retourne le logger et une fonction de fermeture à defer-er.
// logPath vide désactive la sortie fichier (utile pour les tests).
// verbose abaisse la console à DEBUG.
func New(logPath string, verbose bool) (*zap.SugaredLogger, func(), error) {
	consoleLevel := zapcore.InfoLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.TimeKey = "" // la console reste lisible, le fichier garde l'heure
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleCfg),
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)

	cores := []zapcore.Core{consoleCore}
	closeFn := func() {}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		fileCfg := zap.NewDevelopmentEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		fileCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(fileCfg),
			zapcore.Lock(f),
			zapcore.DebugLevel,
		)
		cores = append(cores, fileCore)
		closeFn = func() { _ = f.Close() }
	}

	zl := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zapcore.ErrorLevel))
	log := zl.Sugar()
	return log, func() {
		_ = log.Sync()
		closeFn()
	}, nil
}

// Nop retourne un logger muet pour les tests.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
