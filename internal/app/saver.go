package app

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/patrickprogramme/snarksubs/internal/session"
)

const backupName = "config_backup.yaml"

// configSaver est un observateur de session qui sauvegarde un cliché de
// la config à chaque changement la concernant. Un plantage en cours de
// route ne fait ainsi pas perdre les options saisies pendant le run.
type configSaver struct {
	sess *session.Session
	log  *zap.SugaredLogger
}

func newConfigSaver(sess *session.Session, log *zap.SugaredLogger) *configSaver {
	return &configSaver{sess: sess, log: log}
}

func (s *configSaver) OnSnarksChanged(e session.Event) {
	if !e.Has(session.FlagConfigAny) {
		return
	}
	cfg := s.sess.CloneConfig()

	path := backupName
	if orig := cfg.Path(); orig != "" {
		path = filepath.Join(filepath.Dir(orig), backupName)
	}
	if err := cfg.Save(path); err != nil {
		s.log.Warnf("sauvegarde du cliché de config: %v", err)
		return
	}
	s.log.Debugf("config clichée dans %s", path)
}
