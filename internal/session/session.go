// Package session encapsule l'état partagé d'une session d'édition :
// une config et une liste de snarks "stables", modifiées via un cycle
// checkout -> mutation -> commit. Un seul éditeur à la fois ; les
// lecteurs reçoivent des instantanés copiés, jamais d'alias. Les
// observateurs s'abonnent et se désabonnent explicitement.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/patrickprogramme/snarksubs/internal/config"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// Listener reçoit les notifications de changement.
type Listener interface {
	OnSnarksChanged(e Event)
}

// Session enveloppe config + snarks avec notifications de changement.
type Session struct {
	mu sync.Mutex

	configStable   *config.Config
	configUnstable *config.Config
	snarksStable   []model.Snark
	snarksUnstable []model.Snark
	snarksTouched  bool

	owner     string
	listeners []Listener
}

func New(cfg *config.Config, snarks []model.Snark) *Session {
	return &Session{
		configStable: cfg,
		snarksStable: snarks,
	}
}

// Checkout réclame la propriété temporaire des objets enveloppés.
// Erreur si un checkout est déjà en cours : un seul éditeur à la fois.
func (s *Session) Checkout(owner string) error {
	if owner == "" {
		return fmt.Errorf("session: checkout sans propriétaire")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner != "" {
		return fmt.Errorf("session: déjà réservée par %s, commit manquant", s.owner)
	}
	s.owner = owner
	return nil
}

// Commit rend les objets disponibles pour un nouveau checkout. Les
// versions instables deviennent les nouvelles versions stables.
func (s *Session) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner == "" {
		return fmt.Errorf("session: commit sans checkout")
	}
	if s.configUnstable != nil {
		s.configStable = s.configUnstable
		s.configUnstable = nil
	}
	if s.snarksTouched {
		s.snarksStable = s.snarksUnstable
		s.snarksUnstable = nil
		s.snarksTouched = false
	}
	s.owner = ""
	return nil
}

// Config retourne la config instable, modifiable sans risque. Copiée de
// la version stable au premier accès après un checkout ; la même copie
// est ensuite rendue jusqu'au commit.
func (s *Session) Config() (*config.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner == "" {
		return nil, fmt.Errorf("session: Config() sans checkout")
	}
	if s.configUnstable == nil {
		s.configUnstable = s.configStable.Clone()
	}
	return s.configUnstable, nil
}

// SetConfig remplace la config instable.
func (s *Session) SetConfig(cfg *config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner == "" {
		return fmt.Errorf("session: SetConfig() sans checkout")
	}
	s.configUnstable = cfg
	return nil
}

// Snarks retourne la liste instable, modifiable sans risque (copie
// paresseuse comme Config).
func (s *Session) Snarks() ([]model.Snark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner == "" {
		return nil, fmt.Errorf("session: Snarks() sans checkout")
	}
	if !s.snarksTouched {
		s.snarksUnstable = model.CloneSnarks(s.snarksStable)
		s.snarksTouched = true
	}
	return s.snarksUnstable, nil
}

// SetSnarks remplace la liste instable. Les snarks sans identifiant en
// reçoivent un : les observateurs suivent ainsi une ligne à travers les
// recalculs successifs.
func (s *Session) SetSnarks(snarks []model.Snark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner == "" {
		return fmt.Errorf("session: SetSnarks() sans checkout")
	}
	for i := range snarks {
		if snarks[i].ID == uuid.Nil {
			snarks[i].ID = uuid.New()
		}
	}
	s.snarksUnstable = snarks
	s.snarksTouched = true
	return nil
}

// CloneConfig retourne une copie profonde de la dernière config stable.
// C'est ce que les observateurs doivent relire à la notification.
func (s *Session) CloneConfig() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configStable.Clone()
}

// CloneSnarks retourne une copie profonde de la dernière liste stable.
func (s *Session) CloneSnarks() []model.Snark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneSnarks(s.snarksStable)
}

// Subscribe ajoute un observateur (sans effet s'il est déjà abonné).
// L'observateur doit appeler Unsubscribe à son démontage.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.listeners {
		if x == l {
			return
		}
	}
	s.listeners = append(s.listeners, l)
}

// Unsubscribe retire un observateur.
func (s *Session) Unsubscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, x := range s.listeners {
		if x == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Fire notifie tous les observateurs. Les callbacks sont invoqués hors
// verrou : un observateur peut relire CloneConfig/CloneSnarks.
func (s *Session) Fire(e Event) {
	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		l.OnSnarksChanged(e)
	}
}
