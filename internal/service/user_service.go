package service

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

var (
	// ErrUnknownUser is returned when no profile matches the given id.
	ErrUnknownUser = errors.New("no such user id")
	// ErrIncorrectPIN is returned when the pin does not match exactly.
	ErrIncorrectPIN = errors.New("incorrect pin")
)

// UserService holds the id-to-user directory and verifies credentials.
type UserService struct {
	profiles *storage.ProfileFile

	mu   sync.RWMutex
	byID map[int]ledger.User
}

func NewUserService(profiles *storage.ProfileFile) *UserService {
	return &UserService{
		profiles: profiles,
		byID:     make(map[int]ledger.User),
	}
}

// Load reads the profile file and replaces the directory with its contents.
// A reload is authoritative, not additive. A missing file is logged and
// leaves the directory empty. Returns the number of users loaded.
func (s *UserService) Load() int {
	users, err := s.profiles.Load()
	if err != nil {
		logrus.WithError(err).Warn("UserService.Load.starting with empty directory")
	}
	s.Replace(users)
	return len(users)
}

// Replace swaps in a new directory built from the given users. Later entries
// sharing an id overwrite earlier ones.
func (s *UserService) Replace(users []ledger.User) {
	byID := make(map[int]ledger.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	s.mu.Lock()
	s.byID = byID
	s.mu.Unlock()
}

// FindByID resolves a user id.
func (s *UserService) FindByID(id int) (ledger.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	return u, ok
}

// Authenticate verifies an id and pin pair and returns a session on success.
// The pin is compared by exact string match.
func (s *UserService) Authenticate(id int, pin string) (*Session, error) {
	user, ok := s.FindByID(id)
	if !ok {
		return nil, ErrUnknownUser
	}
	if user.PIN != pin {
		return nil, ErrIncorrectPIN
	}
	return &Session{User: user}, nil
}
