// Package session persists the operator's login durably on the client side,
// so commands survive process restarts without re-authenticating. It is the
// explicit replacement for ambient browser-local storage: callers load a
// session and pass it where it is needed.
package session

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// ErrNoSession means no operator is logged in.
var ErrNoSession = errors.New("session: not logged in")

// Session is what a successful login yields.
type Session struct {
	Email       string    `json:"email,omitempty"`
	AccessToken string    `json:"accessToken"`
	IsAdmin     bool      `json:"isAdmin"`
	SavedAt     time.Time `json:"savedAt"`
}

// Authorized reports whether the session may drive admin operations.
func (s Session) Authorized() bool {
	return s.AccessToken != "" && s.IsAdmin
}

const sessionKey = "session"

// Store keeps the session in a diskv store under the configured state path.
type Store struct {
	d *diskv.Diskv
}

func NewStore(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 64,
	})}
}

func (s *Store) Save(sess Session) error {
	if sess.SavedAt.IsZero() {
		sess.SavedAt = time.Now()
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.d.Write(sessionKey, data)
}

func (s *Store) Load() (Session, error) {
	if !s.d.Has(sessionKey) {
		return Session{}, ErrNoSession
	}
	data, err := s.d.Read(sessionKey)
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Store) Clear() error {
	if !s.d.Has(sessionKey) {
		return nil
	}
	return s.d.Erase(sessionKey)
}
