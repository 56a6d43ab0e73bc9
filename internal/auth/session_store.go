// Copyright (C) 2024 Open Government Forms
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/open-gov-forms/license-apply/internal/core"
)

// Session is the server side state behind the session cookie: the wizard's
// accumulated form data, the authenticated principals, the CSRF token and the
// identifier of the last submitted application.
type Session struct {
	id            string
	csrfToken     string
	lastSeen      time.Time
	principals    map[core.Role]core.Principal
	form          core.FormState
	applicationID string

	store *Store
	mu    sync.Mutex
}

var _ core.AuthSession = (*Session)(nil)

func (s *Session) ID() string {
	return s.id
}

func (s *Session) CSRFToken() string {
	return s.csrfToken
}

func (s *Session) Principal(role core.Role) (core.Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.principals[role]
	return p, ok
}

func (s *Session) SetPrincipal(p core.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principals[p.Role] = p
}

func (s *Session) ClearPrincipal(role core.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.principals, role)
}

func (s *Session) FormState() *core.FormState {
	return &s.form
}

func (s *Session) ApplicationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applicationID
}

func (s *Session) SetApplicationID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applicationID = id
}

func (s *Session) Destroy() {
	s.store.Destroy(s.id)
}

// Store keeps sessions in process, keyed by an opaque identifier. It is the
// only shared mutable structure outside the database; a janitor goroutine
// sweeps entries that have been idle longer than the TTL.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	done     chan struct{}
}

func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: map[string]*Session{},
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *Store) New() *Session {
	session := &Session{
		id:         newToken(),
		csrfToken:  newToken(),
		lastSeen:   time.Now(),
		principals: map[core.Role]core.Principal{},
		store:      s,
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	return session
}

func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Since(session.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	session.lastSeen = time.Now()
	return session, true
}

func (s *Store) Destroy(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) Close() {
	close(s.done)
}

func (s *Store) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			for id, session := range s.sessions {
				if time.Since(session.lastSeen) > s.ttl {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

func newToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
