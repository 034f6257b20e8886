package auth

import (
	"sync"
	"time"
)

// issuedCode is a pending verification code, stored hashed.
type issuedCode struct {
	hash      []byte
	expiresAt time.Time
}

// CodeStore keeps pending verification codes keyed by contact, each with an
// explicit expiry that is checked on read. Issuing a new code for a contact
// overwrites the previous one.
type CodeStore struct {
	mu    sync.Mutex
	codes map[string]issuedCode
}

// NewCodeStore constructs an empty code store.
func NewCodeStore() *CodeStore {
	return &CodeStore{codes: make(map[string]issuedCode)}
}

// Put stores a hashed code for a contact, replacing any pending one.
func (s *CodeStore) Put(contact string, hash []byte, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[contact] = issuedCode{hash: hash, expiresAt: expiresAt}
}

// Take returns the pending hash for a contact and removes it. Expired codes
// are treated as absent and evicted.
func (s *CodeStore) Take(contact string, now time.Time) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[contact]
	if !ok {
		return nil, false
	}
	delete(s.codes, contact)
	if now.After(code.expiresAt) {
		return nil, false
	}
	return code.hash, true
}
