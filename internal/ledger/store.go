package ledger

import "sync"

// Store is the authoritative in-memory transaction collection. Every insert,
// whether loaded from file or entered by a session, passes through the dedup
// gate, so the store never holds two identity-equal records no matter how
// many times a source file is re-read.
//
// The HTTP surface reads while the console or other writers insert, so the
// collection is guarded by an RWMutex and reads hand out snapshot copies.
type Store struct {
	mu      sync.RWMutex
	entries []Transaction
	seen    map[identity]struct{}
}

func NewStore() *Store {
	return &Store{seen: make(map[identity]struct{})}
}

// Insert adds the transaction unless an identity-equal record is already
// present. Returns true when the transaction was added.
func (s *Store) Insert(t Transaction) bool {
	key := t.identityKey()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	s.entries = append(s.entries, t)
	return true
}

// All returns a snapshot of the stored transactions in storage order:
// insertion order from load, then appended entries. Callers sort as needed.
func (s *Store) All() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]Transaction, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

// Len reports the number of stored transactions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
