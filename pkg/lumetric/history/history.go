// Package history keeps the most recent successfully parsed tables in memory.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
)

// MaxEntries is the number of tables retained; older ones are evicted.
const MaxEntries = 5

// Entry is one archived parse result.
type Entry struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Timestamp time.Time    `json:"timestamp"`
	Table     models.Table `json:"table"`
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs sets the entry ID generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLimit overrides MaxEntries. Values below 1 are ignored.
func WithLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// Store is a thread-safe, most-recent-first list of entries.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	limit   int
	now     func() time.Time
	newID   func() string
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		limit: MaxEntries,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add archives a copy of table under name and returns the new entry.
func (s *Store) Add(name string, table models.Table) Entry {
	e := Entry{
		ID:        s.newID(),
		Name:      name,
		Timestamp: s.now(),
		Table:     table.Clone(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, s.limit)
	entries = append(entries, e)
	for _, old := range s.entries {
		if len(entries) == s.limit {
			break
		}
		entries = append(entries, old)
	}
	s.entries = entries

	return cloneEntry(e)
}

// List returns the entries, newest first.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = cloneEntry(e)
	}
	return out
}

// Get returns the entry with the given ID.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return cloneEntry(e), true
		}
	}
	return Entry{}, false
}

// Latest returns the most recently added entry.
func (s *Store) Latest() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return cloneEntry(s.entries[0]), true
}

// Len returns the number of retained entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}

func cloneEntry(e Entry) Entry {
	e.Table = e.Table.Clone()
	return e
}
