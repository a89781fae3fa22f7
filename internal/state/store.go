// Package state holds the canonical application state. A Store owns one
// immutable domain.AppData snapshot and replaces it on every mutation;
// snapshots handed out earlier are never modified.
package state

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vbonduro/marineit/internal/domain"
)

type ChangeKind string

const (
	ChangeCreate  ChangeKind = "create"
	ChangeUpdate  ChangeKind = "update"
	ChangeDelete  ChangeKind = "delete"
	ChangeStatus  ChangeKind = "status"
	ChangeReplace ChangeKind = "replace"
)

type Collection string

const (
	CollectionWorkLogs    Collection = "workLogs"
	CollectionTickets     Collection = "tickets"
	CollectionAssets      Collection = "assets"
	CollectionInspections Collection = "shipInspections"
	CollectionAll         Collection = "all"
)

// Change describes one committed mutation and the snapshot it produced.
type Change struct {
	Kind       ChangeKind
	Collection Collection
	ID         string
	Snapshot   domain.AppData
}

// Options configures the injectable parts of a Store. Zero values fall back to
// the wall clock, uuid based ids and domain.DefaultOperator.
type Options struct {
	Now      func() time.Time
	NewID    func(prefix string) string
	Operator string
}

type Store struct {
	// commitMu serializes mutations together with observer dispatch so that
	// observers see changes one at a time and in commit order.
	commitMu sync.Mutex
	mu       sync.RWMutex
	snap     domain.AppData

	subsMu sync.Mutex
	subs   map[int]func(Change)
	nextID int

	now      func() time.Time
	newID    func(prefix string) string
	operator string
}

func NewStore(initial domain.AppData, opts Options) *Store {
	s := &Store{
		snap:     initial.Normalize(),
		subs:     make(map[int]func(Change)),
		now:      opts.Now,
		newID:    opts.NewID,
		operator: opts.Operator,
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
	}
	if s.newID == nil {
		s.newID = NewID
	}
	if s.operator == "" {
		s.operator = domain.DefaultOperator
	}
	return s
}

// NewID returns prefix-<uuid>.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Snapshot returns the current state.
func (s *Store) Snapshot() domain.AppData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Operator is the staff name stamped on new work logs and inspections.
func (s *Store) Operator() string {
	return s.operator
}

// Subscribe registers fn to run after every committed change. fn runs on the
// mutating goroutine before the mutation returns and must not mutate the
// Store itself. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

// commit applies fn to the current snapshot. fn returns the next snapshot and
// whether anything changed; unchanged results are not published.
func (s *Store) commit(kind ChangeKind, coll Collection, id string, fn func(cur domain.AppData) (domain.AppData, bool)) domain.AppData {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	next, changed := fn(s.snap)
	if !changed {
		cur := s.snap
		s.mu.Unlock()
		return cur
	}
	s.snap = next
	s.mu.Unlock()

	s.notify(Change{Kind: kind, Collection: coll, ID: id, Snapshot: next})
	return next
}

func (s *Store) notify(c Change) {
	s.subsMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

// Replace swaps in a whole dataset, as after a successful backup import.
func (s *Store) Replace(data domain.AppData) domain.AppData {
	return s.commit(ChangeReplace, CollectionAll, "", func(domain.AppData) (domain.AppData, bool) {
		return data.Normalize(), true
	})
}

func (s *Store) today() string {
	return s.now().Local().Format(domain.DateLayout)
}

// prepend returns a new slice with v in front of items.
func prepend[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, v)
	return append(out, items...)
}

// replaceWhere returns a copy of items with the first element matching id
// rewritten by fn, and false when no element matches.
func replaceWhere[T any](items []T, match func(T) bool, fn func(T) T) ([]T, bool) {
	i := slices.IndexFunc(items, match)
	if i < 0 {
		return items, false
	}
	out := slices.Clone(items)
	out[i] = fn(out[i])
	return out, true
}

// removeWhere returns a copy of items without the elements matching, and
// false when nothing matched.
func removeWhere[T any](items []T, match func(T) bool) ([]T, bool) {
	if !slices.ContainsFunc(items, match) {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out, true
}
