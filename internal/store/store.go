// Package store provides the generic in-memory record store backing every
// registry in the application.
//
// Each entity type gets its own Store instance, created once at startup and
// injected into the service that owns it. There is no global state: the
// store owns its backing slice, and all access goes through its methods.
//
// Records embed Meta, which carries the id and the created_on/modified_on
// timestamps. Save assigns ids monotonically, so ids are unique per store
// and iteration order is insertion order.
package store

import (
	"sync"
	"time"

	"github.com/tirgei/questioner/internal/apperror"
)

// Meta is the record metadata embedded by every stored entity.
//
// ModifiedOn is stamped together with CreatedOn at save time and is not
// touched by later mutation. That mirrors the observable behavior of the
// system this store models; callers must not rely on ModifiedOn tracking
// updates.
type Meta struct {
	ID         int       `json:"id"`
	CreatedOn  time.Time `json:"created_on"`
	ModifiedOn time.Time `json:"modified_on"`
}

// RecordID returns the record's assigned id (0 before the record is saved).
func (m *Meta) RecordID() int { return m.ID }

// stamp assigns the id and both timestamps. Called by Store.Save only.
func (m *Meta) stamp(id int, now time.Time) {
	m.ID = id
	m.CreatedOn = now
	m.ModifiedOn = now
}

// Record is satisfied by any pointer-to-struct that embeds Meta.
//
// The stamp method is unexported, so entities outside this package can only
// satisfy Record by embedding Meta — they cannot forge their own ids.
type Record interface {
	RecordID() int
	stamp(id int, now time.Time)
}

// Store is an ordered in-memory collection of records.
//
// A mutex guards the backing slice because vote updates are read-modify-
// write sequences; Update runs its mutation under the lock so concurrent
// increments cannot lose writes.
type Store[T Record] struct {
	mu      sync.Mutex
	records []T
	nextID  int
}

// New creates an empty Store. The first saved record gets id 1.
func New[T Record]() *Store[T] {
	return &Store[T]{nextID: 1}
}

// Save assigns the next id, stamps both timestamps, appends the record and
// returns it. Save never fails: the backing collection is in memory.
func (s *Store[T]) Save(rec T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.stamp(s.nextID, time.Now())
	s.nextID++
	s.records = append(s.records, rec)
	return rec
}

// Exists reports whether any stored record matches the predicate.
// Linear scan over the collection, same as the lookups it backs.
func (s *Store[T]) Exists(match func(T) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if match(rec) {
			return true
		}
	}
	return false
}

// Find returns the first record matching the predicate.
//
// A miss fails with apperror.ErrNotFound — deterministically, never a
// silent zero record. Callers either check Exists first or translate the
// error into their own domain message.
func (s *Store[T]) Find(match func(T) bool) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if match(rec) {
			return rec, nil
		}
	}
	var zero T
	return zero, apperror.NotFound("record not found")
}

// FindByID returns the record with the given id, or ErrNotFound.
func (s *Store[T]) FindByID(id int) (T, error) {
	return s.Find(func(rec T) bool { return rec.RecordID() == id })
}

// ExistsID reports whether a record with the given id is stored.
func (s *Store[T]) ExistsID(id int) bool {
	return s.Exists(func(rec T) bool { return rec.RecordID() == id })
}

// All returns a snapshot copy of the collection in insertion order.
// Mutating the returned slice does not affect the store.
func (s *Store[T]) All() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Update applies fn to the record with the given id while holding the
// store lock, then returns the record. This keeps read-modify-write
// sequences (vote tallies) atomic. Fails with ErrNotFound if absent.
//
// fn must not call back into the store.
func (s *Store[T]) Update(id int, fn func(T)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.RecordID() == id {
			fn(rec)
			return rec, nil
		}
	}
	var zero T
	return zero, apperror.NotFound("record not found")
}

// Delete removes the record with the given id, preserving the order of the
// remaining records. Fails with ErrNotFound if absent.
func (s *Store[T]) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.records {
		if rec.RecordID() == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("record not found")
}

// Len returns the number of stored records.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
