// Package bookmark implements the user-local bookmark set: class IDs the
// user has starred in the browse view. Bookmarks are independent of server
// state — an ID whose class has since been deleted stays bookmarked until
// the user toggles it off.
package bookmark

import (
	"encoding/json"
	"fmt"

	"github.com/tharindu/classtrack/internal/kvstore"
)

const storageKey = "bookmarks"

// Set is a persisted set of class IDs. Membership order is kept only so the
// serialized form is deterministic; it carries no meaning.
type Set struct {
	store kvstore.Store
	ids   []string
	index map[string]struct{}
}

// Load reads the bookmark set from the store. A missing key means an empty
// set; a corrupt payload degrades to an empty set as well rather than
// failing — losing stars beats refusing to start.
func Load(store kvstore.Store) *Set {
	s := &Set{store: store, index: make(map[string]struct{})}

	raw, err := store.Get(storageKey)
	if err != nil {
		return s
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return s
	}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *Set) add(id string) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *Set) remove(id string) {
	if _, ok := s.index[id]; !ok {
		return
	}
	delete(s.index, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
}

// Has reports whether id is bookmarked.
func (s *Set) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// IDs returns the bookmarked IDs. The returned slice is a copy.
func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of bookmarks.
func (s *Set) Len() int { return len(s.ids) }

// Toggle flips membership for id and persists the new set. It reports the
// resulting membership (true = now bookmarked).
func (s *Set) Toggle(id string) (bool, error) {
	if s.Has(id) {
		s.remove(id)
	} else {
		s.add(id)
	}
	if err := s.save(); err != nil {
		return s.Has(id), err
	}
	return s.Has(id), nil
}

func (s *Set) save() error {
	raw, err := json.Marshal(s.ids)
	if err != nil {
		return fmt.Errorf("bookmark: encoding set: %w", err)
	}
	if err := s.store.Set(storageKey, string(raw)); err != nil {
		return fmt.Errorf("bookmark: persisting set: %w", err)
	}
	return nil
}
