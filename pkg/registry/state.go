// Package registry collects resources, rejects conflicting redefinitions,
// and produces a deterministic dependency-ordered listing.
//
// Features:
//  1. Identity-keyed deduplication with structural equality
//  2. Idempotent re-registration of identical definitions
//  3. Canonical ordering independent of insertion order
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/featstate/featstate/pkg/resources"
)

// Errors.
var (
	ErrResourceRedefined = errors.New("resource redefined")
)

// kindRank defines the canonical cross-kind ordering. Kinds that others
// reference (users, providers, sources, entities) sort before the kinds that
// reference them.
var kindRank = map[resources.Type]int{
	resources.TypeUser:        0,
	resources.TypeProvider:    1,
	resources.TypeSource:      2,
	resources.TypeEntity:      3,
	resources.TypeFeature:     4,
	resources.TypeLabel:       5,
	resources.TypeTrainingSet: 6,
}

// State is an in-memory resource registry keyed by identity. It is owned by
// a single registration session; no concurrent use is supported.
type State struct {
	byID map[resources.ResourceID]resources.Resource
}

// New creates an empty registry.
func New() *State {
	return &State{
		byID: make(map[resources.ResourceID]resources.Resource),
	}
}

// Add stores a resource under its identity key. Re-adding a structurally
// identical resource is a no-op. Adding a different resource under an
// existing key fails with ErrResourceRedefined and leaves the stored value
// untouched.
func (s *State) Add(r resources.Resource) error {
	id := r.ID()
	existing, ok := s.byID[id]
	if !ok {
		s.byID[id] = r
		return nil
	}
	if reflect.DeepEqual(existing, r) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrResourceRedefined, id)
}

// Get returns the resource stored under the given identity key.
func (s *State) Get(id resources.ResourceID) (resources.Resource, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Len returns the number of registered resources.
func (s *State) Len() int {
	return len(s.byID)
}

// SortedList returns all registered resources in canonical order: by kind
// rank, then name, then variant. The output is independent of the order the
// resources were added in.
func (s *State) SortedList() []resources.Resource {
	list := make([]resources.Resource, 0, len(s.byID))
	for _, r := range s.byID {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].ID(), list[j].ID()
		if kindRank[a.Type] != kindRank[b.Type] {
			return kindRank[a.Type] < kindRank[b.Type]
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Variant < b.Variant
	})
	return list
}
