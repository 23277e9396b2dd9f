// Package graph provides reference-integrity checking over a resource
// registry.
//
// Features:
//  1. Dangling reference detection (a feature naming an unknown entity)
//  2. Cycle detection among transformation sources
//
// The check is advisory: the registry accepts resources regardless, and a
// registration plan decides how strictly to treat findings.
package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/featstate/featstate/pkg/registry"
	"github.com/featstate/featstate/pkg/resources"
)

// Errors.
var (
	ErrUnknownReference = errors.New("unknown reference")
	ErrCyclicSource     = errors.New("cyclic source transformation")
)

// Graph is a directed reference graph over a registry's resources. Edges
// point from a resource to the resources it references.
type Graph struct {
	nodes map[resources.ResourceID]bool
	edges map[resources.ResourceID][]resources.ResourceID
}

// FromState builds the reference graph for every resource in the registry.
func FromState(state *registry.State) *Graph {
	g := &Graph{
		nodes: make(map[resources.ResourceID]bool),
		edges: make(map[resources.ResourceID][]resources.ResourceID),
	}
	for _, r := range state.SortedList() {
		g.add(r)
	}
	return g
}

// add records a resource and its outgoing references.
func (g *Graph) add(r resources.Resource) {
	id := r.ID()
	g.nodes[id] = true
	g.edges[id] = references(r)
}

// references extracts the identity keys a resource points at.
func references(r resources.Resource) []resources.ResourceID {
	switch res := r.(type) {
	case resources.Source:
		refs := []resources.ResourceID{providerID(res.Provider)}
		if tf, ok := res.Definition.(resources.SQLTransformation); ok {
			for _, in := range tf.Sources {
				refs = append(refs, resources.ResourceID{
					Type: resources.TypeSource, Name: in.Name, Variant: in.Variant,
				})
			}
		}
		return refs
	case resources.Feature:
		return []resources.ResourceID{
			providerID(res.Provider),
			{Type: resources.TypeEntity, Name: res.Entity},
		}
	case resources.Label:
		return []resources.ResourceID{
			providerID(res.Provider),
			{Type: resources.TypeEntity, Name: res.Entity},
		}
	case resources.TrainingSet:
		refs := []resources.ResourceID{
			providerID(res.Provider),
			{Type: resources.TypeLabel, Name: res.Label.Name, Variant: res.Label.Variant},
		}
		for _, f := range res.Features {
			refs = append(refs, resources.ResourceID{
				Type: resources.TypeFeature, Name: f.Name, Variant: f.Variant,
			})
		}
		return refs
	default:
		// Users, providers, and entities are roots.
		return nil
	}
}

func providerID(name string) resources.ResourceID {
	return resources.ResourceID{Type: resources.TypeProvider, Name: name}
}

// Check reports the first dangling reference or transformation cycle found.
func (g *Graph) Check() error {
	if err := g.checkReferencesExist(); err != nil {
		return err
	}
	return g.detectCycles()
}

// checkReferencesExist verifies every edge points at a registered resource.
func (g *Graph) checkReferencesExist() error {
	for _, id := range g.sortedNodes() {
		for _, ref := range g.edges[id] {
			if !g.nodes[ref] {
				return fmt.Errorf("%w: %s references %s", ErrUnknownReference, id, ref)
			}
		}
	}
	return nil
}

// detectCycles uses DFS to find circular references. With the current
// resource kinds only transformation sources can form a cycle.
func (g *Graph) detectCycles() error {
	visited := make(map[resources.ResourceID]bool)
	inStack := make(map[resources.ResourceID]bool)

	for _, id := range g.sortedNodes() {
		if cycle := g.dfsDetectCycle(id, visited, inStack); cycle != nil {
			return fmt.Errorf("%w: %v", ErrCyclicSource, cycle)
		}
	}
	return nil
}

// dfsDetectCycle performs DFS from the given node and returns the cycle path
// if one is found.
func (g *Graph) dfsDetectCycle(id resources.ResourceID, visited, inStack map[resources.ResourceID]bool) []resources.ResourceID {
	if visited[id] {
		return nil
	}

	visited[id] = true
	inStack[id] = true

	for _, ref := range g.edges[id] {
		if inStack[ref] {
			return []resources.ResourceID{id, ref}
		}
		if cycle := g.dfsDetectCycle(ref, visited, inStack); cycle != nil {
			return append([]resources.ResourceID{id}, cycle...)
		}
	}

	inStack[id] = false
	return nil
}

// sortedNodes returns node IDs in a stable order so Check failures are
// deterministic.
func (g *Graph) sortedNodes() []resources.ResourceID {
	ids := make([]resources.ResourceID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// Size returns the number of resources in the graph.
func (g *Graph) Size() int {
	return len(g.nodes)
}
