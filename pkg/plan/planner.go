// Package plan turns a populated registry into an ordered registration plan.
//
// A plan is the canonical, dependency-ordered list of resources a downstream
// applier would submit to a metadata backend, together with a per-kind
// summary. Planning runs the reference-integrity check first; in strict mode
// a finding aborts the plan, otherwise it is logged and planning continues.
package plan

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/featstate/featstate/pkg/graph"
	"github.com/featstate/featstate/pkg/registry"
	"github.com/featstate/featstate/pkg/resources"
)

// Step is a single resource registration in a plan.
type Step struct {
	ID       resources.ResourceID
	Resource resources.Resource
}

// Plan is an ordered registration plan for one session.
type Plan struct {
	// Session identifies this planning run.
	Session string
	// Steps lists resources in canonical registration order.
	Steps []Step
	// Counts holds the number of resources per kind.
	Counts map[resources.Type]int
}

// Planner builds registration plans.
type Planner struct {
	log    *zap.Logger
	strict bool
}

// NewPlanner creates a planner. In strict mode reference-integrity findings
// fail the plan instead of being logged as warnings.
func NewPlanner(log *zap.Logger, strict bool) *Planner {
	return &Planner{
		log:    log,
		strict: strict,
	}
}

// Plan checks the registry's reference integrity and produces the ordered
// plan. The registry is not modified.
func (p *Planner) Plan(state *registry.State) (*Plan, error) {
	session := uuid.NewString()
	log := p.log.With(zap.String("session", session))

	log.Info("planning registration",
		zap.Int("resources", state.Len()),
		zap.Bool("strict", p.strict))

	if err := graph.FromState(state).Check(); err != nil {
		if p.strict {
			return nil, fmt.Errorf("reference check failed: %w", err)
		}
		log.Warn("reference check failed", zap.Error(err))
	}

	sorted := state.SortedList()
	steps := make([]Step, len(sorted))
	counts := make(map[resources.Type]int)
	for i, r := range sorted {
		id := r.ID()
		steps[i] = Step{ID: id, Resource: r}
		counts[id.Type]++
		log.Debug("planned step",
			zap.Int("position", i),
			zap.String("resource", id.String()))
	}

	log.Info("plan complete", zap.Int("steps", len(steps)))

	return &Plan{
		Session: session,
		Steps:   steps,
		Counts:  counts,
	}, nil
}
