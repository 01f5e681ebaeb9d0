package explain

import (
	"strconv"

	"github.com/kkpan11/heavydb/pkg/errors"
	"github.com/kkpan11/heavydb/pkg/plan"
)

// Registry maps nodes to the ids assigned to them in one session.
type Registry struct {
	ids map[plan.NodeID]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[plan.NodeID]string)}
}

// IDOf returns the id assigned to n, if any.
func (r *Registry) IDOf(n plan.Node) (string, bool) {
	id, ok := r.ids[n.ID()]
	return id, ok
}

// Assign gives n the next id, which is the number of nodes assigned so far.
// It fails with DUPLICATE_ASSIGNMENT if n already has an id.
func (r *Registry) Assign(n plan.Node) (string, error) {
	if id, ok := r.ids[n.ID()]; ok {
		return "", errors.New(errors.ErrCodeDuplicateAssignment, "%s node %d already has id %s", n.Kind(), n.ID(), id)
	}
	id := strconv.Itoa(len(r.ids))
	r.ids[n.ID()] = id
	return id, nil
}

// Len returns the number of assigned ids.
func (r *Registry) Len() int { return len(r.ids) }
