package graph

import (
	"sync/atomic"

	"github.com/roach88/wires/internal/value"
)

// Observer is called after an explicit SetValue stores v on ref.
type Observer func(g *Graph, ref Ref, v value.Value)

// ObserverID identifies a registered observer. IDs are unique across all
// graphs in the process and increase monotonically.
type ObserverID uint64

var lastObserverID atomic.Uint64

type observerEntry struct {
	id ObserverID
	fn Observer
}

// AddObserver registers fn on node.attr and returns its id. The attribute
// is created if it does not exist yet.
func (g *Graph) AddObserver(node, attr string, fn Observer) ObserverID {
	a := g.ensureAttribute(AttrRef(node, attr))
	id := ObserverID(lastObserverID.Add(1))
	a.observers = append(a.observers, observerEntry{id: id, fn: fn})
	g.observerOwners[id] = a.ref
	return id
}

// RemoveObserver unregisters the observer with the given id and reports
// whether it was registered on this graph.
func (g *Graph) RemoveObserver(id ObserverID) bool {
	ref, ok := g.observerOwners[id]
	if !ok {
		return false
	}
	delete(g.observerOwners, id)

	a := g.attributes[ref]
	for i, entry := range a.observers {
		if entry.id == id {
			a.observers = append(a.observers[:i:i], a.observers[i+1:]...)
			break
		}
	}
	return true
}

// notify runs a snapshot of the observer list, so observers may register
// or remove observers without affecting the current notification.
func (g *Graph) notify(a *attribute, v value.Value) {
	if len(a.observers) == 0 {
		return
	}
	snapshot := append([]observerEntry(nil), a.observers...)
	for _, entry := range snapshot {
		entry.fn(g, a.ref, v)
	}
}
