// Package singleinstance suppresses duplicate concurrent executions of the
// same unit of work. The texture manager relies on it to keep a single
// stream loop alive per asset: workers picking the same handle off the
// queue are turned away while a stream for it is still running.
package singleinstance

import "sync"

// Group tracks in-flight work by key and forms a namespace in which units
// of work run with duplicate suppression.
type Group struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewGroup() *Group {
	return &Group{active: make(map[string]struct{})}
}

// Do runs fn unless another call with the same key is still in flight, in
// which case it returns immediately with aborted set. Aborted callers do
// not receive the running call's result; when they need its outcome they
// must observe it through shared state.
func (g *Group) Do(key string, fn func() (any, error)) (v any, err error, aborted bool) {
	g.mu.Lock()
	if _, found := g.active[key]; found {
		g.mu.Unlock()
		return nil, nil, true
	}
	g.active[key] = struct{}{}
	g.mu.Unlock()
	v, err = fn()
	g.mu.Lock()
	delete(g.active, key)
	g.mu.Unlock()
	return v, err, false
}
