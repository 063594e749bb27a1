// Package branch keeps the named branch heads of a repository and tracks
// which one is active.
package branch

import (
	"errors"
	"fmt"

	"github.com/keshon/minigit/internal/graph"
)

var (
	ErrExists   = errors.New("branch already exists")
	ErrNotFound = errors.New("branch not found")
	ErrActive   = errors.New("cannot delete the active branch")
)

// Branch is a named pointer into the commit graph.
type Branch struct {
	Name string
	Head graph.Ref
}

// Info describes a branch for enumeration.
type Info struct {
	Name   string
	Active bool
	Head   graph.Ref
}

// Registry is an insertion-ordered set of branches with one active branch.
type Registry struct {
	order  []string
	byName map[string]*Branch
	active string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Branch)}
}

// Add appends a branch. The first branch ever added becomes active.
func (r *Registry) Add(name string, head graph.Ref) error {
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("branch %q: %w", name, ErrExists)
	}
	r.byName[name] = &Branch{Name: name, Head: head}
	r.order = append(r.order, name)
	if r.active == "" {
		r.active = name
	}
	return nil
}

// Find returns the named branch.
func (r *Registry) Find(name string) (Branch, bool) {
	b, ok := r.byName[name]
	if !ok {
		return Branch{}, false
	}
	return *b, true
}

// Switch makes the named branch active. It reports whether the branch exists.
func (r *Registry) Switch(name string) bool {
	if _, ok := r.byName[name]; !ok {
		return false
	}
	r.active = name
	return true
}

// Delete removes a branch other than the active one.
func (r *Registry) Delete(name string) error {
	if name == r.active {
		return fmt.Errorf("branch %q: %w", name, ErrActive)
	}
	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("branch %q: %w", name, ErrNotFound)
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Active returns the active branch. ok is false before any branch exists.
func (r *Registry) Active() (Branch, bool) {
	return r.Find(r.active)
}

// SetHead moves the head of the named branch.
func (r *Registry) SetHead(name string, head graph.Ref) error {
	b, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("branch %q: %w", name, ErrNotFound)
	}
	b.Head = head
	return nil
}

// Enumerate lists branches in creation order.
func (r *Registry) Enumerate() []Info {
	out := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Info{
			Name:   name,
			Active: name == r.active,
			Head:   r.byName[name].Head,
		})
	}
	return out
}

// Count returns the number of branches.
func (r *Registry) Count() int { return len(r.order) }
