package repo

import "github.com/keshon/minigit/internal/graph"

// refStack is a LIFO of commit refs used for undo and redo.
type refStack struct {
	refs []graph.Ref
}

func (s *refStack) push(r graph.Ref) { s.refs = append(s.refs, r) }

func (s *refStack) pop() (graph.Ref, bool) {
	if len(s.refs) == 0 {
		return graph.NoRef, false
	}
	r := s.refs[len(s.refs)-1]
	s.refs = s.refs[:len(s.refs)-1]
	return r, true
}

func (s *refStack) size() int { return len(s.refs) }

func (s *refStack) clear() { s.refs = nil }
