package graph

import "github.com/keshon/minigit/internal/snapshot"

// Record is the external shape of a commit, as persisted and served.
type Record struct {
	ID        string          `json:"id"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
	Parent    *string         `json:"parent"`
	Children  []string        `json:"children"`
	Files     []snapshot.File `json:"files"`
	FileCount int             `json:"fileCount"`
}

// Record describes the commit at ref. ok is false for an unknown ref.
func (g *Graph) Record(ref Ref) (Record, bool) {
	c := g.commit(ref)
	if c == nil {
		return Record{}, false
	}
	rec := Record{
		ID:        c.ID,
		Message:   c.Message,
		Timestamp: c.Timestamp,
		Children:  make([]string, 0, len(c.Children)),
		Files:     c.Snapshot.Files(),
		FileCount: c.Snapshot.Count(),
	}
	if p := g.commit(c.Parent); p != nil {
		id := p.ID
		rec.Parent = &id
	}
	for _, ch := range c.Children {
		rec.Children = append(rec.Children, g.ID(ch))
	}
	return rec, true
}

// History returns the records of ref and its ancestors, newest first.
func (g *Graph) History(ref Ref) []Record {
	refs := g.Ancestry(ref)
	out := make([]Record, 0, len(refs))
	for _, r := range refs {
		rec, _ := g.Record(r)
		out = append(out, rec)
	}
	return out
}
