package syncd

import (
	"fmt"
	"sync"

	"github.com/jot-format/go-jot"
	"github.com/jot-format/go-jot/debug"
	"github.com/jot-format/go-jot/ir"
)

// document is one synchronized value plus the edit log needed to rebase
// stale client deltas.
type document struct {
	mu       sync.Mutex
	id       string
	value    *ir.Node
	rev      int
	log      []logEntry
	sessions map[string]*session
}

// logEntry keeps the value a delta was applied to, so later deltas
// rooted at that revision can be transformed over it.
type logEntry struct {
	base  *ir.Node
	delta jot.Delta
}

func newDocument(id string, value *ir.Node) *document {
	if value == nil || value.Type() != ir.ObjectType {
		value = ir.FromMap(nil)
	}
	return &document{
		id:       id,
		value:    value,
		sessions: map[string]*session{},
	}
}

func (d *document) snapshot() (int, *ir.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rev, d.value
}

func (d *document) attach(s *session) (int, *ir.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions[s.id] = s
	return d.rev, d.value
}

func (d *document) detach(s *session) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sessions, s.id)
}

// commit rebases delta from the client's revision onto head, applies
// it, and fans the rebased delta out to every other session.
func (d *document) commit(from *session, rev int, delta jot.Delta, pol *jot.Policy) (int, jot.Delta, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if rev < 0 || rev > d.rev {
		return 0, nil, fmt.Errorf("unknown revision %d (head %d)", rev, d.rev)
	}
	for _, e := range d.log[rev:] {
		var err error
		delta, err = jot.TransformObjectDiff(delta, e.delta, e.base, pol)
		if err != nil {
			return 0, nil, fmt.Errorf("transform past rev: %w", err)
		}
	}
	next, err := jot.ApplyObjectDiff(d.value, delta)
	if err != nil {
		return 0, nil, err
	}
	d.log = append(d.log, logEntry{base: d.value, delta: delta})
	d.value = next
	d.rev++
	if debug.Sync() {
		debug.Logf("doc %s rev %d: %s\n", d.id, d.rev, d.value)
	}
	for id, s := range d.sessions {
		if from != nil && id == from.id {
			continue
		}
		s.send(UpdateFrame{Rev: d.rev, Delta: delta})
	}
	return d.rev, delta, nil
}
