package catalog

import (
	"sync"

	"github.com/google/uuid"

	"github.com/frontdesk/frontdesk/internal/domain/dose"
)

// Draft is the add-medicine batch under construction: one shared disease name
// plus one or more entry rows. A draft always holds at least one row.
type Draft struct {
	ID   string  `json:"id"`
	Rows []Entry `json:"rows"`
}

func emptyRow() Entry {
	return Entry{Days: 1, Dose: dose.NewSchedule()}
}

// NewDraft returns a draft with a single fresh row.
func NewDraft() *Draft {
	return &Draft{ID: uuid.NewString(), Rows: []Entry{emptyRow()}}
}

// AddRow appends one fresh empty row. Existing rows are never touched.
func (d *Draft) AddRow() {
	d.Rows = append(d.Rows, emptyRow())
}

// RemoveRow deletes the row at i. A batch must always keep at least one row,
// so removing the last remaining row is a no-op, as is an out-of-range index.
// It reports whether a row was removed.
func (d *Draft) RemoveRow(i int) bool {
	if len(d.Rows) <= 1 || i < 0 || i >= len(d.Rows) {
		return false
	}
	d.Rows = append(d.Rows[:i], d.Rows[i+1:]...)
	return true
}

// Reset returns the draft to its initial one-empty-row state. Called after a
// successful submit; a failed submit leaves the draft exactly as it was.
func (d *Draft) Reset() {
	d.Rows = []Entry{emptyRow()}
}

// maxOpenDrafts bounds the store. Drafts are abandoned by closing the screen
// rather than by any explicit call, so without a cap the map grows forever;
// past the cap the oldest draft is evicted.
const maxOpenDrafts = 128

// DraftStore keeps in-flight drafts in memory, keyed by draft ID. Drafts are
// transient screen state; the upstream never sees them until submit.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string]*Draft
	order  []string
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*Draft)}
}

// Create opens a new draft and returns it, evicting the oldest open draft
// once the store is full.
func (s *DraftStore) Create() *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.order) >= maxOpenDrafts {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.drafts, oldest)
	}
	d := NewDraft()
	s.drafts[d.ID] = d
	s.order = append(s.order, d.ID)
	return d
}

// Get returns the draft with the given ID, or nil.
func (s *DraftStore) Get(id string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[id]
}

// Drop discards a draft.
func (s *DraftStore) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	for i, did := range s.order {
		if did == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
