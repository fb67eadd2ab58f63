package journal

import (
	"github.com/hpungsan/jot/internal/entry"
)

// Journal is the in-memory ordered collection of entries plus its backing path.
//
// Ids are assigned as the current entry count at add time and are never
// renumbered on removal, so an id freed by a removal in the middle of the
// journal can be handed out again. This matches the on-disk data written by
// earlier versions and is kept for compatibility.
type Journal struct {
	path    string
	entries []entry.Entry
}

// New returns an empty journal bound to path.
func New(path string) *Journal {
	return &Journal{
		path:    path,
		entries: []entry.Entry{},
	}
}

// FromEntries returns a journal hydrated with entries, kept in the given order.
func FromEntries(path string, entries []entry.Entry) *Journal {
	if entries == nil {
		entries = []entry.Entry{}
	}
	return &Journal{
		path:    path,
		entries: entries,
	}
}

// Path returns the backing storage location.
func (j *Journal) Path() string {
	return j.path
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	return len(j.entries)
}

// NextID returns the id the next added entry will receive.
func (j *Journal) NextID() int {
	return len(j.entries)
}

// AddEntry assigns e the next id, appends it, and returns the stored entry.
func (j *Journal) AddEntry(e entry.Entry) entry.Entry {
	e.ID = j.NextID()
	j.entries = append(j.entries, e)
	return e
}

// RemoveEntry removes the first entry with id and returns it.
// Remaining entries keep their relative order and ids.
func (j *Journal) RemoveEntry(id int) (entry.Entry, bool) {
	idx := j.indexOf(id)
	if idx < 0 {
		return entry.Entry{}, false
	}
	removed := j.entries[idx]
	j.entries = append(j.entries[:idx], j.entries[idx+1:]...)
	return removed, true
}

// RemoveWhere removes every entry for which match returns true and returns
// them in journal order. Matching is by entry, not id, so entries sharing an
// id are handled independently.
func (j *Journal) RemoveWhere(match func(entry.Entry) bool) []entry.Entry {
	var removed []entry.Entry
	kept := j.entries[:0]
	for _, e := range j.entries {
		if match(e) {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	j.entries = kept
	return removed
}

// UpdateEntry replaces the entry with e.ID in place and returns the prior state.
func (j *Journal) UpdateEntry(e entry.Entry) (entry.Entry, bool) {
	idx := j.indexOf(e.ID)
	if idx < 0 {
		return entry.Entry{}, false
	}
	prev := j.entries[idx]
	j.entries[idx] = e
	return prev, true
}

// EditEntry replaces only the body of the entry with id and returns the prior state.
func (j *Journal) EditEntry(id int, body string) (entry.Entry, bool) {
	idx := j.indexOf(id)
	if idx < 0 {
		return entry.Entry{}, false
	}
	prev := j.entries[idx]
	j.entries[idx].Body = body
	return prev, true
}

// GetEntry returns the first entry with id.
func (j *Journal) GetEntry(id int) (entry.Entry, bool) {
	idx := j.indexOf(id)
	if idx < 0 {
		return entry.Entry{}, false
	}
	return j.entries[idx], true
}

// Entries returns a copy of the ordered entry sequence.
func (j *Journal) Entries() []entry.Entry {
	out := make([]entry.Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Last returns the most recently added entry.
func (j *Journal) Last() (entry.Entry, bool) {
	if len(j.entries) == 0 {
		return entry.Entry{}, false
	}
	return j.entries[len(j.entries)-1], true
}

func (j *Journal) indexOf(id int) int {
	for i, e := range j.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
