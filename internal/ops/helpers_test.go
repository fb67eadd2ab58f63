package ops

import (
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/store"
)

const testBaseDir = "/home/user/.jot"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(afero.NewMemMapFs(), store.JournalPath(testBaseDir))
}

func day(d int) time.Time {
	return time.Date(2024, 5, d, 9, 30, 0, 0, time.UTC)
}

// seed adds one entry per content string, dated May 1st, 2nd, ... in order.
func seed(t *testing.T, st *store.Store, contents ...string) {
	t.Helper()
	cfg := config.DefaultConfig()
	for i, c := range contents {
		if _, err := Add(st, cfg, AddInput{Content: c, Now: day(i + 1)}); err != nil {
			t.Fatalf("Add(%q) failed: %v", c, err)
		}
	}
}

func intPtr(i int) *int          { return &i }
func stringPtr(s string) *string { return &s }
func boolPtr(b bool) *bool       { return &b }

func ids(t *testing.T, st *store.Store) []int {
	t.Helper()
	j, err := st.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var out []int
	for _, e := range j.Entries() {
		out = append(out, e.ID)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func readJournal(t *testing.T, st *store.Store) string {
	t.Helper()
	data, err := afero.ReadFile(st.Fs(), st.Path())
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	return string(data)
}
