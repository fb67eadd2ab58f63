package ops

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/entry"
	"github.com/hpungsan/jot/internal/errors"
)

// TestFullWorkflow exercises the journal lifecycle:
// init → add → view → search → edit → backup → remove → restore → export
func TestFullWorkflow(t *testing.T) {
	st := newTestStore(t)
	cfg := config.DefaultConfig()
	stubOpen(t, nil)

	// 1. Init
	initOut, err := Init(st)
	require.NoError(t, err)
	require.True(t, initOut.Created)

	initOut, err = Init(st)
	require.NoError(t, err)
	require.False(t, initOut.Created)

	// 2. Add
	addOut, err := Add(st, cfg, AddInput{Content: "Had Coffee this morning #daily #coffee", Now: day(10)})
	require.NoError(t, err)
	require.Equal(t, 0, addOut.Entry.ID)
	require.Equal(t, []entry.Tag{"daily", "coffee"}, addOut.Entry.Tags)

	_, err = Add(st, cfg, AddInput{Content: "Wrote in my journal #writing", Now: day(11)})
	require.NoError(t, err)

	// 3. View
	viewOut, err := View(st, ViewInput{})
	require.NoError(t, err)
	require.Len(t, viewOut.Entries, 2)

	// 4. Search
	searchOut, err := Search(st, SearchInput{Query: "COFFEE"})
	require.NoError(t, err)
	require.Len(t, searchOut.Entries, 1)
	require.Equal(t, "Had Coffee this morning", searchOut.Entries[0].Body)

	// 5. Edit
	editOut, err := Edit(st, EditInput{ID: 1, Body: stringPtr("Wrote two pages")})
	require.NoError(t, err)
	require.True(t, editOut.Changed)

	// 6. Backup
	_, err = Backup(st, BackupInput{Action: "create"})
	require.NoError(t, err)

	// 7. Remove
	removeOut, err := Remove(st, RemoveInput{ID: intPtr(0)})
	require.NoError(t, err)
	require.Equal(t, []int{0}, removeOut.Removed)

	_, err = View(st, ViewInput{ID: intPtr(0)})
	require.True(t, errors.Is(err, errors.ErrNotFound))

	// The rotated backup holds the journal as it was before the removal.
	rotated, err := afero.ReadFile(st.Fs(), st.RotatedPath())
	require.NoError(t, err)
	require.Contains(t, string(rotated), "Had Coffee this morning")

	// 8. Restore
	_, err = Backup(st, BackupInput{Action: "restore"})
	require.NoError(t, err)
	viewOut, err = View(st, ViewInput{ID: intPtr(0)})
	require.NoError(t, err)
	require.Equal(t, "Had Coffee this morning", viewOut.Entries[0].Body)

	// 9. Export
	exportOut, err := Export(st, cfg, ExportInput{Format: "json", BaseDir: testBaseDir, Now: exportNow})
	require.NoError(t, err)
	require.Equal(t, 2, exportOut.Count)
	require.True(t, strings.HasSuffix(exportOut.Path, ".json"))

	data, err := afero.ReadFile(st.Fs(), exportOut.Path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Wrote two pages")
}
