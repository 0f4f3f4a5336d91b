package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCopiesDatabase(t *testing.T) {
	// GIVEN a database file
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "inventory.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("ledger bytes"), 0o644))

	// WHEN a backup is created
	mgr := New(dbPath, 5)
	require.NoError(t, mgr.Create())

	// THEN a snapshot with the same contents exists
	snaps, err := mgr.Snapshots()
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	got, err := os.ReadFile(snaps[0])
	require.NoError(t, err)
	assert.Equal(t, "ledger bytes", string(got))
}

func TestCreateMissingDatabaseIsNoop(t *testing.T) {
	dir := t.TempDir()
	mgr := New(filepath.Join(dir, "nothing.db"), 5)

	require.NoError(t, mgr.Create())

	snaps, err := mgr.Snapshots()
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestRetentionKeepsNewest(t *testing.T) {
	// GIVEN a manager that keeps 3 snapshots
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "inventory.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("v"), 0o644))
	mgr := New(dbPath, 3)

	// WHEN more than 3 backups are created
	var all []string
	for i := 0; i < 5; i++ {
		require.NoError(t, mgr.Create())
		snaps, err := mgr.Snapshots()
		require.NoError(t, err)
		all = append(all, snaps[len(snaps)-1])
	}

	// THEN only the 3 newest remain
	snaps, err := mgr.Snapshots()
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, all[2:], snaps)
}

func TestZeroKeepDisablesPruning(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "inventory.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("v"), 0o644))
	mgr := New(dbPath, 0)

	for i := 0; i < 4; i++ {
		require.NoError(t, mgr.Create())
	}

	snaps, err := mgr.Snapshots()
	require.NoError(t, err)
	assert.Len(t, snaps, 4)
}
