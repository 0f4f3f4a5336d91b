/*
Package backup snapshots the ledger database before mutations.

PURPOSE:
  The ledger is near-append-only, but the database file itself is
  still one `rm` or one bad migration away from gone. Manager copies
  the whole file into a timestamped sibling before every write and
  keeps the newest K copies.

NAMING:
  backup_db_<timestamp>.db, where the timestamp is
  20060102_150405.000000000 in local time. Nanosecond precision keeps
  names unique under rapid successive mutations, and lexical order of
  the names equals chronological order, which is what pruning sorts by.

FAILURE POLICY:
  Create returns its error but callers treat backups as best-effort:
  a failed snapshot is logged and the mutation proceeds. Losing one
  backup is cheaper than refusing a sale at the stall.

USAGE:
  mgr := backup.New(store.Path(), 30)
  eng := ledger.New(store, ledger.WithBackups(mgr))

SEE ALSO:
  - ledger/store.go: the Backups interface Manager satisfies
*/
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	prefix     = "backup_db_"
	timeLayout = "20060102_150405.000000000"
)

// Manager copies a database file into timestamped snapshots alongside
// it, pruning all but the newest keep copies.
type Manager struct {
	path string
	keep int
}

// New creates a Manager for the database at path, retaining keep
// snapshots. keep <= 0 disables pruning.
func New(path string, keep int) *Manager {
	return &Manager{path: path, keep: keep}
}

// Create snapshots the database file, then prunes old snapshots.
// A missing database file is not an error: there is nothing to lose yet.
func (m *Manager) Create() error {
	if _, err := os.Stat(m.path); os.IsNotExist(err) {
		return nil
	}

	name := prefix + time.Now().Format(timeLayout) + ".db"
	dst := filepath.Join(filepath.Dir(m.path), name)
	if err := copyFile(m.path, dst); err != nil {
		return fmt.Errorf("failed to create backup %s: %w", name, err)
	}

	return m.prune()
}

// Snapshots returns the existing snapshot paths, oldest first.
func (m *Manager) Snapshots() ([]string, error) {
	entries, err := os.ReadDir(filepath.Dir(m.path))
	if err != nil {
		return nil, err
	}
	var snaps []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasPrefix(n, prefix) && strings.HasSuffix(n, ".db") {
			snaps = append(snaps, filepath.Join(filepath.Dir(m.path), n))
		}
	}
	// Timestamped names sort chronologically.
	sort.Strings(snaps)
	return snaps, nil
}

func (m *Manager) prune() error {
	if m.keep <= 0 {
		return nil
	}
	snaps, err := m.Snapshots()
	if err != nil {
		return err
	}
	for len(snaps) > m.keep {
		victim := snaps[0]
		if err := os.Remove(victim); err != nil {
			return fmt.Errorf("failed to prune backup %s: %w", victim, err)
		}
		snaps = snaps[1:]
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
