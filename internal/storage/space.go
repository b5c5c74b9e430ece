package storage

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// HasEnoughDiskSpace reports whether the filesystem holding the store root
// has at least MinFreeBytes available. An advisory gate for callers to
// check before starting a download; a failed query counts as "not enough".
func (s *Store) HasEnoughDiskSpace() bool {
	free, err := freeBytes(s.Root)
	if err != nil {
		return false
	}
	return free >= uint64(s.MinFreeBytes)
}

// freeBytes queries available space at the nearest existing ancestor of p,
// since the root itself may not exist before the first download.
func freeBytes(p string) (uint64, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return 0, err
	}

	probe := abs
	for {
		if _, err := os.Stat(probe); err == nil {
			break
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			break
		}
		probe = parent
	}

	var st unix.Statfs_t
	if err := unix.Statfs(probe, &st); err != nil {
		return 0, err
	}
	return st.Bavail * uint64(st.Bsize), nil
}
