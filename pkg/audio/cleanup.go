package audio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const DefaultMaxAge = 60 * time.Minute

type CleanupFailure struct {
	Name string
	Err  error
}

type CleanupReport struct {
	Deleted []string `json:"deleted"`
	Count   int      `json:"count"`

	Failures []CleanupFailure `json:"-"`
}

// Cleanup removes generated files in the base directory that are older
// than maxAge. Subdirectories are not scanned. A file that cannot be
// inspected or removed is recorded in the report and skipped.
func (s *Store) Cleanup(maxAge time.Duration) (*CleanupReport, error) {
	if maxAge < 0 {
		return nil, errors.New("invalid max age")
	}

	report := &CleanupReport{
		Deleted: []string{},
	}

	entries, err := os.ReadDir(s.path)

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, nil
		}

		return nil, err
	}

	cutoff := time.Now().Add(-maxAge)

	for _, e := range entries {
		name := e.Name()

		if !isGenerated(name) {
			continue
		}

		info, err := e.Info()

		if err != nil {
			report.Failures = append(report.Failures, CleanupFailure{Name: name, Err: err})
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}

		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := s.remove(filepath.Join(s.path, name)); err != nil {
			report.Failures = append(report.Failures, CleanupFailure{Name: name, Err: err})
			continue
		}

		report.Deleted = append(report.Deleted, name)
	}

	report.Count = len(report.Deleted)

	return report, nil
}
