package audio

import (
	"context"
	"log/slog"
	"time"
)

// Janitor runs Cleanup every interval until ctx is done.
func (s *Store) Janitor(ctx context.Context, interval, maxAge time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			s.sweep(maxAge)
		}
	}
}

func (s *Store) sweep(maxAge time.Duration) {
	report, err := s.Cleanup(maxAge)

	if err != nil {
		slog.Error("audio cleanup failed", "path", s.path, "error", err)
		return
	}

	for _, f := range report.Failures {
		slog.Warn("unable to delete audio file", "name", f.Name, "error", f.Err)
	}

	if report.Count > 0 {
		slog.Info("deleted generated audio", "count", report.Count)
	}
}
