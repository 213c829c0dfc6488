package audio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJanitor(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	require.NoError(t, err)

	old := time.Now().Add(-2 * time.Hour)
	path := filepath.Join(dir, "tts_old.wav")

	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0644))
	require.NoError(t, os.Chtimes(path, old, old))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})

	go func() {
		s.Janitor(ctx, 10*time.Millisecond, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return os.IsNotExist(err)
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestJanitorDisabled(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	// returns immediately without an interval
	s.Janitor(context.Background(), 0, time.Hour)
}
