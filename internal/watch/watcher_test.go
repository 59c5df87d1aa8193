package watch

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mover/internal/config"
)

func waitForEvent(t *testing.T, ch <-chan FileModification, path string, op fsnotify.Op) FileModification {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case event, ok := <-ch:
			require.True(t, ok, "event channel closed unexpectedly")
			if event.Path == path && event.Op.Has(op) {
				return event
			}
		case <-timeout:
			t.Fatalf("timeout waiting for %s on %s", op, path)
		}
	}
}

func TestWatcherFsnotify(t *testing.T) {
	tempDir := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.AddDirectory(tempDir))
	require.NoError(t, w.AddDirectory(tempDir))
	assert.Equal(t, []string{tempDir}, w.GetDirectories())

	require.NoError(t, w.Start())
	defer w.Stop()
	assert.True(t, w.IsRunning())
	assert.Error(t, w.Start(), "second start should fail")

	evChan := w.FileChannel()
	// Allow fsnotify to settle
	time.Sleep(100 * time.Millisecond)

	testFilePath := filepath.Join(tempDir, "testfile.txt")
	file, err := os.Create(testFilePath)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	event := waitForEvent(t, evChan, testFilePath, fsnotify.Create)
	require.NotNil(t, event.Info)
	assert.Equal(t, "testfile.txt", event.Info.Name())
	assert.False(t, event.Timestamp.IsZero())

	require.NoError(t, os.WriteFile(testFilePath, []byte("hello world"), 0644))
	waitForEvent(t, evChan, testFilePath, fsnotify.Write)

	w.Stop()
	assert.False(t, w.IsRunning())

	// The channel is closed once the loop has exited
	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-evChan:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("event channel was not closed after stop")
		}
	}
}

func TestWatcherFiltersEvents(t *testing.T) {
	tempDir := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.AddDirectory(tempDir))
	require.NoError(t, w.Start())
	defer w.Stop()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, config.FileName), []byte(`{"rules": []}`), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "subdir"), 0755))
	if runtime.GOOS != "windows" {
		require.NoError(t, os.Symlink(filepath.Join(tempDir, "subdir"), filepath.Join(tempDir, "link")))
	}
	marker := filepath.Join(tempDir, "marker.txt")
	require.NoError(t, os.WriteFile(marker, nil, 0644))

	// Everything before the marker has been filtered out
	timeout := time.After(3 * time.Second)
	for {
		select {
		case event := <-w.FileChannel():
			if event.Path == marker {
				return
			}
			t.Fatalf("unexpected event for %s", event.Path)
		case <-timeout:
			t.Fatal("timeout waiting for marker event")
		}
	}
}

func TestAddDirectoryErrors(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	assert.Error(t, w.AddDirectory(filepath.Join(t.TempDir(), "missing")))

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	err = w.AddDirectory(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}
