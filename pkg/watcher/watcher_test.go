package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gopipe/internal/debounce"
)

type calls struct {
	mu    sync.Mutex
	paths []string
}

func (c *calls) add(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = append(c.paths, path)
}

func (c *calls) get() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func newTestWatcher(t *testing.T, files ...string) (*FileWatcher, *debounce.FrameScheduler, *calls) {
	t.Helper()
	frames := debounce.NewFrameScheduler(time.Unix(0, 0))
	fw, err := NewFileWatcher(100*time.Millisecond, WithScheduler(frames))
	require.NoError(t, err)
	t.Cleanup(func() { fw.Close() })

	c := &calls{}
	require.NoError(t, fw.Watch(files, c.add))
	return fw, frames, c
}

func TestBurstIsCoalesced(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pipe.yaml")
	fw, frames, c := newTestWatcher(t, file)

	for i := 0; i < 5; i++ {
		fw.handleEvent(fsnotify.Event{Name: file, Op: fsnotify.Write})
		frames.Step(20 * time.Millisecond)
	}
	assert.Empty(t, c.get())

	frames.Step(100 * time.Millisecond)
	assert.Equal(t, []string{file}, c.get())
}

func TestFilesAreIndependent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	fw, frames, c := newTestWatcher(t, a, b)

	fw.handleEvent(fsnotify.Event{Name: a, Op: fsnotify.Write})
	frames.Step(50 * time.Millisecond)
	fw.handleEvent(fsnotify.Event{Name: b, Op: fsnotify.Create})
	frames.Step(60 * time.Millisecond)
	assert.Equal(t, []string{a}, c.get())

	frames.Step(100 * time.Millisecond)
	assert.Equal(t, []string{a, b}, c.get())
}

func TestIgnoredEvents(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pipe.yaml")
	fw, frames, c := newTestWatcher(t, file)

	fw.handleEvent(fsnotify.Event{Name: file, Op: fsnotify.Chmod})
	fw.handleEvent(fsnotify.Event{Name: filepath.Join(dir, "other.yaml"), Op: fsnotify.Write})
	frames.Step(time.Second)
	assert.Empty(t, c.get())
}

func TestCloseDropsPending(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pipe.yaml")
	fw, frames, c := newTestWatcher(t, file)

	fw.handleEvent(fsnotify.Event{Name: file, Op: fsnotify.Write})
	require.NoError(t, fw.RemoveAll())
	frames.Step(time.Second)
	assert.Empty(t, c.get())
}

func TestWatchRealFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pipe.yaml")
	require.NoError(t, os.WriteFile(file, []byte("length: 6m\n"), 0644))

	fw, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	c := &calls{}
	require.NoError(t, fw.Watch([]string{file}, c.add))
	fw.Start()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("length: 7m\n"), 0644))
	}

	require.Eventually(t, func() bool { return len(c.get()) == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Len(t, c.get(), 1)
}
