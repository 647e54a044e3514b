package app

import (
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/camille/redite/internal/adapters/bundlefile"
	"github.com/camille/redite/internal/domain/analysis"
	"github.com/camille/redite/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testBundle() *ports.Bundle {
	return &ports.Bundle{
		Version:   "1.0.0",
		Timestamp: "2026-03-01T12:00:00Z",
		Entries: []ports.Pair{
			{"mange", "manger"},
			{"chat", "chat"},
		},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(Config{DataDir: t.TempDir(), Logger: quietLogger()})
	require.NoError(t, err)
	t.Cleanup(func() { a.Stop() })
	return a
}

// drain consumes an event stream and returns the terminal event.
func drain(t *testing.T, ch <-chan analysis.Event) analysis.Event {
	t.Helper()
	var terminal analysis.Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				require.NotNil(t, terminal)
				return terminal
			}
			switch ev.(type) {
			case analysis.Complete, analysis.Failure:
				terminal = ev
			}
		case <-timeout:
			t.Fatal("timed out draining events")
		}
	}
}

func TestApp_NoDictionary(t *testing.T) {
	a := newTestApp(t)
	_, err := a.Analyze("Le chat dort.")
	assert.True(t, errors.Is(err, ErrNoDictionary))
}

func TestApp_LoadsBundleFromStore(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Store.SaveBundle(testBundle()))
	require.NoError(t, a.ReloadDictionary())

	entries, ts := a.DictionaryStats()
	assert.Equal(t, 2, entries)
	assert.Equal(t, "2026-03-01T12:00:00Z", ts)
}

func TestApp_FallsBackToBundleFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, bundlefile.Write(BundlePath(dir), testBundle()))

	a, err := New(Config{DataDir: dir, Logger: quietLogger()})
	require.NoError(t, err)
	defer a.Stop()

	entries, _ := a.DictionaryStats()
	assert.Equal(t, 2, entries)
}

func TestApp_AnalyzeEndToEnd(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Store.SaveBundle(testBundle()))
	require.NoError(t, a.ReloadDictionary())

	ch, err := a.Analyze("Le chat mange. Le chat dort.")
	require.NoError(t, err)

	terminal := drain(t, ch)
	require.IsType(t, analysis.Complete{}, terminal)

	result := terminal.(analysis.Complete).Result
	assert.NotEmpty(t, result.Highlights)
	assert.False(t, a.Busy(), "busy flag clears after the terminal event")
}

func TestApp_ValidationBeforeBusy(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Store.SaveBundle(testBundle()))
	require.NoError(t, a.ReloadDictionary())

	longText := make([]byte, MaxChars+1)
	for i := range longText {
		longText[i] = 'a'
	}

	_, err := a.Analyze(string(longText))
	require.Error(t, err)
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.False(t, a.Busy(), "validation failure must not enter busy state")
}

func TestApp_BusyRejection(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Store.SaveBundle(testBundle()))
	require.NoError(t, a.ReloadDictionary())

	// Simulate an in-flight analysis.
	a.mu.Lock()
	a.busy = true
	a.mu.Unlock()

	_, err := a.Analyze("Le chat dort.")
	assert.True(t, errors.Is(err, ErrBusy), "request while busy is rejected, not queued")

	a.mu.Lock()
	a.busy = false
	a.mu.Unlock()

	ch, err := a.Analyze("Le chat dort.")
	require.NoError(t, err)
	drain(t, ch)
}

func TestApp_ReloadSwapsDictionary(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Store.SaveBundle(testBundle()))
	require.NoError(t, a.ReloadDictionary())

	bigger := testBundle()
	bigger.Entries = append(bigger.Entries, ports.Pair{"chats", "chat"})
	require.NoError(t, a.Store.SaveBundle(bigger))
	require.NoError(t, a.ReloadDictionary())

	entries, _ := a.DictionaryStats()
	assert.Equal(t, 3, entries)
}

func TestApp_WatcherTriggersReload(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, bundlefile.Write(BundlePath(dir), testBundle()))

	a, err := New(Config{DataDir: dir, Logger: quietLogger()})
	require.NoError(t, err)
	defer a.Stop()
	require.NoError(t, a.Start())

	time.Sleep(50 * time.Millisecond)

	bigger := testBundle()
	bigger.Entries = append(bigger.Entries, ports.Pair{"chats", "chat"}, ports.Pair{"dort", "dormir"})
	require.NoError(t, bundlefile.Write(BundlePath(dir), bigger))

	require.Eventually(t, func() bool {
		entries, _ := a.DictionaryStats()
		return entries == 4
	}, 3*time.Second, 50*time.Millisecond, "watcher should hot-reload the dictionary")
}
