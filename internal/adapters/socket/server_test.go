package socket

import (
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/camille/redite/internal/app"
	"github.com/camille/redite/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestServer wires a real app with a small dictionary and serves
// it on a socket in a temp dir.
func startTestServer(t *testing.T) (*Server, *Client) {
	t.Helper()

	dir := t.TempDir()
	a, err := app.New(app.Config{DataDir: dir, Logger: log.New(io.Discard, "", 0)})
	require.NoError(t, err)
	t.Cleanup(func() { a.Stop() })

	require.NoError(t, a.Store.SaveBundle(&ports.Bundle{
		Version:   "1.0.0",
		Timestamp: "2026-03-01T12:00:00Z",
		Entries: []ports.Pair{
			{"mange", "manger"},
			{"chat", "chat"},
		},
	}))
	require.NoError(t, a.ReloadDictionary())

	sockPath := filepath.Join(dir, "redite.sock")
	srv := NewServer(a, sockPath)
	require.NoError(t, srv.Start())
	t.Cleanup(func() { srv.Stop() })

	return srv, NewClient(sockPath)
}

func TestServer_AnalyzeStreamsProgressThenComplete(t *testing.T) {
	_, client := startTestServer(t)

	var percents []int
	result, err := client.Analyze("Le chat mange. Le chat dort. Le chien mange.",
		func(percent int, message string) {
			percents = append(percents, percent)
		})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, percents, "progress messages precede the result")
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1])
	}

	freqs := make(map[string]int)
	for _, lc := range result.LemmaFrequencies {
		freqs[lc.Lemma] = lc.Frequency
	}
	assert.Equal(t, 2, freqs["manger"])
	assert.Equal(t, 2, freqs["chat"])
	assert.NotContains(t, freqs, "le")
	assert.Len(t, result.Highlights, 4)
	assert.Equal(t, 9, result.Stats.WordCount)
}

func TestServer_AnalyzeEmptyText(t *testing.T) {
	_, client := startTestServer(t)

	result, err := client.Analyze("", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Highlights)
	assert.Zero(t, result.Stats.WordCount)
}

func TestServer_AnalyzeValidationError(t *testing.T) {
	_, client := startTestServer(t)

	long := make([]byte, app.MaxChars+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := client.Analyze(string(long), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestServer_Health(t *testing.T) {
	_, client := startTestServer(t)

	h, err := client.Health()
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, 2, h.Entries)
}

func TestServer_Stats(t *testing.T) {
	_, client := startTestServer(t)

	s, err := client.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Entries)
	assert.Equal(t, "2026-03-01T12:00:00Z", s.BundleBuiltAt)
	assert.False(t, s.Busy)
}

func TestServer_Reload(t *testing.T) {
	_, client := startTestServer(t)

	r, err := client.Reload()
	require.NoError(t, err)
	assert.Equal(t, 2, r.Entries)
}

func TestServer_UnknownMethod(t *testing.T) {
	srv, _ := startTestServer(t)

	client := NewClient(srv.Addr())
	err := client.call(Request{ID: "1", Method: "bogus"}, &struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown method")
}

func TestServer_ShutdownSignalsChannel(t *testing.T) {
	srv, client := startTestServer(t)

	require.NoError(t, client.Shutdown())

	select {
	case <-srv.ShutdownCh():
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown channel should be closed after remote shutdown")
	}
}

func TestServer_Ping(t *testing.T) {
	srv, client := startTestServer(t)
	assert.True(t, client.Ping())

	require.NoError(t, srv.Stop())
	assert.False(t, client.Ping())
}

func TestServer_StartTwiceFails(t *testing.T) {
	srv, _ := startTestServer(t)

	second := NewServer(nil, srv.Addr())
	err := second.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}
