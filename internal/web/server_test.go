package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/dialogview/internal/core/dialog"
	"github.com/colonyops/dialogview/internal/core/viewer"
)

type stubFetcher struct {
	dialogs dialog.Collection
	err     error
}

func (f stubFetcher) Fetch(context.Context) (dialog.Collection, error) {
	return f.dialogs, f.err
}

func sampleDialogs() dialog.Collection {
	return dialog.Collection{
		{ID: "first", Lines: []string{"A: hello", "B: hi there", "B:猫!.png", "my cat.png"}},
		{Lines: []string{"A: <b>not bold</b>"}},
		{ID: "third", Lines: []string{"B: bye"}},
	}
}

func newServer(t *testing.T, opts Options, f viewer.Fetcher) *httptest.Server {
	t.Helper()

	s, err := New(opts)
	require.NoError(t, err)
	_ = s.Load(context.Background(), f)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()

	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServer_Index(t *testing.T) {
	ts := newServer(t, Options{AssetDir: t.TempDir(), Location: "sample.json"}, stubFetcher{dialogs: sampleDialogs()})

	status, body := get(t, ts, "/")
	require.Equal(t, http.StatusOK, status)

	assert.Contains(t, body, `id="chat"`)
	assert.Contains(t, body, `<div class="dialog-title">first</div>`)
	assert.Contains(t, body, `<div class="message user"><div class="bubble">hello</div></div>`)
	assert.Contains(t, body, `<div class="message assistant"><div class="bubble">hi there</div></div>`)
	assert.Contains(t, body, `<div class="message assistant"><img class="meme" src="/assets/%E7%8C%AB!.png" alt="Meme Image"></div>`)
	assert.Contains(t, body, `<div class="message assistant"><div class="bubble">my cat.png</div></div>`, "a spaced name is text")
	assert.Equal(t, 1, strings.Count(body, "<img"))
	assert.Contains(t, body, `<button class="nav-button" disabled>Previous</button>`)
	assert.Contains(t, body, `href="/dialogs/1">Next</a>`)
	assert.Contains(t, body, "1/3")
}

func TestServer_Dialog(t *testing.T) {
	ts := newServer(t, Options{}, stubFetcher{dialogs: sampleDialogs()})

	t.Run("escapes text", func(t *testing.T) {
		status, body := get(t, ts, "/dialogs/1")
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "#2")
		assert.Contains(t, body, "&lt;b&gt;not bold&lt;/b&gt;")
		assert.NotContains(t, body, "<b>not bold</b>")
		assert.Contains(t, body, `href="/dialogs/0">Previous</a>`)
	})

	t.Run("last disables next", func(t *testing.T) {
		status, body := get(t, ts, "/dialogs/2")
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `<button class="nav-button" disabled>Next</button>`)
	})

	for _, path := range []string{"/dialogs/3", "/dialogs/-1", "/dialogs/abc"} {
		t.Run(path, func(t *testing.T) {
			status, _ := get(t, ts, path)
			assert.Equal(t, http.StatusNotFound, status)
		})
	}
}

func TestServer_Empty(t *testing.T) {
	ts := newServer(t, Options{}, stubFetcher{dialogs: dialog.Collection{}})

	status, body := get(t, ts, "/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, viewer.PlaceholderText)
	assert.NotContains(t, body, "nav-button")
}

func TestServer_LoadFailure(t *testing.T) {
	loadErr := &dialog.LoadError{Source: "gone.json", Err: &dialog.StatusError{Code: 404, Status: "404 Not Found"}}
	ts := newServer(t, Options{}, stubFetcher{err: loadErr})

	status, body := get(t, ts, "/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Failed to load dialog")
	assert.NotContains(t, body, "nav-button")

	status, _ = get(t, ts, "/api/dialogs")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestServer_Assets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "猫!.png"), []byte("png-bytes"), 0o644))

	ts := newServer(t, Options{AssetDir: dir}, stubFetcher{dialogs: sampleDialogs()})

	status, body := get(t, ts, "/assets/%E7%8C%AB!.png")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "png-bytes", body)
}

func TestServer_RemoteAssets(t *testing.T) {
	ts := newServer(t, Options{AssetDir: "https://cdn.example.com/stickers/"}, stubFetcher{dialogs: sampleDialogs()})

	_, body := get(t, ts, "/")
	assert.Contains(t, body, `src="https://cdn.example.com/stickers/%E7%8C%AB!.png"`)
}

func TestServer_API(t *testing.T) {
	ts := newServer(t, Options{Location: "sample.json"}, stubFetcher{dialogs: sampleDialogs()})

	t.Run("list", func(t *testing.T) {
		status, body := get(t, ts, "/api/dialogs")
		require.Equal(t, http.StatusOK, status)

		var got listResponse
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		assert.Equal(t, "sample.json", got.Source)
		assert.Equal(t, "loaded", got.Phase)
		assert.Equal(t, 3, got.Total)
		require.Len(t, got.Dialogs, 3)
		assert.Equal(t, 4, got.Dialogs[0].Lines)
		assert.Equal(t, 1, got.Dialogs[0].Images)
		assert.Equal(t, "#2", got.Dialogs[1].Title)
	})

	t.Run("dialog", func(t *testing.T) {
		status, body := get(t, ts, "/api/dialogs/0")
		require.Equal(t, http.StatusOK, status)

		var got viewer.Surface
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		title, ok := got.Title()
		require.True(t, ok)
		assert.Equal(t, "first", title)

		nav, ok := got.Nav()
		require.True(t, ok)
		assert.False(t, nav.PrevEnabled)
		assert.True(t, nav.NextEnabled)
	})

	t.Run("out of range", func(t *testing.T) {
		status, body := get(t, ts, "/api/dialogs/9")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, body, "out of range")
	})
}

func TestServer_Health(t *testing.T) {
	ts := newServer(t, Options{}, stubFetcher{dialogs: sampleDialogs()})

	status, body := get(t, ts, "/healthz")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"status": "ok"`)
	assert.Contains(t, body, `"phase": "loaded"`)
}

func TestServer_Static(t *testing.T) {
	ts := newServer(t, Options{}, stubFetcher{dialogs: sampleDialogs()})

	status, body := get(t, ts, "/static/style.css")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(body, "#chat"))
}

func TestServer_ListenAndServe(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background(), stubFetcher{dialogs: sampleDialogs()}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_LoadOnce(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background(), stubFetcher{dialogs: sampleDialogs()}))

	err = s.Load(context.Background(), stubFetcher{})
	assert.True(t, errors.Is(err, viewer.ErrAlreadyLoaded))
}
