package dialog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `[{"dialog_id": "d1", "full_dialog": ["A: hi", "B:wave.png"]}]`

func TestSource_Location(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		file string
		want string
	}{
		{name: "relative dir", dir: "../Dialogs_with_meme", file: "a.json", want: filepath.Join("../Dialogs_with_meme", "a.json")},
		{name: "absolute file wins", dir: "/ignored", file: "/data/a.json", want: "/data/a.json"},
		{name: "url dir", dir: "https://example.com/dialogs", file: "a.json", want: "https://example.com/dialogs/a.json"},
		{name: "url dir with slash", dir: "https://example.com/dialogs/", file: "a.json", want: "https://example.com/dialogs/a.json"},
		{name: "url file wins", dir: "./local", file: "http://example.com/a.json", want: "http://example.com/a.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSource(tt.dir, tt.file).Location())
		})
	}
}

func TestSource_IsRemote(t *testing.T) {
	assert.True(t, NewSource("https://example.com", "a.json").IsRemote())
	assert.True(t, NewSource("", "http://example.com/a.json").IsRemote())
	assert.False(t, NewSource("./dialogs", "a.json").IsRemote())
	assert.False(t, NewSource("https://example.com", "/abs/a.json").IsRemote())
}

func TestSource_FetchLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(sampleDoc), 0o644))

	t.Run("reads file", func(t *testing.T) {
		c, err := NewSource(dir, "a.json").Fetch(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, c.Len())
		assert.Equal(t, "d1", c[0].ID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewSource(dir, "missing.json").Fetch(context.Background())
		require.Error(t, err)

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "missing.json", loadErr.Source)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid json", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("not json"), 0o644))

		_, err := NewSource(dir, "bad.json").Fetch(context.Background())
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewSource(dir, "a.json").Fetch(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSource_FetchRemote(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dialogs/a.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDoc))
	})
	mux.HandleFunc("/dialogs/slow.json", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Run("success", func(t *testing.T) {
		src := NewSource(srv.URL+"/dialogs", "a.json")
		src.Client = srv.Client()

		c, err := src.Fetch(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, c.Len())
		assert.Equal(t, []string{"A: hi", "B:wave.png"}, c[0].Lines)
	})

	t.Run("not found", func(t *testing.T) {
		src := NewSource(srv.URL+"/dialogs", "missing.json")
		src.Client = srv.Client()

		_, err := src.Fetch(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadStatus)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.Code)
		assert.Equal(t, "Failed to load missing.json (404 Not Found)", err.Error())
	})

	t.Run("timeout", func(t *testing.T) {
		src := NewSource(srv.URL+"/dialogs", "slow.json")
		src.Client = srv.Client()
		src.Timeout = 50 * time.Millisecond

		_, err := src.Fetch(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/a.json", true},
		{"http://localhost:8080/", true},
		{"../Dialogs_with_meme", false},
		{"/abs/path.json", false},
		{"ftp://example.com/a.json", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsURL(tt.in), tt.in)
	}
}

func TestLoadError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *LoadError
		want string
	}{
		{
			name: "bad status",
			err:  &LoadError{Source: "a.json", Err: &StatusError{Code: 500, Status: "500 Internal Server Error"}},
			want: "Failed to load a.json (500 Internal Server Error)",
		},
		{
			name: "other cause",
			err:  &LoadError{Source: "a.json", Err: errors.New("boom")},
			want: "load a.json: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
