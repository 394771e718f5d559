package widgets

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedAssets(t *testing.T) {
	s, err := NewStore("", nil)
	require.NoError(t, err)
	defer s.Close()

	for _, name := range []string{"quiz", "loans", "trip"} {
		html, err := s.HTML(name)
		require.NoError(t, err, name)
		assert.Contains(t, html, "window.openai", name)
	}

	_, err = s.HTML("nope")
	assert.Error(t, err)
}

func TestDevDirShadowsEmbedded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quiz.html"), []byte("<p>override</p>"), 0o644))

	s, err := NewStore(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	html, err := s.HTML("quiz")
	require.NoError(t, err)
	assert.Equal(t, "<p>override</p>", html)

	// trip has no override, falls back to the embedded asset
	html, err = s.HTML("trip")
	require.NoError(t, err)
	assert.Contains(t, html, "window.openai")
}

func TestDevDirReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quiz.html")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	s, err := NewStore(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	html, err := s.HTML("quiz")
	require.NoError(t, err)
	assert.Equal(t, "v1", html)

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	require.Eventually(t, func() bool {
		html, err := s.HTML("quiz")
		return err == nil && html == "v2"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestNewStoreMissingDir(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	s, err := NewStore("", nil)
	require.NoError(t, err)
	defer s.Close()

	h := s.Handler("/widgets/")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widgets/loans.html", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.True(t, strings.Contains(rec.Body.String(), "window.openai"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widgets/../secret.html", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widgets/nope.html", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
