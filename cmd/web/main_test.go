package main

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/status"
)

func TestIndexShowsHighScores(t *testing.T) {
	store := status.NewFileStore(filepath.Join(t.TempDir(), "highscore.txt"))
	_, err := store.Save(config.ModeFree, 4200)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	indexHandler("play.example", store, log.New(io.Discard))(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ssh -t play.example")
	assert.Contains(t, body, "<td>classic</td><td>0</td>")
	assert.Contains(t, body, "<td>free</td><td>4200</td>")
}

type failingStore struct{}

func (failingStore) Load(config.Mode) (int, error)     { return 0, errors.New("disk gone") }
func (failingStore) Save(config.Mode, int) (int, error) { return 0, nil }

func TestIndexReportsStoreFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	indexHandler("h", failingStore{}, log.New(io.Discard))(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
