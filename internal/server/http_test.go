package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/kbreader/pkg/api"
)

func newTestServer(t *testing.T, prefix string, articles []api.Article) *httptest.Server {
	t.Helper()
	cfg := viper.New()
	cfg.Set("api_prefix", prefix)
	log := logrus.New()
	log.SetOutput(io.Discard)
	ts := httptest.NewServer(New(cfg, log, articles).Router())
	t.Cleanup(ts.Close)
	return ts
}

func fetch(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestArticlesPopulateCategory(t *testing.T) {
	ts := newTestServer(t, "/api", []api.Article{
		{ID: 1, Title: "T", Category: &api.Category{ID: 4, Name: "Cat"}},
	})

	code, body := fetch(t, ts.URL+"/api/articles?populate=category")
	require.Equal(t, http.StatusOK, code)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	cat := data[0].(map[string]any)["category"].(map[string]any)
	require.Equal(t, "Cat", cat["name"])

	code, body = fetch(t, ts.URL+"/api/articles")
	require.Equal(t, http.StatusOK, code)
	first := body["data"].([]any)[0].(map[string]any)
	_, has := first["category"]
	require.False(t, has, "category is only embedded when populated")
}

func TestArticlesEmptyFixture(t *testing.T) {
	ts := newTestServer(t, "", nil)
	code, body := fetch(t, ts.URL+"/articles?populate=category")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []any{}, body["data"])
}

func TestArticlesMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, "/api", nil)
	resp, err := http.Post(ts.URL+"/api/articles", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestLoadFixture(t *testing.T) {
	dir := t.TempDir()

	envPath := filepath.Join(dir, "env.json")
	require.NoError(t, os.WriteFile(envPath, []byte(`{"data":[{"id":1,"title":"A","content":[]}]}`), 0o600))
	got, err := LoadFixture(envPath)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "A", got[0].Title)

	arrPath := filepath.Join(dir, "arr.json")
	require.NoError(t, os.WriteFile(arrPath, []byte(` [{"id":2,"title":"B"}]`), 0o600))
	got, err = LoadFixture(arrPath)
	require.NoError(t, err)
	require.Equal(t, int64(2), got[0].ID)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{`), 0o600))
	_, err = LoadFixture(badPath)
	require.Error(t, err)
}
