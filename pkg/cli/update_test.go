package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo/releases" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testUpdater(srv *httptest.Server, in string) (*Updater, *bytes.Buffer) {
	var out bytes.Buffer
	return &Updater{
		Repo:    "owner/repo",
		APIBase: srv.URL,
		Client:  srv.Client(),
		Out:     &out,
		In:      strings.NewReader(in),
	}, &out
}

func withVersion(t *testing.T, v string) {
	t.Helper()
	old := Version
	Version = v
	t.Cleanup(func() { Version = old })
}

const releasesJSON = `[
  {"tag_name": "v9.0.0", "draft": true},
  {"tag_name": "v2.0.0-rc1", "prerelease": true},
  {"tag_name": "release-1.4.0", "html_url": "https://example.invalid/1.4.0"},
  {"tag_name": "nightly", "name": "build 1.3.9"},
  {"tag_name": "junk"}
]`

func TestLatestReleasePicksHighestPublished(t *testing.T) {
	u, _ := testUpdater(releaseServer(t, http.StatusOK, releasesJSON), "")
	rel, err := u.latestRelease(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, "1.4.0", rel.Version.String())
	assert.Equal(t, "https://example.invalid/1.4.0", rel.URL)
	assert.Empty(t, rel.AssetURL)
}

func TestLatestReleaseNone(t *testing.T) {
	u, out := testUpdater(releaseServer(t, http.StatusOK, `[{"tag_name": "junk"}]`), "")
	require.NoError(t, u.Check(context.Background()))
	assert.Contains(t, out.String(), "No releases found for owner/repo.")
}

func TestCheckReportsUnavailableAsset(t *testing.T) {
	withVersion(t, "1.0.0")
	u, out := testUpdater(releaseServer(t, http.StatusOK, releasesJSON), "")
	require.NoError(t, u.Check(context.Background()))
	assert.Contains(t, out.String(), "Latest version: 1.4.0")
	assert.Contains(t, out.String(), "no downloadable asset")
	assert.Contains(t, out.String(), "https://example.invalid/1.4.0")
}

func TestCheckUpToDate(t *testing.T) {
	withVersion(t, "v1.4.0")
	u, out := testUpdater(releaseServer(t, http.StatusOK, releasesJSON), "")
	require.NoError(t, u.Check(context.Background()))
	assert.Contains(t, out.String(), "already running the latest version")
}

func TestCheckCancelled(t *testing.T) {
	withVersion(t, "1.0.0")
	body := `[{"tag_name": "v1.1.0", "assets": [{"name": "rscope_linux_amd64.tar.gz", "browser_download_url": "https://example.invalid/a"}]}]`
	u, out := testUpdater(releaseServer(t, http.StatusOK, body), "n\n")
	require.NoError(t, u.Check(context.Background()))
	assert.Contains(t, out.String(), "Update now? (y/N)")
	assert.Contains(t, out.String(), "Update cancelled.")
}

func TestCheckHTTPError(t *testing.T) {
	u, _ := testUpdater(releaseServer(t, http.StatusInternalServerError, "boom"), "")
	err := u.Check(context.Background())
	assert.ErrorContains(t, err, "status 500")
}

func TestMatchesPlatform(t *testing.T) {
	assert.True(t, matchesPlatform("rscope_Linux_x86_64.tar.gz", "linux", "amd64"))
	assert.True(t, matchesPlatform("rscope-darwin-arm64.zip", "darwin", "arm64"))
	assert.False(t, matchesPlatform("rscope-darwin-arm64.zip", "linux", "arm64"))
	assert.False(t, matchesPlatform("rscope-linux-386.tar.gz", "linux", "amd64"))
}
