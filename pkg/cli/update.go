package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

const githubAPI = "https://api.github.com"

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// Updater checks GitHub releases and replaces the running binary.
type Updater struct {
	Repo    string
	APIBase string
	Client  *http.Client
	Out     io.Writer
	In      io.Reader
	// AssumeYes skips the confirmation prompt.
	AssumeYes bool
}

// NewUpdater returns an updater for cfg.UpdateRepo talking to the public
// GitHub API.
func NewUpdater(cfg Config, out io.Writer, in io.Reader) *Updater {
	return &Updater{
		Repo:    cfg.UpdateRepo,
		APIBase: githubAPI,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Out:     out,
		In:      in,
	}
}

// latestRelease lists the repository's releases and returns the highest
// published, non-prerelease version whose tag (or name) contains a semver.
// It returns nil when there is none.
func (u *Updater) latestRelease(ctx context.Context) (*selfupdate.Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases", strings.TrimRight(u.APIBase, "/"), u.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := u.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var releases []struct {
		TagName    string `json:"tag_name"`
		Name       string `json:"name"`
		Draft      bool   `json:"draft"`
		Prerelease bool   `json:"prerelease"`
		HTMLURL    string `json:"html_url"`
		Assets     []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to decode github releases: %w", err)
	}

	var candidates []selfupdate.Release
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			match = semverRe.FindString(r.Name)
		}
		v, err := semver.Parse(strings.TrimPrefix(match, "v"))
		if err != nil {
			continue
		}

		// prefer an asset built for this platform, else any asset
		var assetURL string
		for _, a := range r.Assets {
			if matchesPlatform(a.Name, runtime.GOOS, runtime.GOARCH) {
				assetURL = a.BrowserDownloadURL
				break
			}
			if assetURL == "" {
				assetURL = a.BrowserDownloadURL
			}
		}
		candidates = append(candidates, selfupdate.Release{
			Version:  v,
			AssetURL: assetURL,
			URL:      r.HTMLURL,
			Name:     r.Name,
		})
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Version.GT(candidates[j].Version)
	})
	return &candidates[0], nil
}

// Check reports the current and latest versions and, after confirmation,
// replaces the running binary with the latest release asset.
func (u *Updater) Check(ctx context.Context) error {
	fmt.Fprintf(u.Out, "Current version: %s\n", Version)
	latest, err := u.latestRelease(ctx)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if latest == nil {
		fmt.Fprintf(u.Out, "No releases found for %s.\n", u.Repo)
		return nil
	}
	fmt.Fprintf(u.Out, "Latest version: %s\n", latest.Version)

	current, err := semver.Parse(strings.TrimPrefix(Version, "v"))
	if err != nil {
		fmt.Fprintf(u.Out, "warning: could not parse current version %q: %v\n", Version, err)
	} else if latest.Version.LTE(current) {
		fmt.Fprintf(u.Out, "You are already running the latest version: %s.\n", current)
		return nil
	}

	if latest.AssetURL == "" {
		fmt.Fprintf(u.Out, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		if latest.URL != "" {
			fmt.Fprintf(u.Out, "Download it from %s\n", latest.URL)
		}
		return nil
	}

	if !u.AssumeYes {
		fmt.Fprintf(u.Out, "A new version (%s) is available. Update now? (y/N): ", latest.Version)
		answer, _ := bufio.NewReader(u.In).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(u.Out, "Update cancelled.")
			return nil
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	fmt.Fprintln(u.Out, "Updating...")
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(u.Out, "Updated to version %s.\n", latest.Version)
	return nil
}

// matchesPlatform reports whether a release asset name mentions goos and
// goarch. x86_64 counts as amd64.
func matchesPlatform(name, goos, goarch string) bool {
	n := strings.ToLower(name)
	if !strings.Contains(n, goos) {
		return false
	}
	return strings.Contains(n, goarch) || (goarch == "amd64" && strings.Contains(n, "x86_64"))
}
