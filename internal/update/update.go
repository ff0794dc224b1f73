// Package update provides version checking and self-update for the onroad
// binary.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creativeprojects/go-selfupdate"
)

const (
	repoOwner     = "driveline"
	repoName      = "onroad"
	checkInterval = 24 * time.Hour
)

// updateCache stores the last update check result.
type updateCache struct {
	LastCheck       time.Time `json:"last_check"`
	LatestVersion   string    `json:"latest_version,omitempty"`
	UpdateAvailable bool      `json:"update_available"`
}

func cacheDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "onroad")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "onroad")
}

func cachePath() string {
	dir := cacheDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "update-cache.json")
}

func loadCache() *updateCache {
	path := cachePath()
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var cache updateCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil
	}
	return &cache
}

func saveCache(cache *updateCache) {
	path := cachePath()
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	data, err := json.Marshal(cache)
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0644)
}

// Release holds information about an available release.
type Release struct {
	Version    string
	ReleaseURL string
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("create GitHub source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("create updater: %w", err)
	}
	return updater, nil
}

// CheckForUpdate reports whether a newer release is available. Dev builds
// never update.
func CheckForUpdate(currentVersion string) (*Release, bool, error) {
	current := strings.TrimPrefix(currentVersion, "v")
	if current == "dev" || current == "" {
		return nil, false, nil
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, false, err
	}

	latest, found, err := updater.DetectLatest(context.Background(), selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, false, fmt.Errorf("detect latest version: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	release := &Release{
		Version:    latest.Version(),
		ReleaseURL: latest.ReleaseNotes,
	}
	if strings.TrimPrefix(latest.Version(), "v") == current {
		return release, false, nil
	}
	return release, latest.GreaterThan(current), nil
}

// Update downloads the latest release and replaces the running binary.
func Update(currentVersion string) error {
	current := strings.TrimPrefix(currentVersion, "v")
	if current == "dev" || current == "" {
		return fmt.Errorf("cannot update dev builds")
	}

	updater, err := newUpdater()
	if err != nil {
		return err
	}

	latest, found, err := updater.DetectLatest(context.Background(), selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return fmt.Errorf("detect latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("no releases found")
	}
	if !latest.GreaterThan(current) {
		return fmt.Errorf("already at latest version (%s)", currentVersion)
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("get executable path: %w", err)
	}
	if err := updater.UpdateTo(context.Background(), latest, exe); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

// CheckPeriodically checks for updates at most once per checkInterval and
// returns a notice string when a newer release exists. Called at command
// startup; failures stay silent.
func CheckPeriodically(currentVersion string) string {
	current := strings.TrimPrefix(currentVersion, "v")
	if current == "dev" || current == "" {
		return ""
	}

	if cache := loadCache(); cache != nil && time.Since(cache.LastCheck) < checkInterval {
		if cache.UpdateAvailable && cache.LatestVersion != "" {
			cachedLatest := strings.TrimPrefix(cache.LatestVersion, "v")
			if cachedLatest != current && isNewerVersion(cachedLatest, current) {
				return updateNotice(currentVersion, cache.LatestVersion)
			}
		}
		return ""
	}

	release, hasUpdate, err := CheckForUpdate(currentVersion)

	newCache := &updateCache{
		LastCheck:       time.Now(),
		UpdateAvailable: hasUpdate && err == nil,
	}
	if release != nil {
		newCache.LatestVersion = release.Version
	}
	saveCache(newCache)

	if err != nil || !hasUpdate {
		return ""
	}
	return updateNotice(currentVersion, release.Version)
}

// isNewerVersion compares major.minor.patch numerically.
func isNewerVersion(a, b string) bool {
	parseVersion := func(v string) (int, int, int) {
		v = strings.TrimPrefix(v, "v")
		parts := strings.Split(v, ".")
		var major, minor, patch int
		if len(parts) >= 1 {
			_, _ = fmt.Sscanf(parts[0], "%d", &major)
		}
		if len(parts) >= 2 {
			_, _ = fmt.Sscanf(parts[1], "%d", &minor)
		}
		if len(parts) >= 3 {
			_, _ = fmt.Sscanf(parts[2], "%d", &patch)
		}
		return major, minor, patch
	}

	aMajor, aMinor, aPatch := parseVersion(a)
	bMajor, bMinor, bPatch := parseVersion(b)

	if aMajor != bMajor {
		return aMajor > bMajor
	}
	if aMinor != bMinor {
		return aMinor > bMinor
	}
	return aPatch > bPatch
}

func updateNotice(current, latest string) string {
	return fmt.Sprintf("Update available: %s -> %s (run: onroad upgrade)", current, latest)
}
