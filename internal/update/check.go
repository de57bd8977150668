// Package update answers "is a newer release available" for the version
// subcommand. It only reads the latest release tag; it never downloads or
// installs anything.
package update

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/mod/semver"
	"golang.org/x/oauth2"
)

const (
	repoOwner = "jakoblorz"
	repoName  = "mcp-init"
)

// ReleaseSource abstracts the release lookup for testing.
type ReleaseSource interface {
	LatestReleaseTag(ctx context.Context) (string, error)
}

// GitHubSource reads releases from the GitHub API.
type GitHubSource struct {
	client *github.Client
}

// NewGitHubSource uses GH_TOKEN / GITHUB_TOKEN when present so private
// mirrors and rate limits behave, and falls back to anonymous access.
func NewGitHubSource() *GitHubSource {
	token := os.Getenv("GH_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return &GitHubSource{client: github.NewClient(nil)}
	}

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &GitHubSource{client: github.NewClient(oauth2.NewClient(ctx, ts))}
}

func (s *GitHubSource) LatestReleaseTag(ctx context.Context) (string, error) {
	release, _, err := s.client.Repositories.GetLatestRelease(ctx, repoOwner, repoName)
	if err != nil {
		return "", fmt.Errorf("failed to get latest release: %w", err)
	}
	return release.GetTagName(), nil
}

// CheckResult compares the running build against the latest release.
type CheckResult struct {
	Current  string
	Latest   string
	Outdated bool
}

// Check fetches the latest release tag and compares semver. Development
// builds (non-semver versions) always count as up to date.
func Check(ctx context.Context, source ReleaseSource, current string) (*CheckResult, error) {
	tag, err := source.LatestReleaseTag(ctx)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{
		Current: current,
		Latest:  strings.TrimPrefix(tag, "v"),
	}

	currentVer := "v" + strings.TrimPrefix(current, "v")
	latestVer := "v" + result.Latest
	if semver.IsValid(currentVer) && semver.IsValid(latestVer) {
		result.Outdated = semver.Compare(currentVer, latestVer) < 0
	}

	return result, nil
}
