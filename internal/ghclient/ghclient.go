// Package ghclient resolves the remote skills repository through the
// GitHub API before it gets cloned: existence, default branch, and the
// clone URL for owner/repo shorthand.
package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v67/github"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

// Client wraps the go-github client.
type Client struct {
	gh            *github.Client
	authenticated bool
}

// New creates a GitHub client.
// Token resolution order: GITHUB_TOKEN, GH_TOKEN, gh CLI config, unauthenticated.
func New() *Client {
	token := getToken()

	var httpClient *http.Client
	authenticated := false

	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
		authenticated = true
	}

	return &Client{
		gh:            github.NewClient(httpClient),
		authenticated: authenticated,
	}
}

// IsAuthenticated returns true if the client has a token.
func (c *Client) IsAuthenticated() bool {
	return c.authenticated
}

// Repo describes a resolved remote repository.
type Repo struct {
	Owner         string
	Name          string
	DefaultBranch string
	CloneURL      string
}

// Resolve looks up owner/repo and returns its default branch and clone URL.
func (c *Client) Resolve(ctx context.Context, owner, name string) (*Repo, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s/%s: %w", owner, name, err)
	}

	resolved := &Repo{Owner: owner, Name: name}
	if repo.DefaultBranch != nil {
		resolved.DefaultBranch = *repo.DefaultBranch
	}
	if repo.CloneURL != nil {
		resolved.CloneURL = *repo.CloneURL
	}

	return resolved, nil
}

// ParseRemote splits a remote spec into owner, repo, and optional ref.
// Accepted forms:
//   - owner/repo
//   - owner/repo@ref
//   - https://github.com/owner/repo(.git)
func ParseRemote(remote string) (owner, repo, ref string, err error) {
	spec := remote

	if idx := strings.LastIndex(spec, "@"); idx != -1 && !strings.Contains(spec, "://") {
		ref = spec[idx+1:]
		spec = spec[:idx]
	}

	spec = strings.TrimPrefix(spec, "https://github.com/")
	spec = strings.TrimPrefix(spec, "http://github.com/")
	spec = strings.TrimSuffix(spec, ".git")
	spec = strings.Trim(spec, "/")

	parts := strings.Split(spec, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("invalid remote %q, expected owner/repo", remote)
	}

	return parts[0], parts[1], ref, nil
}

// IsGitHubRemote reports whether the remote spec can be resolved through
// the GitHub API. Other git URLs are cloned as-is without resolution.
func IsGitHubRemote(remote string) bool {
	if strings.Contains(remote, "://") {
		return strings.Contains(remote, "github.com")
	}
	if strings.HasPrefix(remote, "git@") {
		return false
	}
	_, _, _, err := ParseRemote(remote)
	return err == nil
}

// getToken attempts to get a GitHub token from various sources.
func getToken() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}

	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}

	if token := readGhToken(); token != "" {
		return token
	}

	// Unauthenticated (60 req/hr)
	return ""
}

// ghHostsConfig represents the gh CLI hosts.yml config.
type ghHostsConfig map[string]struct {
	OAuthToken string `yaml:"oauth_token"`
}

// readGhToken reads the GitHub token from gh CLI config.
func readGhToken() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	hostsPath := filepath.Join(homeDir, ".config", "gh", "hosts.yml")
	if data, err := os.ReadFile(hostsPath); err == nil {
		var hosts ghHostsConfig
		if err := yaml.Unmarshal(data, &hosts); err == nil {
			if host, ok := hosts["github.com"]; ok && host.OAuthToken != "" {
				return host.OAuthToken
			}
		}
	}

	return ""
}
