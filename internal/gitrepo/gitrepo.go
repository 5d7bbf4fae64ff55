// Package gitrepo shells out to git for cloning and updating the remote
// skills repository. Exit status is checked on every invocation and the
// command output is folded into the returned error; there is no retry.
package gitrepo

import (
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"skillsmith/internal/logger"
)

// Runner executes a command and returns its combined output. Tests inject
// a fake; the default shells out.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Git drives the git binary.
type Git struct {
	runner Runner
}

// Option configures a Git.
type Option func(*Git)

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(g *Git) {
		g.runner = r
	}
}

// New creates a Git driver.
func New(opts ...Option) *Git {
	g := &Git{runner: defaultRunner}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// IsInstalled reports whether git is on PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Clone clones a repository into dst. When ref is non-empty, only that
// branch or tag is fetched.
func (g *Git) Clone(ctx context.Context, url, ref, dst string) error {
	args := []string{"clone", "--depth", "1"}
	if ref != "" {
		args = append(args, "--branch", ref, "--single-branch")
	}
	args = append(args, url, dst)

	logger.G(ctx).WithField("url", url).WithField("ref", ref).Debug("cloning repository")

	output, err := g.runner(ctx, "git", args...)
	if err != nil {
		return errors.Wrapf(err, "git clone failed: %s", strings.TrimSpace(string(output)))
	}
	return nil
}

// Pull fast-forwards an existing checkout.
func (g *Git) Pull(ctx context.Context, dir string) error {
	output, err := g.runner(ctx, "git", "-C", dir, "pull", "--ff-only")
	if err != nil {
		return errors.Wrapf(err, "git pull failed: %s", strings.TrimSpace(string(output)))
	}
	return nil
}
