// Package agentcli drives the external agent CLI that consumes the skill
// tree. skillsmith uses two of its subcommands: one regenerates the skill
// manifest after the tree changes, the other lists what the agent currently
// sees. Both are fail-fast: a non-zero exit halts the caller with the
// command output attached to the error.
package agentcli

import (
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"skillsmith/internal/logger"
)

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Client wraps the external agent CLI binary.
type Client struct {
	binary    string
	regenArgs []string
	listArgs  []string
	runner    Runner
}

// Option configures a Client.
type Option func(*Client)

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// WithRegenArgs overrides the manifest-regeneration subcommand.
func WithRegenArgs(args ...string) Option {
	return func(c *Client) {
		c.regenArgs = args
	}
}

// WithListArgs overrides the list subcommand.
func WithListArgs(args ...string) Option {
	return func(c *Client) {
		c.listArgs = args
	}
}

// New creates a client for the named agent CLI binary.
func New(binary string, opts ...Option) *Client {
	c := &Client{
		binary:    binary,
		regenArgs: []string{"skills", "reload"},
		listArgs:  []string{"skills", "list"},
		runner:    defaultRunner,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Binary returns the configured binary name.
func (c *Client) Binary() string {
	return c.binary
}

// Installed reports whether the agent CLI is on PATH.
func (c *Client) Installed() bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

// RegenerateManifest asks the agent CLI to rebuild its skill manifest.
func (c *Client) RegenerateManifest(ctx context.Context) error {
	logger.G(ctx).WithField("binary", c.binary).Debug("regenerating skill manifest")

	output, err := c.runner(ctx, c.binary, c.regenArgs...)
	if err != nil {
		return errors.Wrapf(err, "%s %s failed: %s",
			c.binary, strings.Join(c.regenArgs, " "), strings.TrimSpace(string(output)))
	}
	return nil
}

// ListInstalled returns the skill names the agent CLI reports, one per
// output line. Blank lines are dropped.
func (c *Client) ListInstalled(ctx context.Context) ([]string, error) {
	output, err := c.runner(ctx, c.binary, c.listArgs...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s failed: %s",
			c.binary, strings.Join(c.listArgs, " "), strings.TrimSpace(string(output)))
	}

	var names []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}
