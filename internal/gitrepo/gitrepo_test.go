package gitrepo

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

type call struct {
	name string
	args []string
}

func fakeRunner(calls *[]call, output string, err error) Runner {
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, call{name: name, args: args})
		return []byte(output), err
	}
}

func TestCloneArgs(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{
			name: "default branch",
			ref:  "",
			want: "clone --depth 1 https://example.com/skills.git /tmp/dst",
		},
		{
			name: "pinned ref",
			ref:  "v1.2.0",
			want: "clone --depth 1 --branch v1.2.0 --single-branch https://example.com/skills.git /tmp/dst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []call
			g := New(WithRunner(fakeRunner(&calls, "", nil)))

			if err := g.Clone(context.Background(), "https://example.com/skills.git", tt.ref, "/tmp/dst"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(calls) != 1 {
				t.Fatalf("got %d calls, want 1", len(calls))
			}
			if calls[0].name != "git" {
				t.Errorf("ran %q, want git", calls[0].name)
			}
			if got := strings.Join(calls[0].args, " "); got != tt.want {
				t.Errorf("args = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCloneFailureIncludesOutput(t *testing.T) {
	var calls []call
	g := New(WithRunner(fakeRunner(&calls, "fatal: repository not found", errors.New("exit status 128"))))

	err := g.Clone(context.Background(), "https://example.com/nope.git", "", "/tmp/dst")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "repository not found") {
		t.Errorf("error does not include command output: %v", err)
	}
}

func TestPull(t *testing.T) {
	var calls []call
	g := New(WithRunner(fakeRunner(&calls, "Already up to date.", nil)))

	if err := g.Pull(context.Background(), "/tmp/checkout"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "-C /tmp/checkout pull --ff-only"
	if got := strings.Join(calls[0].args, " "); got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}
