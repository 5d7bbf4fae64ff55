package agentcli

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestRegenerateManifest(t *testing.T) {
	var gotName string
	var gotArgs []string
	c := New("claude", WithRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return nil, nil
	}))

	if err := c.RegenerateManifest(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotName != "claude" {
		t.Errorf("ran %q, want claude", gotName)
	}
	if got := strings.Join(gotArgs, " "); got != "skills reload" {
		t.Errorf("args = %q, want %q", got, "skills reload")
	}
}

func TestRegenerateManifestFailure(t *testing.T) {
	c := New("claude", WithRunner(func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte("manifest locked"), errors.New("exit status 1")
	}))

	err := c.RegenerateManifest(context.Background())
	if err == nil {
		t.Fatal("expected error on non-zero exit")
	}
	if !strings.Contains(err.Error(), "manifest locked") {
		t.Errorf("error does not include command output: %v", err)
	}
}

func TestListInstalled(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "plain list",
			output: "pdf-report\nsaliency\n",
			want:   []string{"pdf-report", "saliency"},
		},
		{
			name:   "blank lines and padding dropped",
			output: "\n  pdf-report  \n\nsaliency\n\n",
			want:   []string{"pdf-report", "saliency"},
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("claude", WithRunner(func(_ context.Context, _ string, _ ...string) ([]byte, error) {
				return []byte(tt.output), nil
			}))

			got, err := c.ListInstalled(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCustomSubcommands(t *testing.T) {
	var gotArgs []string
	c := New("agentctl",
		WithRegenArgs("manifest", "rebuild"),
		WithListArgs("manifest", "show"),
		WithRunner(func(_ context.Context, _ string, args ...string) ([]byte, error) {
			gotArgs = args
			return nil, nil
		}))

	if err := c.RegenerateManifest(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(gotArgs, " "); got != "manifest rebuild" {
		t.Errorf("regen args = %q", got)
	}

	if _, err := c.ListInstalled(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(gotArgs, " "); got != "manifest show" {
		t.Errorf("list args = %q", got)
	}
}
