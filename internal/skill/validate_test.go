package skill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDirValid(t *testing.T) {
	dir := writeSkill(t, t.TempDir(), "well-formed", "does a thing", "Instructions here.")

	problems := ValidateDir(dir)
	assert.Empty(t, problems)
	assert.False(t, HasErrors(problems))
}

func TestValidateDirMissingMetadata(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bare")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	problems := ValidateDir(dir)
	require.Len(t, problems, 1)
	assert.Equal(t, SeverityError, problems[0].Severity)
	assert.Contains(t, problems[0].Message, MetadataFileName)
}

func TestValidateDirNameMismatch(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "dir-name")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	content := "---\nname: other-name\ndescription: mismatch\n---\nbody"
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataFileName), []byte(content), 0o644))

	problems := ValidateDir(dir)
	require.Len(t, problems, 1)
	assert.Equal(t, SeverityWarning, problems[0].Severity)
	assert.False(t, HasErrors(problems))
}

func TestValidateDirEmptyBody(t *testing.T) {
	dir := writeSkill(t, t.TempDir(), "hollow", "valid metadata, no body", "")

	problems := ValidateDir(dir)
	require.Len(t, problems, 1)
	assert.Equal(t, SeverityWarning, problems[0].Severity)
}

func TestValidateDirNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	problems := ValidateDir(file)
	require.Len(t, problems, 1)
	assert.True(t, HasErrors(problems))
}
