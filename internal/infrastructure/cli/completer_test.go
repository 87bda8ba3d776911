package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidates(out [][]rune) []string {
	var got []string
	for _, c := range out {
		got = append(got, string(c))
	}
	return got
}

func TestPathCompleter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.py"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".secret"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), nil, 0o644))

	c := NewPathCompleter()

	line := []rune("-l " + dir + "/s")
	out, length := c.Do(line, len(line))
	assert.Equal(t, 1, length)
	assert.Equal(t, []string{"etup.py", "rc/"}, candidates(out))

	line = []rune("cat " + dir + "/")
	out, length = c.Do(line, len(line))
	assert.Equal(t, 0, length)
	assert.Equal(t, []string{"README", "setup.py", "src/"}, candidates(out))

	line = []rune(dir + "/.s")
	out, _ = c.Do(line, len(line))
	assert.Equal(t, []string{"ecret"}, candidates(out))
}

func TestPathCompleterMissingDirectory(t *testing.T) {
	c := NewPathCompleter()
	line := []rune("/definitely/not/here/x")

	out, length := c.Do(line, len(line))
	assert.Empty(t, out)
	assert.Zero(t, length)
}
