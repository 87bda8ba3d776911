package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/doeshing/replize-go/internal/pkg/filesystem"
)

// PathCompleter completes the word under the cursor as a filesystem path.
type PathCompleter struct {
	readDir func(string) ([]os.DirEntry, error)
}

// NewPathCompleter builds a completer backed by the local filesystem.
func NewPathCompleter() *PathCompleter {
	return &PathCompleter{readDir: os.ReadDir}
}

// Do implements readline.AutoCompleter.
func (c *PathCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if pos > len(line) {
		pos = len(line)
	}
	head := string(line[:pos])
	word := head[strings.LastIndexAny(head, " \t")+1:]

	dir, prefix := filepath.Split(word)
	lookup := dir
	if lookup == "" {
		lookup = "."
	}
	entries, err := c.readDir(filesystem.ExpandPath(lookup))
	if err != nil {
		return nil, 0
	}

	var candidates []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		suffix := name[len(prefix):]
		if entry.IsDir() {
			suffix += string(filepath.Separator)
		}
		candidates = append(candidates, suffix)
	}
	sort.Strings(candidates)

	out := make([][]rune, 0, len(candidates))
	for _, candidate := range candidates {
		out = append(out, []rune(candidate))
	}
	return out, len([]rune(prefix))
}

var _ readline.AutoCompleter = (*PathCompleter)(nil)
