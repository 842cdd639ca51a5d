package shell

import (
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

// Completer completes the current answer against a word list. The shell
// swaps the list for every prompt: menu keys at the menu, plot kinds at
// the type prompt, formats at the format prompt.
type Completer struct {
	mu    sync.Mutex
	words []string
}

// NewCompleter creates a completer offering words.
func NewCompleter(words ...string) *Completer {
	return &Completer{words: words}
}

var _ readline.AutoCompleter = (*Completer)(nil)

// SetWords replaces the candidates. nil disables completion.
func (c *Completer) SetWords(words []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.words = words
}

// Words returns the current candidates.
func (c *Completer) Words() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.words...)
}

// Do implements readline.AutoCompleter. Every prompt takes a single word,
// so only the text before the cursor is matched and candidates are
// returned as suffixes.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if pos > len(line) {
		pos = len(line)
	}
	if pos < 0 {
		return nil, 0
	}

	prefix := strings.TrimLeft(string(line[:pos]), " \t")
	if strings.ContainsAny(prefix, " \t") {
		return nil, 0
	}

	for _, w := range c.Words() {
		if strings.HasPrefix(w, prefix) && w != prefix {
			newLine = append(newLine, []rune(w[len(prefix):]))
		}
	}
	return newLine, len([]rune(prefix))
}
