package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrInterrupt is returned by a Prompter when the user presses Ctrl-C.
var ErrInterrupt = errors.New("interrupted")

// Prompter reads one answer per prompt. It returns io.EOF when the input
// is closed and ErrInterrupt when the user cancels the line.
type Prompter interface {
	Ask(prompt string) (string, error)
}

// ReadlinePrompter reads answers from the terminal with line editing,
// history and tab completion.
type ReadlinePrompter struct {
	rl *readline.Instance
}

// NewReadlinePrompter creates a prompter backed by readline. Only menu
// choices are saved to historyFile; completer may be nil.
func NewReadlinePrompter(historyFile string, completer *Completer) (*ReadlinePrompter, error) {
	cfg := &readline.Config{
		Prompt:                 MenuPrompt,
		HistoryFile:            historyFile,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
	}
	if completer != nil {
		cfg.AutoComplete = completer
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	return &ReadlinePrompter{rl: rl}, nil
}

// Ask implements Prompter.
func (p *ReadlinePrompter) Ask(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)
	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupt
	}
	return line, err
}

// Remember adds line to the history.
func (p *ReadlinePrompter) Remember(line string) {
	_ = p.rl.SaveHistory(line)
}

// Stdout returns a writer that redraws the prompt around output.
func (p *ReadlinePrompter) Stdout() io.Writer {
	return p.rl.Stdout()
}

// Close restores the terminal.
func (p *ReadlinePrompter) Close() error {
	return p.rl.Close()
}

var _ Prompter = (*ReadlinePrompter)(nil)

// LinePrompter reads answers line by line from any reader. It is used
// when input is not a terminal.
type LinePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLinePrompter creates a LinePrompter that writes prompts to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Ask implements Prompter. A last line without a newline is still
// returned; io.EOF is reported only when nothing was read.
func (p *LinePrompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.writer, prompt)

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var _ Prompter = (*LinePrompter)(nil)

// ScriptedPrompter answers prompts from a fixed list and records every
// prompt it was asked. After the last answer it returns io.EOF.
type ScriptedPrompter struct {
	// Answers are returned in order.
	Answers []string
	// Prompts records all prompts passed to Ask.
	Prompts []string
	// Err, when set, is returned instead of the next answer.
	Err error
}

// NewScriptedPrompter creates a ScriptedPrompter with the given answers.
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{Answers: answers}
}

// Ask implements Prompter.
func (m *ScriptedPrompter) Ask(prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)

	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Answers) == 0 {
		return "", io.EOF
	}
	answer := m.Answers[0]
	m.Answers = m.Answers[1:]
	return answer, nil
}

// LastPrompt returns the most recent prompt, or "" if none.
func (m *ScriptedPrompter) LastPrompt() string {
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}

var _ Prompter = (*ScriptedPrompter)(nil)
