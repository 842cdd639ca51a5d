// Package spinner shows a busy indicator on stderr while csvplot loads a
// file, renders a chart or writes an export.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	hideCursor     = "\033[?25l"
	showCursor     = "\033[?25h"
	carriageReturn = "\r"

	colorRed   = "\033[31m"
	colorReset = "\033[0m"

	symbolFailure = "✗"
)

// DefaultDelay is how long an operation runs before the spinner appears.
// Most csvplot operations finish well inside it.
const DefaultDelay = 150 * time.Millisecond

// Frames is a set of animation characters.
type Frames []string

var (
	// Braille is the default animation.
	Braille = Frames{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

	// Line works in terminals without Unicode support.
	Line = Frames{"|", "/", "-", "\\"}
)

// Config holds spinner options.
type Config struct {
	// Frames defaults to Braille in a UTF-8 locale and Line otherwise.
	Frames Frames
	// Message is shown next to the animation.
	Message string
	// RefreshRate defaults to 80ms.
	RefreshRate time.Duration
	// Delay postpones the first frame. Zero draws immediately.
	Delay time.Duration
	// ShowElapsed appends "(1.2s)" to the message.
	ShowElapsed bool
	// Writer defaults to os.Stderr.
	Writer io.Writer
	// IsTTY overrides terminal detection on Writer. Without a terminal the
	// spinner draws nothing while running.
	IsTTY *bool
}

// Spinner is an animated status line.
type Spinner struct {
	mu sync.Mutex

	config    Config
	isTTY     bool
	active    bool
	drawn     bool
	startTime time.Time
	frame     int
	width     int

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewWithConfig creates a spinner, filling unset options with defaults.
func NewWithConfig(config Config) *Spinner {
	if len(config.Frames) == 0 {
		config.Frames = localeFrames()
	}
	if config.RefreshRate <= 0 {
		config.RefreshRate = 80 * time.Millisecond
	}
	if config.Writer == nil {
		config.Writer = os.Stderr
	}

	isTTY := isTerminalWriter(config.Writer)
	if config.IsTTY != nil {
		isTTY = *config.IsTTY
	}
	return &Spinner{config: config, isTTY: isTTY}
}

func isTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// localeFrames checks the locale variables in POSIX precedence order.
func localeFrames() Frames {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := strings.ToUpper(os.Getenv(key))
		if v == "" {
			continue
		}
		if strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8") {
			return Braille
		}
		return Line
	}
	return Braille
}

// Start begins the animation. Starting a running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return
	}
	s.active = true
	s.drawn = false
	s.startTime = time.Now()
	s.frame = 0
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	if !s.isTTY {
		close(s.doneCh)
		return
	}
	go s.spin(s.stopCh, s.doneCh)
}

// Stop halts the animation and erases the line. It blocks until the
// animation goroutine has exited. Stopping an idle spinner is a no-op.
func (s *Spinner) Stop() {
	if !s.halt() {
		return
	}
	s.mu.Lock()
	s.erase()
	s.mu.Unlock()
}

// Fail stops the spinner and prints a red cross with message, or with the
// current message when message is empty.
func (s *Spinner) Fail(message string) {
	s.halt()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.erase()

	if message == "" {
		message = s.config.Message
	}
	line := symbolFailure + " " + message
	if s.isTTY {
		line = colorRed + symbolFailure + colorReset + " " + message
	}
	if s.config.ShowElapsed && !s.startTime.IsZero() {
		line += " " + formatElapsed(time.Since(s.startTime))
	}
	fmt.Fprintln(s.config.Writer, line)
}

// halt stops the goroutine and reports whether the spinner was running.
func (s *Spinner) halt() bool {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return false
	}
	s.active = false
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	if s.isTTY {
		close(stopCh)
	}
	<-doneCh
	return true
}

func (s *Spinner) spin(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	if s.config.Delay > 0 {
		delay := time.NewTimer(s.config.Delay)
		select {
		case <-stopCh:
			delay.Stop()
			return
		case <-delay.C:
		}
	}

	ticker := time.NewTicker(s.config.RefreshRate)
	defer ticker.Stop()

	s.render()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.render()
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	if !s.drawn {
		fmt.Fprint(s.config.Writer, hideCursor)
		s.drawn = true
	}

	char := s.config.Frames[s.frame%len(s.config.Frames)]
	s.frame++

	out := char + " " + s.config.Message
	if s.config.ShowElapsed {
		out += " " + formatElapsed(time.Since(s.startTime))
	}
	s.clear()
	fmt.Fprint(s.config.Writer, out)
	s.width = len(out)
}

// clear overwrites the previous frame. Caller must hold the mutex.
func (s *Spinner) clear() {
	if s.width > 0 {
		fmt.Fprint(s.config.Writer, carriageReturn+strings.Repeat(" ", s.width)+carriageReturn)
		s.width = 0
	}
}

// erase removes the spinner line and restores the cursor. Caller must
// hold the mutex.
func (s *Spinner) erase() {
	s.clear()
	if s.drawn {
		fmt.Fprint(s.config.Writer, showCursor)
		s.drawn = false
	}
}

// formatElapsed renders "(1.2s)" below a minute and "(1m 30s)" above.
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("(%.1fs)", d.Seconds())
	}
	return fmt.Sprintf("(%dm %ds)", int(d.Minutes()), int(d.Seconds())%60)
}

// Busy returns a function that starts a spinner with a message and returns
// its stop function. Stopping with a nil error erases the line; any other
// error leaves a failure mark. With enabled false, or when w is not a
// terminal, the returned function does nothing.
func Busy(w io.Writer, enabled bool) func(msg string) func(error) {
	if !enabled || !isTerminalWriter(w) {
		return func(string) func(error) { return func(error) {} }
	}
	return busy(w, true)
}

func busy(w io.Writer, isTTY bool) func(msg string) func(error) {
	return func(msg string) func(error) {
		s := NewWithConfig(Config{
			Message:     msg,
			Writer:      w,
			Delay:       DefaultDelay,
			ShowElapsed: true,
			IsTTY:       &isTTY,
		})
		s.Start()
		return func(err error) {
			if err != nil {
				s.Fail("")
				return
			}
			s.Stop()
		}
	}
}
