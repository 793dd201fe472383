package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/input"
	"golang.org/x/term"
)

// TerminalKeys reads single key presses from a terminal in raw mode.
// Ctrl+C and "q" call Quit, since raw mode suppresses SIGINT.
type TerminalKeys struct {
	In   *os.File
	Quit func()

	reader  io.Reader
	restore func()
	pending chan domain.Key
}

// NewTerminalKeys reads from stdin.
func NewTerminalKeys(quit func()) *TerminalKeys {
	return &TerminalKeys{In: os.Stdin, Quit: quit}
}

// Start switches the terminal to raw mode and starts the reader goroutine.
// When In is not a terminal, bytes are read as they come.
func (t *TerminalKeys) Start(ctx context.Context) error {
	t.pending = make(chan domain.Key, 64)
	t.reader = t.In
	t.restore = func() {}

	if fd := int(t.In.Fd()); term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		t.restore = func() { _ = term.Restore(fd, old) }
	}

	go t.read(ctx)
	return nil
}

func (t *TerminalKeys) read(ctx context.Context) {
	buf := make([]byte, 8)
	for {
		n, err := t.reader.Read(buf)
		if err != nil {
			return
		}
		for _, key := range DecodeKeys(buf[:n]) {
			if key == KeyInterrupt || key == "q" {
				if t.Quit != nil {
					t.Quit()
				}
				return
			}
			select {
			case t.pending <- key:
			case <-ctx.Done():
				return
			default:
				// Drop presses while the loop is behind.
			}
		}
	}
}

// Poll taps every key read since the previous tick.
func (t *TerminalKeys) Poll(_ int, kb *input.Keyboard) {
	for {
		select {
		case k := <-t.pending:
			kb.Tap(k)
		default:
			return
		}
	}
}

// Stop restores the terminal state.
func (t *TerminalKeys) Stop() {
	if t.restore != nil {
		t.restore()
	}
}

// KeyInterrupt is the key produced by Ctrl+C.
const KeyInterrupt domain.Key = "ctrl+c"

// DecodeKeys maps raw terminal bytes to key names. Arrow keys arrive as
// escape sequences; printable bytes map to themselves.
func DecodeKeys(b []byte) []domain.Key {
	var keys []domain.Key
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c == 0x1b && i+2 < len(b) && b[i+1] == '[':
			if k, ok := arrows[b[i+2]]; ok {
				keys = append(keys, k)
			}
			i += 2
		case c == 0x1b:
			keys = append(keys, "escape")
		case c == 3:
			keys = append(keys, KeyInterrupt)
		case c == '\r' || c == '\n':
			keys = append(keys, "enter")
		case c == '\t':
			keys = append(keys, "tab")
		case c == 0x7f:
			keys = append(keys, "backspace")
		case c >= 0x20 && c < 0x7f:
			keys = append(keys, input.Normalize(domain.Key(string(c))))
		}
	}
	return keys
}

var arrows = map[byte]domain.Key{
	'A': "up",
	'B': "down",
	'C': "right",
	'D': "left",
}
