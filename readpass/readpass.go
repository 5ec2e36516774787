package readpass

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// terminal abstracts the controlling terminal so the capture logic can be
// exercised in tests without a TTY. The mode snapshot lives inside the
// implementation: saveMode takes it, disableEcho derives the no-echo mode
// from it, restoreMode puts it back.
type terminal interface {
	isTerminal() bool
	saveMode() error
	disableEcho() error
	restoreMode() error
	readLine() ([]byte, error)
	print(s string)
}

// ttyMu serialises all capture calls in this process. The terminal mode is
// one piece of state per TTY, not per Reader, so the lock is package-wide.
var ttyMu sync.Mutex

// Reader captures secrets from the controlling terminal.
// The zero value is not usable; call [NewReader].
type Reader struct {
	t terminal
}

// NewReader returns a Reader bound to the process's standard input and
// output. All Readers in a process share one terminal and are serialised
// against each other.
func NewReader() *Reader {
	return &Reader{t: newTTY()}
}

var std = &Reader{t: newTTY()}

// ReadPassword captures one secret line from the process's terminal.
// See [Reader.ReadPassword].
func ReadPassword(prompt string) ([]byte, error) { return std.ReadPassword(prompt) }

// ReadPasswordConfirm captures a secret twice and requires both entries to
// match. See [Reader.ReadPasswordConfirm].
func ReadPasswordConfirm(prompt, confirm string) ([]byte, error) {
	return std.ReadPasswordConfirm(prompt, confirm)
}

// ReadLine reads one visible line from the process's standard input.
// See [Reader.ReadLine].
func ReadLine(prompt string) (string, error) { return std.ReadLine(prompt) }

// ReadPassword prints prompt, disables terminal echo, reads one line, and
// restores the previous terminal mode before returning: on success, on
// read error, and on SIGINT/SIGTERM delivery ([ErrInterrupted]).
//
// The returned secret has the trailing newline stripped and is owned by
// the caller, who must wipe it after use. Fails with [ErrNotTerminal] when
// standard input is not a TTY. There is no retry: the first failure is
// surfaced as is.
func (r *Reader) ReadPassword(prompt string) ([]byte, error) {
	ttyMu.Lock()
	defer ttyMu.Unlock()

	if !r.t.isTerminal() {
		return nil, ErrNotTerminal
	}
	if err := r.t.saveMode(); err != nil {
		return nil, fmt.Errorf("readpass: saving terminal mode: %w", err)
	}

	// Restore exactly once, whichever path returns first. The deferred
	// call covers panics and early returns; the explicit calls below make
	// the ordering visible: mode back first, then report.
	var once sync.Once
	restore := func() { once.Do(func() { _ = r.t.restoreMode() }) }
	defer restore()

	if err := r.t.disableEcho(); err != nil {
		return nil, fmt.Errorf("readpass: disabling echo: %w", err)
	}

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)

	r.t.print(prompt)

	type readResult struct {
		line []byte
		err  error
	}
	results := make(chan readResult, 1)
	go func() {
		line, err := r.t.readLine()
		results <- readResult{line, err}
	}()

	select {
	case sig := <-interrupts:
		// The blocked read cannot be cancelled; it is abandoned after the
		// mode is restored. The buffered channel lets the goroutine finish.
		restore()
		r.t.print("\n")
		return nil, fmt.Errorf("%w: %v", ErrInterrupted, sig)

	case res := <-results:
		restore()
		// Echo was off, so the terminal swallowed the Enter keypress.
		r.t.print("\n")

		line := trimEOL(res.line)
		if res.err != nil {
			// EOF after at least one byte still yields a usable line
			// (input closed without a final newline).
			if !errors.Is(res.err, io.EOF) || len(line) == 0 {
				wipe(res.line)
				return nil, fmt.Errorf("readpass: reading secret: %w", res.err)
			}
		}
		return line, nil
	}
}

// ReadPasswordConfirm prompts for a secret twice and returns it only when
// both entries match. The comparison is constant time. On mismatch both
// buffers are wiped and [ErrMismatch] is returned; on any capture error the
// partial entry is wiped before the error propagates.
func (r *Reader) ReadPasswordConfirm(prompt, confirm string) ([]byte, error) {
	first, err := r.ReadPassword(prompt)
	if err != nil {
		return nil, err
	}
	second, err := r.ReadPassword(confirm)
	if err != nil {
		wipe(first)
		return nil, err
	}
	if subtle.ConstantTimeCompare(first, second) != 1 {
		wipe(first)
		wipe(second)
		return nil, ErrMismatch
	}
	wipe(second)
	return first, nil
}

// ReadLine prints prompt and reads one line with echo left on, for
// non-secret input such as login names. The terminal mode is not touched.
func (r *Reader) ReadLine(prompt string) (string, error) {
	ttyMu.Lock()
	defer ttyMu.Unlock()

	r.t.print(prompt)
	line, err := r.t.readLine()
	trimmed := trimEOL(line)
	if err != nil && (!errors.Is(err, io.EOF) || len(trimmed) == 0) {
		return "", fmt.Errorf("readpass: reading input: %w", err)
	}
	return string(trimmed), nil
}

// trimEOL strips one trailing "\n" or "\r\n" in place.
func trimEOL(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
