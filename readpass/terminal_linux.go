//go:build linux

package readpass

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ttyDevice drives the controlling terminal through the process's standard
// input. One mode snapshot is held between saveMode and restoreMode.
type ttyDevice struct {
	in    *os.File
	out   *os.File
	saved *unix.Termios
}

func newTTY() terminal {
	return &ttyDevice{in: os.Stdin, out: os.Stdout}
}

func (t *ttyDevice) isTerminal() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

func (t *ttyDevice) saveMode() error {
	mode, err := unix.IoctlGetTermios(int(t.in.Fd()), unix.TCGETS)
	if err != nil {
		return err
	}
	t.saved = mode
	return nil
}

// disableEcho applies a copy of the saved mode with local echo off.
// Canonical mode and signal characters stay enabled: the kernel keeps
// assembling the line and Ctrl-C still raises SIGINT.
func (t *ttyDevice) disableEcho() error {
	mode := *t.saved
	mode.Lflag &^= unix.ECHO | unix.ECHOE | unix.ECHOK | unix.ECHONL
	mode.Lflag |= unix.ICANON | unix.ISIG
	mode.Iflag |= unix.ICRNL
	return unix.IoctlSetTermios(int(t.in.Fd()), unix.TCSETS, &mode)
}

func (t *ttyDevice) restoreMode() error {
	return unix.IoctlSetTermios(int(t.in.Fd()), unix.TCSETS, t.saved)
}

// readLine reads until the canonical-mode read returns a newline, the
// input reaches end of file, or the read fails. Transient buffers are
// wiped as they are consumed.
func (t *ttyDevice) readLine() ([]byte, error) {
	var line []byte
	buf := make([]byte, 256)
	for {
		n, err := t.in.Read(buf)
		line = append(line, buf[:n]...)
		wipe(buf[:n])
		if err != nil {
			return line, err
		}
		if n == 0 {
			return line, io.EOF
		}
		if line[len(line)-1] == '\n' {
			return line, nil
		}
	}
}

func (t *ttyDevice) print(s string) {
	_, _ = t.out.WriteString(s)
}
