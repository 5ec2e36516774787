//go:build !linux

package readpass

import "errors"

var errUnsupported = errors.New("readpass: terminal capture is only supported on linux")

// unsupportedTerminal reports no terminal on platforms without termios
// support, so every capture fails with [ErrNotTerminal].
type unsupportedTerminal struct{}

func newTTY() terminal { return unsupportedTerminal{} }

func (unsupportedTerminal) isTerminal() bool { return false }

func (unsupportedTerminal) saveMode() error { return errUnsupported }

func (unsupportedTerminal) disableEcho() error { return errUnsupported }

func (unsupportedTerminal) restoreMode() error { return errUnsupported }

func (unsupportedTerminal) readLine() ([]byte, error) { return nil, errUnsupported }

func (unsupportedTerminal) print(string) {}
