package readpass

import "errors"

// Sentinel errors returned by capture operations. Use [errors.Is] for
// comparisons; read failures from the terminal are wrapped and carry the
// underlying error.
var (
	// ErrNotTerminal is returned when standard input is not the controlling
	// terminal. Secrets are only ever read interactively; there is no
	// fallback to reading them from a pipe.
	ErrNotTerminal = errors.New("readpass: standard input is not a terminal")

	// ErrInterrupted is returned when an interrupt or termination signal
	// arrives while the read is in flight. The terminal mode has already
	// been restored by the time this error is returned.
	ErrInterrupted = errors.New("readpass: interrupted while reading")

	// ErrMismatch is returned by [ReadPasswordConfirm] when the two entries
	// differ. Both entries have been wiped by the time it is returned.
	ErrMismatch = errors.New("readpass: entries do not match")
)
