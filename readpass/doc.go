// Package readpass implements secure interactive password capture for the
// identity-management utilities (login, su, passwd, useradd-class tools).
//
// [ReadPassword] snapshots the controlling terminal's line discipline,
// turns off local echo, reads one line from standard input, and restores
// the saved mode. Restoration happens on every exit path (normal return,
// read error, and delivered interrupt signal), so a failed or aborted
// prompt never leaves the terminal in no-echo mode.
//
// Canonical line editing stays enabled during the read: the kernel still
// assembles the line and handles the erase and kill characters, only the
// echo is suppressed.
//
// # Shared terminal state
//
// The terminal mode is a single per-TTY resource shared by the whole
// process (in fact by every process attached to the terminal). Calls within
// one process are serialised by a package-level mutex; serialising against
// other processes on the same terminal is the caller's obligation, as this
// package has no cross-process lock.
//
// # Cancellation
//
// There is no way to cancel an in-flight terminal read. When SIGINT or
// SIGTERM arrives during the read, the terminal mode is restored first and
// [ErrInterrupted] is returned; the guarantee is restoration after
// interruption, not proactive cancellation of the read.
//
// # Secret lifetime
//
// The returned secret is owned by the caller, who should wipe it (for
// example with passhash.Wipe) as soon as it has been hashed or verified.
package readpass
