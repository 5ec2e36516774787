package passhash

// Wipe overwrites b with zeros. Call it on a secret buffer as soon as the
// hash or verify call that consumed it returns, on every exit path.
//
// Wiping is best effort at the language level: earlier copies made by the
// runtime (stack growth, GC moves) are out of reach. It still removes the
// longest-lived copy, which is the one a memory disclosure is most likely
// to hit.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
