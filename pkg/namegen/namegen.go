// Package namegen produces candidate names for temporary directories.
package namegen

import (
	"crypto/rand"
)

// alphabet is the character set for random suffixes. Lowercase base-36 keeps
// names collision-honest on case-insensitive filesystems.
const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// SuffixLen is the number of random characters in each candidate name.
// 12 base-36 characters is about 62 bits, enough that a collision within a
// process run means something else is wrong.
const SuffixLen = 12

// Generator yields candidate directory names of the form <prefix>.<suffix>.
// It never touches the filesystem; uniqueness is the caller's problem.
type Generator struct {
	prefix string
}

// New returns a Generator for the given prefix. The prefix is used verbatim.
func New(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// Next returns one candidate name. With an empty prefix the bare suffix is
// returned, since a name starting with "." would be semi-hidden on most
// systems.
func (g *Generator) Next() string {
	suffix := randomSuffix(SuffixLen)
	if g.prefix == "" {
		return suffix
	}
	return g.prefix + "." + suffix
}

// randomSuffix returns n random characters from the alphabet.
// Panics if crypto/rand fails (system-level error, should never happen on a
// healthy system).
func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// Entropy exhaustion or a broken random source. There is no
		// recovery, so panic rather than thread an error through every
		// caller.
		panic("namegen: crypto/rand failed (system error): " + err.Error())
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out)
}
