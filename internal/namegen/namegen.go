// Package namegen picks placeholder developer names for generated variable
// defaults. The random source is explicitly seedable so resolution stays
// reproducible under test.
package namegen

import "math/rand"

// names is the fixed candidate list. Resolution picks one entry; the list
// order is part of the reproducibility contract, so append only.
var names = []string{
	"Ada Lovelace",
	"Alan Turing",
	"Annie Easley",
	"Barbara Liskov",
	"Dennis Ritchie",
	"Donald Knuth",
	"Dorothy Vaughan",
	"Edsger Dijkstra",
	"Frances Allen",
	"Grace Hopper",
	"Hedy Lamarr",
	"John Backus",
	"Katherine Johnson",
	"Ken Thompson",
	"Margaret Hamilton",
	"Mary Jackson",
	"Niklaus Wirth",
	"Radia Perlman",
	"Rob Pike",
	"Tony Hoare",
}

// New returns a rand.Rand seeded deterministically.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Pick returns one name from the fixed list using rng.
func Pick(rng *rand.Rand) string {
	return names[rng.Intn(len(names))]
}

// Names returns a copy of the candidate list.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
