// Package flower implements the flower contest grid: seeding, the per-turn
// phases (blessing, growth, corruption, combat) and the terminal checks.
package flower

import "fmt"

// Species identifies a lineage. Every seeded flower receives a fresh value and
// clones inherit it unchanged.
type Species int

// String renders the species the way the game narrates it.
func (s Species) String() string { return fmt.Sprintf("Species_%d", int(s)) }

// Flower is a single occupant of a grid cell.
type Flower struct {
	species   Species
	HP        int
	Attack    int
	Corrupted bool
}

// New returns an uncorrupted flower of the given species.
func New(species Species, hp, attack int) *Flower {
	return &Flower{species: species, HP: hp, Attack: attack}
}

// Species reports the flower's lineage.
func (f *Flower) Species() Species { return f.species }

// Offspring clones the flower for expansion. Corruption is never inherited.
func (f *Flower) Offspring() *Flower {
	return New(f.species, f.HP, f.Attack)
}

func (f *Flower) String() string {
	return fmt.Sprintf("%s(HP:%d, AP:%d, Corrupted:%t)", f.species, f.HP, f.Attack, f.Corrupted)
}

// ActedSet records species that already expanded or fought this turn.
type ActedSet map[Species]struct{}

// Has reports whether the species has acted.
func (a ActedSet) Has(s Species) bool {
	_, ok := a[s]
	return ok
}

// Mark flags the species as having acted.
func (a ActedSet) Mark(s Species) { a[s] = struct{}{} }
