package flower

import "flowergame/internal/core"

const (
	seedChance    = 0.3
	seedStatMin   = 1
	seedStatMax   = 10
	expandChance  = 0.5
	blessChance   = 0.5
	blessBoostMin = 1
	blessBoostMax = 5
	spreadChance  = 0.75
)

// Seed visits every cell in row-major order and, with probability 0.3, plants
// a flower of a brand new species with hp and attack drawn from [1,10].
func (g *Grid) Seed() {
	for y := 0; y < g.size.H; y++ {
		for x := 0; x < g.size.W; x++ {
			if !g.rng.Chance(seedChance) {
				continue
			}
			species := g.NewSpecies()
			hp := g.rng.IntRange(seedStatMin, seedStatMax)
			attack := g.rng.IntRange(seedStatMin, seedStatMax)
			g.cells[g.size.Index(x, y)] = New(species, hp, attack)
		}
	}
}

// Expand lets each species that has not yet acted try to clone itself into
// the first empty neighbor of one of its cells. A species expands at most once
// per turn.
func (g *Grid) Expand(acted ActedSet) {
	for y := 0; y < g.size.H; y++ {
		for x := 0; x < g.size.W; x++ {
			f := g.At(x, y)
			if f == nil || acted.Has(f.species) {
				continue
			}
			for _, n := range g.Adjacent(x, y) {
				idx := g.size.Index(n.X, n.Y)
				if g.cells[idx] != nil || !g.rng.Chance(expandChance) {
					continue
				}
				g.cells[idx] = f.Offspring()
				acted.Mark(f.species)
				break
			}
		}
	}
}

// Bless boosts each flower's hp and attack by [1,5] with probability 0.5.
func (g *Grid) Bless() {
	for _, f := range g.cells {
		if f == nil || !g.rng.Chance(blessChance) {
			continue
		}
		f.HP += g.rng.IntRange(blessBoostMin, blessBoostMax)
		f.Attack += g.rng.IntRange(blessBoostMin, blessBoostMax)
	}
}

// Corrupt turns at most one flower. With probability 0.75 the corruption
// spreads from a random corrupted flower to one of its clean neighbors;
// otherwise, or when nothing is corrupted yet, a random clean flower anywhere
// on the grid is corrupted.
func (g *Grid) Corrupt() {
	var tainted []core.Point
	for y := 0; y < g.size.H; y++ {
		for x := 0; x < g.size.W; x++ {
			if f := g.At(x, y); f != nil && f.Corrupted {
				tainted = append(tainted, core.Point{X: x, Y: y})
			}
		}
	}

	if len(tainted) > 0 && g.rng.Chance(spreadChance) {
		src := tainted[g.rng.Pick(len(tainted))]
		var victims []*Flower
		for _, n := range g.Adjacent(src.X, src.Y) {
			if f := g.At(n.X, n.Y); f != nil && !f.Corrupted {
				victims = append(victims, f)
			}
		}
		if len(victims) > 0 {
			victims[g.rng.Pick(len(victims))].Corrupted = true
		}
		return
	}

	var clean []*Flower
	for _, f := range g.cells {
		if f != nil && !f.Corrupted {
			clean = append(clean, f)
		}
	}
	if len(clean) == 0 {
		return
	}
	clean[g.rng.Pick(len(clean))].Corrupted = true
}

// Combat lets each species that has not yet acted attack the first neighbor
// that belongs to another species or differs in corruption status.
func (g *Grid) Combat(acted ActedSet) {
	for y := 0; y < g.size.H; y++ {
		for x := 0; x < g.size.W; x++ {
			f := g.At(x, y)
			if f == nil || acted.Has(f.species) {
				continue
			}
			for _, n := range g.Adjacent(x, y) {
				other := g.At(n.X, n.Y)
				if other == nil {
					continue
				}
				if other.species == f.species && other.Corrupted == f.Corrupted {
					continue
				}
				g.ResolveCombat(f, other)
				acted.Mark(f.species)
				break
			}
		}
	}
}

// ResolveCombat exchanges blows simultaneously using pre-combat attack values
// and removes whichever flowers drop to zero hp or below.
func (g *Grid) ResolveCombat(a, b *Flower) {
	hitA, hitB := b.Attack, a.Attack
	a.HP -= hitA
	b.HP -= hitB
	if a.HP <= 0 {
		g.RemoveFlower(a)
	}
	if b.HP <= 0 {
		g.RemoveFlower(b)
	}
}
