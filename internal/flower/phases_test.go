package flower

import (
	"testing"

	"flowergame/internal/core"
	"flowergame/internal/core/coretest"
)

func TestResolveCombatIsSimultaneous(t *testing.T) {
	g := newTestGrid(t, 2, 1, coretest.Never())
	a := New(g.NewSpecies(), 5, 6)
	b := New(g.NewSpecies(), 5, 3)
	g.Place(0, 0, a)
	g.Place(1, 0, b)

	g.ResolveCombat(a, b)

	if a.HP != 2 {
		t.Fatalf("attacker hp = %d, expected 2", a.HP)
	}
	if g.At(0, 0) != a {
		t.Fatal("attacker should survive")
	}
	if g.At(1, 0) != nil {
		t.Fatal("defender should be removed at hp <= 0")
	}
}

func TestResolveCombatBothDie(t *testing.T) {
	g := newTestGrid(t, 2, 1, coretest.Never())
	a := New(g.NewSpecies(), 3, 4)
	b := New(g.NewSpecies(), 4, 3)
	g.Place(0, 0, a)
	g.Place(1, 0, b)

	g.ResolveCombat(a, b)

	if g.Count() != 0 {
		t.Fatalf("expected both flowers removed, %d remain", g.Count())
	}
}

func TestExpandOncePerSpecies(t *testing.T) {
	g := newTestGrid(t, 5, 1, coretest.Always())
	s := g.NewSpecies()
	g.Place(0, 0, New(s, 3, 4))
	g.Place(3, 0, New(s, 3, 4))

	acted := make(ActedSet)
	g.Expand(acted)

	if g.Count() != 3 {
		t.Fatalf("expected exactly one expansion, grid holds %d flowers", g.Count())
	}
	if g.At(1, 0) == nil {
		t.Fatal("first cell should expand into its first empty neighbor")
	}
	if g.At(2, 0) != nil || g.At(4, 0) != nil {
		t.Fatal("second cell of the same species must not expand")
	}
	if !acted.Has(s) {
		t.Fatal("expanding species must be marked as acted")
	}
}

func TestExpandClonesWithoutCorruption(t *testing.T) {
	g := newTestGrid(t, 2, 1, coretest.Always())
	parent := New(g.NewSpecies(), 6, 2)
	parent.Corrupted = true
	g.Place(0, 0, parent)

	g.Expand(make(ActedSet))

	child := g.At(1, 0)
	if child == nil || child == parent {
		t.Fatal("expected a distinct clone")
	}
	if child.Species() != parent.Species() || child.HP != 6 || child.Attack != 2 || child.Corrupted {
		t.Fatalf("unexpected clone %v", child)
	}
}

func TestExpandRollsOnlyForEmptyNeighbors(t *testing.T) {
	src := coretest.Never()
	g := newTestGrid(t, 3, 1, src)
	g.Place(0, 0, New(g.NewSpecies(), 1, 1))
	g.Place(1, 0, New(g.NewSpecies(), 1, 1))

	g.Expand(make(ActedSet))

	if src.FloatDraws != 1 {
		t.Fatalf("expected a single roll for the one empty neighbor, got %d", src.FloatDraws)
	}
	if g.Count() != 2 {
		t.Fatal("failed roll must not expand")
	}
}

func TestExpandSkipsActedSpecies(t *testing.T) {
	g := newTestGrid(t, 2, 1, coretest.Always())
	s := g.NewSpecies()
	g.Place(0, 0, New(s, 1, 1))
	acted := ActedSet{s: {}}

	g.Expand(acted)

	if g.Count() != 1 {
		t.Fatal("species that already acted must not expand")
	}
}

func TestBlessBoostsStats(t *testing.T) {
	src := &coretest.Script{Floats: []float64{0.2, 0.7}, Ints: []int{2, 4}}
	g := newTestGrid(t, 2, 1, src)
	a := New(g.NewSpecies(), 1, 1)
	b := New(g.NewSpecies(), 1, 1)
	g.Place(0, 0, a)
	g.Place(1, 0, b)

	g.Bless()

	if a.HP != 4 || a.Attack != 6 {
		t.Fatalf("blessed flower = %v, expected HP 4 AP 6", a)
	}
	if b.HP != 1 || b.Attack != 1 {
		t.Fatalf("unblessed flower changed: %v", b)
	}
}

func TestCorruptPicksGlobalWhenNoneCorrupted(t *testing.T) {
	src := &coretest.Script{Ints: []int{1}, FallbackFloat: 0}
	g := newTestGrid(t, 3, 1, src)
	a := New(g.NewSpecies(), 1, 1)
	b := New(g.NewSpecies(), 1, 1)
	g.Place(0, 0, a)
	g.Place(2, 0, b)

	g.Corrupt()

	if a.Corrupted || !b.Corrupted {
		t.Fatalf("expected only the second flower corrupted: %v %v", a, b)
	}
	if src.FloatDraws != 0 {
		t.Fatal("spread roll must be skipped when nothing is corrupted")
	}
}

func TestCorruptSpreadsToCleanNeighbor(t *testing.T) {
	g := newTestGrid(t, 3, 1, coretest.Always())
	src := New(g.NewSpecies(), 1, 1)
	src.Corrupted = true
	near := New(g.NewSpecies(), 1, 1)
	far := New(g.NewSpecies(), 1, 1)
	g.Place(0, 0, src)
	g.Place(1, 0, near)
	g.Place(2, 0, far)

	g.Corrupt()

	if !near.Corrupted {
		t.Fatal("neighbor of a corrupted flower should be corrupted")
	}
	if far.Corrupted {
		t.Fatal("exactly one flower may be corrupted per turn")
	}
}

func TestCorruptIsolatedSourceDoesNothing(t *testing.T) {
	g := newTestGrid(t, 3, 1, coretest.Always())
	src := New(g.NewSpecies(), 1, 1)
	src.Corrupted = true
	other := New(g.NewSpecies(), 1, 1)
	g.Place(0, 0, src)
	g.Place(2, 0, other)

	g.Corrupt()

	if other.Corrupted {
		t.Fatal("spread branch without clean neighbors must not fall back to the global pool")
	}
}

func TestCorruptFailedSpreadFallsBack(t *testing.T) {
	src := &coretest.Script{Floats: []float64{0.9}, Ints: []int{1}}
	g := newTestGrid(t, 3, 1, src)
	c := New(g.NewSpecies(), 1, 1)
	c.Corrupted = true
	a := New(g.NewSpecies(), 1, 1)
	b := New(g.NewSpecies(), 1, 1)
	g.Place(0, 0, c)
	g.Place(1, 0, a)
	g.Place(2, 0, b)

	g.Corrupt()

	if a.Corrupted || !b.Corrupted {
		t.Fatalf("expected global pick of the second clean flower: %v %v", a, b)
	}
}

func TestCorruptWithNothingLeftIsNoop(t *testing.T) {
	g := newTestGrid(t, 1, 1, coretest.Never())
	f := New(g.NewSpecies(), 1, 1)
	f.Corrupted = true
	g.Place(0, 0, f)

	g.Corrupt()

	if g.Count() != 1 || !f.Corrupted {
		t.Fatal("corrupt should leave a fully corrupted grid untouched")
	}
}

func TestCombatSharesActedSet(t *testing.T) {
	g := newTestGrid(t, 2, 1, coretest.Never())
	a := New(g.NewSpecies(), 10, 1)
	b := New(g.NewSpecies(), 10, 1)
	g.Place(0, 0, a)
	g.Place(1, 0, b)

	acted := ActedSet{a.Species(): {}}
	g.Combat(acted)

	if a.HP != 9 || b.HP != 9 {
		t.Fatalf("expected one exchange initiated by the second species, got %v %v", a, b)
	}
	if !acted.Has(b.Species()) {
		t.Fatal("fighting species must be marked as acted")
	}
}

func TestCombatSameSpeciesDifferentCorruption(t *testing.T) {
	g := newTestGrid(t, 2, 1, coretest.Never())
	s := g.NewSpecies()
	a := New(s, 10, 3)
	b := New(s, 10, 3)
	b.Corrupted = true
	g.Place(0, 0, a)
	g.Place(1, 0, b)

	g.Combat(make(ActedSet))

	if a.HP != 7 || b.HP != 7 {
		t.Fatalf("expected a single exchange between kin of differing corruption, got %v %v", a, b)
	}
}

func TestCombatIgnoresIdenticalKin(t *testing.T) {
	g := newTestGrid(t, 2, 1, coretest.Never())
	s := g.NewSpecies()
	a := New(s, 10, 3)
	b := New(s, 10, 3)
	g.Place(0, 0, a)
	g.Place(1, 0, b)

	acted := make(ActedSet)
	g.Combat(acted)

	if a.HP != 10 || b.HP != 10 || acted.Has(s) {
		t.Fatal("flowers of the same species and status must not fight")
	}
}

func TestPhasesPreserveInvariants(t *testing.T) {
	g, err := NewGrid(12, 9, core.NewRNG(2024))
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	g.Seed()

	seeded := map[Species]bool{}
	for _, c := range g.Snapshot(0).Cells {
		seeded[c.Species] = true
	}

	for turn := 0; turn < 60; turn++ {
		acted := make(ActedSet)
		g.Bless()
		g.Expand(acted)
		g.Corrupt()
		g.Combat(acted)

		seen := map[*Flower]bool{}
		occupied := 0
		for _, f := range g.cells {
			if f == nil {
				continue
			}
			occupied++
			if seen[f] {
				t.Fatalf("turn %d: flower %v referenced by two cells", turn, f)
			}
			seen[f] = true
			if !seeded[f.Species()] {
				t.Fatalf("turn %d: species %s was not seeded", turn, f.Species())
			}
			if f.HP <= 0 {
				t.Fatalf("turn %d: dead flower left on grid: %v", turn, f)
			}
		}
		if occupied != g.Count() || len(g.cells) != g.Size().Cells() {
			t.Fatalf("turn %d: cell accounting broken", turn)
		}
	}
}
