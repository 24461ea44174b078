// Package game drives a flower grid turn by turn until one species prevails
// or every flower is gone.
package game

import (
	"context"
	"fmt"
	"io"
	"log"

	"flowergame/internal/flower"
)

// State is the loop's lifecycle stage.
type State int

const (
	Running State = iota
	VictoryAchieved
	Extinct
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case VictoryAchieved:
		return "victory"
	case Extinct:
		return "extinct"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	// DefaultLogEvery is the snapshot cadence in turns.
	DefaultLogEvery = 10
	progressEvery   = 100
)

// Sink receives snapshots. It never sees the live grid.
type Sink interface {
	WriteSnapshot(ctx context.Context, snap flower.Snapshot) error
}

// Result summarises a finished game.
type Result struct {
	State     State
	Turn      int
	Winner    flower.Species
	Snapshots int
}

// Loop owns the grid for the lifetime of a game.
type Loop struct {
	grid   *flower.Grid
	sink   Sink
	logger *log.Logger

	// LogEvery sets the snapshot cadence. Values <= 0 use DefaultLogEvery.
	LogEvery int

	state       State
	turn        int
	winner      flower.Species
	written     int
	lastWritten int
}

// New prepares a loop over an already seeded grid. A nil logger discards
// progress output.
func New(grid *flower.Grid, sink Sink, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Loop{grid: grid, sink: sink, logger: logger, lastWritten: -1}
}

// State reports the current lifecycle stage.
func (l *Loop) State() State { return l.state }

// Turn reports the number of completed turns.
func (l *Loop) Turn() int { return l.turn }

// Step runs one full phase cycle: blessing, growth, corruption, combat.
// Growth and combat share the acted set so no species does both.
func (l *Loop) Step() {
	acted := make(flower.ActedSet)
	l.grid.Bless()
	l.grid.Expand(acted)
	l.grid.Corrupt()
	l.grid.Combat(acted)
	l.turn++
}

// Run plays until victory or extinction. The terminal grid is always
// recorded; a sink failure aborts the game and is returned.
func (l *Loop) Run(ctx context.Context) (Result, error) {
	every := l.LogEvery
	if every <= 0 {
		every = DefaultLogEvery
	}

	for l.state == Running {
		if winner, ok := l.grid.Victory(); ok {
			l.state = VictoryAchieved
			l.winner = winner
			l.logger.Printf("The Final Shape is achieved by %s", winner)
			break
		}
		if l.turn%progressEvery == 0 {
			l.logger.Printf("Turn %d-%d", l.turn, l.turn+progressEvery)
		}
		if l.turn%every == 0 {
			if err := l.emit(ctx); err != nil {
				return l.result(), err
			}
		}
		if l.grid.Count() == 0 {
			l.state = Extinct
			l.logger.Printf("Approaching the Final Shape at turn %d", l.turn)
			break
		}
		l.Step()
	}

	if l.lastWritten != l.turn {
		if err := l.emit(ctx); err != nil {
			return l.result(), err
		}
	}

	switch l.state {
	case Extinct:
		l.logger.Printf("The Winnower has defeated the Gardener. Approaching the Final Shape.")
	case VictoryAchieved:
		l.logger.Printf("Victory achieved on turn %d", l.turn)
	}
	return l.result(), nil
}

func (l *Loop) emit(ctx context.Context) error {
	if l.sink == nil {
		return nil
	}
	if err := l.sink.WriteSnapshot(ctx, l.grid.Snapshot(l.turn)); err != nil {
		return fmt.Errorf("write snapshot for turn %d: %w", l.turn, err)
	}
	l.written++
	l.lastWritten = l.turn
	return nil
}

func (l *Loop) result() Result {
	return Result{State: l.state, Turn: l.turn, Winner: l.winner, Snapshots: l.written}
}
