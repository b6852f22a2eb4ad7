// Package solver computes equilibrium strategies of two-player
// extensive-form games by building and solving their sequence-form
// programs, optionally over an incrementally grown restricted game.
package solver

import (
	"context"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/efg"
	"github.com/timpalpant/efg/gamestate"
	"github.com/timpalpant/efg/lp"
	"github.com/timpalpant/efg/sequence"
)

// Result is the outcome of a successful solve.
type Result struct {
	Player gamestate.Player
	Mode   Mode
	// Value is the optimal objective: the solving player's payoff with
	// every cell averaged over its merged leaves.
	Value    float64
	Profile  efg.Profile
	Status   lp.Status
	Encoding *sequence.Encoding
	// Response is the opponent response used in Stackelberg mode.
	Response       FixedResponse
	NumVars        int
	NumConstraints int

	sol *solution
}

// Extract recomputes the behavioral profile from the solved weights.
func (r *Result) Extract(g *efg.Game) efg.Profile {
	return extract(g, r.Encoding, r.sol)
}

// Solver solves a game for one player. It is not safe for concurrent use.
type Solver struct {
	game        *efg.Game
	opts        Options
	restriction *Restriction
	response    FixedResponse
}

func New(game *efg.Game, opts Options) *Solver {
	return &Solver{game: game, opts: opts}
}

// Restriction returns the restriction of the game being solved, or nil
// if the full game is solved.
func (s *Solver) Restriction() *Restriction {
	return s.restriction
}

// SetFixedResponse sets the opponent response used in Stackelberg mode.
// If none is set, NaiveResponse is used.
func (s *Solver) SetFixedResponse(r FixedResponse) {
	s.response = r
}

// Solve solves the game, restricted if a restriction has been started
// by UpdateRestrictedGame.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	var filter sequence.Filter
	if s.restriction != nil {
		filter = s.restriction
	}

	enc, err := sequence.Encode(s.game, s.opts.Player, sequence.Options{
		Filter:           filter,
		NormalizePayoffs: s.opts.NormalizePayoffs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encoding game")
	}

	model := s.opts.newModel()
	prog := newProgram(model, enc, s.opts.Mode)
	switch s.opts.Mode {
	case ZeroSum:
		prog.buildZeroSum()
	case Stackelberg:
		response := s.response
		if response == nil {
			response = NaiveResponse(enc)
			glog.V(1).Infof("Using naive opponent response: %v", response)
		}
		prog.buildStackelberg(response)
	}

	if s.opts.ModelOutput != nil {
		if wt, ok := model.(io.WriterTo); ok {
			if _, err := wt.WriteTo(s.opts.ModelOutput); err != nil {
				glog.Warningf("Unable to write model: %v", err)
			}
		}
	}

	glog.V(1).Infof("Solving %v program for %v: %d variables, %d constraints",
		s.opts.Mode, s.opts.Player, model.NumVars(), model.NumConstraints())
	if err := model.Solve(ctx); err != nil {
		return nil, errors.Wrapf(err, "solving %v program", s.opts.Mode)
	}

	sol := prog.snapshot()
	result := &Result{
		Player:         s.opts.Player,
		Mode:           s.opts.Mode,
		Value:          model.ObjectiveValue(),
		Profile:        extract(s.game, enc, sol),
		Status:         model.Status(),
		Encoding:       enc,
		Response:       prog.response,
		NumVars:        model.NumVars(),
		NumConstraints: model.NumConstraints(),
		sol:            sol,
	}
	glog.Infof("Solved %v game for %v: value %v", s.opts.Mode, s.opts.Player, result.Value)
	return result, nil
}

// SolveRestrictedGame solves the game restricted to the actions enabled
// so far.
func (s *Solver) SolveRestrictedGame(ctx context.Context) (*Result, error) {
	if s.restriction == nil {
		s.restriction = NewRestriction(s.game)
	}
	return s.Solve(ctx)
}

// UpdateRestrictedGame enables the actions of br reachable in the
// restricted game and returns how many were enabled.
func (s *Solver) UpdateRestrictedGame(br BestResponse) int {
	if s.restriction == nil {
		s.restriction = NewRestriction(s.game)
	}
	added := s.restriction.Update(br)
	glog.V(1).Infof("Restricted game now has %d actions (%d new)",
		s.restriction.NumEnabled(), added)
	return added
}
