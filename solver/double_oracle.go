package solver

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/efg"
	"github.com/timpalpant/efg/gamestate"
)

// Iteration summarizes one round of the double oracle.
type Iteration struct {
	Value float64
	// BestResponseValues are the values each player could obtain by
	// best-responding in the full game to the restricted solution.
	BestResponseValues [gamestate.NumPlayers]float64
	Added              int
}

// bestResponses computes a best response of both players to profile.
func bestResponses(g *efg.Game, profile efg.Profile) (BestResponse, [gamestate.NumPlayers]float64, error) {
	br := NewBestResponse()
	var values [gamestate.NumPlayers]float64
	for p := range br {
		player := gamestate.Player(p)
		s, v, err := g.BestResponse(player, profile)
		if err != nil {
			return br, values, err
		}

		for is, probs := range s {
			actions := g.ActionsAt(player, is)
			for i, prob := range probs {
				if prob > 0 {
					br.Add(player, is, actions[i].Name)
				}
			}
		}
		values[p] = v
	}
	return br, values, nil
}

// RunDoubleOracle solves the game by growing a restricted game: starting
// from best responses to the uniform profile, it repeatedly solves the
// restricted game and adds both players' full-game best responses to
// its solution, until no action is added or maxIterations (if positive)
// is reached.
func RunDoubleOracle(ctx context.Context, g *efg.Game, opts Options, maxIterations int) (*Result, []Iteration, error) {
	s := New(g, opts)
	br, _, err := bestResponses(g, efg.UniformProfile(g))
	if err != nil {
		return nil, nil, errors.Wrap(err, "initial best response")
	}
	s.UpdateRestrictedGame(br)

	var history []Iteration
	for i := 1; ; i++ {
		result, err := s.SolveRestrictedGame(ctx)
		if err != nil {
			return nil, history, err
		}

		br, values, err := bestResponses(g, result.Profile)
		if err != nil {
			return nil, history, errors.Wrapf(err, "best response in iteration %d", i)
		}
		added := s.UpdateRestrictedGame(br)
		history = append(history, Iteration{
			Value:              result.Value,
			BestResponseValues: values,
			Added:              added,
		})
		glog.Infof("Double oracle iteration %d: value %v, best response values %v, %d actions added",
			i, result.Value, values, added)

		if added == 0 {
			return result, history, nil
		}
		if maxIterations > 0 && i >= maxIterations {
			glog.Warningf("Double oracle stopped after %d iterations without converging", i)
			return result, history, nil
		}
	}
}
