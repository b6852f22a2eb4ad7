package solver

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/timpalpant/efg"
	"github.com/timpalpant/efg/gamestate"
	"github.com/timpalpant/efg/matrixgame"
)

// pureStrategies enumerates every pure strategy of p, failing if there
// are more than limit.
func pureStrategies(g *efg.Game, p gamestate.Player, limit int) ([]efg.Strategy, error) {
	infoSets := g.InfoSets(p)
	total := 1
	for _, is := range infoSets {
		total *= len(g.ActionsAt(p, is))
		if total > limit {
			return nil, errors.Errorf("%v has more than %d pure strategies", p, limit)
		}
	}

	result := make([]efg.Strategy, 0, total)
	choice := make([]int, len(infoSets))
	for {
		s := make(efg.Strategy, len(infoSets))
		for k, is := range infoSets {
			probs := make([]float64, len(g.ActionsAt(p, is)))
			probs[choice[k]] = 1.0
			s[is] = probs
		}
		result = append(result, s)

		// Advance the mixed-radix counter.
		k := 0
		for ; k < len(infoSets); k++ {
			choice[k]++
			if choice[k] < len(g.ActionsAt(p, infoSets[k])) {
				break
			}
			choice[k] = 0
		}
		if k == len(infoSets) {
			return result, nil
		}
	}
}

// NormalForm returns the payoff matrix of player over the pure strategies
// of both players: rows are player's strategies, columns the opponent's.
func NormalForm(g *efg.Game, player gamestate.Player, limit int) ([][]float64, error) {
	rows, err := pureStrategies(g, player, limit)
	if err != nil {
		return nil, err
	}
	cols, err := pureStrategies(g, player.Opponent(), limit)
	if err != nil {
		return nil, err
	}

	matrix := make([][]float64, len(rows))
	for i, row := range rows {
		matrix[i] = make([]float64, len(cols))
		for j, col := range cols {
			var profile efg.Profile
			profile[player] = row
			profile[player.Opponent()] = col
			matrix[i][j], err = g.ExpectedValue(player, profile, efg.EvalOptions{})
			if err != nil {
				return nil, err
			}
		}
	}
	return matrix, nil
}

// FictitiousPlayValue approximates the zero-sum value of the game for
// player by fictitious play on its normal form.
func FictitiousPlayValue(g *efg.Game, player gamestate.Player, nIter int, rng *rand.Rand) (float64, error) {
	matrix, err := NormalForm(g, player, 4096)
	if err != nil {
		return 0, err
	}

	p0, p1 := matrixgame.FictitiousPlay(matrix, nIter, 0, rng)
	return matrixgame.Value(matrix, p0, p1), nil
}
