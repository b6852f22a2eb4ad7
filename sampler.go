package efg

import (
	"math/rand"
	"sort"

	"github.com/timpalpant/efg/gamestate"
)

// SamplePlayout plays one game from the root, sampling nature's actions
// from their probabilities and players' actions from profile (looked up
// by the information set the cursor reports). Players mix uniformly at
// information sets missing from profile. It returns the cursor at the
// leaf that was reached.
func (g *Game) SamplePlayout(profile Profile, rng *rand.Rand) (*gamestate.GameState, error) {
	gs := g.InitialState()
	for !gs.IsLeaf() {
		n := &g.nodes[gs.CurrentNode()]
		probs := make([]float64, len(n.Actions))
		switch n.Type {
		case gamestate.ChanceNode:
			for i, a := range n.Actions {
				probs[i] = a.Probability
			}
		default:
			s, ok := profile[gs.Player()][gs.InfoSet()]
			if ok && len(s) == len(probs) {
				copy(probs, s)
			} else {
				for i := range probs {
					probs[i] = 1.0 / float64(len(probs))
				}
			}
		}

		selected := sampleOne(probs, rng.Float64())
		if err := g.Apply(gs, selected, probs[selected]); err != nil {
			return nil, err
		}
	}

	return gs, nil
}

// sampleOne selects an index with probability proportional to probs,
// given a uniform random number x in [0, 1).
func sampleOne(probs []float64, x float64) int {
	cumulative := make([]float64, len(probs))
	total := 0.0
	for i, p := range probs {
		total += p
		cumulative[i] = total
	}

	x *= total
	selected := sort.Search(len(cumulative), func(i int) bool {
		return cumulative[i] > x
	})
	if selected == len(cumulative) {
		selected--
	}
	return selected
}
