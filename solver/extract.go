package solver

import (
	"math"

	"github.com/timpalpant/efg"
	"github.com/timpalpant/efg/gamestate"
	"github.com/timpalpant/efg/sequence"
)

// Solved weights below this magnitude are treated as zero.
const valueTolerance = 1e-9

func (sol *solution) weight(enc *sequence.Encoding, p gamestate.Player, seq int) float64 {
	var v float64
	if p == enc.Solving {
		v = sol.primal[seq]
	} else {
		v = sol.dual[seq]
	}
	if v < valueTolerance || math.IsNaN(v) {
		return 0
	}
	return v
}

// extract converts solved sequence weights into a behavioral profile
// covering every information set of the game. Each action's probability
// is its weight over the information set's total weight, split evenly
// among actions sharing its name. Information sets with no weight get a
// default: the solving player plays its first action; the opponent
// splits evenly among the actions named like its first one.
func extract(g *efg.Game, enc *sequence.Encoding, sol *solution) efg.Profile {
	profile := efg.NewProfile()
	for i := range profile {
		p := gamestate.Player(i)
		for _, is := range g.InfoSets(p) {
			actions := g.ActionsAt(p, is)
			probs := make([]float64, len(actions))

			total := 0.0
			for _, seq := range enc.Sequences(p, is) {
				total += sol.weight(enc, p, seq)
			}

			if total > 0 {
				for j, a := range actions {
					seq, _ := enc.ID(p, is, a.Name)
					probs[j] = sol.weight(enc, p, seq) / total / float64(enc.SymmetricCount(p, seq))
				}
			} else if p == enc.Solving {
				probs[0] = 1.0
			} else {
				first := actions[0].Name
				k := float64(g.SymmetricCount(p, is, first))
				for j, a := range actions {
					if a.Name == first {
						probs[j] = 1.0 / k
					}
				}
			}

			profile[p][is] = probs
		}
	}

	return profile
}
