package solver

import (
	"github.com/timpalpant/efg"
	"github.com/timpalpant/efg/sequence"
)

// FixedResponse is a pure opponent response: the name of the action
// taken at each opponent information set.
type FixedResponse map[int]string

// Realizes reports whether the opponent sequence seq is played under r:
// r must pick every action along it, not only the last one.
func (r FixedResponse) Realizes(enc *sequence.Encoding, seq int) bool {
	for seq != sequence.Root {
		is := enc.InfoSetOf(enc.Dual, seq)
		action, ok := r[is]
		if !ok || action != enc.ActionOf(enc.Dual, seq) {
			return false
		}
		if seq, ok = enc.ParentOf(enc.Dual, is); !ok {
			return false
		}
	}
	return true
}

// NaiveResponse picks, at each opponent information set reached in enc,
// the action whose cells have the largest summed (averaged) opponent
// payoff, regardless of the solving player's strategy. Ties go to the
// first action.
func NaiveResponse(enc *sequence.Encoding) FixedResponse {
	totals := make(map[int]float64)
	cells := enc.Cells()
	for i := range cells {
		c := &cells[i]
		if c.Dual != sequence.Root {
			totals[c.Dual] += c.AverageDual()
		}
	}

	response := make(FixedResponse)
	for _, entry := range enc.Reached(enc.Dual) {
		best := -1
		for _, seq := range entry.Sequences {
			if best < 0 || totals[seq] > totals[best] {
				best = seq
			}
		}
		if best >= 0 {
			response[entry.ID] = enc.ActionOf(enc.Dual, best)
		}
	}
	return response
}

// ResponseFromStrategy converts a pure strategy of the opponent (such as
// a best response) into a FixedResponse.
func ResponseFromStrategy(g *efg.Game, enc *sequence.Encoding, s efg.Strategy) FixedResponse {
	response := make(FixedResponse)
	for is, probs := range s {
		actions := g.ActionsAt(enc.Dual, is)
		best := -1
		for i, p := range probs {
			if i < len(actions) && (best < 0 || p > probs[best]) {
				best = i
			}
		}
		if best >= 0 {
			response[is] = actions[best].Name
		}
	}
	return response
}
