package efg

import (
	"math/rand"

	"github.com/timpalpant/efg/gamestate"
)

// BeliefState holds the distribution of probabilities over the nodes of
// an information set, as perceived by the player acting there.
type BeliefState struct {
	Player  gamestate.Player
	InfoSet int

	nodes      []int
	reachProbs []float64
}

// NewBeliefState computes p's beliefs at infoSet when nature and the
// opponent play according to profile. The player's own actions do not
// weight the nodes: with perfect recall they are the same at every node
// of the information set. If no node is reachable the beliefs are uniform.
func (g *Game) NewBeliefState(p gamestate.Player, infoSet int, profile Profile) (*BeliefState, error) {
	members := g.InfoSetMembers(p, infoSet)
	if len(members) == 0 {
		return nil, &InvalidStateError{
			Op:     "NewBeliefState",
			NodeID: g.root,
			Msg:    "no such information set for " + p.String(),
		}
	}

	order := g.preorder(allocIntSlice())
	defer freeIntSlice(order)

	reach := make([]float64, len(g.nodes))
	reach[g.root] = 1.0
	for _, id := range order {
		n := &g.nodes[id]
		for i, a := range n.Actions {
			if n.Type == gamestate.PlayerNode && n.Player == p {
				reach[a.Child] = reach[id]
			} else {
				reach[a.Child] = reach[id] * actionProbability(n, i, profile)
			}
		}
	}

	bs := &BeliefState{
		Player:     p,
		InfoSet:    infoSet,
		nodes:      append([]int(nil), members...),
		reachProbs: make([]float64, len(members)),
	}
	total := 0.0
	for i, id := range members {
		bs.reachProbs[i] = reach[id]
		total += reach[id]
	}
	for i := range bs.reachProbs {
		if total > 0 {
			bs.reachProbs[i] /= total
		} else {
			bs.reachProbs[i] = 1.0 / float64(len(members))
		}
	}

	return bs, nil
}

func (bs *BeliefState) Len() int {
	return len(bs.nodes)
}

func (bs *BeliefState) Less(i, j int) bool {
	return bs.reachProbs[i] < bs.reachProbs[j]
}

func (bs *BeliefState) Swap(i, j int) {
	bs.nodes[i], bs.nodes[j] = bs.nodes[j], bs.nodes[i]
	bs.reachProbs[i], bs.reachProbs[j] = bs.reachProbs[j], bs.reachProbs[i]
}

// Node returns the id of the i'th node and the probability it is the
// true state of the game.
func (bs *BeliefState) Node(i int) (int, float64) {
	return bs.nodes[i], bs.reachProbs[i]
}

// SampleNode samples one of the nodes according to the beliefs.
func (bs *BeliefState) SampleNode(rng *rand.Rand) int {
	selected := sampleOne(bs.reachProbs, rng.Float64())
	return bs.nodes[selected]
}
