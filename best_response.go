package efg

import (
	"github.com/pkg/errors"

	"github.com/timpalpant/efg/gamestate"
)

type bestResponder struct {
	game    *Game
	player  gamestate.Player
	profile Profile

	// reach is the probability of reaching each node when player
	// always plays towards it.
	reach     []float64
	values    []float64
	evaluated []bool
	decisions map[int]int
	deciding  map[int]bool
}

// BestResponse computes a pure best response for player to the
// opponent's strategy in profile. It returns the response together with
// its expected value for player. Information sets of player that cannot
// be reached still receive a (first-action) decision.
func (g *Game) BestResponse(player gamestate.Player, profile Profile) (Strategy, float64, error) {
	br := &bestResponder{
		game:      g,
		player:    player,
		profile:   profile,
		reach:     make([]float64, len(g.nodes)),
		values:    make([]float64, len(g.nodes)),
		evaluated: make([]bool, len(g.nodes)),
		decisions: make(map[int]int),
		deciding:  make(map[int]bool),
	}

	order := g.preorder(allocIntSlice())
	defer freeIntSlice(order)
	br.reach[g.root] = 1.0
	for _, id := range order {
		n := &g.nodes[id]
		for i, a := range n.Actions {
			p := 1.0
			if n.Type == gamestate.ChanceNode || n.Player != player {
				p = actionProbability(n, i, profile)
			}
			br.reach[a.Child] = br.reach[id] * p
		}
	}

	value, err := br.value(g.root)
	if err != nil {
		return nil, 0, err
	}

	result := make(Strategy)
	for _, is := range g.InfoSets(player) {
		best, err := br.decide(is)
		if err != nil {
			return nil, 0, err
		}

		probs := make([]float64, len(g.ActionsAt(player, is)))
		probs[best] = 1.0
		result[is] = probs
	}

	return result, value, nil
}

// decide returns the action of infoSet maximizing the reach-weighted
// value summed over its members.
func (br *bestResponder) decide(infoSet int) (int, error) {
	if a, ok := br.decisions[infoSet]; ok {
		return a, nil
	}
	if br.deciding[infoSet] {
		return 0, errors.Errorf("%v information set %d depends on itself (imperfect recall)",
			br.player, infoSet)
	}
	br.deciding[infoSet] = true

	members := br.game.InfoSetMembers(br.player, infoSet)
	totals := allocFloatSlice(len(br.game.ActionsAt(br.player, infoSet)))
	defer freeFloatSlice(totals)
	for _, id := range members {
		n := &br.game.nodes[id]
		for i, a := range n.Actions {
			v, err := br.value(a.Child)
			if err != nil {
				return 0, err
			}
			totals[i] += br.reach[id] * v
		}
	}

	best := 0
	for i, v := range totals {
		if v > totals[best] {
			best = i
		}
	}

	delete(br.deciding, infoSet)
	br.decisions[infoSet] = best
	return best, nil
}

func (br *bestResponder) value(id int) (float64, error) {
	if br.evaluated[id] {
		return br.values[id], nil
	}

	n := &br.game.nodes[id]
	var v float64
	switch {
	case n.IsLeaf():
		v = n.Payoffs[br.player]
	case n.Type == gamestate.PlayerNode && n.Player == br.player:
		a, err := br.decide(n.InfoSet)
		if err != nil {
			return 0, err
		}
		v, err = br.value(n.Actions[a].Child)
		if err != nil {
			return 0, err
		}
	default:
		for i, a := range n.Actions {
			p := actionProbability(n, i, br.profile)
			if p == 0 {
				continue
			}
			cv, err := br.value(a.Child)
			if err != nil {
				return 0, err
			}
			v += p * cv
		}
	}

	br.values[id] = v
	br.evaluated[id] = true
	return v, nil
}
