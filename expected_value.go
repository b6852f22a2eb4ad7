package efg

import (
	"github.com/timpalpant/efg/gamestate"
)

// ZeroBranchPolicy determines how subtrees reached with probability zero
// are evaluated.
type ZeroBranchPolicy uint8

const (
	// ZeroBranchZero evaluates every internal node of a zero-probability
	// subtree to zero.
	ZeroBranchZero ZeroBranchPolicy = iota
	// ZeroBranchUniform would evaluate zero-probability subtrees as if
	// players mixed uniformly. It is not implemented.
	ZeroBranchUniform
)

type EvalOptions struct {
	ZeroBranch ZeroBranchPolicy
	// NormalizePayoffs subtracts the evaluated player's smallest payoff
	// from every leaf.
	NormalizePayoffs bool
}

// actionProbability returns the probability of taking action i at n,
// from nature at chance nodes and from profile at player nodes.
func actionProbability(n *Node, i int, profile Profile) float64 {
	if n.Type == gamestate.ChanceNode {
		return n.Actions[i].Probability
	}
	return profile[n.Player].Probability(n.InfoSet, i)
}

// NodeValues returns the expected payoff for player at every node when
// both players follow profile.
func (g *Game) NodeValues(player gamestate.Player, profile Profile, opts EvalOptions) ([]float64, error) {
	if opts.ZeroBranch == ZeroBranchUniform {
		return nil, ErrUniformNotImplemented
	}

	offset := 0.0
	if opts.NormalizePayoffs {
		offset = g.minPayoff[player]
	}

	order := g.preorder(allocIntSlice())
	defer freeIntSlice(order)

	zero := make([]bool, len(g.nodes))
	for _, id := range order {
		n := &g.nodes[id]
		for i, a := range n.Actions {
			zero[a.Child] = zero[id] || actionProbability(n, i, profile) == 0
		}
	}

	// Children follow their parent in pre-order, so walking it
	// backwards visits every child before its parent.
	values := make([]float64, len(g.nodes))
	for k := len(order) - 1; k >= 0; k-- {
		id := order[k]
		n := &g.nodes[id]
		if n.IsLeaf() {
			values[id] = n.Payoffs[player] - offset
			continue
		}
		if zero[id] {
			continue
		}

		v := 0.0
		for i, a := range n.Actions {
			v += actionProbability(n, i, profile) * values[a.Child]
		}
		values[id] = v
	}

	return values, nil
}

// ExpectedValue returns the expected payoff for player at the root when
// both players follow profile.
func (g *Game) ExpectedValue(player gamestate.Player, profile Profile, opts EvalOptions) (float64, error) {
	values, err := g.NodeValues(player, profile, opts)
	if err != nil {
		return 0, err
	}
	return values[g.root], nil
}
